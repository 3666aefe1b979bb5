// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"ordersim/internal/core/domain/model/kernel"
	"ordersim/internal/core/domain/model/order"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Line items and the status history are stored as JSONB documents; they are
// only ever read and written as part of the whole aggregate. The composite
// index on status and next_status_update serves the sweep's due-list query.
type OrderDTO struct {
	OrderID           string            `gorm:"primaryKey"`
	UserID            string            `gorm:"index:idx_orders_user_created"`
	Store             string            `gorm:"index"`
	Status            string            `gorm:"index:idx_orders_due"`
	Items             []ItemDTO         `gorm:"type:jsonb;serializer:json"`
	TotalAmount       float64           `gorm:"type:numeric"`
	StatusHistory     []HistoryEntryDTO `gorm:"type:jsonb;serializer:json"`
	EstimatedDelivery time.Time
	NextStatusUpdate  *time.Time `gorm:"index:idx_orders_due"`
	CreatedAt         time.Time  `gorm:"index:idx_orders_user_created"`
	UpdatedAt         time.Time
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO is one order line within the items JSONB column.
// The JSON tags define the stored document shape; queries that read the
// column directly depend on them.
type ItemDTO struct {
	ProductID string  `json:"productId"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Subtotal  float64 `json:"subtotal"`
}

// HistoryEntryDTO is one status change within the status_history JSONB column.
type HistoryEntryDTO struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Note      string    `json:"note"`
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	items := make([]ItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, ItemDTO{
			ProductID: item.ProductID(),
			Title:     item.Title(),
			Price:     item.Price(),
			Quantity:  item.Quantity(),
			Subtotal:  item.Subtotal(),
		})
	}

	history := make([]HistoryEntryDTO, 0, len(aggregate.History()))
	for _, entry := range aggregate.History() {
		history = append(history, HistoryEntryDTO{
			Status:    entry.Status().String(),
			Timestamp: entry.Timestamp(),
			Note:      entry.Note(),
		})
	}

	return OrderDTO{
		OrderID:           aggregate.ID().String(),
		UserID:            aggregate.UserID(),
		Store:             aggregate.Store().Name(),
		Status:            aggregate.Status().String(),
		Items:             items,
		TotalAmount:       aggregate.TotalAmount(),
		StatusHistory:     history,
		EstimatedDelivery: aggregate.EstimatedDelivery(),
		NextStatusUpdate:  aggregate.NextStatusUpdate(),
		CreatedAt:         aggregate.CreatedAt(),
		UpdatedAt:         aggregate.UpdatedAt(),
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate through RestoreOrder, so corrupt rows
// fail at the mapping boundary instead of leaking into business logic.
// The storefront is resolved against the repository's store set.
func toDomain(dto OrderDTO, stores kernel.StoreSet) (*order.Order, error) {
	id, err := kernel.OrderIDFromString(dto.OrderID)
	if err != nil {
		return nil, err
	}

	store, err := stores.Resolve(dto.Store)
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := order.NewItem(itemDTO.ProductID, itemDTO.Title, itemDTO.Price, itemDTO.Quantity)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	history := make([]order.HistoryEntry, 0, len(dto.StatusHistory))
	for _, entryDTO := range dto.StatusHistory {
		entryStatus, entryErr := order.StatusFromString(entryDTO.Status)
		if entryErr != nil {
			return nil, entryErr
		}
		entry, entryErr := order.RestoreHistoryEntry(entryStatus, entryDTO.Timestamp, entryDTO.Note)
		if entryErr != nil {
			return nil, entryErr
		}
		history = append(history, entry)
	}

	return order.RestoreOrder(
		id,
		dto.UserID,
		store,
		items,
		status,
		history,
		dto.EstimatedDelivery,
		dto.NextStatusUpdate,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}
