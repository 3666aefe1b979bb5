package http

import (
	"time"

	"ordersim/internal/core/application/usecases/queries"
	"ordersim/internal/core/domain/model/order"
)

// Error is the uniform error payload for all endpoints.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreateOrderRequest is the body of POST /api/v1/orders.
type CreateOrderRequest struct {
	UserID string             `json:"userId"`
	Store  string             `json:"store"`
	Items  []OrderItemRequest `json:"items"`
}

// OrderItemRequest is one line in an order creation request.
type OrderItemRequest struct {
	ProductID string  `json:"productId"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// CancelOrderRequest is the optional body of PUT /api/v1/orders/:orderId/cancel.
type CancelOrderRequest struct {
	Reason string `json:"reason"`
}

// OrderItem is one order line in a response.
type OrderItem struct {
	ProductID string  `json:"productId"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Subtotal  float64 `json:"subtotal"`
}

// HistoryEntry is one status change in a response.
type HistoryEntry struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Note      string    `json:"note"`
}

// Order is the full order representation returned by the API.
type Order struct {
	OrderID           string         `json:"orderId"`
	UserID            string         `json:"userId"`
	Store             string         `json:"store"`
	Status            string         `json:"status"`
	Items             []OrderItem    `json:"items"`
	TotalAmount       float64        `json:"totalAmount"`
	StatusHistory     []HistoryEntry `json:"statusHistory"`
	EstimatedDelivery time.Time      `json:"estimatedDelivery"`
	NextStatusUpdate  *time.Time     `json:"nextStatusUpdate"`
	CreatedAt         time.Time      `json:"createdAt"`
	UpdatedAt         time.Time      `json:"updatedAt"`
}

// OrderStatus is the compact payload of GET /api/v1/orders/:orderId/status.
type OrderStatus struct {
	OrderID           string     `json:"orderId"`
	Status            string     `json:"status"`
	EstimatedDelivery time.Time  `json:"estimatedDelivery"`
	NextStatusUpdate  *time.Time `json:"nextStatusUpdate"`
}

// OrdersPage is the payload of GET /api/v1/orders/user/:userId.
type OrdersPage struct {
	Orders []Order `json:"orders"`
	Total  int     `json:"total"`
	Limit  int     `json:"limit"`
	Skip   int     `json:"skip"`
}

// StatusStoreStats is one (status, store) cell in the stats summary.
type StatusStoreStats struct {
	Status  string  `json:"status"`
	Store   string  `json:"store"`
	Orders  int     `json:"orders"`
	Revenue float64 `json:"revenue"`
}

// StoreStats aggregates one storefront in the stats summary.
type StoreStats struct {
	Store   string  `json:"store"`
	Orders  int     `json:"orders"`
	Revenue float64 `json:"revenue"`
}

// OrderStats is the payload of GET /api/v1/orders/stats/summary.
type OrderStats struct {
	TotalOrders  int                `json:"totalOrders"`
	ActiveOrders int                `json:"activeOrders"`
	TotalRevenue float64            `json:"totalRevenue"`
	Breakdown    []StatusStoreStats `json:"breakdown"`
	ByStatus     map[string]int     `json:"byStatus"`
	ByStore      []StoreStats       `json:"byStore"`
}

// SchedulerStatus is the payload of GET /api/v1/scheduler/status.
type SchedulerStatus struct {
	Running       bool       `json:"running"`
	PeriodSeconds int        `json:"periodSeconds"`
	NextRun       *time.Time `json:"nextRun"`
}

// SweepResult is the payload of POST /api/v1/scheduler/trigger.
type SweepResult struct {
	Scanned  int `json:"scanned"`
	Advanced int `json:"advanced"`
	Skipped  int `json:"skipped"`
	Failed   int `json:"failed"`
}

// orderFromAggregate maps a domain aggregate to its API representation.
func orderFromAggregate(aggregate *order.Order) Order {
	items := make([]OrderItem, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, OrderItem{
			ProductID: item.ProductID(),
			Title:     item.Title(),
			Price:     item.Price(),
			Quantity:  item.Quantity(),
			Subtotal:  item.Subtotal(),
		})
	}

	history := make([]HistoryEntry, 0, len(aggregate.History()))
	for _, entry := range aggregate.History() {
		history = append(history, HistoryEntry{
			Status:    entry.Status().String(),
			Timestamp: entry.Timestamp(),
			Note:      entry.Note(),
		})
	}

	return Order{
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

// orderFromResponse maps a read model to its API representation.
func orderFromResponse(response queries.OrderResponse) Order {
	items := make([]OrderItem, 0, len(response.Items))
	for _, item := range response.Items {
		items = append(items, OrderItem(item))
	}

	history := make([]HistoryEntry, 0, len(response.History))
	for _, entry := range response.History {
		history = append(history, HistoryEntry(entry))
	}

	return Order{
		OrderID:           response.OrderID,
		UserID:            response.UserID,
		Store:             response.Store,
		Status:            response.Status,
		Items:             items,
		TotalAmount:       response.TotalAmount,
		StatusHistory:     history,
		EstimatedDelivery: response.EstimatedDelivery,
		NextStatusUpdate:  response.NextStatusUpdate,
		CreatedAt:         response.CreatedAt,
		UpdatedAt:         response.UpdatedAt,
	}
}
