package orderrepo

import (
	"context"
	"errors"
	"time"

	"ordersim/internal/core/domain/model/kernel"
	"ordersim/internal/core/domain/model/order"
	"ordersim/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM.
// Requires a connection opened with TranslateError so unique-constraint
// violations surface as gorm.ErrDuplicatedKey.
type GormOrderRepository struct {
	db      *gorm.DB
	stores  kernel.StoreSet
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.OrderID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
// The store set resolves persisted store names back into storefronts when
// rows are mapped to aggregates.
func NewGormOrderRepository(db *gorm.DB, stores kernel.StoreSet, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		stores:  stores,
		tracker: tracker,
	}
}

// Add saves a new order to the database.
// An identifier collision fails with ObjectAlreadyExists.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewObjectAlreadyExistsError("orderId", dto.OrderID)
		}
		return errs.NewStorageUnavailableError("add order", err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order to the database.
// All columns are written, so a cleared next_status_update reaches the row.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("order_id = ?", dto.OrderID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return errs.NewStorageUnavailableError("update order", result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("orderId", dto.OrderID)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// UpdateIfStatus writes the aggregate only while the stored row still
// carries expectedStatus. A false result means another writer got there
// first; the caller backs off without error.
func (r *GormOrderRepository) UpdateIfStatus(
	ctx context.Context,
	aggregate *order.Order,
	expectedStatus order.Status,
) (bool, error) {
	if err := aggregate.Validate(); err != nil {
		return false, err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("order_id = ? AND status = ?", dto.OrderID, expectedStatus.String()).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return false, errs.NewStorageUnavailableError("guarded update", result.Error)
	}

	if result.RowsAffected == 0 {
		return false, nil
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return true, nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.OrderID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "order_id = ?", id.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("orderId", id.String())
		}
		return nil, errs.NewStorageUnavailableError("get order", err)
	}

	return toDomain(dto, r.stores)
}

// GetAllDueForUpdate retrieves all orders whose automatic status update is
// due: non-terminal status and next_status_update at or before now,
// optionally narrowed to one storefront.
func (r *GormOrderRepository) GetAllDueForUpdate(
	ctx context.Context,
	now time.Time,
	store *kernel.Store,
) ([]*order.Order, error) {
	active := []string{
		order.Pending.String(),
		order.InTransit.String(),
		order.StorePickup.String(),
	}

	tx := r.db.WithContext(ctx).
		Where("status IN ?", active).
		Where("next_status_update <= ?", now)
	if store != nil {
		tx = tx.Where("store = ?", store.Name())
	}

	var dtos []OrderDTO
	if err := tx.Find(&dtos).Error; err != nil {
		return nil, errs.NewStorageUnavailableError("list due orders", err)
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := toDomain(dto, r.stores)
		if err != nil {
			return nil, err
		}
		orders = append(orders, aggregate)
	}

	return orders, nil
}
