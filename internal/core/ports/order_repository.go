package ports

import (
	"context"
	"time"

	"ordersim/internal/core/domain/model/kernel"
	"ordersim/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// The record store exclusively owns persisted state; the application works
// on in-memory copies and writes back atomically per order.
type OrderRepository interface {
	// Add persists a new order aggregate.
	// An identifier collision fails with ObjectAlreadyExists rather than
	// silently overwriting; the store enforces uniqueness on the order id.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// Fails with ObjectNotFound if the order does not exist.
	Update(ctx context.Context, aggregate *order.Order) error

	// UpdateIfStatus persists the aggregate only if the stored row still
	// carries expectedStatus. Returns false, without error, when the guard
	// does not match: the caller lost a race and should skip the order.
	// This is the conditional write that keeps concurrent sweeps from
	// double-advancing one order.
	UpdateIfStatus(ctx context.Context, aggregate *order.Order, expectedStatus order.Status) (bool, error)

	// Get retrieves an order aggregate by its identifier.
	Get(ctx context.Context, id kernel.OrderID) (*order.Order, error)

	// GetAllDueForUpdate retrieves orders eligible for automatic
	// advancement: status in {pending, in_transit, store_pickup} and
	// nextStatusUpdate at or before now, optionally filtered by store.
	// Result ordering is unspecified; an empty result is not an error.
	GetAllDueForUpdate(ctx context.Context, now time.Time, store *kernel.Store) ([]*order.Order, error)
}
