package ports

import (
	"context"

	"ordersim/internal/core/domain/model/order"
)

// InventoryNotifier publishes a notification when an order reaches its final
// delivered state so downstream inventory systems can adjust stock levels.
//
// Delivery is best effort. Implementations must not block the caller on
// broker availability and must not fail the business operation; failures are
// logged and dropped.
type InventoryNotifier interface {
	NotifyOrderCompleted(ctx context.Context, aggregate *order.Order)
}
