package commands

import (
	"context"
	"time"

	"ordersim/internal/core/domain/model/kernel"
	"ordersim/internal/core/domain/model/order"
	"ordersim/internal/core/domain/services"
	"ordersim/internal/pkg/metrics"
)

// CreateOrderCommandHandler handles the business logic for order placement.
// Generates a store-prefixed order identifier, computes the delivery
// estimate and the first automatic-update due time, and persists the order
// in pending status.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, scheduler)
//	cmd, _ := NewCreateOrderCommand("user-42", store, items)
//
//	placed, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
//	fmt.Printf("Order %s placed, delivery estimated %s", placed.ID(), placed.EstimatedDelivery())
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	scheduler  services.TransitionScheduler
	now        func() time.Time
}

// NewCreateOrderCommandHandler creates a handler for order placement.
// Requires an OrderUoWFactory for transactional persistence and the
// transition scheduler for due-time and delivery-estimate computation.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	scheduler services.TransitionScheduler,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		scheduler:  scheduler,
		now:        time.Now,
	}
}

// WithClock overrides the handler's time source. Tests use this to pin
// creation timestamps.
func (h CreateOrderCommandHandler) WithClock(now func() time.Time) CreateOrderCommandHandler {
	h.now = now
	return h
}

// Handle processes the order placement command and returns the persisted
// aggregate. An identifier collision surfaces as ObjectAlreadyExists.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	now := h.now()
	id := kernel.GenerateOrderID(cmd.Store(), now)

	firstUpdateDue := h.scheduler.NextDueTime(order.Pending, now)
	placed, err := order.NewOrder(
		id,
		cmd.UserID(),
		cmd.Store(),
		cmd.Items(),
		h.scheduler.EstimatedDelivery(now),
		*firstUpdateDue,
		now,
	)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, placed); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	metrics.OrdersCreatedTotal.Inc()
	return placed, nil
}
