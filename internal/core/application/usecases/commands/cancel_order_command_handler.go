package commands

import (
	"context"
	"time"

	"ordersim/internal/core/domain/model/order"
	"ordersim/internal/pkg/metrics"
)

// CancelOrderCommandHandler handles explicit order cancellation.
// Loads the aggregate, applies the cancelled transition, and persists the
// result in a single transaction.
//
// Cancelling an order that is already completed or cancelled fails with
// StatusIsTerminalError; a missing order fails with ObjectNotFound.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	now        func() time.Time
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(uowFactory OrderUoWFactory) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

// WithClock overrides the handler's time source. Tests use this to pin
// cancellation timestamps.
func (h CancelOrderCommandHandler) WithClock(now func() time.Time) CancelOrderCommandHandler {
	h.now = now
	return h
}

// Handle processes the cancellation command and returns the cancelled
// aggregate.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = aggregate.Cancel(cmd.Reason(), h.now()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	metrics.OrdersCancelledTotal.Inc()
	return aggregate, nil
}
