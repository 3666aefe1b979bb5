package commands

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"ordersim/internal/core/domain/model/kernel"
	"ordersim/internal/core/domain/model/order"
	"ordersim/internal/core/domain/services"
	"ordersim/internal/core/ports"
	"ordersim/internal/pkg/metrics"
)

// defaultSweepConcurrency bounds how many orders one sweep advances in
// parallel.
const defaultSweepConcurrency = 8

// AdvanceOrdersResult summarizes one sweep execution.
type AdvanceOrdersResult struct {
	// Scanned is the number of orders the due-list query returned.
	Scanned int
	// Advanced is the number of orders moved one step along the lifecycle.
	Advanced int
	// Skipped counts orders another writer advanced or cancelled between
	// the due-list query and the conditional write.
	Skipped int
	// Failed counts orders whose advancement failed. Failures are logged
	// and contained; they never abort the rest of the batch.
	Failed int
}

// AdvanceOrdersCommandHandler orchestrates one status sweep.
//
// The due list is read outside any transaction, then every order is
// advanced in its own unit of work: re-fetched, transitioned one step, and
// written back with a status guard. An order changed concurrently is
// skipped without error, and a failing order is logged and counted without
// touching the others.
//
// Orders that reach their final delivered state trigger a best-effort
// inventory notification.
type AdvanceOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	readRepo   ports.OrderRepository
	scheduler  services.TransitionScheduler
	notifier   ports.InventoryNotifier
	logger     *slog.Logger

	concurrency int
	now         func() time.Time
}

// NewAdvanceOrdersCommandHandler creates a handler for status sweeps.
// readRepo serves the untransacted due-list query; uowFactory supplies one
// transaction per advanced order.
func NewAdvanceOrdersCommandHandler(
	uowFactory OrderUoWFactory,
	readRepo ports.OrderRepository,
	scheduler services.TransitionScheduler,
	notifier ports.InventoryNotifier,
	logger *slog.Logger,
) AdvanceOrdersCommandHandler {
	return AdvanceOrdersCommandHandler{
		uowFactory:  uowFactory,
		readRepo:    readRepo,
		scheduler:   scheduler,
		notifier:    notifier,
		logger:      logger.With("component", "advance_orders"),
		concurrency: defaultSweepConcurrency,
		now:         time.Now,
	}
}

// WithClock overrides the handler's time source. Tests use this to pin the
// sweep moment.
func (h AdvanceOrdersCommandHandler) WithClock(now func() time.Time) AdvanceOrdersCommandHandler {
	h.now = now
	return h
}

// WithConcurrency overrides how many orders are advanced in parallel.
// Values below one fall back to the default.
func (h AdvanceOrdersCommandHandler) WithConcurrency(n int) AdvanceOrdersCommandHandler {
	if n < 1 {
		n = defaultSweepConcurrency
	}
	h.concurrency = n
	return h
}

// Handle runs one sweep and reports what happened. An empty due list is a
// quiet no-op; only the due-list query itself can fail the whole sweep.
func (h *AdvanceOrdersCommandHandler) Handle(
	ctx context.Context,
	cmd AdvanceOrdersCommand,
) (AdvanceOrdersResult, error) {
	if err := cmd.Validate(); err != nil {
		return AdvanceOrdersResult{}, err
	}

	now := h.now()
	due, err := h.readRepo.GetAllDueForUpdate(ctx, now, nil)
	if err != nil {
		return AdvanceOrdersResult{}, err
	}

	if len(due) == 0 {
		return AdvanceOrdersResult{}, nil
	}

	var advanced, skipped, failed atomic.Int64

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(h.concurrency)
	for _, eligible := range due {
		id := eligible.ID()
		group.Go(func() error {
			switch outcome := h.advanceOne(groupCtx, id, now); outcome {
			case outcomeAdvanced:
				advanced.Add(1)
			case outcomeSkipped:
				skipped.Add(1)
			case outcomeFailed:
				failed.Add(1)
			}
			return nil
		})
	}
	_ = group.Wait()

	result := AdvanceOrdersResult{
		Scanned:  len(due),
		Advanced: int(advanced.Load()),
		Skipped:  int(skipped.Load()),
		Failed:   int(failed.Load()),
	}

	h.logger.Info("sweep finished",
		"scanned", result.Scanned,
		"advanced", result.Advanced,
		"skipped", result.Skipped,
		"failed", result.Failed,
	)

	return result, nil
}

type advanceOutcome int

const (
	outcomeAdvanced advanceOutcome = iota
	outcomeSkipped
	outcomeFailed
)

// advanceOne moves a single order one step inside its own transaction.
// The order is re-fetched so the decision is made on current state, and the
// write carries a status guard so a concurrent writer makes this sweep back
// off instead of double-advancing.
func (h *AdvanceOrdersCommandHandler) advanceOne(
	ctx context.Context,
	id kernel.OrderID,
	now time.Time,
) advanceOutcome {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return h.fail(id, "begin", err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, id)
	if err != nil {
		return h.fail(id, "get", err)
	}

	expected := aggregate.Status()
	next, ok := expected.Next()
	if !ok {
		// Cancelled or completed since the due-list query.
		return outcomeSkipped
	}

	nextDue := aggregate.NextStatusUpdate()
	if nextDue == nil || nextDue.After(now) {
		// Rescheduled since the due-list query.
		return outcomeSkipped
	}

	note := "Status automatically updated to " + next.String()
	if err = aggregate.TransitionTo(next, note, h.scheduler.NextDueTime(next, now), now); err != nil {
		return h.fail(id, "transition", err)
	}

	applied, err := orderRepo.UpdateIfStatus(ctx, aggregate, expected)
	if err != nil {
		return h.fail(id, "update", err)
	}
	if !applied {
		return outcomeSkipped
	}

	if err = uow.Commit(ctx); err != nil {
		return h.fail(id, "commit", err)
	}

	metrics.OrdersAdvancedTotal.Inc()

	if next == order.Completed {
		h.notifier.NotifyOrderCompleted(ctx, aggregate)
	}

	return outcomeAdvanced
}

func (h *AdvanceOrdersCommandHandler) fail(id kernel.OrderID, stage string, err error) advanceOutcome {
	h.logger.Error("order advancement failed",
		"orderId", id.String(),
		"stage", stage,
		"error", err,
	)
	metrics.SweepOrderFailuresTotal.WithLabelValues(stage).Inc()
	return outcomeFailed
}
