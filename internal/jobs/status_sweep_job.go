package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"ordersim/internal/core/application/usecases/commands"
	"ordersim/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
)

// SweepStatus describes the sweep timer for the scheduler endpoints.
type SweepStatus struct {
	// Running reports whether the periodic timer is active.
	Running bool
	// Period is the configured gap between sweeps.
	Period time.Duration
	// NextRun is when the next timed sweep fires. Zero when not running.
	NextRun time.Time
}

// StatusSweepJob periodically advances all orders whose automatic status
// update is due. One instance owns the timer; manual triggers share the
// same handler and run against the same store, so a manual sweep between
// ticks simply leaves less for the next tick to do.
type StatusSweepJob struct {
	handler commands.AdvanceOrdersCommandHandler
	period  time.Duration
	cron    *cron.Cron
	logger  *slog.Logger

	mu      sync.Mutex
	entry   cron.EntryID
	running bool
}

// NewStatusSweepJob creates the sweep job with the given period between runs.
func NewStatusSweepJob(
	handler commands.AdvanceOrdersCommandHandler,
	period time.Duration,
	logger *slog.Logger,
) *StatusSweepJob {
	return &StatusSweepJob{
		handler: handler,
		period:  period,
		cron:    cron.New(),
		logger:  logger.With("component", "status_sweep_job"),
	}
}

// Start begins the periodic sweep. Starting an already-running job is a
// warned no-op.
func (j *StatusSweepJob) Start() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.running {
		j.logger.Warn("status sweep already running")
		return nil
	}

	entry, err := j.cron.AddFunc(fmt.Sprintf("@every %s", j.period), func() {
		j.runSweep(context.Background())
	})
	if err != nil {
		return err
	}

	j.entry = entry
	j.cron.Start()
	j.running = true
	j.logger.Info("status sweep started", "period", j.period.String())
	return nil
}

// Stop halts the timer. An in-flight sweep is allowed to finish; its
// per-order transactions are already isolated, so interrupting it would
// only buy a faster shutdown at the cost of a half-reported batch.
func (j *StatusSweepJob) Stop() {
	j.mu.Lock()
	defer j.mu.Unlock()

	if !j.running {
		return
	}

	ctx := j.cron.Stop()
	<-ctx.Done()
	j.cron.Remove(j.entry)
	j.running = false
	j.logger.Info("status sweep stopped")
}

// TriggerUpdate runs one sweep synchronously and reports its result.
// Serves the manual trigger endpoint; works whether or not the timer runs.
func (j *StatusSweepJob) TriggerUpdate(ctx context.Context) (commands.AdvanceOrdersResult, error) {
	return j.runSweep(ctx)
}

// Status reports the timer state for the scheduler status endpoint.
func (j *StatusSweepJob) Status() SweepStatus {
	j.mu.Lock()
	defer j.mu.Unlock()

	status := SweepStatus{Running: j.running, Period: j.period}
	if j.running {
		status.NextRun = j.cron.Entry(j.entry).Next
	}
	return status
}

func (j *StatusSweepJob) runSweep(ctx context.Context) (commands.AdvanceOrdersResult, error) {
	metrics.SweepsTotal.Inc()

	cmd := commands.NewAdvanceOrdersCommand()
	result, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "status sweep failed", "error", err)
		return commands.AdvanceOrdersResult{}, err
	}

	return result, nil
}
