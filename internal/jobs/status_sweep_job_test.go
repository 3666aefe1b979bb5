package jobs_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"ordersim/internal/core/application/usecases/commands"
	"ordersim/internal/core/domain/model/kernel"
	"ordersim/internal/core/domain/model/order"
	"ordersim/internal/core/domain/services"
	"ordersim/internal/core/ports"
	"ordersim/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubOrderRepository serves an empty due list, so every sweep is a no-op.
type stubOrderRepository struct{}

func (stubOrderRepository) Add(_ context.Context, _ *order.Order) error    { return nil }
func (stubOrderRepository) Update(_ context.Context, _ *order.Order) error { return nil }
func (stubOrderRepository) UpdateIfStatus(_ context.Context, _ *order.Order, _ order.Status) (bool, error) {
	return false, nil
}
func (stubOrderRepository) Get(_ context.Context, _ kernel.OrderID) (*order.Order, error) {
	return nil, errors.New("not implemented in stub")
}
func (stubOrderRepository) GetAllDueForUpdate(_ context.Context, _ time.Time, _ *kernel.Store) ([]*order.Order, error) {
	return []*order.Order{}, nil
}

type stubUoWFactory struct{}

func (stubUoWFactory) Create() commands.OrderUoW { return nil }

type stubNotifier struct{}

func (stubNotifier) NotifyOrderCompleted(_ context.Context, _ *order.Order) {}

var _ ports.InventoryNotifier = stubNotifier{}

func newSweepJob(t *testing.T, period time.Duration) *jobs.StatusSweepJob {
	t.Helper()
	scheduler, err := services.NewTransitionScheduler(time.Minute, 3*time.Minute)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := commands.NewAdvanceOrdersCommandHandler(
		stubUoWFactory{}, stubOrderRepository{}, scheduler, stubNotifier{}, logger)
	return jobs.NewStatusSweepJob(handler, period, logger)
}

func TestStatusSweepJob_StartAndStop(t *testing.T) {
	job := newSweepJob(t, time.Hour)

	require.NoError(t, job.Start())
	status := job.Status()
	assert.True(t, status.Running)
	assert.Equal(t, time.Hour, status.Period)
	assert.False(t, status.NextRun.IsZero())

	job.Stop()
	status = job.Status()
	assert.False(t, status.Running)
	assert.True(t, status.NextRun.IsZero())
}

func TestStatusSweepJob_StartTwiceIsNoOp(t *testing.T) {
	job := newSweepJob(t, time.Hour)

	require.NoError(t, job.Start())
	require.NoError(t, job.Start())
	job.Stop()
}

func TestStatusSweepJob_StopWithoutStart(t *testing.T) {
	job := newSweepJob(t, time.Hour)
	job.Stop()

	status := job.Status()
	assert.False(t, status.Running)
}

func TestStatusSweepJob_TriggerUpdateWithoutTimer(t *testing.T) {
	job := newSweepJob(t, time.Hour)

	result, err := job.TriggerUpdate(t.Context())
	require.NoError(t, err)
	assert.Equal(t, commands.AdvanceOrdersResult{}, result)
}
