package services

import (
	"fmt"
	"time"

	"ordersim/internal/core/domain/model/order"
	"ordersim/internal/pkg/errs"
)

// TransitionScheduler is a domain service that computes the temporal side
// of the order state machine: when an order becomes eligible for its next
// automatic transition, and the fixed delivery estimate set at creation.
//
// The update interval is a single global configuration value, not
// per-store. Terminal statuses never get a due time.
//
// Example usage:
//
//	scheduler, _ := services.NewTransitionScheduler(time.Minute, 3*time.Minute)
//	due := scheduler.NextDueTime(order.Pending, time.Now())
//	// due is non-nil: pending orders are swept again after one interval
type TransitionScheduler struct {
	updateInterval time.Duration
	deliveryLead   time.Duration
}

// NewTransitionScheduler creates a scheduler with the configured automatic
// update interval and the delivery-estimate lead. Both must be positive.
func NewTransitionScheduler(updateInterval, deliveryLead time.Duration) (TransitionScheduler, error) {
	if updateInterval <= 0 {
		return TransitionScheduler{}, errs.NewValueIsInvalidErrorWithCause(
			"updateInterval", fmt.Errorf("%s is not a positive duration", updateInterval))
	}
	if deliveryLead <= 0 {
		return TransitionScheduler{}, errs.NewValueIsInvalidErrorWithCause(
			"deliveryLead", fmt.Errorf("%s is not a positive duration", deliveryLead))
	}
	return TransitionScheduler{updateInterval: updateInterval, deliveryLead: deliveryLead}, nil
}

// UpdateInterval returns the configured gap between automatic transitions.
func (s TransitionScheduler) UpdateInterval() time.Duration {
	return s.updateInterval
}

// NextDueTime returns the earliest moment the sweep may advance an order
// that just entered the given status: now plus one update interval for
// pending, in_transit, and store_pickup; nil for terminal or unrecognized
// statuses.
func (s TransitionScheduler) NextDueTime(status order.Status, now time.Time) *time.Time {
	switch status {
	case order.Pending, order.InTransit, order.StorePickup:
		due := now.Add(s.updateInterval)
		return &due
	default:
		return nil
	}
}

// EstimatedDelivery returns the delivery estimate for an order created at
// the given time. Computed once at creation and never recalculated.
func (s TransitionScheduler) EstimatedDelivery(createdAt time.Time) time.Time {
	return createdAt.Add(s.deliveryLead)
}
