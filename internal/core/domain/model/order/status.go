package order

import (
	"fmt"

	"ordersim/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct fulfilment workflow.
//
// State transitions:
//
//	pending ──> in_transit ──> store_pickup ──> completed
//	   │            │                │
//	   └────────────┴────────────────┴──> cancelled
//
// completed and cancelled are terminal: no transition out of either is
// valid, automatic or manual. Self-transitions are never valid edges;
// the aggregate treats a transition to the current status as an
// idempotent no-op instead.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status assigned at order creation.
	Pending

	// InTransit indicates the order has left the storefront.
	InTransit

	// StorePickup indicates the order is ready at its pickup point.
	StorePickup

	// Completed indicates the order reached the customer. Terminal.
	Completed

	// Cancelled indicates the order was cancelled by explicit request.
	// Terminal; reachable from any non-terminal status.
	Cancelled
)

// getStatusStrings returns a map of Status values to their wire representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:     "unknown",
		Pending:     "pending",
		InTransit:   "in_transit",
		StorePickup: "store_pickup",
		Completed:   "completed",
		Cancelled:   "cancelled",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:     "pending",
		InTransit:   "in_transit",
		StorePickup: "store_pickup",
		Completed:   "completed",
		Cancelled:   "cancelled",
	}
}

// StatusFromString parses a wire representation such as "in_transit".
// Returns an error for anything outside the valid status set.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid.
// Unknown (0) and any out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status, e.g. "store_pickup".
// Returns "unknown" for invalid values. Implements fmt.Stringer and is
// safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status admits no further transitions.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// Next returns the successor in the automatic progression
// pending -> in_transit -> store_pickup -> completed.
//
// The second return value is false for terminal statuses and for any
// unrecognized value; callers treat that as "nothing to do" rather than
// an error, so a corrupt row can never wedge a sweep.
func (s Status) Next() (Status, bool) {
	switch s {
	case Pending:
		return InTransit, true
	case InTransit:
		return StorePickup, true
	case StorePickup:
		return Completed, true
	default:
		return Unknown, false
	}
}

// CanTransitionTo reports whether the edge from s to candidate is legal.
//
// The legal edges are the fixed progression steps plus cancellation from
// any valid non-terminal status. Everything else is illegal, including
// self-transitions and any edge out of completed or cancelled.
func (s Status) CanTransitionTo(candidate Status) bool {
	if next, ok := s.Next(); ok && candidate == next {
		return true
	}
	return candidate == Cancelled && s.Validate() == nil && !s.IsTerminal()
}
