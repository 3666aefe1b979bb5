// Package order contains the order aggregate and its status state machine.
//
// An order progresses automatically through pending, in_transit, and
// store_pickup to completed, driven by the periodic status sweep, with
// cancellation as an explicit terminal branch from any non-terminal state.
// The aggregate enforces the append-only status history, the recomputed
// line-item totals, and the rule that the next automatic update time is
// unset exactly when the order is in a terminal status.
package order
