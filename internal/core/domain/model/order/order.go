package order

import (
	"errors"
	"fmt"
	"time"

	"ordersim/internal/core/domain/model/kernel"
	"ordersim/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through NewOrder or RestoreOrder. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")
)

// Order is the aggregate root for one storefront order. It manages the
// lifecycle from creation through automatic status progression to a
// terminal state.
//
// Order maintains these invariants:
//   - Identifier, owning user, and storefront are always set
//   - At least one line item; totalAmount equals the sum of line subtotals
//   - Status transitions follow the state machine in Status
//   - statusHistory is append-only with exactly one entry per status
//     change, including creation
//   - nextStatusUpdate is nil exactly when the status is terminal
//   - estimatedDelivery and createdAt are fixed at creation
//
// The struct uses private fields; mutation happens only through
// TransitionTo and Cancel.
type Order struct {
	id                kernel.OrderID
	userID            string
	store             kernel.Store
	items             []Item
	totalAmount       float64
	status            Status
	history           []HistoryEntry
	estimatedDelivery time.Time
	nextStatusUpdate  *time.Time
	createdAt         time.Time
	updatedAt         time.Time

	isConstructed bool
}

// NewOrder creates a freshly placed order in pending status.
//
// The caller supplies the scheduling outputs: estimatedDelivery (fixed,
// never recalculated) and firstUpdateDue (the earliest moment the sweep
// may advance the order). The first history entry is appended here, so a
// new order always has exactly one.
func NewOrder(
	id kernel.OrderID,
	userID string,
	store kernel.Store,
	items []Item,
	estimatedDelivery time.Time,
	firstUpdateDue time.Time,
	now time.Time,
) (*Order, error) {
	o := &Order{isConstructed: true}

	if err := errors.Join(
		o.setID(id),
		o.setUserID(userID),
		o.setStore(store),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	if estimatedDelivery.IsZero() {
		return nil, errs.NewValueIsRequiredError("estimatedDelivery")
	}
	if firstUpdateDue.IsZero() {
		return nil, errs.NewValueIsRequiredError("nextStatusUpdate")
	}

	o.status = Pending
	o.estimatedDelivery = estimatedDelivery
	due := firstUpdateDue
	o.nextStatusUpdate = &due
	o.createdAt = now
	o.updatedAt = now
	o.history = append(o.history, HistoryEntry{
		status:    Pending,
		timestamp: now,
		note:      fmt.Sprintf("Order created successfully for %s", store.Name()),
	})

	return o, nil
}

// RestoreOrder reconstructs an order from persistence.
// The total amount is recomputed from the line items rather than trusted
// from storage, and the nil-iff-terminal rule on nextStatusUpdate is
// re-checked so corrupt rows fail loudly at the boundary.
func RestoreOrder(
	id kernel.OrderID,
	userID string,
	store kernel.Store,
	items []Item,
	status Status,
	history []HistoryEntry,
	estimatedDelivery time.Time,
	nextStatusUpdate *time.Time,
	createdAt time.Time,
	updatedAt time.Time,
) (*Order, error) {
	o := &Order{isConstructed: true}

	if err := errors.Join(
		o.setID(id),
		o.setUserID(userID),
		o.setStore(store),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	if err := status.Validate(); err != nil {
		return nil, err
	}
	if status.IsTerminal() && nextStatusUpdate != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("nextStatusUpdate",
			fmt.Errorf("must be null for terminal status %s", status))
	}
	if !status.IsTerminal() && nextStatusUpdate == nil {
		return nil, errs.NewValueIsRequiredError("nextStatusUpdate")
	}

	o.status = status
	o.history = append(o.history, history...)
	o.estimatedDelivery = estimatedDelivery
	if nextStatusUpdate != nil {
		due := *nextStatusUpdate
		o.nextStatusUpdate = &due
	}
	o.createdAt = createdAt
	o.updatedAt = updatedAt

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique, store-prefixed identifier.
func (o *Order) ID() kernel.OrderID {
	return o.id
}

// UserID returns the identifier of the user who placed the order.
func (o *Order) UserID() string {
	return o.userID
}

// Store returns the storefront the order belongs to.
func (o *Order) Store() kernel.Store {
	return o.store
}

// Items returns a copy of the order lines.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// TotalAmount returns the sum of all line subtotals.
func (o *Order) TotalAmount() float64 {
	return o.totalAmount
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// History returns a copy of the append-only status history.
func (o *Order) History() []HistoryEntry {
	history := make([]HistoryEntry, len(o.history))
	copy(history, o.history)
	return history
}

// EstimatedDelivery returns the delivery estimate fixed at creation.
func (o *Order) EstimatedDelivery() time.Time {
	return o.estimatedDelivery
}

// NextStatusUpdate returns the due-time for the next automatic
// transition, or nil when the status is terminal.
func (o *Order) NextStatusUpdate() *time.Time {
	if o.nextStatusUpdate == nil {
		return nil
	}
	due := *o.nextStatusUpdate
	return &due
}

// CreatedAt returns the creation timestamp. Immutable.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the timestamp of the last mutation.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// TransitionTo moves the order to newStatus and schedules the following
// automatic update.
//
// A transition to the current status is an idempotent no-op: no history
// entry is appended and the order is returned unchanged. An illegal edge
// fails with TransitionIsInvalidError, which signals a caller bug rather
// than a retryable condition.
//
// nextUpdate must be nil exactly when newStatus is terminal.
func (o *Order) TransitionTo(newStatus Status, note string, nextUpdate *time.Time, now time.Time) error {
	if newStatus == o.status {
		return nil
	}

	if !o.status.CanTransitionTo(newStatus) {
		return errs.NewTransitionIsInvalidError(o.status.String(), newStatus.String())
	}

	if newStatus.IsTerminal() && nextUpdate != nil {
		return errs.NewValueIsInvalidErrorWithCause("nextStatusUpdate",
			fmt.Errorf("must be null for terminal status %s", newStatus))
	}
	if !newStatus.IsTerminal() && nextUpdate == nil {
		return errs.NewValueIsRequiredError("nextStatusUpdate")
	}

	o.status = newStatus
	o.history = append(o.history, HistoryEntry{status: newStatus, timestamp: now, note: note})
	if nextUpdate != nil {
		due := *nextUpdate
		o.nextStatusUpdate = &due
	} else {
		o.nextStatusUpdate = nil
	}
	o.updatedAt = now

	return nil
}

// Cancel applies the terminal cancelled transition by explicit request,
// bypassing the automatic progression.
//
// Fails with StatusIsTerminalError when the order is already completed
// or cancelled.
func (o *Order) Cancel(reason string, now time.Time) error {
	if o.status.IsTerminal() {
		return errs.NewStatusIsTerminalError(o.status.String())
	}
	return o.TransitionTo(Cancelled, reason, nil, now)
}

func (o *Order) setID(id kernel.OrderID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setUserID(userID string) error {
	if userID == "" {
		return errs.NewValueIsRequiredError("userId")
	}
	o.userID = userID
	return nil
}

func (o *Order) setStore(store kernel.Store) error {
	if err := store.Validate(); err != nil {
		return err
	}
	o.store = store
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	total := 0.0
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
		total += item.Subtotal()
	}

	o.items = make([]Item, len(items))
	copy(o.items, items)
	o.totalAmount = total
	return nil
}
