package commands

import (
	"errors"
	"strings"

	"ordersim/internal/core/domain/model/kernel"
	"ordersim/internal/pkg/guard"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

// DefaultCancellationReason is recorded in the status history when the
// caller does not supply a reason.
const DefaultCancellationReason = "Cancelled by user"

// CancelOrderCommand represents an explicit user request to cancel an order
// before it reaches a terminal status.
//
// Example:
//
//	id, _ := kernel.OrderIDFromString("GLW-1756600000000-3FA85F64")
//	cmd, err := NewCancelOrderCommand(id, "changed my mind")
//	if err != nil {
//	    return err
//	}
//
//	cancelled, err := handler.Handle(ctx, cmd)
type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.OrderID
	reason  string

	guard guard.ConstructorGuard
}

// NewCancelOrderCommand creates a command to cancel an order.
// An empty reason falls back to DefaultCancellationReason.
func NewCancelOrderCommand(orderID kernel.OrderID, reason string) (CancelOrderCommand, error) {
	cancelCommand := CancelOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cancelCommand.setOrderID(orderID); err != nil {
		return CancelOrderCommand{}, err
	}
	cancelCommand.setReason(reason)

	return cancelCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCancelOrderCommandIsNotConstructed if validation fails.
func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to cancel.
func (c CancelOrderCommand) OrderID() kernel.OrderID {
	return c.orderID
}

// Reason returns the cancellation reason recorded in the status history.
func (c CancelOrderCommand) Reason() string {
	return c.reason
}

func (c *CancelOrderCommand) setOrderID(orderID kernel.OrderID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CancelOrderCommand) setReason(reason string) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = DefaultCancellationReason
	}

	c.reason = reason
}
