package commands

import (
	"errors"

	"ordersim/internal/core/domain/model/kernel"
	"ordersim/internal/core/domain/model/order"
	"ordersim/internal/pkg/errs"
	"ordersim/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a request to place a new order under one of
// the configured storefronts. The store must already be resolved through a
// kernel.StoreSet; unresolved store names never reach the handler.
//
// Example:
//
//	store, err := storeSet.Resolve("kapruka")
//	if err != nil {
//	    return err
//	}
//
//	cmd, err := NewCreateOrderCommand("user-42", store, items)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	placed, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	userID string
	store  kernel.Store
	items  []order.Item

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place a new order.
// Validates that the user identifier is present, the store was resolved,
// and at least one valid line item is supplied.
func NewCreateOrderCommand(userID string, store kernel.Store, items []order.Item) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setUserID(userID),
		orderCommand.setStore(store),
		orderCommand.setItems(items),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// UserID returns the identifier of the user placing the order.
func (c CreateOrderCommand) UserID() string {
	return c.userID
}

// Store returns the resolved storefront the order is placed under.
func (c CreateOrderCommand) Store() kernel.Store {
	return c.store
}

// Items returns the order lines.
func (c CreateOrderCommand) Items() []order.Item {
	items := make([]order.Item, len(c.items))
	copy(items, c.items)
	return items
}

func (c *CreateOrderCommand) setUserID(userID string) error {
	if userID == "" {
		return errs.NewValueIsRequiredError("userId")
	}

	c.userID = userID
	return nil
}

func (c *CreateOrderCommand) setStore(store kernel.Store) error {
	if err := store.Validate(); err != nil {
		return err
	}

	c.store = store
	return nil
}

func (c *CreateOrderCommand) setItems(items []order.Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	c.items = make([]order.Item, len(items))
	copy(c.items, items)
	return nil
}
