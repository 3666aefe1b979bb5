package commands

import (
	"errors"

	"ordersim/internal/pkg/guard"
)

var ErrAdvanceOrdersCommandIsNotConstructed = errors.New(
	"AdvanceOrdersCommand must be created via NewAdvanceOrdersCommand constructor",
)

// AdvanceOrdersCommand triggers one sweep over all orders whose automatic
// status update is due. Each eligible order moves one step along the
// lifecycle; orders that reach a terminal status drop out of future sweeps.
//
// Example:
//
//	cmd := NewAdvanceOrdersCommand()
//	handler := NewAdvanceOrdersCommandHandler(uowFactory, readRepo, scheduler, notifier, logger)
//
//	// Run periodically, or on demand via the manual trigger endpoint
//	result, err := handler.Handle(ctx, cmd)
type AdvanceOrdersCommand struct {
	guard guard.ConstructorGuard
}

// NewAdvanceOrdersCommand creates a command to run one status sweep.
// This is a parameterless command that covers every configured storefront.
func NewAdvanceOrdersCommand() AdvanceOrdersCommand {
	command := AdvanceOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}

	return command
}

// Validate ensures the command was created through the constructor.
// Returns ErrAdvanceOrdersCommandIsNotConstructed if validation fails.
func (c *AdvanceOrdersCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceOrdersCommandIsNotConstructed)
}
