// Package services provides domain services for the order simulator.
//
// The package includes:
//   - TransitionScheduler: computes due-times for automatic status
//     transitions and the fixed delivery estimate assigned at creation
//
// Domain services carry business logic that does not naturally belong to
// a single aggregate root, following Domain-Driven Design principles.
package services
