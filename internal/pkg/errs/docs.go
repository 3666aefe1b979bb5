// Package errs provides standardized error types for the order simulator.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package covers the failure taxonomy of the core order operations:
//   - ValueIsRequiredError / ValueIsInvalidError: malformed caller input,
//     including store identifiers outside the configured set
//   - ValueIsOutOfRangeError: numeric values outside allowed bounds
//   - ObjectNotFoundError: lookups that matched nothing
//   - ObjectAlreadyExistsError: order identifier collisions
//   - StatusIsTerminalError: operations against completed/cancelled orders
//   - TransitionIsInvalidError: illegal status-machine edges (caller bug)
//   - StorageUnavailableError: the record store is unreachable
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrObjectNotFound)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel, so errors.Is classifies by kind
//
// HTTP adapters map these kinds to stable user-visible responses; raw store
// errors are only ever carried as the Cause and never shown verbatim.
package errs
