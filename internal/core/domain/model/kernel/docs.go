// Package kernel provides core domain primitives for the order simulator.
// It implements fundamental building blocks following Domain-Driven Design
// principles that are used throughout the domain model.
//
// The package includes:
//   - OrderID: A value object for store-prefixed order identifiers with
//     generation, parsing, and comparison capabilities
//   - Store / StoreSet: Value objects for the configured storefront set,
//     carrying per-store identifier prefixes and inventory category mappings
//
// These primitives enforce domain invariants and validation rules, ensuring
// that domain objects are always in a valid state. They are immutable and
// thread-safe, making them suitable for concurrent use.
package kernel
