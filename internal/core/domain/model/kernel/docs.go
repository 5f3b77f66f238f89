// Package kernel provides core domain primitives and utilities for the dispatch system.
// It implements fundamental building blocks following Domain-Driven Design principles
// that are used throughout the domain model.
//
// The package includes:
//   - TimeWindow: A value object for recurring daily time intervals with overlap matching
//   - AnyOverlap: The availability check shared by assignment and reassignment
//   - ConstructorGuard: A defensive programming pattern to ensure proper object construction
//
// These primitives enforce domain invariants and validation rules, ensuring that
// domain objects are always in a valid state. They are designed to be immutable
// and thread-safe, making them suitable for concurrent use.
package kernel
