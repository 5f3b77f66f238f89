// Package order provides domain entities and business logic for order management
// in the dispatch system. It implements the Order aggregate root with lifecycle
// management over assignment, release and completion.
//
// Key business rules:
//   - Orders must have a positive identifier, a weight within intake bounds,
//     a non-negative region and at least one delivery-hour window
//   - An order holds at most one live bundle reference at any time
//   - Orders released by the reassignment cascade return to the unassigned pool
//   - Completion is final and records the derived delivery duration
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
