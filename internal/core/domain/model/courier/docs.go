// Package courier provides domain entities and business logic for courier management
// in the dispatch system. It implements the Courier aggregate root together with
// the static category capacity table.
//
// The package includes:
//   - Courier: The aggregate root managing identity, availability, earnings and rating
//   - Category: The capacity table mapping a category to carry capacity and earning coefficient
//
// Key business rules:
//   - Couriers must have a positive identifier, a known category, served regions and working hours
//   - Carry capacity and the earning coefficient are functions of the category only
//   - Earnings are credited exactly once per bundle, at finalization
//   - Attribute changes (category, regions, hours) trigger the reassignment cascade,
//     which is orchestrated outside this package
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package courier
