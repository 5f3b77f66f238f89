// Package services provides domain services that orchestrate business
// operations across multiple aggregates in the dispatch system. It implements
// workflows that don't naturally belong to a single aggregate root.
//
// The package includes:
//   - AssignmentEngine: first-fit greedy packing of unassigned orders into a
//     new bundle for one courier
//   - ReassignmentCascade: revalidation of a courier's active orders after a
//     category, region or working-hours change
//   - DeliveryMetrics: delivery duration derivation and the courier rating
//     function
//
// All services are pure over the aggregates handed to them; repository access
// and transaction boundaries belong to the application handlers.
package services
