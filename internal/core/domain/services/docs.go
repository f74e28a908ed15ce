// Package services provides domain services that orchestrate business operations
// across multiple domain entities in the POS system. It implements workflows
// that don't naturally belong to a single aggregate root.
//
// The package includes:
//   - OrderNumberGenerator: A domain service that produces sequential,
//     collision-free order numbers from sharded durable counters
//
// Domain services coordinate between aggregates and external collaborators,
// implementing business logic that spans bounded contexts following
// Domain-Driven Design principles.
package services
