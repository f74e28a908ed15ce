// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"pos/internal/core/domain/services"
	"pos/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// SequenceRepoFactory provides access to the sequence counter store within a transaction.
	SequenceRepoFactory interface {
		SequenceRepository() ports.SequenceRepository
	}

	// StockRepoFactory provides access to the stock repository within a transaction.
	StockRepoFactory interface {
		StockRepository() ports.StockRepository
	}

	// OrderUoW manages transactions for order-only operations.
	// Used by commands that mutate a single existing order aggregate.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// SequenceUoW manages transactions for counter-administration operations.
	SequenceUoW interface {
		TxManager
		SequenceRepoFactory
	}

	// SequenceUoWFactory creates new sequence unit of work instances.
	SequenceUoWFactory interface {
		Create() SequenceUoW
	}

	// UoW manages transactions spanning orders, number sequences and stock.
	//
	// Order intake is the reason this composition exists: the number
	// assignment, the order insert and the stock deduction must commit or
	// abort as one.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   sequences := uow.SequenceRepository()
	//   orders := uow.OrderRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		SequenceRepoFactory
		StockRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)

// NumberingConfig supplies the order-number shard granularity. Implementations
// typically read from the cached settings store, so a granularity change takes
// effect without redeploy.
type NumberingConfig interface {
	Granularity(ctx context.Context) (services.Granularity, error)
}
