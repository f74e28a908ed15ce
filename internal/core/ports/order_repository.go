package ports

import (
	"context"

	"pos/internal/core/domain/model/kernel"
	"pos/internal/core/domain/model/order"
)

// OrderRepository defines persistence operations for the Order aggregate.
type OrderRepository interface {
	// Add saves a new order together with its items.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update saves an existing order and its items. The write is guarded by
	// the aggregate's optimistic-lock version; a stale version surfaces as
	// errs.VersionIsInvalidError.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order with its items by ID.
	// Returns errs.ObjectNotFoundError when no order exists.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllActive retrieves all orders not yet in a terminal status.
	GetAllActive(ctx context.Context) ([]*order.Order, error)
}
