package ports

import (
	"context"

	"pos/internal/core/domain/model/kernel"
	"pos/internal/core/domain/model/stock"
)

// StockRepository defines persistence operations for per-product stock levels.
type StockRepository interface {
	// Deduct atomically removes quantity units from the product's stock
	// level. The decrement is a single guarded statement; when fewer units
	// are on hand than requested it fails with stock.ErrInsufficientStock
	// and leaves the level untouched.
	Deduct(ctx context.Context, productID kernel.UUID, quantity int) error

	// Get retrieves the stock level for a product.
	// Returns errs.ObjectNotFoundError when the product has no stock row.
	Get(ctx context.Context, productID kernel.UUID) (stock.Level, error)

	// Replenish adds quantity units to the product's stock level,
	// creating the row when absent.
	Replenish(ctx context.Context, productID kernel.UUID, quantity int) error
}
