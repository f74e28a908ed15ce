package ports

import (
	"context"

	"pos/internal/core/domain/model/order"
)

// OrderPublisher fans out order snapshots to kitchen-display subscribers.
//
// Publish is invoked after the mutating transaction commits and is strictly
// best-effort: delivery is at-most-once, no acknowledgment is awaited, and a
// publish failure must never roll back or fail the mutation that triggered
// it. Callers log publish errors and move on.
type OrderPublisher interface {
	Publish(ctx context.Context, aggregate *order.Order) error
}
