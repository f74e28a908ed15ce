package commands

import (
	"context"
	"log/slog"

	"pos/internal/core/ports"
)

// MarkItemsServedCommandHandler serves every item of an order at once.
//
// The operation is idempotent: repeating it on an order whose items are
// already served changes nothing and is still reported as success. Kitchen
// displays only hear about calls that actually changed something.
type MarkItemsServedCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.OrderPublisher
	logger     *slog.Logger
}

// NewMarkItemsServedCommandHandler creates a handler for bulk serve operations.
func NewMarkItemsServedCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.OrderPublisher,
	logger *slog.Logger,
) MarkItemsServedCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return MarkItemsServedCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger.With("component", "mark_items_served"),
	}
}

// Handle processes the bulk serve command.
// Returns errs.ObjectNotFoundError when the order does not exist.
func (h *MarkItemsServedCommandHandler) Handle(ctx context.Context, cmd MarkItemsServedCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	changed := aggregate.MarkAllServed()
	if changed == 0 {
		return uow.Commit(ctx)
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if err = h.publisher.Publish(ctx, aggregate); err != nil {
		h.logger.Warn("kitchen publish failed",
			"order_id", aggregate.ID().String(),
			"order_number", aggregate.Number(),
			"error", err)
	}

	return nil
}
