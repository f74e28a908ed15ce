package commands

import (
	"context"
	"log/slog"

	"pos/internal/core/domain/model/kernel"
	"pos/internal/core/domain/model/order"
	"pos/internal/core/ports"
)

// AddOrderItemsCommandHandler appends product lines to an existing order.
//
// Stock for the new lines is deducted in the same transaction as the order
// update. Appending to a delivered order reopens it; appending to a cancelled
// order is rejected by the aggregate.
type AddOrderItemsCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.OrderPublisher
	logger     *slog.Logger
}

// NewAddOrderItemsCommandHandler creates a handler for line append operations.
func NewAddOrderItemsCommandHandler(
	uowFactory UoWFactory,
	publisher ports.OrderPublisher,
	logger *slog.Logger,
) AddOrderItemsCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return AddOrderItemsCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger.With("component", "add_order_items"),
	}
}

// Handle processes the line append command.
// Returns errs.ObjectNotFoundError when the order does not exist,
// order.ErrOrderIsCancelled when the order can no longer accept items, and
// stock.ErrInsufficientStock when a line cannot be covered.
func (h *AddOrderItemsCommandHandler) Handle(ctx context.Context, cmd AddOrderItemsCommand) error {
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

	items := make([]*order.Item, 0, len(cmd.Lines()))
	for _, line := range cmd.Lines() {
		item, itemErr := order.NewItem(kernel.NewUUID(), line.ProductID(), line.Quantity(), line.Notes())
		if itemErr != nil {
			return itemErr
		}
		items = append(items, item)
	}

	if err = aggregate.AddItems(items); err != nil {
		return err
	}

	stockRepo := uow.StockRepository()
	for _, line := range cmd.Lines() {
		if err = stockRepo.Deduct(ctx, line.ProductID(), line.Quantity()); err != nil {
			return err
		}
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
