package commands

import (
	"context"
	"log/slog"

	"pos/internal/core/ports"
)

// UpdateOrderStatusCommandHandler moves an order through its lifecycle.
//
// The transition table is advisory on this path: an off-table transition is
// applied and logged as a warning rather than rejected, because floor reality
// (a manager voiding a delivered order, a rushed confirmation skipped) beats
// the nominal flow. Concurrent updates of the same order are serialized by the
// aggregate's optimistic-lock version.
type UpdateOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.OrderPublisher
	logger     *slog.Logger
}

// NewUpdateOrderStatusCommandHandler creates a handler for status changes.
func NewUpdateOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.OrderPublisher,
	logger *slog.Logger,
) UpdateOrderStatusCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger.With("component", "update_order_status"),
	}
}

// Handle processes the status change command.
// Returns errs.ObjectNotFoundError when the order does not exist and
// errs.VersionIsInvalidError when a concurrent update won the write race.
func (h *UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) error {
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

	previous := aggregate.Status()
	offTable, err := aggregate.ChangeStatus(cmd.Target(), cmd.ChangedAt())
	if err != nil {
		return err
	}
	if offTable {
		h.logger.Warn("status transition outside the allowed table",
			"order_id", aggregate.ID().String(),
			"order_number", aggregate.Number(),
			"from", previous.String(),
			"to", cmd.Target().String())
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
