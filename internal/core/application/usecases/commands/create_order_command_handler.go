package commands

import (
	"context"
	"log/slog"

	"pos/internal/core/domain/model/kernel"
	"pos/internal/core/domain/model/order"
	"pos/internal/core/domain/services"
	"pos/internal/core/ports"
)

// CreateOrderResult reports what intake assigned: the generated order number
// and the business date it is scoped to.
type CreateOrderResult struct {
	OrderID      kernel.UUID
	Number       int
	BusinessDate kernel.BusinessDate
}

// CreateOrderCommandHandler handles the business logic for order intake.
//
// Within one transaction it assigns the next order number for the business
// date, persists the order with its items, and deducts stock for every line.
// If any step fails the whole intake rolls back, so no number is ever visible
// on a half-created order and no stock is lost to one.
//
// After a successful commit the order snapshot is published to kitchen
// displays on a best-effort basis: a publish failure is logged and never
// reported to the caller.
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
	numbering  NumberingConfig
	publisher  ports.OrderPublisher
	logger     *slog.Logger
}

// NewCreateOrderCommandHandler creates a handler for order intake operations.
func NewCreateOrderCommandHandler(
	uowFactory UoWFactory,
	numbering NumberingConfig,
	publisher ports.OrderPublisher,
	logger *slog.Logger,
) CreateOrderCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		numbering:  numbering,
		publisher:  publisher,
		logger:     logger.With("component", "create_order"),
	}
}

// Handle processes the order creation command.
// On success it returns the assigned order number and business date.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (CreateOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return CreateOrderResult{}, err
	}

	granularity, err := h.numbering.Granularity(ctx)
	if err != nil {
		return CreateOrderResult{}, err
	}

	generator, err := services.NewOrderNumberGenerator(granularity)
	if err != nil {
		return CreateOrderResult{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return CreateOrderResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	number, businessDate, err := generator.Next(ctx, uow.SequenceRepository(), cmd.PlacedAt())
	if err != nil {
		return CreateOrderResult{}, err
	}

	items := make([]*order.Item, 0, len(cmd.Lines()))
	for _, line := range cmd.Lines() {
		item, itemErr := order.NewItem(kernel.NewUUID(), line.ProductID(), line.Quantity(), line.Notes())
		if itemErr != nil {
			return CreateOrderResult{}, itemErr
		}
		items = append(items, item)
	}

	aggregate, err := order.NewOrder(cmd.OrderID(), number, businessDate, cmd.Source(), items)
	if err != nil {
		return CreateOrderResult{}, err
	}

	// Delivery-platform orders arrive prepaid.
	if cmd.Source() == order.Platform {
		aggregate.MarkPaid()
	}

	stockRepo := uow.StockRepository()
	for _, line := range cmd.Lines() {
		if err = stockRepo.Deduct(ctx, line.ProductID(), line.Quantity()); err != nil {
			return CreateOrderResult{}, err
		}
	}

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return CreateOrderResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return CreateOrderResult{}, err
	}

	if err = h.publisher.Publish(ctx, aggregate); err != nil {
		h.logger.Warn("kitchen publish failed",
			"order_id", aggregate.ID().String(),
			"order_number", aggregate.Number(),
			"error", err)
	}

	return CreateOrderResult{
		OrderID:      aggregate.ID(),
		Number:       aggregate.Number(),
		BusinessDate: aggregate.BusinessDate(),
	}, nil
}
