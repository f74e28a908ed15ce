package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"pos/internal/core/application/usecases/commands"
	"pos/internal/core/domain/model/kernel"
	"pos/internal/core/domain/model/order"
	"pos/internal/core/domain/model/stock"
	"pos/internal/core/domain/services"
	"pos/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllActive(_ context.Context) ([]*order.Order, error) {
	return nil, errors.New("not implemented in mock")
}

type MockCounterRepository struct{ mock.Mock }

func (m *MockCounterRepository) Next(ctx context.Context, key string) (int, error) {
	args := m.Called(ctx, key)
	return args.Int(0), args.Error(1)
}

func (m *MockCounterRepository) DeleteOlderThan(ctx context.Context, cutoffKey string) (int64, error) {
	args := m.Called(ctx, cutoffKey)
	return args.Get(0).(int64), args.Error(1)
}

type MockStockRepository struct{ mock.Mock }

func (m *MockStockRepository) Deduct(ctx context.Context, productID kernel.UUID, quantity int) error {
	args := m.Called(ctx, productID, quantity)
	return args.Error(0)
}

func (m *MockStockRepository) Get(_ context.Context, _ kernel.UUID) (stock.Level, error) {
	return stock.Level{}, errors.New("not implemented in mock")
}

func (m *MockStockRepository) Replenish(_ context.Context, _ kernel.UUID, _ int) error {
	return errors.New("not implemented in mock")
}

type MockKitchenPublisher struct{ mock.Mock }

func (m *MockKitchenPublisher) Publish(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

type MockNumberingConfig struct{ mock.Mock }

func (m *MockNumberingConfig) Granularity(ctx context.Context) (services.Granularity, error) {
	args := m.Called(ctx)
	return args.Get(0).(services.Granularity), args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) SequenceRepository() ports.SequenceRepository {
	args := m.Called()
	return args.Get(0).(ports.SequenceRepository)
}

func (m *MockUoW) StockRepository() ports.StockRepository {
	args := m.Called()
	return args.Get(0).(ports.StockRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	placedAt := time.Date(2026, 1, 19, 12, 0, 0, 0, time.UTC)
	productID := kernel.NewUUID()
	line, _ := commands.NewOrderLine(productID, 2, "")
	cmd, _ := commands.NewCreateOrderCommand(kernel.NewUUID(), order.DineIn, placedAt, []commands.OrderLine{line})

	numbering := new(MockNumberingConfig)
	numbering.On("Granularity", ctx).Return(services.GranularityDaily, nil).Once()

	orderRepo := new(MockOrderRepository)
	counterRepo := new(MockCounterRepository)
	stockRepo := new(MockStockRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("SequenceRepository").Return(counterRepo).Once(),
		counterRepo.On("Next", ctx, "20260119").Return(17, nil).Once(),
		uow.On("StockRepository").Return(stockRepo).Once(),
		stockRepo.On("Deduct", ctx, productID, 2).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockKitchenPublisher)
	publisher.On("Publish", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once()

	h := commands.NewCreateOrderCommandHandler(factory, numbering, publisher, nil)
	result, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 17, result.Number)
	assert.Equal(t, "20260119", result.BusinessDate.Key())
	assert.True(t, result.OrderID.IsEqual(cmd.OrderID()))
	orderRepo.AssertExpectations(t)
	counterRepo.AssertExpectations(t)
	stockRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.CreateOrderCommand{} // not constructed properly

	h := commands.NewCreateOrderCommandHandler(new(MockUoWFactory), new(MockNumberingConfig), new(MockKitchenPublisher), nil)
	_, err := h.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
}

func TestCreateOrderCommandHandler_Handle_NumberGenerationError(t *testing.T) {
	ctx := t.Context()
	placedAt := time.Date(2026, 1, 19, 12, 0, 0, 0, time.UTC)
	line, _ := commands.NewOrderLine(kernel.NewUUID(), 1, "")
	cmd, _ := commands.NewCreateOrderCommand(kernel.NewUUID(), order.Takeaway, placedAt, []commands.OrderLine{line})

	numbering := new(MockNumberingConfig)
	numbering.On("Granularity", ctx).Return(services.GranularityDaily, nil).Once()

	counterRepo := new(MockCounterRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("SequenceRepository").Return(counterRepo).Once(),
		counterRepo.On("Next", ctx, "20260119").Return(0, errors.New("connection reset")).Twice(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, numbering, new(MockKitchenPublisher), nil)
	_, err := h.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, services.ErrNumberGenerationFailed)
	uow.AssertExpectations(t)
	counterRepo.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_InsufficientStock(t *testing.T) {
	ctx := t.Context()
	placedAt := time.Date(2026, 1, 19, 12, 0, 0, 0, time.UTC)
	productID := kernel.NewUUID()
	line, _ := commands.NewOrderLine(productID, 5, "")
	cmd, _ := commands.NewCreateOrderCommand(kernel.NewUUID(), order.DineIn, placedAt, []commands.OrderLine{line})

	numbering := new(MockNumberingConfig)
	numbering.On("Granularity", ctx).Return(services.GranularityDaily, nil).Once()

	counterRepo := new(MockCounterRepository)
	stockRepo := new(MockStockRepository)
	uow := new(MockUoW)
	stockErr := errors.New("insufficient stock")
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("SequenceRepository").Return(counterRepo).Once(),
		counterRepo.On("Next", ctx, "20260119").Return(3, nil).Once(),
		uow.On("StockRepository").Return(stockRepo).Once(),
		stockRepo.On("Deduct", ctx, productID, 5).Return(stockErr).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, numbering, new(MockKitchenPublisher), nil)
	_, err := h.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, stockErr)
	uow.AssertExpectations(t)
	stockRepo.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()
	placedAt := time.Date(2026, 1, 19, 12, 0, 0, 0, time.UTC)
	productID := kernel.NewUUID()
	line, _ := commands.NewOrderLine(productID, 1, "")
	cmd, _ := commands.NewCreateOrderCommand(kernel.NewUUID(), order.Platform, placedAt, []commands.OrderLine{line})

	numbering := new(MockNumberingConfig)
	numbering.On("Granularity", ctx).Return(services.GranularityDaily, nil).Once()

	orderRepo := new(MockOrderRepository)
	counterRepo := new(MockCounterRepository)
	stockRepo := new(MockStockRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("SequenceRepository").Return(counterRepo).Once(),
		counterRepo.On("Next", ctx, "20260119").Return(8, nil).Once(),
		uow.On("StockRepository").Return(stockRepo).Once(),
		stockRepo.On("Deduct", ctx, productID, 1).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(errors.New("commit error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	// Publisher must not be called when the transaction did not commit.
	publisher := new(MockKitchenPublisher)

	h := commands.NewCreateOrderCommandHandler(factory, numbering, publisher, nil)
	_, err := h.Handle(ctx, cmd)

	require.Error(t, err)
	uow.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_PlatformOrderIsPrepaid(t *testing.T) {
	ctx := t.Context()
	placedAt := time.Date(2026, 1, 19, 12, 0, 0, 0, time.UTC)
	productID := kernel.NewUUID()
	line, _ := commands.NewOrderLine(productID, 1, "")
	cmd, _ := commands.NewCreateOrderCommand(kernel.NewUUID(), order.Platform, placedAt, []commands.OrderLine{line})

	numbering := new(MockNumberingConfig)
	numbering.On("Granularity", ctx).Return(services.GranularityDaily, nil).Once()

	var stored *order.Order
	orderRepo := new(MockOrderRepository)
	counterRepo := new(MockCounterRepository)
	stockRepo := new(MockStockRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("SequenceRepository").Return(counterRepo).Once(),
		counterRepo.On("Next", ctx, "20260119").Return(4, nil).Once(),
		uow.On("StockRepository").Return(stockRepo).Once(),
		stockRepo.On("Deduct", ctx, productID, 1).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).
			Run(func(args mock.Arguments) {
				stored = args.Get(1).(*order.Order)
			}).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockKitchenPublisher)
	publisher.On("Publish", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once()

	h := commands.NewCreateOrderCommandHandler(factory, numbering, publisher, nil)
	_, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, order.Paid, stored.PaymentStatus())
}

func TestCreateOrderCommandHandler_Handle_PublishFailureIsSwallowed(t *testing.T) {
	ctx := t.Context()
	placedAt := time.Date(2026, 1, 19, 12, 0, 0, 0, time.UTC)
	productID := kernel.NewUUID()
	line, _ := commands.NewOrderLine(productID, 1, "")
	cmd, _ := commands.NewCreateOrderCommand(kernel.NewUUID(), order.DineIn, placedAt, []commands.OrderLine{line})

	numbering := new(MockNumberingConfig)
	numbering.On("Granularity", ctx).Return(services.GranularityDaily, nil).Once()

	orderRepo := new(MockOrderRepository)
	counterRepo := new(MockCounterRepository)
	stockRepo := new(MockStockRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("SequenceRepository").Return(counterRepo).Once(),
		counterRepo.On("Next", ctx, "20260119").Return(9, nil).Once(),
		uow.On("StockRepository").Return(stockRepo).Once(),
		stockRepo.On("Deduct", ctx, productID, 1).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockKitchenPublisher)
	publisher.On("Publish", ctx, mock.AnythingOfType("*order.Order")).Return(errors.New("broker unreachable")).Once()

	h := commands.NewCreateOrderCommandHandler(factory, numbering, publisher, nil)
	result, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 9, result.Number)
	publisher.AssertExpectations(t)
}
