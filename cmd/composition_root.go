package cmd

import (
	"log/slog"

	"pos/internal/adapters/out/postgres"
	"pos/internal/adapters/out/postgres/settingsrepo"
	"pos/internal/adapters/out/rabbit"
	"pos/internal/core/application/usecases/commands"
	"pos/internal/core/application/usecases/queries"
	"pos/internal/settings"

	amqp "github.com/rabbitmq/amqp091-go"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	publisher  *rabbit.KitchenPublisher
	numbering  settings.NumberingConfig
	logger     *slog.Logger
}

func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	amqpConn *amqp.Connection,
	logger *slog.Logger,
) (CompositionRoot, error) {
	publisher, err := rabbit.NewKitchenPublisher(amqpConn)
	if err != nil {
		return CompositionRoot{}, err
	}

	store := settings.NewStore(settingsrepo.NewGormSettingsRepository(gormDB), config.SettingsCacheTTL)

	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		publisher:  publisher,
		numbering:  settings.NewNumberingConfig(store),
		logger:     logger,
	}, nil
}

// Close releases the outbound adapters owned by the root.
func (c *CompositionRoot) Close() error {
	return c.publisher.Close()
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.numbering, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateOrderStatusCommandHandler(f, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateAddOrderItemsCommandHandler() commands.AddOrderItemsCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewAddOrderItemsCommandHandler(f, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateMarkItemsServedCommandHandler() commands.MarkItemsServedCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewMarkItemsServedCommandHandler(f, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateCleanupSequencesCommandHandler() commands.CleanupSequencesCommandHandler {
	var f commands.SequenceUoWFactory = FuncSequenceUoWFactory(func() commands.SequenceUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCleanupSequencesCommandHandler(f)
}

func (c *CompositionRoot) CreateGetActiveOrdersQueryHandler() queries.GetActiveOrdersQueryHandler {
	return queries.NewGetActiveOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetShiftSummaryQueryHandler() queries.GetShiftSummaryQueryHandler {
	return queries.NewGetShiftSummaryQueryHandler(c.gormDB)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncSequenceUoWFactory func() commands.SequenceUoW

func (f FuncSequenceUoWFactory) Create() commands.SequenceUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
