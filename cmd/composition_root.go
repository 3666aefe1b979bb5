package cmd

import (
	"log/slog"

	httpin "ordersim/internal/adapters/in/http"
	kafkaout "ordersim/internal/adapters/out/kafka"
	"ordersim/internal/adapters/out/postgres"
	"ordersim/internal/adapters/out/postgres/orderrepo"
	"ordersim/internal/core/application/usecases/commands"
	"ordersim/internal/core/application/usecases/queries"
	"ordersim/internal/core/domain/model/kernel"
	"ordersim/internal/core/domain/services"
	"ordersim/internal/core/ports"
	"ordersim/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters, domain services, and use case handlers.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	stores     kernel.StoreSet
	scheduler  services.TransitionScheduler
	notifier   ports.InventoryNotifier
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (CompositionRoot, error) {
	stores, err := config.StoreSet()
	if err != nil {
		return CompositionRoot{}, err
	}

	scheduler, err := services.NewTransitionScheduler(config.UpdateInterval, config.DeliveryLead)
	if err != nil {
		return CompositionRoot{}, err
	}

	var notifier ports.InventoryNotifier = kafkaout.NewNoopInventoryNotifier()
	if config.KafkaBrokers != "" {
		notifier = kafkaout.NewInventoryNotifier(config.KafkaBrokers, config.KafkaInventoryTopic, logger)
	}

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB, stores),
		stores:     stores,
		scheduler:  scheduler,
		notifier:   notifier,
		logger:     logger,
	}, nil
}

// Stores returns the configured storefront table.
func (c *CompositionRoot) Stores() kernel.StoreSet {
	return c.stores
}

// Close releases outbound adapter resources.
func (c *CompositionRoot) Close() error {
	if closer, ok := c.notifier.(*kafkaout.InventoryNotifier); ok {
		return closer.Close()
	}
	return nil
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.scheduler)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateAdvanceOrdersCommandHandler() commands.AdvanceOrdersCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})

	// The due-list query runs outside any transaction; tracked aggregates
	// are re-fetched inside per-order transactions anyway.
	readRepo := orderrepo.NewGormOrderRepository(c.gormDB, c.stores, noopAggregateTracker{})

	return commands.NewAdvanceOrdersCommandHandler(f, readRepo, c.scheduler, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrdersByUserQueryHandler() queries.GetOrdersByUserQueryHandler {
	return queries.NewGetOrdersByUserQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderStatsQueryHandler() queries.GetOrderStatsQueryHandler {
	return queries.NewGetOrderStatsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateStatusSweepJob(config Config) *jobs.StatusSweepJob {
	return jobs.NewStatusSweepJob(c.CreateAdvanceOrdersCommandHandler(), config.SweepPeriod, c.logger)
}

func (c *CompositionRoot) CreateHTTPServer(sweepJob *jobs.StatusSweepJob) *httpin.Server {
	return httpin.NewServer(
		c.stores,
		c.CreateCreateOrderCommandHandler(),
		c.CreateCancelOrderCommandHandler(),
		c.CreateGetOrderQueryHandler(),
		c.CreateGetOrdersByUserQueryHandler(),
		c.CreateGetOrderStatsQueryHandler(),
		sweepJob,
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type noopAggregateTracker struct{}

func (noopAggregateTracker) TrackAggregate(kernel.OrderID, interface{}) {}
