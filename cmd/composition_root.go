package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	httpadapter "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/clock"
	"fulfillment/internal/adapters/out/eventbus"
	"fulfillment/internal/adapters/out/kafka"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/rabbitmq"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/jobs"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

const relayBuffer = 256

type CompositionRoot struct {
	configs     Config
	gormDB      *gorm.DB
	uowFactory  *postgres.GormUnitOfWorkFactory
	broadcaster *eventbus.Broadcaster
	logger      *slog.Logger
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		configs:     configs,
		gormDB:      gormDB,
		uowFactory:  postgres.NewGormUnitOfWorkFactory(gormDB, configs.QueueLockTimeout),
		broadcaster: eventbus.NewBroadcaster(logger),
		logger:      logger,
	}
}

func (c *CompositionRoot) Broadcaster() *eventbus.Broadcaster {
	return c.broadcaster
}

func (c *CompositionRoot) CreateQueueTransactor() commands.QueueTransactor {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewQueueTransactor(f, c.broadcaster, clock.NewSystemClock(), c.configs.QueueMaxAttempts, c.logger)
}

func (c *CompositionRoot) CreateCreateQueuedOrderCommandHandler() commands.CreateQueuedOrderCommandHandler {
	return commands.NewCreateQueuedOrderCommandHandler(c.CreateQueueTransactor())
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	return commands.NewChangeOrderStatusCommandHandler(c.CreateQueueTransactor())
}

func (c *CompositionRoot) CreateChangeDeliveryTypeCommandHandler() commands.ChangeDeliveryTypeCommandHandler {
	return commands.NewChangeDeliveryTypeCommandHandler(c.CreateQueueTransactor())
}

func (c *CompositionRoot) CreateSetQueuePositionCommandHandler() commands.SetQueuePositionCommandHandler {
	return commands.NewSetQueuePositionCommandHandler(c.CreateQueueTransactor(), c.logger)
}

func (c *CompositionRoot) CreateSetEstimatedDeliveryTimeCommandHandler() commands.SetEstimatedDeliveryTimeCommandHandler {
	return commands.NewSetEstimatedDeliveryTimeCommandHandler(c.CreateQueueTransactor(), c.logger)
}

func (c *CompositionRoot) CreateNormalizeQueueCommandHandler() commands.NormalizeQueueCommandHandler {
	return commands.NewNormalizeQueueCommandHandler(c.CreateQueueTransactor(), c.logger)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetActiveQueueQueryHandler() queries.GetActiveQueueQueryHandler {
	return queries.NewGetActiveQueueQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateAuditQueueQueryHandler() queries.AuditQueueQueryHandler {
	return queries.NewAuditQueueQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateRouter() (*echo.Echo, error) {
	server := httpadapter.NewServer(httpadapter.Handlers{
		Enqueue:            c.CreateCreateQueuedOrderCommandHandler(),
		ChangeStatus:       c.CreateChangeOrderStatusCommandHandler(),
		ChangeDeliveryType: c.CreateChangeDeliveryTypeCommandHandler(),
		SetPosition:        c.CreateSetQueuePositionCommandHandler(),
		SetEstimate:        c.CreateSetEstimatedDeliveryTimeCommandHandler(),
		Normalize:          c.CreateNormalizeQueueCommandHandler(),
		GetOrder:           c.CreateGetOrderQueryHandler(),
		GetQueue:           c.CreateGetActiveQueueQueryHandler(),
		Audit:              c.CreateAuditQueueQueryHandler(),
		Events:             c.broadcaster,
	}, c.logger)
	return httpadapter.NewRouter(server, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateAuditQueueQueryHandler(), c.configs.QueueAuditSchedule, c.logger)
}

// StartEventRelays connects the configured external sinks and forwards
// status changes to them until ctx is done. The returned function waits for
// the relays and closes the connections.
func (c *CompositionRoot) StartEventRelays(ctx context.Context) (func(), error) {
	var closers []func()
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
	var wg sync.WaitGroup
	run := func(sink eventbus.Sink, name string) {
		relay := eventbus.NewRelay(c.broadcaster, sink, name, relayBuffer, c.logger)
		wg.Add(1)
		go func() {
			defer wg.Done()
			relay.Run(ctx)
		}()
	}

	if brokers := c.configs.KafkaBrokers(); len(brokers) > 0 {
		client, err := kafka.NewClient(brokers)
		if err != nil {
			return nil, err
		}
		closers = append(closers, client.Close)
		run(kafka.NewOrderChangedProducer(client, c.configs.KafkaOrderChangedTopic), "kafka")
	}

	if c.configs.RabbitMQURL != "" {
		conn, publisher, err := rabbitmq.Dial(c.configs.RabbitMQURL, c.configs.RabbitMQExchange)
		if err != nil {
			closeAll()
			return nil, fmt.Errorf("failed to start rabbitmq relay: %w", err)
		}
		closers = append(closers, func() {
			_ = publisher.Close()
			_ = conn.Close()
		})
		run(publisher, "rabbitmq")
	}

	return func() {
		wg.Wait()
		closeAll()
	}, nil
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
