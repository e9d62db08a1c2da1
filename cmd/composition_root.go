package cmd

import (
	"log/slog"

	httpin "ordering/internal/adapters/in/http"
	kafkain "ordering/internal/adapters/in/kafka"
	"ordering/internal/adapters/out/postgres"
	"ordering/internal/adapters/out/postgres/orderrepo"
	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/services"
	"ordering/internal/core/ports"
	"ordering/internal/jobs"

	"gorm.io/gorm"
)

// Publishers groups the outbound channels of the saga.
type Publishers struct {
	PaymentRequests  ports.OutboundMessagePublisher
	ApprovalRequests ports.OutboundMessagePublisher
	CustomerNotices  ports.OutboundMessagePublisher
}

type CompositionRoot struct {
	config        Config
	gormDB        *gorm.DB
	uowFactory    postgres.GormUnitOfWorkFactory
	domainService services.OrderDomainService
	events        ports.EventPublisher
	publishers    Publishers
	logger        *slog.Logger
}

func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	events ports.EventPublisher,
	publishers Publishers,
	logger *slog.Logger,
) CompositionRoot {
	return CompositionRoot{
		config:        config,
		gormDB:        gormDB,
		uowFactory:    *postgres.NewGormUnitOfWorkFactory(gormDB),
		domainService: services.NewOrderDomainService(),
		events:        events,
		publishers:    publishers,
		logger:        logger,
	}
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.domainService, c.events, c.publishers.PaymentRequests, c.logger)
}

func (c *CompositionRoot) CreateRecordPaymentOutcomeCommandHandler() commands.RecordPaymentOutcomeCommandHandler {
	return commands.NewRecordPaymentOutcomeCommandHandler(
		c.orderUoWFactory(),
		c.domainService,
		c.events,
		c.publishers.ApprovalRequests,
		c.publishers.CustomerNotices,
		c.logger,
	)
}

func (c *CompositionRoot) CreateRecordApprovalOutcomeCommandHandler() commands.RecordApprovalOutcomeCommandHandler {
	return commands.NewRecordApprovalOutcomeCommandHandler(
		c.orderUoWFactory(),
		c.domainService,
		c.events,
		c.publishers.PaymentRequests,
		c.logger,
	)
}

func (c *CompositionRoot) CreateCancelStalePendingOrdersCommandHandler() commands.CancelStalePendingOrdersCommandHandler {
	return commands.NewCancelStalePendingOrdersCommandHandler(
		c.orderUoWFactory(),
		c.domainService,
		c.publishers.CustomerNotices,
		c.logger,
	)
}

func (c *CompositionRoot) CreateTrackOrderQueryHandler() queries.TrackOrderQueryHandler {
	return queries.NewTrackOrderQueryHandler(orderrepo.NewGormOrderRepository(c.gormDB))
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	createOrder := c.CreateCreateOrderCommandHandler()
	trackOrder := c.CreateTrackOrderQueryHandler()
	return httpin.NewServer(&createOrder, &trackOrder, c.logger)
}

func (c *CompositionRoot) CreatePaymentResponseConsumer(reader kafkain.Reader, observer kafkain.Observer) *kafkain.Consumer {
	handler := c.CreateRecordPaymentOutcomeCommandHandler()
	return kafkain.NewPaymentResponseConsumer(reader, c.config.KafkaPaymentResponseTopic, &handler, observer, c.logger)
}

func (c *CompositionRoot) CreateApprovalResponseConsumer(reader kafkain.Reader, observer kafkain.Observer) *kafkain.Consumer {
	handler := c.CreateRecordApprovalOutcomeCommandHandler()
	return kafkain.NewApprovalResponseConsumer(reader, c.config.KafkaRestaurantApprovalRespTopic, &handler, observer, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	canceller := c.CreateCancelStalePendingOrdersCommandHandler()
	return jobs.NewJobManager(
		jobs.NewStaleOrderCancellationJob(
			&canceller,
			c.config.StaleOrderSchedule,
			c.config.StaleOrderMaxAge,
			c.config.StaleOrderBatchSize,
			c.logger,
		),
	)
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
