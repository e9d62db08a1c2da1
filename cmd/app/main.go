package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ordering/cmd"
	"ordering/internal/adapters/out/events"
	kafkaout "ordering/internal/adapters/out/kafka"
	"ordering/internal/adapters/out/postgres"
	"ordering/internal/adapters/out/rabbitmq"
	pkgkafka "ordering/internal/pkg/kafka"
	"ordering/internal/pkg/metrics"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	loadDotEnv()
	config, err := cmd.ConfigFromEnv(os.Getenv)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB, err := gorm.Open(gormpostgres.Open(config.DSN()), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	if err := postgres.Migrate(gormDB); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	kafkaClient := pkgkafka.NewClient(config.KafkaBrokers)
	paymentRequests := kafkaClient.NewWriter(config.KafkaPaymentRequestTopic)
	defer paymentRequests.Close()
	approvalRequests := kafkaClient.NewWriter(config.KafkaRestaurantApprovalTopic)
	defer approvalRequests.Close()

	rmq, err := rabbitmq.Dial(config.RabbitMQURL, config.RabbitMQNotificationExchange)
	if err != nil {
		return fmt.Errorf("connect rabbitmq: %w", err)
	}
	defer rmq.Close()

	dispatcher := events.NewDispatcher(logger)
	orderMetrics := metrics.NewOrderMetrics(prometheus.DefaultRegisterer)
	dispatcher.OnOrderCreated(orderMetrics.OrderCreated)
	dispatcher.OnOrderPaid(orderMetrics.OrderPaid)
	dispatcher.OnOrderCancelled(orderMetrics.OrderCancelled)

	app := cmd.NewCompositionRoot(config, gormDB, dispatcher, cmd.Publishers{
		PaymentRequests:  kafkaout.NewOrderMessagePublisher(paymentRequests, config.KafkaPaymentRequestTopic),
		ApprovalRequests: kafkaout.NewOrderMessagePublisher(approvalRequests, config.KafkaRestaurantApprovalTopic),
		CustomerNotices:  rabbitmq.NewCustomerNotificationPublisher(rmq.Channel(), config.RabbitMQNotificationExchange),
	}, logger)

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		return fmt.Errorf("start jobs: %w", err)
	}
	defer jobManager.StopAll()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, gctx := errgroup.WithContext(ctx)

	consumerMetrics := metrics.NewConsumerMetrics(prometheus.DefaultRegisterer)
	paymentResponses := kafkaClient.NewReader(config.KafkaPaymentResponseTopic, config.KafkaConsumerGroup)
	defer paymentResponses.Close()
	approvalResponses := kafkaClient.NewReader(config.KafkaRestaurantApprovalRespTopic, config.KafkaConsumerGroup)
	defer approvalResponses.Close()

	g.Go(func() error {
		return app.CreatePaymentResponseConsumer(paymentResponses, consumerMetrics).Run(gctx)
	})
	g.Go(func() error {
		return app.CreateApprovalResponseConsumer(approvalResponses, consumerMetrics).Run(gctx)
	})

	e := newWebServer(app, metrics.NewServerMetrics(prometheus.DefaultRegisterer))
	g.Go(func() error {
		err := e.Start(fmt.Sprintf("0.0.0.0:%s", config.HTTPPort))
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// loadDotEnv populates the environment from .env when the file exists.
// Variables already set take precedence.
func loadDotEnv() {
	if err := godotenv.Load(".env"); err != nil {
		log.Warnf("Error loading .env file: %v", err)
	}
}

func newWebServer(app cmd.CompositionRoot, serverMetrics *metrics.ServerMetrics) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(serverMetrics.Middleware())

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	app.CreateHTTPServer().RegisterRoutes(e)
	return e
}
