package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/corray333/swiftserve/internal/dal/interfaces/iauditrepo"
	"github.com/corray333/swiftserve/internal/dal/interfaces/iorderrepo"
	"github.com/corray333/swiftserve/internal/dal/interfaces/ioutboxrepo"
	"github.com/corray333/swiftserve/internal/dal/interfaces/irestaurantrepo"
	"github.com/corray333/swiftserve/internal/dal/kafka"
	"github.com/corray333/swiftserve/internal/dal/postgres"
	"github.com/corray333/swiftserve/internal/dal/rabbitmq"
	"github.com/corray333/swiftserve/internal/dal/repositories/audit"
	kafkanotifier "github.com/corray333/swiftserve/internal/dal/repositories/notification/kafka"
	rabbitnotifier "github.com/corray333/swiftserve/internal/dal/repositories/notification/rabbitmq"
	ordermemory "github.com/corray333/swiftserve/internal/dal/repositories/order/memory"
	orderpostgres "github.com/corray333/swiftserve/internal/dal/repositories/order/postgres"
	outboxpostgres "github.com/corray333/swiftserve/internal/dal/repositories/outbox/postgres"
	restaurantmemory "github.com/corray333/swiftserve/internal/dal/repositories/restaurant/memory"
	restaurantpostgres "github.com/corray333/swiftserve/internal/dal/repositories/restaurant/postgres"
	"github.com/corray333/swiftserve/internal/notify"
	"github.com/corray333/swiftserve/internal/otel"
	"github.com/corray333/swiftserve/internal/service/models/restaurant"
	"github.com/corray333/swiftserve/internal/service/services/ordersvc"
	grpctransport "github.com/corray333/swiftserve/internal/transport/grpc"
	httptransport "github.com/corray333/swiftserve/internal/transport/http"
	lifecycleworker "github.com/corray333/swiftserve/internal/worker/lifecycle"
	outboxworker "github.com/corray333/swiftserve/internal/worker/outbox"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

// App represents the application.
type App struct {
	orderSvc        *ordersvc.OrderService
	httpTransport   *httptransport.HTTPTransport
	grpcTransport   *grpctransport.GRPCTransport
	lifecycleWorker *lifecycleworker.Worker
	outboxWorker    *outboxworker.Worker
	notifier        *notify.Async
	auditor         *audit.Async
	otelController  *otel.OtelController
	postgresClient  *postgres.Client
	rabbitClient    *rabbitmq.Client
	kafkaClient     *kafka.Client
}

// MustNewApp wires the application from config. It panics on misconfiguration
// or when a configured backend is unreachable.
func MustNewApp() *App {
	a := &App{
		otelController: otel.MustInitOtel(),
	}

	orderRepo, restaurantRepo, outboxRepo := a.mustInitStorage()

	var auditRepo iauditrepo.IAuditorRepository
	if viper.GetBool("rabbitmq.enabled") {
		a.rabbitClient = rabbitmq.MustNewClient()
		auditQueue := viper.GetString("rabbitmq.audit_queue")
		mustDeclareQueue(a.rabbitClient, auditQueue)
		a.auditor = audit.NewAsync(
			audit.NewAuditRabbitMQRepository(a.rabbitClient, auditQueue),
			viper.GetInt("rabbitmq.audit_queue_size"),
		)
		auditRepo = a.auditor
	}

	a.notifier = notify.NewAsync(a.mustInitNotifier(outboxRepo), viper.GetInt("notify.queue_size"))

	a.orderSvc = ordersvc.MustNewOrderService(
		ordersvc.WithOrderRepository(orderRepo),
		ordersvc.WithRestaurantRepository(restaurantRepo),
		ordersvc.WithAuditRepository(auditRepo),
		ordersvc.WithNotifier(a.notifier),
	)

	a.httpTransport = httptransport.NewHTTPTransport(a.orderSvc)
	a.httpTransport.RegisterRoutes()
	if viper.GetBool("server.grpc.enabled") {
		a.grpcTransport = grpctransport.NewGRPCTransport()
	}

	a.lifecycleWorker = lifecycleworker.NewWorker(a.orderSvc)
	if outboxRepo != nil && a.rabbitClient != nil {
		a.outboxWorker = outboxworker.NewWorker(outboxRepo, a.rabbitClient)
	}

	return a
}

func (a *App) mustInitStorage() (
	iorderrepo.IOrderRepository,
	irestaurantrepo.IRestaurantRepository,
	ioutboxrepo.IOutboxRepository,
) {
	switch driver := viper.GetString("storage.driver"); driver {
	case "memory", "":
		slog.Info("Using in-memory storage")

		return ordermemory.NewOrderRepository(),
			restaurantmemory.NewRestaurantRepository(restaurant.Seed()),
			nil
	case "postgres":
		a.postgresClient = postgres.MustNewClient()

		return orderpostgres.NewOrderRepository(a.postgresClient),
			restaurantpostgres.NewRestaurantRepository(a.postgresClient),
			outboxpostgres.NewNotificationOutbox(a.postgresClient)
	default:
		panic(fmt.Sprintf("unknown storage driver %q", driver))
	}
}

func (a *App) mustInitNotifier(outboxRepo ioutboxrepo.IOutboxRepository) notify.Notifier {
	switch driver := viper.GetString("notify.driver"); driver {
	case "log", "":
		return notify.NewLogNotifier(slog.Default())
	case "rabbitmq":
		if a.rabbitClient == nil {
			a.rabbitClient = rabbitmq.MustNewClient()
		}
		queue := viper.GetString("rabbitmq.notification_queue")
		mustDeclareQueue(a.rabbitClient, queue)

		return rabbitnotifier.NewNotifier(a.rabbitClient, queue, outboxRepo, viper.GetInt("outbox.max_retries"))
	case "kafka":
		a.kafkaClient = kafka.MustNewClient()

		return kafkanotifier.NewNotifier(a.kafkaClient, viper.GetString("kafka.notification_topic"))
	default:
		panic(fmt.Sprintf("unknown notify driver %q", driver))
	}
}

func mustDeclareQueue(client *rabbitmq.Client, name string) {
	_, err := client.DeclareQueue(rabbitmq.DeclareQueueConfig{
		Name:    name,
		Durable: true,
	})
	if err != nil {
		panic(fmt.Sprintf("failed to declare queue %s: %v", name, err))
	}
}

// Run starts servers and workers and blocks until an interrupt signal or a
// server failure, then shuts everything down.
func (a *App) Run() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := a.httpTransport.Run(); err != nil {
			return fmt.Errorf("http server: %w", err)
		}

		return nil
	})
	if a.grpcTransport != nil {
		g.Go(func() error {
			if err := a.grpcTransport.Run(); err != nil {
				return fmt.Errorf("grpc server: %w", err)
			}

			return nil
		})
	}
	g.Go(func() error {
		a.lifecycleWorker.Start(gctx)

		return nil
	})
	if a.outboxWorker != nil {
		g.Go(func() error {
			a.outboxWorker.Start(gctx)

			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutdown signal received")
		a.shutdown()

		return nil
	})

	if err := g.Wait(); err != nil {
		slog.Error("Application stopped with error", "error", err)
	}

	a.closeResources()
	slog.Info("Application shutdown complete")
}

func (a *App) shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.httpTransport.Shutdown(ctx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped gracefully")
	}

	if a.grpcTransport != nil {
		if err := a.grpcTransport.Shutdown(ctx); err != nil {
			slog.Error("gRPC server shutdown error", "error", err)
		} else {
			slog.Info("gRPC server stopped gracefully")
		}
	}
}

func (a *App) closeResources() {
	a.notifier.Close()
	if a.auditor != nil {
		a.auditor.Close()
	}

	if a.rabbitClient != nil {
		if err := a.rabbitClient.Close(); err != nil {
			slog.Error("RabbitMQ connection close error", "error", err)
		}
	}
	if a.kafkaClient != nil {
		if err := a.kafkaClient.Close(); err != nil {
			slog.Error("Kafka producer close error", "error", err)
		}
	}
	if a.postgresClient != nil {
		a.postgresClient.Close()
		slog.Info("Database connection closed gracefully")
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.otelController.Shutdown(ctx); err != nil {
		slog.Error("Tracer provider shutdown error", "error", err)
	}
}
