package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"

	"github.com/ghuser/stockroom/pkg/app"
	"github.com/ghuser/stockroom/pkg/cache"
	"github.com/ghuser/stockroom/pkg/config"
	"github.com/ghuser/stockroom/pkg/database"
	"github.com/ghuser/stockroom/pkg/events"
	"github.com/ghuser/stockroom/pkg/logger"
	"github.com/ghuser/stockroom/pkg/telemetry"
	pkgworkflows "github.com/ghuser/stockroom/pkg/workflows"
	invevents "github.com/ghuser/stockroom/services/inventory/domain/events"
	"github.com/ghuser/stockroom/services/inventory/infrastructure/persistence/postgres"
	invworkflows "github.com/ghuser/stockroom/services/inventory/workflows"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)

	ctx := context.Background()

	otelShutdown, _, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(ctx) //nolint:errcheck

	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	pool, err := database.NewPool(ctx, cfg.InventoryDatabaseURL, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer pool.Close()
	log.Info("database pool connected")

	eventBus, err := events.NewEventBus(cfg, log)
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer eventBus.Close() //nolint:errcheck

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer redisClient.Close() //nolint:errcheck
	log.Info("redis connected")

	temporalClient, err := pkgworkflows.NewTemporalClient(ctx, cfg.TemporalHostPort, cfg.TemporalNamespace, log)
	if err != nil {
		log.Error("failed to initialize temporal client", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer temporalClient.Close()

	appConfig := &app.Application{
		Db:             pool,
		Logger:         log,
		EventBus:       eventBus,
		Redis:          redisClient,
		TemporalClient: temporalClient,
	}

	if err := registerSubscribers(ctx, appConfig); err != nil {
		log.Error("failed to register subscribers", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	w, err := startLowStockWorker(ctx, cfg, appConfig)
	if err != nil {
		log.Error("failed to start low stock worker", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer w.Stop()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down worker...")

	// EventBus.Close() (via defer) waits up to 30s for in-flight handlers.
	log.Info("worker stopped")
}

// registerSubscribers wires the change-feed handlers. Both inventory topics
// funnel into the same handler: any change invalidates the org's cached
// dashboard snapshot. Subscription uses the load-balanced consumer group so
// scaling workers does not multiply invalidations.
func registerSubscribers(ctx context.Context, a *app.Application) error {
	topics := []string{invevents.TopicItemsChanged, invevents.TopicLocationsChanged}
	handler := handleCollectionChanged(a)

	for _, topic := range topics {
		errCh, err := a.EventBus.Subscribe(ctx, topic, handler)
		if err != nil {
			return err
		}

		// Drain subscriber errors in background so the channel never blocks.
		go func(topic string) {
			for err := range errCh {
				a.Logger.ErrorContext(ctx, "subscriber error", "topic", topic, "error", err)
			}
		}(topic)
	}

	a.Logger.Info("event subscribers registered", "topics", topics)
	return nil
}

// handleCollectionChanged returns a handler that drops the org's cached
// snapshot on any item or location change. Handlers must be idempotent:
// EventBus retries up to 3x on failure, and deleting an absent key is a no-op.
func handleCollectionChanged(a *app.Application) func(context.Context, *message.Message) error {
	snapCache := cache.NewSnapshotCache(a.Redis)
	return func(ctx context.Context, msg *message.Message) error {
		orgID, err := uuid.Parse(msg.Metadata.Get(invevents.MetadataOrgID))
		if err != nil {
			// Malformed metadata is unrecoverable; drop rather than retry.
			a.Logger.WarnContext(ctx, "change event without org metadata, skipping",
				"message_id", msg.UUID, "error", err)
			return nil
		}

		if err := snapCache.Invalidate(ctx, orgID); err != nil {
			return err
		}
		a.Logger.DebugContext(ctx, "snapshot cache invalidated", "org_id", orgID)
		return nil
	}
}

// startLowStockWorker hosts the digest workflow and activities on the
// configured task queue and ensures the daily cron schedule is running.
func startLowStockWorker(ctx context.Context, cfg *config.Config, a *app.Application) (worker.Worker, error) {
	itemRepo := postgres.NewItemRepository(a.Db, a.EventBus)

	w := worker.New(a.TemporalClient.Client, cfg.LowStockTaskQueue, worker.Options{})
	w.RegisterWorkflow(invworkflows.LowStockDigestWorkflow)
	w.RegisterActivity(&invworkflows.LowStockActivities{
		Items: itemRepo,
		Orgs:  itemRepo,
		Log:   a.Logger,
	})

	if err := w.Start(); err != nil {
		return nil, err
	}

	// The fixed workflow ID makes this idempotent across worker restarts and
	// replicas: Temporal rejects the duplicate start and the existing cron
	// schedule keeps running.
	_, err := a.TemporalClient.Client.ExecuteWorkflow(ctx, client.StartWorkflowOptions{
		ID:           invworkflows.LowStockDigestWorkflowID,
		TaskQueue:    cfg.LowStockTaskQueue,
		CronSchedule: "0 8 * * *",
	}, invworkflows.LowStockDigestWorkflow)
	if err != nil {
		// "already started" is expected when another replica owns the schedule.
		a.Logger.Warn("low stock digest schedule not started", "error", err)
	}

	return w, nil
}
