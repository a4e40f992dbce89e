// cmd/worker/main.go
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/tagit-app/tagit-be/internal/adapters/collections"
	"github.com/tagit-app/tagit-be/internal/adapters/pg_store"
	"github.com/tagit-app/tagit-be/internal/adapters/redis_store"
	"github.com/tagit-app/tagit-be/internal/core/ports"
	"github.com/tagit-app/tagit-be/internal/core/services"
	"github.com/tagit-app/tagit-be/internal/pkg/config"
	"github.com/tagit-app/tagit-be/internal/pkg/logger"
	"github.com/tagit-app/tagit-be/internal/workers"
)

func main() {
	slogger := logger.SetupLogger("info", "json")

	cfg, err := config.Load(slogger)
	if err != nil {
		slogger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Reconfigure logger with loaded settings
	slogger = logger.SetupLogger(cfg.App.LogLevel, cfg.App.LogFormat)
	slogger.Info("starting worker",
		slog.String("environment", cfg.App.Environment),
		slog.String("redis_addr", cfg.Asynq.RedisAddr))

	ctx := context.Background()

	store, closeStore, err := initStore(ctx, cfg, slogger)
	if err != nil {
		slogger.Error("failed to initialize store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeStore()

	// Repositories and services the processors replay through
	depositorRepo := collections.NewDepositorRepository(store, slogger)
	articleRepo := collections.NewArticleRepository(store, slogger)
	cartRepo := collections.NewCartRepository(store, slogger)
	saleRepo := collections.NewSaleRepository(store, slogger)

	clock := ports.ClockFunc(time.Now)
	articleService := services.NewArticleService(articleRepo, depositorRepo, clock, slogger)

	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Asynq.RedisAddr,
		Password: cfg.Asynq.RedisPassword,
		DB:       cfg.Asynq.RedisDB,
	}

	srv := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency:     cfg.Asynq.Concurrency,
			Queues:          cfg.Asynq.Queues,
			StrictPriority:  cfg.Asynq.StrictPriority,
			ErrorHandler:    asynq.ErrorHandlerFunc(handleError),
			RetryDelayFunc:  exponentialBackoff,
			ShutdownTimeout: cfg.Asynq.ShutdownTimeout,
			HealthCheckFunc: healthCheck,
			Logger:          newAsynqLogger(slogger),
		},
	)

	mux := asynq.NewServeMux()

	reconcileProcessor := workers.NewReconcileProcessor(saleRepo, articleService, slogger)
	mux.HandleFunc(workers.TypeReconcileSold, reconcileProcessor.ReconcileSold)

	cleanupProcessor := workers.NewCleanupProcessor(cartRepo, cfg.Asynq.CartMaxAge, clock, slogger)
	mux.HandleFunc(workers.TypeCartCleanup, cleanupProcessor.CleanupCart)

	// Periodic cart cleanup for carts abandoned after a sale day
	scheduler := asynq.NewScheduler(redisOpt, &asynq.SchedulerOpts{
		Logger: newAsynqLogger(slogger),
	})
	if cfg.Asynq.CartCleanupCron != "" {
		entryID, err := scheduler.Register(cfg.Asynq.CartCleanupCron,
			asynq.NewTask(workers.TypeCartCleanup, nil),
			asynq.Queue("low"))
		if err != nil {
			slogger.Error("failed to register cart cleanup schedule", slog.String("error", err.Error()))
			os.Exit(1)
		}
		slogger.Info("registered cart cleanup schedule",
			slog.String("cron", cfg.Asynq.CartCleanupCron),
			slog.String("entry_id", entryID))
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Run(mux); err != nil {
			slogger.Error("failed to run worker server", slog.String("error", err.Error()))
			shutdown <- syscall.SIGTERM
		}
	}()

	go func() {
		if err := scheduler.Run(); err != nil {
			slogger.Error("failed to run scheduler", slog.String("error", err.Error()))
			shutdown <- syscall.SIGTERM
		}
	}()

	slogger.Info("worker started successfully",
		slog.Int("concurrency", cfg.Asynq.Concurrency),
		slog.Any("queues", cfg.Asynq.Queues))

	sig := <-shutdown
	slogger.Info("shutdown signal received", slog.String("signal", sig.String()))

	scheduler.Shutdown()
	srv.Shutdown()
	slogger.Info("worker shutdown complete")
}

func initStore(ctx context.Context, cfg *config.Config, slogger *slog.Logger) (ports.KeyValueStore, func(), error) {
	if cfg.Store.Driver == config.StoreDriverPostgres {
		store, err := pg_store.New(ctx, &pg_store.Config{
			Host:     cfg.Postgres.Host,
			Port:     cfg.Postgres.Port,
			User:     cfg.Postgres.User,
			Password: cfg.Postgres.Password,
			Database: cfg.Postgres.Name,
			SSLMode:  cfg.Postgres.SSLMode,
			// Fewer connections for the worker
			MaxConnections:    4,
			MinConnections:    1,
			MaxConnLifetime:   cfg.Postgres.MaxConnLifetime,
			MaxConnIdleTime:   cfg.Postgres.MaxConnIdleTime,
			HealthCheckPeriod: cfg.Postgres.HealthCheckPeriod,
			ConnectTimeout:    cfg.Postgres.ConnectTimeout,
		}, slogger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize postgres store: %w", err)
		}
		return store, store.Close, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return redis_store.New(client, slogger), func() { client.Close() }, nil
}

func handleError(ctx context.Context, task *asynq.Task, err error) {
	slog.ErrorContext(ctx, "task processing failed",
		slog.String("type", task.Type()),
		slog.String("payload", string(task.Payload())),
		slog.String("error", err.Error()))
}

func exponentialBackoff(n int, e error, t *asynq.Task) time.Duration {
	baseDelay := time.Second
	maxDelay := 10 * time.Minute
	delay := baseDelay * time.Duration(1<<uint(n))
	if delay > maxDelay {
		delay = maxDelay
	}
	return delay
}

func healthCheck(err error) {
	if err != nil {
		slog.Error("worker health check failed", slog.String("error", err.Error()))
	}
}

// asynqLogger adapts slog for Asynq
type asynqLogger struct {
	logger *slog.Logger
}

func newAsynqLogger(logger *slog.Logger) *asynqLogger {
	return &asynqLogger{
		logger: logger.With(slog.String("component", "asynq")),
	}
}

func (l *asynqLogger) Debug(args ...interface{}) {
	l.logger.Debug(fmt.Sprint(args...))
}

func (l *asynqLogger) Info(args ...interface{}) {
	l.logger.Info(fmt.Sprint(args...))
}

func (l *asynqLogger) Warn(args ...interface{}) {
	l.logger.Warn(fmt.Sprint(args...))
}

func (l *asynqLogger) Error(args ...interface{}) {
	l.logger.Error(fmt.Sprint(args...))
}

func (l *asynqLogger) Fatal(args ...interface{}) {
	l.logger.Error(fmt.Sprint(args...))
	os.Exit(1)
}
