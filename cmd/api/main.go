// cmd/api/main.go
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

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/tagit-app/tagit-be/internal/adapters/collections"
	"github.com/tagit-app/tagit-be/internal/adapters/pg_store"
	"github.com/tagit-app/tagit-be/internal/adapters/redis_store"
	"github.com/tagit-app/tagit-be/internal/adapters/storage"
	"github.com/tagit-app/tagit-be/internal/adapters/tasks"
	"github.com/tagit-app/tagit-be/internal/core/ports"
	"github.com/tagit-app/tagit-be/internal/core/services"
	"github.com/tagit-app/tagit-be/internal/handlers"
	"github.com/tagit-app/tagit-be/internal/handlers/middleware"
	"github.com/tagit-app/tagit-be/internal/pkg/config"
	"github.com/tagit-app/tagit-be/internal/pkg/logger"
)

// Build information injected at compile time
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	slogger := logger.SetupLogger("debug", "json")

	slogger.Info("starting consignment sale engine",
		slog.String("version", Version),
		slog.String("build_time", BuildTime),
	)

	cfg, err := config.Load(slogger)
	if err != nil {
		slogger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Reconfigure logger with loaded settings
	slogger = logger.SetupLogger(cfg.App.LogLevel, cfg.App.LogFormat)
	slogger.Info("configuration loaded",
		slog.String("environment", cfg.App.Environment),
		slog.String("store_driver", cfg.Store.Driver),
	)

	ctx := context.Background()

	deps, err := initializeDependencies(ctx, cfg, slogger)
	if err != nil {
		slogger.Error("failed to initialize dependencies", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer deps.cleanup(slogger)

	server := setupHTTPServer(cfg, deps, slogger)

	serverErrors := make(chan error, 1)
	go func() {
		slogger.Info("starting HTTP server",
			slog.String("address", cfg.GetServerAddress()))
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slogger.Error("server error", slog.String("error", err.Error()))
		}
	case sig := <-shutdown:
		slogger.Info("shutdown signal received", slog.String("signal", sig.String()))

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.GracefulTimeout)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slogger.Error("failed to gracefully shutdown server", slog.String("error", err.Error()))
			server.Close()
		}

		slogger.Info("server shutdown complete")
	}
}

// dependencies holds all application dependencies
type dependencies struct {
	store          ports.KeyValueStore
	pgStore        *pg_store.Store
	redisClient    *redis.Client
	enqueuer       *tasks.Enqueuer
	asynqInspector *asynq.Inspector

	depositorHandler *handlers.DepositorHandler
	articleHandler   *handlers.ArticleHandler
	cartHandler      *handlers.CartHandler
	checkoutHandler  *handlers.CheckoutHandler
	scanHandler      *handlers.ScanHandler
	salesHandler     *handlers.SalesHandler
	dashboardHandler *handlers.DashboardHandler
	healthHandler    *handlers.HealthHandler
}

func (d *dependencies) cleanup(slogger *slog.Logger) {
	if d.enqueuer != nil {
		if err := d.enqueuer.Close(); err != nil {
			slogger.Error("failed to close task enqueuer", slog.String("error", err.Error()))
		}
	}
	if d.redisClient != nil {
		d.redisClient.Close()
	}
	if d.pgStore != nil {
		d.pgStore.Close()
	}
}

func initializeDependencies(ctx context.Context, cfg *config.Config, slogger *slog.Logger) (*dependencies, error) {
	deps := &dependencies{}

	// Key-value store backend
	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		slogger.Info("connecting to Postgres store",
			slog.String("host", cfg.Postgres.Host),
			slog.String("database", cfg.Postgres.Name))

		store, err := pg_store.New(ctx, &pg_store.Config{
			Host:              cfg.Postgres.Host,
			Port:              cfg.Postgres.Port,
			User:              cfg.Postgres.User,
			Password:          cfg.Postgres.Password,
			Database:          cfg.Postgres.Name,
			SSLMode:           cfg.Postgres.SSLMode,
			MaxConnections:    cfg.Postgres.MaxConnections,
			MinConnections:    cfg.Postgres.MinConnections,
			MaxConnLifetime:   cfg.Postgres.MaxConnLifetime,
			MaxConnIdleTime:   cfg.Postgres.MaxConnIdleTime,
			HealthCheckPeriod: cfg.Postgres.HealthCheckPeriod,
			ConnectTimeout:    cfg.Postgres.ConnectTimeout,
		}, slogger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize postgres store: %w", err)
		}
		deps.pgStore = store
		deps.store = store
	default:
		slogger.Info("connecting to Redis store",
			slog.String("addr", cfg.Redis.Addr()))

		redisClient := redis.NewClient(&redis.Options{
			Addr:         cfg.Redis.Addr(),
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			MaxRetries:   cfg.Redis.MaxRetries,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		deps.redisClient = redisClient
		deps.store = redis_store.New(redisClient, slogger)
	}

	// Background task plumbing
	asynqRedisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Asynq.RedisAddr,
		Password: cfg.Asynq.RedisPassword,
		DB:       cfg.Asynq.RedisDB,
	}
	deps.enqueuer = tasks.NewEnqueuer(asynq.NewClient(asynqRedisOpt), slogger)
	deps.asynqInspector = asynq.NewInspector(asynqRedisOpt)

	// Optional photo storage
	var photos ports.PhotoStorage
	if cfg.AWS.Enabled {
		store, err := storage.NewPhotoStore(ctx, &storage.Config{
			Region:          cfg.AWS.Region,
			Bucket:          cfg.AWS.S3Bucket,
			AccessKeyID:     cfg.AWS.AccessKeyID,
			SecretAccessKey: cfg.AWS.SecretAccessKey,
			Endpoint:        cfg.AWS.S3Endpoint,
			UsePathStyle:    cfg.AWS.UsePathStyle,
		}, slogger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize photo storage: %w", err)
		}
		photos = store
	}

	// Repositories
	depositorRepo := collections.NewDepositorRepository(deps.store, slogger)
	articleRepo := collections.NewArticleRepository(deps.store, slogger)
	cartRepo := collections.NewCartRepository(deps.store, slogger)
	saleRepo := collections.NewSaleRepository(deps.store, slogger)

	// Services
	clock := ports.ClockFunc(time.Now)
	depositorService := services.NewDepositorService(depositorRepo, articleRepo, clock, slogger)
	articleService := services.NewArticleService(articleRepo, depositorRepo, clock, slogger)
	cartService := services.NewCartService(cartRepo, slogger)
	checkoutService := services.NewCheckoutService(cartRepo, articleService, saleRepo, deps.enqueuer, clock, slogger)
	scanService := services.NewScanService(depositorRepo, articleRepo, slogger)
	queryService := services.NewQueryService(articleRepo, slogger)
	ledgerService := services.NewSaleLedgerService(saleRepo, slogger)
	statsService := services.NewStatsService(depositorRepo, articleRepo, saleRepo, slogger)

	// Handlers
	deps.depositorHandler = handlers.NewDepositorHandler(depositorService, slogger)
	deps.articleHandler = handlers.NewArticleHandler(articleService, queryService, photos, slogger)
	deps.cartHandler = handlers.NewCartHandler(cartService, articleService, slogger)
	deps.checkoutHandler = handlers.NewCheckoutHandler(checkoutService, slogger)
	deps.scanHandler = handlers.NewScanHandler(scanService, slogger)
	deps.salesHandler = handlers.NewSalesHandler(ledgerService, slogger)
	deps.dashboardHandler = handlers.NewDashboardHandler(statsService, slogger)
	deps.healthHandler = handlers.NewHealthHandler(
		deps.store,
		deps.asynqInspector,
		cfg.App.Version,
		cfg.App.Environment,
		slogger,
	)

	slogger.Info("all dependencies initialized successfully")
	return deps, nil
}

func setupHTTPServer(cfg *config.Config, deps *dependencies, slogger *slog.Logger) *http.Server {
	mux := http.NewServeMux()

	var handler http.Handler = mux

	// Apply middleware in reverse order (innermost first)
	handler = middleware.RequestID(handler)
	handler = middleware.Logger(slogger)(handler)
	handler = middleware.Recovery(slogger)(handler)

	if cfg.Security.RateLimitRequests > 0 {
		handler = middleware.RateLimit(cfg.Security.RateLimitRequests, cfg.Security.RateLimitDuration)(handler)
	}
	if len(cfg.Security.AllowedOrigins) > 0 {
		handler = middleware.CORS(cfg.Security.AllowedOrigins)(handler)
	}
	if cfg.Security.SecureHeaders {
		handler = middleware.SecureHeaders(handler)
	}
	handler = middleware.Timeout(cfg.Server.RequestTimeout)(handler)

	registerRoutes(mux, deps)

	return &http.Server{
		Addr:           cfg.GetServerAddress(),
		Handler:        handler,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
		ErrorLog:       slog.NewLogLogger(slogger.Handler(), slog.LevelError),
	}
}

func registerRoutes(mux *http.ServeMux, deps *dependencies) {
	apiV1 := "/api/v1"

	// Health and readiness
	mux.HandleFunc("GET /health", deps.healthHandler.Health)
	mux.HandleFunc("GET /ready", deps.healthHandler.Readiness)

	// Depositor directory
	mux.HandleFunc("POST "+apiV1+"/depositors", deps.depositorHandler.Create)
	mux.HandleFunc("GET "+apiV1+"/depositors", deps.depositorHandler.List)
	mux.HandleFunc("GET "+apiV1+"/depositors/{code}", deps.depositorHandler.Get)
	mux.HandleFunc("PATCH "+apiV1+"/depositors/{id}", deps.depositorHandler.Update)
	mux.HandleFunc("DELETE "+apiV1+"/depositors/{id}", deps.depositorHandler.Delete)
	mux.HandleFunc("POST "+apiV1+"/depositors/{code}/checkin", deps.depositorHandler.CheckIn)
	mux.HandleFunc("GET "+apiV1+"/depositors/{code}/articles/count", deps.depositorHandler.CountArticles)

	// Article catalog
	mux.HandleFunc("POST "+apiV1+"/articles", deps.articleHandler.Create)
	mux.HandleFunc("GET "+apiV1+"/articles", deps.articleHandler.Search)
	mux.HandleFunc("GET "+apiV1+"/articles/{code}", deps.articleHandler.Get)
	mux.HandleFunc("PATCH "+apiV1+"/articles/{id}", deps.articleHandler.Update)
	mux.HandleFunc("DELETE "+apiV1+"/articles/{id}", deps.articleHandler.Delete)
	mux.HandleFunc("POST "+apiV1+"/articles/mark-sold", deps.articleHandler.MarkSold)
	mux.HandleFunc("POST "+apiV1+"/articles/{code}/photo", deps.articleHandler.UploadPhoto)
	mux.HandleFunc("GET "+apiV1+"/articles/{code}/photo", deps.articleHandler.GetPhoto)

	// Sale cart and checkout
	mux.HandleFunc("GET "+apiV1+"/cart", deps.cartHandler.View)
	mux.HandleFunc("POST "+apiV1+"/cart/items", deps.cartHandler.AddItem)
	mux.HandleFunc("PATCH "+apiV1+"/cart/items/{code}", deps.cartHandler.ChangeQuantity)
	mux.HandleFunc("DELETE "+apiV1+"/cart/items/{code}", deps.cartHandler.RemoveItem)
	mux.HandleFunc("DELETE "+apiV1+"/cart", deps.cartHandler.Clear)
	mux.HandleFunc("POST "+apiV1+"/checkout", deps.checkoutHandler.Checkout)

	// Scan resolution
	mux.HandleFunc("POST "+apiV1+"/scan", deps.scanHandler.Resolve)

	// Sales ledger
	mux.HandleFunc("GET "+apiV1+"/sales", deps.salesHandler.List)
	mux.HandleFunc("GET "+apiV1+"/sales/export", deps.salesHandler.ExportExcel)

	// Dashboard
	mux.HandleFunc("GET "+apiV1+"/dashboard", deps.dashboardHandler.GetDashboard)
}
