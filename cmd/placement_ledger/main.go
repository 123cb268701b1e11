package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/SscSPs/placement_ledger/internal/core/services"
	"github.com/SscSPs/placement_ledger/internal/handlers"
	"github.com/SscSPs/placement_ledger/internal/middleware"
	"github.com/SscSPs/placement_ledger/internal/platform/chartofaccounts"
	"github.com/SscSPs/placement_ledger/internal/platform/config"
	"github.com/SscSPs/placement_ledger/internal/repositories/cache"
	"github.com/SscSPs/placement_ledger/internal/repositories/database/pgsql"
	"github.com/SscSPs/placement_ledger/internal/repositories/memory"
	"github.com/SscSPs/placement_ledger/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	limitermemory "github.com/ulule/limiter/v3/drivers/store/memory"
	"golang.org/x/sync/errgroup"
)

// @title Placement Ledger API
// @version 1.0
// @description Multi-currency double-entry ledger for a multi-company recruitment business.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("Server exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	charts, err := chartofaccounts.Load(cfg.ChartOfAccountsFile)
	if err != nil {
		return err
	}
	logger.Info("Chart of accounts loaded", slog.Any("companies", charts.Companies()))

	deps, cleanup, err := buildDependencies(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()
	deps.Charts = charts

	container := services.NewServiceContainer(deps)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery(), middleware.Tracing())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
	}))

	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		return err
	}
	r.Use(middleware.RateLimit(limiter.New(limitermemory.NewStore(), rate)))

	if err := r.SetTrustedProxies(nil); err != nil {
		return err
	}

	handlers.RegisterRoutes(r, cfg, container)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("storage", cfg.Storage))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// buildDependencies wires the storage backend selected by cfg.Storage. The
// returned cleanup releases pools and clients.
func buildDependencies(ctx context.Context, cfg *config.Config, logger *slog.Logger) (services.Dependencies, func(), error) {
	if cfg.Storage == config.StorageMemory {
		logger.Warn("Using in-memory storage; nothing is persisted")
		store := memory.NewStore()
		return services.Dependencies{Repos: store.Provider(), TxRunner: store}, func() {}, nil
	}

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return services.Dependencies{}, nil, err
	}
	cleanups := []func(){func() { database.ClosePgxPool(dbPool) }}
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	logger.Info("Running database migrations...")
	if err := database.RunMigrations(cfg.MigrationsPath, cfg.DatabaseURL); err != nil {
		cleanup()
		return services.Dependencies{}, nil, err
	}

	deps := services.Dependencies{
		Repos:    pgsql.NewRepositoryProvider(dbPool),
		TxRunner: pgsql.NewTxRunner(dbPool),
	}

	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			cleanup()
			return services.Dependencies{}, nil, err
		}
		client := redis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err != nil {
			// Rates are still served from Postgres without the cache.
			logger.Warn("Redis unavailable, FX cache disabled", slog.String("error", err.Error()))
			_ = client.Close()
		} else {
			cleanups = append(cleanups, func() { _ = client.Close() })
			deps.Rates = cache.NewExchangeRateCache(deps.Repos.ExchangeRateRepo, client, cfg.FxCacheTTL)
			logger.Info("FX rate cache enabled", slog.Duration("ttl", cfg.FxCacheTTL))
		}
	}

	return deps, cleanup, nil
}
