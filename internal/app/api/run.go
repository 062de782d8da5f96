package api

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	ordersserver "github.com/Apurer/go-gin-order-dashboard/go"

	ordersmemory "github.com/Apurer/go-gin-order-dashboard/internal/domains/orders/adapters/memory"
	ordersobs "github.com/Apurer/go-gin-order-dashboard/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/Apurer/go-gin-order-dashboard/internal/domains/orders/adapters/persistence/postgres"
	ordersapp "github.com/Apurer/go-gin-order-dashboard/internal/domains/orders/application"
	ordersports "github.com/Apurer/go-gin-order-dashboard/internal/domains/orders/ports"
	"github.com/Apurer/go-gin-order-dashboard/internal/platform/httpserver"
	"github.com/Apurer/go-gin-order-dashboard/internal/platform/migrations"
	platformobservability "github.com/Apurer/go-gin-order-dashboard/internal/platform/observability"
	platformpostgres "github.com/Apurer/go-gin-order-dashboard/internal/platform/postgres"
)

const serviceName = "orders-api"

// Run boots the orders HTTP API with observability and the repository wired,
// and serves until ctx is cancelled.
func Run(ctx context.Context, cfg Config) error {
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName,
		platformobservability.WithLogLevel(cfg.LogLevel),
		platformobservability.WithEnvironment(cfg.Environment))
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	repo, cleanupRepo := buildOrderRepository(ctx, logger, cfg.PostgresDSN)
	defer cleanupRepo()
	orderService := ordersobs.NewService(
		ordersapp.NewStoreService(repo),
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)

	handlers := ordersserver.ApiHandleFunctions{
		OrderAPI: ordersserver.NewOrderAPI(orderService),
	}
	router := ordersserver.NewRouter(handlers, otelgin.Middleware(serviceName))

	if err := httpserver.Serve(ctx, logger, cfg.Addr(), router); err != nil {
		logger.Error("orders API server exited", slog.String("addr", cfg.Addr()), slog.String("error", err.Error()))
		return err
	}
	return nil
}

// buildOrderRepository prefers PostgreSQL and falls back to memory when the DSN
// is unset or the database is unreachable.
func buildOrderRepository(ctx context.Context, logger *slog.Logger, dsn string) (ordersports.Repository, func()) {
	if dsn == "" {
		logger.Warn("POSTGRES_DSN not set, falling back to in-memory order repository")
		return ordersmemory.NewRepository(), func() {}
	}
	db, closeDB, err := platformpostgres.Connect(ctx, dsn)
	if err != nil {
		logger.Warn("failed to connect to postgres, falling back to memory", slog.String("error", err.Error()))
		return ordersmemory.NewRepository(), func() {}
	}
	if err := migrations.Run(db); err != nil {
		_ = closeDB()
		logger.Warn("failed to migrate order schema, falling back to memory", slog.String("error", err.Error()))
		return ordersmemory.NewRepository(), func() {}
	}
	logger.Info("order repository configured with postgres")
	return orderspostgres.NewRepository(db), func() { _ = closeDB() }
}
