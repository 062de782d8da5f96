package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/errgroup"

	orderclient "github.com/Apurer/go-gin-order-dashboard/internal/clients/http/orders"
	ordersobs "github.com/Apurer/go-gin-order-dashboard/internal/domains/orders/adapters/observability"
	ordersapp "github.com/Apurer/go-gin-order-dashboard/internal/domains/orders/application"
	"github.com/Apurer/go-gin-order-dashboard/internal/platform/httpserver"
	platformobservability "github.com/Apurer/go-gin-order-dashboard/internal/platform/observability"
	"github.com/Apurer/go-gin-order-dashboard/web/dashboard"
)

const serviceName = "order-dashboard"

// Run boots the dashboard shell against the configured order store and serves
// until ctx is cancelled.
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

	httpClient := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport,
			otelhttp.WithTracerProvider(instruments.TracerProvider),
			otelhttp.WithMeterProvider(instruments.MeterProvider)),
		Timeout: cfg.OrdersAPITimeout,
	}
	client, err := orderclient.NewClient(cfg.OrdersAPIURL, httpClient, orderclient.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("failed to build orders client: %w", err)
	}
	gateway := ordersobs.NewGateway(client,
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.gateway")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.gateway")),
	)

	viewOpts := []ordersapp.ViewOption{}
	if cfg.StatusViaUpdate {
		viewOpts = append(viewOpts, ordersapp.WithStatusPath(ordersapp.StatusPathUpdate))
	}
	server, err := dashboard.NewServer(gateway,
		dashboard.WithLogger(logger),
		dashboard.WithViewOptions(viewOpts...),
		dashboard.WithSessionTTL(cfg.SessionTTL),
	)
	if err != nil {
		return fmt.Errorf("failed to build dashboard: %w", err)
	}
	logger.Info("dashboard using order store", slog.String("url", cfg.OrdersAPIURL),
		slog.Bool("status_via_update", cfg.StatusViaUpdate))

	router := server.Router(otelgin.Middleware(serviceName))
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return httpserver.Serve(gctx, logger, cfg.Addr(), router)
	})
	if cfg.SessionTTL > 0 {
		g.Go(func() error {
			return server.RunSessionJanitor(gctx, cfg.PurgeInterval)
		})
	}
	if err := g.Wait(); err != nil {
		logger.Error("dashboard server exited", slog.String("addr", cfg.Addr()), slog.String("error", err.Error()))
		return err
	}
	return nil
}
