package observability

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/Apurer/go-gin-order-dashboard/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-order-dashboard/internal/domains/orders/ports"
)

// Gateway decorates an order gateway with spans, debug logs, and call metrics.
type Gateway struct {
	inner   ports.Gateway
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics gatewayMetrics
}

// NewGateway wraps the remote order gateway.
func NewGateway(inner ports.Gateway, opts ...Option) ports.Gateway {
	c := buildConfig(opts)
	return &Gateway{
		inner:   inner,
		tracer:  c.tracer,
		logger:  c.logger,
		metrics: newGatewayMetrics(c.meter),
	}
}

func (g *Gateway) ListAll(ctx context.Context) ([]domain.Order, error) {
	ctx, span := g.tracer.Start(ctx, "OrderGateway.ListAll")
	defer span.End()

	start := time.Now()
	result, err := g.inner.ListAll(ctx)
	g.metrics.record(ctx, "list", start, err)
	if err != nil {
		return nil, g.handleError(ctx, span, err, "order gateway list failed")
	}
	span.SetAttributes(attribute.Int("orders.count", len(result)))
	g.logDebug(ctx, "orders fetched", slog.Int("orders.count", len(result)))
	return result, nil
}

func (g *Gateway) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	ctx, span := g.tracer.Start(ctx, "OrderGateway.GetByID", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	start := time.Now()
	result, err := g.inner.GetByID(ctx, id)
	g.metrics.record(ctx, "get", start, err)
	if err != nil {
		return nil, g.handleError(ctx, span, err, "order gateway get failed", slog.Int64("order.id", id))
	}
	return result, nil
}

func (g *Gateway) Create(ctx context.Context, draft domain.Draft) (*domain.Order, error) {
	ctx, span := g.tracer.Start(ctx, "OrderGateway.Create")
	defer span.End()

	start := time.Now()
	result, err := g.inner.Create(ctx, draft)
	g.metrics.record(ctx, "create", start, err)
	if err != nil {
		return nil, g.handleError(ctx, span, err, "order gateway create failed")
	}
	span.SetAttributes(attribute.Int64("order.id", result.ID))
	g.logDebug(ctx, "order created", slog.Int64("order.id", result.ID))
	return result, nil
}

func (g *Gateway) Update(ctx context.Context, id int64, order domain.Order) (*domain.Order, error) {
	ctx, span := g.tracer.Start(ctx, "OrderGateway.Update", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	start := time.Now()
	result, err := g.inner.Update(ctx, id, order)
	g.metrics.record(ctx, "update", start, err)
	if err != nil {
		return nil, g.handleError(ctx, span, err, "order gateway update failed", slog.Int64("order.id", id))
	}
	return result, nil
}

func (g *Gateway) UpdateStatus(ctx context.Context, id int64, order domain.Order) (*domain.Order, error) {
	ctx, span := g.tracer.Start(ctx, "OrderGateway.UpdateStatus",
		trace.WithAttributes(attribute.Int64("order.id", id), attribute.String("order.status", string(order.Status))))
	defer span.End()

	start := time.Now()
	result, err := g.inner.UpdateStatus(ctx, id, order)
	g.metrics.record(ctx, "update_status", start, err)
	if err != nil {
		return nil, g.handleError(ctx, span, err, "order gateway status update failed", slog.Int64("order.id", id))
	}
	return result, nil
}

func (g *Gateway) Delete(ctx context.Context, id int64) error {
	ctx, span := g.tracer.Start(ctx, "OrderGateway.Delete", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	start := time.Now()
	err := g.inner.Delete(ctx, id)
	g.metrics.record(ctx, "delete", start, err)
	if err != nil {
		return g.handleError(ctx, span, err, "order gateway delete failed", slog.Int64("order.id", id))
	}
	return nil
}

func (g *Gateway) logDebug(ctx context.Context, msg string, attrs ...slog.Attr) {
	if g.logger == nil {
		return
	}
	g.logger.LogAttrs(ctx, slog.LevelDebug, msg, attrs...)
}

func (g *Gateway) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	return handleError(ctx, g.logger, span, err, msg, attrs...)
}

type gatewayMetrics struct {
	calls    metric.Int64Counter
	duration metric.Float64Histogram
}

func newGatewayMetrics(m metric.Meter) gatewayMetrics {
	if m == nil {
		return gatewayMetrics{}
	}
	calls, _ := m.Int64Counter("orders.gateway.calls", metric.WithDescription("Order gateway calls by operation and outcome"))
	duration, _ := m.Float64Histogram("orders.gateway.duration", metric.WithUnit("ms"),
		metric.WithDescription("Order gateway call latency"))
	return gatewayMetrics{calls: calls, duration: duration}
}

func (m gatewayMetrics) record(ctx context.Context, op string, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	attrs := metric.WithAttributes(attribute.String("op", op), attribute.String("outcome", outcome))
	if m.calls != nil {
		m.calls.Add(ctx, 1, attrs)
	}
	if m.duration != nil {
		m.duration.Record(ctx, float64(time.Since(start).Microseconds())/1000, attrs)
	}
}

var _ ports.Gateway = (*Gateway)(nil)
