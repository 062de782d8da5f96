package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Apurer/go-gin-order-dashboard/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-order-dashboard/internal/domains/orders/ports"
)

const tracerName = "github.com/Apurer/go-gin-order-dashboard/internal/domains/orders/adapters/observability"

// Option tunes a decorator built by this package.
type Option func(*config)

type config struct {
	tracer trace.Tracer
	logger *slog.Logger
	meter  metric.Meter
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(c *config) {
		c.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(c *config) {
		c.meter = m
	}
}

func buildConfig(opts []Option) config {
	c := config{
		tracer: nooptrace.NewTracerProvider().Tracer(tracerName),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&c)
		}
	}
	if c.tracer == nil {
		c.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return c
}

// Service decorates the order store service with tracing, logging, and metrics.
type Service struct {
	inner   ports.StoreService
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

// NewService wraps the core store service.
func NewService(inner ports.StoreService, opts ...Option) ports.StoreService {
	c := buildConfig(opts)
	return &Service{
		inner:   inner,
		tracer:  c.tracer,
		logger:  c.logger,
		metrics: newServiceMetrics(c.meter),
	}
}

func (s *Service) List(ctx context.Context) ([]*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderStore.List")
	defer span.End()

	result, err := s.inner.List(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list orders")
	}
	span.SetAttributes(attribute.Int("orders.count", len(result)))
	return result, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderStore.Get", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	result, err := s.inner.Get(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load order", slog.Int64("order.id", id))
	}
	return result, nil
}

func (s *Service) Create(ctx context.Context, draft domain.Draft) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderStore.Create")
	defer span.End()

	s.logInfo(ctx, "creating order", slog.String("order.title", draft.Title))
	result, err := s.inner.Create(ctx, draft)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create order")
	}
	span.SetAttributes(attribute.Int64("order.id", result.ID))
	s.metrics.recordCreated(ctx)
	s.logInfo(ctx, "order created", slog.Int64("order.id", result.ID))
	return result, nil
}

func (s *Service) Update(ctx context.Context, id int64, order domain.Order) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderStore.Update", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	s.logInfo(ctx, "updating order", slog.Int64("order.id", id))
	result, err := s.inner.Update(ctx, id, order)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update order", slog.Int64("order.id", id))
	}
	s.logInfo(ctx, "order updated", slog.Int64("order.id", id), slog.String("status", string(result.Status)))
	return result, nil
}

func (s *Service) UpdateStatus(ctx context.Context, id int64, status domain.Status) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderStore.UpdateStatus",
		trace.WithAttributes(attribute.Int64("order.id", id), attribute.String("order.status", string(status))))
	defer span.End()

	s.logInfo(ctx, "changing order status", slog.Int64("order.id", id), slog.String("status", string(status)))
	result, err := s.inner.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to change order status", slog.Int64("order.id", id))
	}
	s.metrics.recordStatus(ctx, result.Status)
	return result, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	ctx, span := s.tracer.Start(ctx, "OrderStore.Delete", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	s.logInfo(ctx, "deleting order", slog.Int64("order.id", id))
	if err := s.inner.Delete(ctx, id); err != nil {
		return s.handleError(ctx, span, err, "failed to delete order", slog.Int64("order.id", id))
	}
	s.metrics.recordDeleted(ctx)
	s.logInfo(ctx, "order deleted", slog.Int64("order.id", id))
	return nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	logInfo(ctx, s.logger, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	return handleError(ctx, s.logger, span, err, msg, attrs...)
}

func logInfo(ctx context.Context, logger *slog.Logger, msg string, attrs ...slog.Attr) {
	if logger == nil {
		return
	}
	logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func handleError(ctx context.Context, logger *slog.Logger, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	if logger != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	}
	return err
}

type serviceMetrics struct {
	created  metric.Int64Counter
	statuses metric.Int64Counter
	deleted  metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	created, _ := m.Int64Counter("orders.service.created", metric.WithDescription("Number of orders created"))
	statuses, _ := m.Int64Counter("orders.service.status_changes", metric.WithDescription("Number of order status changes"))
	deleted, _ := m.Int64Counter("orders.service.deleted", metric.WithDescription("Number of orders deleted"))
	return serviceMetrics{created: created, statuses: statuses, deleted: deleted}
}

func (m serviceMetrics) recordCreated(ctx context.Context) {
	if m.created != nil {
		m.created.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordStatus(ctx context.Context, status domain.Status) {
	if m.statuses != nil {
		m.statuses.Add(ctx, 1, metric.WithAttributes(attribute.String("order.status", string(status))))
	}
}

func (m serviceMetrics) recordDeleted(ctx context.Context) {
	if m.deleted != nil {
		m.deleted.Add(ctx, 1)
	}
}

var _ ports.StoreService = (*Service)(nil)
