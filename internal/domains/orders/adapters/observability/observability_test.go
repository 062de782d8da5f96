package observability

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/Apurer/go-gin-order-dashboard/internal/domains/orders/adapters/memory"
	"github.com/Apurer/go-gin-order-dashboard/internal/domains/orders/application"
	"github.com/Apurer/go-gin-order-dashboard/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-order-dashboard/internal/domains/orders/ports"
)

type stubGateway struct {
	ports.Gateway
	err error
}

func (s stubGateway) ListAll(context.Context) ([]domain.Order, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []domain.Order{{ID: 1, Status: domain.StatusPlaced}}, nil
}

func (s stubGateway) Delete(context.Context, int64) error {
	return s.err
}

func newRecorder() (*tracetest.SpanRecorder, *sdktrace.TracerProvider) {
	rec := tracetest.NewSpanRecorder()
	return rec, sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
}

func TestService_CreateRecordsSpanAndCounter(t *testing.T) {
	rec, tp := newRecorder()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	svc := NewService(application.NewStoreService(memory.NewRepository()),
		WithTracer(tp.Tracer("test")), WithMeter(mp.Meter("test")))

	created, err := svc.Create(context.Background(), domain.Draft{Title: "Desk", Description: "Standing", Quantity: 1, Price: 400})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPlaced, created.Status)

	spans := rec.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "OrderStore.Create", spans[0].Name())

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	require.Len(t, rm.ScopeMetrics, 1)
	found := false
	for _, m := range rm.ScopeMetrics[0].Metrics {
		if m.Name == "orders.service.created" {
			found = true
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok)
			require.Len(t, sum.DataPoints, 1)
			assert.Equal(t, int64(1), sum.DataPoints[0].Value)
		}
	}
	assert.True(t, found)
}

func TestService_ErrorsMarkSpanAndLog(t *testing.T) {
	rec, tp := newRecorder()
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	svc := NewService(application.NewStoreService(memory.NewRepository()),
		WithTracer(tp.Tracer("test")), WithLogger(logger))

	err := svc.Delete(context.Background(), 404)
	require.ErrorIs(t, err, ports.ErrNotFound)

	spans := rec.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Contains(t, buf.String(), "failed to delete order")
}

func TestGateway_PassesThroughAndRecordsOutcome(t *testing.T) {
	rec, tp := newRecorder()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	gw := NewGateway(stubGateway{}, WithTracer(tp.Tracer("test")), WithMeter(mp.Meter("test")))
	orders, err := gw.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, orders, 1)

	failing := NewGateway(stubGateway{err: ports.ErrNetwork}, WithTracer(tp.Tracer("test")), WithMeter(mp.Meter("test")))
	require.ErrorIs(t, failing.Delete(context.Background(), 3), ports.ErrNetwork)

	spans := rec.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "OrderGateway.ListAll", spans[0].Name())
	assert.Equal(t, "OrderGateway.Delete", spans[1].Name())
	assert.Equal(t, codes.Error, spans[1].Status().Code)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	var calls int64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "orders.gateway.calls" {
				continue
			}
			for _, dp := range m.Data.(metricdata.Sum[int64]).DataPoints {
				calls += dp.Value
			}
		}
	}
	assert.Equal(t, int64(2), calls)
}

func TestNew_DefaultsAreSafe(t *testing.T) {
	gw := NewGateway(stubGateway{}, nil)
	_, err := gw.ListAll(context.Background())
	require.NoError(t, err)
}
