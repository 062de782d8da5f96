//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "orders-api"
	ConsumerName = "order-dashboard"

	StateOrdersBaseline = "orders baseline"
	StateOrderExists    = "order with id 301 exists"
	StateOrderMissing   = "no order with id 999"
)

const (
	ExistingOrderID int64 = 301
	MissingOrderID  int64 = 999
)

const (
	exampleTitle        = "Standing desk"
	exampleDescription  = "Oak top, 160x80"
	exampleOrderDate    = "2024-06-12"
	exampleDeliveryDate = "2024-06-19"
)

// DatePattern matches the YYYY-MM-DD dates exchanged with the orders API.
const DatePattern = `^\d{4}-\d{2}-\d{2}$`

// StatusPattern matches every lifecycle status.
const StatusPattern = "PLACED|PROCESSING|SHIPPED|DELIVERED|CANCELLED"

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the dashboard consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleOrderPayload provides stable test data for the seeded order.
func ExampleOrderPayload() map[string]any {
	return map[string]any{
		"id":           ExistingOrderID,
		"title":        exampleTitle,
		"description":  exampleDescription,
		"quantity":     2,
		"price":        349.5,
		"orderDate":    exampleOrderDate,
		"deliveryDate": exampleDeliveryDate,
		"status":       "PLACED",
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
