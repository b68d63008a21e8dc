package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertMetricLine checks that the Prometheus output contains a metric matching
// the given name, partial label pattern, and value. Uses regex to handle extra
// OTel scope labels injected by the Prometheus exporter.
func assertMetricLine(t *testing.T, output, name, labels, value string) {
	t.Helper()
	pattern := name + `\{[^}]*` + labels + `[^}]*\} ` + value
	assert.Regexp(t, pattern, output)
}

func scrape(t *testing.T, provider *Provider) string {
	t.Helper()

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	provider.Handler().ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	body, err := io.ReadAll(recorder.Body)
	require.NoError(t, err)
	return string(body)
}

func TestNewBusinessMetrics(t *testing.T) {
	provider, err := NewProvider("test_app")
	require.NoError(t, err)

	businessMetrics, err := NewBusinessMetrics(provider.MeterProvider(), "test_app")
	require.NoError(t, err)
	assert.NotNil(t, businessMetrics)
}

func TestBusinessMetrics_RecordOperation(t *testing.T) {
	provider, err := NewProvider("test_app")
	require.NoError(t, err)

	bm, err := NewBusinessMetrics(provider.MeterProvider(), "test_app")
	require.NoError(t, err)

	bm.RecordOperation(context.Background(), "orders", "order_create", "success")
	bm.RecordOperation(context.Background(), "orders", "order_create", "success")
	bm.RecordOperation(context.Background(), "orders", "order_create", "error")

	output := scrape(t, provider)
	assertMetricLine(t, output, "test_app_operations_total",
		`operation="order_create",status="success"`, "2")
	assertMetricLine(t, output, "test_app_operations_total",
		`operation="order_create",status="error"`, "1")
}

func TestBusinessMetrics_RecordDuration(t *testing.T) {
	provider, err := NewProvider("test_app")
	require.NoError(t, err)

	bm, err := NewBusinessMetrics(provider.MeterProvider(), "test_app")
	require.NoError(t, err)

	bm.RecordDuration(context.Background(), "orders", "order_create", 123*time.Millisecond, "success")

	output := scrape(t, provider)
	assert.Contains(t, output, "test_app_operation_duration_seconds")
}

func TestNewNoOpBusinessMetrics(t *testing.T) {
	noOp := NewNoOpBusinessMetrics()
	assert.NotNil(t, noOp)

	// Recording does nothing and never panics.
	noOp.RecordOperation(context.Background(), "orders", "order_create", "success")
	noOp.RecordDuration(context.Background(), "orders", "order_create", time.Second, "error")
}

func TestProvider_Shutdown(t *testing.T) {
	provider, err := NewProvider("test_app")
	require.NoError(t, err)

	assert.NoError(t, provider.Shutdown(context.Background()))
}
