package observability

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap"
)

func newTestMetrics(t *testing.T) (*Metrics, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })
	return NewMetrics(mp.Meter("test"), zap.NewNop()), reader
}

func collect(t *testing.T, reader *sdkmetric.ManualReader, name string) (metricdata.Metrics, bool) {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name == name {
				return m, true
			}
		}
	}
	return metricdata.Metrics{}, false
}

func counterValue(t *testing.T, reader *sdkmetric.ManualReader, name string, want ...attribute.KeyValue) int64 {
	t.Helper()
	m, ok := collect(t, reader, name)
	if !ok {
		return 0
	}
	sum, ok := m.Data.(metricdata.Sum[int64])
	require.True(t, ok, "%s is not an int64 sum", name)
	var total int64
	for _, dp := range sum.DataPoints {
		matched := true
		for _, kv := range want {
			if v, ok := dp.Attributes.Value(kv.Key); !ok || v.Emit() != kv.Value.Emit() {
				matched = false
			}
		}
		if matched {
			total += dp.Value
		}
	}
	return total
}

func TestMetricsMiddlewareCountsByRoutePattern(t *testing.T) {
	m, reader := newTestMetrics(t)
	r := chi.NewRouter()
	r.Use(m.Middleware())
	r.Get("/things/{slug}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for i := 0; i < 2; i++ {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, fmt.Sprintf("/things/x%d", i), nil))
	}

	require.EqualValues(t, 2, counterValue(t, reader, MetricRequests,
		attribute.String("http.route", "/things/{slug}"),
		attribute.String("http.status_code", "404"),
	))

	hist, ok := collect(t, reader, MetricRequestDuration)
	require.True(t, ok)
	data, ok := hist.Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, data.DataPoints, 1)
	require.EqualValues(t, 2, data.DataPoints[0].Count)
}

func TestMetricsPageAndDialogCounters(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()
	m.PageDispatched(ctx, "stay", true)
	m.PageDispatched(ctx, "stay", false)
	m.PageDispatched(ctx, "home", false)
	m.DialogSubmitted(ctx, "booking", false)
	m.DialogSubmitted(ctx, "booking", true)

	require.EqualValues(t, 1, counterValue(t, reader, MetricPageDispatches,
		attribute.String("route.name", "stay"), attribute.Bool("route.not_found", true)))
	require.EqualValues(t, 3, counterValue(t, reader, MetricPageDispatches))
	require.EqualValues(t, 1, counterValue(t, reader, MetricDialogSubmissions,
		attribute.String("dialog", "booking"), attribute.Bool("accepted", true)))
}

func TestNilMetricsRecordNothing(t *testing.T) {
	var m *Metrics
	m.PageDispatched(context.Background(), "home", false)
	m.DialogSubmitted(context.Background(), "booking", true)

	h := m.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusTeapot, rec.Code)
}
