package observability

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.uber.org/zap"
)

const meterName = "finitefield.org/taniti-web/internal/platform/observability"

// Instrument names.
const (
	MetricRequests          = "taniti.http.requests"
	MetricRequestDuration   = "taniti.http.request.duration"
	MetricPageDispatches    = "taniti.page.dispatches"
	MetricDialogSubmissions = "taniti.dialog.submissions"
)

// Metrics holds the site's request, page and dialog instruments. A nil
// *Metrics records nothing.
type Metrics struct {
	requests    metric.Int64Counter
	latency     metric.Float64Histogram
	dispatches  metric.Int64Counter
	submissions metric.Int64Counter
}

// NewMetrics registers the instruments on meter, or on the global meter
// provider when meter is nil. Instruments that fail to register fall back
// to no-ops.
func NewMetrics(meter metric.Meter, logger *zap.Logger) *Metrics {
	if meter == nil {
		meter = otel.GetMeterProvider().Meter(meterName)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	fallback := noop.NewMeterProvider().Meter(meterName)
	warn := func(name string, err error) {
		logger.Warn("observability: unable to register metric", zap.String("metric", name), zap.Error(err))
	}

	m := &Metrics{}
	var err error
	if m.requests, err = meter.Int64Counter(MetricRequests,
		metric.WithDescription("Count of completed HTTP requests")); err != nil {
		warn(MetricRequests, err)
		m.requests, _ = fallback.Int64Counter(MetricRequests)
	}
	if m.latency, err = meter.Float64Histogram(MetricRequestDuration,
		metric.WithUnit("ms"),
		metric.WithDescription("Latency in milliseconds of completed HTTP requests")); err != nil {
		warn(MetricRequestDuration, err)
		m.latency, _ = fallback.Float64Histogram(MetricRequestDuration)
	}
	if m.dispatches, err = meter.Int64Counter(MetricPageDispatches,
		metric.WithDescription("Count of page renders by route name")); err != nil {
		warn(MetricPageDispatches, err)
		m.dispatches, _ = fallback.Int64Counter(MetricPageDispatches)
	}
	if m.submissions, err = meter.Int64Counter(MetricDialogSubmissions,
		metric.WithDescription("Count of dialog submissions by outcome")); err != nil {
		warn(MetricDialogSubmissions, err)
		m.submissions, _ = fallback.Int64Counter(MetricDialogSubmissions)
	}
	return m
}

// Middleware counts requests and records their latency, tagged with the
// matched route pattern, method and status.
func (m *Metrics) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if m == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				status := ww.Status()
				if status == 0 {
					status = http.StatusOK
				}
				attrs := metric.WithAttributes(
					attribute.String("http.route", routePattern(r)),
					attribute.String("http.method", SanitizeMethod(r.Method)),
					attribute.String("http.status_code", strconv.Itoa(status)),
				)
				m.requests.Add(r.Context(), 1, attrs)
				m.latency.Record(r.Context(), float64(time.Since(start))/float64(time.Millisecond), attrs)
			}()
			next.ServeHTTP(ww, r)
		})
	}
}

// PageDispatched counts one resolved page.
func (m *Metrics) PageDispatched(ctx context.Context, route string, notFound bool) {
	if m == nil {
		return
	}
	m.dispatches.Add(ctx, 1, metric.WithAttributes(
		attribute.String("route.name", route),
		attribute.Bool("route.not_found", notFound),
	))
}

// DialogSubmitted counts one dialog or contact form submission.
func (m *Metrics) DialogSubmitted(ctx context.Context, kind string, accepted bool) {
	if m == nil {
		return
	}
	m.submissions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("dialog", kind),
		attribute.Bool("accepted", accepted),
	))
}
