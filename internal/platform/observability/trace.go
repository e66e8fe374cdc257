package observability

import (
	"context"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "finitefield.org/taniti-web/internal/platform/observability"

var propagator = propagation.TraceContext{}

func tracer() trace.Tracer {
	// Resolved per call; tests install their provider after init.
	return otel.GetTracerProvider().Tracer(instrumentationName)
}

// TraceMiddleware continues any W3C trace context on the request and starts a
// server span around the handler.
func TraceMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := propagator.Extract(r.Context(), propagation.HeaderCarrier(r.Header))
			ctx, span := tracer().Start(ctx, r.Method+" "+r.URL.Path,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					semconv.HTTPRequestMethodKey.String(SanitizeMethod(r.Method)),
					semconv.URLPath(r.URL.Path),
				),
			)
			defer span.End()

			if htmx := r.Header.Get("HX-Request"); htmx != "" {
				span.SetAttributes(attribute.Bool("htmx.request", true))
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// StartSpan starts an internal child span.
func StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return tracer().Start(ctx, name, trace.WithAttributes(attrs...))
}

func setSpanStatus(span trace.Span, status int) {
	span.SetAttributes(semconv.HTTPResponseStatusCode(status))
	if status >= http.StatusInternalServerError {
		span.SetStatus(codes.Error, http.StatusText(status))
		return
	}
	span.SetStatus(codes.Ok, "")
}
