package httpapi

import (
	"context"
	"net/http"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const handlerSpanPrefix = "httpapi.Handler."

var (
	apiTracer = otel.Tracer("tournament-dashboard/internal/interfaces/httpapi")
	noopSpan  = trace.SpanFromContext(context.Background())

	probePaths = map[string]struct{}{
		"/healthz": {},
		"/health":  {},
		"/livez":   {},
		"/readyz":  {},
	}
)

// RequestTracing opens the server span for every request except liveness
// probes.
func RequestTracing(next http.Handler) http.Handler {
	return otelhttp.NewHandler(next, "tournament-dashboard-http",
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
		otelhttp.WithFilter(func(r *http.Request) bool {
			return shouldTraceRequest(r.URL.Path)
		}),
	)
}

func shouldTraceRequest(path string) bool {
	_, probe := probePaths[strings.ToLower(strings.TrimSpace(path))]
	return !probe
}

// startSpan opens child spans for handlers only. Middleware and response
// helpers share the request span, and untraced requests get a no-op span.
func startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if !strings.HasPrefix(name, handlerSpanPrefix) {
		return ctx, noopSpan
	}
	if !trace.SpanFromContext(ctx).SpanContext().IsValid() {
		return ctx, noopSpan
	}
	return apiTracer.Start(ctx, name, trace.WithAttributes(attrs...))
}
