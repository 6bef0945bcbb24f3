package metrics

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// unmatchedRoute labels requests no route matched, so scanners cannot inflate cardinality.
const unmatchedRoute = "unmatched"

type httpMetrics struct {
	requests      metric.Int64Counter
	latency       metric.Float64Histogram
	responseBytes metric.Int64Counter
}

func newHTTPMetrics(meter metric.Meter, namespace string) (*httpMetrics, error) {
	h := &httpMetrics{}

	var err error
	if h.requests, err = meter.Int64Counter(
		namespace+"_http_requests_total",
		metric.WithDescription("HTTP requests by method, route and status"),
		metric.WithUnit("{request}"),
	); err != nil {
		return nil, fmt.Errorf("failed to create request counter: %w", err)
	}

	if h.latency, err = meter.Float64Histogram(
		namespace+"_http_request_duration_seconds",
		metric.WithDescription("HTTP request latency, including the time spent streaming the body"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, fmt.Errorf("failed to create latency histogram: %w", err)
	}

	if h.responseBytes, err = meter.Int64Counter(
		namespace+"_http_response_body_bytes",
		metric.WithDescription("Response body bytes written; for /asset this is the proxied bandwidth"),
		metric.WithUnit("{byte}"),
	); err != nil {
		return nil, fmt.Errorf("failed to create response bytes counter: %w", err)
	}

	return h, nil
}

func (h *httpMetrics) observe(ctx context.Context, c *gin.Context, elapsed time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("method", c.Request.Method),
		attribute.String("route", routeLabel(c.FullPath())),
		attribute.String("status_code", strconv.Itoa(c.Writer.Status())),
	)

	h.requests.Add(ctx, 1, attrs)
	h.latency.Record(ctx, elapsed.Seconds(), attrs)
	if size := c.Writer.Size(); size > 0 {
		h.responseBytes.Add(ctx, int64(size), attrs)
	}
}

// HTTPMetricsMiddleware records request count, latency and body bytes per route.
// Requests pass through unobserved if the instruments cannot be created.
func HTTPMetricsMiddleware(meterProvider metric.MeterProvider, namespace string) gin.HandlerFunc {
	h, err := newHTTPMetrics(meterProvider.Meter(namespace), namespace)
	if err != nil {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		// The request context is done once a client disconnects mid-stream.
		h.observe(context.WithoutCancel(c.Request.Context()), c, time.Since(start))
	}
}

// routeLabel keeps the matched route pattern so query strings and ids never become labels.
func routeLabel(fullPath string) string {
	if fullPath == "" {
		return unmatchedRoute
	}
	return fullPath
}
