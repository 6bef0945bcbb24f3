package metrics

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Capability outcomes recorded by RecordCapability.
const (
	CapabilityIssued        = "issued"
	CapabilityRedeemed      = "redeemed"
	CapabilityExpired       = "expired"
	CapabilityDecryptFailed = "decrypt_failed"
	CapabilityMalformed     = "malformed"
	CapabilityRejected      = "rejected"
)

// Key lookup results recorded by RecordKeyLookup. Hit and miss describe the cache,
// the remaining values describe the JWKS request a miss triggers.
const (
	KeyLookupHit        = "hit"
	KeyLookupMiss       = "miss"
	KeyLookupFetched    = "fetched"
	KeyLookupNotFound   = "not_found"
	KeyLookupFetchError = "fetch_error"
)

// BusinessMetrics records what the proxy does on behalf of its callers.
type BusinessMetrics interface {
	// RecordOperation counts a use case call and observes its latency.
	// Domains are "auth", "capability" and "asset".
	RecordOperation(ctx context.Context, domain, operation, status string, duration time.Duration)

	// RecordCapability counts a presigned URL being issued or redeemed, by outcome.
	RecordCapability(ctx context.Context, outcome string)

	// RecordKeyLookup counts signing key cache lookups and the JWKS fetches behind them.
	RecordKeyLookup(ctx context.Context, result string)

	// RecordOriginResponse observes how long the origin took to answer and with which
	// status. A statusCode of 0 means the origin could not be reached.
	RecordOriginResponse(ctx context.Context, statusCode int, duration time.Duration)
}

type otelBusinessMetrics struct {
	operations       metric.Int64Counter
	operationLatency metric.Float64Histogram
	capabilities     metric.Int64Counter
	keyLookups       metric.Int64Counter
	originLatency    metric.Float64Histogram
}

// NewBusinessMetrics registers the proxy instruments on meterProvider, prefixing every
// name with namespace.
func NewBusinessMetrics(meterProvider metric.MeterProvider, namespace string) (BusinessMetrics, error) {
	meter := meterProvider.Meter(namespace)
	b := &otelBusinessMetrics{}

	var err error
	if b.operations, err = meter.Int64Counter(
		namespace+"_operations_total",
		metric.WithDescription("Use case calls by domain, operation and status"),
		metric.WithUnit("{operation}"),
	); err != nil {
		return nil, fmt.Errorf("failed to create operation counter: %w", err)
	}

	if b.operationLatency, err = meter.Float64Histogram(
		namespace+"_operation_duration_seconds",
		metric.WithDescription("Use case latency by domain, operation and status"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, fmt.Errorf("failed to create operation histogram: %w", err)
	}

	if b.capabilities, err = meter.Int64Counter(
		namespace+"_capabilities_total",
		metric.WithDescription("Presigned URL capabilities issued and redeemed, by outcome"),
		metric.WithUnit("{capability}"),
	); err != nil {
		return nil, fmt.Errorf("failed to create capability counter: %w", err)
	}

	if b.keyLookups, err = meter.Int64Counter(
		namespace+"_jwks_lookups_total",
		metric.WithDescription("Signing key cache lookups and JWKS fetches, by result"),
		metric.WithUnit("{lookup}"),
	); err != nil {
		return nil, fmt.Errorf("failed to create key lookup counter: %w", err)
	}

	if b.originLatency, err = meter.Float64Histogram(
		namespace+"_origin_response_duration_seconds",
		metric.WithDescription("Time until the origin answered an asset request, by status"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, fmt.Errorf("failed to create origin histogram: %w", err)
	}

	return b, nil
}

func (b *otelBusinessMetrics) RecordOperation(
	ctx context.Context,
	domain, operation, status string,
	duration time.Duration,
) {
	attrs := metric.WithAttributes(
		attribute.String("domain", domain),
		attribute.String("operation", operation),
		attribute.String("status", status),
	)
	b.operations.Add(ctx, 1, attrs)
	b.operationLatency.Record(ctx, duration.Seconds(), attrs)
}

func (b *otelBusinessMetrics) RecordCapability(ctx context.Context, outcome string) {
	b.capabilities.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

func (b *otelBusinessMetrics) RecordKeyLookup(ctx context.Context, result string) {
	b.keyLookups.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
}

func (b *otelBusinessMetrics) RecordOriginResponse(ctx context.Context, statusCode int, duration time.Duration) {
	b.originLatency.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("status_class", StatusClass(statusCode)),
		attribute.String("status_code", strconv.Itoa(statusCode)),
	))
}

// StatusClass groups an HTTP status code as "2xx", "4xx" and so on, or "unreachable"
// when no response was received.
func StatusClass(statusCode int) string {
	if statusCode < 100 || statusCode > 599 {
		return "unreachable"
	}
	return strconv.Itoa(statusCode/100) + "xx"
}

// NoOpBusinessMetrics discards everything. Used when metrics are disabled.
type NoOpBusinessMetrics struct{}

// NewNoOpBusinessMetrics creates a no-op BusinessMetrics implementation.
func NewNoOpBusinessMetrics() BusinessMetrics {
	return NoOpBusinessMetrics{}
}

func (NoOpBusinessMetrics) RecordOperation(context.Context, string, string, string, time.Duration) {}

func (NoOpBusinessMetrics) RecordCapability(context.Context, string) {}

func (NoOpBusinessMetrics) RecordKeyLookup(context.Context, string) {}

func (NoOpBusinessMetrics) RecordOriginResponse(context.Context, int, time.Duration) {}
