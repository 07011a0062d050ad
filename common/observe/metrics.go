// Package observe provides the service's observability primitives:
// structured logging, OpenTelemetry metrics exported for Prometheus, and the
// gin middleware that ties them to each request.
//
// Tests should use [NewMetrics] with their own [metric.MeterProvider] to avoid
// cross-test pollution.
package observe

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// meterName is the instrumentation scope for all service metrics.
const meterName = "voicedetect"

// Metrics holds the metric instruments. All fields are safe for concurrent
// use.
type Metrics struct {
	// HTTPRequestDuration tracks request handling time. Attributes: method,
	// route, status.
	HTTPRequestDuration metric.Float64Histogram

	// DetectDuration tracks time spent inside the detection pipeline.
	DetectDuration metric.Float64Histogram

	// Detections counts successful detections. Attributes: label, language.
	Detections metric.Int64Counter

	// Rejections counts requests refused before a verdict. Attribute: reason.
	Rejections metric.Int64Counter

	// AuditDropped counts audit records dropped because the queue was full
	// or indexing failed.
	AuditDropped metric.Int64Counter
}

// latencyBuckets are histogram boundaries in seconds. Detection is CPU-bound
// and fast, so the low end is dense.
var latencyBuckets = []float64{
	0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1,
}

// NewMetrics creates all instruments from mp.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.HTTPRequestDuration, err = m.Float64Histogram("voicedetect.http.request.duration",
		metric.WithDescription("HTTP request processing time."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.DetectDuration, err = m.Float64Histogram("voicedetect.detect.duration",
		metric.WithDescription("Time spent in the detection pipeline."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.Detections, err = m.Int64Counter("voicedetect.detections",
		metric.WithDescription("Completed detections by label and language."),
	); err != nil {
		return nil, err
	}
	if met.Rejections, err = m.Int64Counter("voicedetect.rejections",
		metric.WithDescription("Requests rejected before classification, by reason."),
	); err != nil {
		return nil, err
	}
	if met.AuditDropped, err = m.Int64Counter("voicedetect.audit.dropped",
		metric.WithDescription("Audit records that could not be indexed."),
	); err != nil {
		return nil, err
	}
	return met, nil
}

// RecordDetection records one completed detection.
func (m *Metrics) RecordDetection(ctx context.Context, label, language string, seconds float64) {
	m.Detections.Add(ctx, 1, metric.WithAttributes(
		attribute.String("label", label),
		attribute.String("language", language),
	))
	m.DetectDuration.Record(ctx, seconds)
}

// RecordRejection records a request refused for reason (format, language,
// auth, request).
func (m *Metrics) RecordRejection(ctx context.Context, reason string) {
	m.Rejections.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
}

// RecordAuditDrop counts an audit record that was not stored.
func (m *Metrics) RecordAuditDrop(reason string) {
	m.AuditDropped.Add(context.Background(), 1, metric.WithAttributes(attribute.String("reason", reason)))
}
