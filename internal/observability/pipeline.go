package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// PipelineMetrics holds the parse/lowering instruments: duration histograms
// and a predicate-tree-size histogram, recorded around the three core
// boundary calls (urlparser.Parse, filter.ParseFilter, lowering.Lower).
type PipelineMetrics struct {
	parseDuration    metric.Float64Histogram
	lowerDuration    metric.Float64Histogram
	predicateSize    metric.Int64Histogram
}

// NewPipelineMetrics creates the pipeline instruments with the given
// MeterProvider, following the same "fall back to unparented instrument
// on registration error" pattern as NewMetrics.
func NewPipelineMetrics(mp metric.MeterProvider) *PipelineMetrics {
	meter := mp.Meter(MeterName)
	m := &PipelineMetrics{}

	var err error
	m.parseDuration, err = meter.Float64Histogram(
		"odata.core.parse.duration",
		metric.WithDescription("Duration of URL and filter parsing in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		m.parseDuration, _ = meter.Float64Histogram("odata.core.parse.duration")
	}

	m.lowerDuration, err = meter.Float64Histogram(
		"odata.core.lower.duration",
		metric.WithDescription("Duration of query lowering in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		m.lowerDuration, _ = meter.Float64Histogram("odata.core.lower.duration")
	}

	m.predicateSize, err = meter.Int64Histogram(
		"odata.core.predicate.size",
		metric.WithDescription("Number of leaf filter predicates in a lowered plan"),
		metric.WithUnit("{predicate}"),
	)
	if err != nil {
		m.predicateSize, _ = meter.Int64Histogram("odata.core.predicate.size")
	}

	return m
}

// RecordParse records one parse-stage duration.
func (m *PipelineMetrics) RecordParse(ctx context.Context, duration time.Duration) {
	if m == nil || m.parseDuration == nil {
		return
	}
	m.parseDuration.Record(ctx, float64(duration.Microseconds())/1000.0)
}

// RecordLower records one lowering-stage duration and the resulting
// predicate count.
func (m *PipelineMetrics) RecordLower(ctx context.Context, duration time.Duration, predicateCount int) {
	if m == nil || m.lowerDuration == nil {
		return
	}
	m.lowerDuration.Record(ctx, float64(duration.Microseconds())/1000.0)
	if m.predicateSize != nil {
		m.predicateSize.Record(ctx, int64(predicateCount))
	}
}

// StartParseSpan starts the span wrapping urlparser.Parse + filter.ParseFilter.
func (t *Tracer) StartParseSpan(ctx context.Context, rawURL string) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, "odata.core.parse", trace.WithAttributes(
		attribute.String("odata.core.url", rawURL),
	))
}

// StartLowerSpan starts the span wrapping lowering.Lower.
func (t *Tracer) StartLowerSpan(ctx context.Context, entitySet string) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, "odata.core.lower", trace.WithAttributes(
		EntitySetAttr(entitySet),
	))
}

// EndSpan sets the span's status from err (codes.Error with the message, or
// codes.Ok) and ends it. A small helper so every pipeline boundary reports
// errors identically.
func EndSpan(span trace.Span, err error) {
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
