package telemetry

import (
	"bytes"
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/press/internal/core/ports"
)

var _ ports.Tracer = (*OTelTracer)(nil)

// KindKey is the span attribute holding the registry kind of an entry.
const KindKey = attribute.Key("press.kind")

// OTelTracer implements ports.Tracer on an OpenTelemetry tracer. Span output
// goes straight to the renderer, which buffers it by line.
type OTelTracer struct {
	tracer   trace.Tracer
	renderer ports.Renderer
}

// TracerOption configures an OTelTracer.
type TracerOption func(*tracerConfig)

type tracerConfig struct {
	provider trace.TracerProvider
	renderer ports.Renderer
}

// WithProvider uses tp instead of the global provider.
func WithProvider(tp trace.TracerProvider) TracerOption {
	return func(c *tracerConfig) {
		c.provider = tp
	}
}

// WithRenderer streams span output and plans to r.
func WithRenderer(r ports.Renderer) TracerOption {
	return func(c *tracerConfig) {
		c.renderer = r
	}
}

// NewOTelTracer creates an OTelTracer for the instrumentation name.
func NewOTelTracer(name string, opts ...TracerOption) *OTelTracer {
	cfg := tracerConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.provider == nil {
		cfg.provider = otel.GetTracerProvider()
	}
	return &OTelTracer{
		tracer:   cfg.provider.Tracer(name),
		renderer: cfg.renderer,
	}
}

// Start creates a span named after the entry.
func (t *OTelTracer) Start(ctx context.Context, name string, opts ...ports.SpanOption) (context.Context, ports.Span) {
	cfg := &ports.SpanConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	var startOpts []trace.SpanStartOption
	if cfg.Kind != "" {
		startOpts = append(startOpts, trace.WithAttributes(KindKey.String(cfg.Kind)))
	}

	ctx, span := t.tracer.Start(ctx, name, startOpts...)
	return ctx, &OTelSpan{span: span, renderer: t.renderer}
}

// EmitPlan records the planned entries on the current span and reports them.
func (t *OTelTracer) EmitPlan(ctx context.Context, taskNames []string, targets []string) {
	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.AddEvent("plan_emitted", trace.WithAttributes(
			attribute.StringSlice("tasks", taskNames),
			attribute.StringSlice("targets", targets),
		))
	}
	if t.renderer != nil {
		t.renderer.OnPlanEmit(taskNames, targets)
	}
}

// OTelSpan implements ports.Span.
type OTelSpan struct {
	span     trace.Span
	renderer ports.Renderer
}

// End completes the span.
func (s *OTelSpan) End() {
	s.span.End()
}

// RecordError marks the span as failed.
func (s *OTelSpan) RecordError(err error) {
	s.span.RecordError(err)
	s.span.SetStatus(codes.Error, err.Error())
}

// SetAttribute adds a key-value pair to the span.
func (s *OTelSpan) SetAttribute(key string, value any) {
	switch v := value.(type) {
	case string:
		s.span.SetAttributes(attribute.String(key, v))
	case int:
		s.span.SetAttributes(attribute.Int(key, v))
	case int64:
		s.span.SetAttributes(attribute.Int64(key, v))
	case bool:
		s.span.SetAttributes(attribute.Bool(key, v))
	case []string:
		s.span.SetAttributes(attribute.StringSlice(key, v))
	default:
		s.span.SetAttributes(attribute.String(key, fmt.Sprintf("%v", v)))
	}
}

// Write forwards task output to the renderer, or records it as a span event
// when there is none.
func (s *OTelSpan) Write(p []byte) (int, error) {
	if s.renderer != nil {
		s.renderer.OnTaskLog(s.span.SpanContext().SpanID().String(), bytes.Clone(p))
		return len(p), nil
	}
	s.span.AddEvent("log", trace.WithAttributes(attribute.String("message", string(p))))
	return len(p), nil
}
