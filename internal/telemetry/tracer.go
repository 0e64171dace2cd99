// Package telemetry is ambient observability enrichment: a NoOp/real
// tracer split grounded on AleutianLocal's
// cmd/aleutian/internal/diagnostics/tracer.go, wiring one span per probe
// when stdout tracing is enabled, plus a NoOp/real Prometheus metrics
// split for pass/fail/skip gauges. Neither is required for conformance
// probing itself; both are the kind of ambient stack a production Go CLI
// in this corpus carries regardless of what functionality is in or out of
// scope.
package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/trace"
)

// Tracer starts a span per probe, named for the probe and tagged with its
// category; the span is ended with the probe's outcome. Implementations
// must be safe for sequential use by one harness run (the harness itself
// is single-threaded per §5).
type Tracer interface {
	// StartProbeSpan starts a span for one probe invocation and returns a
	// context carrying it plus a finish func the caller invokes with the
	// probe's final status string and, for a failing outcome, an error
	// describing why.
	StartProbeSpan(ctx context.Context, category, probeName string) (context.Context, func(status string, err error))
	// Shutdown flushes any buffered spans. Safe to call on a NoopTracer.
	Shutdown(ctx context.Context) error
}

// NoopTracer is the default Tracer: every call is a cheap no-op. Used
// unless --otel-stdout is passed on the CLI.
type NoopTracer struct{}

// NewNoopTracer returns a ready-to-use NoopTracer.
func NewNoopTracer() *NoopTracer { return &NoopTracer{} }

func (NoopTracer) StartProbeSpan(ctx context.Context, _, _ string) (context.Context, func(string, error)) {
	return ctx, func(string, error) {}
}

func (NoopTracer) Shutdown(context.Context) error { return nil }

// StdoutTracer exports one span per probe to stdout via the OTel stdout
// exporter, for local inspection without standing up a collector.
type StdoutTracer struct {
	provider *sdktrace.TracerProvider
	tracer   trace.Tracer
}

// NewStdoutTracer builds a StdoutTracer whose spans are pretty-printed to
// the process's stdout.
func NewStdoutTracer(serviceName string) (*StdoutTracer, error) {
	exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, err
	}
	provider := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
	otel.SetTracerProvider(provider)
	return &StdoutTracer{
		provider: provider,
		tracer:   provider.Tracer(serviceName),
	}, nil
}

func (t *StdoutTracer) StartProbeSpan(ctx context.Context, category, probeName string) (context.Context, func(string, error)) {
	spanCtx, span := t.tracer.Start(ctx, probeName, trace.WithAttributes(
		attribute.String("probe.category", category),
		attribute.String("probe.name", probeName),
	))
	return spanCtx, func(status string, probeErr error) {
		span.SetAttributes(attribute.String("probe.status", status))
		if probeErr != nil {
			span.RecordError(probeErr)
			span.SetStatus(codes.Error, probeErr.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		span.End()
	}
}

func (t *StdoutTracer) Shutdown(ctx context.Context) error {
	return t.provider.Shutdown(ctx)
}
