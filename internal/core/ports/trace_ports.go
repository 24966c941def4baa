package ports

import (
	"context"

	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

type TraceProvider interface {
	Tracer() trace.Tracer
	TracerProvider() trace.TracerProvider
	Propagator() propagation.TextMapPropagator
	// Traceparent returns the W3C traceparent for the span active in ctx,
	// synthesizing one when no valid span is present.
	Traceparent(ctx context.Context) (string, error)
	Shutdown(ctx context.Context) error
}
