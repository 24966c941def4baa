package tracing

import (
	"context"
	"crypto/rand"
	"io"

	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
)

const instrumentationName = "github.com/vncsmyrnk/vote"

type Option func(*Provider)

func WithLogger(logger *zap.Logger) Option {
	return func(p *Provider) {
		p.logger = logger
	}
}

// WithEntropy replaces the source used for fallback trace and span ids.
func WithEntropy(entropy io.Reader) Option {
	return func(p *Provider) {
		p.gen = newGenerator(entropy)
	}
}

type Provider struct {
	tracerProvider trace.TracerProvider
	tracer         trace.Tracer
	propagator     propagation.TextMapPropagator
	shutdown       func(context.Context) error
	gen            *generator
	logger         *zap.Logger
}

func New(tp trace.TracerProvider, shutdown func(context.Context) error, opts ...Option) *Provider {
	p := &Provider{
		tracerProvider: tp,
		tracer:         tp.Tracer(instrumentationName),
		propagator:     propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}),
		shutdown:       shutdown,
		gen:            newGenerator(rand.Reader),
		logger:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NewNoop returns a provider whose spans are never recorded, so every
// traceparent that is not inherited from an upstream caller is synthesized.
func NewNoop(opts ...Option) *Provider {
	return New(noop.NewTracerProvider(), nil, opts...)
}

func (p *Provider) Tracer() trace.Tracer {
	return p.tracer
}

func (p *Provider) TracerProvider() trace.TracerProvider {
	return p.tracerProvider
}

func (p *Provider) Propagator() propagation.TextMapPropagator {
	return p.propagator
}

func (p *Provider) Traceparent(ctx context.Context) (string, error) {
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		return Format(sc.TraceID(), sc.SpanID()), nil
	}

	token, err := p.gen.traceparent()
	if err != nil {
		p.logger.Error("failed to generate fallback traceparent", zap.Error(err))
		return "", err
	}
	p.logger.Warn("no active span, generated fallback traceparent", zap.String("traceparent", token))
	return token, nil
}

func (p *Provider) Shutdown(ctx context.Context) error {
	if p.shutdown == nil {
		return nil
	}
	return p.shutdown(ctx)
}
