package tracing

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.uber.org/zap"

	"github.com/vncsmyrnk/vote/internal/config"
)

// Setup picks the exporter-backed provider when tracing is enabled and an
// OTLP endpoint is configured, and the no-op provider otherwise.
func Setup(ctx context.Context, cfg config.TracingConfig, logger *zap.Logger, opts ...Option) (*Provider, error) {
	opts = append([]Option{WithLogger(logger)}, opts...)

	if !cfg.Enabled || cfg.Endpoint == "" {
		logger.Info("Tracing export disabled, using no-op tracer")
		return NewNoop(opts...), nil
	}

	p, err := NewExporter(ctx, cfg, opts...)
	if err != nil {
		return nil, err
	}
	logger.Info("Tracing export enabled",
		zap.String("endpoint", cfg.Endpoint),
		zap.String("service", cfg.ServiceName),
		zap.Float64("sampling_ratio", cfg.SamplingRatio),
	)
	return p, nil
}

func NewExporter(ctx context.Context, cfg config.TracingConfig, opts ...Option) (*Provider, error) {
	exporterOpts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		exporterOpts = append(exporterOpts, otlptracegrpc.WithInsecure())
	}

	res, err := newResource(ctx, cfg.ServiceName)
	if err != nil {
		return nil, fmt.Errorf("failed to build tracing resource: %w", err)
	}

	exporter, err := otlptracegrpc.New(ctx, exporterOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create otlp exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter,
			sdktrace.WithMaxExportBatchSize(512),
			sdktrace.WithBatchTimeout(2*time.Second),
		),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SamplingRatio))),
	)

	return New(tp, tp.Shutdown, opts...), nil
}

func newResource(ctx context.Context, serviceName string) (*resource.Resource, error) {
	hostname, _ := os.Hostname()
	return resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceInstanceID(uuid.NewString()),
			semconv.HostName(hostname),
		),
	)
}
