// Package telemetry wires the process-wide OpenTelemetry providers.
// Traces and metrics export over OTLP gRPC; when disabled the provider
// hands out no-op tracers and nil instruments so handlers stay agnostic.
package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/sarav18302/CS203-Lab-01/internal/infrastructure/config"
	"github.com/sarav18302/CS203-Lab-01/internal/infrastructure/logger"
)

const instrumentationName = "courseportal"

// Provider manages the OpenTelemetry trace and metric providers.
// It is initialized once at startup and injected into the HTTP layer,
// never reconstructed per request.
type Provider struct {
	cfg    config.TelemetryConfig
	app    config.AppConfig
	logger *logger.Logger

	tracerProvider *sdktrace.TracerProvider
	meterProvider  *sdkmetric.MeterProvider
	tracer         trace.Tracer
	meter          metric.Meter

	requestCounter metric.Int64Counter
	errorCounter   metric.Int64Counter
	durationHist   metric.Float64Histogram
}

// New creates the telemetry provider. With telemetry disabled the
// returned provider is inert and safe to use everywhere.
func New(ctx context.Context, cfg config.TelemetryConfig, app config.AppConfig, appLogger *logger.Logger) (*Provider, error) {
	p := &Provider{
		cfg:    cfg,
		app:    app,
		logger: appLogger.WithComponent("telemetry"),
	}

	if !cfg.Enabled {
		p.logger.Info("Telemetry disabled")
		return p, nil
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(app.Name),
			semconv.ServiceVersion(app.Version),
			semconv.DeploymentEnvironment(app.Environment),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	if err := p.initTraceProvider(ctx, res); err != nil {
		return nil, fmt.Errorf("failed to init trace provider: %w", err)
	}

	if err := p.initMetricProvider(ctx, res); err != nil {
		return nil, fmt.Errorf("failed to init metric provider: %w", err)
	}

	p.tracer = otel.Tracer(instrumentationName,
		trace.WithInstrumentationVersion(app.Version),
	)
	p.meter = otel.Meter(instrumentationName,
		metric.WithInstrumentationVersion(app.Version),
	)

	if err := p.initInstruments(); err != nil {
		return nil, fmt.Errorf("failed to init instruments: %w", err)
	}

	p.logger.Info("Telemetry initialized",
		"endpoint", cfg.OTLPEndpoint,
		"sample_rate", cfg.SampleRate,
	)

	return p, nil
}

func (p *Provider) initTraceProvider(ctx context.Context, res *resource.Resource) error {
	opts := []otlptracegrpc.Option{
		otlptracegrpc.WithEndpoint(p.cfg.OTLPEndpoint),
	}
	if p.cfg.Insecure {
		opts = append(opts, otlptracegrpc.WithInsecure())
	}

	exporter, err := otlptracegrpc.New(ctx, opts...)
	if err != nil {
		return fmt.Errorf("failed to create trace exporter: %w", err)
	}

	var sampler sdktrace.Sampler
	switch {
	case p.cfg.SampleRate >= 1.0:
		sampler = sdktrace.AlwaysSample()
	case p.cfg.SampleRate <= 0.0:
		sampler = sdktrace.NeverSample()
	default:
		sampler = sdktrace.TraceIDRatioBased(p.cfg.SampleRate)
	}

	p.tracerProvider = sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithBatcher(exporter,
			sdktrace.WithBatchTimeout(p.cfg.BatchTimeout),
		),
		sdktrace.WithSampler(sampler),
	)

	otel.SetTracerProvider(p.tracerProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return nil
}

func (p *Provider) initMetricProvider(ctx context.Context, res *resource.Resource) error {
	opts := []otlpmetricgrpc.Option{
		otlpmetricgrpc.WithEndpoint(p.cfg.OTLPEndpoint),
	}
	if p.cfg.Insecure {
		opts = append(opts, otlpmetricgrpc.WithInsecure())
	}

	exporter, err := otlpmetricgrpc.New(ctx, opts...)
	if err != nil {
		return fmt.Errorf("failed to create metric exporter: %w", err)
	}

	p.meterProvider = sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter,
			sdkmetric.WithInterval(15*time.Second),
		)),
	)

	otel.SetMeterProvider(p.meterProvider)

	return nil
}

func (p *Provider) initInstruments() error {
	var err error

	p.requestCounter, err = p.meter.Int64Counter("catalog.requests",
		metric.WithDescription("Number of requests per route"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return err
	}

	p.errorCounter, err = p.meter.Int64Counter("catalog.exceptions",
		metric.WithDescription("Number of errors surfaced to the user"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return err
	}

	// Milliseconds, matching the portal's historical dashboards.
	p.durationHist, err = p.meter.Float64Histogram("catalog.operation.duration",
		metric.WithDescription("Duration of catalog operations in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return err
	}

	return nil
}

// Shutdown flushes and stops both providers.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p.tracerProvider != nil {
		if err := p.tracerProvider.Shutdown(ctx); err != nil {
			p.logger.Error("Failed to shutdown trace provider", "error", err)
		}
	}
	if p.meterProvider != nil {
		if err := p.meterProvider.Shutdown(ctx); err != nil {
			p.logger.Error("Failed to shutdown metric provider", "error", err)
		}
	}
	return nil
}

// Tracer returns the configured tracer. When telemetry is disabled this
// is the global no-op tracer.
func (p *Provider) Tracer() trace.Tracer {
	if p.tracer == nil {
		return otel.Tracer(instrumentationName)
	}
	return p.tracer
}

// StartSpan starts a new span with the given name.
func (p *Provider) StartSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return p.Tracer().Start(ctx, name, opts...)
}

// RecordRequest increments the request counter for a route.
func (p *Provider) RecordRequest(ctx context.Context, route string, attrs ...attribute.KeyValue) {
	if p.requestCounter != nil {
		allAttrs := append(attrs, attribute.String("route", route))
		p.requestCounter.Add(ctx, 1, metric.WithAttributes(allAttrs...))
	}
}

// RecordError increments the error counter for a route.
func (p *Provider) RecordError(ctx context.Context, route, kind string) {
	if p.errorCounter != nil {
		p.errorCounter.Add(ctx, 1, metric.WithAttributes(
			attribute.String("route", route),
			attribute.String("error", kind),
		))
	}
}

// RecordDuration records an operation duration in milliseconds.
func (p *Provider) RecordDuration(ctx context.Context, route string, duration time.Duration) {
	if p.durationHist != nil {
		p.durationHist.Record(ctx, float64(duration.Microseconds())/1000.0,
			metric.WithAttributes(attribute.String("route", route)),
		)
	}
}
