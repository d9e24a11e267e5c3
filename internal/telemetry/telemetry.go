// Package telemetry configures OpenTelemetry tracing for the view.
package telemetry

import (
	"context"
	"os"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	oteltrace "go.opentelemetry.io/otel/trace"
)

const tracerName = "konig/view"

// Provider wraps the tracer provider so it can be flushed at exit.
type Provider struct {
	provider *sdktrace.TracerProvider
	tracer   oteltrace.Tracer
}

// Setup creates an OTLP/HTTP exporter if OTEL_EXPORTER_OTLP_ENDPOINT is set.
// Otherwise it returns a provider backed by the global (no-op) tracer.
func Setup(ctx context.Context, getenv func(string) string) (*Provider, error) {
	if getenv == nil {
		getenv = os.Getenv
	}
	endpoint := getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if endpoint == "" {
		return &Provider{tracer: otel.Tracer(tracerName)}, nil
	}

	exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(traceURL(endpoint)))
	if err != nil {
		return nil, err
	}

	serviceName := getenv("OTEL_SERVICE_NAME")
	if serviceName == "" {
		serviceName = "konig"
	}
	res := resource.NewSchemaless(attribute.String("service.name", serviceName))

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(provider)

	return &Provider{provider: provider, tracer: provider.Tracer(tracerName)}, nil
}

// traceURL turns the OTLP base endpoint into the traces URL. A bare
// host:port is taken as plain http; the scheme otherwise decides TLS.
func traceURL(endpoint string) string {
	if !strings.Contains(endpoint, "://") {
		endpoint = "http://" + endpoint
	}
	return strings.TrimRight(endpoint, "/") + "/v1/traces"
}

// Tracer returns the tracer sessions should use.
func (p *Provider) Tracer() oteltrace.Tracer { return p.tracer }

// Enabled reports whether spans are exported.
func (p *Provider) Enabled() bool { return p != nil && p.provider != nil }

// Shutdown flushes pending spans.
func (p *Provider) Shutdown(ctx context.Context) error {
	if !p.Enabled() {
		return nil
	}
	return p.provider.Shutdown(ctx)
}
