package otel

import (
	"context"

	"github.com/corray333/swiftserve/internal/jaeger"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
)

// OtelController owns the global tracer provider.
type OtelController struct {
	traceProvider *sdktrace.TracerProvider
}

// MustInitOtel installs a Jaeger-backed tracer provider. When otel.enabled is
// false spans are still created but never exported.
func MustInitOtel() *OtelController {
	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(viper.GetString("otel.service_name")),
		)),
	}
	if viper.GetBool("otel.enabled") {
		opts = append(opts, sdktrace.WithBatcher(jaeger.MustNewJaeger()))
	}

	tp := sdktrace.NewTracerProvider(opts...)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return &OtelController{
		traceProvider: tp,
	}
}

// Shutdown flushes pending spans.
func (o *OtelController) Shutdown(ctx context.Context) error {
	return o.traceProvider.Shutdown(ctx)
}
