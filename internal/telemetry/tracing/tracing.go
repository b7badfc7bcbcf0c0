package tracing

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/multierr"
)

var GlobalTracer = otel.Tracer("endurance-training-log")

// EndSpanWithErrCheck marks the span as failed when err is set, then ends it.
func EndSpanWithErrCheck(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// Setup installs a tracer provider exporting finished spans as JSON to w.
// The returned func flushes and stops the provider.
func Setup(serviceName string, w io.Writer) (func(ctx context.Context) error, error) {
	exporter, err := stdouttrace.New(
		stdouttrace.WithWriter(w),
		stdouttrace.WithPrettyPrint(),
	)
	if err != nil {
		return nil, fmt.Errorf("create stdout trace exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
	)
	otel.SetTracerProvider(tp)
	GlobalTracer = tp.Tracer(serviceName)

	return tp.Shutdown, nil
}

// SetupFile is Setup appending the spans to the file at path, STDOUT when
// path is empty. The returned func also closes the file.
func SetupFile(serviceName, path string) (func(ctx context.Context) error, error) {
	if path == "" {
		return Setup(serviceName, os.Stdout)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open traces file: %w", err)
	}
	shutdown, err := Setup(serviceName, f)
	if err != nil {
		return nil, multierr.Append(err, f.Close())
	}

	return func(ctx context.Context) error {
		return multierr.Append(shutdown(ctx), f.Close())
	}, nil
}
