package telemetry

import (
	"context"
	"fmt"

	"github.com/propman/backend/internal/application/pipeline"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the instrumentation name for application spans
const TracerName = "propman-backend"

// Span attribute keys for pipeline requests
const (
	SpanAttrRequestName    = "request.name"
	SpanAttrRequestKind    = "request.kind"
	SpanAttrRequestOutcome = "request.outcome"
)

// StartSpan starts an internal span on the global tracer provider.
// The caller must end the returned span.
func StartSpan(ctx context.Context, spanName string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	tracer := otel.GetTracerProvider().Tracer(TracerName)
	return tracer.Start(ctx, spanName,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)
}

// RecordError records err on the span and marks it failed.
func RecordError(span trace.Span, err error) {
	if span == nil || err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// Tracing opens one span per pipeline request. Only unexpected failures
// mark the span as an error; validation, not-found and rule rejections are
// recorded as the outcome attribute.
func Tracing() pipeline.Behavior {
	return func(next pipeline.HandlerFunc) pipeline.HandlerFunc {
		return func(ctx context.Context, req pipeline.Request) error {
			ctx, span := StartSpan(ctx, fmt.Sprintf("%s.%s", req.RequestKind(), req.RequestName()),
				attribute.String(SpanAttrRequestName, req.RequestName()),
				attribute.String(SpanAttrRequestKind, req.RequestKind().String()),
			)
			defer span.End()

			err := next(ctx, req)
			outcome := pipeline.Classify(err)
			span.SetAttributes(attribute.String(SpanAttrRequestOutcome, string(outcome)))
			if outcome == pipeline.OutcomeError {
				RecordError(span, err)
			} else {
				span.SetStatus(codes.Ok, "")
			}
			return err
		}
	}
}
