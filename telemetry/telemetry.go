//
// Tencent is pleased to support the open source community by making trpc-evalkit-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-evalkit-go is licensed under the Apache License Version 2.0.
//
//

// Package telemetry provides tracing spans for evaluation runs. Only the
// OpenTelemetry API is used; without an SDK-configured tracer provider the
// spans are no-ops.
package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// InstrumentName identifies this library to the tracer provider.
const InstrumentName = "trpc.group/trpc-go/trpc-evalkit-go"

// Span attribute keys.
const (
	KeyTaskName     = "evalkit.task.name"
	KeySampleID     = "evalkit.sample.id"
	KeyModelName    = "evalkit.model.name"
	KeyToolName     = "evalkit.tool.name"
	KeyErrorMessage = "error.message"
)

// Tracer is the tracer used by the evaluation driver. Tests and applications
// may replace it; the default resolves against the global provider.
var Tracer trace.Tracer = otel.GetTracerProvider().Tracer(InstrumentName)

// StartSample opens a span covering one sample's evaluation.
func StartSample(ctx context.Context, taskName, sampleID string) (context.Context, trace.Span) {
	return Tracer.Start(ctx, "evalkit.sample",
		trace.WithAttributes(
			attribute.String(KeyTaskName, taskName),
			attribute.String(KeySampleID, sampleID),
		))
}

// StartModel opens a span covering one model round-trip.
func StartModel(ctx context.Context, modelName string) (context.Context, trace.Span) {
	return Tracer.Start(ctx, "evalkit.model.generate",
		trace.WithAttributes(attribute.String(KeyModelName, modelName)))
}

// StartTool opens a span covering one tool invocation.
func StartTool(ctx context.Context, toolName string) (context.Context, trace.Span) {
	return Tracer.Start(ctx, "evalkit.tool.call",
		trace.WithAttributes(attribute.String(KeyToolName, toolName)))
}

// RecordError marks the span failed with the error's message.
func RecordError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetAttributes(attribute.String(KeyErrorMessage, err.Error()))
}
