package oteladapters_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"

	"github.com/AntonStoeckl/author-projection-benchmarks-go/authorstore/oteladapters"
)

func Test_TracingCollector_StartAndFinishSpan(t *testing.T) {
	// setup
	exporter, collector := newTracingCollector()

	// act
	ctx, spanCtx := collector.StartSpan(context.Background(), "authorstore.fetch_all_authors", map[string]string{
		"operation":  "fetch_all_authors",
		"db.dialect": "sqlite3",
	})
	collector.FinishSpan(spanCtx, "success", map[string]string{"author_count": "2"})

	// assert
	assert.True(t, trace.SpanContextFromContext(ctx).IsValid(), "the returned context must carry the span")

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)

	span := spans[0]
	assert.Equal(t, "authorstore.fetch_all_authors", span.Name)
	assertSpanHasAttribute(t, span, "operation", "fetch_all_authors")
	assertSpanHasAttribute(t, span, "db.dialect", "sqlite3")
	assertSpanHasAttribute(t, span, "author_count", "2")
	assert.Equal(t, codes.Ok, span.Status.Code)
}

func Test_TracingCollector_StatusMapping(t *testing.T) {
	testCases := []struct {
		status              string
		expectedCode        codes.Code
		expectedDescription string
	}{
		{status: "success", expectedCode: codes.Ok},
		{status: "error", expectedCode: codes.Error, expectedDescription: "Operation failed"},
		{status: "canceled", expectedCode: codes.Error, expectedDescription: "Operation canceled"},
		{status: "timeout", expectedCode: codes.Error, expectedDescription: "Operation timed out"},
	}

	for _, tc := range testCases {
		t.Run(tc.status, func(t *testing.T) {
			// setup
			exporter, collector := newTracingCollector()

			// act
			_, spanCtx := collector.StartSpan(context.Background(), "status-test", nil)
			collector.FinishSpan(spanCtx, tc.status, nil)

			// assert
			spans := exporter.GetSpans()
			require.Len(t, spans, 1)
			assert.Equal(t, tc.expectedCode, spans[0].Status.Code)
			assert.Equal(t, tc.expectedDescription, spans[0].Status.Description)
		})
	}
}

func Test_TracingCollector_UnknownStatus_IsRecordedAsAttribute(t *testing.T) {
	// setup
	exporter, collector := newTracingCollector()

	// act
	_, spanCtx := collector.StartSpan(context.Background(), "unknown-status", nil)
	collector.FinishSpan(spanCtx, "partial", nil)

	// assert
	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Unset, spans[0].Status.Code)
	assertSpanHasAttribute(t, spans[0], "status", "partial")
}

func Test_TracingCollector_ContextPropagation(t *testing.T) {
	// setup
	exporter, collector := newTracingCollector()

	// act
	parentCtx, parent := collector.StartSpan(context.Background(), "parent", nil)
	_, child := collector.StartSpan(parentCtx, "child", nil)
	collector.FinishSpan(child, "success", nil)
	collector.FinishSpan(parent, "success", nil)

	// assert
	spans := exporter.GetSpans()
	require.Len(t, spans, 2)
	assert.Equal(t, "child", spans[0].Name)
	assert.Equal(t, spans[1].SpanContext.SpanID(), spans[0].Parent.SpanID())
	assert.Equal(t, spans[1].SpanContext.TraceID(), spans[0].SpanContext.TraceID())
}

func Test_TracingCollector_FinishSpan_IgnoresForeignSpanContext(t *testing.T) {
	// setup
	exporter, collector := newTracingCollector()

	// act & assert
	assert.NotPanics(t, func() {
		collector.FinishSpan(foreignSpanContext{}, "success", nil)
	})
	assert.Empty(t, exporter.GetSpans())
}

func Test_OTelSpanContext_AddAttribute(t *testing.T) {
	// setup
	exporter, collector := newTracingCollector()

	// act
	_, spanCtx := collector.StartSpan(context.Background(), "attributes", nil)
	spanCtx.AddAttribute("book_count", "3")
	spanCtx.SetStatus("error")
	collector.FinishSpan(spanCtx, "error", nil)

	// assert
	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assertSpanHasAttribute(t, spans[0], "book_count", "3")
	assert.Equal(t, codes.Error, spans[0].Status.Code)
}

type foreignSpanContext struct{}

func (foreignSpanContext) SetStatus(string)            {}
func (foreignSpanContext) AddAttribute(string, string) {}

func newTracingCollector() (*tracetest.InMemoryExporter, *oteladapters.TracingCollector) {
	exporter := tracetest.NewInMemoryExporter()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))

	return exporter, oteladapters.NewTracingCollector(provider.Tracer("test"))
}

func assertSpanHasAttribute(t *testing.T, span tracetest.SpanStub, key, expected string) {
	t.Helper()

	for _, attr := range span.Attributes {
		if attr.Key == attribute.Key(key) {
			assert.Equal(t, expected, attr.Value.AsString(), "attribute %s", key)
			return
		}
	}

	t.Errorf("attribute %s not found on span %s", key, span.Name)
}
