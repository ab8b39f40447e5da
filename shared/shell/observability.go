package shell

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/AntonStoeckl/author-projection-benchmarks-go/authorstore"
)

const (
	// QueryHandlerDurationMetric tracks query handler execution duration.
	QueryHandlerDurationMetric = "queryhandler_handle_duration_seconds"

	// QueryHandlerCallsMetric tracks total query handler calls.
	QueryHandlerCallsMetric = "queryhandler_handle_calls_total"

	// QueryHandlerCanceledMetric tracks canceled query operations.
	QueryHandlerCanceledMetric = "queryhandler_canceled_operations_total"

	// QueryHandlerTimeoutMetric tracks timed out query operations.
	QueryHandlerTimeoutMetric = "queryhandler_timeout_operations_total"

	// QueryHandlerComponentDurationMetric tracks the duration of the fetch and shape phases.
	QueryHandlerComponentDurationMetric = "queryhandler_component_duration_seconds"

	// QueryHandlerResultCountMetric tracks the number of authors a query returned.
	QueryHandlerResultCountMetric = "queryhandler_result_authors"

	// StatusSuccess indicates successful query completion.
	StatusSuccess = "success"

	// StatusError indicates a query processing error.
	StatusError = "error"

	// StatusCanceled indicates the query was canceled through its context.
	StatusCanceled = "canceled"

	// StatusTimeout indicates the query ran into its context deadline.
	StatusTimeout = "timeout"

	// ComponentFetch is the phase that crosses the data-source boundary.
	ComponentFetch = "fetch"

	// ComponentShape is the pure in-memory phase.
	ComponentShape = "shape"

	// LogMsgQueryStarted is logged when query processing begins.
	LogMsgQueryStarted = "query handler started"

	// LogMsgQueryCompleted is logged when query processing succeeds.
	LogMsgQueryCompleted = "query handler completed"

	// LogMsgQueryFailed is logged when query processing fails.
	LogMsgQueryFailed = "query handler failed"

	// LogAttrQueryType identifies the query type in logs.
	LogAttrQueryType = "query_type"

	// LogAttrComponent identifies the query phase.
	LogAttrComponent = "component"

	// LogAttrStatus indicates the query processing status.
	LogAttrStatus = "status"

	// LogAttrDurationMS indicates the processing duration in milliseconds.
	LogAttrDurationMS = "duration_ms"

	// LogAttrResultCount indicates the number of returned authors.
	LogAttrResultCount = "result_count"

	// LogAttrError contains error details.
	LogAttrError = "error"

	// SpanNameQueryHandle is the tracing span name for query handling.
	SpanNameQueryHandle = "queryhandler.handle"
)

// Interface aliases, so handlers only need to import this package.

// MetricsCollector interface for collecting query handler metrics.
type MetricsCollector = authorstore.MetricsCollector

// ContextualMetricsCollector extends MetricsCollector with context-aware methods.
type ContextualMetricsCollector = authorstore.ContextualMetricsCollector

// TracingCollector interface for tracing query handlers.
type TracingCollector = authorstore.TracingCollector

// SpanContext represents an active tracing span.
type SpanContext = authorstore.SpanContext

// ContextualLogger interface for context-aware logging in query handlers.
type ContextualLogger = authorstore.ContextualLogger

// Logger interface for basic logging in query handlers.
type Logger = authorstore.Logger

// BuildQueryLabels creates standard metric labels for query handler operations.
func BuildQueryLabels(queryType, status string) map[string]string {
	return map[string]string{
		LogAttrQueryType: queryType,
		LogAttrStatus:    status,
	}
}

// ToMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func ToMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}

// StatusOf classifies a query error as canceled, timeout, or error.
func StatusOf(err error) string {
	switch {
	case IsCancellationError(err):
		return StatusCanceled
	case IsTimeoutError(err):
		return StatusTimeout
	default:
		return StatusError
	}
}

// RecordQueryMetrics records duration and call count of a query, plus the canceled/timeout counters.
// It uses the context-aware methods when the collector has them.
func RecordQueryMetrics(
	ctx context.Context,
	collector MetricsCollector,
	queryType string,
	status string,
	duration time.Duration,
) {
	if collector == nil {
		return
	}

	labels := BuildQueryLabels(queryType, status)
	contextualCollector, isContextual := collector.(ContextualMetricsCollector)

	increment := func(metric string) {
		if isContextual {
			contextualCollector.IncrementCounterContext(ctx, metric, labels)
		} else {
			collector.IncrementCounter(metric, labels)
		}
	}

	if isContextual {
		contextualCollector.RecordDurationContext(ctx, QueryHandlerDurationMetric, duration, labels)
	} else {
		collector.RecordDuration(QueryHandlerDurationMetric, duration, labels)
	}

	increment(QueryHandlerCallsMetric)

	switch status {
	case StatusCanceled:
		increment(QueryHandlerCanceledMetric)
	case StatusTimeout:
		increment(QueryHandlerTimeoutMetric)
	}
}

// RecordQueryResultCount records how many authors a successful query returned.
func RecordQueryResultCount(ctx context.Context, collector MetricsCollector, queryType string, count int) {
	if collector == nil {
		return
	}

	labels := BuildQueryLabels(queryType, StatusSuccess)

	if contextualCollector, ok := collector.(ContextualMetricsCollector); ok {
		contextualCollector.RecordValueContext(ctx, QueryHandlerResultCountMetric, float64(count), labels)
		return
	}

	collector.RecordValue(QueryHandlerResultCountMetric, float64(count), labels)
}

// RecordQueryComponentDuration records the duration of one phase of a query.
func RecordQueryComponentDuration(
	ctx context.Context,
	collector MetricsCollector,
	queryType string,
	component string,
	status string,
	duration time.Duration,
) {
	if collector == nil {
		return
	}

	labels := BuildQueryLabels(queryType, status)
	labels[LogAttrComponent] = component

	if contextualCollector, ok := collector.(ContextualMetricsCollector); ok {
		contextualCollector.RecordDurationContext(ctx, QueryHandlerComponentDurationMetric, duration, labels)
		return
	}

	collector.RecordDuration(QueryHandlerComponentDurationMetric, duration, labels)
}

// StartQuerySpan starts a tracing span for a query.
// Returns the original context and a nil span if tracing is disabled.
func StartQuerySpan(
	ctx context.Context,
	tracingCollector TracingCollector,
	queryType string,
) (context.Context, SpanContext) {
	if tracingCollector == nil {
		return ctx, nil
	}

	return tracingCollector.StartSpan(ctx, SpanNameQueryHandle, map[string]string{LogAttrQueryType: queryType})
}

// FinishQuerySpan completes a query span with the outcome.
func FinishQuerySpan(
	tracingCollector TracingCollector,
	span SpanContext,
	status string,
	duration time.Duration,
	err error,
) {
	if tracingCollector == nil || span == nil {
		return
	}

	attrs := map[string]string{
		LogAttrStatus:     status,
		LogAttrDurationMS: formatDurationMS(duration),
	}

	if err != nil {
		attrs[LogAttrError] = err.Error()
	}

	tracingCollector.FinishSpan(span, status, attrs)
}

// LogQueryStart logs the beginning of query processing.
func LogQueryStart(ctx context.Context, logger Logger, contextualLogger ContextualLogger, queryType string) {
	if contextualLogger != nil {
		contextualLogger.InfoContext(ctx, LogMsgQueryStarted, LogAttrQueryType, queryType)
	} else if logger != nil {
		logger.Info(LogMsgQueryStarted, LogAttrQueryType, queryType)
	}
}

// LogQuerySuccess logs successful query completion.
func LogQuerySuccess(
	ctx context.Context,
	logger Logger,
	contextualLogger ContextualLogger,
	queryType string,
	resultCount int,
	duration time.Duration,
) {
	args := []any{
		LogAttrQueryType, queryType,
		LogAttrResultCount, resultCount,
		LogAttrDurationMS, ToMilliseconds(duration),
	}

	if contextualLogger != nil {
		contextualLogger.InfoContext(ctx, LogMsgQueryCompleted, args...)
	} else if logger != nil {
		logger.Info(LogMsgQueryCompleted, args...)
	}
}

// LogQueryError logs query processing errors.
func LogQueryError(
	ctx context.Context,
	logger Logger,
	contextualLogger ContextualLogger,
	queryType string,
	status string,
	err error,
) {
	args := []any{
		LogAttrQueryType, queryType,
		LogAttrStatus, status,
		LogAttrError, err.Error(),
	}

	if contextualLogger != nil {
		contextualLogger.ErrorContext(ctx, LogMsgQueryFailed, args...)
	} else if logger != nil {
		logger.Error(LogMsgQueryFailed, args...)
	}
}

func formatDurationMS(duration time.Duration) string {
	return fmt.Sprintf("%.2f", ToMilliseconds(duration))
}

// IsCancellationError checks if an error is due to context cancellation.
func IsCancellationError(err error) bool {
	return errors.Is(err, context.Canceled)
}

// IsTimeoutError checks if an error is due to context deadline exceeded.
func IsTimeoutError(err error) bool {
	return errors.Is(err, context.DeadlineExceeded)
}
