package sqlengine

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/AntonStoeckl/author-projection-benchmarks-go/authorstore"
)

const (
	logMsgBuildQueryFailed = "failed to build query"
	logMsgDBQueryFailed    = "database query execution failed"
	logMsgCloseRowsFailed  = "failed to close database rows"
	logMsgScanRowFailed    = "failed to scan database row"
	logMsgIncompleteRecord = "incomplete author record"
	logMsgFetchCompleted   = "fetch completed"
	logMsgSQLExecuted      = "executed sql for: "
	logAttrError           = "error"
	logAttrQuery           = "query"
	logAttrOperation       = "operation"
	logAttrAuthorCount     = "author_count"
	logAttrBookCount       = "book_count"
	logAttrDurationMS      = "duration_ms"

	metricFetchDuration  = "authorstore_fetch_duration_seconds"
	metricAuthorsFetched = "authorstore_authors_fetched"
	metricBooksFetched   = "authorstore_books_fetched"
	metricDatabaseErrors = "authorstore_database_errors_total"

	spanNameFetchAllAuthors    = "authorstore.fetch_all_authors"
	spanNameFetchTopAuthorRows = "authorstore.fetch_top_author_rows"
	spanAttrOperation          = "operation"
	spanAttrDialect            = "db.dialect"
	spanAttrErrorType          = "error_type"
	spanAttrAuthorCount        = "author_count"
	spanAttrBookCount          = "book_count"
	spanAttrDurationMS         = "duration_ms"

	operationFetchAllAuthors    = "fetch_all_authors"
	operationFetchTopAuthorRows = "fetch_top_author_rows"

	statusSuccess  = "success"
	statusError    = "error"
	statusCanceled = "canceled"
	statusTimeout  = "timeout"

	errorTypeBuildQuery       = "build_query"
	errorTypeDatabaseQuery    = "database_query"
	errorTypeRowScan          = "row_scan"
	errorTypeIncompleteRecord = "incomplete_record"
)

// fetchObserver reports one fetch operation to the configured collectors.
type fetchObserver struct {
	s         *AuthorStore
	ctx       context.Context
	span      authorstore.SpanContext
	operation string
	start     time.Time
}

// observeFetch starts the span of a fetch and returns the observer together with the span's context.
func (s *AuthorStore) observeFetch(ctx context.Context, spanName, operation string) (*fetchObserver, context.Context) {
	var span authorstore.SpanContext

	if s.tracingCollector != nil {
		ctx, span = s.tracingCollector.StartSpan(ctx, spanName, map[string]string{
			spanAttrOperation: operation,
			spanAttrDialect:   s.dialect.name,
		})
	}

	return &fetchObserver{s: s, ctx: ctx, span: span, operation: operation, start: time.Now()}, ctx
}

// success records a finished fetch.
func (o *fetchObserver) success(authorCount, bookCount int) {
	duration := time.Since(o.start)

	o.s.logInfo(o.ctx, logMsgFetchCompleted,
		logAttrOperation, o.operation,
		logAttrAuthorCount, authorCount,
		logAttrBookCount, bookCount,
		logAttrDurationMS, toMilliseconds(duration),
	)

	o.s.recordDuration(o.ctx, duration, o.operation, statusSuccess)
	o.s.recordValue(o.ctx, metricAuthorsFetched, float64(authorCount), o.operation)
	o.s.recordValue(o.ctx, metricBooksFetched, float64(bookCount), o.operation)

	attrs := map[string]string{
		spanAttrAuthorCount: fmt.Sprintf("%d", authorCount),
		spanAttrBookCount:   fmt.Sprintf("%d", bookCount),
		spanAttrDurationMS:  fmt.Sprintf("%.2f", toMilliseconds(duration)),
	}
	o.finishSpan(statusSuccess, attrs)
}

// failure records a failed fetch and returns err unchanged.
func (o *fetchObserver) failure(err error) error {
	duration := time.Since(o.start)
	status, errorType := classifyError(err)

	o.s.recordDuration(o.ctx, duration, o.operation, status)
	o.s.recordError(o.ctx, o.operation, status, errorType)
	o.finishSpan(status, map[string]string{
		spanAttrErrorType:  errorType,
		spanAttrDurationMS: fmt.Sprintf("%.2f", toMilliseconds(duration)),
	})

	return err
}

func (o *fetchObserver) finishSpan(status string, attrs map[string]string) {
	if o.s.tracingCollector == nil || o.span == nil {
		return
	}

	o.span.SetStatus(status)
	for key, value := range attrs {
		o.span.AddAttribute(key, value)
	}

	o.s.tracingCollector.FinishSpan(o.span, status, attrs)
}

// classifyError maps a fetch error to a status and an error type label.
func classifyError(err error) (status string, errorType string) {
	switch {
	case errors.Is(err, context.Canceled):
		return statusCanceled, errorTypeDatabaseQuery
	case errors.Is(err, context.DeadlineExceeded):
		return statusTimeout, errorTypeDatabaseQuery
	case errors.Is(err, authorstore.ErrBuildingQueryFailed):
		return statusError, errorTypeBuildQuery
	case errors.Is(err, authorstore.ErrScanningDBRowFailed):
		return statusError, errorTypeRowScan
	case errors.Is(err, authorstore.ErrIncompleteAuthorRecord):
		return statusError, errorTypeIncompleteRecord
	default:
		return statusError, errorTypeDatabaseQuery
	}
}

// logQueryWithDuration logs SQL queries with execution time at debug level if a logger is configured.
func (s *AuthorStore) logQueryWithDuration(ctx context.Context, sqlQuery, operation string, duration time.Duration) {
	args := []any{logAttrDurationMS, toMilliseconds(duration), logAttrQuery, sqlQuery}

	if s.logger != nil {
		s.logger.Debug(logMsgSQLExecuted+operation, args...)
	}

	if s.contextualLogger != nil {
		s.contextualLogger.DebugContext(ctx, logMsgSQLExecuted+operation, args...)
	}
}

func (s *AuthorStore) logInfo(ctx context.Context, msg string, args ...any) {
	if s.logger != nil {
		s.logger.Info(msg, args...)
	}

	if s.contextualLogger != nil {
		s.contextualLogger.InfoContext(ctx, msg, args...)
	}
}

func (s *AuthorStore) logWarn(ctx context.Context, msg string, args ...any) {
	if s.logger != nil {
		s.logger.Warn(msg, args...)
	}

	if s.contextualLogger != nil {
		s.contextualLogger.WarnContext(ctx, msg, args...)
	}
}

// logError logs error information at the error level if a logger is configured.
func (s *AuthorStore) logError(ctx context.Context, msg string, err error, args ...any) {
	allArgs := []any{logAttrError, err.Error()}
	allArgs = append(allArgs, args...)

	if s.logger != nil {
		s.logger.Error(msg, allArgs...)
	}

	if s.contextualLogger != nil {
		s.contextualLogger.ErrorContext(ctx, msg, allArgs...)
	}
}

func (s *AuthorStore) recordDuration(ctx context.Context, duration time.Duration, operation, status string) {
	if s.metricsCollector == nil {
		return
	}

	labels := map[string]string{spanAttrOperation: operation, "status": status}

	if contextualCollector, ok := s.metricsCollector.(authorstore.ContextualMetricsCollector); ok {
		contextualCollector.RecordDurationContext(ctx, metricFetchDuration, duration, labels)
		return
	}

	s.metricsCollector.RecordDuration(metricFetchDuration, duration, labels)
}

func (s *AuthorStore) recordValue(ctx context.Context, metric string, value float64, operation string) {
	if s.metricsCollector == nil {
		return
	}

	labels := map[string]string{spanAttrOperation: operation, "status": statusSuccess}

	if contextualCollector, ok := s.metricsCollector.(authorstore.ContextualMetricsCollector); ok {
		contextualCollector.RecordValueContext(ctx, metric, value, labels)
		return
	}

	s.metricsCollector.RecordValue(metric, value, labels)
}

func (s *AuthorStore) recordError(ctx context.Context, operation, status, errorType string) {
	if s.metricsCollector == nil {
		return
	}

	labels := map[string]string{spanAttrOperation: operation, "status": status, spanAttrErrorType: errorType}

	if contextualCollector, ok := s.metricsCollector.(authorstore.ContextualMetricsCollector); ok {
		contextualCollector.IncrementCounterContext(ctx, metricDatabaseErrors, labels)
		return
	}

	s.metricsCollector.IncrementCounter(metricDatabaseErrors, labels)
}

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}
