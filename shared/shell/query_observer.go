package shell

import (
	"context"
	"time"
)

// QueryObserver bundles the collaborators of one query handler and records both phases and the outcome.
// The zero value observes nothing.
type QueryObserver struct {
	QueryType        string
	MetricsCollector MetricsCollector
	TracingCollector TracingCollector
	ContextualLogger ContextualLogger
	Logger           Logger
	TimingCollector  *TimingCollector
}

// QueryRun is one observed query execution.
type QueryRun struct {
	observer QueryObserver
	ctx      context.Context
	span     SpanContext
	start    time.Time
}

// Start opens the span and returns the run together with the span's context.
func (o QueryObserver) Start(ctx context.Context) (*QueryRun, context.Context) {
	ctx, span := StartQuerySpan(ctx, o.TracingCollector, o.QueryType)
	LogQueryStart(ctx, o.Logger, o.ContextualLogger, o.QueryType)

	return &QueryRun{observer: o, ctx: ctx, span: span, start: time.Now()}, ctx
}

// Component records the timing of a finished phase.
func (r *QueryRun) Component(component, status string, duration time.Duration) {
	RecordQueryComponentDuration(r.ctx, r.observer.MetricsCollector, r.observer.QueryType, component, status, duration)
	r.observer.TimingCollector.Record(component, duration)
}

// Success records a successful query that returned resultCount authors.
func (r *QueryRun) Success(resultCount int) {
	duration := time.Since(r.start)
	o := r.observer

	RecordQueryMetrics(r.ctx, o.MetricsCollector, o.QueryType, StatusSuccess, duration)
	RecordQueryResultCount(r.ctx, o.MetricsCollector, o.QueryType, resultCount)
	FinishQuerySpan(o.TracingCollector, r.span, StatusSuccess, duration, nil)
	LogQuerySuccess(r.ctx, o.Logger, o.ContextualLogger, o.QueryType, resultCount, duration)
}

// Failure records a failed query and returns err unchanged.
func (r *QueryRun) Failure(err error) error {
	duration := time.Since(r.start)
	status := StatusOf(err)
	o := r.observer

	RecordQueryMetrics(r.ctx, o.MetricsCollector, o.QueryType, status, duration)
	FinishQuerySpan(o.TracingCollector, r.span, status, duration, err)
	LogQueryError(r.ctx, o.Logger, o.ContextualLogger, o.QueryType, status, err)

	return err
}
