package topauthorsprojected

import (
	"context"
	"time"

	"github.com/AntonStoeckl/author-projection-benchmarks-go/authorstore"
	"github.com/AntonStoeckl/author-projection-benchmarks-go/shared/shell"
)

// AuthorStore defines the interface needed by the QueryHandler for author store operations.
type AuthorStore interface {
	FetchTopAuthorRows(ctx context.Context) ([]authorstore.AuthorRow, []authorstore.BookRow, error)
}

const (
	queryType = "TopAuthorsProjected"
)

// QueryHandler orchestrates the query workflow: Fetch -> Project.
// It handles the author store interaction and the observability instrumentation,
// and delegates the query logic to the pure Project function.
type QueryHandler struct {
	authorStore AuthorStore
	observer    shell.QueryObserver
}

// NewQueryHandler creates a new QueryHandler with the provided AuthorStore dependency and options.
func NewQueryHandler(authorStore AuthorStore, opts ...Option) (QueryHandler, error) {
	h := QueryHandler{
		authorStore: authorStore,
		observer:    shell.QueryObserver{QueryType: queryType},
	}

	for _, opt := range opts {
		if err := opt(&h); err != nil {
			return QueryHandler{}, err
		}
	}

	return h, nil
}

// Handle fetches the projected rows of the top authors and shapes them into results.
// A fetch failure is returned unchanged, it is an authorstore.ErrDataSource error.
func (h QueryHandler) Handle(ctx context.Context) ([]*authorstore.AuthorResult, error) {
	run, ctx := h.observer.Start(ctx)

	// Fetch phase
	fetchStart := time.Now()
	authors, books, err := h.authorStore.FetchTopAuthorRows(ctx)
	if err != nil {
		run.Component(shell.ComponentFetch, shell.StatusError, time.Since(fetchStart))
		return nil, run.Failure(err)
	}
	run.Component(shell.ComponentFetch, shell.StatusSuccess, time.Since(fetchStart))

	// Shape phase - delegate to the pure core function
	shapeStart := time.Now()
	results := Project(authors, books)
	run.Component(shell.ComponentShape, shell.StatusSuccess, time.Since(shapeStart))

	run.Success(len(results))

	return results, nil
}

/*** Query Handler Options ***/

// Option defines a functional option for configuring QueryHandler.
type Option func(*QueryHandler) error

// WithMetrics sets the metrics collector for the QueryHandler.
func WithMetrics(collector shell.MetricsCollector) Option {
	return func(h *QueryHandler) error {
		h.observer.MetricsCollector = collector
		return nil
	}
}

// WithTracing sets the tracing collector for the QueryHandler.
func WithTracing(collector shell.TracingCollector) Option {
	return func(h *QueryHandler) error {
		h.observer.TracingCollector = collector
		return nil
	}
}

// WithContextualLogging sets the contextual logger for the QueryHandler.
func WithContextualLogging(logger shell.ContextualLogger) Option {
	return func(h *QueryHandler) error {
		h.observer.ContextualLogger = logger
		return nil
	}
}

// WithLogging sets the basic logger for the QueryHandler.
func WithLogging(logger shell.Logger) Option {
	return func(h *QueryHandler) error {
		h.observer.Logger = logger
		return nil
	}
}

// WithTimingCollector accumulates the fetch and shape durations of every Handle call.
func WithTimingCollector(collector *shell.TimingCollector) Option {
	return func(h *QueryHandler) error {
		h.observer.TimingCollector = collector
		return nil
	}
}
