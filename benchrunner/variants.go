package benchrunner

import (
	"context"

	"github.com/AntonStoeckl/author-projection-benchmarks-go/authorstore"
	"github.com/AntonStoeckl/author-projection-benchmarks-go/features/query/topauthorsprojected"
	"github.com/AntonStoeckl/author-projection-benchmarks-go/features/query/topauthorsprojectedvalue"
	"github.com/AntonStoeckl/author-projection-benchmarks-go/features/query/topauthorsunfiltered"
	"github.com/AntonStoeckl/author-projection-benchmarks-go/shared/shell"
)

// Names of the three top-author variants, equal to the query types of their handlers.
const (
	VariantUnfiltered     = "TopAuthorsUnfiltered"
	VariantProjected      = "TopAuthorsProjected"
	VariantProjectedValue = "TopAuthorsProjectedValue"
)

// AuthorStore is the read side all three variants need.
type AuthorStore interface {
	FetchAllAuthors(ctx context.Context) ([]authorstore.Author, error)
	FetchTopAuthorRows(ctx context.Context) ([]authorstore.AuthorRow, []authorstore.BookRow, error)
}

// Observability is handed to every query handler. Nil fields disable the concern.
type Observability struct {
	Logger           shell.Logger
	ContextualLogger shell.ContextualLogger
	MetricsCollector shell.MetricsCollector
	TracingCollector shell.TracingCollector
	TimingCollector  *shell.TimingCollector
}

// Handlers bundles the query handlers of the three variants on one store.
type Handlers struct {
	Unfiltered     topauthorsunfiltered.QueryHandler
	Projected      topauthorsprojected.QueryHandler
	ProjectedValue topauthorsprojectedvalue.QueryHandler
}

// NewHandlers creates the three query handlers.
func NewHandlers(store AuthorStore, obs Observability) (Handlers, error) {
	unfiltered, err := topauthorsunfiltered.NewQueryHandler(store,
		topauthorsunfiltered.WithLogging(obs.Logger),
		topauthorsunfiltered.WithContextualLogging(obs.ContextualLogger),
		topauthorsunfiltered.WithMetrics(obs.MetricsCollector),
		topauthorsunfiltered.WithTracing(obs.TracingCollector),
		topauthorsunfiltered.WithTimingCollector(obs.TimingCollector),
	)
	if err != nil {
		return Handlers{}, err
	}

	projected, err := topauthorsprojected.NewQueryHandler(store,
		topauthorsprojected.WithLogging(obs.Logger),
		topauthorsprojected.WithContextualLogging(obs.ContextualLogger),
		topauthorsprojected.WithMetrics(obs.MetricsCollector),
		topauthorsprojected.WithTracing(obs.TracingCollector),
		topauthorsprojected.WithTimingCollector(obs.TimingCollector),
	)
	if err != nil {
		return Handlers{}, err
	}

	projectedValue, err := topauthorsprojectedvalue.NewQueryHandler(store,
		topauthorsprojectedvalue.WithLogging(obs.Logger),
		topauthorsprojectedvalue.WithContextualLogging(obs.ContextualLogger),
		topauthorsprojectedvalue.WithMetrics(obs.MetricsCollector),
		topauthorsprojectedvalue.WithTracing(obs.TracingCollector),
		topauthorsprojectedvalue.WithTimingCollector(obs.TimingCollector),
	)
	if err != nil {
		return Handlers{}, err
	}

	return Handlers{
		Unfiltered:     unfiltered,
		Projected:      projected,
		ProjectedValue: projectedValue,
	}, nil
}

// Variants returns the three variants with the unfiltered fetch as baseline.
func (h Handlers) Variants() []Variant {
	return []Variant{
		{
			Name:     VariantUnfiltered,
			Baseline: true,
			Run: func(ctx context.Context) (int, error) {
				result, err := h.Unfiltered.Handle(ctx)
				return result.Count, err
			},
		},
		{
			Name: VariantProjected,
			Run: func(ctx context.Context) (int, error) {
				result, err := h.Projected.Handle(ctx)
				return len(result), err
			},
		},
		{
			Name: VariantProjectedValue,
			Run: func(ctx context.Context) (int, error) {
				result, err := h.ProjectedValue.Handle(ctx)
				return len(result), err
			},
		},
	}
}
