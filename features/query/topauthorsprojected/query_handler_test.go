package topauthorsprojected_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/author-projection-benchmarks-go/authorstore"
	"github.com/AntonStoeckl/author-projection-benchmarks-go/authorstore/sqlengine"
	"github.com/AntonStoeckl/author-projection-benchmarks-go/features/query/topauthorsprojected"
	"github.com/AntonStoeckl/author-projection-benchmarks-go/shared/shell"
	"github.com/AntonStoeckl/author-projection-benchmarks-go/testutil/fixtures"
	"github.com/AntonStoeckl/author-projection-benchmarks-go/testutil/sqlitedb"
	"github.com/AntonStoeckl/author-projection-benchmarks-go/testutil/testdoubles"
)

type failingAuthorStore struct {
	err error
}

func (s failingAuthorStore) FetchTopAuthorRows(_ context.Context) ([]authorstore.AuthorRow, []authorstore.BookRow, error) {
	return nil, nil, s.err
}

func Test_QueryHandler_Handle_ReturnsTheTopAuthors(t *testing.T) {
	// setup
	store, err := sqlengine.NewAuthorStoreFromSQLite(sqlitedb.NewWithDataset(t, fixtures.TopAuthorsExample()))
	require.NoError(t, err)

	metricsCollector := testdoubles.NewMetricsCollectorSpy()
	tracingCollector := testdoubles.NewTracingCollectorSpy()

	handler, err := topauthorsprojected.NewQueryHandler(
		store,
		topauthorsprojected.WithMetrics(metricsCollector),
		topauthorsprojected.WithTracing(tracingCollector),
	)
	require.NoError(t, err)

	// act
	results, err := handler.Handle(context.Background())

	// assert
	require.NoError(t, err)
	assert.Equal(t, fixtures.TopAuthorsExampleResult(), valuesOf(results))

	assert.True(t, metricsCollector.HasCounterRecord(shell.QueryHandlerCallsMetric, shell.LogAttrQueryType, "TopAuthorsProjected"))
	count, found := metricsCollector.ValueFor(shell.QueryHandlerResultCountMetric)
	require.True(t, found)
	assert.Equal(t, float64(2), count)

	span, found := tracingCollector.FinishedSpan(shell.SpanNameQueryHandle)
	require.True(t, found)
	assert.Equal(t, shell.StatusSuccess, span.Status)
}

func Test_QueryHandler_Handle_ReturnsNoAuthors_WhenNoneQualifies(t *testing.T) {
	// setup
	store, err := sqlengine.NewAuthorStoreFromSQLite(sqlitedb.NewWithDataset(t, fixtures.NoMatchExample()))
	require.NoError(t, err)

	handler, err := topauthorsprojected.NewQueryHandler(store)
	require.NoError(t, err)

	// act
	results, err := handler.Handle(context.Background())

	// assert
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func Test_QueryHandler_Handle_ReturnsTheFetchErrorUnchanged(t *testing.T) {
	// setup
	fetchErr := authorstore.NewDataSourceError(authorstore.ErrQueryingAuthorsFailed, context.Canceled)
	metricsCollector := testdoubles.NewMetricsCollectorSpy()
	logHandler := testdoubles.NewLogHandlerSpy(false)

	handler, err := topauthorsprojected.NewQueryHandler(
		failingAuthorStore{err: fetchErr},
		topauthorsprojected.WithMetrics(metricsCollector),
		topauthorsprojected.WithContextualLogging(slog.New(logHandler)),
	)
	require.NoError(t, err)

	// act
	results, err := handler.Handle(context.Background())

	// assert
	assert.True(t, errors.Is(err, authorstore.ErrDataSource))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, results)
	assert.True(t, metricsCollector.HasCounterRecord(shell.QueryHandlerCanceledMetric, shell.LogAttrStatus, shell.StatusCanceled))
	assert.True(t, logHandler.HasLogWithAttr(slog.LevelError, shell.LogMsgQueryFailed, shell.LogAttrError))
}
