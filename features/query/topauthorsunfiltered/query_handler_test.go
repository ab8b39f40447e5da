package topauthorsunfiltered_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/author-projection-benchmarks-go/authorstore"
	"github.com/AntonStoeckl/author-projection-benchmarks-go/authorstore/sqlengine"
	"github.com/AntonStoeckl/author-projection-benchmarks-go/features/query/topauthorsunfiltered"
	"github.com/AntonStoeckl/author-projection-benchmarks-go/shared/shell"
	"github.com/AntonStoeckl/author-projection-benchmarks-go/testutil/fixtures"
	"github.com/AntonStoeckl/author-projection-benchmarks-go/testutil/sqlitedb"
	"github.com/AntonStoeckl/author-projection-benchmarks-go/testutil/testdoubles"
)

type failingAuthorStore struct {
	err error
}

func (s failingAuthorStore) FetchAllAuthors(_ context.Context) ([]authorstore.Author, error) {
	return nil, s.err
}

func Test_QueryHandler_Handle_ReturnsTheTopAuthors(t *testing.T) {
	// setup
	store, err := sqlengine.NewAuthorStoreFromSQLite(sqlitedb.NewWithDataset(t, fixtures.TopAuthorsExample()))
	require.NoError(t, err)

	metricsCollector := testdoubles.NewMetricsCollectorSpy()
	tracingCollector := testdoubles.NewTracingCollectorSpy()
	logHandler := testdoubles.NewLogHandlerSpy(false)
	timingCollector := shell.NewTimingCollector()

	handler, err := topauthorsunfiltered.NewQueryHandler(
		store,
		topauthorsunfiltered.WithMetrics(metricsCollector),
		topauthorsunfiltered.WithTracing(tracingCollector),
		topauthorsunfiltered.WithContextualLogging(slog.New(logHandler)),
		topauthorsunfiltered.WithTimingCollector(timingCollector),
	)
	require.NoError(t, err)

	// act
	result, err := handler.Handle(context.Background())

	// assert
	require.NoError(t, err)
	assert.Equal(t, 2, result.Count)

	values := make([]authorstore.AuthorResultValue, 0, result.Count)
	for _, author := range result.Results() {
		values = append(values, author.ToValue())
	}

	assert.Equal(t, fixtures.TopAuthorsExampleResult(), values)

	assert.True(t, metricsCollector.HasCounterRecord(shell.QueryHandlerCallsMetric, shell.LogAttrQueryType, "TopAuthorsUnfiltered"))
	assert.True(t, metricsCollector.HasDurationRecord(shell.QueryHandlerComponentDurationMetric, shell.StatusSuccess))
	assert.True(t, logHandler.HasLog(slog.LevelInfo, shell.LogMsgQueryCompleted))

	span, found := tracingCollector.FinishedSpan(shell.SpanNameQueryHandle)
	require.True(t, found)
	assert.Equal(t, shell.StatusSuccess, span.Status)

	assert.Positive(t, timingCollector.FetchTime())
}

func Test_QueryHandler_Handle_IsIdempotent(t *testing.T) {
	// setup
	store, err := sqlengine.NewAuthorStoreFromSQLite(sqlitedb.NewWithDataset(t, fixtures.TopAuthorsExample()))
	require.NoError(t, err)

	handler, err := topauthorsunfiltered.NewQueryHandler(store)
	require.NoError(t, err)

	// act
	first, firstErr := handler.Handle(context.Background())
	second, secondErr := handler.Handle(context.Background())

	// assert
	require.NoError(t, firstErr)
	require.NoError(t, secondErr)
	assert.Equal(t, first, second)
}

func Test_QueryHandler_Handle_ReturnsTheFetchErrorUnchanged(t *testing.T) {
	// setup
	fetchErr := authorstore.NewDataSourceError(authorstore.ErrQueryingAuthorsFailed, errors.New("connection reset"))
	metricsCollector := testdoubles.NewMetricsCollectorSpy()
	logHandler := testdoubles.NewLogHandlerSpy(false)

	handler, err := topauthorsunfiltered.NewQueryHandler(
		failingAuthorStore{err: fetchErr},
		topauthorsunfiltered.WithMetrics(metricsCollector),
		topauthorsunfiltered.WithLogging(slog.New(logHandler)),
	)
	require.NoError(t, err)

	// act
	result, err := handler.Handle(context.Background())

	// assert
	assert.Same(t, fetchErr, err)
	assert.True(t, authorstore.IsDataSourceError(err))
	assert.Zero(t, result.Count)
	assert.Nil(t, result.Authors)
	assert.True(t, metricsCollector.HasDurationRecord(shell.QueryHandlerDurationMetric, shell.StatusError))
	assert.True(t, logHandler.HasLog(slog.LevelError, shell.LogMsgQueryFailed))
}
