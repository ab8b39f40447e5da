package topauthorsprojectedvalue_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/author-projection-benchmarks-go/authorstore"
	"github.com/AntonStoeckl/author-projection-benchmarks-go/authorstore/sqlengine"
	"github.com/AntonStoeckl/author-projection-benchmarks-go/features/query/topauthorsprojectedvalue"
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

	logHandler := testdoubles.NewLogHandlerSpy(false)
	timingCollector := shell.NewTimingCollector()

	handler, err := topauthorsprojectedvalue.NewQueryHandler(
		store,
		topauthorsprojectedvalue.WithLogging(slog.New(logHandler)),
		topauthorsprojectedvalue.WithTimingCollector(timingCollector),
	)
	require.NoError(t, err)

	// act
	results, err := handler.Handle(context.Background())

	// assert
	require.NoError(t, err)
	assert.Equal(t, fixtures.TopAuthorsExampleResult(), results)

	resultCount, found := logHandler.AttrValue(slog.LevelInfo, shell.LogMsgQueryCompleted, shell.LogAttrResultCount)
	require.True(t, found)
	assert.Equal(t, int64(2), resultCount.Int64())
	assert.Positive(t, timingCollector.FetchTime())
}

func Test_QueryHandler_Handle_ReturnsTheFetchErrorUnchanged(t *testing.T) {
	// setup
	fetchErr := authorstore.NewDataSourceError(authorstore.ErrQueryingAuthorsFailed, context.DeadlineExceeded)
	tracingCollector := testdoubles.NewTracingCollectorSpy()

	handler, err := topauthorsprojectedvalue.NewQueryHandler(
		failingAuthorStore{err: fetchErr},
		topauthorsprojectedvalue.WithTracing(tracingCollector),
	)
	require.NoError(t, err)

	// act
	results, err := handler.Handle(context.Background())

	// assert
	assert.ErrorIs(t, err, authorstore.ErrDataSource)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Nil(t, results)

	span, found := tracingCollector.FinishedSpan(shell.SpanNameQueryHandle)
	require.True(t, found)
	assert.Equal(t, shell.StatusTimeout, span.Status)
}
