package oteladapters_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/AntonStoeckl/author-projection-benchmarks-go/authorstore/oteladapters"
	"github.com/AntonStoeckl/author-projection-benchmarks-go/authorstore/sqlengine"
	"github.com/AntonStoeckl/author-projection-benchmarks-go/testutil/fixtures"
	"github.com/AntonStoeckl/author-projection-benchmarks-go/testutil/sqlitedb"
)

func Test_AuthorStore_WithOTelAdapters(t *testing.T) {
	// setup
	reader := sdkmetric.NewManualReader()
	meter := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)).Meter("authorstore")
	exporter := tracetest.NewInMemoryExporter()
	tracer := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter)).Tracer("authorstore")

	db := sqlitedb.NewWithDataset(t, fixtures.TopAuthorsExample())
	store, err := sqlengine.NewAuthorStoreFromSQLite(db,
		sqlengine.WithMetrics(oteladapters.NewMetricsCollector(meter)),
		sqlengine.WithTracing(oteladapters.NewTracingCollector(tracer)),
	)
	require.NoError(t, err)

	// act
	_, err = store.FetchAllAuthors(context.Background())
	require.NoError(t, err)
	_, _, err = store.FetchTopAuthorRows(context.Background())
	require.NoError(t, err)

	// assert
	spans := exporter.GetSpans()
	require.Len(t, spans, 2)
	assert.Equal(t, "authorstore.fetch_all_authors", spans[0].Name)
	assertSpanHasAttribute(t, spans[0], "author_count", "3")
	assert.Equal(t, "authorstore.fetch_top_author_rows", spans[1].Name)
	assertSpanHasAttribute(t, spans[1], "author_count", "2")
	assertSpanHasAttribute(t, spans[1], "book_count", "3")

	resourceMetrics := collect(t, reader)
	histogram := findHistogramMetric(t, resourceMetrics, "authorstore_fetch_duration_seconds")
	assert.Len(t, histogram.DataPoints, 2, "one data point per operation")
	assert.Len(t, findGaugeMetric(t, resourceMetrics, "authorstore_authors_fetched").DataPoints, 2)
}
