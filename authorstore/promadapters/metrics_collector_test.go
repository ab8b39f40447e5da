package promadapters_test

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/author-projection-benchmarks-go/authorstore/promadapters"
)

func Test_MetricsCollector_IncrementCounter(t *testing.T) {
	// setup
	registry := prometheus.NewPedanticRegistry()
	collector := promadapters.NewMetricsCollector(registry)
	labels := map[string]string{"query_type": "TopAuthorsProjected", "status": "success"}

	// act
	collector.IncrementCounter("queryhandler_handle_calls_total", labels)
	collector.IncrementCounter("queryhandler_handle_calls_total", labels)

	// assert
	var buf bytes.Buffer
	require.NoError(t, promadapters.WriteText(&buf, registry))
	assert.Contains(t, buf.String(),
		`queryhandler_handle_calls_total{query_type="TopAuthorsProjected",status="success"} 2`)
}

func Test_MetricsCollector_RecordDuration(t *testing.T) {
	// setup
	registry := prometheus.NewPedanticRegistry()
	collector := promadapters.NewMetricsCollector(registry)

	// act
	collector.RecordDuration("authorstore_fetch_duration_seconds", 250*time.Millisecond,
		map[string]string{"operation": "fetch_all_authors", "status": "success"})

	// assert
	var buf bytes.Buffer
	require.NoError(t, promadapters.WriteText(&buf, registry))
	output := buf.String()
	assert.Contains(t, output, `authorstore_fetch_duration_seconds_count{operation="fetch_all_authors",status="success"} 1`)
	assert.Contains(t, output, `authorstore_fetch_duration_seconds_sum{operation="fetch_all_authors",status="success"} 0.25`)
}

func Test_MetricsCollector_RecordValue(t *testing.T) {
	// setup
	registry := prometheus.NewPedanticRegistry()
	collector := promadapters.NewMetricsCollector(registry)
	labels := map[string]string{"operation": "fetch_top_author_rows"}

	// act
	collector.RecordValue("authorstore_books_fetched", 7, labels)
	collector.RecordValue("authorstore_books_fetched", 3, labels)

	// assert
	var buf bytes.Buffer
	require.NoError(t, promadapters.WriteText(&buf, registry))
	assert.Contains(t, buf.String(), `authorstore_books_fetched{operation="fetch_top_author_rows"} 3`)
}

func Test_MetricsCollector_InconsistentLabels_AreReported(t *testing.T) {
	// setup
	registry := prometheus.NewPedanticRegistry()
	var reported []error
	collector := promadapters.NewMetricsCollector(registry, promadapters.WithErrorHandler(func(err error) {
		reported = append(reported, err)
	}))

	// act
	collector.IncrementCounter("authorstore_database_errors_total", map[string]string{"operation": "fetch_all_authors"})
	collector.IncrementCounter("authorstore_database_errors_total", map[string]string{"status": "error"})

	// assert
	require.Len(t, reported, 1)
	assert.True(t, errors.Is(reported[0], promadapters.ErrInconsistentLabels))
}

func Test_MetricsCollector_RegistrationConflict_IsReported(t *testing.T) {
	// setup
	registry := prometheus.NewPedanticRegistry()
	registry.MustRegister(prometheus.NewCounter(prometheus.CounterOpts{Name: "taken_total", Help: "taken"}))

	var reported []error
	collector := promadapters.NewMetricsCollector(registry, promadapters.WithErrorHandler(func(err error) {
		reported = append(reported, err)
	}))

	// act
	collector.IncrementCounter("taken_total", map[string]string{"status": "success"})

	// assert
	require.Len(t, reported, 1)
	assert.Contains(t, reported[0].Error(), "registering counter taken_total")
}
