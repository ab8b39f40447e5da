// Package promadapters provides a Prometheus implementation of authorstore.MetricsCollector.
package promadapters

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/AntonStoeckl/author-projection-benchmarks-go/authorstore"
)

// ErrInconsistentLabels is returned when a metric is recorded with other label keys than on first use.
var ErrInconsistentLabels = errors.New("metric recorded with inconsistent labels")

// MetricsCollector implements authorstore.MetricsCollector with Prometheus vectors:
//   - RecordDuration -> HistogramVec (seconds, default buckets)
//   - IncrementCounter -> CounterVec
//   - RecordValue -> GaugeVec
//
// A vector is created and registered on the first use of a metric name, its label names
// are the sorted label keys of that first call. Later calls with other keys are dropped
// and reported through the optional error handler.
type MetricsCollector struct {
	registerer prometheus.Registerer
	onError    func(error)

	mu         sync.Mutex
	histograms map[string]*prometheus.HistogramVec
	counters   map[string]*prometheus.CounterVec
	gauges     map[string]*prometheus.GaugeVec
}

// Option configures a MetricsCollector.
type Option func(*MetricsCollector)

// WithErrorHandler sets a callback for registration and label errors, which are dropped otherwise.
func WithErrorHandler(onError func(error)) Option {
	return func(m *MetricsCollector) {
		m.onError = onError
	}
}

// NewMetricsCollector creates a collector registering its vectors into registerer.
func NewMetricsCollector(registerer prometheus.Registerer, options ...Option) *MetricsCollector {
	m := &MetricsCollector{
		registerer: registerer,
		onError:    func(error) {},
		histograms: make(map[string]*prometheus.HistogramVec),
		counters:   make(map[string]*prometheus.CounterVec),
		gauges:     make(map[string]*prometheus.GaugeVec),
	}

	for _, option := range options {
		option(m)
	}

	return m
}

// RecordDuration observes the duration in seconds.
func (m *MetricsCollector) RecordDuration(metric string, duration time.Duration, labels map[string]string) {
	vec, err := m.histogramVec(metric, labels)
	if err != nil {
		m.onError(err)
		return
	}

	observer, err := vec.GetMetricWith(labels)
	if err != nil {
		m.onError(fmt.Errorf("%w: %s: %w", ErrInconsistentLabels, metric, err))
		return
	}

	observer.Observe(duration.Seconds())
}

// IncrementCounter increments the counter by one.
func (m *MetricsCollector) IncrementCounter(metric string, labels map[string]string) {
	vec, err := m.counterVec(metric, labels)
	if err != nil {
		m.onError(err)
		return
	}

	counter, err := vec.GetMetricWith(labels)
	if err != nil {
		m.onError(fmt.Errorf("%w: %s: %w", ErrInconsistentLabels, metric, err))
		return
	}

	counter.Inc()
}

// RecordValue sets the gauge to value.
func (m *MetricsCollector) RecordValue(metric string, value float64, labels map[string]string) {
	vec, err := m.gaugeVec(metric, labels)
	if err != nil {
		m.onError(err)
		return
	}

	gauge, err := vec.GetMetricWith(labels)
	if err != nil {
		m.onError(fmt.Errorf("%w: %s: %w", ErrInconsistentLabels, metric, err))
		return
	}

	gauge.Set(value)
}

func (m *MetricsCollector) histogramVec(name string, labels map[string]string) (*prometheus.HistogramVec, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if vec, exists := m.histograms[name]; exists {
		return vec, nil
	}

	vec := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    name,
		Help:    "Author fetch or query duration in seconds",
		Buckets: prometheus.DefBuckets,
	}, labelNames(labels))

	if err := m.registerer.Register(vec); err != nil {
		return nil, fmt.Errorf("registering histogram %s: %w", name, err)
	}

	m.histograms[name] = vec

	return vec, nil
}

func (m *MetricsCollector) counterVec(name string, labels map[string]string) (*prometheus.CounterVec, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if vec, exists := m.counters[name]; exists {
		return vec, nil
	}

	vec := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: name,
		Help: "Author fetch or query counter",
	}, labelNames(labels))

	if err := m.registerer.Register(vec); err != nil {
		return nil, fmt.Errorf("registering counter %s: %w", name, err)
	}

	m.counters[name] = vec

	return vec, nil
}

func (m *MetricsCollector) gaugeVec(name string, labels map[string]string) (*prometheus.GaugeVec, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if vec, exists := m.gauges[name]; exists {
		return vec, nil
	}

	vec := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: name,
		Help: "Author fetch or query current value",
	}, labelNames(labels))

	if err := m.registerer.Register(vec); err != nil {
		return nil, fmt.Errorf("registering gauge %s: %w", name, err)
	}

	m.gauges[name] = vec

	return vec, nil
}

func labelNames(labels map[string]string) []string {
	names := make([]string, 0, len(labels))
	for name := range labels {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// WriteText writes all metric families of gatherer in the Prometheus text exposition format.
func WriteText(w io.Writer, gatherer prometheus.Gatherer) error {
	families, err := gatherer.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}

	for _, family := range families {
		if _, err := expfmt.MetricFamilyToText(w, family); err != nil {
			return fmt.Errorf("writing metric family %s: %w", family.GetName(), err)
		}
	}

	return nil
}

var _ authorstore.MetricsCollector = (*MetricsCollector)(nil)
