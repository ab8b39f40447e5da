package main

import (
	"context"
	"errors"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/AntonStoeckl/author-projection-benchmarks-go/authorstore/oteladapters"
	"github.com/AntonStoeckl/author-projection-benchmarks-go/authorstore/promadapters"
	"github.com/AntonStoeckl/author-projection-benchmarks-go/authorstore/sqlengine"
	"github.com/AntonStoeckl/author-projection-benchmarks-go/benchrunner"
	"github.com/AntonStoeckl/author-projection-benchmarks-go/config"
)

const instrumentationName = "github.com/AntonStoeckl/author-projection-benchmarks-go"

const (
	logMsgMetricDropped = "metric dropped"
	logMsgMetricSummary = "metric summary"
)

// telemetry holds the observability wiring of one command run for the configured metrics backend.
type telemetry struct {
	storeOptions  []sqlengine.Option
	observability benchrunner.Observability
	shutdown      func(ctx context.Context) error
}

func (a *app) newTelemetry() telemetry {
	t := telemetry{
		shutdown: func(context.Context) error { return nil },
	}

	switch a.settings.Metrics {
	case config.MetricsOTel:
		reader := sdkmetric.NewManualReader()
		meterProvider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
		tracerProvider := sdktrace.NewTracerProvider()

		metrics := oteladapters.NewMetricsCollector(meterProvider.Meter(instrumentationName))
		tracing := oteladapters.NewTracingCollector(tracerProvider.Tracer(instrumentationName))
		contextualLogger := oteladapters.NewSlogBridgeLoggerWithHandler(a.logger.Handler())

		t.storeOptions = []sqlengine.Option{
			sqlengine.WithMetrics(metrics),
			sqlengine.WithTracing(tracing),
			sqlengine.WithContextualLogger(contextualLogger),
		}
		t.observability.MetricsCollector = metrics
		t.observability.TracingCollector = tracing
		t.observability.ContextualLogger = contextualLogger

		t.shutdown = func(ctx context.Context) error {
			var resourceMetrics metricdata.ResourceMetrics
			if err := reader.Collect(ctx, &resourceMetrics); err != nil {
				return err
			}

			a.logOTelSummary(resourceMetrics)

			return errors.Join(meterProvider.Shutdown(ctx), tracerProvider.Shutdown(ctx))
		}

	case config.MetricsPrometheus:
		registry := prometheus.NewRegistry()
		metrics := promadapters.NewMetricsCollector(registry, promadapters.WithErrorHandler(func(err error) {
			a.logger.Warn(logMsgMetricDropped, "error", err)
		}))

		t.storeOptions = []sqlengine.Option{sqlengine.WithMetrics(metrics)}
		t.observability.MetricsCollector = metrics

		t.shutdown = func(context.Context) error {
			return promadapters.WriteText(a.stderr, registry)
		}
	}

	if t.observability.ContextualLogger == nil && a.logger.Enabled(context.Background(), slog.LevelDebug) {
		t.observability.Logger = a.logger
	}

	return t
}

// logOTelSummary logs count and sum of every histogram data point and the value of every sum and gauge.
func (a *app) logOTelSummary(resourceMetrics metricdata.ResourceMetrics) {
	for _, scopeMetrics := range resourceMetrics.ScopeMetrics {
		for _, m := range scopeMetrics.Metrics {
			switch data := m.Data.(type) {
			case metricdata.Histogram[float64]:
				for _, point := range data.DataPoints {
					a.logger.Info(logMsgMetricSummary, "metric", m.Name, "labels", labelsOf(point.Attributes),
						"count", point.Count, "sum", point.Sum)
				}
			case metricdata.Sum[int64]:
				for _, point := range data.DataPoints {
					a.logger.Info(logMsgMetricSummary, "metric", m.Name, "labels", labelsOf(point.Attributes),
						"value", point.Value)
				}
			case metricdata.Gauge[float64]:
				for _, point := range data.DataPoints {
					a.logger.Info(logMsgMetricSummary, "metric", m.Name, "labels", labelsOf(point.Attributes),
						"value", point.Value)
				}
			}
		}
	}
}

func labelsOf(set attribute.Set) string {
	return set.Encoded(attribute.DefaultEncoder())
}
