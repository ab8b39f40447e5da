// Package oteladapters provides OpenTelemetry implementations of the authorstore observability interfaces.
//
// The store and the query handlers only know the small interfaces declared in package authorstore.
// These adapters plug them into an OpenTelemetry MeterProvider, TracerProvider or LoggerProvider:
//
//	meter := otel.GetMeterProvider().Meter("authorbench")
//	tracer := otel.GetTracerProvider().Tracer("authorbench")
//
//	store, err := sqlengine.NewAuthorStoreFromPGXPool(pool,
//		sqlengine.WithMetrics(oteladapters.NewMetricsCollector(meter)),
//		sqlengine.WithTracing(oteladapters.NewTracingCollector(tracer)),
//		sqlengine.WithContextualLogger(oteladapters.NewSlogBridgeLogger("authorbench")),
//	)
package oteladapters
