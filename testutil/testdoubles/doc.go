// Package testdoubles provides spies for the observability interfaces of the author store:
//   - LogHandlerSpy: a slog.Handler that captures records
//   - MetricsCollectorSpy: captures duration, counter, and value recordings
//   - TracingCollectorSpy: captures started and finished spans
package testdoubles
