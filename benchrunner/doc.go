// Package benchrunner times query variants against each other.
//
// A Runner executes every Variant for a number of warmup and measured iterations and reports
// mean, min and max latency, heap allocations per operation and the number of results.
// Latency and allocation ratios are computed against the variant marked as baseline.
//
// Variants must be independent and read-only, with Parallelism > 1 they are invoked concurrently.
package benchrunner
