package benchrunner

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/AntonStoeckl/author-projection-benchmarks-go/authorstore"
)

const (
	logMsgVariantStarted  = "benchmarking variant"
	logMsgVariantFinished = "variant finished"
	logAttrVariant        = "variant"
	logAttrMeanMS         = "mean_ms"
	logAttrAllocatedBytes = "allocated_bytes_per_op"
	logAttrResults        = "results"
)

// Variant is one code path under test. Run returns the number of results it produced.
type Variant struct {
	Name     string
	Baseline bool
	Run      func(ctx context.Context) (int, error)
}

// Runner executes variants and measures them.
type Runner struct {
	Warmup      int
	Iterations  int
	Parallelism int
	Logger      authorstore.Logger
}

// NewRunner creates a Runner with one warmup iteration, ten measured iterations and no parallelism.
func NewRunner() Runner {
	return Runner{
		Warmup:      1,
		Iterations:  10,
		Parallelism: 1,
	}
}

// Run measures all variants in order and returns the report.
// The first failing invocation aborts the run, its error is joined with ErrVariantFailed.
func (r Runner) Run(ctx context.Context, variants ...Variant) (Report, error) {
	if err := r.validate(variants); err != nil {
		return Report{}, err
	}

	report := Report{
		RunID:       newRunID(),
		StartedAt:   time.Now().UTC(),
		Warmup:      r.Warmup,
		Iterations:  r.Iterations,
		Parallelism: r.Parallelism,
		Results:     make([]VariantResult, 0, len(variants)),
	}

	for _, variant := range variants {
		r.logInfo(logMsgVariantStarted, logAttrVariant, variant.Name)

		result, err := r.measure(ctx, variant)
		if err != nil {
			return Report{}, err
		}

		r.logInfo(logMsgVariantFinished,
			logAttrVariant, variant.Name,
			logAttrMeanMS, toMilliseconds(result.Mean),
			logAttrAllocatedBytes, result.AllocatedBytesPerOp,
			logAttrResults, result.Results,
		)

		report.Results = append(report.Results, result)
	}

	report.computeRatios()

	return report, nil
}

func (r Runner) validate(variants []Variant) error {
	if r.Iterations < 1 || r.Parallelism < 1 || r.Warmup < 0 {
		return fmt.Errorf("%w: iterations=%d parallelism=%d warmup=%d",
			ErrInvalidRunner, r.Iterations, r.Parallelism, r.Warmup)
	}

	if len(variants) == 0 {
		return ErrNoVariants
	}

	baselines := 0
	for _, variant := range variants {
		if variant.Baseline {
			baselines++
		}
	}

	if baselines > 1 {
		return ErrMultipleBaselines
	}

	return nil
}

func (r Runner) measure(ctx context.Context, variant Variant) (VariantResult, error) {
	tracker := newResultTracker()

	for range r.Warmup {
		if _, err := r.iterate(ctx, variant, tracker); err != nil {
			return VariantResult{}, err
		}
	}

	var memBefore, memAfter runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&memBefore)

	var total time.Duration
	minDuration := time.Duration(math.MaxInt64)
	maxDuration := time.Duration(0)

	for range r.Iterations {
		durations, err := r.iterate(ctx, variant, tracker)
		if err != nil {
			return VariantResult{}, err
		}

		for _, d := range durations {
			total += d
			minDuration = min(minDuration, d)
			maxDuration = max(maxDuration, d)
		}
	}

	runtime.ReadMemStats(&memAfter)

	ops := uint64(r.Iterations * r.Parallelism)

	return VariantResult{
		Name:                variant.Name,
		Baseline:            variant.Baseline,
		Operations:          int(ops),
		Mean:                total / time.Duration(ops),
		Min:                 minDuration,
		Max:                 maxDuration,
		AllocatedBytesPerOp: (memAfter.TotalAlloc - memBefore.TotalAlloc) / ops,
		AllocsPerOp:         (memAfter.Mallocs - memBefore.Mallocs) / ops,
		Results:             tracker.count,
	}, nil
}

// iterate runs Parallelism concurrent invocations and returns the duration of each.
func (r Runner) iterate(ctx context.Context, variant Variant, tracker *resultTracker) ([]time.Duration, error) {
	durations := make([]time.Duration, r.Parallelism)

	if r.Parallelism == 1 {
		d, err := invoke(ctx, variant, tracker)
		if err != nil {
			return nil, err
		}

		durations[0] = d

		return durations, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for i := range r.Parallelism {
		g.Go(func() error {
			d, err := invoke(gctx, variant, tracker)
			if err != nil {
				return err
			}

			durations[i] = d

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return durations, nil
}

func invoke(ctx context.Context, variant Variant, tracker *resultTracker) (time.Duration, error) {
	start := time.Now()
	count, err := variant.Run(ctx)
	duration := time.Since(start)

	if err != nil {
		return 0, errors.Join(ErrVariantFailed, fmt.Errorf("%s: %w", variant.Name, err))
	}

	if err := tracker.observe(variant.Name, count); err != nil {
		return 0, err
	}

	return duration, nil
}

// resultTracker checks that every invocation of a variant returns the same number of results.
type resultTracker struct {
	mu    sync.Mutex
	seen  bool
	count int
}

func newResultTracker() *resultTracker {
	return &resultTracker{}
}

func (t *resultTracker) observe(name string, count int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.seen {
		t.seen = true
		t.count = count

		return nil
	}

	if t.count != count {
		return fmt.Errorf("%w: %s returned %d and %d", ErrInconsistentResults, name, t.count, count)
	}

	return nil
}

func (r Runner) logInfo(msg string, args ...any) {
	if r.Logger != nil {
		r.Logger.Info(msg, args...)
	}
}

func newRunID() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}

	return id
}

func toMilliseconds(d time.Duration) float64 {
	return float64(d.Nanoseconds()) / 1e6
}
