package benchrunner

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
)

// Report is the outcome of one Runner.Run.
type Report struct {
	RunID       uuid.UUID       `json:"run_id"`
	StartedAt   time.Time       `json:"started_at"`
	Warmup      int             `json:"warmup"`
	Iterations  int             `json:"iterations"`
	Parallelism int             `json:"parallelism"`
	Results     []VariantResult `json:"results"`
}

// VariantResult holds the measurements of one variant. Durations are per invocation.
// Ratio and AllocRatio are relative to the baseline and zero when there is none.
type VariantResult struct {
	Name                string        `json:"name"`
	Baseline            bool          `json:"baseline"`
	Operations          int           `json:"operations"`
	Mean                time.Duration `json:"mean_ns"`
	Min                 time.Duration `json:"min_ns"`
	Max                 time.Duration `json:"max_ns"`
	Ratio               float64       `json:"ratio"`
	AllocatedBytesPerOp uint64        `json:"allocated_bytes_per_op"`
	AllocsPerOp         uint64        `json:"allocs_per_op"`
	AllocRatio          float64       `json:"alloc_ratio"`
	Results             int           `json:"results"`
}

// Baseline returns the baseline result, if any.
func (r Report) Baseline() (VariantResult, bool) {
	for _, result := range r.Results {
		if result.Baseline {
			return result, true
		}
	}

	return VariantResult{}, false
}

func (r *Report) computeRatios() {
	baseline, ok := r.Baseline()
	if !ok {
		return
	}

	for i := range r.Results {
		if baseline.Mean > 0 {
			r.Results[i].Ratio = float64(r.Results[i].Mean) / float64(baseline.Mean)
		}

		if baseline.AllocatedBytesPerOp > 0 {
			r.Results[i].AllocRatio = float64(r.Results[i].AllocatedBytesPerOp) / float64(baseline.AllocatedBytesPerOp)
		}
	}
}

// WriteTable prints the report as an aligned table. The allocation ratio is not shown.
func (r Report) WriteTable(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)

	if _, err := fmt.Fprintln(tw, "Method\tMean\tMin\tMax\tRatio\tAllocated\tResults\t"); err != nil {
		return err
	}

	for _, result := range r.Results {
		ratio := "-"
		if _, ok := r.Baseline(); ok {
			ratio = fmt.Sprintf("%.2f", result.Ratio)
		}

		name := result.Name
		if result.Baseline {
			name += " *"
		}

		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%d\t\n",
			name,
			formatDuration(result.Mean),
			formatDuration(result.Min),
			formatDuration(result.Max),
			ratio,
			formatBytes(result.AllocatedBytesPerOp),
			result.Results,
		); err != nil {
			return err
		}
	}

	return tw.Flush()
}

// WriteJSON encodes the report as indented JSON.
func (r Report) WriteJSON(w io.Writer) error {
	encoder := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(w)
	encoder.SetIndent("", "  ")

	return encoder.Encode(r)
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Millisecond:
		return fmt.Sprintf("%.3f ms", toMilliseconds(d))
	case d >= time.Microsecond:
		return fmt.Sprintf("%.3f us", float64(d.Nanoseconds())/1e3)
	default:
		return fmt.Sprintf("%d ns", d.Nanoseconds())
	}
}

func formatBytes(b uint64) string {
	const kb = 1024

	switch {
	case b >= kb*kb:
		return fmt.Sprintf("%.2f MB", float64(b)/(kb*kb))
	case b >= kb:
		return fmt.Sprintf("%.2f KB", float64(b)/kb)
	default:
		return fmt.Sprintf("%d B", b)
	}
}
