package shell

import (
	"sync"
	"time"
)

// TimingCollector accumulates the time spent per query phase, e.g. over all iterations of a benchmark.
// It is safe for concurrent use; a nil TimingCollector records nothing.
type TimingCollector struct {
	mu        sync.Mutex
	fetchTime time.Duration
	shapeTime time.Duration
}

// NewTimingCollector creates an empty TimingCollector.
func NewTimingCollector() *TimingCollector {
	return &TimingCollector{}
}

// Record adds duration to the phase named by component.
func (t *TimingCollector) Record(component string, duration time.Duration) {
	if t == nil {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	switch component {
	case ComponentFetch:
		t.fetchTime += duration
	case ComponentShape:
		t.shapeTime += duration
	}
}

// FetchTime returns the accumulated fetch phase time.
func (t *TimingCollector) FetchTime() time.Duration {
	if t == nil {
		return 0
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	return t.fetchTime
}

// ShapeTime returns the accumulated shape phase time.
func (t *TimingCollector) ShapeTime() time.Duration {
	if t == nil {
		return 0
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	return t.shapeTime
}
