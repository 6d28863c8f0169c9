// Package batch adaptively sizes the work units handed to the search
// workers. Batches are timed, and the controller steers the size toward
// a target duration window so throughput stays high without starving
// cancellation checks.
package batch

import (
	"sync"
	"sync/atomic"
	"time"
)

// Target per-batch duration window in milliseconds. Below the window the
// coordination overhead dominates; above it cancellation gets sluggish.
const (
	targetMinMs = 80.0
	targetMaxMs = 120.0

	// maxStepFactor bounds a single adjustment to +/-25%.
	maxStepFactor = 0.25

	// hysteresis: skip updates that differ from the current size by
	// less than 5%, so noisy single-sample timings don't cause
	// oscillation.
	hysteresis = 0.05
)

// Config holds the sizing bounds and tunables.
type Config struct {
	MinSize int // smallest allowed batch size
	MaxSize int // largest allowed batch size
	Width   int // alignment width (SIMD hint), minimum 1

	// AdjustInterval is N in "adjust on every N-th batch".
	AdjustInterval uint64

	// Word-count scale factors for the initial size. Cheaper candidates
	// get larger batches to amortize coordination overhead. These are
	// empirical tunables, not a contract.
	Scale12    float64
	Scale15    float64
	ScaleOther float64
}

// DefaultConfig derives a config from the acceleration oracle's hints,
// mirroring the bounds the search engine has always used: the minimum is
// ten aligned lanes, the maximum three default batches.
func DefaultConfig(width, baseCount int) Config {
	if width < 1 {
		width = 1
	}
	if baseCount < 1 {
		baseCount = 1
	}
	return Config{
		MinSize:        width * 10,
		MaxSize:        baseCount * 3,
		Width:          width,
		AdjustInterval: 10,
		Scale12:        1.2,
		Scale15:        1.0,
		ScaleOther:     0.8,
	}
}

// Controller owns the shared batch-size state consumed by the search
// loop: current size, bounds, the batch counter and the last observed
// per-worker batch durations.
type Controller struct {
	cfg Config

	size    atomic.Int64
	counter atomic.Uint64

	mu        sync.Mutex
	durations map[int]time.Duration
}

// NewController creates a controller. Bounds are normalized so that the
// size invariant (within [min,max] and a multiple of the width) is
// always satisfiable.
func NewController(cfg Config) *Controller {
	if cfg.Width < 1 {
		cfg.Width = 1
	}
	if cfg.AdjustInterval == 0 {
		cfg.AdjustInterval = 10
	}
	if cfg.MinSize < cfg.Width {
		cfg.MinSize = cfg.Width
	}
	cfg.MinSize = alignUp(cfg.MinSize, cfg.Width)
	if cfg.MaxSize < cfg.MinSize {
		cfg.MaxSize = cfg.MinSize
	}
	cfg.MaxSize = alignDown(cfg.MaxSize, cfg.Width)
	if cfg.MaxSize < cfg.MinSize {
		cfg.MaxSize = cfg.MinSize
	}

	c := &Controller{
		cfg:       cfg,
		durations: make(map[int]time.Duration),
	}
	c.size.Store(int64(cfg.MinSize))
	return c
}

// InitialSize scales base by the candidate's expected per-unit cost and
// stores the result as the current size. 12-word phrases are the
// cheapest to derive, 24-word the most expensive.
func (c *Controller) InitialSize(base, wordCount int) int {
	var scale float64
	switch wordCount {
	case 12:
		scale = c.cfg.Scale12
	case 15:
		scale = c.cfg.Scale15
	default: // 24-word and mixed
		scale = c.cfg.ScaleOther
	}
	size := c.clampAlign(int(float64(base) * scale))
	c.size.Store(int64(size))
	return size
}

// Size returns the current batch size.
func (c *Controller) Size() int {
	return int(c.size.Load())
}

// NextBatch claims and returns the next batch number.
func (c *Controller) NextBatch() uint64 {
	return c.counter.Add(1) - 1
}

// ShouldAdjust reports whether the given batch number falls on the
// adjustment interval.
func (c *Controller) ShouldAdjust(batchNum uint64) bool {
	return batchNum%c.cfg.AdjustInterval == 0
}

// RecordDuration stores the last observed batch duration for a worker.
func (c *Controller) RecordDuration(worker int, d time.Duration) {
	c.mu.Lock()
	c.durations[worker] = d
	c.mu.Unlock()
}

// LastDuration returns the last recorded duration for a worker.
func (c *Controller) LastDuration(worker int) (time.Duration, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.durations[worker]
	return d, ok
}

// Adjust recomputes the batch size from one representative worker's last
// duration. The update is applied only when it differs from the current
// size by more than the hysteresis threshold.
func (c *Controller) Adjust() {
	d, ok := c.LastDuration(0)
	if !ok {
		return
	}
	current := c.Size()
	next := ComputeAdjusted(d, current, c.cfg.MinSize, c.cfg.MaxSize, c.cfg.Width)

	ratio := float64(next) / float64(current)
	if ratio > 1+hysteresis || ratio < 1-hysteresis {
		c.size.Store(int64(next))
	}
}

// Reset zeroes the batch counter and forgets recorded durations. The
// current size is kept; a new search re-seeds it via InitialSize.
func (c *Controller) Reset() {
	c.counter.Store(0)
	c.mu.Lock()
	c.durations = make(map[int]time.Duration)
	c.mu.Unlock()
}

// ComputeAdjusted is the pure sizing heuristic: grow when the batch ran
// under the target window, shrink when it ran over, clamp to [min,max]
// and round to the nearest multiple of width. A single step never moves
// the size by more than 25%.
func ComputeAdjusted(d time.Duration, current, min, max, width int) int {
	ms := float64(d.Milliseconds())

	factor := 1.0
	switch {
	case ms < targetMinMs:
		factor = 1.0 + maxStepFactor*(targetMinMs-ms)/targetMinMs
	case ms > targetMaxMs:
		factor = 1.0 - maxStepFactor*(ms-targetMaxMs)/targetMaxMs
		if factor < 1.0-maxStepFactor {
			factor = 1.0 - maxStepFactor
		}
	}

	next := int(float64(current) * factor)
	return clampAlign(next, min, max, width)
}

func (c *Controller) clampAlign(n int) int {
	return clampAlign(n, c.cfg.MinSize, c.cfg.MaxSize, c.cfg.Width)
}

func clampAlign(n, min, max, width int) int {
	n = alignNearest(n, width)
	if n < min {
		n = min
	}
	if n > max {
		n = max
	}
	return n
}

func alignNearest(n, width int) int {
	if width <= 1 {
		return n
	}
	return ((n + width/2) / width) * width
}

func alignUp(n, width int) int {
	if width <= 1 {
		return n
	}
	return ((n + width - 1) / width) * width
}

func alignDown(n, width int) int {
	if width <= 1 {
		return n
	}
	return (n / width) * width
}
