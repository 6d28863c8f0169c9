// Package progress accumulates throughput counters for the search
// engine and produces smoothed, outlier-rejected rate estimates via a
// background monitor goroutine.
package progress

import (
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

const (
	// tickInterval is how often the monitor wakes to check counters.
	tickInterval = 50 * time.Millisecond

	// sampleInterval is the minimum elapsed time between rate samples.
	sampleInterval = 500 * time.Millisecond

	// callbackInterval throttles progress callback delivery to <=4 Hz.
	callbackInterval = 250 * time.Millisecond

	// smoothingFactor is the EMA weight on a new (median-filtered)
	// sample. Low weight keeps the reported rates stable.
	smoothingFactor = 0.2

	// historySize bounds the rolling history used for median filtering.
	historySize = 5
)

// Stats is a read-only throughput snapshot.
type Stats struct {
	Seeds       uint64
	Addresses   uint64
	SeedRate    float64
	AddressRate float64
	Threads     int
}

// Callback receives throttled progress updates.
type Callback func(seeds, addresses uint64, seedRate, addrRate float64)

// Tracker accumulates seed/address counters and runs the monitor. The
// increment path is a bare atomic add, callable from any worker.
type Tracker struct {
	seeds     atomic.Uint64
	addresses atomic.Uint64
	running   atomic.Bool

	threads int
	logger  *slog.Logger

	mu       sync.Mutex
	cb       Callback
	start    time.Time
	throttle *rate.Limiter
	done     chan struct{}
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithLogger sets the logger used for monitor debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Tracker) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// NewTracker creates a tracker for the given worker thread count.
func NewTracker(threads int, opts ...Option) *Tracker {
	t := &Tracker{
		threads:  threads,
		logger:   slog.Default(),
		start:    time.Now(),
		throttle: rate.NewLimiter(rate.Every(callbackInterval), 1),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// SetCallback registers the progress callback. A nil callback clears it;
// absence of a callback is a no-op, not an error.
func (t *Tracker) SetCallback(cb Callback) {
	t.mu.Lock()
	t.cb = cb
	t.mu.Unlock()
}

// RecordProcessed adds to the seed and address counters.
func (t *Tracker) RecordProcessed(seeds, addresses int) {
	t.seeds.Add(uint64(seeds))
	t.addresses.Add(uint64(addresses))
}

// Start launches the background monitor. Calling Start while a monitor
// is already running is a no-op.
func (t *Tracker) Start() {
	if !t.running.CompareAndSwap(false, true) {
		return
	}
	t.mu.Lock()
	t.start = time.Now()
	t.done = make(chan struct{})
	done := t.done
	t.mu.Unlock()

	go t.monitor(done)
}

// Stop flips the running flag; the monitor observes it on its next wake
// and exits. Use Wait to join.
func (t *Tracker) Stop() {
	t.running.Store(false)
}

// Wait blocks until the monitor has exited. It returns immediately if no
// monitor was started.
func (t *Tracker) Wait() {
	t.mu.Lock()
	done := t.done
	t.mu.Unlock()
	if done != nil {
		<-done
	}
}

// Reset zeroes the counters and restarts the wall clock. Only valid once
// the monitor has confirmed exit (Stop then Wait).
func (t *Tracker) Reset() {
	t.Stop()
	t.Wait()
	t.seeds.Store(0)
	t.addresses.Store(0)
	t.mu.Lock()
	t.start = time.Now()
	t.done = nil
	t.mu.Unlock()
}

// Stats returns totals plus rates computed over total elapsed wall-clock
// time. A zero duration yields zero rates, not a division fault.
func (t *Tracker) Stats() Stats {
	seeds := t.seeds.Load()
	addresses := t.addresses.Load()

	t.mu.Lock()
	elapsed := time.Since(t.start).Seconds()
	t.mu.Unlock()

	var seedRate, addrRate float64
	if elapsed > 0 {
		seedRate = float64(seeds) / elapsed
		addrRate = float64(addresses) / elapsed
	}
	return Stats{
		Seeds:       seeds,
		Addresses:   addresses,
		SeedRate:    seedRate,
		AddressRate: addrRate,
		Threads:     t.threads,
	}
}

// monitor is the single cooperative loop computing smoothed rates and
// delivering throttled callbacks.
func (t *Tracker) monitor(done chan struct{}) {
	defer close(done)

	var (
		lastSeeds     uint64
		lastAddresses uint64
		lastTime      = time.Now()
		firstSample   = true

		smoothedSeedRate float64
		smoothedAddrRate float64

		seedHistory []float64
		addrHistory []float64
	)

	for t.running.Load() {
		now := time.Now()
		delta := now.Sub(lastTime)
		if delta >= sampleInterval {
			seeds := t.seeds.Load()
			addresses := t.addresses.Load()

			instSeedRate := float64(seeds-lastSeeds) / delta.Seconds()
			instAddrRate := float64(addresses-lastAddresses) / delta.Seconds()

			seedHistory = pushBounded(seedHistory, instSeedRate)
			addrHistory = pushBounded(addrHistory, instAddrRate)

			// Median filtering rejects transient spikes once enough
			// history exists.
			filteredSeedRate := medianOr(seedHistory, instSeedRate)
			filteredAddrRate := medianOr(addrHistory, instAddrRate)

			if firstSample {
				// Take the first sample verbatim to avoid a startup
				// bias toward zero.
				smoothedSeedRate = filteredSeedRate
				smoothedAddrRate = filteredAddrRate
				firstSample = false
			} else {
				smoothedSeedRate = smoothingFactor*filteredSeedRate + (1-smoothingFactor)*smoothedSeedRate
				smoothedAddrRate = smoothingFactor*filteredAddrRate + (1-smoothingFactor)*smoothedAddrRate
			}

			t.logger.Debug("search progress",
				"seeds", seeds,
				"addresses", addresses,
				"seed_rate", smoothedSeedRate,
				"addr_rate", smoothedAddrRate)

			t.deliver(seeds, addresses, smoothedSeedRate, smoothedAddrRate)

			lastSeeds = seeds
			lastAddresses = addresses
			lastTime = now
		}

		time.Sleep(tickInterval)
	}
}

// deliver invokes the registered callback, rate-limited to one call per
// callbackInterval.
func (t *Tracker) deliver(seeds, addresses uint64, seedRate, addrRate float64) {
	t.mu.Lock()
	cb := t.cb
	t.mu.Unlock()
	if cb == nil {
		return
	}
	if !t.throttle.Allow() {
		return
	}
	cb(seeds, addresses, seedRate, addrRate)
}

func pushBounded(history []float64, v float64) []float64 {
	history = append(history, v)
	if len(history) > historySize {
		history = history[1:]
	}
	return history
}

// medianOr returns the median of history, or fallback when there is not
// enough history for the filter to be meaningful.
func medianOr(history []float64, fallback float64) float64 {
	if len(history) < 3 {
		return fallback
	}
	sorted := make([]float64, len(history))
	copy(sorted, history)
	sort.Float64s(sorted)
	return sorted[len(sorted)/2]
}
