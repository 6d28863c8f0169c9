// Package processor drives the vanity address search: it composes the
// mnemonic provider, address deriver, pattern matcher, adaptive batch
// controller and progress tracker into a data-parallel batch pipeline
// with two result-aggregation strategies.
package processor

import (
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ergohunt/ergohunt/pkg/batch"
	"github.com/ergohunt/ergohunt/pkg/matcher"
	"github.com/ergohunt/ergohunt/pkg/progress"
)

const (
	// cancelGrace is the bounded pause after Cancel so in-flight worker
	// iterations can observe the flag. Cancellation is cooperative, not
	// instantaneous.
	cancelGrace = 50 * time.Millisecond

	// resetGrace forces any stale busy-loop to observe the cancel flag
	// before the processor is reactivated.
	resetGrace = 100 * time.Millisecond
)

// Processor finds seed phrases whose derived addresses match a pattern
// set. A single instance owns its worker pool, batch-size state,
// progress tracker and cancellation flag; independent instances share
// nothing. An instance may be reused across searches after Reset.
type Processor struct {
	provider MnemonicProvider
	deriver  AddressDeriver
	oracle   AccelerationOracle

	workers    int
	logger     *slog.Logger
	controller *batch.Controller
	tracker    *progress.Tracker

	cancelled atomic.Bool
	found     atomic.Int64

	cbMu     sync.Mutex
	resultCB ResultCallback
}

// New builds a processor around the given collaborators. By default the
// worker pool is sized to the host's core count; a misconfigured worker
// count is logged and replaced by the default rather than failing.
func New(provider MnemonicProvider, deriver AddressDeriver, oracle AccelerationOracle, opts ...Option) *Processor {
	p := &Processor{
		provider: provider,
		deriver:  deriver,
		oracle:   oracle,
		workers:  runtime.NumCPU(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.workers < 1 {
		p.logger.Warn("invalid worker count, using host core count",
			"requested", p.workers, "workers", runtime.NumCPU())
		p.workers = runtime.NumCPU()
	}

	p.controller = batch.NewController(batch.DefaultConfig(
		oracle.OptimalBatchWidth(), oracle.OptimalBatchCount()))
	p.tracker = progress.NewTracker(p.workers, progress.WithLogger(p.logger))
	return p
}

// SetResultCallback registers a callback invoked for each accepted
// match in real time. Cancel clears it.
func (p *Processor) SetResultCallback(cb ResultCallback) {
	p.cbMu.Lock()
	p.resultCB = cb
	p.cbMu.Unlock()
}

// SetProgressCallback registers a throttled progress callback,
// delivered at most four times per second.
func (p *Processor) SetProgressCallback(cb progress.Callback) {
	p.tracker.SetCallback(cb)
}

// Stats returns the current throughput snapshot.
func (p *Processor) Stats() progress.Stats {
	return p.tracker.Stats()
}

// Workers returns the size of the worker pool.
func (p *Processor) Workers() int {
	return p.workers
}

// FindMatches searches until numResults matches are accepted or the
// search is cancelled. It blocks the calling goroutine; the work itself
// is spread across the worker pool in fork-join batches. Seed phrases
// are exposed to plain strings only at this final boundary.
//
// With balanced set, every matching address within a candidate is
// evaluated and accepted matches are spread across patterns; otherwise
// a candidate contributes at most its first matching address.
func (p *Processor) FindMatches(m *matcher.PatternMatcher, wordCount, numResults int, balanced bool, addressesPerSeed int) ([]MatchResult, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if addressesPerSeed < 1 {
		addressesPerSeed = 1
	}

	p.found.Store(0)
	size := p.controller.InitialSize(p.oracle.OptimalBatchCount(), wordCount)
	p.logger.Debug("starting search",
		"patterns", m.PatternCount(),
		"word_count", wordCount,
		"num_results", numResults,
		"balanced", balanced,
		"addresses_per_seed", addressesPerSeed,
		"initial_batch_size", size,
		"workers", p.workers)

	p.tracker.Start()

	var secure []secureMatch
	if balanced {
		secure = p.findBalanced(m, wordCount, numResults, addressesPerSeed)
	} else {
		secure = p.findAny(m, wordCount, numResults, addressesPerSeed)
	}

	p.tracker.Stop()
	p.tracker.Wait()

	results := make([]MatchResult, 0, len(secure))
	for _, sm := range secure {
		results = append(results, MatchResult{
			Mnemonic:  sm.seed.Expose(),
			Address:   sm.address,
			Pattern:   sm.pattern,
			Index:     sm.index,
			WordCount: sm.wordCount,
		})
	}
	return results, nil
}

// Cancel requests cooperative cancellation: it sets the shared flag,
// stops the progress tracker, clears the result callback so queued
// completions cannot fire afterwards, and pauses briefly so in-flight
// iterations can observe the flag.
func (p *Processor) Cancel() {
	p.cancelled.Store(true)
	p.tracker.Stop()
	p.SetResultCallback(nil)
	p.logger.Info("cancellation requested, stopping search")
	time.Sleep(cancelGrace)
}

// Reset returns the processor to a quiescent, reusable state: it forces
// any stale busy-loop out via a cancel pulse, zeroes the batch counter,
// duration map, found count and progress tracker, and clears the result
// callback.
func (p *Processor) Reset() {
	p.cancelled.Store(true)
	time.Sleep(resetGrace)
	p.cancelled.Store(false)

	p.controller.Reset()
	p.tracker.Reset()
	p.found.Store(0)
	p.SetResultCallback(nil)
}

func (p *Processor) isCancelled() bool {
	return p.cancelled.Load()
}

// findAny accepts whichever matches arrive first, up to numResults.
func (p *Processor) findAny(m *matcher.PatternMatcher, wordCount, numResults, addressesPerSeed int) []secureMatch {
	results := make([]secureMatch, 0, numResults)

	for p.found.Load() < int64(numResults) && !p.isCancelled() {
		collected, size := p.runBatch(m, wordCount, numResults, addressesPerSeed, false)
		p.tracker.RecordProcessed(size, size*addressesPerSeed)

		// Accept only up to the remaining need; surplus matches from
		// this batch are discarded, never overshooting numResults.
		needed := numResults - int(p.found.Load())
		if needed < 0 {
			needed = 0
		}
		take := needed
		if take > len(collected) {
			take = len(collected)
		}

		accepted := 0
		for _, sm := range collected[:take] {
			if p.isCancelled() {
				break
			}
			p.accept(sm)
			accepted++
			results = append(results, sm)
			if p.found.Load() >= int64(numResults) {
				break
			}
		}
		wipeAll(collected[accepted:])
	}
	return results
}

// findBalanced spreads accepted matches across patterns. The per-pattern
// cap is 1 + numResults/distinct, where distinct is the number of
// patterns matched so far; the denominator grows as new patterns are
// first discovered, so early patterns can accumulate more matches
// before the cap tightens.
func (p *Processor) findBalanced(m *matcher.PatternMatcher, wordCount, numResults, addressesPerSeed int) []secureMatch {
	results := make([]secureMatch, 0, numResults)
	tally := make(map[string]int)

	for p.found.Load() < int64(numResults) && !p.isCancelled() {
		collected, size := p.runBatch(m, wordCount, numResults, addressesPerSeed, true)
		p.tracker.RecordProcessed(size, size*addressesPerSeed)

		// Acceptance runs on this goroutine only, so the tally
		// check-and-increment is serialized by construction.
		for i, sm := range collected {
			if p.isCancelled() || p.found.Load() >= int64(numResults) {
				wipeAll(collected[i:])
				break
			}

			if m.HasMultiplePatterns() {
				distinct := len(tally)
				if _, seen := tally[sm.pattern]; !seen {
					distinct++
				}
				limit := patternCap(numResults, distinct)
				if tally[sm.pattern] >= limit && int(p.found.Load()) >= distinct {
					sm.seed.Wipe()
					continue
				}
			}

			tally[sm.pattern]++
			p.accept(sm)
			results = append(results, sm)
		}
	}
	return results
}

// patternCap computes the per-pattern acceptance cap for balanced mode.
func patternCap(numResults, distinct int) int {
	if distinct < 1 {
		distinct = 1
	}
	return 1 + numResults/distinct
}

// accept records one match: bumps the found count, fires the result
// callback if registered, and emits the real-time match notification
// (always for the first ten matches, then every tenth).
func (p *Processor) accept(sm secureMatch) {
	total := p.found.Add(1)

	p.cbMu.Lock()
	cb := p.resultCB
	p.cbMu.Unlock()
	if cb != nil {
		cb(sm.seed.AsString(), sm.address, sm.pattern, sm.index, sm.wordCount)
	}

	if total <= 10 || total%10 == 0 {
		p.logger.Info("match found",
			"n", total,
			"pattern", sm.pattern,
			"address", sm.address,
			"index", sm.index,
			"word_count", sm.wordCount)
	}
}

// runBatch claims the next batch, parallel-maps it across the worker
// pool and returns the collected matches plus the batch size that was
// processed. Workers keep per-worker local buffers merged only at the
// batch boundary.
func (p *Processor) runBatch(m *matcher.PatternMatcher, wordCount, numResults, addressesPerSeed int, evaluateAll bool) ([]secureMatch, int) {
	batchNum := p.controller.NextBatch()
	if p.controller.ShouldAdjust(batchNum) {
		p.controller.Adjust()
	}
	size := p.controller.Size()

	chunk := (size + p.workers - 1) / p.workers

	var mu sync.Mutex
	var collected []secureMatch

	var g errgroup.Group
	for w := 0; w < p.workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > size {
			hi = size
		}
		if lo >= hi {
			break
		}
		worker := w
		g.Go(func() error {
			start := time.Now()
			var local []secureMatch
			for i := lo; i < hi; i++ {
				if p.isCancelled() || p.found.Load() >= int64(numResults) {
					break
				}
				local = append(local, p.searchOne(m, wordCount, addressesPerSeed, evaluateAll)...)
			}
			p.controller.RecordDuration(worker, time.Since(start))
			if len(local) > 0 {
				mu.Lock()
				collected = append(collected, local...)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait() // workers never return errors; failed units are discarded

	return collected, size
}

// searchOne generates a single candidate, derives its addresses and
// returns the matching ones. With evaluateAll false it returns at most
// the first match. Derivation failure discards the candidate; the next
// unit proceeds independently.
func (p *Processor) searchOne(m *matcher.PatternMatcher, wordCount, addressesPerSeed int, evaluateAll bool) []secureMatch {
	seed, actualWords, err := p.provider.Generate(wordCount)
	if err != nil {
		p.logger.Debug("mnemonic generation failed", "error", err)
		return nil
	}
	defer seed.Wipe()

	addrs, err := p.deriver.Derive(seed.AsString(), addressesPerSeed)
	if err != nil {
		p.logger.Debug("derivation failed, candidate discarded", "error", err)
		return nil
	}

	var out []secureMatch
	for _, a := range addrs {
		pattern, ok := m.Match(a.Value)
		if !ok {
			continue
		}
		out = append(out, secureMatch{
			seed:      seed.Clone(),
			address:   a.Value,
			pattern:   pattern,
			index:     a.Index,
			wordCount: actualWords,
		})
		if !evaluateAll {
			break
		}
	}
	return out
}

func wipeAll(matches []secureMatch) {
	for _, sm := range matches {
		sm.seed.Wipe()
	}
}
