package processor

import "github.com/ergohunt/ergohunt/pkg/securemem"

// Address is one derived address and the derivation index it came from.
type Address struct {
	Value string
	Index uint32
}

// MnemonicProvider generates candidate seed phrases. wordCount must be
// one of 0, 12, 15 or 24; 0 selects uniformly among {12, 15, 24}. The
// returned count is the actual word count of the phrase.
type MnemonicProvider interface {
	Generate(wordCount int) (*securemem.Seed, int, error)
}

// AddressDeriver derives count addresses from a seed phrase along a
// fixed hierarchical path, ordered by derivation index 0..count. It
// must be a pure function of (phrase, count).
type AddressDeriver interface {
	Derive(phrase string, count int) ([]Address, error)
}

// AccelerationOracle supplies hardware batch-sizing hints.
type AccelerationOracle interface {
	// OptimalBatchWidth returns the SIMD alignment width, minimum 1.
	OptimalBatchWidth() int
	// OptimalBatchCount returns the default initial batch size.
	OptimalBatchCount() int
}

// MatchResult is one accepted vanity match with the seed phrase already
// exposed to a plain string. Results are only converted to this form at
// the final search boundary.
type MatchResult struct {
	Mnemonic  string
	Address   string
	Pattern   string
	Index     uint32
	WordCount int
}

// ResultCallback receives each accepted match in real time, invoked
// synchronously on the discovering goroutine. Implementations must be
// safe for concurrent calls.
type ResultCallback func(mnemonic, address, pattern string, index uint32, wordCount int)

// secureMatch is the in-flight form of a match: the seed stays inside
// its zero-on-release container until final delivery.
type secureMatch struct {
	seed      *securemem.Seed
	address   string
	pattern   string
	index     uint32
	wordCount int
}
