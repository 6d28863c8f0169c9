// Package ergo implements the cryptographic collaborators for the
// search engine: BIP-39 mnemonic generation and EIP-3 address
// derivation for the Ergo blockchain.
package ergo

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/tyler-smith/go-bip39"

	"github.com/ergohunt/ergohunt/pkg/securemem"
)

// mixedWordCounts are the choices when the caller requests a mixed
// (word count 0) search.
var mixedWordCounts = []int{12, 15, 24}

// entropyBits maps a word count to the BIP-39 entropy size.
var entropyBits = map[int]int{
	12: 128,
	15: 160,
	24: 256,
}

// Mnemonic generates random BIP-39 seed phrases. It is stateless and
// safe for concurrent use.
type Mnemonic struct{}

// NewMnemonic creates a mnemonic provider backed by the OS entropy
// source.
func NewMnemonic() *Mnemonic {
	return &Mnemonic{}
}

// Generate returns a fresh seed phrase with the requested word count
// (12, 15 or 24) inside a zero-on-release container, plus the actual
// word count. A word count of 0 picks uniformly among 12, 15 and 24.
func (m *Mnemonic) Generate(wordCount int) (*securemem.Seed, int, error) {
	actual := wordCount
	if actual == 0 {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(mixedWordCounts))))
		if err != nil {
			return nil, 0, fmt.Errorf("ergo: selecting word count: %w", err)
		}
		actual = mixedWordCounts[n.Int64()]
	}

	bits, ok := entropyBits[actual]
	if !ok {
		return nil, 0, fmt.Errorf("ergo: unsupported word count %d (want 0, 12, 15 or 24)", wordCount)
	}

	entropy, err := bip39.NewEntropy(bits)
	if err != nil {
		return nil, 0, fmt.Errorf("ergo: generating entropy: %w", err)
	}
	phrase, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return nil, 0, fmt.Errorf("ergo: encoding mnemonic: %w", err)
	}
	zero(entropy)

	return securemem.NewSeedString(phrase), actual, nil
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
