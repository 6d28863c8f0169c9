// Package estimator predicts the brute-force effort needed to find an
// address matching a pattern, so users can judge a search before
// starting it.
package estimator

import (
	"fmt"
	"math"

	"github.com/ergohunt/ergohunt/pkg/matcher"
)

const (
	// base58Size is the alphabet size each pattern character draws from.
	base58Size = 58.0

	// startAlternatives is how many characters can follow the fixed '9'
	// of a P2PK address.
	startAlternatives = 5.0

	// avgAddressLength approximates a P2PK address for counting the
	// positions an unanchored pattern can occupy.
	avgAddressLength = 51.0

	// safetyMargin pads the estimate; brute force has no upper bound.
	safetyMargin = 1.2
)

// Estimate is the predicted effort for one pattern.
type Estimate struct {
	Pattern        string
	AttemptsNeeded float64
	TimeAtMin      float64 // seconds at MinSpeed
	TimeAtMax      float64 // seconds at MaxSpeed
	InvalidChars   []rune  // non-Base58 characters, if any
}

// Impossible reports whether the pattern can never occur in a valid
// address.
func (e Estimate) Impossible() bool {
	return len(e.InvalidChars) > 0
}

// Speeds used for the human-readable time estimates, in addresses per
// second. Conservative single-machine CPU numbers.
const (
	MinSpeed = 6000.0
	MaxSpeed = 12000.0
)

// ForPattern estimates the attempts and time needed to find pattern.
// isStart indicates the pattern is anchored at the start of the address
// body (after the fixed leading character).
func ForPattern(pattern string, isStart bool) Estimate {
	if invalid := matcher.InvalidBase58Chars(pattern); len(invalid) > 0 {
		return Estimate{
			Pattern:        pattern,
			AttemptsNeeded: math.Inf(1),
			TimeAtMin:      math.Inf(1),
			TimeAtMax:      math.Inf(1),
			InvalidChars:   invalid,
		}
	}

	length := float64(len(pattern))

	var attempts float64
	if isStart {
		// The first body character draws from the 5-letter set, the
		// rest from the full Base58 alphabet.
		attempts = startAlternatives * math.Pow(base58Size, length-1)
	} else {
		// Unanchored patterns get multiple starting positions per
		// address.
		positions := avgAddressLength - length + 1
		if positions < 1 {
			positions = 1
		}
		attempts = math.Pow(base58Size, length) / positions
	}
	attempts *= safetyMargin

	return Estimate{
		Pattern:        pattern,
		AttemptsNeeded: attempts,
		TimeAtMin:      attempts / MinSpeed,
		TimeAtMax:      attempts / MaxSpeed,
	}
}

// FormatTime converts a duration in seconds into a human-readable
// string.
func FormatTime(seconds float64) string {
	switch {
	case math.IsInf(seconds, 1):
		return "impossible - pattern contains invalid characters"
	case seconds < 1:
		return "less than a second"
	case seconds < 60:
		return fmt.Sprintf("%.1f seconds", seconds)
	case seconds < 3600:
		return fmt.Sprintf("%.1f minutes", seconds/60)
	case seconds < 86400:
		return fmt.Sprintf("%.1f hours", seconds/3600)
	default:
		return fmt.Sprintf("%.1f days", seconds/86400)
	}
}
