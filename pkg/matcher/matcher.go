// Package matcher evaluates candidate Ergo addresses against one or
// more user-supplied patterns under a position rule (start, end or
// anywhere) and a case policy.
package matcher

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyPatternSet is returned by Validate when no patterns were
// provided.
var ErrEmptyPatternSet = errors.New("matcher: at least one pattern must be provided")

// startChars are the only characters that can follow the fixed leading
// character of a mainnet P2PK address. Ergo P2PK addresses always start
// with '9' followed by one of these letters, so any other first
// character in a start-mode pattern can never match.
const startChars = "efghi"

// InvalidStartPatternError reports a start-mode pattern whose first
// character can never appear in the matched position.
type InvalidStartPatternError struct {
	Pattern string
	Char    rune
}

func (e *InvalidStartPatternError) Error() string {
	return fmt.Sprintf(
		"matcher: start pattern %q begins with %q; P2PK addresses start with '9' followed by one of e, f, g, h, i, so it can never match",
		e.Pattern, e.Char)
}

// PatternMatcher holds a validated pattern set. It has no mutable state
// after construction and is safe for unsynchronized concurrent reads
// from multiple workers.
type PatternMatcher struct {
	patterns      []string
	caseSensitive bool
	matchStart    bool
	matchEnd      bool
}

// New creates a matcher for the given patterns. Both matchStart and
// matchEnd false means "anywhere". Patterns are case-normalized once
// here when caseSensitive is false; insertion order is preserved and
// decides the match tie-break.
func New(patterns []string, caseSensitive, matchStart, matchEnd bool) *PatternMatcher {
	normalized := make([]string, len(patterns))
	for i, p := range patterns {
		if caseSensitive {
			normalized[i] = p
		} else {
			normalized[i] = strings.ToLower(p)
		}
	}
	return &PatternMatcher{
		patterns:      normalized,
		caseSensitive: caseSensitive,
		matchStart:    matchStart,
		matchEnd:      matchEnd,
	}
}

// Validate checks the pattern set. It must be called (and succeed)
// before the matcher is used in a search.
func (m *PatternMatcher) Validate() error {
	if len(m.patterns) == 0 {
		return ErrEmptyPatternSet
	}
	if m.matchStart {
		for _, p := range m.patterns {
			if p == "" {
				return ErrEmptyPatternSet
			}
			first := rune(p[0])
			if !strings.ContainsRune(startChars, first) {
				return &InvalidStartPatternError{Pattern: p, Char: first}
			}
		}
	}
	return nil
}

// Match tests address against the pattern set and returns the first
// pattern (in insertion order) that satisfies it. Start mode strips the
// address's fixed leading character before comparison; addresses of
// length <= 1 never match in start mode.
func (m *PatternMatcher) Match(address string) (string, bool) {
	switch {
	case m.matchStart:
		if len(address) <= 1 {
			return "", false
		}
		body := m.normalize(address[1:])
		for _, p := range m.patterns {
			if strings.HasPrefix(body, p) {
				return p, true
			}
		}
	case m.matchEnd:
		addr := m.normalize(address)
		for _, p := range m.patterns {
			if strings.HasSuffix(addr, p) {
				return p, true
			}
		}
	default:
		addr := m.normalize(address)
		for _, p := range m.patterns {
			if strings.Contains(addr, p) {
				return p, true
			}
		}
	}
	return "", false
}

func (m *PatternMatcher) normalize(s string) string {
	if m.caseSensitive {
		return s
	}
	return strings.ToLower(s)
}

// HasMultiplePatterns reports whether more than one pattern is set.
// Balanced matching only applies when this is true.
func (m *PatternMatcher) HasMultiplePatterns() bool {
	return len(m.patterns) > 1
}

// PatternCount returns the number of patterns.
func (m *PatternMatcher) PatternCount() int {
	return len(m.patterns)
}

// Patterns returns a copy of the normalized pattern list in insertion
// order.
func (m *PatternMatcher) Patterns() []string {
	out := make([]string, len(m.patterns))
	copy(out, m.patterns)
	return out
}

// MatchStart reports whether the matcher anchors patterns at the start
// of the address body.
func (m *PatternMatcher) MatchStart() bool { return m.matchStart }

// MatchEnd reports whether the matcher anchors patterns at the end of
// the address.
func (m *PatternMatcher) MatchEnd() bool { return m.matchEnd }
