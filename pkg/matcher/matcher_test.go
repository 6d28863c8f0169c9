package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateEmptyPatternSet(t *testing.T) {
	m := New(nil, false, false, false)
	assert.ErrorIs(t, m.Validate(), ErrEmptyPatternSet)
}

func TestValidateStartPatterns(t *testing.T) {
	// 'x' cannot follow the fixed '9' of a P2PK address.
	m := New([]string{"xabc"}, false, true, false)
	err := m.Validate()
	require.Error(t, err)
	var invalid *InvalidStartPatternError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "xabc", invalid.Pattern)
	assert.Equal(t, 'x', invalid.Char)

	// 'e' is in the allowed set.
	m = New([]string{"eabc"}, false, true, false)
	assert.NoError(t, m.Validate())
}

func TestValidateStartOnlyChecksFirstChar(t *testing.T) {
	for _, p := range []string{"e", "fern", "gold", "hat", "ice"} {
		m := New([]string{p}, false, true, false)
		assert.NoErrorf(t, m.Validate(), "pattern %q", p)
	}
}

func TestMatchStartStripsLeadingChar(t *testing.T) {
	m := New([]string{"xyz"}, false, true, false)

	// Addresses of length <= 1 never match in start mode.
	_, ok := m.Match("")
	assert.False(t, ok)
	_, ok = m.Match("9")
	assert.False(t, ok)

	// "9eXYZ123" does not start-match "xyz": after stripping '9' the
	// body is "eXYZ123".
	_, ok = m.Match("9eXYZ123")
	assert.False(t, ok)

	// "9XYZ123" does: the stripped body starts with "xyz"
	// case-insensitively.
	pattern, ok := m.Match("9XYZ123")
	require.True(t, ok)
	assert.Equal(t, "xyz", pattern)
}

func TestMatchStartCaseSensitive(t *testing.T) {
	m := New([]string{"XYZ"}, true, true, false)
	_, ok := m.Match("9xyz123")
	assert.False(t, ok)
	_, ok = m.Match("9XYZ123")
	assert.True(t, ok)
}

func TestMatchEnd(t *testing.T) {
	m := New([]string{"Ergo"}, false, false, true)
	pattern, ok := m.Match("9xxxxERGO")
	require.True(t, ok)
	assert.Equal(t, "ergo", pattern)
	_, ok = m.Match("9ergoXXXX")
	assert.False(t, ok)
}

func TestMatchAnywhere(t *testing.T) {
	m := New([]string{"coin"}, false, false, false)
	_, ok := m.Match("9abCOINxyz")
	assert.True(t, ok)
	_, ok = m.Match("9abcxyz")
	assert.False(t, ok)
}

func TestMatchInsertionOrderTieBreak(t *testing.T) {
	// Both patterns occur in the address; the first in insertion order
	// wins.
	m := New([]string{"bb", "aa"}, false, false, false)
	pattern, ok := m.Match("9aabb")
	require.True(t, ok)
	assert.Equal(t, "bb", pattern)

	m = New([]string{"aa", "bb"}, false, false, false)
	pattern, ok = m.Match("9aabb")
	require.True(t, ok)
	assert.Equal(t, "aa", pattern)
}

func TestPatternAccessors(t *testing.T) {
	m := New([]string{"A", "b"}, false, false, false)
	assert.True(t, m.HasMultiplePatterns())
	assert.Equal(t, 2, m.PatternCount())
	assert.Equal(t, []string{"a", "b"}, m.Patterns())

	single := New([]string{"a"}, false, false, false)
	assert.False(t, single.HasMultiplePatterns())
}

func TestIsBase58Char(t *testing.T) {
	for _, c := range "19AHZahz" {
		assert.Truef(t, IsBase58Char(c), "char %q", c)
	}
	for _, c := range "0OIl!-" {
		assert.Falsef(t, IsBase58Char(c), "char %q", c)
	}
}

func TestInvalidBase58Chars(t *testing.T) {
	assert.Empty(t, InvalidBase58Chars("ergo9"))
	assert.Equal(t, []rune{'0', 'l'}, InvalidBase58Chars("c00l"))
}
