package securemem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedAsString(t *testing.T) {
	s := NewSeedString("abandon ability able")
	assert.Equal(t, "abandon ability able", s.AsString())
	assert.False(t, s.Wiped())
}

func TestWipeZeroesBackingBuffer(t *testing.T) {
	s := NewSeedString("legal winner thank year wave")
	backing := s.Bytes()

	s.Wipe()

	for i, b := range backing {
		require.Zerof(t, b, "byte %d not zeroed", i)
	}
	assert.True(t, s.Wiped())
	assert.Empty(t, s.AsString())
}

func TestWipeIsIdempotent(t *testing.T) {
	s := NewSeedString("zoo zoo zoo")
	s.Wipe()
	s.Wipe()
	assert.True(t, s.Wiped())
}

func TestExposeReturnsPlainValueAndWipes(t *testing.T) {
	s := NewSeedString("letter advice cage")
	backing := s.Bytes()

	out := s.Expose()

	assert.Equal(t, "letter advice cage", out)
	for i, b := range backing {
		require.Zerof(t, b, "byte %d not zeroed after expose", i)
	}
	assert.Empty(t, s.Expose())
}

func TestCloneIsIndependentlyOwned(t *testing.T) {
	s := NewSeedString("myth like bonus")
	dup := s.Clone()

	s.Wipe()

	// The clone survives the original's release.
	assert.Equal(t, "myth like bonus", dup.AsString())
	for _, b := range s.Bytes() {
		require.Zero(t, b)
	}

	dup.Wipe()
	for _, b := range dup.Bytes() {
		require.Zero(t, b)
	}
}

func TestCloneOfWipedSeed(t *testing.T) {
	s := NewSeedString("abandon")
	s.Wipe()
	dup := s.Clone()
	assert.True(t, dup.Wiped())
	assert.Empty(t, dup.AsString())
}
