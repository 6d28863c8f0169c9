package accel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectReturnsPositiveHints(t *testing.T) {
	o := Detect()
	assert.GreaterOrEqual(t, o.OptimalBatchWidth(), 1)
	assert.GreaterOrEqual(t, o.OptimalBatchCount(), 1)
}

func TestBatchCountIsAligned(t *testing.T) {
	o := Detect()
	assert.Zero(t, o.OptimalBatchCount()%o.OptimalBatchWidth())
}

func TestFeaturesNonEmptyString(t *testing.T) {
	o := Detect()
	assert.NotEmpty(t, o.Features())
}
