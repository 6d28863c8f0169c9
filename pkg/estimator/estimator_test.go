package estimator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvalidCharsMakePatternImpossible(t *testing.T) {
	e := ForPattern("c00l", false)
	assert.True(t, e.Impossible())
	assert.Equal(t, []rune{'0', 'l'}, e.InvalidChars)
	assert.True(t, math.IsInf(e.AttemptsNeeded, 1))
	assert.True(t, math.IsInf(e.TimeAtMin, 1))
}

func TestStartPatternAttempts(t *testing.T) {
	// One start character: 5 alternatives, times the safety margin.
	e := ForPattern("e", true)
	assert.InDelta(t, 5*1.2, e.AttemptsNeeded, 1e-9)

	// Each further character multiplies by 58.
	e2 := ForPattern("er", true)
	assert.InDelta(t, e.AttemptsNeeded*58, e2.AttemptsNeeded, 1e-6)
}

func TestAnywherePatternCheaperThanStart(t *testing.T) {
	anywhere := ForPattern("ergo", false)
	start := ForPattern("ergo", true)
	assert.Less(t, anywhere.AttemptsNeeded, start.AttemptsNeeded)
}

func TestAttemptsGrowWithLength(t *testing.T) {
	prev := 0.0
	for _, p := range []string{"e", "er", "erg", "ergo"} {
		e := ForPattern(p, false)
		require.Greater(t, e.AttemptsNeeded, prev)
		prev = e.AttemptsNeeded
	}
}

func TestTimeEstimatesUseSpeeds(t *testing.T) {
	e := ForPattern("ergo", false)
	assert.InDelta(t, e.AttemptsNeeded/MinSpeed, e.TimeAtMin, 1e-9)
	assert.InDelta(t, e.AttemptsNeeded/MaxSpeed, e.TimeAtMax, 1e-9)
	assert.Less(t, e.TimeAtMax, e.TimeAtMin)
}

func TestFormatTime(t *testing.T) {
	assert.Equal(t, "less than a second", FormatTime(0.4))
	assert.Equal(t, "30.0 seconds", FormatTime(30))
	assert.Equal(t, "2.0 minutes", FormatTime(120))
	assert.Equal(t, "3.0 hours", FormatTime(3*3600))
	assert.Equal(t, "2.5 days", FormatTime(2.5*86400))
	assert.Equal(t, "impossible - pattern contains invalid characters", FormatTime(math.Inf(1)))
}
