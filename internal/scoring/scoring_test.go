package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiscreteCBMScore(t *testing.T) {
	d := DiscreteCBM{}

	assert.Equal(t, 1.0, d.Score(1, true))
	assert.Equal(t, 0.0, d.Score(1, false))
	assert.Equal(t, 1.5, d.Score(2, true))
	assert.Equal(t, -0.5, d.Score(2, false))
	assert.Equal(t, 2.0, d.Score(3, true))
	assert.Equal(t, -2.0, d.Score(3, false))
}

func TestDiscreteCBMScoreClampsOutOfRange(t *testing.T) {
	d := DiscreteCBM{}

	assert.Equal(t, 1.0, d.Score(0, true), "below range clamps to level 1")
	assert.Equal(t, 2.0, d.Score(5, true), "above range clamps to level 3")
	assert.Equal(t, 1.5, d.Score(2.4, true), "rounds to nearest level")
}

func TestDiscreteCBMNormalize(t *testing.T) {
	d := DiscreteCBM{}

	assert.Equal(t, 0.250, d.Normalize(1))
	assert.Equal(t, 0.625, d.Normalize(2))
	assert.Equal(t, 0.875, d.Normalize(3))
}

func TestContinuousHLCCScore(t *testing.T) {
	h := ContinuousHLCC{}

	assert.InDelta(t, 1.0, h.Score(0, true), 1e-9)
	assert.InDelta(t, 2.0, h.Score(1, true), 1e-9)
	assert.InDelta(t, 1.85, h.Score(0.85, true), 1e-9)

	assert.InDelta(t, 0.0, h.Score(0, false), 1e-9)
	assert.InDelta(t, -2.0, h.Score(1, false), 1e-9)
	assert.InDelta(t, -0.5, h.Score(0.5, false), 1e-9)
}

func TestContinuousHLCCScoreClampsOutOfRange(t *testing.T) {
	h := ContinuousHLCC{}

	assert.InDelta(t, 1.0, h.Score(-0.4, true), 1e-9)
	assert.InDelta(t, 2.0, h.Score(1.4, true), 1e-9)
}

func TestContinuousHLCCNormalizeIsIdentityWithinRange(t *testing.T) {
	h := ContinuousHLCC{}

	assert.Equal(t, 0.42, h.Normalize(0.42))
	assert.Equal(t, 0.0, h.Normalize(-1))
	assert.Equal(t, 1.0, h.Normalize(2))
}

func TestContinuousHLCCExpectedScoreMaximizedAtHalfProbability(t *testing.T) {
	h := ContinuousHLCC{}
	expected := func(p, x float64) float64 {
		return p*h.Score(x, true) + (1-p)*h.Score(x, false)
	}

	for _, p := range []float64{0, 0.25, 0.5, 0.75, 1.0} {
		best := expected(p, p/2)
		for x := 0.0; x <= 1.0; x += 0.01 {
			assert.LessOrEqual(t, expected(p, x), best+1e-9, "p=%v x=%v should not beat x*=p/2", p, x)
		}
	}
}

func TestForVariantDispatch(t *testing.T) {
	assert.IsType(t, DiscreteCBM{}, ForVariant("discrete_combined"))
	assert.IsType(t, DiscreteCBM{}, ForVariant("discrete_linear"))
	assert.IsType(t, ContinuousHLCC{}, ForVariant("hlcc_combined"))
	assert.IsType(t, ContinuousHLCC{}, ForVariant("hlcc_linear"))
}
