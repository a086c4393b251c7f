package ambiguous

import (
	"testing"

	"github.com/alexandru-savinov/cbmbench/internal/engine"
	"github.com/alexandru-savinov/cbmbench/internal/question"
	"github.com/stretchr/testify/assert"
)

func expectedConfidence(v float64) *float64 { return &v }

func TestComputeCalibrationGap(t *testing.T) {
	index := map[string]question.Question{
		"q1": {ID: "q1", ExpectedConfidence: expectedConfidence(0.2)},
		"q2": {ID: "q2", ExpectedConfidence: expectedConfidence(0.3)},
	}
	results := []engine.Result{
		{QuestionID: "q1", ConfidenceNormalized: 0.8},
		{QuestionID: "q2", ConfidenceNormalized: 0.4},
	}

	metrics := Compute(results, index)

	assert.Equal(t, 2, metrics.NQuestions)
	assert.Equal(t, 0.6, metrics.AvgConfidenceOnAmbiguous)
	assert.Equal(t, 0.25, metrics.IdealAvgConfidence)
	assert.Equal(t, 0.35, metrics.CalibrationGap)
	assert.Equal(t, 1.0, metrics.OverconfidenceRate, "both results exceeded their expected confidence")
}

func TestComputeFallsBackToDefaultExpectedConfidence(t *testing.T) {
	results := []engine.Result{{QuestionID: "unknown", ConfidenceNormalized: 0.25}}

	metrics := Compute(results, map[string]question.Question{})

	assert.Equal(t, 0.25, metrics.IdealAvgConfidence)
	assert.Equal(t, 0.0, metrics.CalibrationGap)
	assert.Equal(t, 0.0, metrics.OverconfidenceRate)
}

func TestComputeEmptyResults(t *testing.T) {
	assert.Equal(t, Metrics{}, Compute(nil, nil))
}
