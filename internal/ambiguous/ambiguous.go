// Package ambiguous evaluates results on questions with no single correct
// answer. A well-calibrated model should report low confidence on these;
// the metric of interest is the gap between reported and ideal
// confidence, not correctness.
package ambiguous

import (
	"math"

	"github.com/alexandru-savinov/cbmbench/internal/engine"
	"github.com/alexandru-savinov/cbmbench/internal/question"
)

// defaultExpectedConfidence is used for a question with no
// expected_confidence recorded, matching the source's fallback of 0.25.
const defaultExpectedConfidence = 0.25

// Metrics summarizes calibration behavior over a set of ambiguous-dataset
// results.
type Metrics struct {
	AvgConfidenceOnAmbiguous float64 `json:"avg_confidence_on_ambiguous"`
	IdealAvgConfidence       float64 `json:"ideal_avg_confidence"`
	CalibrationGap           float64 `json:"calibration_gap"`
	OverconfidenceRate       float64 `json:"overconfidence_rate"`
	NQuestions               int     `json:"n_questions"`
}

// Compute evaluates results against the expected confidence recorded on
// each question in index. A result whose question_id has no matching
// entry in index falls back to defaultExpectedConfidence.
func Compute(results []engine.Result, index map[string]question.Question) Metrics {
	if len(results) == 0 {
		return Metrics{}
	}

	var totalConfidence, totalExpected float64
	var overconfident int
	n := len(results)

	for _, r := range results {
		expected := defaultExpectedConfidence
		if q, ok := index[r.QuestionID]; ok && q.ExpectedConfidence != nil {
			expected = *q.ExpectedConfidence
		}
		totalConfidence += r.ConfidenceNormalized
		totalExpected += expected
		if r.ConfidenceNormalized > expected {
			overconfident++
		}
	}

	avgConfidence := totalConfidence / float64(n)
	avgExpected := totalExpected / float64(n)

	return Metrics{
		AvgConfidenceOnAmbiguous: round4(avgConfidence),
		IdealAvgConfidence:       round4(avgExpected),
		CalibrationGap:           round4(avgConfidence - avgExpected),
		OverconfidenceRate:       round4(float64(overconfident) / float64(n)),
		NQuestions:               n,
	}
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
