package calibration

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestECEPerfectCalibrationIsZero(t *testing.T) {
	// Each bin's mean confidence equals its mean accuracy exactly.
	confidences := []float64{0.5, 0.5, 1.0}
	correctness := []bool{true, false, true}

	// bin 5: two 0.5 samples, 1/2 correct -> acc 0.5, conf 0.5
	// bin 9: one 1.0 sample, correct -> acc 1.0, conf 1.0
	ece := ECE(confidences, correctness, 10)
	assert.Equal(t, 0.0, ece)
	assert.Equal(t, 0.0, OverconfidenceRate(confidences, correctness, 10))
}

func TestECEEmptyInputIsZero(t *testing.T) {
	assert.Equal(t, 0.0, ECE(nil, nil, 10))
}

func TestBrierScoreBounds(t *testing.T) {
	confidences := []float64{1.0, 0.0}
	correctness := []bool{true, false}
	assert.Equal(t, 0.0, Brier(confidences, correctness), "perfectly confident and correct/incorrect scores zero Brier")

	confidences = []float64{0.0, 1.0}
	assert.Equal(t, 1.0, Brier(confidences, correctness), "maximally wrong confidence scores worst-case Brier")
}

func TestOverconfidenceRate(t *testing.T) {
	// confidence 0.9 but only correct half the time in that bin -> overconfident.
	confidences := []float64{0.9, 0.9}
	correctness := []bool{true, false}
	rate := OverconfidenceRate(confidences, correctness, 10)
	assert.Equal(t, 1.0, rate)
}

func TestReliabilityDiagramBinCountAndEmptyBins(t *testing.T) {
	confidences := []float64{0.05, 1.0}
	correctness := []bool{true, true}
	diagram := ReliabilityDiagram(confidences, correctness, 10)

	assert.Len(t, diagram, 10)
	assert.Equal(t, 1, diagram[0].Count)
	assert.Equal(t, 1, diagram[9].Count, "confidence 1.0 lands in the last bin, not an 11th bin")
	assert.Nil(t, diagram[5].Accuracy, "untouched bins report nil accuracy")
}

func TestComputeDefaultsBinsWhenNonPositive(t *testing.T) {
	bundle := Compute([]float64{0.5}, []bool{true}, 0)
	assert.Len(t, bundle.Reliability, DefaultBins)
}
