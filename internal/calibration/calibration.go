// Package calibration computes calibration metrics (ECE, Brier,
// overconfidence rate, reliability diagrams) over normalized confidence
// and correctness sequences.
package calibration

// DefaultBins is the bin count used unless a caller overrides it.
const DefaultBins = 10

// ReliabilityBin is one bin of a reliability diagram. Accuracy and
// Confidence are nil for empty bins.
type ReliabilityBin struct {
	BinCenter  float64  `json:"bin_center"`
	Accuracy   *float64 `json:"accuracy"`
	Confidence *float64 `json:"confidence"`
	Count      int      `json:"count"`
}

// bin assigns each sample to a bin index, with the uppermost boundary
// inclusive so confidence == 1.0 lands in the last bin.
func bin(confidences []float64, nBins int) [][]int {
	bins := make([][]int, nBins)
	for i := range bins {
		bins[i] = nil
	}
	for j, c := range confidences {
		idx := int(c * float64(nBins))
		if idx >= nBins {
			idx = nBins - 1
		}
		if idx < 0 {
			idx = 0
		}
		bins[idx] = append(bins[idx], j)
	}
	return bins
}

func meanAccuracy(indices []int, correctness []bool) float64 {
	if len(indices) == 0 {
		return 0
	}
	var correct int
	for _, j := range indices {
		if correctness[j] {
			correct++
		}
	}
	return float64(correct) / float64(len(indices))
}

func meanConfidence(indices []int, confidences []float64) float64 {
	if len(indices) == 0 {
		return 0
	}
	var sum float64
	for _, j := range indices {
		sum += confidences[j]
	}
	return sum / float64(len(indices))
}

// ECE computes the Expected Calibration Error: the mass-weighted mean
// absolute gap between bin accuracy and bin confidence.
func ECE(confidences []float64, correctness []bool, nBins int) float64 {
	if len(confidences) == 0 {
		return 0
	}
	n := float64(len(confidences))
	var ece float64
	for _, indices := range bin(confidences, nBins) {
		if len(indices) == 0 {
			continue
		}
		acc := meanAccuracy(indices, correctness)
		conf := meanConfidence(indices, confidences)
		diff := conf - acc
		if diff < 0 {
			diff = -diff
		}
		ece += (float64(len(indices)) / n) * diff
	}
	return ece
}

// Brier computes the Brier score: mean squared error between confidence
// and the 0/1 correctness indicator.
func Brier(confidences []float64, correctness []bool) float64 {
	if len(confidences) == 0 {
		return 0
	}
	var sum float64
	for i, c := range confidences {
		target := 0.0
		if correctness[i] {
			target = 1.0
		}
		d := c - target
		sum += d * d
	}
	return sum / float64(len(confidences))
}

// OverconfidenceRate computes the fraction of non-empty bins whose mean
// confidence strictly exceeds their mean accuracy.
func OverconfidenceRate(confidences []float64, correctness []bool, nBins int) float64 {
	if len(confidences) == 0 {
		return 0
	}
	var overconfident, nonEmpty int
	for _, indices := range bin(confidences, nBins) {
		if len(indices) == 0 {
			continue
		}
		nonEmpty++
		if meanConfidence(indices, confidences) > meanAccuracy(indices, correctness) {
			overconfident++
		}
	}
	if nonEmpty == 0 {
		return 0
	}
	return float64(overconfident) / float64(nonEmpty)
}

// ReliabilityDiagram computes per-bin (center, accuracy, confidence, count)
// tuples for plotting. Empty input yields an empty diagram.
func ReliabilityDiagram(confidences []float64, correctness []bool, nBins int) []ReliabilityBin {
	if len(confidences) == 0 {
		return nil
	}
	bins := bin(confidences, nBins)
	result := make([]ReliabilityBin, nBins)
	for i, indices := range bins {
		center := (float64(i) + 0.5) / float64(nBins)
		if len(indices) == 0 {
			result[i] = ReliabilityBin{BinCenter: center, Count: 0}
			continue
		}
		acc := meanAccuracy(indices, correctness)
		conf := meanConfidence(indices, confidences)
		result[i] = ReliabilityBin{
			BinCenter:  center,
			Accuracy:   &acc,
			Confidence: &conf,
			Count:      len(indices),
		}
	}
	return result
}

// Bundle is the full calibration summary for one slice of results.
type Bundle struct {
	ECE                float64          `json:"ece"`
	Brier              float64          `json:"brier"`
	OverconfidenceRate float64          `json:"overconfidence_rate"`
	Reliability        []ReliabilityBin `json:"reliability"`
}

// Compute builds the full Bundle for one (confidences, correctness) pair.
func Compute(confidences []float64, correctness []bool, nBins int) Bundle {
	if nBins <= 0 {
		nBins = DefaultBins
	}
	return Bundle{
		ECE:                ECE(confidences, correctness, nBins),
		Brier:              Brier(confidences, correctness),
		OverconfidenceRate: OverconfidenceRate(confidences, correctness, nBins),
		Reliability:        ReliabilityDiagram(confidences, correctness, nBins),
	}
}
