// Package aggregate groups benchmark results by an arbitrary subset of
// their dimensions (dataset, vendor, model, variant, temperature) and
// computes per-group statistics and calibration bundles, publishing
// stable, diffable JSON (sorted keys, fixed decimal precision).
package aggregate

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/alexandru-savinov/cbmbench/internal/calibration"
	"github.com/alexandru-savinov/cbmbench/internal/engine"
)

// Dimension names a field results can be grouped by.
type Dimension string

const (
	Dataset     Dimension = "dataset"
	Vendor      Dimension = "vendor"
	Model       Dimension = "model"
	Variant     Dimension = "variant"
	Temperature Dimension = "temperature"
)

// AllDimensions lists every supported grouping dimension, in the canonical
// order used to build a group key.
var AllDimensions = []Dimension{Dataset, Vendor, Model, Variant, Temperature}

// roundPrecision is the number of decimal places kept on every published
// metric, so exports diff cleanly run over run.
const roundPrecision = 4

// Metrics is the per-group statistics bundle, including the full
// calibration bundle (ECE, Brier, overconfidence rate) alongside the
// count/score/confidence/accuracy summary.
type Metrics struct {
	Count              int     `json:"count"`
	MeanScore          float64 `json:"mean_score"`
	MeanConfidence     float64 `json:"mean_confidence"`
	Accuracy           float64 `json:"accuracy"`
	ECE                float64 `json:"ece"`
	Brier              float64 `json:"brier"`
	OverconfidenceRate float64 `json:"overconfidence_rate"`
}

// Group is one published slice: its key values, its statistics, and its
// calibration bundle.
type Group struct {
	GroupKey    map[string]string  `json:"group_key"`
	Metrics     Metrics            `json:"metrics"`
	Reliability []calibration.ReliabilityBin `json:"reliability"`
}

func dimensionValue(r engine.Result, d Dimension) string {
	switch d {
	case Dataset:
		return r.Dataset
	case Vendor:
		return r.Vendor
	case Model:
		return r.Model
	case Variant:
		return r.Variant
	case Temperature:
		return strconv.FormatFloat(r.Temperature, 'g', -1, 64)
	default:
		return ""
	}
}

// GroupBy partitions results by the given dimensions (in any order; the
// published group key always lists them in AllDimensions order) and
// computes one Group per distinct combination of values. Results lacking
// a score (ambiguous-dataset results) are excluded from accuracy/score
// aggregation but still contribute their confidence to calibration; a
// group with no scored results reports zero accuracy/mean score.
func GroupBy(results []engine.Result, dims []Dimension, nBins int) []Group {
	type bucket struct {
		key        map[string]string
		confidence []float64
		// calCorrect parallels confidence; unscored results count as false.
		calCorrect []bool
		correct    []bool
		scores     []float64
		scoredN    int
	}

	buckets := make(map[string]*bucket)
	var order []string

	ordered := orderDimensions(dims)

	for _, r := range results {
		keyParts := make(map[string]string, len(ordered))
		var keyID string
		for _, d := range ordered {
			v := dimensionValue(r, d)
			keyParts[string(d)] = v
			keyID += string(d) + "=" + v + "|"
		}

		b, ok := buckets[keyID]
		if !ok {
			b = &bucket{key: keyParts}
			buckets[keyID] = b
			order = append(order, keyID)
		}

		b.confidence = append(b.confidence, r.ConfidenceNormalized)
		if r.IsCorrect != nil && r.Score != nil {
			b.correct = append(b.correct, *r.IsCorrect)
			b.scores = append(b.scores, *r.Score)
			b.scoredN++
			b.calCorrect = append(b.calCorrect, *r.IsCorrect)
		} else {
			// An unscored (ambiguous) result has no correctness signal; pad
			// with false so its confidence still lands in a bin.
			b.calCorrect = append(b.calCorrect, false)
		}
	}

	sort.Strings(order)

	groups := make([]Group, 0, len(order))
	for _, keyID := range order {
		b := buckets[keyID]

		meanScore := 0.0
		accuracy := 0.0
		if b.scoredN > 0 {
			meanScore = mean(b.scores)
			accuracy = fraction(b.correct)
		}

		bundle := calibration.Compute(b.confidence, b.calCorrect, nBins)

		groups = append(groups, Group{
			GroupKey: b.key,
			Metrics: Metrics{
				Count:              len(b.confidence),
				MeanScore:          round(meanScore),
				MeanConfidence:     round(mean(b.confidence)),
				Accuracy:           round(accuracy),
				ECE:                round(bundle.ECE),
				Brier:              round(bundle.Brier),
				OverconfidenceRate: round(bundle.OverconfidenceRate),
			},
			Reliability: bundle.Reliability,
		})
	}

	return groups
}

func orderDimensions(dims []Dimension) []Dimension {
	want := make(map[Dimension]bool, len(dims))
	for _, d := range dims {
		want[d] = true
	}
	var ordered []Dimension
	for _, d := range AllDimensions {
		if want[d] {
			ordered = append(ordered, d)
		}
	}
	return ordered
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func fraction(values []bool) float64 {
	if len(values) == 0 {
		return 0
	}
	var n int
	for _, v := range values {
		if v {
			n++
		}
	}
	return float64(n) / float64(len(values))
}

func round(v float64) float64 {
	scale := math.Pow(10, float64(roundPrecision))
	return math.Round(v*scale) / scale
}

// FileName builds a stable, slicing-specific file name for a group of
// dimensions, e.g. "by_dataset_vendor.json".
func FileName(dims []Dimension) string {
	ordered := orderDimensions(dims)
	name := "by"
	for _, d := range ordered {
		name += "_" + string(d)
	}
	return fmt.Sprintf("%s.json", name)
}
