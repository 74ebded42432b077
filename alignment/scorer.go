// Package alignment compares inferred profiles against reference profiles:
// bounded alignment scores, baseline bias rankings, and stereotype density.
package alignment

import (
	"math"

	"github.com/kabiwabi/worldWiseAI/core"
)

const (
	// MaxScore is the alignment score for a perfect match.
	MaxScore = 10.0
	// DefaultSensitivity maps the maximum possible RMS distance (4.0 on the
	// [-2,+2] scale) to a score of exactly 0.
	DefaultSensitivity = 2.5
)

// Result is one bounded alignment score with the underlying distance it was
// derived from. Write-once; the caller attaches it to a (group, reference,
// scenario) bucket.
type Result struct {
	Reference  string           `json:"reference"`
	Score      float64          `json:"score"`    // [0, 10], 10 = perfect match
	Distance   float64          `json:"distance"` // RMS difference over Dimensions
	Dimensions []core.Dimension `json:"dimensions"`
}

// Scorer converts profile distances into bounded alignment scores.
type Scorer struct {
	// Sensitivity scales distance into score loss; zero means
	// DefaultSensitivity.
	Sensitivity float64
}

func (s Scorer) sensitivity() float64 {
	if s.Sensitivity > 0 {
		return s.Sensitivity
	}
	return DefaultSensitivity
}

// Distance returns the root-mean-square difference between expected and
// actual over the given dimensions only. Both profiles must score every
// requested dimension; an empty dimension list is core.ErrNoData.
func Distance(expected, actual core.Profile, dims []core.Dimension) (float64, error) {
	if len(dims) == 0 {
		return 0, core.ErrNoData
	}
	var sum float64
	for _, d := range dims {
		e, err := expected.Score(d)
		if err != nil {
			return 0, err
		}
		a, err := actual.Score(d)
		if err != nil {
			return 0, err
		}
		diff := e - a
		sum += diff * diff
	}
	return math.Sqrt(sum / float64(len(dims))), nil
}

// Score compares an inferred profile to a reference over the caller-supplied
// relevant dimensions: score = max(0, 10 - distance*sensitivity). Identity
// on all relevant dimensions yields exactly MaxScore; the score is monotone
// non-increasing in distance and clamps at 0.
func (s Scorer) Score(ref core.Reference, actual core.Profile, dims []core.Dimension) (Result, error) {
	d, err := Distance(ref.Profile, actual, dims)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Reference:  ref.Name,
		Score:      s.fromDistance(d),
		Distance:   d,
		Dimensions: append([]core.Dimension(nil), dims...),
	}, nil
}

// ScoreDimension is Score restricted to a single dimension, for diagnostic
// breakdowns.
func (s Scorer) ScoreDimension(ref core.Reference, actual core.Profile, dim core.Dimension) (Result, error) {
	return s.Score(ref, actual, []core.Dimension{dim})
}

func (s Scorer) fromDistance(d float64) float64 {
	score := MaxScore - d*s.sensitivity()
	if score < 0 {
		return 0
	}
	return score
}
