package alignment

import (
	"math"
	"sort"

	"github.com/kabiwabi/worldWiseAI/core"
)

// RankedReference is one entry of a bias ranking.
type RankedReference struct {
	Name     string  `json:"name"`
	Distance float64 `json:"distance"`
}

// Ranking orders references by ascending distance to an unprompted profile.
// The head is the closest reference. Every configured reference appears
// exactly once; ties keep input order.
type Ranking []RankedReference

// Closest returns the head of the ranking.
func (r Ranking) Closest() RankedReference {
	if len(r) == 0 {
		return RankedReference{}
	}
	return r[0]
}

// Rank computes the RMS distance from the aggregated profile to every
// reference over a fixed dimension set and sorts ascending. This is the
// globally-scoped policy: one dimension set for every reference.
func Rank(actual core.Profile, refs []core.Reference, dims []core.Dimension) (Ranking, error) {
	if len(refs) == 0 {
		return nil, core.ErrNoData
	}
	out := make(Ranking, 0, len(refs))
	for _, ref := range refs {
		d, err := Distance(ref.Profile, actual, dims)
		if err != nil {
			return nil, err
		}
		out = append(out, RankedReference{Name: ref.Name, Distance: d})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Distance < out[j].Distance })
	return out, nil
}

// Observation pairs one response's inferred profile with the single
// dimension its scenario designates as decision-relevant.
type Observation struct {
	Profile core.Profile
	Primary core.Dimension
}

// RankByPrimary computes per-reference distances using only each
// observation's primary dimension, pooling the squared differences across
// observations before the root-mean. This is the scenario-scoped policy and
// matches how per-scenario alignment is scored.
func RankByPrimary(obs []Observation, refs []core.Reference) (Ranking, error) {
	if len(obs) == 0 || len(refs) == 0 {
		return nil, core.ErrNoData
	}
	out := make(Ranking, 0, len(refs))
	for _, ref := range refs {
		var sum float64
		n := 0
		for _, o := range obs {
			e, err := ref.Profile.Score(o.Primary)
			if err != nil {
				return nil, err
			}
			a, err := o.Profile.Score(o.Primary)
			if err != nil {
				return nil, err
			}
			diff := e - a
			sum += diff * diff
			n++
		}
		out = append(out, RankedReference{Name: ref.Name, Distance: math.Sqrt(sum / float64(n))})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Distance < out[j].Distance })
	return out, nil
}
