package profiler

import (
	"github.com/kabiwabi/worldWiseAI/core"
)

// Aggregate combines per-response profiles into one representative profile
// by arithmetic mean per dimension. N=1 returns that profile unchanged; N=0
// fails with core.ErrNoData rather than returning a default profile, since a
// neutral profile would be indistinguishable from a genuine finding.
func Aggregate(profiles []core.Profile) (core.Profile, error) {
	if len(profiles) == 0 {
		return nil, core.ErrNoData
	}
	out := make(core.Profile, len(core.Dimensions()))
	for _, d := range core.Dimensions() {
		var sum float64
		n := 0
		for _, p := range profiles {
			if v, ok := p[d]; ok {
				sum += v
				n++
			}
		}
		if n > 0 {
			out[d] = sum / float64(n)
		}
	}
	return out, nil
}

// AggregateResults is Aggregate over projection results.
func AggregateResults(results []*Result) (core.Profile, error) {
	profiles := make([]core.Profile, 0, len(results))
	for _, r := range results {
		profiles = append(profiles, r.Profile)
	}
	return Aggregate(profiles)
}
