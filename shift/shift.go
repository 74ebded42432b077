// Package shift quantifies how much contextual prompting changes which
// values a model cites relative to the unprompted baseline. It operates on
// categorical citation frequencies, independent of embedding projection.
package shift

import (
	"math"
	"sort"

	"github.com/kabiwabi/worldWiseAI/core"
)

// Distribution maps value names to citation percentages summing to 100.
type Distribution map[string]float64

// DistributionOf counts value citations across the records and normalizes to
// percentages. Zero citations is core.ErrNoData.
func DistributionOf(records []core.Record) (Distribution, error) {
	counts := make(map[string]int)
	total := 0
	for _, r := range records {
		for _, v := range r.Values {
			counts[v]++
			total++
		}
	}
	if total == 0 {
		return nil, core.ErrNoData
	}
	dist := make(Distribution, len(counts))
	for v, n := range counts {
		dist[v] = float64(n) / float64(total) * 100
	}
	return dist, nil
}

// ValueShift is the signed percentage-point change for one value
// (prompted minus baseline).
type ValueShift struct {
	Value string  `json:"value"`
	Delta float64 `json:"delta"`
}

// Result summarizes divergence between two citation distributions.
type Result struct {
	// Magnitude is the Total Variation Distance on a 0-100 scale; 100 means
	// completely disjoint value emphasis.
	Magnitude float64 `json:"magnitude"`
	// Shifts holds every value's signed delta, sorted by descending
	// magnitude.
	Shifts []ValueShift `json:"shifts"`
}

// Top returns the n largest shifts by magnitude.
func (r Result) Top(n int) []ValueShift {
	if n > len(r.Shifts) {
		n = len(r.Shifts)
	}
	return r.Shifts[:n]
}

// Magnitude computes TVD = 0.5 * sum(|baseline - prompted|) over the union
// of values. A value present in only one condition contributes its full
// percentage (0 in the missing condition). Symmetric in its arguments.
func Magnitude(baseline, prompted Distribution) Result {
	union := make(map[string]struct{}, len(baseline)+len(prompted))
	for v := range baseline {
		union[v] = struct{}{}
	}
	for v := range prompted {
		union[v] = struct{}{}
	}
	var sum float64
	shifts := make([]ValueShift, 0, len(union))
	for v := range union {
		delta := prompted[v] - baseline[v]
		sum += math.Abs(delta)
		shifts = append(shifts, ValueShift{Value: v, Delta: delta})
	}
	sort.Slice(shifts, func(i, j int) bool {
		if math.Abs(shifts[i].Delta) != math.Abs(shifts[j].Delta) {
			return math.Abs(shifts[i].Delta) > math.Abs(shifts[j].Delta)
		}
		return shifts[i].Value < shifts[j].Value
	})
	return Result{Magnitude: sum / 2, Shifts: shifts}
}

// Compare builds both distributions from records and computes the shift
// magnitude. Either condition without citations is core.ErrNoData.
func Compare(baseline, prompted []core.Record) (Result, error) {
	b, err := DistributionOf(baseline)
	if err != nil {
		return Result{}, err
	}
	p, err := DistributionOf(prompted)
	if err != nil {
		return Result{}, err
	}
	return Magnitude(b, p), nil
}
