package shift

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kabiwabi/worldWiseAI/core"
)

func TestMagnitude_ExactTVD(t *testing.T) {
	baseline := Distribution{"duty": 70, "freedom": 30}
	prompted := Distribution{"duty": 20, "freedom": 80}
	res := Magnitude(baseline, prompted)
	assert.Equal(t, 50.0, res.Magnitude)
}

func TestMagnitude_IdenticalIsZero(t *testing.T) {
	d := Distribution{"duty": 60, "freedom": 40}
	res := Magnitude(d, d)
	assert.Zero(t, res.Magnitude)
}

func TestMagnitude_DisjointIsHundred(t *testing.T) {
	baseline := Distribution{"duty": 100}
	prompted := Distribution{"freedom": 100}
	res := Magnitude(baseline, prompted)
	assert.Equal(t, 100.0, res.Magnitude)
}

func TestMagnitude_Symmetric(t *testing.T) {
	a := Distribution{"duty": 70, "freedom": 20, "harmony": 10}
	b := Distribution{"duty": 25, "freedom": 60, "growth": 15}
	assert.Equal(t, Magnitude(a, b).Magnitude, Magnitude(b, a).Magnitude)
}

func TestMagnitude_MissingValueCountsFull(t *testing.T) {
	baseline := Distribution{"duty": 50, "freedom": 50}
	prompted := Distribution{"duty": 50, "harmony": 50}
	res := Magnitude(baseline, prompted)
	assert.Equal(t, 50.0, res.Magnitude)

	deltas := map[string]float64{}
	for _, s := range res.Shifts {
		deltas[s.Value] = s.Delta
	}
	assert.Equal(t, -50.0, deltas["freedom"])
	assert.Equal(t, 50.0, deltas["harmony"])
	assert.Equal(t, 0.0, deltas["duty"])
}

func TestMagnitude_ShiftsSortedByAbsoluteDelta(t *testing.T) {
	baseline := Distribution{"a": 80, "b": 15, "c": 5}
	prompted := Distribution{"a": 40, "b": 50, "c": 10}
	res := Magnitude(baseline, prompted)
	require.Len(t, res.Shifts, 3)
	assert.Equal(t, "a", res.Shifts[0].Value)
	assert.Equal(t, "b", res.Shifts[1].Value)
	assert.Equal(t, "c", res.Shifts[2].Value)
	assert.Len(t, res.Top(2), 2)
}

func TestDistributionOf(t *testing.T) {
	records := []core.Record{
		{Values: []string{"duty", "harmony"}},
		{Values: []string{"duty"}},
		{Values: []string{"freedom"}},
	}
	dist, err := DistributionOf(records)
	require.NoError(t, err)
	assert.InDelta(t, 50.0, dist["duty"], 1e-9)
	assert.InDelta(t, 25.0, dist["harmony"], 1e-9)
	assert.InDelta(t, 25.0, dist["freedom"], 1e-9)
}

func TestDistributionOf_NoCitations(t *testing.T) {
	_, err := DistributionOf([]core.Record{{Explanation: "no values cited"}})
	assert.ErrorIs(t, err, core.ErrNoData)

	_, err = DistributionOf(nil)
	assert.ErrorIs(t, err, core.ErrNoData)
}

func TestCompare(t *testing.T) {
	baseline := []core.Record{
		{Values: []string{"duty", "duty", "duty", "duty", "duty", "duty", "duty"}},
		{Values: []string{"freedom", "freedom", "freedom"}},
	}
	prompted := []core.Record{
		{Values: []string{"duty", "duty"}},
		{Values: []string{"freedom", "freedom", "freedom", "freedom", "freedom", "freedom", "freedom", "freedom"}},
	}
	res, err := Compare(baseline, prompted)
	require.NoError(t, err)
	assert.Equal(t, 50.0, res.Magnitude)
}

func TestCompare_EmptyCondition(t *testing.T) {
	_, err := Compare(nil, []core.Record{{Values: []string{"duty"}}})
	assert.ErrorIs(t, err, core.ErrNoData)
}
