package alignment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kabiwabi/worldWiseAI/core"
)

func fullProfile(v float64) core.Profile {
	p := core.Profile{}
	for _, d := range core.Dimensions() {
		p[d] = v
	}
	return p
}

func TestScore_IdentityIsExactlyTen(t *testing.T) {
	ref := core.Reference{Name: "US", Profile: fullProfile(1.5)}
	res, err := Scorer{}.Score(ref, fullProfile(1.5), core.Dimensions())
	require.NoError(t, err)
	assert.Equal(t, MaxScore, res.Score)
	assert.Zero(t, res.Distance)
}

func TestScore_MonotoneInDistance(t *testing.T) {
	ref := core.Reference{Name: "US", Profile: fullProfile(2.0)}
	dims := core.Dimensions()
	var prev = MaxScore + 1
	for _, actual := range []float64{2.0, 1.5, 1.0, 0.0, -1.0, -2.0} {
		res, err := Scorer{}.Score(ref, fullProfile(actual), dims)
		require.NoError(t, err)
		assert.LessOrEqual(t, res.Score, prev)
		prev = res.Score
	}
}

func TestScore_ClampsAtZero(t *testing.T) {
	// Maximum possible distance: expected +2 vs actual -2 on every dimension.
	ref := core.Reference{Name: "US", Profile: fullProfile(core.ScaleMax)}
	res, err := Scorer{}.Score(ref, fullProfile(core.ScaleMin), core.Dimensions())
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.Score)
	assert.InDelta(t, 4.0, res.Distance, 1e-12)
}

func TestScore_SingleDimensionVariant(t *testing.T) {
	ref := core.Reference{Name: "Japan", Profile: fullProfile(2.0)}
	actual := fullProfile(0.0)
	actual[core.Masculinity] = 2.0
	res, err := Scorer{}.ScoreDimension(ref, actual, core.Masculinity)
	require.NoError(t, err)
	assert.Equal(t, MaxScore, res.Score)
}

func TestScore_RelevantDimensionsOnly(t *testing.T) {
	ref := core.Reference{Name: "US", Profile: fullProfile(2.0)}
	actual := fullProfile(-2.0)
	actual[core.Individualism] = 2.0
	res, err := Scorer{}.Score(ref, actual, []core.Dimension{core.Individualism})
	require.NoError(t, err)
	assert.Equal(t, MaxScore, res.Score)
}

func TestDistance_EmptyDimensions(t *testing.T) {
	_, err := Distance(fullProfile(0), fullProfile(0), nil)
	assert.ErrorIs(t, err, core.ErrNoData)
}

func TestDistance_MissingDimensionFailsFast(t *testing.T) {
	partial := core.Profile{core.Individualism: 1.0}
	_, err := Distance(fullProfile(0), partial, []core.Dimension{core.Indulgence})
	assert.ErrorIs(t, err, core.ErrUnknownDimension)
}

func TestScore_EndToEndMargin(t *testing.T) {
	// Reference A at +2.0 and B at -2.0 on individualism; a profile at +1.8
	// must score far higher against A and rank A first.
	refA := core.Reference{Name: "A", Profile: core.Profile{core.Individualism: 2.0}}
	refB := core.Reference{Name: "B", Profile: core.Profile{core.Individualism: -2.0}}
	actual := core.Profile{core.Individualism: 1.8}
	dims := []core.Dimension{core.Individualism}

	a, err := Scorer{}.Score(refA, actual, dims)
	require.NoError(t, err)
	b, err := Scorer{}.Score(refB, actual, dims)
	require.NoError(t, err)
	assert.Greater(t, a.Score, b.Score+5.0)

	ranking, err := Rank(actual, []core.Reference{refB, refA}, dims)
	require.NoError(t, err)
	assert.Equal(t, "A", ranking.Closest().Name)
}

func TestStereotypeScore(t *testing.T) {
	assert.Equal(t, MaxScore, StereotypeScore("", nil))
	clean := StereotypeScore("the decision reflects careful weighing of obligations", nil)
	assert.Equal(t, MaxScore, clean)
	loaded := StereotypeScore("they always do this, everyone is typical there", nil)
	assert.Less(t, loaded, clean)
	assert.GreaterOrEqual(t, loaded, 0.0)
}
