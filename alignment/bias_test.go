package alignment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kabiwabi/worldWiseAI/core"
)

func TestRank_SortedAscendingNoDuplicates(t *testing.T) {
	refs := core.DefaultCatalog().References
	actual := fullProfile(0.5)
	ranking, err := Rank(actual, refs, core.Dimensions())
	require.NoError(t, err)
	require.Len(t, ranking, len(refs))
	seen := map[string]bool{}
	for i, r := range ranking {
		assert.False(t, seen[r.Name], "duplicate %s", r.Name)
		seen[r.Name] = true
		if i > 0 {
			assert.GreaterOrEqual(t, r.Distance, ranking[i-1].Distance)
		}
	}
}

func TestRank_TiesKeepInputOrder(t *testing.T) {
	refs := []core.Reference{
		{Name: "first", Profile: core.Profile{core.Individualism: 1.0}},
		{Name: "second", Profile: core.Profile{core.Individualism: -1.0}},
	}
	// Equidistant from both.
	ranking, err := Rank(core.Profile{core.Individualism: 0.0}, refs, []core.Dimension{core.Individualism})
	require.NoError(t, err)
	assert.Equal(t, "first", ranking[0].Name)
	assert.Equal(t, "second", ranking[1].Name)
}

func TestRank_EmptyReferences(t *testing.T) {
	_, err := Rank(fullProfile(0), nil, core.Dimensions())
	assert.ErrorIs(t, err, core.ErrNoData)
}

func TestRank_Deterministic(t *testing.T) {
	refs := core.DefaultCatalog().References
	actual := fullProfile(-0.3)
	a, err := Rank(actual, refs, core.Dimensions())
	require.NoError(t, err)
	b, err := Rank(actual, refs, core.Dimensions())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestRankByPrimary(t *testing.T) {
	refs := []core.Reference{
		{Name: "individualist", Profile: fullProfile(0).Copy()},
		{Name: "collectivist", Profile: fullProfile(0).Copy()},
	}
	refs[0].Profile[core.Individualism] = 2.0
	refs[1].Profile[core.Individualism] = -2.0

	obs := []Observation{
		{Profile: core.Profile{core.Individualism: 1.5}, Primary: core.Individualism},
		{Profile: core.Profile{core.Individualism: 1.9}, Primary: core.Individualism},
	}
	ranking, err := RankByPrimary(obs, refs)
	require.NoError(t, err)
	assert.Equal(t, "individualist", ranking.Closest().Name)
	assert.Len(t, ranking, 2)
}

func TestRankByPrimary_MixedPrimaries(t *testing.T) {
	refs := core.DefaultCatalog().References
	obs := []Observation{
		{Profile: fullProfile(1.0), Primary: core.Individualism},
		{Profile: fullProfile(-0.5), Primary: core.PowerDistance},
	}
	ranking, err := RankByPrimary(obs, refs)
	require.NoError(t, err)
	assert.Len(t, ranking, len(refs))
}

func TestRankByPrimary_Empty(t *testing.T) {
	_, err := RankByPrimary(nil, core.DefaultCatalog().References)
	assert.ErrorIs(t, err, core.ErrNoData)
}
