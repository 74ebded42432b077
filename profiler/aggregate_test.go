package profiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kabiwabi/worldWiseAI/core"
)

func TestAggregate_SingleIsIdentity(t *testing.T) {
	p := core.Profile{core.Individualism: 1.2, core.PowerDistance: -0.5}
	got, err := Aggregate([]core.Profile{p})
	require.NoError(t, err)
	assert.Equal(t, 1.2, got[core.Individualism])
	assert.Equal(t, -0.5, got[core.PowerDistance])
}

func TestAggregate_IdenticalUnchanged(t *testing.T) {
	p := core.Profile{}
	for _, d := range core.Dimensions() {
		p[d] = 0.7
	}
	got, err := Aggregate([]core.Profile{p, p.Copy(), p.Copy()})
	require.NoError(t, err)
	for _, d := range core.Dimensions() {
		assert.InDelta(t, 0.7, got[d], 1e-12)
	}
}

func TestAggregate_Mean(t *testing.T) {
	a := core.Profile{core.Individualism: 2.0}
	b := core.Profile{core.Individualism: -1.0}
	got, err := Aggregate([]core.Profile{a, b})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, got[core.Individualism], 1e-12)
}

func TestAggregate_EmptyFails(t *testing.T) {
	_, err := Aggregate(nil)
	assert.ErrorIs(t, err, core.ErrNoData)
}

func TestAggregateResults(t *testing.T) {
	results := []*Result{
		{Profile: core.Profile{core.Indulgence: 1.0}},
		{Profile: core.Profile{core.Indulgence: 0.0}},
	}
	got, err := AggregateResults(results)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, got[core.Indulgence], 1e-12)
}
