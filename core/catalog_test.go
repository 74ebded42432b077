package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDimension(t *testing.T) {
	d, err := ParseDimension("individualism")
	require.NoError(t, err)
	assert.Equal(t, Individualism, d)

	_, err = ParseDimension("warmth")
	assert.ErrorIs(t, err, ErrUnknownDimension)
}

func TestDimensions_ClosedSet(t *testing.T) {
	dims := Dimensions()
	assert.Len(t, dims, 6)
	for _, d := range dims {
		parsed, err := ParseDimension(string(d))
		require.NoError(t, err)
		assert.Equal(t, d, parsed)
	}
}

func TestDefaultCatalog_Valid(t *testing.T) {
	c := DefaultCatalog()
	require.NoError(t, c.Validate())
	assert.Len(t, c.References, 5)
	for _, d := range Dimensions() {
		set, ok := c.Exemplars[d]
		require.True(t, ok, "missing exemplars for %s", d)
		assert.NotEmpty(t, set.High)
		assert.NotEmpty(t, set.Low)
	}
}

func TestCatalog_Reference(t *testing.T) {
	c := DefaultCatalog()
	ref, err := c.Reference("Japan")
	require.NoError(t, err)
	assert.Equal(t, 2.0, ref.Profile[Masculinity])

	_, err = c.Reference("Atlantis")
	assert.ErrorIs(t, err, ErrUnknownReference)
}

func TestCatalog_Reference_ExactNames(t *testing.T) {
	c := DefaultCatalog()
	// Lookup is case-sensitive; these literals are the public names callers
	// must use.
	for _, name := range []string{"US", "Japan", "India", "Mexico", "UAE"} {
		ref, err := c.Reference(name)
		require.NoError(t, err, "reference %q", name)
		assert.Equal(t, name, ref.Name)
	}
	_, err := c.Reference("japan")
	assert.ErrorIs(t, err, ErrUnknownReference)
}

func TestCatalog_Validate_UnknownDimension(t *testing.T) {
	c := DefaultCatalog()
	c.Exemplars["warmth"] = ExemplarSet{High: []string{"a"}, Low: []string{"b"}}
	assert.ErrorIs(t, c.Validate(), ErrUnknownDimension)
}

func TestCatalog_Validate_ScoreOutOfRange(t *testing.T) {
	c := DefaultCatalog()
	c.References[0].Profile[Individualism] = 3.5
	assert.ErrorIs(t, c.Validate(), ErrInvalidScore)
}

func TestCatalog_Validate_MissingReferenceDimension(t *testing.T) {
	c := DefaultCatalog()
	delete(c.References[1].Profile, Indulgence)
	assert.Error(t, c.Validate())
}

func TestCatalog_Copy_Independent(t *testing.T) {
	c := DefaultCatalog()
	q := c.Copy()
	q.References[0].Profile[Individualism] = -2.0
	q.Exemplars[Individualism].High[0] = "changed"
	assert.Equal(t, 2.0, c.References[0].Profile[Individualism])
	assert.NotEqual(t, "changed", c.Exemplars[Individualism].High[0])
}

func TestRecord_Text(t *testing.T) {
	r := Record{
		Decision:    "Option B",
		Values:      []string{"Family Harmony", "Duty/Obligation"},
		Explanation: "I prioritize maintaining group cohesion.",
	}
	assert.Equal(t, "I prioritize maintaining group cohesion. Option B Family Harmony Duty/Obligation", r.Text())
	assert.False(t, r.Empty())

	empty := Record{Explanation: "   "}
	assert.True(t, empty.Empty())
}

func TestKey_Baseline(t *testing.T) {
	assert.True(t, Key{Culture: BaselineKey}.Baseline())
	assert.False(t, Key{Culture: "Japan"}.Baseline())
}

func TestProfile_Score(t *testing.T) {
	p := Profile{Individualism: 1.8}
	v, err := p.Score(Individualism)
	require.NoError(t, err)
	assert.Equal(t, 1.8, v)

	_, err = p.Score(Indulgence)
	assert.ErrorIs(t, err, ErrUnknownDimension)
}
