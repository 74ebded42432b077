package core

import "fmt"

// Profile maps each dimension to a score on the [ScaleMin, ScaleMax] scale.
// Profiles are derived fresh from inputs and never mutated after
// construction; recomputation replaces them.
type Profile map[Dimension]float64

// NeutralProfile returns a profile with every dimension at 0.
func NeutralProfile() Profile {
	p := make(Profile, len(allDimensions))
	for _, d := range allDimensions {
		p[d] = 0
	}
	return p
}

// Copy returns an independent copy of the profile.
func (p Profile) Copy() Profile {
	q := make(Profile, len(p))
	for d, v := range p {
		q[d] = v
	}
	return q
}

// Score returns the score for a dimension, failing on identifiers outside
// the profile rather than defaulting.
func (p Profile) Score(d Dimension) (float64, error) {
	v, ok := p[d]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownDimension, d)
	}
	return v, nil
}

// Validate checks that every key is a known dimension and every score is
// within scale bounds.
func (p Profile) Validate() error {
	for d, v := range p {
		if _, err := ParseDimension(string(d)); err != nil {
			return err
		}
		if v < ScaleMin || v > ScaleMax {
			return fmt.Errorf("%w: %s=%.2f", ErrInvalidScore, d, v)
		}
	}
	return nil
}

// Reference is a named reference profile (e.g. a culture), normalized onto
// the same scale as inferred profiles. Read-only to the engine.
type Reference struct {
	Name    string  `json:"name"`
	Profile Profile `json:"profile"`
}

// ExemplarSet holds the pole phrases for one dimension: short phrases
// exemplifying the high and low pole. Immutable after load.
type ExemplarSet struct {
	High []string `json:"high"`
	Low  []string `json:"low"`
}
