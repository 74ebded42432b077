package core

import "fmt"

// Dimension identifies one cultural axis. The set is closed: the six Hofstede
// dimensions below are the only valid values, checked at configuration load.
type Dimension string

const (
	Individualism        Dimension = "individualism"
	PowerDistance        Dimension = "power_distance"
	Masculinity          Dimension = "masculinity"
	UncertaintyAvoidance Dimension = "uncertainty_avoidance"
	LongTermOrientation  Dimension = "long_term_orientation"
	Indulgence           Dimension = "indulgence"
)

// Scale bounds for all dimension scores, inferred and configured alike.
const (
	ScaleMin = -2.0
	ScaleMax = 2.0
)

var allDimensions = []Dimension{
	Individualism,
	PowerDistance,
	Masculinity,
	UncertaintyAvoidance,
	LongTermOrientation,
	Indulgence,
}

// Dimensions returns the closed dimension set in canonical order.
func Dimensions() []Dimension {
	return append([]Dimension(nil), allDimensions...)
}

// ParseDimension validates a dimension identifier against the closed set.
func ParseDimension(s string) (Dimension, error) {
	for _, d := range allDimensions {
		if string(d) == s {
			return d, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDimension, s)
}

// Description returns a short human-readable description of the dimension.
func (d Dimension) Description() string {
	switch d {
	case Individualism:
		return "degree to which individuals prioritize self over group"
	case PowerDistance:
		return "extent to which unequal power distribution is accepted"
	case Masculinity:
		return "preference for achievement and assertiveness over caring"
	case UncertaintyAvoidance:
		return "degree to which ambiguity and uncertainty feel threatening"
	case LongTermOrientation:
		return "focus on future rewards versus respect for tradition"
	case Indulgence:
		return "extent to which desires and impulses are freely gratified"
	default:
		return ""
	}
}
