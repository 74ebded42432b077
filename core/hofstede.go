package core

import "time"

// DefaultCatalog returns the built-in Hofstede catalog: five reference
// cultures with scores converted from the official 0-100 scale onto
// [-2, +2], and curated exemplar phrases for each dimension pole. The
// exemplar language is deliberately abstract so it does not overlap with the
// value names models are asked to cite.
//
// Reference scores follow Hofstede, Hofstede & Minkov (2010); UAE scores are
// estimated from the Arab-countries cluster.
func DefaultCatalog() *Catalog {
	now := time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC)
	return &Catalog{
		ID:          "hofstede",
		Version:     "1.0.0",
		Name:        "Hofstede six-dimension catalog",
		Description: "Built-in reference cultures and dimension exemplars",
		CreatedAt:   now,
		UpdatedAt:   now,
		References: []Reference{
			{Name: "US", Profile: Profile{
				PowerDistance:        -1.0,
				Individualism:        2.0,
				Masculinity:          1.0,
				UncertaintyAvoidance: 0.0,
				LongTermOrientation:  -1.5,
				Indulgence:           1.5,
			}},
			{Name: "Japan", Profile: Profile{
				PowerDistance:        0.0,
				Individualism:        0.0,
				Masculinity:          2.0,
				UncertaintyAvoidance: 2.0,
				LongTermOrientation:  2.0,
				Indulgence:           -1.0,
			}},
			{Name: "India", Profile: Profile{
				PowerDistance:        1.5,
				Individualism:        0.0,
				Masculinity:          1.0,
				UncertaintyAvoidance: -1.0,
				LongTermOrientation:  0.0,
				Indulgence:           -1.5,
			}},
			{Name: "Mexico", Profile: Profile{
				PowerDistance:        2.0,
				Individualism:        -1.5,
				Masculinity:          1.5,
				UncertaintyAvoidance: 2.0,
				LongTermOrientation:  -1.5,
				Indulgence:           2.0,
			}},
			{Name: "UAE", Profile: Profile{
				PowerDistance:        2.0,
				Individualism:        -1.5,
				Masculinity:          0.0,
				UncertaintyAvoidance: 1.5,
				LongTermOrientation:  -1.5,
				Indulgence:           -1.0,
			}},
		},
		Exemplars: map[Dimension]ExemplarSet{
			Individualism: {
				High: []string{
					"acting according to one's own judgment without seeking group approval",
					"defining oneself through unique characteristics rather than group membership",
					"pursuing objectives that may diverge from collective interests",
					"asserting rights and preferences independent of social pressure",
					"viewing independent achievement as the primary measure of worth",
				},
				Low: []string{
					"defining identity primarily through group affiliations and relationships",
					"subordinating individual preferences to collective decisions",
					"measuring worth through contributions to communal welfare",
					"accepting obligations that prioritize group benefit over individual gain",
					"viewing actions through lens of impact on social networks",
				},
			},
			PowerDistance: {
				High: []string{
					"accepting unequal distribution of influence as natural and appropriate",
					"deferring to those with higher status in decision-making contexts",
					"viewing hierarchical structures as necessary for social order",
					"expecting different treatment based on position within social strata",
					"maintaining protocols that reinforce status distinctions",
				},
				Low: []string{
					"expecting equal access to decision-making regardless of position",
					"challenging decisions made solely on basis of hierarchical authority",
					"viewing power differences as minimal and subject to justification",
					"advocating for consultative processes across status levels",
					"minimizing status symbols and formality in interactions",
				},
			},
			Masculinity: {
				High: []string{
					"prioritizing competitive achievement and tangible accomplishments",
					"emphasizing assertiveness and decisiveness in leadership",
					"valuing material rewards and visible markers of success",
					"focusing on task completion and performance metrics",
					"distinguishing roles based on traditional achievement expectations",
				},
				Low: []string{
					"prioritizing collaborative relationships and mutual support",
					"emphasizing consensus-building and inclusive decision processes",
					"valuing quality of interpersonal environment over material gains",
					"focusing on welfare of all participants rather than competitive outcomes",
					"minimizing distinctions between traditional role expectations",
				},
			},
			UncertaintyAvoidance: {
				High: []string{
					"requiring detailed planning and formalized procedures for activities",
					"experiencing discomfort with ambiguous or unpredictable situations",
					"preferring explicit rules and structured guidelines for behavior",
					"minimizing exposure to unknown outcomes through extensive preparation",
					"viewing deviation from established protocols as threatening stability",
				},
				Low: []string{
					"accepting ambiguity as natural part of decision-making",
					"adapting to changing circumstances without extensive advance planning",
					"viewing rigid procedures as constraining rather than protective",
					"comfortable with improvisation and flexible approaches",
					"treating unpredictability as opportunity rather than threat",
				},
			},
			LongTermOrientation: {
				High: []string{
					"prioritizing sustained effort toward distant objectives over quick results",
					"adapting traditional practices to serve contemporary circumstances",
					"accepting delayed gratification for cumulative future advantages",
					"viewing persistence through challenges as virtue requiring cultivation",
					"measuring decisions by their implications for extended timeframes",
				},
				Low: []string{
					"respecting established customs and time-honored approaches",
					"seeking prompt returns and immediate verification of progress",
					"maintaining continuity with historical practices and precedents",
					"focusing attention on present circumstances and current conditions",
					"valuing consistency with proven methods over experimental innovation",
				},
			},
			Indulgence: {
				High: []string{
					"permitting expression of natural desires without excessive constraint",
					"allocating time and resources toward leisure and personal fulfillment",
					"viewing enjoyment and satisfaction as legitimate life priorities",
					"expressing emotions and impulses relatively freely in social contexts",
					"allowing spontaneous pursuits alongside structured responsibilities",
				},
				Low: []string{
					"regulating impulses through internalized norms and social expectations",
					"subordinating immediate desires to longer-term duties and obligations",
					"viewing restraint and control as markers of proper conduct",
					"limiting expression of wants in favor of prescribed behaviors",
					"maintaining strict boundaries between permissible and excessive indulgence",
				},
			},
		},
	}
}
