package core

import "strings"

// Key identifies the (model, culture context, scenario, trial) bucket a
// response belongs to. Culture is the prompted cultural context; BaselineKey
// marks the unprompted condition.
type Key struct {
	Model    string `json:"model"`
	Culture  string `json:"culture"`
	Scenario string `json:"scenario"`
	Trial    int    `json:"trial"`
}

// BaselineKey is the culture identifier for the unprompted condition.
const BaselineKey = "baseline"

// Baseline reports whether the key belongs to the unprompted condition.
func (k Key) Baseline() bool {
	return k.Culture == BaselineKey
}

// Record is one observed model output, produced by an external response
// parser and consumed read-only by the engine.
type Record struct {
	Key         Key      `json:"key"`
	Decision    string   `json:"decision"`
	Values      []string `json:"values"` // cited value names, deduplicated per response
	Explanation string   `json:"explanation"`
}

// Text returns the combined free text used for dimension projection:
// explanation, decision label, and cited values.
func (r Record) Text() string {
	parts := make([]string, 0, 2+len(r.Values))
	if s := strings.TrimSpace(r.Explanation); s != "" {
		parts = append(parts, s)
	}
	if s := strings.TrimSpace(r.Decision); s != "" {
		parts = append(parts, s)
	}
	for _, v := range r.Values {
		if v = strings.TrimSpace(v); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, " ")
}

// Empty reports whether the record carries no extractable text at all.
func (r Record) Empty() bool {
	return r.Text() == ""
}
