package core

import (
	"fmt"
	"time"
)

// Catalog is a named, versioned configuration bundle: the reference profiles
// and exemplar sets an engine is built from. Supplied as static
// configuration and validated at load; read-only thereafter.
type Catalog struct {
	ID          string                    `json:"id"`
	Version     string                    `json:"version"`
	Name        string                    `json:"name"`
	Description string                    `json:"description,omitempty"`
	References  []Reference               `json:"references"`
	Exemplars   map[Dimension]ExemplarSet `json:"exemplars"`
	CreatedAt   time.Time                 `json:"created_at"`
	UpdatedAt   time.Time                 `json:"updated_at"`
}

// Reference returns the reference with the given name, or
// ErrUnknownReference.
func (c *Catalog) Reference(name string) (Reference, error) {
	for _, r := range c.References {
		if r.Name == name {
			return r, nil
		}
	}
	return Reference{}, fmt.Errorf("%w: %q", ErrUnknownReference, name)
}

// Validate checks the catalog against the closed dimension set: every
// reference must score every dimension within bounds, every dimension must
// have non-empty exemplar poles, and no unknown identifiers may appear.
// Unrecognized identifiers are a load-time configuration error, never a
// runtime lookup failure.
func (c *Catalog) Validate() error {
	if c.ID == "" || c.Version == "" {
		return fmt.Errorf("catalog id and version required")
	}
	if len(c.References) == 0 {
		return fmt.Errorf("catalog %s: %w: no references", c.ID, ErrNoData)
	}
	seen := make(map[string]bool, len(c.References))
	for _, ref := range c.References {
		if ref.Name == "" {
			return fmt.Errorf("catalog %s: reference with empty name", c.ID)
		}
		if seen[ref.Name] {
			return fmt.Errorf("catalog %s: duplicate reference %q", c.ID, ref.Name)
		}
		seen[ref.Name] = true
		if err := ref.Profile.Validate(); err != nil {
			return fmt.Errorf("catalog %s: reference %q: %w", c.ID, ref.Name, err)
		}
		for _, d := range allDimensions {
			if _, ok := ref.Profile[d]; !ok {
				return fmt.Errorf("catalog %s: reference %q missing dimension %q", c.ID, ref.Name, d)
			}
		}
	}
	for d, set := range c.Exemplars {
		if _, err := ParseDimension(string(d)); err != nil {
			return fmt.Errorf("catalog %s: %w", c.ID, err)
		}
		if len(set.High) == 0 || len(set.Low) == 0 {
			return fmt.Errorf("catalog %s: dimension %q needs non-empty high and low exemplars", c.ID, d)
		}
	}
	for _, d := range allDimensions {
		if _, ok := c.Exemplars[d]; !ok {
			return fmt.Errorf("catalog %s: missing exemplars for dimension %q", c.ID, d)
		}
	}
	return nil
}

// Copy returns a deep copy of the catalog.
func (c *Catalog) Copy() *Catalog {
	q := *c
	q.References = make([]Reference, len(c.References))
	for i, r := range c.References {
		q.References[i] = Reference{Name: r.Name, Profile: r.Profile.Copy()}
	}
	q.Exemplars = make(map[Dimension]ExemplarSet, len(c.Exemplars))
	for d, set := range c.Exemplars {
		q.Exemplars[d] = ExemplarSet{
			High: append([]string(nil), set.High...),
			Low:  append([]string(nil), set.Low...),
		}
	}
	return &q
}
