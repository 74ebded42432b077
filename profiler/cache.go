// Package profiler infers dimension profiles from response text using
// embedding similarity against curated exemplar phrases.
package profiler

import (
	"context"
	"fmt"
	"sync"

	"github.com/kabiwabi/worldWiseAI/core"
	"github.com/kabiwabi/worldWiseAI/embedding"
)

// poleVectors holds the embedded exemplar phrases for one dimension.
type poleVectors struct {
	high [][]float32
	low  [][]float32
}

// ExemplarCache embeds exemplar phrases once and keeps the vectors for the
// process lifetime. It is an explicitly constructed, owned object handed to
// the projector, so tests can use isolated instances. Exemplars are static
// configuration, so there is no invalidation.
type ExemplarCache struct {
	exemplars map[core.Dimension]core.ExemplarSet

	mu    sync.Mutex
	poles map[core.Dimension]*poleVectors
}

// NewExemplarCache creates a cache over the given exemplar sets. Every
// dimension in the closed set must have non-empty high and low poles.
func NewExemplarCache(exemplars map[core.Dimension]core.ExemplarSet) (*ExemplarCache, error) {
	for _, d := range core.Dimensions() {
		set, ok := exemplars[d]
		if !ok {
			return nil, fmt.Errorf("exemplar cache: missing dimension %q", d)
		}
		if len(set.High) == 0 || len(set.Low) == 0 {
			return nil, fmt.Errorf("exemplar cache: dimension %q needs non-empty high and low exemplars", d)
		}
	}
	copied := make(map[core.Dimension]core.ExemplarSet, len(exemplars))
	for d, set := range exemplars {
		if _, err := core.ParseDimension(string(d)); err != nil {
			return nil, err
		}
		copied[d] = core.ExemplarSet{
			High: append([]string(nil), set.High...),
			Low:  append([]string(nil), set.Low...),
		}
	}
	return &ExemplarCache{
		exemplars: copied,
		poles:     make(map[core.Dimension]*poleVectors),
	}, nil
}

// vectors returns the embedded poles for a dimension, embedding them on
// first use via the given embedder. Embedding failures are not cached.
func (c *ExemplarCache) vectors(ctx context.Context, e embedding.Embedder, d core.Dimension) (*poleVectors, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if pv, ok := c.poles[d]; ok {
		return pv, nil
	}
	set, ok := c.exemplars[d]
	if !ok {
		return nil, fmt.Errorf("%w: %q", core.ErrUnknownDimension, d)
	}
	pv := &poleVectors{
		high: make([][]float32, 0, len(set.High)),
		low:  make([][]float32, 0, len(set.Low)),
	}
	for _, phrase := range set.High {
		vec, err := e.Embed(ctx, phrase)
		if err != nil {
			return nil, fmt.Errorf("embed exemplar %q: %w", phrase, err)
		}
		pv.high = append(pv.high, vec)
	}
	for _, phrase := range set.Low {
		vec, err := e.Embed(ctx, phrase)
		if err != nil {
			return nil, fmt.Errorf("embed exemplar %q: %w", phrase, err)
		}
		pv.low = append(pv.low, vec)
	}
	c.poles[d] = pv
	return pv, nil
}

// Warm embeds every exemplar up front. Optional; the cache otherwise fills
// lazily on first projection.
func (c *ExemplarCache) Warm(ctx context.Context, e embedding.Embedder) error {
	for _, d := range core.Dimensions() {
		if _, err := c.vectors(ctx, e, d); err != nil {
			return err
		}
	}
	return nil
}
