package profiler

import (
	"context"
	"math"

	"github.com/kabiwabi/worldWiseAI/core"
	"github.com/kabiwabi/worldWiseAI/embedding"
)

// projectionScale maps the tanh output onto the [-2, +2] dimension scale.
const projectionScale = 2.0

// Result is one response's inferred profile. LowConfidence is set when the
// record had no extractable text or when a dimension had to be recovered at
// neutral, so downstream consumers can weigh it accordingly.
type Result struct {
	Key           core.Key
	Profile       core.Profile
	LowConfidence bool
	// Degenerate lists dimensions where both pole similarities were ~0 and
	// the neutral score was substituted.
	Degenerate []core.Dimension
}

// Projector turns a response's embedding into a scalar score per dimension
// by comparing it against the cached exemplar embeddings.
type Projector struct {
	embedder embedding.Embedder
	cache    *ExemplarCache
}

// NewProjector creates a projector over the given embedder and exemplar
// cache.
func NewProjector(e embedding.Embedder, cache *ExemplarCache) *Projector {
	return &Projector{embedder: e, cache: cache}
}

// Project infers a dimension profile for one record.
//
// Per dimension: mean cosine similarity of the response embedding against
// the high-pole and low-pole exemplars, then a polarity ratio
// (high-low)/(high+low) squashed through tanh and scaled onto [-2, +2]. The
// ratio isolates relative polarity independent of embedding magnitude; tanh
// bounds the output so downstream distance math stays well-conditioned. The
// exact calibration is preserved as-is because alignment scores downstream
// are calibrated against it.
//
// A record with no extractable text yields the neutral profile with
// LowConfidence set, never an error.
func (p *Projector) Project(ctx context.Context, rec core.Record) (*Result, error) {
	if rec.Empty() {
		return &Result{Key: rec.Key, Profile: core.NeutralProfile(), LowConfidence: true}, nil
	}
	respVec, err := p.embedder.Embed(ctx, rec.Text())
	if err != nil {
		return nil, err
	}
	res := &Result{Key: rec.Key, Profile: make(core.Profile, len(core.Dimensions()))}
	for _, d := range core.Dimensions() {
		pv, err := p.cache.vectors(ctx, p.embedder, d)
		if err != nil {
			return nil, err
		}
		high := meanCosine(respVec, pv.high)
		low := meanCosine(respVec, pv.low)
		sum := high + low
		if sum <= 0 {
			// Both poles degenerate; recover at neutral but surface it.
			res.Profile[d] = 0
			res.Degenerate = append(res.Degenerate, d)
			res.LowConfidence = true
			continue
		}
		score := math.Tanh((high-low)/sum) * projectionScale
		res.Profile[d] = clamp(score, core.ScaleMin, core.ScaleMax)
	}
	return res, nil
}

// meanCosine returns the mean cosine similarity of v against each exemplar
// vector.
func meanCosine(v []float32, exemplars [][]float32) float64 {
	if len(exemplars) == 0 {
		return 0
	}
	var sum float64
	for _, ex := range exemplars {
		sum += cosineSimilarity(v, ex)
	}
	return sum / float64(len(exemplars))
}

// cosineSimilarity returns the cosine similarity between two vectors
// (assumed same length).
func cosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
