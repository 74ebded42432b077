// Package worldwise provides a Go library for profiling LLM responses along
// cultural dimensions via embedding similarity, scoring alignment against
// reference cultural profiles, ranking baseline bias, and measuring how much
// contextual prompting shifts value emphasis.
//
// Quick start:
//
//	embedder := embedding.NewOpenAIEmbedder(apiKey)
//	engine, err := worldwise.New(embedder)
//	if err != nil { ... }
//
//	result, err := engine.Profile(ctx, worldwise.Record{
//		Key:      worldwise.Key{Model: "gpt-4o", Culture: "japan", Scenario: "workplace"},
//		Decision: "Consult the team before deciding.",
//	})
package worldwise

import (
	"context"

	"github.com/kabiwabi/worldWiseAI/alignment"
	"github.com/kabiwabi/worldWiseAI/core"
	"github.com/kabiwabi/worldWiseAI/embedding"
	"github.com/kabiwabi/worldWiseAI/profiler"
	"github.com/kabiwabi/worldWiseAI/shift"
)

// Engine ties an embedder and a catalog together into the full evaluation
// pipeline: projection, alignment, bias ranking and shift measurement.
type Engine struct {
	embedder    embedding.Embedder
	catalog     *core.Catalog
	cache       *profiler.ExemplarCache
	projector   *profiler.Projector
	scorer      alignment.Scorer
	concurrency int
	indicators  []string
}

// Option configures an Engine.
type Option func(*Engine)

// WithCatalog replaces the default Hofstede catalog. The catalog is validated
// in New.
func WithCatalog(c *core.Catalog) Option {
	return func(e *Engine) { e.catalog = c }
}

// WithSensitivity sets the alignment distance-to-score sensitivity (zero
// keeps the default).
func WithSensitivity(s float64) Option {
	return func(e *Engine) { e.scorer.Sensitivity = s }
}

// WithConcurrency bounds parallel embedding calls in ProfileAll.
func WithConcurrency(n int) Option {
	return func(e *Engine) { e.concurrency = n }
}

// WithStereotypeIndicators replaces the default indicator phrase list used by
// Stereotype.
func WithStereotypeIndicators(indicators []string) Option {
	return func(e *Engine) { e.indicators = indicators }
}

// New creates an Engine over the given embedder. Without options it uses the
// built-in Hofstede catalog and defaults.
func New(embedder embedding.Embedder, opts ...Option) (*Engine, error) {
	e := &Engine{
		embedder: embedder,
		catalog:  core.DefaultCatalog(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if err := e.catalog.Validate(); err != nil {
		return nil, err
	}
	cache, err := profiler.NewExemplarCache(e.catalog.Exemplars)
	if err != nil {
		return nil, err
	}
	e.cache = cache
	e.projector = profiler.NewProjector(embedder, cache)
	return e, nil
}

// Catalog returns the engine's catalog.
func (e *Engine) Catalog() *core.Catalog { return e.catalog }

// Warm embeds every exemplar phrase up front. Optional; the cache otherwise
// fills lazily on first projection.
func (e *Engine) Warm(ctx context.Context) error {
	return e.cache.Warm(ctx, e.embedder)
}

// Profile infers the dimension profile of one record.
func (e *Engine) Profile(ctx context.Context, rec core.Record) (*profiler.Result, error) {
	return e.projector.Project(ctx, rec)
}

// ProfileAll projects every record with bounded parallelism, preserving input
// order.
func (e *Engine) ProfileAll(ctx context.Context, recs []core.Record) ([]*profiler.Result, error) {
	b := &profiler.Batch{Projector: e.projector, Concurrency: e.concurrency}
	return b.Project(ctx, recs)
}

// Align scores an inferred profile against the named catalog reference over
// the given dimensions.
func (e *Engine) Align(actual core.Profile, reference string, dims []core.Dimension) (alignment.Result, error) {
	ref, err := e.catalog.Reference(reference)
	if err != nil {
		return alignment.Result{}, err
	}
	return e.scorer.Score(ref, actual, dims)
}

// Bias ranks every catalog reference by distance to the profile over a fixed
// dimension set, closest first.
func (e *Engine) Bias(actual core.Profile, dims []core.Dimension) (alignment.Ranking, error) {
	return alignment.Rank(actual, e.catalog.References, dims)
}

// BiasByPrimary ranks every catalog reference using only each observation's
// scenario-designated primary dimension.
func (e *Engine) BiasByPrimary(obs []alignment.Observation) (alignment.Ranking, error) {
	return alignment.RankByPrimary(obs, e.catalog.References)
}

// Shift measures how much prompting changed value citation emphasis between
// baseline and prompted records (Total Variation Distance, 0-100).
func (e *Engine) Shift(baseline, prompted []core.Record) (shift.Result, error) {
	return shift.Compare(baseline, prompted)
}

// Stereotype rates how free of stereotyped generalizations a text is, [0, 10].
func (e *Engine) Stereotype(text string) float64 {
	return alignment.StereotypeScore(text, e.indicators)
}

// Re-export core types for convenience.
type (
	// Dimension is one cultural axis on the [-2, +2] scale.
	Dimension = core.Dimension
	// Profile maps dimensions to scores.
	Profile = core.Profile
	// Reference is a named expected profile.
	Reference = core.Reference
	// Catalog bundles references and exemplars.
	Catalog = core.Catalog
	// Key identifies one collected response.
	Key = core.Key
	// Record is one collected response.
	Record = core.Record
)

// Dimension constants (re-export from core).
const (
	Individualism        = core.Individualism
	PowerDistance        = core.PowerDistance
	Masculinity          = core.Masculinity
	UncertaintyAvoidance = core.UncertaintyAvoidance
	LongTermOrientation  = core.LongTermOrientation
	Indulgence           = core.Indulgence
)

// Dimensions returns the closed dimension set in canonical order.
func Dimensions() []core.Dimension { return core.Dimensions() }

// DefaultCatalog returns the built-in Hofstede catalog.
func DefaultCatalog() *core.Catalog { return core.DefaultCatalog() }
