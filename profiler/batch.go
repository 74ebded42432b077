package profiler

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/kabiwabi/worldWiseAI/core"
)

// defaultConcurrency bounds parallel embedding calls in a batch.
const defaultConcurrency = 4

// Batch projects many records with bounded parallelism. Responses are
// independent, so embedding calls can run concurrently; results come back in
// input order.
type Batch struct {
	Projector   *Projector
	Concurrency int
}

// Project projects every record. The first embedding failure cancels the
// remaining work and is returned.
func (b *Batch) Project(ctx context.Context, recs []core.Record) ([]*Result, error) {
	if len(recs) == 0 {
		return nil, core.ErrNoData
	}
	workers := b.Concurrency
	if workers <= 0 {
		workers = defaultConcurrency
	}
	// Fill the exemplar cache before fanning out so workers only read it.
	if err := b.Projector.cache.Warm(ctx, b.Projector.embedder); err != nil {
		return nil, err
	}
	out := make([]*Result, len(recs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, rec := range recs {
		i, rec := i, rec
		g.Go(func() error {
			res, err := b.Projector.Project(gctx, rec)
			if err != nil {
				return err
			}
			out[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
