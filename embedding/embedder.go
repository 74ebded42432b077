// Package embedding defines the text embedding capability consumed by the
// profiling engine, HTTP-backed implementations, and cross-cutting wrappers.
package embedding

import "context"

// Embedder produces a fixed-dimensionality vector embedding for text.
// Implementations must be deterministic: the same input yields the same
// vector. The engine only ever computes cosine similarity over the result.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Func adapts a function to Embedder.
type Func func(ctx context.Context, text string) ([]float32, error)

func (f Func) Embed(ctx context.Context, text string) ([]float32, error) {
	return f(ctx, text)
}
