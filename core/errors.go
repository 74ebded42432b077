// Package core provides the fundamental data model for cultural value
// profiling: dimensions, response records, profiles, and catalogs.
package core

import "errors"

// Sentinel errors for profiling operations.
var (
	// ErrEmbeddingUnavailable indicates the embedding backend failed or
	// returned no vector. Never recovered into a zero vector.
	ErrEmbeddingUnavailable = errors.New("embedding unavailable")

	// ErrNoData indicates an aggregation or comparison was invoked with zero
	// input records. A neutral result would be indistinguishable from a
	// genuine finding, so this fails loudly instead.
	ErrNoData = errors.New("no data")

	// ErrUnknownDimension indicates a dimension identifier outside the closed
	// set of cultural dimensions.
	ErrUnknownDimension = errors.New("unknown dimension")

	// ErrUnknownReference indicates a lookup for a reference profile that is
	// not part of the catalog.
	ErrUnknownReference = errors.New("unknown reference")

	// ErrCatalogNotFound indicates a registry lookup for a catalog id/version
	// that does not exist.
	ErrCatalogNotFound = errors.New("catalog not found")

	// ErrInvalidScore indicates a configured score outside the [ScaleMin,
	// ScaleMax] range.
	ErrInvalidScore = errors.New("score out of range")
)
