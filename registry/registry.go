// Package registry provides versioned storage backends for cultural
// catalogs (reference profiles + exemplar sets).
package registry

import (
	"context"
	"time"

	"github.com/kabiwabi/worldWiseAI/core"
)

// VersionInfo holds metadata about a stored catalog version.
type VersionInfo struct {
	ID        string
	Version   string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Filter limits which catalogs are returned by List.
type Filter struct {
	IDs    []string
	Limit  int
	Offset int
}

// Registry stores and retrieves versioned catalogs. Every backend validates
// catalogs on Store, so anything read back satisfies core.Catalog.Validate.
// At most one version per id is active at a time.
type Registry interface {
	Store(ctx context.Context, catalog *core.Catalog) error
	Get(ctx context.Context, id, version string) (*core.Catalog, error)
	GetActive(ctx context.Context, id string) (*core.Catalog, error)
	List(ctx context.Context, filter Filter) ([]*core.Catalog, error)
	ListVersions(ctx context.Context, id string) ([]VersionInfo, error)
	Activate(ctx context.Context, id, version string) error
	Delete(ctx context.Context, id, version string) error
}

func contains(slice []string, s string) bool {
	for _, v := range slice {
		if v == s {
			return true
		}
	}
	return false
}
