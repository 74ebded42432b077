// Package registry S3-compatible storage via BlobStore interface.
package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kabiwabi/worldWiseAI/core"
)

// BlobStore is a minimal key-value store for S3-compatible backends (e.g.
// AWS S3, MinIO).
type BlobStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, body []byte) error
	List(ctx context.Context, prefix string) ([]string, error)
	Delete(ctx context.Context, key string) error
}

// S3Registry stores catalogs using a BlobStore. Keys:
// prefix/catalog/id/version.json, prefix/active/id.txt.
type S3Registry struct {
	store  BlobStore
	prefix string
}

// NewS3Registry creates a registry using the given BlobStore (e.g. from
// registry/s3blob) and key prefix.
func NewS3Registry(store BlobStore, prefix string) *S3Registry {
	prefix = strings.Trim(prefix, "/")
	if prefix != "" {
		prefix += "/"
	}
	return &S3Registry{store: store, prefix: prefix}
}

func (s *S3Registry) catalogKey(id, version string) string {
	return s.prefix + "catalog/" + id + "/" + version + ".json"
}

func (s *S3Registry) activeKey(id string) string {
	return s.prefix + "active/" + id + ".txt"
}

// Store saves a catalog to the blob store.
func (s *S3Registry) Store(ctx context.Context, catalog *core.Catalog) error {
	if catalog == nil {
		return fmt.Errorf("s3 registry: catalog is nil")
	}
	if err := catalog.Validate(); err != nil {
		return err
	}
	data, err := json.Marshal(catalog)
	if err != nil {
		return err
	}
	return s.store.Put(ctx, s.catalogKey(catalog.ID, catalog.Version), data)
}

// Get retrieves a catalog by id and version.
func (s *S3Registry) Get(ctx context.Context, id, version string) (*core.Catalog, error) {
	data, err := s.store.Get(ctx, s.catalogKey(id, version))
	if err != nil {
		return nil, core.ErrCatalogNotFound
	}
	var c core.Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// GetActive returns the active version for the id.
func (s *S3Registry) GetActive(ctx context.Context, id string) (*core.Catalog, error) {
	data, err := s.store.Get(ctx, s.activeKey(id))
	if err != nil {
		return nil, core.ErrCatalogNotFound
	}
	version := strings.TrimSpace(string(data))
	if version == "" {
		return nil, core.ErrCatalogNotFound
	}
	return s.Get(ctx, id, version)
}

// List returns catalogs matching the filter by listing the catalog prefix.
func (s *S3Registry) List(ctx context.Context, filter Filter) ([]*core.Catalog, error) {
	keys, err := s.store.List(ctx, s.prefix+"catalog/")
	if err != nil {
		return nil, err
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 1000
	}
	offset := filter.Offset
	var out []*core.Catalog
	for _, key := range keys {
		if !strings.HasSuffix(key, ".json") {
			continue
		}
		trim := strings.TrimPrefix(key, s.prefix+"catalog/")
		parts := strings.SplitN(trim, "/", 2)
		if len(parts) != 2 {
			continue
		}
		id, ver := parts[0], strings.TrimSuffix(parts[1], ".json")
		if len(filter.IDs) > 0 && !contains(filter.IDs, id) {
			continue
		}
		c, err := s.Get(ctx, id, ver)
		if err != nil {
			continue
		}
		if offset > 0 {
			offset--
			continue
		}
		out = append(out, c)
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

// ListVersions returns version info for an id.
func (s *S3Registry) ListVersions(ctx context.Context, id string) ([]VersionInfo, error) {
	catalogs, err := s.List(ctx, Filter{IDs: []string{id}})
	if err != nil {
		return nil, err
	}
	activeVersion := ""
	if data, err := s.store.Get(ctx, s.activeKey(id)); err == nil {
		activeVersion = strings.TrimSpace(string(data))
	}
	var infos []VersionInfo
	for _, c := range catalogs {
		infos = append(infos, VersionInfo{
			ID:        c.ID,
			Version:   c.Version,
			Active:    c.Version == activeVersion,
			CreatedAt: c.CreatedAt,
			UpdatedAt: c.UpdatedAt,
		})
	}
	return infos, nil
}

// Activate marks the given id+version as active.
func (s *S3Registry) Activate(ctx context.Context, id, version string) error {
	if _, err := s.Get(ctx, id, version); err != nil {
		return err
	}
	return s.store.Put(ctx, s.activeKey(id), []byte(version))
}

// Delete removes a catalog version.
func (s *S3Registry) Delete(ctx context.Context, id, version string) error {
	if _, err := s.Get(ctx, id, version); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, s.catalogKey(id, version)); err != nil {
		return err
	}
	if data, err := s.store.Get(ctx, s.activeKey(id)); err == nil && strings.TrimSpace(string(data)) == version {
		_ = s.store.Delete(ctx, s.activeKey(id))
	}
	return nil
}
