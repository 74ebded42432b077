// Package registry file-based storage implementation.
package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/kabiwabi/worldWiseAI/core"
)

// FileRegistry stores catalogs as JSON files in a directory.
// File names: {id}_{version}.json (sanitized). The active version per id is
// kept in a _meta.json sidecar.
type FileRegistry struct {
	dir    string
	mu     sync.RWMutex
	active map[string]string // id -> active version
}

// NewFileRegistry creates a file-based registry rooted at dir.
func NewFileRegistry(dir string) (*FileRegistry, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("file registry: %w", err)
	}
	r := &FileRegistry{
		dir:    dir,
		active: make(map[string]string),
	}
	if err := r.loadMeta(); err != nil {
		return nil, err
	}
	return r, nil
}

func (f *FileRegistry) filename(id, version string) string {
	safeID := strings.ReplaceAll(strings.ReplaceAll(id, string(filepath.Separator), "_"), ":", "_")
	safeVer := strings.ReplaceAll(strings.ReplaceAll(version, string(filepath.Separator), "_"), ":", "_")
	return filepath.Join(f.dir, safeID+"_"+safeVer+".json")
}

func (f *FileRegistry) metaPath() string {
	return filepath.Join(f.dir, "_meta.json")
}

func (f *FileRegistry) loadMeta() error {
	data, err := os.ReadFile(f.metaPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	var out struct {
		Active map[string]string `json:"active"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return err
	}
	if out.Active != nil {
		f.active = out.Active
	}
	return nil
}

func (f *FileRegistry) saveMeta() error {
	out := struct {
		Active map[string]string `json:"active"`
	}{Active: f.active}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(f.metaPath(), data, 0644)
}

// Store saves a catalog as a JSON file.
func (f *FileRegistry) Store(ctx context.Context, catalog *core.Catalog) error {
	if catalog == nil {
		return fmt.Errorf("file registry: catalog is nil")
	}
	if err := catalog.Validate(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	payload, err := json.MarshalIndent(catalog, "", "  ")
	if err != nil {
		return fmt.Errorf("file registry encode: %w", err)
	}
	return os.WriteFile(f.filename(catalog.ID, catalog.Version), payload, 0644)
}

// Get reads a catalog by id and version.
func (f *FileRegistry) Get(ctx context.Context, id, version string) (*core.Catalog, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.read(id, version)
}

func (f *FileRegistry) read(id, version string) (*core.Catalog, error) {
	data, err := os.ReadFile(f.filename(id, version))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, core.ErrCatalogNotFound
		}
		return nil, err
	}
	var c core.Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("file registry decode: %w", err)
	}
	return &c, nil
}

// GetActive returns the active version for the id.
func (f *FileRegistry) GetActive(ctx context.Context, id string) (*core.Catalog, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	version, ok := f.active[id]
	if !ok {
		return nil, core.ErrCatalogNotFound
	}
	return f.read(id, version)
}

// List returns catalogs matching the filter by scanning the directory.
func (f *FileRegistry) List(ctx context.Context, filter Filter) ([]*core.Catalog, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		return nil, err
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 1000
	}
	offset := filter.Offset
	var out []*core.Catalog
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") || name == "_meta.json" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(f.dir, name))
		if err != nil {
			continue
		}
		var c core.Catalog
		if err := json.Unmarshal(data, &c); err != nil {
			continue
		}
		if len(filter.IDs) > 0 && !contains(filter.IDs, c.ID) {
			continue
		}
		if offset > 0 {
			offset--
			continue
		}
		out = append(out, &c)
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

// ListVersions returns version info for an id.
func (f *FileRegistry) ListVersions(ctx context.Context, id string) ([]VersionInfo, error) {
	catalogs, err := f.List(ctx, Filter{IDs: []string{id}})
	if err != nil {
		return nil, err
	}
	f.mu.RLock()
	activeVersion := f.active[id]
	f.mu.RUnlock()
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
func (f *FileRegistry) Activate(ctx context.Context, id, version string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, err := f.read(id, version); err != nil {
		return err
	}
	f.active[id] = version
	return f.saveMeta()
}

// Delete removes a catalog version file.
func (f *FileRegistry) Delete(ctx context.Context, id, version string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	path := f.filename(id, version)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return core.ErrCatalogNotFound
	}
	if err := os.Remove(path); err != nil {
		return err
	}
	if f.active[id] == version {
		delete(f.active, id)
		return f.saveMeta()
	}
	return nil
}
