package registry

import (
	"context"
	"fmt"
	"sync"

	"github.com/kabiwabi/worldWiseAI/core"
)

// MemoryRegistry is an in-memory registry (testing and single-process use).
type MemoryRegistry struct {
	mu       sync.RWMutex
	catalogs map[string]map[string]*core.Catalog // id -> version -> catalog
	active   map[string]string                   // id -> version
}

// NewMemoryRegistry creates an empty in-memory registry.
func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{
		catalogs: make(map[string]map[string]*core.Catalog),
		active:   make(map[string]string),
	}
}

// Store saves a catalog. Overwrites if id+version already exists.
func (m *MemoryRegistry) Store(ctx context.Context, catalog *core.Catalog) error {
	if catalog == nil {
		return fmt.Errorf("catalog is nil")
	}
	if err := catalog.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.catalogs[catalog.ID] == nil {
		m.catalogs[catalog.ID] = make(map[string]*core.Catalog)
	}
	// Copy so caller cannot mutate the stored catalog
	m.catalogs[catalog.ID][catalog.Version] = catalog.Copy()
	return nil
}

// Get returns a catalog by id and version.
func (m *MemoryRegistry) Get(ctx context.Context, id, version string) (*core.Catalog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	versions, ok := m.catalogs[id]
	if !ok {
		return nil, core.ErrCatalogNotFound
	}
	c, ok := versions[version]
	if !ok {
		return nil, core.ErrCatalogNotFound
	}
	return c.Copy(), nil
}

// GetActive returns the catalog version currently activated for the id.
func (m *MemoryRegistry) GetActive(ctx context.Context, id string) (*core.Catalog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	version, ok := m.active[id]
	if !ok {
		return nil, core.ErrCatalogNotFound
	}
	versions, ok := m.catalogs[id]
	if !ok {
		return nil, core.ErrCatalogNotFound
	}
	c, ok := versions[version]
	if !ok {
		return nil, core.ErrCatalogNotFound
	}
	return c.Copy(), nil
}

// List returns catalogs matching the filter.
func (m *MemoryRegistry) List(ctx context.Context, filter Filter) ([]*core.Catalog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*core.Catalog
	offset := filter.Offset
	limit := filter.Limit
	if limit <= 0 {
		limit = 1000
	}
	for id, versions := range m.catalogs {
		if len(filter.IDs) > 0 && !contains(filter.IDs, id) {
			continue
		}
		for _, c := range versions {
			if offset > 0 {
				offset--
				continue
			}
			out = append(out, c.Copy())
			if len(out) >= limit {
				return out, nil
			}
		}
	}
	return out, nil
}

// ListVersions returns version info for an id.
func (m *MemoryRegistry) ListVersions(ctx context.Context, id string) ([]VersionInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	versions, ok := m.catalogs[id]
	if !ok {
		return nil, nil
	}
	var infos []VersionInfo
	for v, c := range versions {
		infos = append(infos, VersionInfo{
			ID:        id,
			Version:   v,
			Active:    m.active[id] == v,
			CreatedAt: c.CreatedAt,
			UpdatedAt: c.UpdatedAt,
		})
	}
	return infos, nil
}

// Activate marks the given id+version as the active catalog for the id.
func (m *MemoryRegistry) Activate(ctx context.Context, id, version string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	versions, ok := m.catalogs[id]
	if !ok {
		return core.ErrCatalogNotFound
	}
	if _, ok := versions[version]; !ok {
		return core.ErrCatalogNotFound
	}
	m.active[id] = version
	return nil
}

// Delete removes a catalog version.
func (m *MemoryRegistry) Delete(ctx context.Context, id, version string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	versions, ok := m.catalogs[id]
	if !ok {
		return core.ErrCatalogNotFound
	}
	if _, ok := versions[version]; !ok {
		return core.ErrCatalogNotFound
	}
	delete(versions, version)
	if m.active[id] == version {
		delete(m.active, id)
	}
	return nil
}
