// Package registry Redis storage implementation. Use: go get github.com/redis/go-redis/v9
package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kabiwabi/worldWiseAI/core"
)

const (
	redisKeyCatalog  = "catalog:%s:%s"
	redisKeyActive   = "active:%s"
	redisKeyIDs      = "index:ids"
	redisKeyVersions = "index:versions:%s"
)

// RedisRegistry stores catalogs in Redis. Keys: catalog:id:version (JSON),
// active:id (version), index:ids (SET), index:versions:id (SET).
type RedisRegistry struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisRegistry creates a registry using the given Redis client. Optional
// key prefix (e.g. "worldwise:").
func NewRedisRegistry(client redis.UniversalClient, prefix string) *RedisRegistry {
	if prefix != "" && !strings.HasSuffix(prefix, ":") {
		prefix += ":"
	}
	return &RedisRegistry{client: client, prefix: prefix}
}

func (r *RedisRegistry) key(format string, a ...interface{}) string {
	return r.prefix + fmt.Sprintf(format, a...)
}

// Store saves a catalog in Redis.
func (r *RedisRegistry) Store(ctx context.Context, catalog *core.Catalog) error {
	if catalog == nil {
		return fmt.Errorf("redis registry: catalog is nil")
	}
	if err := catalog.Validate(); err != nil {
		return err
	}
	data, err := json.Marshal(catalog)
	if err != nil {
		return fmt.Errorf("redis registry encode: %w", err)
	}
	k := r.key(redisKeyCatalog, catalog.ID, catalog.Version)
	if err := r.client.Set(ctx, k, data, 0).Err(); err != nil {
		return err
	}
	r.client.SAdd(ctx, r.key(redisKeyIDs), catalog.ID)
	r.client.SAdd(ctx, r.key(redisKeyVersions, catalog.ID), catalog.Version)
	return nil
}

// Get retrieves a catalog by id and version.
func (r *RedisRegistry) Get(ctx context.Context, id, version string) (*core.Catalog, error) {
	data, err := r.client.Get(ctx, r.key(redisKeyCatalog, id, version)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, core.ErrCatalogNotFound
		}
		return nil, err
	}
	var c core.Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("redis registry decode: %w", err)
	}
	return &c, nil
}

// GetActive returns the active version for the id.
func (r *RedisRegistry) GetActive(ctx context.Context, id string) (*core.Catalog, error) {
	version, err := r.client.Get(ctx, r.key(redisKeyActive, id)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, core.ErrCatalogNotFound
		}
		return nil, err
	}
	return r.Get(ctx, id, version)
}

// List returns catalogs matching the filter (scans indexes).
func (r *RedisRegistry) List(ctx context.Context, filter Filter) ([]*core.Catalog, error) {
	ids, err := r.client.SMembers(ctx, r.key(redisKeyIDs)).Result()
	if err != nil {
		return nil, err
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 1000
	}
	offset := filter.Offset
	var out []*core.Catalog
	for _, id := range ids {
		if len(filter.IDs) > 0 && !contains(filter.IDs, id) {
			continue
		}
		versions, err := r.client.SMembers(ctx, r.key(redisKeyVersions, id)).Result()
		if err != nil {
			return nil, err
		}
		for _, v := range versions {
			c, err := r.Get(ctx, id, v)
			if err != nil {
				if err == core.ErrCatalogNotFound {
					continue
				}
				return nil, err
			}
			if offset > 0 {
				offset--
				continue
			}
			out = append(out, c)
			if len(out) >= limit {
				return out, nil
			}
		}
	}
	return out, nil
}

// ListVersions returns version info for an id.
func (r *RedisRegistry) ListVersions(ctx context.Context, id string) ([]VersionInfo, error) {
	versions, err := r.client.SMembers(ctx, r.key(redisKeyVersions, id)).Result()
	if err != nil {
		return nil, err
	}
	activeVersion, err := r.client.Get(ctx, r.key(redisKeyActive, id)).Result()
	if err != nil && err != redis.Nil {
		return nil, err
	}
	var infos []VersionInfo
	for _, v := range versions {
		c, err := r.Get(ctx, id, v)
		if err != nil {
			if err == core.ErrCatalogNotFound {
				continue
			}
			return nil, err
		}
		infos = append(infos, VersionInfo{
			ID:        id,
			Version:   v,
			Active:    v == activeVersion,
			CreatedAt: c.CreatedAt,
			UpdatedAt: c.UpdatedAt,
		})
	}
	return infos, nil
}

// Activate marks the given id+version as active.
func (r *RedisRegistry) Activate(ctx context.Context, id, version string) error {
	exists, err := r.client.Get(ctx, r.key(redisKeyCatalog, id, version)).Result()
	if err != nil {
		if err == redis.Nil {
			return core.ErrCatalogNotFound
		}
		return err
	}
	_ = exists
	return r.client.Set(ctx, r.key(redisKeyActive, id), version, time.Duration(0)).Err()
}

// Delete removes a catalog version.
func (r *RedisRegistry) Delete(ctx context.Context, id, version string) error {
	n, err := r.client.Del(ctx, r.key(redisKeyCatalog, id, version)).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return core.ErrCatalogNotFound
	}
	r.client.SRem(ctx, r.key(redisKeyVersions, id), version)
	active, err := r.client.Get(ctx, r.key(redisKeyActive, id)).Result()
	if err == nil && active == version {
		r.client.Del(ctx, r.key(redisKeyActive, id))
	}
	remaining, err := r.client.SMembers(ctx, r.key(redisKeyVersions, id)).Result()
	if err == nil && len(remaining) == 0 {
		r.client.SRem(ctx, r.key(redisKeyIDs), id)
	}
	return nil
}
