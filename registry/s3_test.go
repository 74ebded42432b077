package registry

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kabiwabi/worldWiseAI/core"
)

// memBlobStore is an in-memory BlobStore used to exercise S3Registry without
// a real bucket.
type memBlobStore struct {
	objects map[string][]byte
}

func newMemBlobStore() *memBlobStore {
	return &memBlobStore{objects: make(map[string][]byte)}
}

func (m *memBlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, ok := m.objects[key]
	if !ok {
		return nil, fmt.Errorf("key not found: %s", key)
	}
	return data, nil
}

func (m *memBlobStore) Put(ctx context.Context, key string, body []byte) error {
	m.objects[key] = body
	return nil
}

func (m *memBlobStore) List(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	for k := range m.objects {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (m *memBlobStore) Delete(ctx context.Context, key string) error {
	delete(m.objects, key)
	return nil
}

func TestS3RegistryRoundTrip(t *testing.T) {
	ctx := context.Background()
	r := NewS3Registry(newMemBlobStore(), "worldwise")

	require.NoError(t, r.Store(ctx, testCatalog("hofstede", "1.0.0")))
	require.NoError(t, r.Store(ctx, testCatalog("hofstede", "1.1.0")))

	got, err := r.Get(ctx, "hofstede", "1.0.0")
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", got.Version)
	assert.Len(t, got.References, 5)

	_, err = r.Get(ctx, "hofstede", "9.9.9")
	assert.ErrorIs(t, err, core.ErrCatalogNotFound)
}

func TestS3RegistryActivate(t *testing.T) {
	ctx := context.Background()
	r := NewS3Registry(newMemBlobStore(), "")

	require.NoError(t, r.Store(ctx, testCatalog("hofstede", "1.0.0")))

	_, err := r.GetActive(ctx, "hofstede")
	assert.ErrorIs(t, err, core.ErrCatalogNotFound)

	err = r.Activate(ctx, "hofstede", "9.9.9")
	assert.ErrorIs(t, err, core.ErrCatalogNotFound)

	require.NoError(t, r.Activate(ctx, "hofstede", "1.0.0"))
	active, err := r.GetActive(ctx, "hofstede")
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", active.Version)
}

func TestS3RegistryListAndVersions(t *testing.T) {
	ctx := context.Background()
	r := NewS3Registry(newMemBlobStore(), "worldwise")

	require.NoError(t, r.Store(ctx, testCatalog("hofstede", "1.0.0")))
	require.NoError(t, r.Store(ctx, testCatalog("regional", "1.0.0")))
	require.NoError(t, r.Activate(ctx, "hofstede", "1.0.0"))

	all, err := r.List(ctx, Filter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	only, err := r.List(ctx, Filter{IDs: []string{"regional"}})
	require.NoError(t, err)
	require.Len(t, only, 1)
	assert.Equal(t, "regional", only[0].ID)

	infos, err := r.ListVersions(ctx, "hofstede")
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.True(t, infos[0].Active)
}

func TestS3RegistryDelete(t *testing.T) {
	ctx := context.Background()
	store := newMemBlobStore()
	r := NewS3Registry(store, "worldwise")

	require.NoError(t, r.Store(ctx, testCatalog("hofstede", "1.0.0")))
	require.NoError(t, r.Activate(ctx, "hofstede", "1.0.0"))

	require.NoError(t, r.Delete(ctx, "hofstede", "1.0.0"))
	_, err := r.Get(ctx, "hofstede", "1.0.0")
	assert.ErrorIs(t, err, core.ErrCatalogNotFound)
	_, err = r.GetActive(ctx, "hofstede")
	assert.ErrorIs(t, err, core.ErrCatalogNotFound)
	assert.Empty(t, store.objects)

	err = r.Delete(ctx, "hofstede", "1.0.0")
	assert.ErrorIs(t, err, core.ErrCatalogNotFound)
}
