package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kabiwabi/worldWiseAI/core"
)

func TestFileRegistryRoundTrip(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	r, err := NewFileRegistry(dir)
	require.NoError(t, err)

	require.NoError(t, r.Store(ctx, testCatalog("hofstede", "1.0.0")))
	require.NoError(t, r.Store(ctx, testCatalog("hofstede", "1.1.0")))
	require.NoError(t, r.Activate(ctx, "hofstede", "1.1.0"))

	got, err := r.Get(ctx, "hofstede", "1.0.0")
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", got.Version)
	assert.Len(t, got.Exemplars, len(core.Dimensions()))

	active, err := r.GetActive(ctx, "hofstede")
	require.NoError(t, err)
	assert.Equal(t, "1.1.0", active.Version)
}

func TestFileRegistryActiveSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	r, err := NewFileRegistry(dir)
	require.NoError(t, err)
	require.NoError(t, r.Store(ctx, testCatalog("hofstede", "1.0.0")))
	require.NoError(t, r.Activate(ctx, "hofstede", "1.0.0"))

	reopened, err := NewFileRegistry(dir)
	require.NoError(t, err)
	active, err := reopened.GetActive(ctx, "hofstede")
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", active.Version)
}

func TestFileRegistryListAndVersions(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	r, err := NewFileRegistry(dir)
	require.NoError(t, err)
	require.NoError(t, r.Store(ctx, testCatalog("hofstede", "1.0.0")))
	require.NoError(t, r.Store(ctx, testCatalog("regional", "1.0.0")))

	all, err := r.List(ctx, Filter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	infos, err := r.ListVersions(ctx, "hofstede")
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.False(t, infos[0].Active)
}

func TestFileRegistryDelete(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	r, err := NewFileRegistry(dir)
	require.NoError(t, err)
	require.NoError(t, r.Store(ctx, testCatalog("hofstede", "1.0.0")))
	require.NoError(t, r.Activate(ctx, "hofstede", "1.0.0"))

	require.NoError(t, r.Delete(ctx, "hofstede", "1.0.0"))
	_, err = r.Get(ctx, "hofstede", "1.0.0")
	assert.ErrorIs(t, err, core.ErrCatalogNotFound)
	_, err = r.GetActive(ctx, "hofstede")
	assert.ErrorIs(t, err, core.ErrCatalogNotFound)

	err = r.Delete(ctx, "hofstede", "1.0.0")
	assert.ErrorIs(t, err, core.ErrCatalogNotFound)
}
