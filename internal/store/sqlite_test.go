package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielerenburg1/address-checker/internal/neighborhood"
	"github.com/danielerenburg1/address-checker/pkg/geocode"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	st, err := NewSQLite(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() }) //nolint:errcheck
	require.NoError(t, st.Migrate(context.Background()))
	return st
}

func TestSQLite_CreateListRoundtrip(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	created, err := st.Create(ctx, neighborhood.Neighborhood{Name: "Florentin", Polygon: testPolygon()})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	set, err := st.List(ctx)
	require.NoError(t, err)
	require.Len(t, set, 1)
	assert.Equal(t, "Florentin", set[0].Name)
	assert.Equal(t, testPolygon(), set[0].Polygon)
}

func TestSQLite_ListPreservesInsertionOrder(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	for _, name := range []string{"first", "second", "third"} {
		_, err := st.Create(ctx, neighborhood.Neighborhood{Name: name, Polygon: testPolygon()})
		require.NoError(t, err)
	}

	set, err := st.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second", "third"}, set.Names())
}

func TestSQLite_GetAndDelete(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	created, err := st.Create(ctx, neighborhood.Neighborhood{Name: "Neve Tzedek", Polygon: testPolygon()})
	require.NoError(t, err)

	got, err := st.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Neve Tzedek", got.Name)

	require.NoError(t, st.Delete(ctx, created.ID))

	_, err = st.Get(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, st.Delete(ctx, created.ID), ErrNotFound)
}

func TestSQLite_GeocodeCache(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()
	cache := st.GeocodeCache(30)

	// Miss returns nil, nil.
	hit, err := cache.Get(ctx, "missing-key")
	require.NoError(t, err)
	assert.Nil(t, hit)

	want := &geocode.Result{
		Latitude:         32.0853,
		Longitude:        34.7818,
		FormattedAddress: "Tel Aviv-Yafo, Israel",
		Quality:          "approximate",
		Matched:          true,
	}
	require.NoError(t, cache.Put(ctx, "key1", want))

	hit, err = cache.Get(ctx, "key1")
	require.NoError(t, err)
	require.NotNil(t, hit)
	assert.InDelta(t, want.Latitude, hit.Latitude, 1e-9)
	assert.InDelta(t, want.Longitude, hit.Longitude, 1e-9)
	assert.Equal(t, want.FormattedAddress, hit.FormattedAddress)
	assert.True(t, hit.Matched)

	// Upsert overwrites.
	want.Matched = false
	require.NoError(t, cache.Put(ctx, "key1", want))
	hit, err = cache.Get(ctx, "key1")
	require.NoError(t, err)
	require.NotNil(t, hit)
	assert.False(t, hit.Matched)
}

func TestSQLite_GeocodeCache_CachesNonMatches(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()
	cache := st.GeocodeCache(0)

	require.NoError(t, cache.Put(ctx, "bad-addr", &geocode.Result{Matched: false}))

	hit, err := cache.Get(ctx, "bad-addr")
	require.NoError(t, err)
	require.NotNil(t, hit)
	assert.False(t, hit.Matched)
}
