package store_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pathviz/gridgraph"
	"github.com/katalvlaran/pathviz/internal/metrics"
	"github.com/katalvlaran/pathviz/internal/store"
)

func openMemory(t *testing.T, m *metrics.Metrics) *store.Store {
	t.Helper()
	s, err := store.Open(store.Config{InMemory: true, Metrics: m})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return s
}

func sampleLayout(t *testing.T) gridgraph.Layout {
	t.Helper()
	l, err := gridgraph.ParseLayout("S.#..\n.~#..\n....D")
	require.NoError(t, err)
	l.WaterCost = 4

	return l
}

func TestStore_CRUD(t *testing.T) {
	ctx := context.Background()
	s := openMemory(t, nil)
	l := sampleLayout(t)

	rec, err := s.Create(ctx, "detour", l)
	require.NoError(t, err)
	_, err = uuid.Parse(rec.ID)
	require.NoError(t, err)
	assert.False(t, rec.CreatedAt.IsZero())

	got, err := s.Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.Name, got.Name)
	assert.Equal(t, l, got.Layout)
	assert.True(t, rec.CreatedAt.Equal(got.CreatedAt))

	l2 := l
	l2.Walls = nil
	upd, err := s.Update(ctx, rec.ID, "open", l2)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, upd.ID)
	got, err = s.Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "open", got.Name)
	assert.Empty(t, got.Layout.Walls)

	require.NoError(t, s.Delete(ctx, rec.ID))
	_, err = s.Get(ctx, rec.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, rec.ID), store.ErrNotFound)
}

// TestStore_CanonicalLayout checks that walls and water are stored in
// row-major order without duplicates and that a wall cell loses its water.
func TestStore_CanonicalLayout(t *testing.T) {
	ctx := context.Background()
	s := openMemory(t, nil)
	l := gridgraph.Layout{
		Rows: 3, Cols: 3,
		Source:      gridgraph.Cell{Row: 0, Col: 0},
		Destination: gridgraph.Cell{Row: 2, Col: 2},
		Walls:       []gridgraph.Cell{{Row: 1, Col: 1}, {Row: 0, Col: 2}, {Row: 1, Col: 1}},
		Water:       []gridgraph.Cell{{Row: 2, Col: 0}, {Row: 1, Col: 1}, {Row: 0, Col: 1}},
	}

	rec, err := s.Create(ctx, "messy", l)
	require.NoError(t, err)
	assert.Equal(t, []gridgraph.Cell{{Row: 0, Col: 2}, {Row: 1, Col: 1}}, rec.Layout.Walls)
	assert.Equal(t, []gridgraph.Cell{{Row: 0, Col: 1}, {Row: 2, Col: 0}}, rec.Layout.Water)

	got, err := s.Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.Layout, got.Layout)
}

func TestStore_List(t *testing.T) {
	ctx := context.Background()
	s := openMemory(t, nil)
	l := sampleLayout(t)

	empty, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	var ids []string
	for _, name := range []string{"a", "b", "c"} {
		rec, err := s.Create(ctx, name, l)
		require.NoError(t, err)
		ids = append(ids, rec.ID)
	}
	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	for _, sum := range list {
		assert.Contains(t, ids, sum.ID)
		assert.Equal(t, 3, sum.Rows)
		assert.Equal(t, 5, sum.Cols)
	}
	for i := 1; i < len(list); i++ {
		assert.False(t, list[i].CreatedAt.Before(list[i-1].CreatedAt))
	}
}

func TestStore_Invalid(t *testing.T) {
	ctx := context.Background()
	s := openMemory(t, nil)
	l := sampleLayout(t)

	_, err := s.Create(ctx, "", l)
	assert.ErrorIs(t, err, store.ErrInvalid)

	bad := l
	bad.Walls = append(bad.Walls, l.Destination)
	_, err = s.Create(ctx, "blocked", bad)
	assert.ErrorIs(t, err, store.ErrInvalid)
	assert.ErrorIs(t, err, gridgraph.ErrBlockedEndpoint)

	_, err = s.Get(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, store.ErrInvalid)

	_, err = s.Update(ctx, uuid.NewString(), "x", l)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestStore_ContextCancelled(t *testing.T) {
	s := openMemory(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Create(ctx, "x", sampleLayout(t))
	assert.ErrorIs(t, err, context.Canceled)
	_, err = s.List(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStore_Persistent(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := store.Open(store.Config{Path: dir})
	require.NoError(t, err)
	rec, err := s.Create(ctx, "kept", sampleLayout(t))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = store.Open(store.Config{Path: dir})
	require.NoError(t, err)
	defer s.Close()
	got, err := s.Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "kept", got.Name)
}

func TestStore_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	s := openMemory(t, metrics.New(reg))
	ctx := context.Background()

	rec, err := s.Create(ctx, "m", sampleLayout(t))
	require.NoError(t, err)
	_, _ = s.Get(ctx, rec.ID)
	_, _ = s.Get(ctx, uuid.NewString())

	n, err := testutil.GatherAndCount(reg, "pathviz_store_operations_total")
	require.NoError(t, err)
	assert.Equal(t, 3, n, "create/ok, get/ok, get/error")
}

func TestOpen_RequiresPath(t *testing.T) {
	_, err := store.Open(store.Config{})
	assert.Error(t, err)
}
