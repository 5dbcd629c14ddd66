package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/qydan/unoflip/internal/persist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "slots.db"))
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, store.Close()) })
	return store
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open("  ")
	assert.Error(t, err)
}

func TestSlotRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.PutSlot(ctx, "quick", []byte{1, 2, 3}))
	require.NoError(t, store.PutSlot(ctx, "other", []byte{9}))
	require.NoError(t, store.PutSlot(ctx, "quick", []byte{4, 5}))

	got, err := store.GetSlot(ctx, "quick")
	require.NoError(t, err)
	assert.Equal(t, []byte{4, 5}, got)

	slots, err := store.ListSlots(ctx)
	require.NoError(t, err)
	require.Len(t, slots, 2)
	sizes := map[string]int{}
	for _, s := range slots {
		sizes[s.Name] = s.Size
		assert.False(t, s.UpdatedAt.IsZero())
	}
	assert.Equal(t, map[string]int{"quick": 2, "other": 1}, sizes)
}

func TestMissingSlot(t *testing.T) {
	store := openTestStore(t)
	_, err := store.GetSlot(context.Background(), "nothing")
	assert.ErrorIs(t, err, persist.ErrSlotNotFound)

	assert.Error(t, store.PutSlot(context.Background(), "", []byte{1}))
}

func TestReopenKeepsSlots(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slots.db")
	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.PutSlot(context.Background(), "keep", []byte("x")))
	require.NoError(t, store.Close())

	store, err = Open(path)
	require.NoError(t, err)
	defer store.Close()
	got, err := store.GetSlot(context.Background(), "keep")
	require.NoError(t, err)
	assert.Equal(t, []byte("x"), got)
}
