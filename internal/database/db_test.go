package database

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/qydan/unoflip/internal/cache"
	"github.com/qydan/unoflip/internal/persist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testPool connects to DATABASE_URL, skipping when it is unset.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set")
	}
	ctx := context.Background()
	pool, err := Connect(ctx, url)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, EnsureSchema(ctx, pool))
	return pool
}

func TestSlotStore(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	store := NewSlotStore(pool)
	name := "test-" + uuid.NewString()
	t.Cleanup(func() { pool.Exec(context.Background(), `DELETE FROM save_slots WHERE name = $1`, name) })

	require.NoError(t, store.PutSlot(ctx, name, []byte{1, 2}))
	require.NoError(t, store.PutSlot(ctx, name, []byte{3}))
	got, err := store.GetSlot(ctx, name)
	require.NoError(t, err)
	assert.Equal(t, []byte{3}, got)

	slots, err := store.ListSlots(ctx)
	require.NoError(t, err)
	found := false
	for _, s := range slots {
		if s.Name == name {
			found = true
			assert.Equal(t, 1, s.Size)
		}
	}
	assert.True(t, found)

	_, err = store.GetSlot(ctx, "missing-"+uuid.NewString())
	assert.ErrorIs(t, err, persist.ErrSlotNotFound)
}

func TestWriteActions(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	store := NewActionStore(pool)
	gameID := uuid.New()
	t.Cleanup(func() { pool.Exec(context.Background(), `DELETE FROM games WHERE id = $1`, gameID) })

	now := time.Now().UnixMilli()
	batch := []cache.GameActionRecord{
		{GameID: gameID, ActionIndex: 1, ActionType: "round_start", ActionPayload: map[string]interface{}{"round": 1}, Timestamp: now},
		{GameID: gameID, ActionIndex: 2, Actor: "Ann", ActionType: "draw", Timestamp: now},
	}
	require.NoError(t, store.WriteActions(ctx, batch))
	// replays are ignored
	require.NoError(t, store.WriteActions(ctx, batch[:1]))

	n, err := store.CountActions(ctx, gameID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	status, err := store.GameStatus(ctx, gameID)
	require.NoError(t, err)
	assert.Equal(t, "in_progress", status)

	require.NoError(t, store.WriteActions(ctx, []cache.GameActionRecord{
		{GameID: gameID, ActionIndex: 3, Actor: "Ann", ActionType: "game_end", Timestamp: now},
	}))
	status, err = store.GameStatus(ctx, gameID)
	require.NoError(t, err)
	assert.Equal(t, "completed", status)

	// completed games are never marked abandoned
	require.NoError(t, store.MarkAbandoned(ctx, gameID))
	status, _ = store.GameStatus(ctx, gameID)
	assert.Equal(t, "completed", status)
}
