package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeGameAction(t *testing.T) {
	id := uuid.New()
	rec, err := DecodeGameAction([]byte(`{"game_id":"` + id.String() + `","action_index":3,"actor":"Ann","action_type":"draw","action_payload":{"handSize":8},"timestamp":1700000000000}`))
	require.NoError(t, err)
	assert.Equal(t, id, rec.GameID)
	assert.Equal(t, 3, rec.ActionIndex)
	assert.Equal(t, "Ann", rec.Actor)
	assert.Equal(t, float64(8), rec.ActionPayload["handSize"])

	_, err = DecodeGameAction([]byte("{"))
	assert.Error(t, err)
}

// TestPublishAndPop needs a running Redis; set REDIS_ADDR to enable it.
func TestPublishAndPop(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	ctx := context.Background()
	rdb, err := Connect(ctx, addr, 0)
	require.NoError(t, err)
	defer rdb.Close()

	queue := "unoflip_test_" + uuid.NewString()
	defer rdb.Del(ctx, queue)

	pub := NewPublisher(rdb, queue)
	rec := GameActionRecord{GameID: uuid.New(), ActionIndex: 1, ActionType: "draw", ActionPayload: map[string]interface{}{}, Timestamp: time.Now().UnixMilli()}
	require.NoError(t, pub.PublishGameAction(ctx, rec))

	got, err := NewConsumer(rdb, queue).Pop(ctx, time.Second)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, rec.GameID, got.GameID)

	got, err = NewConsumer(rdb, queue).Pop(ctx, time.Second)
	require.NoError(t, err)
	assert.Nil(t, got)
}
