// internal/cache/redis.go
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// DefaultQueueName is the Redis list (queue) name for game action logs.
const DefaultQueueName = "unoflip_actions"

// GameActionRecord is one engine action as consumed by the historian.
// Actor is the acting player's name, empty for table events such as reshuffles.
type GameActionRecord struct {
	GameID        uuid.UUID              `json:"game_id"`
	ActionIndex   int                    `json:"action_index"`
	Actor         string                 `json:"actor"`
	ActionType    string                 `json:"action_type"`
	ActionPayload map[string]interface{} `json:"action_payload"`
	Timestamp     int64                  `json:"timestamp"`
}

// Connect creates a Redis client for addr/db and pings it.
func Connect(ctx context.Context, addr string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}
	return rdb, nil
}

// Publisher pushes action records onto a Redis list.
type Publisher struct {
	rdb   *redis.Client
	queue string
}

// NewPublisher returns a publisher writing to queue, or DefaultQueueName when empty.
func NewPublisher(rdb *redis.Client, queue string) *Publisher {
	if queue == "" {
		queue = DefaultQueueName
	}
	return &Publisher{rdb: rdb, queue: queue}
}

// Queue is the list name records are pushed to.
func (p *Publisher) Queue() string { return p.queue }

// PublishGameAction serializes the given record to JSON, then pushes it to the Redis queue.
func (p *Publisher) PublishGameAction(ctx context.Context, record GameActionRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal GameActionRecord: %w", err)
	}
	if err := p.rdb.RPush(ctx, p.queue, data).Err(); err != nil {
		return fmt.Errorf("failed to RPush to Redis list '%s': %w", p.queue, err)
	}
	return nil
}

// PopGameAction blocks up to timeout for the next record on queue.
// It returns (nil, nil) when the timeout elapses with nothing queued.
func PopGameAction(ctx context.Context, rdb *redis.Client, queue string, timeout time.Duration) (*GameActionRecord, error) {
	res, err := rdb.BLPop(ctx, timeout, queue).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("BLPop %s: %w", queue, err)
	}
	// res[0] is the queue name and res[1] the payload.
	if len(res) < 2 {
		return nil, nil
	}
	return DecodeGameAction([]byte(res[1]))
}

// DecodeGameAction parses one queued record.
func DecodeGameAction(data []byte) (*GameActionRecord, error) {
	var rec GameActionRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("invalid action record: %w", err)
	}
	return &rec, nil
}

// Consumer pops action records from a Redis list.
type Consumer struct {
	rdb   *redis.Client
	queue string
}

// NewConsumer reads from queue, or DefaultQueueName when empty.
func NewConsumer(rdb *redis.Client, queue string) *Consumer {
	if queue == "" {
		queue = DefaultQueueName
	}
	return &Consumer{rdb: rdb, queue: queue}
}

// Pop waits up to timeout for the next record; see PopGameAction.
func (c *Consumer) Pop(ctx context.Context, timeout time.Duration) (*GameActionRecord, error) {
	return PopGameAction(ctx, c.rdb, c.queue, timeout)
}
