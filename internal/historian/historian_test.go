// internal/historian/historian_test.go
package historian

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/qydan/unoflip/internal/cache"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chanQueue serves records pushed onto a channel.
type chanQueue chan cache.GameActionRecord

func (q chanQueue) Pop(ctx context.Context, timeout time.Duration) (*cache.GameActionRecord, error) {
	select {
	case rec := <-q:
		return &rec, nil
	case <-time.After(timeout):
		return nil, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

type memSink struct {
	mu        sync.Mutex
	batches   [][]cache.GameActionRecord
	abandoned []uuid.UUID
	failNext  bool
}

func (m *memSink) WriteActions(_ context.Context, recs []cache.GameActionRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failNext {
		m.failNext = false
		return errors.New("db down")
	}
	m.batches = append(m.batches, recs)
	return nil
}

func (m *memSink) MarkAbandoned(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.abandoned = append(m.abandoned, id)
	return nil
}

func (m *memSink) total() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, b := range m.batches {
		n += len(b)
	}
	return n
}

func quietLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

func record(game uuid.UUID, idx int, typ string) cache.GameActionRecord {
	return cache.GameActionRecord{GameID: game, ActionIndex: idx, ActionType: typ, Timestamp: time.Now().UnixMilli()}
}

func TestFlushesFullBatch(t *testing.T) {
	sink := &memSink{}
	s := New(chanQueue(nil), sink, Options{BatchSize: 3}, quietLogger())
	game := uuid.New()
	ctx := context.Background()

	s.add(ctx, record(game, 1, "draw"))
	s.add(ctx, record(game, 2, "next_turn"))
	assert.Equal(t, 2, s.Pending())
	assert.Zero(t, sink.total())

	s.add(ctx, record(game, 3, "play"))
	assert.Zero(t, s.Pending())
	require.Len(t, sink.batches, 1)
	assert.Len(t, sink.batches[0], 3)
}

func TestFailedFlushIsRetried(t *testing.T) {
	sink := &memSink{failNext: true}
	s := New(chanQueue(nil), sink, Options{BatchSize: 10}, quietLogger())
	ctx := context.Background()
	s.add(ctx, record(uuid.New(), 1, "draw"))

	s.Flush(ctx)
	assert.Equal(t, 1, s.Pending())
	s.Flush(ctx)
	assert.Zero(t, s.Pending())
	assert.Equal(t, 1, sink.total())
}

func TestRunDrainsQueue(t *testing.T) {
	q := make(chanQueue, 10)
	sink := &memSink{}
	s := New(q, sink, Options{BatchSize: 100, FlushInterval: 20 * time.Millisecond}, quietLogger())
	game := uuid.New()
	for i := 1; i <= 4; i++ {
		q <- record(game, i, "draw")
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	require.Eventually(t, func() bool { return sink.total() == 4 }, 2*time.Second, 10*time.Millisecond)

	q <- record(game, 5, "game_end")
	require.Eventually(t, func() bool { return sink.total() == 5 }, 2*time.Second, 10*time.Millisecond)
	cancel()
	require.NoError(t, <-done)
}

func TestSweepMarksIdleGames(t *testing.T) {
	sink := &memSink{}
	s := New(chanQueue(nil), sink, Options{Inactivity: time.Minute}, quietLogger())
	clock := time.Now()
	s.now = func() time.Time { return clock }

	idle, active, finished := uuid.New(), uuid.New(), uuid.New()
	ctx := context.Background()
	s.add(ctx, record(idle, 1, "draw"))
	s.add(ctx, record(finished, 1, "draw"))
	s.add(ctx, record(finished, 2, "game_end"))

	clock = clock.Add(2 * time.Minute)
	s.add(ctx, record(active, 1, "draw"))
	s.sweepInactive(ctx)

	assert.Equal(t, []uuid.UUID{idle}, sink.abandoned)
}
