// Package historian drains engine action records from a queue and persists them in batches.
package historian

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/qydan/unoflip/internal/cache"
	"github.com/sirupsen/logrus"
)

// Queue yields queued action records. Pop returns (nil, nil) when nothing arrived in time.
type Queue interface {
	Pop(ctx context.Context, timeout time.Duration) (*cache.GameActionRecord, error)
}

// Sink persists action records.
type Sink interface {
	WriteActions(ctx context.Context, records []cache.GameActionRecord) error
	MarkAbandoned(ctx context.Context, gameID uuid.UUID) error
}

// Options tune batching. Zero fields take the defaults.
type Options struct {
	BatchSize     int
	FlushInterval time.Duration
	Inactivity    time.Duration // a game idle this long is marked abandoned
}

func (o Options) withDefaults() Options {
	if o.BatchSize <= 0 {
		o.BatchSize = 20
	}
	if o.FlushInterval <= 0 {
		o.FlushInterval = 500 * time.Millisecond
	}
	if o.Inactivity <= 0 {
		o.Inactivity = 10 * time.Minute
	}
	return o
}

// Service moves records from a Queue to a Sink and marks idle games abandoned.
type Service struct {
	queue  Queue
	sink   Sink
	opts   Options
	logger *logrus.Entry

	batchMu      sync.Mutex
	batch        []cache.GameActionRecord
	lastActivity map[uuid.UUID]time.Time
	now          func() time.Time
}

func New(queue Queue, sink Sink, opts Options, logger *logrus.Entry) *Service {
	opts = opts.withDefaults()
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Service{
		queue:        queue,
		sink:         sink,
		opts:         opts,
		logger:       logger.WithField("component", "historian"),
		batch:        make([]cache.GameActionRecord, 0, opts.BatchSize),
		lastActivity: make(map[uuid.UUID]time.Time),
		now:          time.Now,
	}
}

// Run consumes the queue until ctx is cancelled, then flushes what is left.
func (s *Service) Run(ctx context.Context) error {
	s.logger.Info("historian started")
	lastFlush := s.now()
	lastSweep := s.now()

	for {
		if ctx.Err() != nil {
			// the run context is gone; give the final flush its own deadline
			flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			s.Flush(flushCtx)
			cancel()
			s.logger.Info("historian shutting down")
			return nil
		}

		rec, err := s.queue.Pop(ctx, s.opts.FlushInterval)
		switch {
		case err != nil && ctx.Err() == nil:
			s.logger.WithError(err).Error("pop failed")
			time.Sleep(s.opts.FlushInterval)
		case rec != nil:
			s.add(ctx, *rec)
		}

		if s.now().Sub(lastFlush) >= s.opts.FlushInterval {
			s.Flush(ctx)
			lastFlush = s.now()
		}
		if s.now().Sub(lastSweep) >= time.Minute {
			s.sweepInactive(ctx)
			lastSweep = s.now()
		}
	}
}

// add appends a record, flushing when the batch is full.
func (s *Service) add(ctx context.Context, rec cache.GameActionRecord) {
	s.batchMu.Lock()
	s.lastActivity[rec.GameID] = s.now()
	if rec.ActionType == "game_end" {
		delete(s.lastActivity, rec.GameID)
	}
	s.batch = append(s.batch, rec)
	full := len(s.batch) >= s.opts.BatchSize
	s.batchMu.Unlock()

	if full {
		s.Flush(ctx)
	}
}

// Flush writes the pending batch. A failed batch is kept and retried on the next flush.
func (s *Service) Flush(ctx context.Context) {
	s.batchMu.Lock()
	defer s.batchMu.Unlock()

	if len(s.batch) == 0 {
		return
	}
	batchCopy := make([]cache.GameActionRecord, len(s.batch))
	copy(batchCopy, s.batch)

	if err := s.sink.WriteActions(ctx, batchCopy); err != nil {
		s.logger.WithError(err).Errorf("flush of %d actions failed", len(batchCopy))
		return
	}
	s.batch = s.batch[:0]
	s.logger.Debugf("Flushed %d actions to DB.", len(batchCopy))
}

// Pending is the number of records waiting for the next flush.
func (s *Service) Pending() int {
	s.batchMu.Lock()
	defer s.batchMu.Unlock()
	return len(s.batch)
}

// sweepInactive marks games that have been silent past the inactivity threshold.
func (s *Service) sweepInactive(ctx context.Context) {
	now := s.now()
	var idle []uuid.UUID
	s.batchMu.Lock()
	for id, last := range s.lastActivity {
		if now.Sub(last) > s.opts.Inactivity {
			idle = append(idle, id)
			delete(s.lastActivity, id)
		}
	}
	s.batchMu.Unlock()

	for _, id := range idle {
		if err := s.sink.MarkAbandoned(ctx, id); err != nil {
			s.logger.WithError(err).Warnf("failed to mark game %v abandoned", id)
			continue
		}
		s.logger.Infof("Marked game %v as 'abandoned' due to inactivity.", id)
	}
}
