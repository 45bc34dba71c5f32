// Package queue accumulates pending document writes and commits them to the
// store in debounced, bounded-size batches.
package queue

import (
	"context"
	"sync"
	"time"

	"github.com/Mikkelka/gametrack/internal/logger"
	"github.com/Mikkelka/gametrack/internal/model"
)

const (
	// DefaultDelay is the quiet period after the last enqueue before a
	// flush fires. Rapid successive edits coalesce into one flush.
	DefaultDelay = 5 * time.Second

	// DefaultLimit caps the number of operations per batch commit.
	DefaultLimit = 500
)

// CommitFunc submits one batch as a single atomic commit.
type CommitFunc func(ctx context.Context, ops []model.Op) error

// Config holds queue tuning knobs. Zero values pick the defaults.
type Config struct {
	Delay time.Duration
	Limit int

	// OnFlushed runs after a drain that committed at least one batch,
	// with the number of operations sent. Used for the cache reload and
	// the sync notification.
	OnFlushed func(sent int)

	Logger *logger.Logger
}

// Queue is the batched sync queue. Safe for bursts of Enqueue calls; the
// pending list is drained by destructive slicing so a concurrently
// triggered flush can never send the same operation twice.
type Queue struct {
	mu       sync.Mutex
	ops      []model.Op
	dirty    bool
	flushing bool
	timer    *time.Timer
	closed   bool

	delay     time.Duration
	limit     int
	commit    CommitFunc
	onFlushed func(int)
	log       *logger.Logger
}

// New creates a queue committing through fn.
func New(fn CommitFunc, cfg Config) *Queue {
	if cfg.Delay <= 0 {
		cfg.Delay = DefaultDelay
	}
	if cfg.Limit <= 0 {
		cfg.Limit = DefaultLimit
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.NewDiscard()
	}
	return &Queue{
		delay:     cfg.Delay,
		limit:     cfg.Limit,
		commit:    fn,
		onFlushed: cfg.OnFlushed,
		log:       cfg.Logger,
	}
}

// Enqueue appends operations to the pending list and (re)starts the
// debounce timer.
func (q *Queue) Enqueue(ops ...model.Op) {
	if len(ops) == 0 {
		return
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.ops = append(q.ops, ops...)
	q.dirty = true
	if q.timer == nil {
		q.timer = time.AfterFunc(q.delay, q.onTimer)
		return
	}
	q.timer.Reset(q.delay)
}

func (q *Queue) onTimer() {
	q.mu.Lock()
	dirty := q.dirty
	q.mu.Unlock()
	if !dirty {
		q.log.Debug("debounce fired with no unsynced changes")
		return
	}
	q.Flush(context.Background())
}

// Flush drains the pending list in batches of at most the configured limit,
// one commit settling before the next slice is sent. A slice whose commit
// fails is logged and lost; remaining slices are still sent. An empty
// pending list performs no commit at all.
func (q *Queue) Flush(ctx context.Context) {
	q.mu.Lock()
	if q.flushing {
		q.mu.Unlock()
		return
	}
	q.flushing = true
	total := len(q.ops)
	q.mu.Unlock()

	if total > 0 {
		q.log.Info("starting sync", "pending", total)
	}

	sent := 0
	for {
		q.mu.Lock()
		if len(q.ops) == 0 {
			q.dirty = false
			q.mu.Unlock()
			break
		}
		n := q.limit
		if n > len(q.ops) {
			n = len(q.ops)
		}
		batch := q.ops[:n]
		q.ops = q.ops[n:]
		q.mu.Unlock()

		var sets, updates, deletes int
		for _, op := range batch {
			switch op.Kind {
			case model.OpSet:
				sets++
			case model.OpUpdate:
				updates++
			case model.OpDelete:
				deletes++
			}
		}

		if err := q.commit(ctx, batch); err != nil {
			q.log.Error("batch commit failed, operations dropped",
				"error", err, "set", sets, "update", updates, "delete", deletes)
			continue
		}
		sent += len(batch)
		q.log.Debug("batch committed", "set", sets, "update", updates, "delete", deletes)
	}

	q.mu.Lock()
	q.flushing = false
	q.mu.Unlock()

	if sent > 0 {
		q.log.Info("sync complete", "sent", sent)
		if q.onFlushed != nil {
			q.onFlushed(sent)
		}
	}
}

// HasUnsynced reports whether changes are waiting for a flush.
func (q *Queue) HasUnsynced() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.dirty
}

// Pending returns the number of queued operations.
func (q *Queue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.ops)
}

// Close stops the debounce timer. Already queued operations are not
// flushed; callers wanting a final drain call Flush first.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	if q.timer != nil {
		q.timer.Stop()
		q.timer = nil
	}
}
