package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Mikkelka/gametrack/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingCommitter struct {
	mu      sync.Mutex
	batches [][]model.Op
	fail    bool
}

func (r *recordingCommitter) commit(_ context.Context, ops []model.Op) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return errors.New("store unavailable")
	}
	batch := append([]model.Op(nil), ops...)
	r.batches = append(r.batches, batch)
	return nil
}

func (r *recordingCommitter) batchCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.batches)
}

func (r *recordingCommitter) opCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, b := range r.batches {
		n += len(b)
	}
	return n
}

func setOps(n int) []model.Op {
	ops := make([]model.Op, n)
	for i := range ops {
		ops[i] = model.SetOp(model.Item{ID: string(rune('a' + i%26))})
	}
	return ops
}

func TestFlushEmptyIsNoOp(t *testing.T) {
	rec := &recordingCommitter{}
	q := New(rec.commit, Config{})
	defer q.Close()

	q.Flush(context.Background())

	assert.Zero(t, rec.batchCount())
	assert.False(t, q.HasUnsynced())
}

func TestDebounceCoalescesBurst(t *testing.T) {
	rec := &recordingCommitter{}
	flushes := make(chan int, 8)
	q := New(rec.commit, Config{
		Delay:     30 * time.Millisecond,
		OnFlushed: func(sent int) { flushes <- sent },
	})
	defer q.Close()

	for i := 0; i < 10; i++ {
		q.Enqueue(model.SetOp(model.Item{ID: "x"}))
	}

	select {
	case sent := <-flushes:
		assert.Equal(t, 10, sent)
	case <-time.After(2 * time.Second):
		t.Fatal("debounce never fired")
	}

	assert.Equal(t, 1, rec.batchCount(), "burst must coalesce into one flush")

	// quiet period with no enqueues: no second flush
	select {
	case <-flushes:
		t.Fatal("unexpected second flush")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestEnqueueResetsTimer(t *testing.T) {
	rec := &recordingCommitter{}
	flushes := make(chan int, 1)
	q := New(rec.commit, Config{
		Delay:     60 * time.Millisecond,
		OnFlushed: func(sent int) { flushes <- sent },
	})
	defer q.Close()

	// keep poking before the quiet period elapses
	for i := 0; i < 4; i++ {
		q.Enqueue(model.DeleteOp("x"))
		time.Sleep(20 * time.Millisecond)
	}

	select {
	case <-flushes:
	case <-time.After(2 * time.Second):
		t.Fatal("flush never fired after quiet period")
	}
	assert.Equal(t, 1, rec.batchCount())
}

func TestFlushSlicesIntoBatches(t *testing.T) {
	rec := &recordingCommitter{}
	q := New(rec.commit, Config{Limit: 500})
	defer q.Close()

	q.Enqueue(setOps(1203)...)
	q.Flush(context.Background())

	require.Equal(t, 3, rec.batchCount(), "ceil(1203/500) commits")
	assert.Len(t, rec.batches[0], 500)
	assert.Len(t, rec.batches[1], 500)
	assert.Len(t, rec.batches[2], 203)
	assert.Equal(t, 1203, rec.opCount())
	assert.Zero(t, q.Pending())
	assert.False(t, q.HasUnsynced())
}

func TestCommitFailureDropsSliceButKeepsDraining(t *testing.T) {
	calls := 0
	fn := func(_ context.Context, ops []model.Op) error {
		calls++
		if calls == 1 {
			return errors.New("commit rejected")
		}
		return nil
	}
	var flushed int
	q := New(fn, Config{Limit: 2, OnFlushed: func(sent int) { flushed = sent }})
	defer q.Close()

	q.Enqueue(setOps(5)...)
	q.Flush(context.Background())

	assert.Equal(t, 3, calls, "remaining slices still sent after a failure")
	assert.Zero(t, q.Pending(), "failed slice is not re-queued")
	assert.Equal(t, 3, flushed, "only committed operations counted")
}

func TestFlushReentrancy(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var mu sync.Mutex
	committed := 0
	fn := func(_ context.Context, ops []model.Op) error {
		select {
		case started <- struct{}{}:
		default:
		}
		<-release
		mu.Lock()
		committed += len(ops)
		mu.Unlock()
		return nil
	}
	q := New(fn, Config{Limit: 500})
	defer q.Close()

	q.Enqueue(setOps(3)...)

	go q.Flush(context.Background())
	<-started

	// a second flush while the first is mid-flight must not double-send
	q.Flush(context.Background())
	close(release)

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return committed == 3
	}, 2*time.Second, 10*time.Millisecond)
}

func TestEnqueueAfterCloseIsDropped(t *testing.T) {
	rec := &recordingCommitter{}
	q := New(rec.commit, Config{})
	q.Close()

	q.Enqueue(model.SetOp(model.Item{ID: "x"}))
	assert.Zero(t, q.Pending())
}
