package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/Mikkelka/gametrack/internal/model"
	"github.com/Mikkelka/gametrack/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore implements store.Store for cache tests; only the query and
// watch surface matters here.
type fakeStore struct {
	items      []model.Item
	queryErr   error
	queryCalls int
	watchFn    func([]store.Change)
	cancels    int
}

func (f *fakeStore) QueryByOwner(_ context.Context, userID string) ([]model.Item, error) {
	f.queryCalls++
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	var out []model.Item
	for _, it := range f.items {
		if it.UserID == userID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (f *fakeStore) Get(context.Context, string) (*model.Item, error) {
	return nil, store.ErrNotFound
}

func (f *fakeStore) Apply(context.Context, []model.Op) error { return nil }

func (f *fakeStore) Watch(_ string, fn func([]store.Change)) func() {
	f.watchFn = fn
	return func() { f.cancels++ }
}

func (f *fakeStore) Platforms(context.Context, string) ([]model.Platform, error) {
	return nil, nil
}

func (f *fakeStore) AddPlatform(_ context.Context, p model.Platform) (*model.Platform, error) {
	return &p, nil
}

func (f *fakeStore) SetPlatformColor(context.Context, string, string) error { return nil }
func (f *fakeStore) DeletePlatform(context.Context, string) error           { return nil }
func (f *fakeStore) Close() error                                           { return nil }

func signedIn(id string) func() (string, bool) {
	return func() (string, bool) { return id, true }
}

func signedOut() (string, bool) { return "", false }

func TestLoadSortsAndMemoizes(t *testing.T) {
	fs := &fakeStore{items: []model.Item{
		{ID: "c", Status: model.StatusPlaying, Order: 1, UserID: "u1"},
		{ID: "a", Status: model.StatusCompleted, Order: 0, UserID: "u1"},
		{ID: "b", Status: model.StatusPlaying, Order: 0, UserID: "u1"},
		{ID: "x", Status: model.StatusPlaying, Order: 0, UserID: "other"},
	}}
	c := New(fs, signedIn("u1"), nil)

	items := c.Load(context.Background())
	require.Len(t, items, 3)
	assert.Equal(t, "a", items[0].ID, "completed sorts before playing")
	assert.Equal(t, "b", items[1].ID)
	assert.Equal(t, "c", items[2].ID)

	c.Load(context.Background())
	assert.Equal(t, 1, fs.queryCalls, "second load served from memory")
	require.NotNil(t, fs.watchFn, "push subscription established")
}

func TestLoadWithoutUserIsEmpty(t *testing.T) {
	fs := &fakeStore{}
	c := New(fs, signedOut, nil)

	assert.Empty(t, c.Load(context.Background()))
	assert.Zero(t, fs.queryCalls)
}

func TestLoadFetchFailureDegradesToEmpty(t *testing.T) {
	fs := &fakeStore{queryErr: errors.New("network down")}
	c := New(fs, signedIn("u1"), nil)

	assert.Empty(t, c.Load(context.Background()))

	// next load retries instead of memoizing the failure
	fs.queryErr = nil
	fs.items = []model.Item{{ID: "a", Status: model.StatusPlaying, UserID: "u1"}}
	assert.Len(t, c.Load(context.Background()), 1)
}

func TestPushChangesMergeAndNotifyOnce(t *testing.T) {
	fs := &fakeStore{items: []model.Item{
		{ID: "a", Status: model.StatusPlaying, Order: 0, UserID: "u1"},
	}}
	c := New(fs, signedIn("u1"), nil)
	c.Load(context.Background())

	var calls int
	var last []model.Item
	cancel := c.Subscribe(func(items []model.Item) {
		calls++
		last = items
	})
	defer cancel()

	fs.watchFn([]store.Change{
		{Kind: store.ChangeModified, Item: model.Item{ID: "a", Status: model.StatusPlaying, Order: 1, UserID: "u1"}},
		{Kind: store.ChangeAdded, Item: model.Item{ID: "b", Status: model.StatusPlaying, Order: 0, UserID: "u1"}},
	})

	assert.Equal(t, 1, calls, "one notification per change batch")
	require.Len(t, last, 2)
	assert.Equal(t, "b", last[0].ID, "resorted after merge")
	assert.Equal(t, "a", last[1].ID)

	fs.watchFn([]store.Change{
		{Kind: store.ChangeRemoved, Item: model.Item{ID: "a", UserID: "u1"}},
	})
	assert.Equal(t, 2, calls)
	require.Len(t, last, 1)
	assert.Equal(t, "b", last[0].ID)
}

func TestSubscribeUnsubscribe(t *testing.T) {
	fs := &fakeStore{}
	c := New(fs, signedIn("u1"), nil)

	var calls int
	cancel := c.Subscribe(func([]model.Item) { calls++ })

	c.SetAll([]model.Item{{ID: "a", Status: model.StatusPlaying, UserID: "u1"}})
	assert.Equal(t, 1, calls)

	cancel()
	cancel() // idempotent
	c.SetAll(nil)
	assert.Equal(t, 1, calls)
}

func TestClearIsIdempotentAndCancelsWatch(t *testing.T) {
	fs := &fakeStore{items: []model.Item{{ID: "a", Status: model.StatusPlaying, UserID: "u1"}}}
	c := New(fs, signedIn("u1"), nil)
	c.Load(context.Background())

	c.Clear()
	c.Clear()

	assert.Empty(t, c.Items())
	assert.Equal(t, 1, fs.cancels)

	// load after clear refetches
	c.Load(context.Background())
	assert.Equal(t, 2, fs.queryCalls)
}

func TestReloadNotifiesWithFreshState(t *testing.T) {
	fs := &fakeStore{items: []model.Item{{ID: "a", Status: model.StatusPlaying, UserID: "u1"}}}
	c := New(fs, signedIn("u1"), nil)
	c.Load(context.Background())

	var last []model.Item
	cancel := c.Subscribe(func(items []model.Item) { last = items })
	defer cancel()

	fs.items = append(fs.items, model.Item{ID: "b", Status: model.StatusPlaying, Order: 1, UserID: "u1"})
	got := c.Reload(context.Background())

	assert.Len(t, got, 2)
	assert.Len(t, last, 2, "subscribers see the reconciled sequence")
}
