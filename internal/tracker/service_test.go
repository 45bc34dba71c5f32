package tracker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mikkelka/gametrack/internal/cache"
	"github.com/Mikkelka/gametrack/internal/model"
	"github.com/Mikkelka/gametrack/internal/order"
	"github.com/Mikkelka/gametrack/internal/queue"
	"github.com/Mikkelka/gametrack/internal/store"
)

// fakeStore implements store.Store for service tests. Items flow through
// the queue rather than the store, so only the platform surface and the
// query used by the cache are real.
type fakeStore struct {
	items     []model.Item
	platforms []model.Platform
	colorSets map[string]string
}

func (f *fakeStore) QueryByOwner(_ context.Context, userID string) ([]model.Item, error) {
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

func (f *fakeStore) Watch(string, func([]store.Change)) func() {
	return func() {}
}

func (f *fakeStore) Platforms(context.Context, string) ([]model.Platform, error) {
	return f.platforms, nil
}

func (f *fakeStore) AddPlatform(_ context.Context, p model.Platform) (*model.Platform, error) {
	f.platforms = append(f.platforms, p)
	return &p, nil
}

func (f *fakeStore) SetPlatformColor(_ context.Context, id, color string) error {
	if f.colorSets == nil {
		f.colorSets = make(map[string]string)
	}
	f.colorSets[id] = color
	for i := range f.platforms {
		if f.platforms[i].ID == id {
			f.platforms[i].Color = color
		}
	}
	return nil
}

func (f *fakeStore) DeletePlatform(_ context.Context, id string) error {
	kept := f.platforms[:0]
	for _, p := range f.platforms {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	f.platforms = kept
	return nil
}

func (f *fakeStore) Close() error { return nil }

type fakeAuth struct {
	id       string
	signedIn bool
}

func (f *fakeAuth) CurrentUserID() (string, bool) { return f.id, f.signedIn }
func (f *fakeAuth) DisplayName() string           { return "Gæst" }
func (f *fakeAuth) SetDisplayName(string) error   { return nil }
func (f *fakeAuth) OnChange(func(string)) func()  { return func() {} }
func (f *fakeAuth) SignOut()                      { f.signedIn = false }

// newTestService builds a service over a real cache and queue. The queue
// never fires on its own; tests drain it with Flush and read the committed
// operations back.
func newTestService(t *testing.T, fs *fakeStore) (*Service, *[]model.Op) {
	t.Helper()

	var committed []model.Op
	commit := func(_ context.Context, ops []model.Op) error {
		committed = append(committed, ops...)
		return nil
	}

	au := &fakeAuth{id: "u1", signedIn: true}
	c := cache.New(fs, au.CurrentUserID, nil)
	c.Load(context.Background())
	q := queue.New(commit, queue.Config{Delay: time.Hour})

	svc := New(Config{
		Store: fs,
		Cache: c,
		Queue: q,
		Auth:  au,
		Now:   func() time.Time { return time.Date(2026, 3, 7, 12, 0, 0, 0, time.UTC) },
	})
	return svc, &committed
}

func item(id string, status model.Status, ord int) model.Item {
	return model.Item{ID: id, Title: id, Status: status, Order: ord, UserID: "u1"}
}

func TestUnauthenticatedMutationsAreNoOps(t *testing.T) {
	fs := &fakeStore{}
	svc, committed := newTestService(t, fs)
	svc.auth.(*fakeAuth).signedIn = false

	_, err := svc.SaveItem(model.Item{Title: "Celeste"})
	assert.ErrorIs(t, err, ErrUnauthenticated)
	assert.ErrorIs(t, svc.DeleteItem("x"), ErrUnauthenticated)
	assert.ErrorIs(t, svc.MoveItem("a", "b", order.Up), ErrUnauthenticated)
	assert.ErrorIs(t, svc.MoveToList("a", model.StatusPlaying), ErrUnauthenticated)
	assert.ErrorIs(t, svc.ToggleFavorite("a"), ErrUnauthenticated)
	assert.ErrorIs(t, svc.SetCompletionDate("a"), ErrUnauthenticated)
	assert.ErrorIs(t, svc.SetPlatformColor(context.Background(), "p", "#000"), ErrUnauthenticated)

	svc.Flush(context.Background())
	assert.Empty(t, *committed, "nothing may reach the store when signed out")
}

func TestSaveItemAssignsIdentityAndOrder(t *testing.T) {
	fs := &fakeStore{items: []model.Item{
		item("a", model.StatusPlaying, 0),
		item("b", model.StatusPlaying, 1),
	}}
	svc, committed := newTestService(t, fs)

	saved, err := svc.SaveItem(model.Item{Title: "Hades", Status: model.StatusPlaying})
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, "u1", saved.UserID)
	assert.Equal(t, 2, saved.Order, "new items land at the bottom of their list")

	svc.Flush(context.Background())
	require.Len(t, *committed, 1)
	op := (*committed)[0]
	assert.Equal(t, model.OpSet, op.Kind)
	assert.Equal(t, saved.ID, op.ID)
	assert.Equal(t, "Hades", op.Item.Title)

	items := svc.cache.Items()
	assert.Len(t, items, 3, "cache updated without waiting for the flush")
}

func TestSaveItemDefaultsInvalidStatus(t *testing.T) {
	fs := &fakeStore{}
	svc, _ := newTestService(t, fs)

	saved, err := svc.SaveItem(model.Item{Title: "Hollow Knight", Status: "backlog"})
	require.NoError(t, err)
	assert.Equal(t, model.StatusWillPlay, saved.Status)
}

func TestDeleteItem(t *testing.T) {
	fs := &fakeStore{items: []model.Item{item("a", model.StatusPlaying, 0)}}
	svc, committed := newTestService(t, fs)

	require.NoError(t, svc.DeleteItem("a"))
	assert.Empty(t, svc.cache.Items())

	svc.Flush(context.Background())
	require.Len(t, *committed, 1)
	assert.Equal(t, model.OpDelete, (*committed)[0].Kind)
	assert.Equal(t, "a", (*committed)[0].ID)
}

func TestMoveItemQueuesOnlyChanged(t *testing.T) {
	fs := &fakeStore{items: []model.Item{
		item("a", model.StatusPlaying, 0),
		item("b", model.StatusPlaying, 1),
		item("c", model.StatusPlaying, 2),
	}}
	svc, committed := newTestService(t, fs)

	require.NoError(t, svc.MoveItem("c", "a", order.Up))

	items := svc.cache.Items()
	require.Len(t, items, 3)
	assert.Equal(t, "c", items[0].ID)
	assert.Equal(t, "a", items[1].ID)
	assert.Equal(t, "b", items[2].ID)

	svc.Flush(context.Background())
	// all three shift by one slot
	require.Len(t, *committed, 3)
	for _, op := range *committed {
		assert.Equal(t, model.OpUpdate, op.Kind)
		require.NotNil(t, op.Patch.Order)
		require.NotNil(t, op.Patch.Status)
		assert.Equal(t, model.StatusPlaying, *op.Patch.Status)
	}
}

func TestMoveToListRejectsUnknownStatus(t *testing.T) {
	fs := &fakeStore{items: []model.Item{item("a", model.StatusPlaying, 0)}}
	svc, _ := newTestService(t, fs)

	assert.ErrorIs(t, svc.MoveToList("a", "shelved"), ErrInvalidStatus)
}

func TestToggleFavorite(t *testing.T) {
	fs := &fakeStore{items: []model.Item{item("a", model.StatusPlaying, 0)}}
	svc, committed := newTestService(t, fs)

	require.NoError(t, svc.ToggleFavorite("a"))
	assert.True(t, svc.cache.Items()[0].Favorite)

	svc.Flush(context.Background())
	require.Len(t, *committed, 1)
	require.NotNil(t, (*committed)[0].Patch.Favorite)
	assert.True(t, *(*committed)[0].Patch.Favorite)

	assert.ErrorIs(t, svc.ToggleFavorite("missing"), ErrItemNotFound)
}

func TestSetCompletionDate(t *testing.T) {
	fs := &fakeStore{items: []model.Item{item("a", model.StatusPlaying, 0)}}
	svc, committed := newTestService(t, fs)

	require.NoError(t, svc.SetCompletionDate("a"))

	got := svc.cache.Items()[0]
	assert.Equal(t, "07-03-2026", got.CompletionDate)
	assert.Equal(t, model.StatusCompleted, got.Status)

	svc.Flush(context.Background())
	require.Len(t, *committed, 1)
	assert.Equal(t, model.OpSet, (*committed)[0].Kind)
	assert.Equal(t, "07-03-2026", (*committed)[0].Item.CompletionDate)
}

func TestChangePlatformCopiesNameAndColor(t *testing.T) {
	fs := &fakeStore{
		items:     []model.Item{item("a", model.StatusPlaying, 0)},
		platforms: []model.Platform{{ID: "p1", Name: "Switch", Color: "#e60012", UserID: "u1"}},
	}
	svc, _ := newTestService(t, fs)

	require.NoError(t, svc.ChangePlatform(context.Background(), "a", "p1"))

	got := svc.cache.Items()[0]
	assert.Equal(t, "Switch", got.Platform)
	assert.Equal(t, "#e60012", got.PlatformColor)

	assert.ErrorIs(t, svc.ChangePlatform(context.Background(), "a", "nope"), ErrPlatformNotFound)
}

func TestSetPlatformColorFansOut(t *testing.T) {
	sw := func(id string, ord int) model.Item {
		it := item(id, model.StatusPlaying, ord)
		it.Platform = "Switch"
		it.PlatformColor = "#fff"
		return it
	}
	pc := item("pc", model.StatusPlaying, 2)
	pc.Platform = "PC"
	pc.PlatformColor = "#333"

	fs := &fakeStore{
		items:     []model.Item{sw("a", 0), sw("b", 1), pc},
		platforms: []model.Platform{{ID: "p1", Name: "Switch", Color: "#fff", UserID: "u1"}},
	}
	svc, committed := newTestService(t, fs)

	require.NoError(t, svc.SetPlatformColor(context.Background(), "p1", "#000"))

	assert.Equal(t, "#000", fs.colorSets["p1"], "platform record recolored")

	for _, it := range svc.cache.Items() {
		if it.Platform == "Switch" {
			assert.Equal(t, "#000", it.PlatformColor)
		} else {
			assert.Equal(t, "#333", it.PlatformColor, "other platforms untouched")
		}
	}

	svc.Flush(context.Background())
	require.Len(t, *committed, 2, "one update per matching item")
	for _, op := range *committed {
		assert.Equal(t, model.OpUpdate, op.Kind)
		require.NotNil(t, op.Patch.PlatformColor)
		assert.Equal(t, "#000", *op.Patch.PlatformColor)
	}
}

func TestSetPlatformColorNoMatchesQueuesNothing(t *testing.T) {
	fs := &fakeStore{
		items:     []model.Item{item("a", model.StatusPlaying, 0)},
		platforms: []model.Platform{{ID: "p1", Name: "Switch", Color: "#fff", UserID: "u1"}},
	}
	svc, committed := newTestService(t, fs)

	require.NoError(t, svc.SetPlatformColor(context.Background(), "p1", "#000"))
	svc.Flush(context.Background())
	assert.Empty(t, *committed)
}
