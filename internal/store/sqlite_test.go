package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Mikkelka/gametrack/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *SQLite {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(dbPath, nil)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSetThenGetRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	want := model.Item{
		ID:             "g1",
		Title:          "Hollow Knight",
		Status:         model.StatusPlaying,
		Order:          2,
		Platform:       "Switch",
		PlatformColor:  "#e60012",
		Favorite:       true,
		CompletionDate: "04-07-2025",
		UserID:         "u1",
	}

	require.NoError(t, s.Apply(ctx, []model.Op{model.SetOp(want)}))

	got, err := s.Get(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, want, *got)
}

func TestGetMissing(t *testing.T) {
	s := openTestStore(t)
	_, err := s.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestQueryByOwnerScoping(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Apply(ctx, []model.Op{
		model.SetOp(model.Item{ID: "a", Title: "A", Status: model.StatusUpcoming, UserID: "u1"}),
		model.SetOp(model.Item{ID: "b", Title: "B", Status: model.StatusUpcoming, UserID: "u2"}),
		model.SetOp(model.Item{ID: "c", Title: "C", Status: model.StatusPlaying, UserID: "u1"}),
	}))

	items, err := s.QueryByOwner(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	for _, it := range items {
		assert.Equal(t, "u1", it.UserID)
	}
}

func TestUpdatePatchesOnlyGivenFields(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Apply(ctx, []model.Op{
		model.SetOp(model.Item{ID: "a", Title: "A", Status: model.StatusPlaying, Order: 3, Platform: "PC", UserID: "u1"}),
	}))

	newOrder := 0
	newStatus := model.StatusCompleted
	require.NoError(t, s.Apply(ctx, []model.Op{
		model.UpdateOp("a", model.ItemPatch{Order: &newOrder, Status: &newStatus}),
	}))

	got, err := s.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, got.Status)
	assert.Equal(t, 0, got.Order)
	assert.Equal(t, "A", got.Title, "untouched fields survive")
	assert.Equal(t, "PC", got.Platform)
}

func TestUpdateMissingDocumentIsSkipped(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	color := "#000"
	err := s.Apply(ctx, []model.Op{
		model.SetOp(model.Item{ID: "a", Title: "A", Status: model.StatusPlaying, UserID: "u1"}),
		model.UpdateOp("ghost", model.ItemPatch{PlatformColor: &color}),
	})
	require.NoError(t, err)

	_, err = s.Get(ctx, "a")
	assert.NoError(t, err, "rest of the batch still commits")
}

func TestDelete(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Apply(ctx, []model.Op{
		model.SetOp(model.Item{ID: "a", Title: "A", Status: model.StatusPlaying, UserID: "u1"}),
	}))
	require.NoError(t, s.Apply(ctx, []model.Op{model.DeleteOp("a")}))

	_, err := s.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)

	// deleting again is harmless
	assert.NoError(t, s.Apply(ctx, []model.Op{model.DeleteOp("a")}))
}

func TestWatchDeliversScopedChangeBatches(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var got [][]Change
	cancel := s.Watch("u1", func(changes []Change) {
		got = append(got, changes)
	})
	defer cancel()

	require.NoError(t, s.Apply(ctx, []model.Op{
		model.SetOp(model.Item{ID: "a", Title: "A", Status: model.StatusPlaying, UserID: "u1"}),
		model.SetOp(model.Item{ID: "b", Title: "B", Status: model.StatusPlaying, UserID: "u2"}),
	}))

	require.Len(t, got, 1, "one notification per commit")
	require.Len(t, got[0], 1, "other owners filtered out")
	assert.Equal(t, ChangeAdded, got[0][0].Kind)
	assert.Equal(t, "a", got[0][0].Item.ID)

	// modify and remove
	require.NoError(t, s.Apply(ctx, []model.Op{
		model.SetOp(model.Item{ID: "a", Title: "A2", Status: model.StatusPlaying, UserID: "u1"}),
		model.DeleteOp("a"),
	}))
	require.Len(t, got, 2)
	require.Len(t, got[1], 2)
	assert.Equal(t, ChangeModified, got[1][0].Kind)
	assert.Equal(t, ChangeRemoved, got[1][1].Kind)

	cancel()
	cancel() // idempotent
	require.NoError(t, s.Apply(ctx, []model.Op{
		model.SetOp(model.Item{ID: "c", Title: "C", Status: model.StatusPlaying, UserID: "u1"}),
	}))
	assert.Len(t, got, 2, "no delivery after cancel")
}

func TestPlatformLifecycle(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	p, err := s.AddPlatform(ctx, model.Platform{Name: "Switch", Color: "#fff", UserID: "u1"})
	require.NoError(t, err)
	require.NotEmpty(t, p.ID)

	require.NoError(t, s.SetPlatformColor(ctx, p.ID, "#000"))

	platforms, err := s.Platforms(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, platforms, 1)
	assert.Equal(t, "#000", platforms[0].Color)

	assert.ErrorIs(t, s.SetPlatformColor(ctx, "ghost", "#123"), ErrNotFound)

	// deleting a platform leaves items' denormalized fields alone
	require.NoError(t, s.Apply(ctx, []model.Op{
		model.SetOp(model.Item{ID: "a", Title: "A", Status: model.StatusPlaying,
			Platform: "Switch", PlatformColor: "#000", UserID: "u1"}),
	}))
	require.NoError(t, s.DeletePlatform(ctx, p.ID))

	it, err := s.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "Switch", it.Platform)
	assert.Equal(t, "#000", it.PlatformColor)
}
