package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mikkelka/gametrack/internal/model"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	s := Load(t.TempDir())

	assert.True(t, s.ShowUpcoming)
	assert.True(t, s.ShowPaused)
	assert.True(t, s.ShowDropped)
	assert.Empty(t, s.Theme)
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()

	s := Load(dir)
	s.ShowDropped = false
	s.Theme = "catppuccin"
	require.NoError(t, s.Save())

	loaded := Load(dir)
	assert.True(t, loaded.ShowUpcoming)
	assert.False(t, loaded.ShowDropped)
	assert.Equal(t, "catppuccin", loaded.Theme)
}

func TestLoadKeepsDefaultsForMissingKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"showPaused": false}`), 0644))

	s := Load(dir)
	assert.True(t, s.ShowUpcoming)
	assert.False(t, s.ShowPaused)
	assert.True(t, s.ShowDropped)
}

func TestLoadCorruptFileFallsBack(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	s := Load(dir)
	assert.True(t, s.ShowUpcoming)
}

func TestVisibleListsFiltersToggledOff(t *testing.T) {
	s := Default()
	s.ShowUpcoming = false
	s.ShowDropped = false

	visible := s.VisibleLists(model.Lists())

	require.Len(t, visible, 4)
	for _, l := range visible {
		assert.NotEqual(t, model.StatusUpcoming, l.ID)
		assert.NotEqual(t, model.StatusDropped, l.ID)
	}
}
