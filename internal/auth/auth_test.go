package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFirstRunCreatesProfile(t *testing.T) {
	dir := t.TempDir()

	p, err := NewFileProvider(dir)
	require.NoError(t, err)

	userID, ok := p.CurrentUserID()
	assert.True(t, ok)
	assert.NotEmpty(t, userID)
	assert.Equal(t, "Gæst", p.DisplayName())

	// Second load reuses the same identity
	p2, err := NewFileProvider(dir)
	require.NoError(t, err)
	userID2, ok := p2.CurrentUserID()
	assert.True(t, ok)
	assert.Equal(t, userID, userID2)
}

func TestSetDisplayNamePersists(t *testing.T) {
	dir := t.TempDir()

	p, err := NewFileProvider(dir)
	require.NoError(t, err)
	require.NoError(t, p.SetDisplayName("Mikkel"))

	p2, err := NewFileProvider(dir)
	require.NoError(t, err)
	assert.Equal(t, "Mikkel", p2.DisplayName())
}

func TestSignOutFiresHandlersOnce(t *testing.T) {
	p, err := NewFileProvider(t.TempDir())
	require.NoError(t, err)

	var calls []string
	cancel := p.OnChange(func(userID string) {
		calls = append(calls, userID)
	})
	defer cancel()

	p.SignOut()
	p.SignOut()

	_, ok := p.CurrentUserID()
	assert.False(t, ok)
	assert.Equal(t, []string{""}, calls)
}

func TestCancelledHandlerDoesNotFire(t *testing.T) {
	p, err := NewFileProvider(t.TempDir())
	require.NoError(t, err)

	fired := false
	cancel := p.OnChange(func(string) { fired = true })
	cancel()
	cancel()

	p.SignOut()
	assert.False(t, fired)
}
