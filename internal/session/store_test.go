package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()

	v, err := s.Get("missing")
	require.NoError(t, err)
	assert.Empty(t, v)

	require.NoError(t, s.Set("k", "v"))
	v, _ = s.Get("k")
	assert.Equal(t, "v", v)

	require.NoError(t, s.Remove("k"))
	require.NoError(t, s.Remove("k"))
	v, _ = s.Get("k")
	assert.Empty(t, v)
}

func TestFileStore_PersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.json")

	s := NewFileStore(path)
	require.NoError(t, s.Set("auth_token", "abc"))
	require.NoError(t, s.Set("USE_MOCK", "true"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	reopened := NewFileStore(path)
	v, err := reopened.Get("auth_token")
	require.NoError(t, err)
	assert.Equal(t, "abc", v)

	require.NoError(t, reopened.Remove("auth_token"))

	again := NewFileStore(path)
	v, _ = again.Get("auth_token")
	assert.Empty(t, v)
	v, _ = again.Get("USE_MOCK")
	assert.Equal(t, "true", v)
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	_, err := NewFileStore(path).Get("k")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse state file")
}

func TestGate_DerivesAuthenticationFromToken(t *testing.T) {
	store := NewMemoryStore()
	key := "auth_token"
	g := NewGate(store, func() string { return key }, nil)

	assert.False(t, g.IsAuthenticated())
	assert.Error(t, g.SetToken(""))

	require.NoError(t, g.SetToken("tok"))
	assert.True(t, g.IsAuthenticated())
	assert.Equal(t, "tok", g.Token())

	// a key change follows the config, the old slot is no longer consulted
	key = "other"
	assert.False(t, g.IsAuthenticated())
	key = "auth_token"

	require.NoError(t, g.Clear())
	assert.False(t, g.IsAuthenticated())
	v, _ := store.Get("auth_token")
	assert.Empty(t, v)
}
