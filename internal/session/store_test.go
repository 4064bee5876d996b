package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentialStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()

	s, err := NewCredentialStore(dir)
	require.NoError(t, err)
	assert.Empty(t, s.AccessToken())
	assert.Empty(t, s.RefreshToken())

	require.NoError(t, s.SetTokens("access-1", "refresh-1"))
	assert.Equal(t, "access-1", s.AccessToken())
	assert.Equal(t, "refresh-1", s.RefreshToken())

	// reload from disk
	s2, err := NewCredentialStore(dir)
	require.NoError(t, err)
	assert.Equal(t, "access-1", s2.AccessToken())
	assert.Equal(t, "refresh-1", s2.RefreshToken())
}

func TestCredentialStoreSetAccessToken(t *testing.T) {
	dir := t.TempDir()

	s, err := NewCredentialStore(dir)
	require.NoError(t, err)
	require.NoError(t, s.SetTokens("access-1", "refresh-1"))
	require.NoError(t, s.SetAccessToken("access-2"))

	assert.Equal(t, "access-2", s.AccessToken())
	assert.Equal(t, "refresh-1", s.RefreshToken())
}

func TestCredentialStoreClear(t *testing.T) {
	dir := t.TempDir()

	s, err := NewCredentialStore(dir)
	require.NoError(t, err)
	require.NoError(t, s.SetTokens("access-1", "refresh-1"))
	require.NoError(t, s.Clear())

	assert.Empty(t, s.AccessToken())
	assert.Empty(t, s.RefreshToken())

	_, err = os.Stat(filepath.Join(dir, credentialsFile))
	assert.True(t, os.IsNotExist(err))

	// clearing an already-empty store is fine
	require.NoError(t, s.Clear())
}

func TestCredentialStoreCorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, credentialsFile), []byte("{not json"), 0o600))

	_, err := NewCredentialStore(dir)
	assert.Error(t, err)
}
