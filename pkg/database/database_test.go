package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteBackendRoundTrip(t *testing.T) {
	backend, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer backend.Close()

	_, ok, err := backend.Get(LibraryKey)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, backend.Put(LibraryKey, `[{"id":"vol-1"}]`))
	require.NoError(t, backend.Put(LibraryKey, `[{"id":"vol-2"}]`))

	value, ok, err := backend.Get(LibraryKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"vol-2"}]`, value)
}

func TestKeysAreIndependent(t *testing.T) {
	backend, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer backend.Close()

	require.NoError(t, backend.Put(LibraryKey, "library"))
	require.NoError(t, backend.Put(CollectionsKey, "collections"))

	value, ok, _ := backend.Get(LibraryKey)
	assert.True(t, ok)
	assert.Equal(t, "library", value)

	value, ok, _ = backend.Get(CollectionsKey)
	assert.True(t, ok)
	assert.Equal(t, "collections", value)
}

func TestValuesSurviveReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	backend, err := Open(dbPath)
	require.NoError(t, err)
	require.NoError(t, backend.Put(LibraryKey, "persisted"))
	require.NoError(t, backend.Close())

	reopened, err := Open(dbPath)
	require.NoError(t, err)
	defer reopened.Close()

	value, ok, err := reopened.Get(LibraryKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "persisted", value)
}

func TestMemoryBackend(t *testing.T) {
	backend := NewMemoryBackend()

	_, ok, err := backend.Get("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, backend.Put("k", "v"))
	value, ok, err := backend.Get("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", value)
}
