package collection

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mybooks-app/mybooks/pkg/database"
	"github.com/mybooks-app/mybooks/pkg/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(database.NewMemoryBackend())
}

func seed(t *testing.T, store *Store, name string, bookIDs ...string) models.Collection {
	t.Helper()
	if bookIDs == nil {
		bookIDs = []string{}
	}
	col := models.Collection{
		ID:        NewID(),
		Name:      name,
		BookIDs:   bookIDs,
		CreatedAt: time.Now(),
	}
	require.NoError(t, store.Save(col))
	return col
}

func TestSaveUpsertsByID(t *testing.T) {
	store := newTestStore(t)
	col := seed(t, store, "Sci-fi", "vol-1")

	col.Name = "Science Fiction"
	require.NoError(t, store.Save(col))

	all, err := store.GetAll()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Science Fiction", all[0].Name)
	assert.Equal(t, []string{"vol-1"}, all[0].BookIDs)
}

func TestNewIDsAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := NewID()
		assert.False(t, seen[id])
		seen[id] = true
	}
}

func TestToggleIsInvolutive(t *testing.T) {
	store := newTestStore(t)
	col := seed(t, store, "Favorites", "vol-1", "vol-2")

	_, added, err := store.Toggle(col.ID, "vol-3")
	require.NoError(t, err)
	assert.True(t, added)

	updated, added, err := store.Toggle(col.ID, "vol-3")
	require.NoError(t, err)
	assert.False(t, added)
	assert.Equal(t, []string{"vol-1", "vol-2"}, updated.BookIDs)
}

func TestToggleDoesNotRequireLibraryEntry(t *testing.T) {
	store := newTestStore(t)
	col := seed(t, store, "Wishlist")

	// The referenced book may not exist in the library yet; the reference is
	// late-bound on purpose.
	updated, added, err := store.Toggle(col.ID, "not-yet-added")
	require.NoError(t, err)
	assert.True(t, added)
	assert.Equal(t, []string{"not-yet-added"}, updated.BookIDs)
}

func TestToggleUnknownCollectionIsNoop(t *testing.T) {
	store := newTestStore(t)
	seed(t, store, "Favorites", "vol-1")

	col, added, err := store.Toggle("missing", "vol-1")
	require.NoError(t, err)
	assert.Nil(t, col)
	assert.False(t, added)

	all, err := store.GetAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"vol-1"}, all[0].BookIDs)
}

func TestDeleteIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	col := seed(t, store, "Favorites")

	require.NoError(t, store.Delete(col.ID))
	require.NoError(t, store.Delete(col.ID))

	all, err := store.GetAll()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestRemoveBookRefsCleansEveryCollection(t *testing.T) {
	store := newTestStore(t)
	seed(t, store, "Sci-fi", "vol-1", "vol-2")
	seed(t, store, "Favorites", "vol-2", "vol-3")
	seed(t, store, "Empty")

	require.NoError(t, store.RemoveBookRefs("vol-2"))

	all, err := store.GetAll()
	require.NoError(t, err)
	require.Len(t, all, 3)
	for _, c := range all {
		assert.False(t, c.Contains("vol-2"), "collection %q still references vol-2", c.Name)
	}
	assert.Equal(t, []string{"vol-1"}, all[0].BookIDs)
	assert.Equal(t, []string{"vol-3"}, all[1].BookIDs)
}

func TestGetAllPreservesInsertionOrder(t *testing.T) {
	store := newTestStore(t)
	first := seed(t, store, "First")
	second := seed(t, store, "Second")
	third := seed(t, store, "Third")

	all, err := store.GetAll()
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{first.ID, second.ID, third.ID}, []string{all[0].ID, all[1].ID, all[2].ID})
}
