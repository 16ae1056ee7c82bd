package library

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mybooks-app/mybooks/internal/catalog"
	"github.com/mybooks-app/mybooks/internal/collection"
	"github.com/mybooks-app/mybooks/internal/events"
	"github.com/mybooks-app/mybooks/pkg/database"
	"github.com/mybooks-app/mybooks/pkg/models"
)

// fakeSource serves catalog items from a fixed map, like the real client
// returning nil for unknown ids.
type fakeSource struct {
	items map[string]catalog.Item
}

func (f *fakeSource) Search(ctx context.Context, query string) []catalog.Item {
	out := []catalog.Item{}
	for _, item := range f.items {
		out = append(out, item)
	}
	return out
}

func (f *fakeSource) GetByID(ctx context.Context, id string) *catalog.Item {
	item, ok := f.items[id]
	if !ok {
		return nil
	}
	return &item
}

func newTestRouter(t *testing.T) (*gin.Engine, *Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	backend := database.NewMemoryBackend()
	collections := collection.NewStore(backend)
	store := NewStore(backend, collections)
	source := &fakeSource{items: map[string]catalog.Item{
		"vol-1": {
			ID: "vol-1",
			VolumeInfo: catalog.VolumeInfo{
				Title:     "Dune",
				Authors:   []string{"Frank Herbert"},
				PageCount: 412,
			},
		},
	}}
	logger := zap.NewNop()
	handler := NewHandler(store, collections, source, events.NewHub(logger), logger)

	router := gin.New()
	router.GET("/library", handler.GetLibrary)
	router.POST("/library", handler.AddToLibrary)
	router.PUT("/library/progress", handler.UpdateProgress)
	router.PUT("/library/rating", handler.UpdateRating)
	router.DELETE("/library/:id", handler.RemoveFromLibrary)
	return router, store
}

func doJSON(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAddToLibraryFromCatalog(t *testing.T) {
	router, store := newTestRouter(t)

	w := doJSON(router, http.MethodPost, "/library", models.AddToLibraryRequest{
		VolumeID: "vol-1",
		Status:   models.StatusReading,
	})
	require.Equal(t, http.StatusOK, w.Code)

	book, err := store.Get("vol-1")
	require.NoError(t, err)
	require.NotNil(t, book)
	assert.Equal(t, "Dune", book.Title)
	assert.Equal(t, models.StatusReading, book.Status)
	assert.Equal(t, 412, book.PageCount)
}

func TestAddUnknownVolumeIs404(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(router, http.MethodPost, "/library", models.AddToLibraryRequest{
		VolumeID: "missing",
		Status:   models.StatusReading,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAddExistingBookOnlyChangesStatus(t *testing.T) {
	router, store := newTestRouter(t)

	doJSON(router, http.MethodPost, "/library", models.AddToLibraryRequest{
		VolumeID: "vol-1", Status: models.StatusReading,
	})

	book, _ := store.Get("vol-1")
	book.Notes = "my copy is signed"
	require.NoError(t, store.Save(*book))

	w := doJSON(router, http.MethodPost, "/library", models.AddToLibraryRequest{
		VolumeID: "vol-1", Status: models.StatusAbandoned,
	})
	require.Equal(t, http.StatusOK, w.Code)

	book, _ = store.Get("vol-1")
	assert.Equal(t, models.StatusAbandoned, book.Status)
	assert.Equal(t, "my copy is signed", book.Notes, "catalog metadata must not overwrite user data")
}

func TestProgressEndpointFinishesBook(t *testing.T) {
	router, store := newTestRouter(t)
	doJSON(router, http.MethodPost, "/library", models.AddToLibraryRequest{
		VolumeID: "vol-1", Status: models.StatusReading,
	})

	page := 412
	w := doJSON(router, http.MethodPut, "/library/progress", models.UpdateProgressRequest{
		BookID: "vol-1", CurrentPage: &page,
	})
	require.Equal(t, http.StatusOK, w.Code)

	book, _ := store.Get("vol-1")
	assert.Equal(t, models.StatusRead, book.Status)
	require.NotNil(t, book.DateFinished)
}

func TestProgressForUnknownBookIs404(t *testing.T) {
	router, _ := newTestRouter(t)

	page := 10
	w := doJSON(router, http.MethodPut, "/library/progress", models.UpdateProgressRequest{
		BookID: "missing", CurrentPage: &page,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRemoveEndpoint(t *testing.T) {
	router, store := newTestRouter(t)
	doJSON(router, http.MethodPost, "/library", models.AddToLibraryRequest{
		VolumeID: "vol-1", Status: models.StatusReading,
	})

	w := doJSON(router, http.MethodDelete, "/library/vol-1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	book, err := store.Get("vol-1")
	require.NoError(t, err)
	assert.Nil(t, book)
}

func TestGetLibraryFilters(t *testing.T) {
	router, store := newTestRouter(t)
	require.NoError(t, store.Save(models.Book{ID: "a", Title: "A", Status: models.StatusReading, PageCount: 10}))
	require.NoError(t, store.Save(models.Book{ID: "b", Title: "B", Status: models.StatusWantToRead, IsComic: true}))

	w := doJSON(router, http.MethodGet, "/library?status=reading", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var res struct {
		Books []models.Book `json:"books"`
		Count int           `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.Equal(t, 1, res.Count)
	assert.Equal(t, "a", res.Books[0].ID)

	w = doJSON(router, http.MethodGet, "/library?comics=true", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.Equal(t, 1, res.Count)
	assert.Equal(t, "b", res.Books[0].ID)

	// No collection selected at all is handled by the page, but an unknown
	// collection id must yield an empty list, not the whole library.
	w = doJSON(router, http.MethodGet, "/library?collection=missing", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, 0, res.Count)
}
