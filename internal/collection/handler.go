package collection

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mybooks-app/mybooks/internal/events"
	"github.com/mybooks-app/mybooks/pkg/models"
)

// LibraryEnsurer lets add-to-collection flows create the library entry for a
// referenced book id first. Implemented by the library handler; best-effort.
type LibraryEnsurer interface {
	EnsureEntry(ctx context.Context, bookID string)
}

// Handler exposes collections over HTTP.
type Handler struct {
	store   *Store
	library LibraryEnsurer
	hub     *events.Hub
	logger  *zap.Logger
}

func NewHandler(store *Store, library LibraryEnsurer, hub *events.Hub, logger *zap.Logger) *Handler {
	return &Handler{store: store, library: library, hub: hub, logger: logger}
}

// GetCollections returns every collection in insertion order.
func (h *Handler) GetCollections(c *gin.Context) {
	collections, err := h.store.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read collections"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"collections": collections,
		"count":       len(collections),
	})
}

// CreateCollection creates a named collection, optionally seeded with book
// ids. Referenced books missing from the library get an implicit
// want-to-read entry.
func (h *Handler) CreateCollection(c *gin.Context) {
	var req models.CreateCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Collection name is required"})
		return
	}

	bookIDs := req.BookIDs
	if bookIDs == nil {
		bookIDs = []string{}
	}

	col := models.Collection{
		ID:        NewID(),
		Name:      name,
		BookIDs:   bookIDs,
		CreatedAt: time.Now(),
	}

	if err := h.store.Save(col); err != nil {
		h.logger.Error("failed to save collection", zap.String("name", name), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create collection"})
		return
	}

	for _, id := range bookIDs {
		h.library.EnsureEntry(c.Request.Context(), id)
	}

	h.hub.Publish(events.EventCollectionUpdated, "added", col.ID, col)
	c.JSON(http.StatusCreated, col)
}

// DeleteCollection removes the collection. Idempotent; deleting a missing
// collection still reports success.
func (h *Handler) DeleteCollection(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Collection ID is required"})
		return
	}

	if err := h.store.Delete(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete collection"})
		return
	}

	h.hub.Publish(events.EventCollectionUpdated, "deleted", id, nil)
	c.JSON(http.StatusOK, gin.H{"message": "Collection deleted"})
}

// ToggleMembership adds the book to the collection or removes it, and makes
// sure a library entry exists when adding.
func (h *Handler) ToggleMembership(c *gin.Context) {
	colID := c.Param("id")

	var req models.ToggleMembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	col, added, err := h.store.Toggle(colID, req.BookID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update collection"})
		return
	}
	if col == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Collection not found"})
		return
	}

	if added {
		h.library.EnsureEntry(c.Request.Context(), req.BookID)
	}

	h.hub.Publish(events.EventCollectionUpdated, "toggled", col.ID, col)
	c.JSON(http.StatusOK, gin.H{
		"collection": col,
		"added":      added,
	})
}
