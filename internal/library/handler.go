package library

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mybooks-app/mybooks/internal/catalog"
	"github.com/mybooks-app/mybooks/internal/collection"
	"github.com/mybooks-app/mybooks/internal/events"
	"github.com/mybooks-app/mybooks/pkg/models"
)

// Handler exposes the library over HTTP.
type Handler struct {
	store       *Store
	collections *collection.Store
	source      catalog.Source
	hub         *events.Hub
	logger      *zap.Logger
}

func NewHandler(store *Store, collections *collection.Store, source catalog.Source, hub *events.Hub, logger *zap.Logger) *Handler {
	return &Handler{
		store:       store,
		collections: collections,
		source:      source,
		hub:         hub,
		logger:      logger,
	}
}

// GetLibrary returns the library, optionally filtered by shelf status, comic
// flag, or collection membership.
func (h *Handler) GetLibrary(c *gin.Context) {
	books, err := h.store.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read library"})
		return
	}

	if colID := c.Query("collection"); colID != "" {
		collections, err := h.collections.GetAll()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read collections"})
			return
		}
		var selected *models.Collection
		for i := range collections {
			if collections[i].ID == colID {
				selected = &collections[i]
				break
			}
		}
		books = FilterByCollection(books, selected)
	}

	if comics := c.Query("comics"); comics != "" {
		books = FilterComics(books, comics == "true")
	}

	if status := c.Query("status"); status != "" {
		books = FilterByStatus(books, models.ShelfStatus(status))
	}

	c.JSON(http.StatusOK, gin.H{
		"books": books,
		"count": len(books),
	})
}

// AddToLibrary promotes a catalog volume into the library with the chosen
// shelf status. An existing entry only changes status; catalog metadata is
// never re-applied to it.
func (h *Handler) AddToLibrary(c *gin.Context) {
	var req models.AddToLibraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.ValidStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid shelf status"})
		return
	}

	existing, err := h.store.Get(req.VolumeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read library"})
		return
	}

	var book models.Book
	if existing != nil {
		book = *existing
		book.Status = req.Status
	} else {
		item := h.source.GetByID(c.Request.Context(), req.VolumeID)
		if item == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Volume not found in catalog"})
			return
		}
		book = catalog.NewBookFromItem(*item, req.Status, time.Now())
	}

	if err := h.store.Save(book); err != nil {
		h.logger.Error("failed to save book", zap.String("book_id", book.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add book to library"})
		return
	}

	action := "added"
	if existing != nil {
		action = "updated"
	}
	h.hub.Publish(events.EventLibraryUpdated, action, book.ID, book)
	c.JSON(http.StatusOK, book)
}

// ReplaceBook fully replaces the record with the given id.
func (h *Handler) ReplaceBook(c *gin.Context) {
	id := c.Param("id")

	var book models.Book
	if err := c.ShouldBindJSON(&book); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if book.ID != "" && book.ID != id {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Book id does not match URL"})
		return
	}
	book.ID = id
	if !models.ValidStatus(book.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid shelf status"})
		return
	}

	if err := h.store.Save(book); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save book"})
		return
	}

	saved, err := h.store.Get(id)
	if err != nil || saved == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read book back"})
		return
	}
	h.hub.Publish(events.EventLibraryUpdated, "updated", id, *saved)
	c.JSON(http.StatusOK, saved)
}

// UpdateProgress moves the bookmark. Reaching the last page flips the book to
// the read shelf and stamps the finish date.
func (h *Handler) UpdateProgress(c *gin.Context) {
	var req models.UpdateProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.mutateBook(c, req.BookID, func(b *models.Book) {
		b.CurrentPage = *req.CurrentPage
	})
}

// UpdateRating sets the 0-5 star rating.
func (h *Handler) UpdateRating(c *gin.Context) {
	var req models.UpdateRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.mutateBook(c, req.BookID, func(b *models.Book) {
		b.Rating = *req.Rating
	})
}

// UpdateNotes replaces the free-text notes.
func (h *Handler) UpdateNotes(c *gin.Context) {
	var req models.UpdateNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.mutateBook(c, req.BookID, func(b *models.Book) {
		b.Notes = req.Notes
	})
}

// UpdateStatus moves the book to another shelf. The finish date set when a
// book was first completed is kept even if it later leaves the read shelf.
func (h *Handler) UpdateStatus(c *gin.Context) {
	var req models.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.ValidStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid shelf status"})
		return
	}

	h.mutateBook(c, req.BookID, func(b *models.Book) {
		b.Status = req.Status
		if req.Status == models.StatusAbandoned {
			b.AbandonReason = req.AbandonReason
		}
	})
}

// ToggleComic flips the books/comics classification.
func (h *Handler) ToggleComic(c *gin.Context) {
	var req models.ToggleComicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.mutateBook(c, req.BookID, func(b *models.Book) {
		b.IsComic = !b.IsComic
	})
}

// RemoveFromLibrary deletes the book and drops it from every collection.
func (h *Handler) RemoveFromLibrary(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Book ID is required"})
		return
	}

	if err := h.store.Remove(id); err != nil {
		h.logger.Error("failed to remove book", zap.String("book_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove book"})
		return
	}

	h.hub.Publish(events.EventLibraryUpdated, "removed", id, nil)
	c.JSON(http.StatusOK, gin.H{"message": "Book removed from library"})
}

// EnsureEntry creates a want-to-read entry for bookID when the library does
// not have one yet, pulling metadata from the catalog. Best-effort: when the
// catalog has nothing for the id, the caller's collection keeps a dangling
// reference, which is tolerated.
func (h *Handler) EnsureEntry(ctx context.Context, bookID string) {
	existing, err := h.store.Get(bookID)
	if err != nil || existing != nil {
		return
	}
	item := h.source.GetByID(ctx, bookID)
	if item == nil {
		h.logger.Warn("no catalog entry for collection reference",
			zap.String("book_id", bookID))
		return
	}
	book := catalog.NewBookFromItem(*item, models.StatusWantToRead, time.Now())
	if err := h.store.Save(book); err != nil {
		h.logger.Error("failed to save implicit library entry",
			zap.String("book_id", bookID), zap.Error(err))
		return
	}
	h.hub.Publish(events.EventLibraryUpdated, "added", book.ID, book)
}

// mutateBook loads the record, applies the change, and saves the full record
// back, letting the store resolve the page-progress invariant.
func (h *Handler) mutateBook(c *gin.Context, id string, apply func(*models.Book)) {
	book, err := h.store.Get(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read library"})
		return
	}
	if book == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Book not in library"})
		return
	}

	apply(book)

	if err := h.store.Save(*book); err != nil {
		h.logger.Error("failed to save book", zap.String("book_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update book"})
		return
	}

	saved, err := h.store.Get(id)
	if err != nil || saved == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read book back"})
		return
	}
	h.hub.Publish(events.EventLibraryUpdated, "updated", id, *saved)
	c.JSON(http.StatusOK, saved)
}
