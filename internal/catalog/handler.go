package catalog

import (
	"math/rand"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mybooks-app/mybooks/pkg/models"
)

const recommendationLimit = 6

// LibrarySnapshot is the read-only view of the library the recommendation
// endpoint needs.
type LibrarySnapshot interface {
	GetAll() ([]models.Book, error)
}

// Handler exposes catalog search and detail lookups. Lookup failures degrade
// to empty results; the catalog is best-effort enrichment, never an error
// path for the UI.
type Handler struct {
	source  Source
	library LibrarySnapshot
}

func NewHandler(source Source, library LibrarySnapshot) *Handler {
	return &Handler{source: source, library: library}
}

// Search proxies a catalog query. Empty queries and failed lookups both
// yield an empty list.
func (h *Handler) Search(c *gin.Context) {
	items := h.source.Search(c.Request.Context(), c.Query("q"))
	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"count": len(items),
	})
}

// GetByID returns the catalog detail for one volume.
func (h *Handler) GetByID(c *gin.Context) {
	item := h.source.GetByID(c.Request.Context(), c.Param("id"))
	if item == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Volume not found"})
		return
	}
	c.JSON(http.StatusOK, item)
}

// Recommendations searches the catalog by the category (or author) of a
// random read/reading book and filters out volumes already in the library.
// Empty list when there is nothing to go on.
func (h *Handler) Recommendations(c *gin.Context) {
	books, err := h.library.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read library"})
		return
	}

	seeds := []models.Book{}
	for _, b := range books {
		if b.Status == models.StatusRead || b.Status == models.StatusReading {
			seeds = append(seeds, b)
		}
	}
	if len(seeds) == 0 {
		c.JSON(http.StatusOK, gin.H{"items": []Item{}, "count": 0})
		return
	}

	seed := seeds[rand.Intn(len(seeds))]
	query := ""
	if len(seed.Categories) > 0 {
		query = seed.Categories[0]
	} else if len(seed.Authors) > 0 {
		query = seed.Authors[0]
	}

	owned := make(map[string]struct{}, len(books))
	for _, b := range books {
		owned[b.ID] = struct{}{}
	}

	items := []Item{}
	for _, item := range h.source.Search(c.Request.Context(), query) {
		if _, ok := owned[item.ID]; ok {
			continue
		}
		items = append(items, item)
		if len(items) == recommendationLimit {
			break
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"count": len(items),
	})
}
