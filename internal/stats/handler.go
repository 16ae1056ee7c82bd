package stats

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mybooks-app/mybooks/internal/library"
)

// Handler serves the derived statistics view.
type Handler struct {
	library *library.Store
}

func NewHandler(lib *library.Store) *Handler {
	return &Handler{library: lib}
}

// GetStats computes the aggregate counts and the top-category tally for the
// current snapshot. An empty library renders as zeros, not an error.
func (h *Handler) GetStats(c *gin.Context) {
	books, err := h.library.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read library"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stats":          Compute(books),
		"top_categories": TopCategories(books, TopCategoryLimit),
	})
}
