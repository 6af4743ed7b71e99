package handler

import (
	"net/http"

	"github.com/atp-media/rear-differential/internal/repository"
	"github.com/gin-gonic/gin"
)

// FlywayHandler exposes the schema migration ledger read-only.
type FlywayHandler struct {
	repo *repository.FlywayRepository
}

// NewFlywayHandler creates a new flyway handler.
// Parameters:
//   - repo: schema history repository.
// Returns:
//   - *FlywayHandler: initialized handler.
func NewFlywayHandler(repo *repository.FlywayRepository) *FlywayHandler {
	return &FlywayHandler{repo: repo}
}

// List handles GET /flyway.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *FlywayHandler) List(c *gin.Context) {
	records, err := h.repo.List(c.Request.Context(), c.Query("sort_by"), c.Query("sort_order"))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "ok",
		"data":    records,
		"count":   len(records),
	})
}
