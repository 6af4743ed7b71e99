package handler

import (
	"net/http"

	"github.com/atp-media/rear-differential/internal/domain"
	"github.com/atp-media/rear-differential/internal/repository"
	"github.com/gin-gonic/gin"
)

// PredictionHandler handles the prediction listing endpoint.
type PredictionHandler struct {
	repo *repository.PredictionRepository
}

// NewPredictionHandler creates a new prediction handler.
// Parameters:
//   - repo: prediction repository.
// Returns:
//   - *PredictionHandler: initialized handler.
func NewPredictionHandler(repo *repository.PredictionRepository) *PredictionHandler {
	return &PredictionHandler{repo: repo}
}

// List handles GET /prediction.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *PredictionHandler) List(c *gin.Context) {
	filter := repository.PredictionFilter{
		IMDBID: c.Query("imdb_id"),
	}
	if p := queryInt(c, "prediction"); p != nil {
		if err := domain.ValidatePrediction(*p); err != nil {
			respondValidation(c, err)
			return
		}
		filter.Prediction = p
	}
	if raw := c.Query("cm_value"); raw != "" {
		cm := domain.CMValue(raw)
		if !cm.Valid() {
			respondError(c, http.StatusUnprocessableEntity, errValidation, "invalid cm_value: "+raw)
			return
		}
		filter.CMValue = &cm
	}

	params := parseListParams(c)
	records, total, err := h.repo.List(c.Request.Context(), filter, params)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	respondList(c, records, repository.NewPagination(total, params.Limit, params.Offset))
}
