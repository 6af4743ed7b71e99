package handler

import (
	"net/http"
	"strings"

	"github.com/atp-media/rear-differential/internal/domain"
	"github.com/atp-media/rear-differential/internal/repository"
	"github.com/gin-gonic/gin"
)

// MovieHandler handles the merged movie view listing endpoint.
type MovieHandler struct {
	repo *repository.MovieRepository
}

// NewMovieHandler creates a new movie handler.
// Parameters:
//   - repo: movie view repository.
// Returns:
//   - *MovieHandler: initialized handler.
func NewMovieHandler(repo *repository.MovieRepository) *MovieHandler {
	return &MovieHandler{repo: repo}
}

// List handles GET /movies.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *MovieHandler) List(c *gin.Context) {
	filter := repository.MovieFilter{
		MediaTitle: c.Query("media_title"),
	}

	if raw := c.Query("media_type"); raw != "" {
		mediaType := domain.MediaType(raw)
		if !mediaType.Valid() {
			respondError(c, http.StatusUnprocessableEntity, errValidation, "invalid media_type: "+raw)
			return
		}
		filter.MediaType = &mediaType
	}
	if raw := c.Query("label"); raw != "" {
		label := domain.Label(raw)
		if !label.Valid() {
			respondError(c, http.StatusUnprocessableEntity, errValidation, "invalid label: "+raw)
			return
		}
		filter.Label = &label
	}
	if raw := c.Query("cm_value"); raw != "" {
		cm := domain.CMValue(raw)
		if !cm.Valid() {
			respondError(c, http.StatusUnprocessableEntity, errValidation, "invalid cm_value: "+raw)
			return
		}
		filter.CMValue = &cm
	}
	filter.Reviewed = queryBool(c, "reviewed")
	filter.HumanLabeled = queryBool(c, "human_labeled")
	filter.Anomalous = queryBool(c, "anomalous")
	if p := queryInt(c, "prediction"); p != nil {
		if err := domain.ValidatePrediction(*p); err != nil {
			respondValidation(c, err)
			return
		}
		filter.Prediction = p
	}
	if raw := c.Query("imdb_id"); raw != "" {
		filter.IMDBIDs = strings.Split(raw, ",")
	}
	if year := queryInt(c, "release_year"); year != nil {
		if err := domain.ValidateReleaseYear(*year); err != nil {
			respondValidation(c, err)
			return
		}
		filter.ReleaseYear = year
	}

	params := parseListParams(c)
	rows, total, err := h.repo.List(c.Request.Context(), filter, params)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	respondList(c, rows, repository.NewPagination(total, params.Limit, params.Offset))
}
