package handler

import (
	"net/http"
	"strings"

	"github.com/atp-media/rear-differential/internal/domain"
	"github.com/atp-media/rear-differential/internal/repository"
	"github.com/atp-media/rear-differential/internal/service"
	"github.com/gin-gonic/gin"
)

// TrainingHandler handles training record endpoints.
type TrainingHandler struct {
	repo      *repository.TrainingRepository
	rejection *service.RejectionService
}

// NewTrainingHandler creates a new training handler.
// Parameters:
//   - repo: training record repository.
//   - rejection: rejection workflow service.
// Returns:
//   - *TrainingHandler: initialized handler.
func NewTrainingHandler(repo *repository.TrainingRepository, rejection *service.RejectionService) *TrainingHandler {
	return &TrainingHandler{
		repo:      repo,
		rejection: rejection,
	}
}

// List handles GET /training.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *TrainingHandler) List(c *gin.Context) {
	filter := repository.TrainingFilter{
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
	filter.Reviewed = queryBool(c, "reviewed")
	filter.HumanLabeled = queryBool(c, "human_labeled")
	filter.Anomalous = queryBool(c, "anomalous")
	if raw := c.Query("imdb_id"); raw != "" {
		filter.IMDBIDs = strings.Split(raw, ",")
	}

	params := parseListParams(c)
	records, total, err := h.repo.List(c.Request.Context(), filter, params)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	respondList(c, records, repository.NewPagination(total, params.Limit, params.Offset))
}

// trainingPatchRequest is the body for PATCH /training/{imdb_id}. The optional
// imdb_id echoes the path parameter and is cross-checked when supplied.
type trainingPatchRequest struct {
	IMDBID *string `json:"imdb_id,omitempty"`
	domain.TrainingUpdate
}

// Update handles PATCH /training/{imdb_id}.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *TrainingHandler) Update(c *gin.Context) {
	imdbID := c.Param("imdb_id")
	if err := domain.ValidateIMDBID(imdbID); err != nil {
		respondValidation(c, err)
		return
	}

	var req trainingPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, errValidation, "invalid request body: "+err.Error())
		return
	}
	if req.IMDBID != nil && *req.IMDBID != imdbID {
		respondError(c, http.StatusBadRequest, errIdentifierMismatch, "imdb_id in body does not match path")
		return
	}
	if req.Label != nil && !req.Label.Valid() {
		respondError(c, http.StatusUnprocessableEntity, errValidation, "invalid label: "+string(*req.Label))
		return
	}

	changed, err := h.repo.UpdateFields(c.Request.Context(), imdbID, req.TrainingUpdate)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"message":        "Training record updated",
		"updated_fields": changed,
	})
}

// labelPatchRequest is the body for PATCH /training/{imdb_id}/label.
type labelPatchRequest struct {
	IMDBID *string      `json:"imdb_id,omitempty"`
	Label  domain.Label `json:"label"`
}

// UpdateLabel handles PATCH /training/{imdb_id}/label.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *TrainingHandler) UpdateLabel(c *gin.Context) {
	imdbID := c.Param("imdb_id")
	if err := domain.ValidateIMDBID(imdbID); err != nil {
		respondValidation(c, err)
		return
	}

	var req labelPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, errValidation, "invalid request body: "+err.Error())
		return
	}
	if req.IMDBID != nil && *req.IMDBID != imdbID {
		respondError(c, http.StatusBadRequest, errIdentifierMismatch, "imdb_id in body does not match path")
		return
	}
	if !req.Label.Valid() {
		respondError(c, http.StatusUnprocessableEntity, errValidation, "invalid label: "+string(req.Label))
		return
	}

	if err := h.repo.UpdateLabel(c.Request.Context(), imdbID, req.Label); err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Label updated for " + imdbID,
	})
}

// UpdateReviewed handles PATCH /training/{imdb_id}/reviewed.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *TrainingHandler) UpdateReviewed(c *gin.Context) {
	imdbID := c.Param("imdb_id")
	if err := domain.ValidateIMDBID(imdbID); err != nil {
		respondValidation(c, err)
		return
	}

	if err := h.repo.UpdateReviewed(c.Request.Context(), imdbID); err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Training record marked reviewed: " + imdbID,
	})
}

// Reject handles PATCH /training/{imdb_id}/reject.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *TrainingHandler) Reject(c *gin.Context) {
	imdbID := c.Param("imdb_id")
	if err := domain.ValidateIMDBID(imdbID); err != nil {
		respondValidation(c, err)
		return
	}

	result, err := h.rejection.Reject(c.Request.Context(), imdbID)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
