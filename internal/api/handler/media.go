package handler

import (
	"net/http"

	"github.com/atp-media/rear-differential/internal/domain"
	"github.com/atp-media/rear-differential/internal/repository"
	"github.com/atp-media/rear-differential/internal/service"
	"github.com/gin-gonic/gin"
)

// MediaHandler handles media record endpoints.
type MediaHandler struct {
	repo      *repository.MediaRepository
	rejection *service.RejectionService
}

// NewMediaHandler creates a new media handler.
// Parameters:
//   - repo: media record repository.
//   - rejection: rejection workflow service (soft-delete path).
// Returns:
//   - *MediaHandler: initialized handler.
func NewMediaHandler(repo *repository.MediaRepository, rejection *service.RejectionService) *MediaHandler {
	return &MediaHandler{
		repo:      repo,
		rejection: rejection,
	}
}

// List handles GET /media. Soft-deleted rows never appear.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *MediaHandler) List(c *gin.Context) {
	filter := repository.MediaFilter{
		IMDBID:     c.Query("imdb_id"),
		MediaTitle: c.Query("media_title"),
		Hash:       c.Query("hash"),
	}

	if raw := c.Query("media_type"); raw != "" {
		mediaType := domain.MediaType(raw)
		if !mediaType.Valid() {
			respondError(c, http.StatusUnprocessableEntity, errValidation, "invalid media_type: "+raw)
			return
		}
		filter.MediaType = &mediaType
	}
	if raw := c.Query("pipeline_status"); raw != "" {
		status := domain.PipelineStatus(raw)
		if !status.Valid() {
			respondError(c, http.StatusUnprocessableEntity, errValidation, "invalid pipeline_status: "+raw)
			return
		}
		filter.PipelineStatus = &status
	}
	if raw := c.Query("rejection_status"); raw != "" {
		status := domain.RejectionStatus(raw)
		if !status.Valid() {
			respondError(c, http.StatusUnprocessableEntity, errValidation, "invalid rejection_status: "+raw)
			return
		}
		filter.RejectionStatus = &status
	}
	filter.ErrorStatus = queryBool(c, "error_status")

	if filter.Hash != "" {
		if err := domain.ValidateHash(filter.Hash); err != nil {
			respondValidation(c, err)
			return
		}
	}

	params := parseListParams(c)
	records, total, err := h.repo.List(c.Request.Context(), filter, params)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	respondList(c, records, repository.NewPagination(total, params.Limit, params.Offset))
}

// pipelinePatchRequest is the body for PATCH /media/{hash}/pipeline. The
// optional hash echoes the path parameter and is cross-checked when supplied.
type pipelinePatchRequest struct {
	Hash *string `json:"hash,omitempty"`
	domain.PipelineUpdate
}

// UpdatePipeline handles PATCH /media/{hash}/pipeline.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *MediaHandler) UpdatePipeline(c *gin.Context) {
	hash := c.Param("hash")
	if err := domain.ValidateHash(hash); err != nil {
		respondValidation(c, err)
		return
	}

	var req pipelinePatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, errValidation, "invalid request body: "+err.Error())
		return
	}
	if req.Hash != nil && *req.Hash != hash {
		respondError(c, http.StatusBadRequest, errIdentifierMismatch, "hash in body does not match path")
		return
	}
	if req.PipelineStatus != nil && !req.PipelineStatus.Valid() {
		respondError(c, http.StatusUnprocessableEntity, errValidation, "invalid pipeline_status: "+string(*req.PipelineStatus))
		return
	}
	if req.RejectionStatus != nil && !req.RejectionStatus.Valid() {
		respondError(c, http.StatusUnprocessableEntity, errValidation, "invalid rejection_status: "+string(*req.RejectionStatus))
		return
	}

	changed, err := h.repo.UpdatePipeline(c.Request.Context(), hash, req.PipelineUpdate)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"message":        "Media record updated",
		"updated_fields": changed,
	})
}

// SoftDelete handles PATCH /media/{hash}/soft_delete.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *MediaHandler) SoftDelete(c *gin.Context) {
	hash := c.Param("hash")
	if err := domain.ValidateHash(hash); err != nil {
		respondValidation(c, err)
		return
	}

	result, err := h.rejection.SoftDelete(c.Request.Context(), hash)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
