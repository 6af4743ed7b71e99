package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/atp-media/rear-differential/internal/repository"
	"github.com/gin-gonic/gin"
)

// Error classification strings carried in failure responses.
const (
	errNotFound           = "NotFound"
	errAlreadyDeleted     = "AlreadyDeleted"
	errNoFieldsToUpdate   = "NoFieldsToUpdate"
	errIdentifierMismatch = "IdentifierMismatch"
	errValidation         = "ValidationError"
	errStore              = "StoreError"
)

// listResponse is the envelope for every listing endpoint.
type listResponse struct {
	Success    bool                  `json:"success"`
	Message    string                `json:"message"`
	Data       interface{}           `json:"data"`
	Pagination repository.Pagination `json:"pagination"`
}

func respondList(c *gin.Context, data interface{}, pagination repository.Pagination) {
	c.JSON(http.StatusOK, listResponse{
		Success:    true,
		Message:    "ok",
		Data:       data,
		Pagination: pagination,
	})
}

func respondError(c *gin.Context, status int, classification, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"message": message,
		"error":   classification,
	})
}

// respondValidation rejects a malformed field before any store access.
func respondValidation(c *gin.Context, err error) {
	respondError(c, http.StatusUnprocessableEntity, errValidation, err.Error())
}

// respondStoreError translates the repository's sentinel errors to HTTP
// status codes. Anything unclassified is a 500.
func respondStoreError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		respondError(c, http.StatusNotFound, errNotFound, "Record not found")
	case errors.Is(err, repository.ErrAlreadyDeleted):
		respondError(c, http.StatusConflict, errAlreadyDeleted, "Record is already deleted")
	case errors.Is(err, repository.ErrNoFieldsToUpdate):
		respondError(c, http.StatusBadRequest, errNoFieldsToUpdate, "No recognized fields to update")
	default:
		respondError(c, http.StatusInternalServerError, errStore, err.Error())
	}
}

// parseListParams reads the shared pagination/sorting query parameters.
// Out-of-range limit and offset are normalized later by the repository;
// non-numeric values degrade to zero and pick up the defaults the same way.
func parseListParams(c *gin.Context) repository.ListParams {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))
	return repository.ListParams{
		Limit:     limit,
		Offset:    offset,
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}
}

// queryBool parses an optional boolean query parameter. Unparseable values
// are treated as absent.
func queryBool(c *gin.Context, name string) *bool {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &b
}

// queryInt parses an optional integer query parameter.
func queryInt(c *gin.Context, name string) *int {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	i, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &i
}
