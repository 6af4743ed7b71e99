package repository

import (
	"fmt"
	"strings"
)

const (
	defaultLimit = 100
	maxLimit     = 1000
)

// ListParams carries the pagination and sorting inputs shared by every
// listing operation. SortBy and SortOrder are request-supplied and are only
// ever interpolated into query text after allow-list validation.
type ListParams struct {
	Limit     int
	Offset    int
	SortBy    string
	SortOrder string
}

// Pagination describes the window a listing response covers. Next and
// Previous are offsets for the adjacent pages, nil at either end.
type Pagination struct {
	Total    int64 `json:"total"`
	Limit    int   `json:"limit"`
	Offset   int   `json:"offset"`
	Next     *int  `json:"next"`
	Previous *int  `json:"previous"`
}

// NewPagination builds pagination info for a listing result.
func NewPagination(total int64, limit, offset int) Pagination {
	p := Pagination{Total: total, Limit: limit, Offset: offset}
	if next := offset + limit; int64(next) < total {
		p.Next = &next
	}
	if offset > 0 {
		prev := offset - limit
		if prev < 0 {
			prev = 0
		}
		p.Previous = &prev
	}
	return p
}

// clamp normalizes limit and offset into their accepted ranges.
func (p *ListParams) clamp() {
	if p.Limit < 1 {
		p.Limit = defaultLimit
	}
	if p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// orderClause builds a deterministic ORDER BY from request-supplied sort
// inputs. Unrecognized sort fields silently fall back to defaultField and
// invalid orders to desc; this leniency is a contract, listing never rejects
// a request over a bad sort parameter. tiebreak is the entity's primary
// identifier and keeps pagination stable across pages with equal sort keys.
func orderClause(sortBy string, allowed map[string]bool, defaultField, sortOrder, tiebreak string) string {
	if !allowed[sortBy] {
		sortBy = defaultField
	}
	sortOrder = strings.ToLower(sortOrder)
	if sortOrder != "asc" && sortOrder != "desc" {
		sortOrder = "desc"
	}
	clause := fmt.Sprintf("%s %s", sortBy, sortOrder)
	if tiebreak != "" && tiebreak != sortBy {
		clause += fmt.Sprintf(", %s asc", tiebreak)
	}
	return clause
}

// lowered normalizes a substring-match input for case-insensitive LIKE.
func lowered(s string) string {
	return strings.ToLower(s)
}

// allowedFields builds an allow-list set from column names.
func allowedFields(names ...string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}
