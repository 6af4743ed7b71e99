package repository

import "testing"

func TestListParamsClamp(t *testing.T) {
	tests := []struct {
		name       string
		in         ListParams
		wantLimit  int
		wantOffset int
	}{
		{"defaults", ListParams{}, defaultLimit, 0},
		{"negative limit", ListParams{Limit: -5}, defaultLimit, 0},
		{"over max", ListParams{Limit: 5000}, maxLimit, 0},
		{"negative offset", ListParams{Limit: 10, Offset: -1}, 10, 0},
		{"in range", ListParams{Limit: 1, Offset: 7}, 1, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.in.clamp()
			if tt.in.Limit != tt.wantLimit {
				t.Errorf("limit: expected %d, got %d", tt.wantLimit, tt.in.Limit)
			}
			if tt.in.Offset != tt.wantOffset {
				t.Errorf("offset: expected %d, got %d", tt.wantOffset, tt.in.Offset)
			}
		})
	}
}

func TestOrderClause(t *testing.T) {
	allowed := allowedFields("created_at", "media_title")

	tests := []struct {
		name      string
		sortBy    string
		sortOrder string
		want      string
	}{
		{"allowed field", "media_title", "asc", "media_title asc, imdb_id asc"},
		{"unrecognized falls back", "'; DROP TABLE x", "asc", "created_at asc, imdb_id asc"},
		{"invalid order falls back", "created_at", "sideways", "created_at desc, imdb_id asc"},
		{"order case insensitive", "created_at", "ASC", "created_at asc, imdb_id asc"},
		{"empty inputs", "", "", "created_at desc, imdb_id asc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := orderClause(tt.sortBy, allowed, "created_at", tt.sortOrder, "imdb_id")
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestOrderClauseTiebreakSkippedWhenSortingByIt(t *testing.T) {
	allowed := allowedFields("imdb_id")
	got := orderClause("imdb_id", allowed, "imdb_id", "asc", "imdb_id")
	if got != "imdb_id asc" {
		t.Errorf("expected no duplicate tiebreak, got %q", got)
	}
}

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name         string
		total        int64
		limit        int
		offset       int
		wantNext     *int
		wantPrevious *int
	}{
		{"first of many", 25, 10, 0, intPtr(10), nil},
		{"middle page", 25, 10, 10, intPtr(20), intPtr(0)},
		{"last page", 25, 10, 20, nil, intPtr(10)},
		{"single page", 5, 10, 0, nil, nil},
		{"previous clamped to zero", 25, 10, 5, intPtr(15), intPtr(0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPagination(tt.total, tt.limit, tt.offset)
			if !intPtrEq(p.Next, tt.wantNext) {
				t.Errorf("next: expected %v, got %v", fmtPtr(tt.wantNext), fmtPtr(p.Next))
			}
			if !intPtrEq(p.Previous, tt.wantPrevious) {
				t.Errorf("previous: expected %v, got %v", fmtPtr(tt.wantPrevious), fmtPtr(p.Previous))
			}
		})
	}
}

func intPtr(v int) *int { return &v }

func intPtrEq(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func fmtPtr(p *int) interface{} {
	if p == nil {
		return nil
	}
	return *p
}
