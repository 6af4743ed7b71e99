package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/atp-media/rear-differential/internal/domain"
	"gorm.io/gorm"
)

// FlywayRepository handles read-only access to the schema migration ledger.
type FlywayRepository struct {
	db *gorm.DB
}

// NewFlywayRepository creates a new FlywayRepository.
// Parameters:
//   - db: GORM database handle used for queries.
// Returns:
//   - *FlywayRepository: repository instance bound to db.
func NewFlywayRepository(db *gorm.DB) *FlywayRepository {
	return &FlywayRepository{db: db}
}

// List retrieves all schema history records. installed_rank may be stored as
// text, so ordering by it casts to an integer to get numeric order.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - sortBy: one of installed_rank, installed_on, version; anything else
//     falls back to installed_rank.
//   - sortOrder: asc or desc; anything else falls back to asc.
// Returns:
//   - []domain.SchemaHistoryRecord: all migration records in sort order.
//   - error: non-nil if the query fails.
func (r *FlywayRepository) List(ctx context.Context, sortBy, sortOrder string) ([]domain.SchemaHistoryRecord, error) {
	switch sortBy {
	case "installed_rank", "installed_on", "version":
	default:
		sortBy = "installed_rank"
	}
	sortOrder = strings.ToLower(sortOrder)
	if sortOrder != "asc" && sortOrder != "desc" {
		sortOrder = "asc"
	}

	orderExpr := sortBy
	if sortBy == "installed_rank" {
		orderExpr = "CAST(installed_rank AS INTEGER)"
	}

	var records []domain.SchemaHistoryRecord
	if err := r.db.WithContext(ctx).
		Order(fmt.Sprintf("%s %s", orderExpr, sortOrder)).
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list schema history: %w", err)
	}
	return records, nil
}
