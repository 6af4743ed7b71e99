package repository

import (
	"context"
	"fmt"

	"github.com/atp-media/rear-differential/internal/domain"
	"gorm.io/gorm"
)

// predictionSortFields is the allow-list for prediction listing sort_by values.
var predictionSortFields = allowedFields(
	"imdb_id", "prediction", "probability", "cm_value", "created_at",
)

// PredictionFilter holds the optional predicates for a prediction listing.
type PredictionFilter struct {
	IMDBID     string
	Prediction *int
	CMValue    *domain.CMValue
}

// PredictionRepository handles read-only access to stored model predictions.
type PredictionRepository struct {
	db *gorm.DB
}

// NewPredictionRepository creates a new PredictionRepository.
// Parameters:
//   - db: GORM database handle used for queries.
// Returns:
//   - *PredictionRepository: repository instance bound to db.
func NewPredictionRepository(db *gorm.DB) *PredictionRepository {
	return &PredictionRepository{db: db}
}

func (f PredictionFilter) apply(q *gorm.DB) *gorm.DB {
	if f.IMDBID != "" {
		q = q.Where("imdb_id = ?", f.IMDBID)
	}
	if f.Prediction != nil {
		q = q.Where("prediction = ?", *f.Prediction)
	}
	if f.CMValue != nil {
		q = q.Where("cm_value = ?", *f.CMValue)
	}
	return q
}

// List retrieves prediction records matching the filter with pagination.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - filter: optional field predicates.
//   - params: pagination and sorting inputs.
// Returns:
//   - []domain.PredictionRecord: matching records in sort order.
//   - int64: total matching count with no limit/offset applied.
//   - error: non-nil if the query fails.
func (r *PredictionRepository) List(ctx context.Context, filter PredictionFilter, params ListParams) ([]domain.PredictionRecord, int64, error) {
	params.clamp()

	base := filter.apply(r.db.WithContext(ctx).Model(&domain.PredictionRecord{}))

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count prediction records: %w", err)
	}

	var records []domain.PredictionRecord
	order := orderClause(params.SortBy, predictionSortFields, "created_at", params.SortOrder, "imdb_id")
	if err := base.
		Order(order).
		Limit(params.Limit).
		Offset(params.Offset).
		Find(&records).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list prediction records: %w", err)
	}

	return records, total, nil
}
