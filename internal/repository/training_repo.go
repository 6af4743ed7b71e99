package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/atp-media/rear-differential/internal/domain"
	"gorm.io/gorm"
)

// trainingSortFields is the allow-list for training listing sort_by values.
var trainingSortFields = allowedFields(
	"created_at", "updated_at", "media_title", "release_year", "media_type",
	"label", "imdb_id", "tmdb_id", "budget", "revenue", "runtime",
	"original_language", "tmdb_rating", "tmdb_votes", "rt_score", "metascore",
	"imdb_rating", "imdb_votes", "human_labeled", "anomalous", "reviewed",
)

// TrainingFilter holds the optional predicates for a training listing. A nil
// member means the field is not filtered; IMDBIDs holds one or more exact ids.
type TrainingFilter struct {
	MediaType    *domain.MediaType
	Label        *domain.Label
	Reviewed     *bool
	HumanLabeled *bool
	Anomalous    *bool
	IMDBIDs      []string
	MediaTitle   string
}

// TrainingRepository handles training record data operations.
type TrainingRepository struct {
	db *gorm.DB
}

// NewTrainingRepository creates a new TrainingRepository.
// Parameters:
//   - db: GORM database handle used for queries.
// Returns:
//   - *TrainingRepository: repository instance bound to db.
func NewTrainingRepository(db *gorm.DB) *TrainingRepository {
	return &TrainingRepository{db: db}
}

func (f TrainingFilter) apply(q *gorm.DB) *gorm.DB {
	if f.MediaType != nil {
		q = q.Where("media_type = ?", *f.MediaType)
	}
	if f.Label != nil {
		q = q.Where("label = ?", *f.Label)
	}
	if f.Reviewed != nil {
		q = q.Where("reviewed = ?", *f.Reviewed)
	}
	if f.HumanLabeled != nil {
		q = q.Where("human_labeled = ?", *f.HumanLabeled)
	}
	if f.Anomalous != nil {
		q = q.Where("anomalous = ?", *f.Anomalous)
	}
	if len(f.IMDBIDs) == 1 {
		q = q.Where("imdb_id = ?", f.IMDBIDs[0])
	} else if len(f.IMDBIDs) > 1 {
		q = q.Where("imdb_id IN ?", f.IMDBIDs)
	}
	if f.MediaTitle != "" {
		q = q.Where("LOWER(media_title) LIKE ?", "%"+lowered(f.MediaTitle)+"%")
	}
	return q
}

// List retrieves training records matching the filter with pagination.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - filter: optional field predicates.
//   - params: pagination and sorting inputs.
// Returns:
//   - []domain.TrainingRecord: matching records in sort order.
//   - int64: total matching count with no limit/offset applied.
//   - error: non-nil if the query fails.
func (r *TrainingRepository) List(ctx context.Context, filter TrainingFilter, params ListParams) ([]domain.TrainingRecord, int64, error) {
	params.clamp()

	base := filter.apply(r.db.WithContext(ctx).Model(&domain.TrainingRecord{}))

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count training records: %w", err)
	}

	var records []domain.TrainingRecord
	order := orderClause(params.SortBy, trainingSortFields, "created_at", params.SortOrder, "imdb_id")
	if err := base.
		Order(order).
		Limit(params.Limit).
		Offset(params.Offset).
		Find(&records).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list training records: %w", err)
	}

	return records, total, nil
}

// GetByIMDBID retrieves a training record by its identifier.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - imdbID: training identifier.
// Returns:
//   - *domain.TrainingRecord: record if found.
//   - error: ErrNotFound if absent, otherwise the store error.
func (r *TrainingRepository) GetByIMDBID(ctx context.Context, imdbID string) (*domain.TrainingRecord, error) {
	var record domain.TrainingRecord
	if err := r.db.WithContext(ctx).First(&record, "imdb_id = ?", imdbID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// UpdateFields applies a field-update set to a training record. Existence is
// checked before the write so absence surfaces as ErrNotFound rather than a
// zero-row update. Including Label in the set forces human_labeled and
// reviewed to true regardless of their requested or prior values.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - imdbID: training identifier.
//   - update: fields to apply; empty set fails with ErrNoFieldsToUpdate.
// Returns:
//   - []string: names of the fields actually changed.
//   - error: ErrNotFound, ErrNoFieldsToUpdate, or the store error.
func (r *TrainingRepository) UpdateFields(ctx context.Context, imdbID string, update domain.TrainingUpdate) ([]string, error) {
	if update.Empty() {
		return nil, ErrNoFieldsToUpdate
	}
	if _, err := r.GetByIMDBID(ctx, imdbID); err != nil {
		return nil, err
	}

	values := map[string]interface{}{}
	var changed []string
	if update.Label != nil {
		values["label"] = *update.Label
		values["human_labeled"] = true
		values["reviewed"] = true
		changed = append(changed, "label", "human_labeled", "reviewed")
	}
	if update.HumanLabeled != nil {
		if _, ok := values["human_labeled"]; !ok {
			values["human_labeled"] = *update.HumanLabeled
			changed = append(changed, "human_labeled")
		}
	}
	if update.Anomalous != nil {
		values["anomalous"] = *update.Anomalous
		changed = append(changed, "anomalous")
	}
	if update.Reviewed != nil {
		if _, ok := values["reviewed"]; !ok {
			values["reviewed"] = *update.Reviewed
			changed = append(changed, "reviewed")
		}
	}
	values["updated_at"] = time.Now().UTC()

	if err := r.db.WithContext(ctx).Model(&domain.TrainingRecord{}).
		Where("imdb_id = ?", imdbID).
		Updates(values).Error; err != nil {
		return nil, fmt.Errorf("failed to update training record: %w", err)
	}
	return changed, nil
}

// UpdateLabel sets the label for a training record, cascading human_labeled
// and reviewed to true.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - imdbID: training identifier.
//   - label: new label value.
// Returns:
//   - error: ErrNotFound if the record is absent, otherwise the store error.
func (r *TrainingRepository) UpdateLabel(ctx context.Context, imdbID string, label domain.Label) error {
	_, err := r.UpdateFields(ctx, imdbID, domain.TrainingUpdate{Label: &label})
	return err
}

// UpdateReviewed marks a training record as reviewed.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - imdbID: training identifier.
// Returns:
//   - error: ErrNotFound if the record is absent, otherwise the store error.
func (r *TrainingRepository) UpdateReviewed(ctx context.Context, imdbID string) error {
	reviewed := true
	_, err := r.UpdateFields(ctx, imdbID, domain.TrainingUpdate{Reviewed: &reviewed})
	return err
}
