package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/atp-media/rear-differential/internal/domain"
	"gorm.io/gorm"
)

// mediaSortFields is the allow-list for media listing sort_by values.
var mediaSortFields = allowedFields(
	"created_at", "updated_at", "release_year", "media_title", "imdb_rating",
	"pipeline_status", "rejection_status", "media_type", "hash", "imdb_id",
)

// MediaFilter holds the optional predicates for a media listing. Soft-deleted
// rows are always excluded regardless of the filter.
type MediaFilter struct {
	MediaType       *domain.MediaType
	PipelineStatus  *domain.PipelineStatus
	RejectionStatus *domain.RejectionStatus
	ErrorStatus     *bool
	IMDBID          string
	MediaTitle      string
	Hash            string
}

// MediaRepository handles media record data operations.
type MediaRepository struct {
	db *gorm.DB
}

// NewMediaRepository creates a new MediaRepository.
// Parameters:
//   - db: GORM database handle used for queries.
// Returns:
//   - *MediaRepository: repository instance bound to db.
func NewMediaRepository(db *gorm.DB) *MediaRepository {
	return &MediaRepository{db: db}
}

func (f MediaFilter) apply(q *gorm.DB) *gorm.DB {
	if f.MediaType != nil {
		q = q.Where("media_type = ?", *f.MediaType)
	}
	if f.PipelineStatus != nil {
		q = q.Where("pipeline_status = ?", *f.PipelineStatus)
	}
	if f.RejectionStatus != nil {
		q = q.Where("rejection_status = ?", *f.RejectionStatus)
	}
	if f.ErrorStatus != nil {
		q = q.Where("error_status = ?", *f.ErrorStatus)
	}
	if f.IMDBID != "" {
		q = q.Where("imdb_id = ?", f.IMDBID)
	}
	if f.MediaTitle != "" {
		q = q.Where("LOWER(media_title) LIKE ?", "%"+lowered(f.MediaTitle)+"%")
	}
	if f.Hash != "" {
		q = q.Where("hash = ?", f.Hash)
	}
	return q
}

// List retrieves media records matching the filter with pagination. GORM's
// soft-delete scope keeps deleted rows out of both the count and the page.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - filter: optional field predicates.
//   - params: pagination and sorting inputs.
// Returns:
//   - []domain.MediaRecord: matching records in sort order.
//   - int64: total matching count with no limit/offset applied.
//   - error: non-nil if the query fails.
func (r *MediaRepository) List(ctx context.Context, filter MediaFilter, params ListParams) ([]domain.MediaRecord, int64, error) {
	params.clamp()

	base := filter.apply(r.db.WithContext(ctx).Model(&domain.MediaRecord{}))

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count media records: %w", err)
	}

	var records []domain.MediaRecord
	order := orderClause(params.SortBy, mediaSortFields, "created_at", params.SortOrder, "hash")
	if err := base.
		Order(order).
		Limit(params.Limit).
		Offset(params.Offset).
		Find(&records).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list media records: %w", err)
	}

	return records, total, nil
}

// GetByHash retrieves a media record by its content hash.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - hash: torrent infohash identifier.
// Returns:
//   - *domain.MediaRecord: record if found and not soft-deleted.
//   - error: ErrNotFound if absent, otherwise the store error.
func (r *MediaRepository) GetByHash(ctx context.Context, hash string) (*domain.MediaRecord, error) {
	var record domain.MediaRecord
	if err := r.db.WithContext(ctx).First(&record, "hash = ?", hash).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// GetByIMDBID retrieves the most recent media record for an imdb identifier.
// Used by the reject workflow to cross-reference a training item's file and
// torrent footprint.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - imdbID: imdb identifier.
// Returns:
//   - *domain.MediaRecord: newest matching record.
//   - error: ErrNotFound if none exist, otherwise the store error.
func (r *MediaRepository) GetByIMDBID(ctx context.Context, imdbID string) (*domain.MediaRecord, error) {
	var record domain.MediaRecord
	if err := r.db.WithContext(ctx).
		Where("imdb_id = ?", imdbID).
		Order("created_at desc, hash asc").
		First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// UpdatePipeline applies a pipeline field-update set to a media record.
// Existence is checked first so absence is ErrNotFound; ClearErrorCondition
// nulls error_condition independently of the error_status flag.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - hash: torrent infohash identifier.
//   - update: fields to apply; empty set fails with ErrNoFieldsToUpdate.
// Returns:
//   - []string: names of the fields actually changed.
//   - error: ErrNotFound, ErrNoFieldsToUpdate, or the store error.
func (r *MediaRepository) UpdatePipeline(ctx context.Context, hash string, update domain.PipelineUpdate) ([]string, error) {
	if update.Empty() {
		return nil, ErrNoFieldsToUpdate
	}
	if _, err := r.GetByHash(ctx, hash); err != nil {
		return nil, err
	}

	values := map[string]interface{}{}
	var changed []string
	if update.PipelineStatus != nil {
		values["pipeline_status"] = *update.PipelineStatus
		changed = append(changed, "pipeline_status")
	}
	if update.ErrorStatus != nil {
		values["error_status"] = *update.ErrorStatus
		changed = append(changed, "error_status")
	}
	if update.RejectionStatus != nil {
		values["rejection_status"] = *update.RejectionStatus
		changed = append(changed, "rejection_status")
	}
	if update.ClearErrorCondition {
		values["error_condition"] = nil
		changed = append(changed, "error_condition")
	}
	values["updated_at"] = time.Now().UTC()

	if err := r.db.WithContext(ctx).Model(&domain.MediaRecord{}).
		Where("hash = ?", hash).
		Updates(values).Error; err != nil {
		return nil, fmt.Errorf("failed to update media record: %w", err)
	}
	return changed, nil
}

// UpdateRejectionStatus sets the rejection classification for a media record.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - hash: torrent infohash identifier.
//   - status: new rejection status.
// Returns:
//   - error: ErrNotFound if the record is absent, otherwise the store error.
func (r *MediaRepository) UpdateRejectionStatus(ctx context.Context, hash string, status domain.RejectionStatus) error {
	_, err := r.UpdatePipeline(ctx, hash, domain.PipelineUpdate{RejectionStatus: &status})
	return err
}

// SoftDelete marks a media record as deleted by stamping deleted_at. A row
// whose deleted_at is already set fails with ErrAlreadyDeleted, which maps to
// a conflict rather than a 404; the check goes through Unscoped because the
// default scope cannot see deleted rows.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - hash: torrent infohash identifier.
// Returns:
//   - time.Time: the UTC instant stamped into deleted_at.
//   - error: ErrNotFound, ErrAlreadyDeleted, or the store error.
func (r *MediaRepository) SoftDelete(ctx context.Context, hash string) (time.Time, error) {
	var record domain.MediaRecord
	if err := r.db.WithContext(ctx).Unscoped().First(&record, "hash = ?", hash).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return time.Time{}, ErrNotFound
		}
		return time.Time{}, err
	}
	if record.DeletedAt.Valid {
		return time.Time{}, ErrAlreadyDeleted
	}

	now := time.Now().UTC()
	if err := r.db.WithContext(ctx).Unscoped().Model(&domain.MediaRecord{}).
		Where("hash = ?", hash).
		Updates(map[string]interface{}{
			"deleted_at": now,
			"updated_at": now,
		}).Error; err != nil {
		return time.Time{}, fmt.Errorf("failed to soft delete media record: %w", err)
	}
	return now, nil
}
