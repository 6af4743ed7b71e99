package repository

import (
	"context"
	"fmt"

	"github.com/atp-media/rear-differential/internal/domain"
	"gorm.io/gorm"
)

// movieSortFields is the allow-list for movie view listing sort_by values.
var movieSortFields = allowedFields(
	"imdb_id", "tmdb_id", "label", "media_type", "media_title", "season",
	"episode", "release_year", "budget", "revenue", "runtime",
	"original_language", "genre", "tmdb_rating", "tmdb_votes", "rt_score",
	"metascore", "imdb_rating", "imdb_votes", "human_labeled", "anomalous",
	"reviewed", "prediction", "probability", "cm_value",
	"training_created_at", "training_updated_at", "prediction_created_at",
)

// MovieFilter holds the optional predicates for the movie view listing,
// spanning training, prediction, and content fields.
type MovieFilter struct {
	MediaType    *domain.MediaType
	Label        *domain.Label
	Reviewed     *bool
	HumanLabeled *bool
	Anomalous    *bool
	Prediction   *int
	CMValue      *domain.CMValue
	IMDBIDs      []string
	MediaTitle   string
	ReleaseYear  *int
}

// MovieRepository handles read-only access to the movies view.
type MovieRepository struct {
	db *gorm.DB
}

// NewMovieRepository creates a new MovieRepository.
// Parameters:
//   - db: GORM database handle used for queries.
// Returns:
//   - *MovieRepository: repository instance bound to db.
func NewMovieRepository(db *gorm.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

func (f MovieFilter) apply(q *gorm.DB) *gorm.DB {
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
	if f.Prediction != nil {
		q = q.Where("prediction = ?", *f.Prediction)
	}
	if f.CMValue != nil {
		q = q.Where("cm_value = ?", *f.CMValue)
	}
	if len(f.IMDBIDs) == 1 {
		q = q.Where("imdb_id = ?", f.IMDBIDs[0])
	} else if len(f.IMDBIDs) > 1 {
		q = q.Where("imdb_id IN ?", f.IMDBIDs)
	}
	if f.MediaTitle != "" {
		q = q.Where("LOWER(media_title) LIKE ?", "%"+lowered(f.MediaTitle)+"%")
	}
	if f.ReleaseYear != nil {
		q = q.Where("release_year = ?", *f.ReleaseYear)
	}
	return q
}

// List retrieves movie view rows matching the filter with pagination.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - filter: optional field predicates.
//   - params: pagination and sorting inputs.
// Returns:
//   - []domain.MovieRow: matching rows in sort order.
//   - int64: total matching count with no limit/offset applied.
//   - error: non-nil if the query fails.
func (r *MovieRepository) List(ctx context.Context, filter MovieFilter, params ListParams) ([]domain.MovieRow, int64, error) {
	params.clamp()

	base := filter.apply(r.db.WithContext(ctx).Model(&domain.MovieRow{}))

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count movie rows: %w", err)
	}

	var rows []domain.MovieRow
	order := orderClause(params.SortBy, movieSortFields, "training_created_at", params.SortOrder, "imdb_id")
	if err := base.
		Order(order).
		Limit(params.Limit).
		Offset(params.Offset).
		Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list movie rows: %w", err)
	}

	return rows, total, nil
}
