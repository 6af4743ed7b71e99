package domain

import "time"

// MovieRow is a read-only projection from the movies view joining training
// and prediction data for a media item. It carries no invariants of its own.
type MovieRow struct {
	IMDBID             string      `gorm:"column:imdb_id" json:"imdb_id"`
	TMDBID             *int        `gorm:"column:tmdb_id" json:"tmdb_id,omitempty"`
	Label              Label       `gorm:"type:text" json:"label"`
	MediaType          MediaType   `gorm:"type:text" json:"media_type"`
	MediaTitle         string      `gorm:"type:text" json:"media_title"`
	Season             *int        `json:"season,omitempty"`
	Episode            *int        `json:"episode,omitempty"`
	ReleaseYear        *int        `json:"release_year,omitempty"`
	Budget             *int64      `json:"budget,omitempty"`
	Revenue            *int64      `json:"revenue,omitempty"`
	Runtime            *int        `json:"runtime,omitempty"`
	OriginalLanguage   *string     `gorm:"type:text" json:"original_language,omitempty"`
	Genre              StringArray `gorm:"type:text" json:"genre,omitempty"`
	TMDBRating         *float64    `gorm:"column:tmdb_rating" json:"tmdb_rating,omitempty"`
	TMDBVotes          *int        `gorm:"column:tmdb_votes" json:"tmdb_votes,omitempty"`
	RTScore            *int        `gorm:"column:rt_score" json:"rt_score,omitempty"`
	Metascore          *int        `json:"metascore,omitempty"`
	IMDBRating         *float64    `gorm:"column:imdb_rating" json:"imdb_rating,omitempty"`
	IMDBVotes          *int        `gorm:"column:imdb_votes" json:"imdb_votes,omitempty"`
	HumanLabeled       bool        `json:"human_labeled"`
	Anomalous          bool        `json:"anomalous"`
	Reviewed           bool        `json:"reviewed"`
	Prediction         *int        `json:"prediction,omitempty"`
	Probability        *float64    `json:"probability,omitempty"`
	CMValue            *CMValue    `gorm:"column:cm_value" json:"cm_value,omitempty"`
	TrainingCreatedAt  time.Time   `gorm:"column:training_created_at" json:"training_created_at"`
	TrainingUpdatedAt  time.Time   `gorm:"column:training_updated_at" json:"training_updated_at"`
	PredictionCreatedAt *time.Time `gorm:"column:prediction_created_at" json:"prediction_created_at,omitempty"`
}

// TableName returns the database view name for MovieRow.
func (MovieRow) TableName() string {
	return "movies"
}
