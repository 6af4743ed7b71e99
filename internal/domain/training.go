package domain

import "time"

// TrainingRecord is a labeled media item in the training table. Rows are
// created by the ingestion pipeline; this service only reads them and patches
// label/flag fields.
type TrainingRecord struct {
	IMDBID             string      `gorm:"column:imdb_id;type:text;primaryKey" json:"imdb_id"`
	TMDBID             *int        `gorm:"column:tmdb_id" json:"tmdb_id,omitempty"`
	Label              Label       `gorm:"type:text;index:idx_training_label" json:"label"`
	MediaType          MediaType   `gorm:"type:text;index:idx_training_media_type" json:"media_type"`
	MediaTitle         string      `gorm:"type:text" json:"media_title"`
	Season             *int        `json:"season,omitempty"`
	Episode            *int        `json:"episode,omitempty"`
	ReleaseYear        *int        `json:"release_year,omitempty"`
	Budget             *int64      `json:"budget,omitempty"`
	Revenue            *int64      `json:"revenue,omitempty"`
	Runtime            *int        `json:"runtime,omitempty"`
	OriginCountry      StringArray `gorm:"type:text" json:"origin_country,omitempty"`
	ProductionCompanies StringArray `gorm:"type:text" json:"production_companies,omitempty"`
	ProductionCountries StringArray `gorm:"type:text" json:"production_countries,omitempty"`
	ProductionStatus   *string     `gorm:"type:text" json:"production_status,omitempty"`
	OriginalLanguage   *string     `gorm:"type:text" json:"original_language,omitempty"`
	SpokenLanguages    StringArray `gorm:"type:text" json:"spoken_languages,omitempty"`
	Genre              StringArray `gorm:"type:text" json:"genre,omitempty"`
	OriginalMediaTitle *string     `gorm:"type:text" json:"original_media_title,omitempty"`
	Tagline            *string     `gorm:"type:text" json:"tagline,omitempty"`
	Overview           *string     `gorm:"type:text" json:"overview,omitempty"`
	TMDBRating         *float64    `gorm:"column:tmdb_rating" json:"tmdb_rating,omitempty"`
	TMDBVotes          *int        `gorm:"column:tmdb_votes" json:"tmdb_votes,omitempty"`
	RTScore            *int        `gorm:"column:rt_score" json:"rt_score,omitempty"`
	Metascore          *int        `json:"metascore,omitempty"`
	IMDBRating         *float64    `gorm:"column:imdb_rating" json:"imdb_rating,omitempty"`
	IMDBVotes          *int        `gorm:"column:imdb_votes" json:"imdb_votes,omitempty"`
	HumanLabeled       bool        `gorm:"default:false" json:"human_labeled"`
	Anomalous          bool        `gorm:"default:false" json:"anomalous"`
	Reviewed           bool        `gorm:"default:false" json:"reviewed"`
	CreatedAt          time.Time   `json:"created_at"`
	UpdatedAt          time.Time   `json:"updated_at"`
}

// TableName returns the database table name for TrainingRecord.
func (TrainingRecord) TableName() string {
	return "training"
}

// TrainingUpdate is the field-update set for a training patch. Nil members are
// left untouched; a non-nil Label forces human_labeled and reviewed to true
// when applied.
type TrainingUpdate struct {
	Label        *Label `json:"label,omitempty"`
	HumanLabeled *bool  `json:"human_labeled,omitempty"`
	Anomalous    *bool  `json:"anomalous,omitempty"`
	Reviewed     *bool  `json:"reviewed,omitempty"`
}

// Empty reports whether the update contains no fields to apply.
func (u TrainingUpdate) Empty() bool {
	return u.Label == nil && u.HumanLabeled == nil && u.Anomalous == nil && u.Reviewed == nil
}
