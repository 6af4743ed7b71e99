package domain

import (
	"time"

	"gorm.io/gorm"
)

// MediaRecord is a content-addressed item in the acquisition pipeline. The
// hash is the torrent infohash (40 lowercase hex chars). DeletedAt implements
// soft deletion; every read query excludes soft-deleted rows.
type MediaRecord struct {
	Hash            string          `gorm:"type:text;primaryKey" json:"hash"`
	MediaType       MediaType       `gorm:"type:text;index:idx_media_media_type" json:"media_type"`
	MediaTitle      *string         `gorm:"type:text" json:"media_title,omitempty"`
	Season          *int            `json:"season,omitempty"`
	Episode         *int            `json:"episode,omitempty"`
	ReleaseYear     *int            `json:"release_year,omitempty"`
	PipelineStatus  PipelineStatus  `gorm:"type:text;index:idx_media_pipeline_status;default:ingested" json:"pipeline_status"`
	ErrorStatus     bool            `gorm:"default:false" json:"error_status"`
	ErrorCondition  *string         `gorm:"type:text" json:"error_condition,omitempty"`
	RejectionStatus RejectionStatus `gorm:"type:text;index:idx_media_rejection_status;default:unfiltered" json:"rejection_status"`
	RejectionReason *string         `gorm:"type:text" json:"rejection_reason,omitempty"`
	ParentPath      *string         `gorm:"type:text" json:"parent_path,omitempty"`
	TargetPath      *string         `gorm:"type:text" json:"target_path,omitempty"`
	OriginalTitle   string          `gorm:"type:text" json:"original_title"`
	OriginalPath    *string         `gorm:"type:text" json:"original_path,omitempty"`
	OriginalLink    *string         `gorm:"type:text" json:"original_link,omitempty"`
	RSSSource       *string         `gorm:"column:rss_source;type:text" json:"rss_source,omitempty"`
	Uploader        *string         `gorm:"type:text" json:"uploader,omitempty"`
	Genre           StringArray     `gorm:"type:text" json:"genre,omitempty"`
	Language        StringArray     `gorm:"type:text" json:"language,omitempty"`
	RTScore         *int            `gorm:"column:rt_score" json:"rt_score,omitempty"`
	Metascore       *int            `json:"metascore,omitempty"`
	IMDBRating      *float64        `gorm:"column:imdb_rating" json:"imdb_rating,omitempty"`
	IMDBVotes       *int            `gorm:"column:imdb_votes" json:"imdb_votes,omitempty"`
	IMDBID          *string         `gorm:"column:imdb_id;index:idx_media_imdb_id" json:"imdb_id,omitempty"`
	TMDBID          *int            `gorm:"column:tmdb_id" json:"tmdb_id,omitempty"`
	Resolution      *string         `gorm:"type:text" json:"resolution,omitempty"`
	VideoCodec      *string         `gorm:"type:text" json:"video_codec,omitempty"`
	UploadType      *string         `gorm:"type:text" json:"upload_type,omitempty"`
	AudioCodec      *string         `gorm:"type:text" json:"audio_codec,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	DeletedAt       gorm.DeletedAt  `gorm:"index" json:"deleted_at,omitempty"`
}

// TableName returns the database table name for MediaRecord.
func (MediaRecord) TableName() string {
	return "media"
}

// PipelineUpdate is the field-update set for a media pipeline patch.
// ClearErrorCondition nulls error_condition independently of ErrorStatus.
type PipelineUpdate struct {
	PipelineStatus      *PipelineStatus  `json:"pipeline_status,omitempty"`
	ErrorStatus         *bool            `json:"error_status,omitempty"`
	RejectionStatus     *RejectionStatus `json:"rejection_status,omitempty"`
	ClearErrorCondition bool             `json:"clear_error_condition,omitempty"`
}

// Empty reports whether the update contains no fields to apply.
func (u PipelineUpdate) Empty() bool {
	return u.PipelineStatus == nil && u.ErrorStatus == nil &&
		u.RejectionStatus == nil && !u.ClearErrorCondition
}
