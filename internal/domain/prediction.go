package domain

import "time"

// PredictionRecord is a stored model prediction for a media item. Rows are
// written by the scoring pipeline and read-only here.
type PredictionRecord struct {
	ID          uint      `gorm:"primaryKey" json:"-"`
	IMDBID      string    `gorm:"column:imdb_id;index:idx_prediction_imdb_id" json:"imdb_id"`
	Prediction  int       `json:"prediction"`
	Probability float64   `json:"probability"`
	CMValue     CMValue   `gorm:"column:cm_value;type:text" json:"cm_value"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName returns the database table name for PredictionRecord.
func (PredictionRecord) TableName() string {
	return "prediction"
}
