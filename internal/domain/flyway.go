package domain

import "time"

// SchemaHistoryRecord is a row of the Flyway migration ledger. installed_rank
// is stored as text in some deployments, so ordering casts it to an integer.
type SchemaHistoryRecord struct {
	InstalledRank string     `gorm:"column:installed_rank;primaryKey" json:"installed_rank"`
	Version       *string    `gorm:"type:text" json:"version,omitempty"`
	Description   string     `gorm:"type:text" json:"description"`
	Type          string     `gorm:"type:text" json:"type"`
	Script        string     `gorm:"type:text" json:"script"`
	Checksum      *int64     `json:"checksum,omitempty"`
	InstalledBy   string     `gorm:"column:installed_by;type:text" json:"installed_by"`
	InstalledOn   time.Time  `gorm:"column:installed_on" json:"installed_on"`
	ExecutionTime int        `gorm:"column:execution_time" json:"execution_time"`
	Success       bool       `json:"success"`
}

// TableName returns the database table name for SchemaHistoryRecord.
func (SchemaHistoryRecord) TableName() string {
	return "flyway_schema_history"
}
