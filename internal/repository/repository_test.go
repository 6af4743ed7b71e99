package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/atp-media/rear-differential/internal/domain"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database with the service tables.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(
		&domain.TrainingRecord{},
		&domain.MediaRecord{},
		&domain.PredictionRecord{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

// seedTraining inserts n training records with predictable ids tt1000001..
// and staggered created_at timestamps.
func seedTraining(t *testing.T, db *gorm.DB, n int) []domain.TrainingRecord {
	t.Helper()

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	records := make([]domain.TrainingRecord, 0, n)
	for i := 0; i < n; i++ {
		rec := domain.TrainingRecord{
			IMDBID:     fmt.Sprintf("tt%07d", 1000001+i),
			Label:      domain.LabelWouldWatch,
			MediaType:  domain.MediaTypeMovie,
			MediaTitle: fmt.Sprintf("Movie %02d", i),
			CreatedAt:  base.Add(time.Duration(i) * time.Hour),
			UpdatedAt:  base.Add(time.Duration(i) * time.Hour),
		}
		if err := db.Create(&rec).Error; err != nil {
			t.Fatalf("failed to seed training record: %v", err)
		}
		records = append(records, rec)
	}
	return records
}

func seedMedia(t *testing.T, db *gorm.DB, hash, imdbID string) domain.MediaRecord {
	t.Helper()

	parent := "/mnt/lib"
	target := "movie-x"
	title := "Seeded Movie"
	rec := domain.MediaRecord{
		Hash:           hash,
		IMDBID:         &imdbID,
		MediaType:      domain.MediaTypeMovie,
		MediaTitle:     &title,
		PipelineStatus: domain.PipelineDownloaded,
		ParentPath:     &parent,
		TargetPath:     &target,
	}
	if err := db.Create(&rec).Error; err != nil {
		t.Fatalf("failed to seed media record: %v", err)
	}
	return rec
}

func testHash(suffix string) string {
	const zeros = "0000000000000000000000000000000000000000"
	return zeros[:40-len(suffix)] + suffix
}
