package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/atp-media/rear-differential/internal/domain"
	"github.com/atp-media/rear-differential/internal/library"
	"github.com/atp-media/rear-differential/internal/logger"
	"github.com/atp-media/rear-differential/internal/repository"
	"github.com/atp-media/rear-differential/internal/transmission"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type fakeTorrents struct {
	removeResult transmission.RemoveResult
	removedHash  string
	deleteData   *bool
	ctxHash      string
}

func (f *fakeTorrents) Remove(ctx context.Context, hash string, deleteData bool) transmission.RemoveResult {
	f.removedHash = hash
	f.deleteData = &deleteData
	f.ctxHash = logger.GetHash(ctx)
	return f.removeResult
}

type fakeFiles struct {
	result     library.DeleteResult
	parentPath string
	targetPath string
	called     bool
	ctxIMDBID  string
}

func (f *fakeFiles) Delete(ctx context.Context, parentPath, targetPath string, _ domain.MediaType) library.DeleteResult {
	f.called = true
	f.parentPath = parentPath
	f.targetPath = targetPath
	f.ctxIMDBID = logger.GetIMDBID(ctx)
	return f.result
}

func newTestService(t *testing.T) (*RejectionService, *gorm.DB, *fakeTorrents, *fakeFiles) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&domain.TrainingRecord{}, &domain.MediaRecord{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	torrents := &fakeTorrents{
		removeResult: transmission.RemoveResult{Success: true, Found: true, Name: "Movie.X"},
	}
	files := &fakeFiles{
		result: library.DeleteResult{Success: true, Deleted: true, Paths: []string{"/mnt/lib/movie-x"}},
	}
	svc := NewRejectionService(
		repository.NewTrainingRepository(db),
		repository.NewMediaRepository(db),
		torrents,
		files,
	)
	return svc, db, torrents, files
}

func seedRejectFixture(t *testing.T, db *gorm.DB, imdbID, hash string) {
	t.Helper()

	training := domain.TrainingRecord{
		IMDBID:     imdbID,
		Label:      domain.LabelWouldWatch,
		MediaType:  domain.MediaTypeMovie,
		MediaTitle: "Movie X",
	}
	if err := db.Create(&training).Error; err != nil {
		t.Fatalf("failed to seed training record: %v", err)
	}

	parent := "/mnt/lib"
	target := "movie-x"
	link := "https://tracker.example/download/" + hash
	media := domain.MediaRecord{
		Hash:         hash,
		IMDBID:       &imdbID,
		MediaType:    domain.MediaTypeMovie,
		ParentPath:   &parent,
		TargetPath:   &target,
		OriginalLink: &link,
	}
	if err := db.Create(&media).Error; err != nil {
		t.Fatalf("failed to seed media record: %v", err)
	}
}

const fixtureHash = "00000000000000000000000000000099999901aa"

func TestRejectionService_Reject(t *testing.T) {
	svc, db, torrents, files := newTestService(t)
	seedRejectFixture(t, db, "tt9999901", fixtureHash)
	ctx := context.Background()

	result, err := svc.Reject(ctx, "tt9999901")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Success {
		t.Error("expected success")
	}
	if !result.FileDeleted {
		t.Error("expected file_deleted true")
	}
	if !result.TorrentRemoved {
		t.Error("expected torrent_removed true")
	}

	// Label write cascades
	var training domain.TrainingRecord
	if err := db.First(&training, "imdb_id = ?", "tt9999901").Error; err != nil {
		t.Fatalf("failed to load training record: %v", err)
	}
	if training.Label != domain.LabelWouldNotWatch {
		t.Errorf("expected label would_not_watch, got %s", training.Label)
	}
	if !training.HumanLabeled || !training.Reviewed {
		t.Error("expected human_labeled and reviewed forced true")
	}

	// File gateway got the stored paths
	if files.parentPath != "/mnt/lib" || files.targetPath != "movie-x" {
		t.Errorf("unexpected paths passed to file gateway: %q %q", files.parentPath, files.targetPath)
	}

	// Gateway calls carry the item identifiers for log correlation
	if files.ctxIMDBID != "tt9999901" {
		t.Errorf("expected imdb_id tag on gateway context, got %q", files.ctxIMDBID)
	}
	if torrents.ctxHash != fixtureHash {
		t.Errorf("expected hash tag on gateway context, got %q", torrents.ctxHash)
	}

	// Torrent removal keeps downloaded data; file teardown owns deletion
	if torrents.removedHash != fixtureHash {
		t.Errorf("expected torrent hash %s, got %s", fixtureHash, torrents.removedHash)
	}
	if torrents.deleteData == nil || *torrents.deleteData {
		t.Error("expected delete_data=false on reject torrent removal")
	}
}

func TestRejectionService_RejectIdempotent(t *testing.T) {
	svc, db, _, _ := newTestService(t)
	seedRejectFixture(t, db, "tt9999901", fixtureHash)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		result, err := svc.Reject(ctx, "tt9999901")
		if err != nil {
			t.Fatalf("call %d: unexpected error: %v", i+1, err)
		}
		if !result.Success {
			t.Errorf("call %d: expected success", i+1)
		}
	}

	var training domain.TrainingRecord
	db.First(&training, "imdb_id = ?", "tt9999901")
	if training.Label != domain.LabelWouldNotWatch {
		t.Errorf("expected label would_not_watch after repeated rejects, got %s", training.Label)
	}
}

func TestRejectionService_RejectNotFound(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	_, err := svc.Reject(context.Background(), "tt7777777")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRejectionService_RejectGatewayIsolation(t *testing.T) {
	svc, db, torrents, files := newTestService(t)
	seedRejectFixture(t, db, "tt9999901", fixtureHash)
	files.result = library.DeleteResult{
		Success: true,
		Deleted: false,
		Warning: "Some paths could not be deleted: /mnt/lib/movie-x: permission denied",
	}
	torrents.removeResult = transmission.RemoveResult{Success: false, Message: "connection refused"}

	result, err := svc.Reject(context.Background(), "tt9999901")
	if err != nil {
		t.Fatalf("gateway failures must not fail the workflow: %v", err)
	}
	if !result.Success {
		t.Error("expected success despite gateway failures")
	}
	if result.FileDeleted {
		t.Error("expected file_deleted false")
	}
	if result.FileDeletionWarning == "" {
		t.Error("expected file_deletion_warning")
	}
	if result.TorrentRemoved {
		t.Error("expected torrent_removed false")
	}

	// Authoritative write is still committed
	var training domain.TrainingRecord
	db.First(&training, "imdb_id = ?", "tt9999901")
	if training.Label != domain.LabelWouldNotWatch {
		t.Errorf("expected label persisted, got %s", training.Label)
	}
}

func TestRejectionService_RejectWithoutMediaRecord(t *testing.T) {
	svc, db, _, files := newTestService(t)
	training := domain.TrainingRecord{
		IMDBID:    "tt9999902",
		Label:     domain.LabelWouldWatch,
		MediaType: domain.MediaTypeMovie,
	}
	if err := db.Create(&training).Error; err != nil {
		t.Fatalf("failed to seed: %v", err)
	}

	result, err := svc.Reject(context.Background(), "tt9999902")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Success {
		t.Error("missing media record must not fail the reject")
	}
	if files.called {
		t.Error("file gateway must not be called without a media record")
	}
}

func TestRejectionService_SoftDelete(t *testing.T) {
	svc, db, torrents, _ := newTestService(t)
	seedRejectFixture(t, db, "tt9999901", fixtureHash)
	ctx := context.Background()

	result, err := svc.SoftDelete(ctx, fixtureHash)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Success {
		t.Error("expected success")
	}
	if !strings.Contains(result.Message, "Movie.X") {
		t.Errorf("expected torrent note in message, got %q", result.Message)
	}
	if torrents.deleteData == nil || !*torrents.deleteData {
		t.Error("expected delete_data=true on soft-delete torrent removal")
	}
	if torrents.ctxHash != fixtureHash {
		t.Errorf("expected hash tag on gateway context, got %q", torrents.ctxHash)
	}

	// Second call is a conflict
	_, err = svc.SoftDelete(ctx, fixtureHash)
	if !errors.Is(err, repository.ErrAlreadyDeleted) {
		t.Errorf("expected ErrAlreadyDeleted, got %v", err)
	}
}

func TestRejectionService_SoftDeleteTorrentFailureIsInformational(t *testing.T) {
	svc, db, torrents, _ := newTestService(t)
	seedRejectFixture(t, db, "tt9999901", fixtureHash)
	torrents.removeResult = transmission.RemoveResult{Success: false, Message: "connection refused"}

	result, err := svc.SoftDelete(context.Background(), fixtureHash)
	if err != nil {
		t.Fatalf("torrent failure must not fail the soft delete: %v", err)
	}
	if !result.Success {
		t.Error("expected success")
	}
	if !strings.Contains(result.Message, "torrent removal failed") {
		t.Errorf("expected torrent failure note, got %q", result.Message)
	}
}

func TestRejectionService_SoftDeleteNotFound(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	_, err := svc.SoftDelete(context.Background(), "00000000000000000000000000000000deadbeef")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestHashFromLink(t *testing.T) {
	tests := []struct {
		name string
		link string
		want string
	}{
		{"download url", "https://tracker.example/download/" + fixtureHash, fixtureHash},
		{"trailing slash", "https://tracker.example/download/" + fixtureHash + "/", fixtureHash},
		{"bare hash", fixtureHash, fixtureHash},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := hashFromLink(tt.link); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
