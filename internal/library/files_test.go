package library

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/atp-media/rear-differential/internal/domain"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
}

func TestFiles_DeleteDisabled(t *testing.T) {
	files := NewFiles(Config{DeletionEnabled: false})

	result := files.Delete(context.Background(), "/mnt/lib", "movie-x", domain.MediaTypeMovie)
	if !result.Success {
		t.Error("disabled deletion is a successful no-op, expected success=true")
	}
	if result.Deleted {
		t.Error("expected deleted=false when deletion is disabled")
	}
	if result.Message != "File deletion is disabled" {
		t.Errorf("unexpected message: %q", result.Message)
	}
}

func TestFiles_DeleteStoredPath(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "movie-x.mkv")
	writeFile(t, target)

	files := NewFiles(Config{DeletionEnabled: true})
	result := files.Delete(context.Background(), root, "movie-x.mkv", domain.MediaTypeMovie)

	if !result.Success || !result.Deleted {
		t.Fatalf("expected successful deletion, got %+v", result)
	}
	if _, err := os.Lstat(target); !os.IsNotExist(err) {
		t.Error("expected file to be removed")
	}
}

func TestFiles_DeleteDirectoryRecursively(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "Some.Show.S01")
	writeFile(t, filepath.Join(dir, "episode1.mkv"))
	writeFile(t, filepath.Join(dir, "episode2.mkv"))

	files := NewFiles(Config{DeletionEnabled: true, TVPath: root})
	result := files.Delete(context.Background(), "", dir, domain.MediaTypeTV)

	if !result.Deleted {
		t.Fatalf("expected directory deletion, got %+v", result)
	}
	if _, err := os.Lstat(dir); !os.IsNotExist(err) {
		t.Error("expected directory tree to be removed")
	}
}

func TestFiles_DeleteSweepsCacheAndLibrary(t *testing.T) {
	cache := t.TempDir()
	movies := t.TempDir()
	writeFile(t, filepath.Join(cache, "incomplete", "movie-x"))
	writeFile(t, filepath.Join(cache, "complete", "movie-x"))
	writeFile(t, filepath.Join(movies, "movie-x"))

	files := NewFiles(Config{
		DeletionEnabled: true,
		CachePath:       cache,
		MoviesPath:      movies,
	})
	result := files.Delete(context.Background(), "", "movie-x", domain.MediaTypeMovie)

	if !result.Deleted {
		t.Fatalf("expected deletion, got %+v", result)
	}
	if len(result.Paths) != 3 {
		t.Errorf("expected 3 deleted paths, got %v", result.Paths)
	}
}

func TestFiles_DeleteNothingOnDisk(t *testing.T) {
	files := NewFiles(Config{
		DeletionEnabled: true,
		CachePath:       t.TempDir(),
		MoviesPath:      t.TempDir(),
	})
	result := files.Delete(context.Background(), "/nonexistent", "gone", domain.MediaTypeMovie)

	if !result.Success {
		t.Errorf("missing files must not fail the sweep, got %+v", result)
	}
	if result.Deleted {
		t.Error("expected deleted=false when nothing was found")
	}
	if result.Warning != "" {
		t.Errorf("missing files must not produce a warning, got %q", result.Warning)
	}
}

func TestFiles_DeleteNoPathsRecorded(t *testing.T) {
	files := NewFiles(Config{DeletionEnabled: true})
	result := files.Delete(context.Background(), "", "", domain.MediaTypeMovie)

	if !result.Success || result.Deleted {
		t.Errorf("expected clean no-op, got %+v", result)
	}
}

func TestFiles_DeletePermissionFailureBecomesWarning(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}

	root := t.TempDir()
	locked := filepath.Join(root, "locked")
	target := filepath.Join(locked, "movie-x")
	writeFile(t, target)
	if err := os.Chmod(locked, 0555); err != nil {
		t.Fatalf("failed to chmod: %v", err)
	}
	t.Cleanup(func() { os.Chmod(locked, 0755) })

	files := NewFiles(Config{DeletionEnabled: true})
	result := files.Delete(context.Background(), locked, "movie-x", domain.MediaTypeMovie)

	if !result.Success {
		t.Errorf("permission failure must not fail the sweep, got %+v", result)
	}
	if result.Deleted {
		t.Error("expected deleted=false")
	}
	if result.Warning == "" {
		t.Error("expected a warning describing the failed path")
	}
}
