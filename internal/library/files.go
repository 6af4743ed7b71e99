package library

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/atp-media/rear-differential/internal/domain"
	"github.com/atp-media/rear-differential/internal/logger"
)

// Config holds the library layout and the master switch for file deletion.
type Config struct {
	// DeletionEnabled gates all filesystem writes. When false, Delete
	// short-circuits to a disabled result without touching the disk.
	DeletionEnabled bool

	// CachePath is the download staging root, containing incomplete/ and
	// complete/ subdirectories.
	CachePath string

	// MoviesPath and TVPath are the organized library roots per media type.
	MoviesPath string
	TVPath     string
}

// DeleteResult reports a best-effort deletion sweep. The disabled
// short-circuit is a successful no-op (Success=true, Deleted=false); an empty
// Paths slice with Success=true means nothing was found on disk, which is a
// clean outcome. Per-path removal failures surface in Warning.
type DeleteResult struct {
	Success bool     `json:"success"`
	Deleted bool     `json:"file_deleted"`
	Paths   []string `json:"deleted_paths,omitempty"`
	Message string   `json:"message"`
	Warning string   `json:"warning,omitempty"`
}

// Files is the filesystem gateway for downloaded media. Like the daemon
// gateway it never returns errors; per-path failures are collected into the
// result's Warning so an unreadable mount cannot abort a caller's state write.
type Files struct {
	cfg Config
}

// NewFiles creates the filesystem gateway.
// Parameters:
//   - cfg: library layout and deletion switch.
// Returns:
//   - *Files: gateway instance.
func NewFiles(cfg Config) *Files {
	return &Files{cfg: cfg}
}

// libraryRoot maps a media type to its organized library root.
func (f *Files) libraryRoot(mediaType domain.MediaType) string {
	if mediaType == domain.MediaTypeTV {
		return f.cfg.TVPath
	}
	return f.cfg.MoviesPath
}

// candidatePaths builds the ordered list of locations a download may live in:
// the cache staging areas, the organized library, and finally the raw stored
// path in case the record predates the current layout.
func (f *Files) candidatePaths(parentPath, targetPath string, mediaType domain.MediaType) []string {
	var candidates []string
	seen := map[string]bool{}
	add := func(p string) {
		if p == "" || seen[p] {
			return
		}
		seen[p] = true
		candidates = append(candidates, p)
	}

	// parent_path + target_path together locate the stored file and is the
	// primary location; the cache and library sweeps cover moved downloads.
	if parentPath != "" && targetPath != "" {
		add(filepath.Join(parentPath, targetPath))
	}

	if targetPath != "" {
		base := filepath.Base(targetPath)
		if f.cfg.CachePath != "" {
			add(filepath.Join(f.cfg.CachePath, "incomplete", base))
			add(filepath.Join(f.cfg.CachePath, "complete", base))
		}
		if root := f.libraryRoot(mediaType); root != "" {
			add(filepath.Join(root, base))
		}
		add(targetPath)
	}
	if parentPath != "" {
		base := filepath.Base(parentPath)
		if f.cfg.CachePath != "" {
			add(filepath.Join(f.cfg.CachePath, "incomplete", base))
			add(filepath.Join(f.cfg.CachePath, "complete", base))
		}
		if root := f.libraryRoot(mediaType); root != "" {
			add(filepath.Join(root, base))
		}
		add(parentPath)
	}
	return candidates
}

// removePath deletes a single filesystem entry, recursing for directories.
func removePath(path string, info os.FileInfo) error {
	if info.IsDir() {
		return os.RemoveAll(path)
	}
	return os.Remove(path)
}

// Delete sweeps every location the download may occupy and removes what it
// finds. Paths that do not exist are skipped silently; paths that exist but
// cannot be removed (typically permissions) are reported in Warning.
// Parameters:
//   - ctx: context used for log correlation only; the sweep is not cancelable
//     mid-path.
//   - parentPath: directory the download daemon wrote into, as recorded.
//   - targetPath: final file or directory path, as recorded.
//   - mediaType: selects the organized library root to search.
// Returns:
//   - DeleteResult: structured outcome, never an error.
func (f *Files) Delete(ctx context.Context, parentPath, targetPath string, mediaType domain.MediaType) DeleteResult {
	if !f.cfg.DeletionEnabled {
		return DeleteResult{
			Success: true,
			Message: "File deletion is disabled",
		}
	}

	candidates := f.candidatePaths(parentPath, targetPath, mediaType)
	if len(candidates) == 0 {
		return DeleteResult{
			Success: true,
			Message: "No file paths recorded for this item",
		}
	}

	var deleted []string
	var failures []string
	for _, path := range candidates {
		info, err := os.Lstat(path)
		if err != nil {
			if !os.IsNotExist(err) {
				failures = append(failures, fmt.Sprintf("%s: %v", path, err))
			}
			continue
		}
		if err := removePath(path, info); err != nil {
			logger.CtxWarn(ctx, "Failed to delete %s: %v", path, err)
			failures = append(failures, fmt.Sprintf("%s: %v", path, err))
			continue
		}
		logger.CtxInfo(ctx, "Deleted file from library: %s", path)
		deleted = append(deleted, path)
	}

	logger.With(logger.Fields{logger.FieldMediaType: string(mediaType)}).
		WithCount(len(deleted)).
		Info(ctx, "Library deletion sweep finished")

	result := DeleteResult{
		Success: true,
		Deleted: len(deleted) > 0,
		Paths:   deleted,
	}
	switch {
	case len(deleted) > 0:
		result.Message = fmt.Sprintf("Deleted %d path(s)", len(deleted))
	default:
		result.Message = "No files found on disk"
	}
	if len(failures) > 0 {
		result.Warning = "Some paths could not be deleted: " + strings.Join(failures, "; ")
	}
	return result
}
