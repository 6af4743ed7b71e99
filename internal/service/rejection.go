package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/atp-media/rear-differential/internal/domain"
	"github.com/atp-media/rear-differential/internal/library"
	"github.com/atp-media/rear-differential/internal/logger"
	"github.com/atp-media/rear-differential/internal/repository"
	"github.com/atp-media/rear-differential/internal/transmission"
)

// TorrentGateway is the slice of the download daemon client the rejection
// workflows need.
type TorrentGateway interface {
	Remove(ctx context.Context, hash string, deleteData bool) transmission.RemoveResult
}

// FileGateway is the slice of the library filesystem gateway the rejection
// workflows need.
type FileGateway interface {
	Delete(ctx context.Context, parentPath, targetPath string, mediaType domain.MediaType) library.DeleteResult
}

// RejectResult is the aggregate outcome of a reject workflow. Only the label
// write is authoritative; the file and torrent fields report best-effort side
// cleanup and can be false on a successful rejection.
type RejectResult struct {
	Success             bool   `json:"success"`
	Message             string `json:"message"`
	FileDeleted         bool   `json:"file_deleted"`
	FileDeletionWarning string `json:"file_deletion_warning,omitempty"`
	TorrentRemoved      bool   `json:"torrent_removed"`
}

// SoftDeleteResult is the outcome of a soft-delete workflow.
type SoftDeleteResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// RejectionService coordinates the record store and both gateways for the two
// multi-system teardown workflows. Gateway failures never fail the workflow;
// record store failures always do.
type RejectionService struct {
	training *repository.TrainingRepository
	media    *repository.MediaRepository
	torrents TorrentGateway
	files    FileGateway
}

// NewRejectionService creates a new RejectionService.
// Parameters:
//   - training: training record repository (authoritative label writes).
//   - media: media record repository (cross-reference and soft delete).
//   - torrents: download daemon gateway.
//   - files: library filesystem gateway.
// Returns:
//   - *RejectionService: service instance.
func NewRejectionService(
	training *repository.TrainingRepository,
	media *repository.MediaRepository,
	torrents TorrentGateway,
	files FileGateway,
) *RejectionService {
	return &RejectionService{
		training: training,
		media:    media,
		torrents: torrents,
		files:    files,
	}
}

// hashFromLink extracts the torrent infohash from a stored origin link by
// taking the trailing path segment, e.g. ".../download/<hash>" forms.
func hashFromLink(link string) string {
	link = strings.TrimRight(link, "/")
	idx := strings.LastIndex(link, "/")
	if idx < 0 {
		return link
	}
	return link[idx+1:]
}

// Reject marks a training item as not worth watching and tears down its
// on-disk and in-daemon footprint. Only the label write can fail the call:
// a missing media cross-reference, a failed file sweep, or an unreachable
// daemon all degrade to flags in the result.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - imdbID: imdb identifier of the training item.
// Returns:
//   - RejectResult: aggregate outcome.
//   - error: repository.ErrNotFound if no training record exists, otherwise
//     the store error from the label write.
func (s *RejectionService) Reject(ctx context.Context, imdbID string) (RejectResult, error) {
	ctx = logger.SetIMDBID(ctx, imdbID)

	if err := s.training.UpdateLabel(ctx, imdbID, domain.LabelWouldNotWatch); err != nil {
		return RejectResult{}, err
	}
	logger.CtxInfo(ctx, "Rejected training item %s", imdbID)

	result := RejectResult{
		Success: true,
		Message: fmt.Sprintf("Media %s rejected", imdbID),
	}

	record, err := s.media.GetByIMDBID(ctx, imdbID)
	if err != nil {
		logger.CtxWarn(ctx, "No media record found for %s, skipping file and torrent cleanup: %v", imdbID, err)
		result.Message += "; no media record found, file and torrent cleanup skipped"
		return result, nil
	}
	ctx = logger.SetHash(ctx, record.Hash)

	parentPath := ""
	if record.ParentPath != nil {
		parentPath = *record.ParentPath
	}
	targetPath := ""
	if record.TargetPath != nil {
		targetPath = *record.TargetPath
	}
	fileResult := s.files.Delete(ctx, parentPath, targetPath, record.MediaType)
	result.FileDeleted = fileResult.Deleted
	if fileResult.Warning != "" {
		result.FileDeletionWarning = fileResult.Warning
	}

	hash := record.Hash
	if hash == "" && record.OriginalLink != nil {
		hash = hashFromLink(*record.OriginalLink)
	}
	if hash != "" {
		torrentResult := s.torrents.Remove(ctx, hash, false)
		result.TorrentRemoved = torrentResult.Success && torrentResult.Found
	}

	return result, nil
}

// SoftDelete removes a media record from the active set. The torrent removal
// runs first with delete-local-data so daemon state and disk go together, but
// only the record store write decides success.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - hash: torrent infohash identifier.
// Returns:
//   - SoftDeleteResult: outcome with the torrent note appended to the message.
//   - error: repository.ErrNotFound, repository.ErrAlreadyDeleted, or the
//     store error.
func (s *RejectionService) SoftDelete(ctx context.Context, hash string) (SoftDeleteResult, error) {
	ctx = logger.SetHash(ctx, hash)

	torrentResult := s.torrents.Remove(ctx, hash, true)

	deletedAt, err := s.media.SoftDelete(ctx, hash)
	if err != nil {
		return SoftDeleteResult{}, err
	}

	message := fmt.Sprintf("Media record %s deleted at %s", hash, deletedAt.Format("2006-01-02T15:04:05Z07:00"))
	switch {
	case torrentResult.Success && torrentResult.Found:
		message += fmt.Sprintf("; torrent removed from Transmission: %s", torrentResult.Name)
	case torrentResult.Success:
		message += "; torrent not found in Transmission"
	default:
		message += fmt.Sprintf("; torrent removal failed: %s", torrentResult.Message)
	}

	return SoftDeleteResult{Success: true, Message: message}, nil
}
