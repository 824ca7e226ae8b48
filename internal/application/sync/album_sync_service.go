package sync

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
	"github.com/wanderlens/backend/internal/application/ingestion"
	"github.com/wanderlens/backend/internal/domain/photo"
	"github.com/wanderlens/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// AlbumInfo describes a validated shared album
type AlbumInfo struct {
	Title string `json:"title,omitempty"`
}

// AlbumLister resolves a public shared-album link into downloadable image
// locators. Listing is ordered and deduplicated by exact locator string.
type AlbumLister interface {
	Validate(ctx context.Context, shareLink string) (*AlbumInfo, error)
	ListItems(ctx context.Context, shareLink string) ([]string, error)
	Download(ctx context.Context, locator string) ([]byte, error)
}

// ItemError records one failed album item without aborting the batch
type ItemError struct {
	Locator string `json:"locator"`
	Message string `json:"message"`
}

// Result aggregates one sync run. Produced fresh per invocation, never
// persisted.
type Result struct {
	AlbumTitle string      `json:"album_title,omitempty"`
	Total      int         `json:"total"`
	Uploaded   int         `json:"uploaded"`
	Skipped    int         `json:"skipped"`
	Failed     int         `json:"failed"`
	Errors     []ItemError `json:"errors,omitempty"`
}

// AlbumSyncService drives ingestion across an entire shared-album listing,
// producing aggregate counts and per-item error detail.
type AlbumSyncService struct {
	lister    AlbumLister
	ingest    *ingestion.Service
	photoRepo photo.Repository
	logger    *zap.Logger
}

// NewAlbumSyncService creates a new AlbumSyncService
func NewAlbumSyncService(
	lister AlbumLister,
	ingest *ingestion.Service,
	photoRepo photo.Repository,
	logger *zap.Logger,
) *AlbumSyncService {
	return &AlbumSyncService{
		lister:    lister,
		ingest:    ingest,
		photoRepo: photoRepo,
		logger:    logger,
	}
}

// ValidateLink checks that a share link points at an accessible album
// without running any per-item work
func (s *AlbumSyncService) ValidateLink(ctx context.Context, shareLink string) (*AlbumInfo, error) {
	if shareLink == "" {
		return nil, shared.NewDomainError("INVALID_SHARE_LINK", "Album share link cannot be empty")
	}
	info, err := s.lister.Validate(ctx, shareLink)
	if err != nil {
		return nil, err
	}
	return info, nil
}

// SyncAlbum ingests every item of the shared album for the given owner.
// The link is validated before any per-item work; an empty listing is a
// terminal error, not an empty success. Items are processed strictly
// sequentially and no single failure aborts the loop: progress already
// made on the rest of the album is never lost.
func (s *AlbumSyncService) SyncAlbum(ctx context.Context, ownerID uuid.UUID, shareLink string) (*Result, error) {
	if ownerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OWNER", "Owner ID cannot be empty")
	}

	info, err := s.ValidateLink(ctx, shareLink)
	if err != nil {
		return nil, err
	}

	locators, err := s.lister.ListItems(ctx, shareLink)
	if err != nil {
		return nil, shared.NewDomainError("ALBUM_LIST_FAILURE", fmt.Sprintf("Failed to list album items: %v", err))
	}
	if len(locators) == 0 {
		return nil, shared.NewDomainError("NO_PHOTOS_FOUND", "No photos found in the shared album")
	}

	result := &Result{Total: len(locators)}
	if info != nil {
		result.AlbumTitle = info.Title
	}

	for i, locator := range locators {
		if err := s.syncItem(ctx, ownerID, locator, i, result); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, ItemError{Locator: locator, Message: err.Error()})
			s.logger.Warn("album item failed",
				zap.String("owner_id", ownerID.String()),
				zap.String("locator", locator),
				zap.Error(err),
			)
		}
	}

	s.logger.Info("album sync finished",
		zap.String("owner_id", ownerID.String()),
		zap.Int("total", result.Total),
		zap.Int("uploaded", result.Uploaded),
		zap.Int("skipped", result.Skipped),
		zap.Int("failed", result.Failed),
	)
	return result, nil
}

func (s *AlbumSyncService) syncItem(ctx context.Context, ownerID uuid.UUID, locator string, index int, result *Result) error {
	// The dedup key is derived from the locator alone, so a re-sync of an
	// unchanged album recognizes every item before downloading anything
	dedupKey := DedupKey(locator)
	existing, err := s.photoRepo.FindByOwnerAndDedupKey(ctx, ownerID, dedupKey)
	if err == nil && existing != nil {
		result.Skipped++
		return nil
	}

	data, err := s.lister.Download(ctx, locator)
	if err != nil {
		return fmt.Errorf("download failed: %w", err)
	}

	ingested, err := s.ingest.Ingest(ctx, ingestion.IngestRequest{
		OwnerID:        ownerID,
		Data:           data,
		FileName:       fmt.Sprintf("google-photos-%d.jpg", index+1),
		MimeType:       "image/jpeg",
		Source:         photo.SourceGooglePhotos,
		SourceDedupKey: dedupKey,
	})
	if err != nil {
		return err
	}

	if ingested.Duplicate {
		result.Skipped++
	} else {
		result.Uploaded++
	}
	return nil
}

// GetSyncStatus returns per-status counts of the user's scraped imports
func (s *AlbumSyncService) GetSyncStatus(ctx context.Context, userID uuid.UUID) (photo.StatusCounts, error) {
	if userID == uuid.Nil {
		return photo.StatusCounts{}, shared.NewDomainError("INVALID_OWNER", "Owner ID cannot be empty")
	}
	return s.photoRepo.CountByOwnerAndSource(ctx, userID, photo.SourceGooglePhotos)
}

// DedupKey derives the stable per-item dedup key from a source locator
func DedupKey(locator string) string {
	sum := md5.Sum([]byte(locator))
	return hex.EncodeToString(sum[:])
}
