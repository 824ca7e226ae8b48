package ingestion

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/wanderlens/backend/internal/application/places"
	"github.com/wanderlens/backend/internal/domain/photo"
	"github.com/wanderlens/backend/internal/domain/shared"
	"github.com/wanderlens/backend/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// Service turns one source image into a persisted pending Photo, exactly
// once per source item.
type Service struct {
	photoRepo photo.Repository
	store     MediaStore
	geo       GeoResolver
	exif      ExifExtractor
	registry  *places.RegistryService
	logger    *zap.Logger
}

// NewService creates a new ingestion Service
func NewService(
	photoRepo photo.Repository,
	store MediaStore,
	geo GeoResolver,
	exif ExifExtractor,
	registry *places.RegistryService,
	logger *zap.Logger,
) *Service {
	return &Service{
		photoRepo: photoRepo,
		store:     store,
		geo:       geo,
		exif:      exif,
		registry:  registry,
		logger:    logger,
	}
}

// IngestRequest carries one source image into the pipeline
type IngestRequest struct {
	OwnerID  uuid.UUID
	Data     []byte
	FileName string
	MimeType string
	Source   photo.SourceKind
	// SourceDedupKey recognizes re-imports of the same source item.
	// Required for scraped imports, absent otherwise.
	SourceDedupKey string
	// ManualLocation, when set, always wins over EXIF-embedded GPS
	ManualLocation *valueobject.GeoPoint
}

// IngestResult is the outcome of a single ingest call
type IngestResult struct {
	Photo *photo.Photo
	// Duplicate is true when the source item was already imported; the
	// media store was not contacted and Photo is the existing record.
	Duplicate bool
}

// Ingest stores the bytes, extracts metadata, resolves the place, and
// persists a pending Photo. EXIF and geocoding failures degrade to a photo
// without location; only the media store write itself is fatal.
func (s *Service) Ingest(ctx context.Context, req IngestRequest) (*IngestResult, error) {
	if req.OwnerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OWNER", "Owner ID cannot be empty")
	}
	if len(req.Data) == 0 {
		return nil, shared.NewDomainError("EMPTY_FILE", "Image data cannot be empty")
	}
	if !req.Source.IsValid() {
		return nil, shared.NewDomainError("INVALID_SOURCE", "Photo source is not valid")
	}
	if req.Source.RequiresDedupKey() && req.SourceDedupKey == "" {
		return nil, shared.NewDomainError("MISSING_DEDUP_KEY", "Scraped imports must carry a source dedup key")
	}

	// Dedup short-circuit: a recognized re-import never touches the media store
	if req.SourceDedupKey != "" {
		existing, err := s.photoRepo.FindByOwnerAndDedupKey(ctx, req.OwnerID, req.SourceDedupKey)
		if err == nil {
			return &IngestResult{Photo: existing, Duplicate: true}, nil
		}
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, fmt.Errorf("dedup lookup failed: %w", err)
		}
	}

	asset, err := s.store.Store(ctx, req.Data, folderFor(req.Source))
	if err != nil {
		return nil, shared.NewDomainError("MEDIA_STORE_FAILURE", fmt.Sprintf("Failed to store media: %v", err))
	}

	mimeType := req.MimeType
	if mimeType == "" {
		mimeType = asset.MimeType
	}
	p, err := photo.NewPhoto(req.OwnerID, asset.AssetID, asset.URL, photo.FileInfo{
		FileName: req.FileName,
		FileSize: asset.ByteSize,
		MimeType: mimeType,
		Width:    asset.Width,
		Height:   asset.Height,
	}, req.Source)
	if err != nil {
		return nil, err
	}
	if req.SourceDedupKey != "" {
		if err := p.SetDedupKey(req.SourceDedupKey); err != nil {
			return nil, err
		}
	}

	exifData, gps := s.extractExif(req.Data)
	p.Exif = exifData

	// Manual coordinates always override EXIF GPS
	location := req.ManualLocation
	if location == nil {
		location = gps
	}
	if location != nil {
		p.SetLocation(*location)
		s.resolvePlace(ctx, p, *location)
	}

	if err := s.photoRepo.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to save photo: %w", err)
	}

	s.logger.Info("photo ingested",
		zap.String("photo_id", p.ID.String()),
		zap.String("owner_id", p.OwnerID.String()),
		zap.String("source", p.Source.String()),
		zap.Bool("has_location", p.HasLocation()),
	)
	return &IngestResult{Photo: p}, nil
}

// extractExif degrades to empty metadata rather than failing ingestion
func (s *Service) extractExif(data []byte) (photo.ExifData, *valueobject.GeoPoint) {
	exifData, gps, err := s.exif.Extract(data)
	if err != nil {
		s.logger.Debug("exif extraction failed", zap.Error(err))
		return photo.ExifData{}, nil
	}
	return exifData, gps
}

// resolvePlace reverse-geocodes and attaches a place. Failures leave the
// photo with coordinates but no place; persistence continues regardless.
func (s *Service) resolvePlace(ctx context.Context, p *photo.Photo, location valueobject.GeoPoint) {
	resolved, err := s.geo.ReverseGeocode(ctx, location)
	if err != nil {
		s.logger.Warn("reverse geocode failed",
			zap.String("location", location.String()),
			zap.Error(err),
		)
		return
	}

	pl, err := s.registry.Resolve(ctx, location, resolved)
	if err != nil {
		s.logger.Warn("place resolution failed",
			zap.String("location", location.String()),
			zap.Error(err),
		)
		return
	}

	p.AssignPlace(pl.ID, pl.Name, resolved.City, resolved.State, resolved.Country)
}

func folderFor(source photo.SourceKind) string {
	if source == photo.SourceGooglePhotos {
		return "photos/imported"
	}
	return "photos/uploads"
}
