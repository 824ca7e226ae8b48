package photos

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/wanderlens/backend/internal/domain/media"
	"github.com/wanderlens/backend/internal/domain/photo"
	"github.com/wanderlens/backend/internal/domain/shared"
	"github.com/wanderlens/backend/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// VariantResolver derives delivery URLs for stored assets
type VariantResolver interface {
	VariantURL(assetID string, spec media.VariantSpec, watermark *media.WatermarkSetting) string
}

// PhotoView is a photo with its derived display URLs attached
type PhotoView struct {
	*photo.Photo
	Variants map[string]string `json:"variants"`
}

// QueryService serves photo reads: detail views, owner listings, and
// proximity queries. Display variants are derived with the active watermark.
type QueryService struct {
	photoRepo photo.Repository
	wmRepo    media.Repository
	resolver  VariantResolver
	logger    *zap.Logger
}

// NewQueryService creates a new QueryService
func NewQueryService(photoRepo photo.Repository, wmRepo media.Repository, resolver VariantResolver, logger *zap.Logger) *QueryService {
	return &QueryService{
		photoRepo: photoRepo,
		wmRepo:    wmRepo,
		resolver:  resolver,
		logger:    logger,
	}
}

// GetByID returns a photo with its variant URLs, counting the view
func (s *QueryService) GetByID(ctx context.Context, id uuid.UUID) (*PhotoView, error) {
	p, err := s.photoRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, shared.NewDomainError("PHOTO_NOT_FOUND", "Photo not found")
	}

	p.RecordView()
	if err := s.photoRepo.Save(ctx, p); err != nil {
		// A lost view count never blocks the read
		s.logger.Debug("view count update failed", zap.String("photo_id", id.String()), zap.Error(err))
	}

	return s.withVariants(ctx, p), nil
}

// ListMine returns the owner's photos with variant URLs
func (s *QueryService) ListMine(ctx context.Context, ownerID uuid.UUID, status *photo.ApprovalStatus, page, pageSize int) ([]*PhotoView, int64, error) {
	if ownerID == uuid.Nil {
		return nil, 0, shared.NewDomainError("INVALID_OWNER", "Owner ID cannot be empty")
	}
	list, total, err := s.photoRepo.FindAll(ctx, photo.Filter{
		OwnerID:  &ownerID,
		Status:   status,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return nil, 0, err
	}
	return s.viewsOf(ctx, list), total, nil
}

// Nearby returns approved photos within radiusMeters of a point
func (s *QueryService) Nearby(ctx context.Context, lat, lng, radiusMeters float64, limit int) ([]*PhotoView, error) {
	center, err := valueobject.NewGeoPoint(lat, lng)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", err.Error())
	}
	if radiusMeters <= 0 {
		return nil, shared.NewDomainError("INVALID_RADIUS", "Radius must be positive")
	}
	if limit <= 0 {
		limit = 50
	}

	list, err := s.photoRepo.FindNearby(ctx, center, radiusMeters, limit)
	if err != nil {
		return nil, fmt.Errorf("nearby query failed: %w", err)
	}
	return s.viewsOf(ctx, list), nil
}

func (s *QueryService) viewsOf(ctx context.Context, list []*photo.Photo) []*PhotoView {
	watermark := s.activeWatermark(ctx)
	views := make([]*PhotoView, 0, len(list))
	for _, p := range list {
		views = append(views, &PhotoView{Photo: p, Variants: s.variantURLs(p, watermark)})
	}
	return views
}

func (s *QueryService) withVariants(ctx context.Context, p *photo.Photo) *PhotoView {
	return &PhotoView{Photo: p, Variants: s.variantURLs(p, s.activeWatermark(ctx))}
}

func (s *QueryService) variantURLs(p *photo.Photo, watermark *media.WatermarkSetting) map[string]string {
	urls := make(map[string]string, 3)
	for _, spec := range media.DisplayVariants() {
		wm := watermark
		if !spec.Watermarked() {
			wm = nil
		}
		urls[spec.Name] = s.resolver.VariantURL(p.AssetID, spec, wm)
	}
	return urls
}

func (s *QueryService) activeWatermark(ctx context.Context) *media.WatermarkSetting {
	setting, err := s.wmRepo.FindActive(ctx)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("watermark lookup failed", zap.Error(err))
		}
		return nil
	}
	return setting
}
