package persistence

import (
	"context"
	"errors"
	"math"
	"sort"

	"github.com/google/uuid"
	"github.com/wanderlens/backend/internal/domain/photo"
	"github.com/wanderlens/backend/internal/domain/shared"
	"github.com/wanderlens/backend/internal/domain/shared/valueobject"
	"github.com/wanderlens/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// metersPerDegreeLat is the approximate north-south length of one degree.
const metersPerDegreeLat = 111320.0

// GormPhotoRepository implements photo.Repository using GORM
type GormPhotoRepository struct {
	db *gorm.DB
}

// NewGormPhotoRepository creates a new GormPhotoRepository
func NewGormPhotoRepository(db *gorm.DB) *GormPhotoRepository {
	return &GormPhotoRepository{db: db}
}

// FindByID finds a photo by its ID
func (r *GormPhotoRepository) FindByID(ctx context.Context, id uuid.UUID) (*photo.Photo, error) {
	var model models.PhotoModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByAssetID finds a photo by its media store asset ID
func (r *GormPhotoRepository) FindByAssetID(ctx context.Context, assetID string) (*photo.Photo, error) {
	var model models.PhotoModel
	if err := r.db.WithContext(ctx).First(&model, "asset_id = ?", assetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByOwnerAndDedupKey finds a photo carrying the given source dedup key
func (r *GormPhotoRepository) FindByOwnerAndDedupKey(ctx context.Context, ownerID uuid.UUID, dedupKey string) (*photo.Photo, error) {
	var model models.PhotoModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND source_dedup_key = ?", ownerID, dedupKey).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds photos matching the filter, newest first unless the
// filter orders otherwise. The moderation queue asks for oldest first.
func (r *GormPhotoRepository) FindAll(ctx context.Context, filter photo.Filter) ([]*photo.Photo, int64, error) {
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.PhotoModel{}), filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	orderBy := ValidateSortField(filter.OrderBy, PhotoSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)

	var photoModels []models.PhotoModel
	if err := query.
		Order(orderBy + " " + orderDir).
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&photoModels).Error; err != nil {
		return nil, 0, err
	}

	photos := make([]*photo.Photo, len(photoModels))
	for i := range photoModels {
		photos[i] = photoModels[i].ToDomain()
	}
	return photos, total, nil
}

// FindNearby returns approved photos within radiusMeters of the center,
// nearest first. Candidates are narrowed with a bounding box in SQL and
// ranked by haversine distance in memory.
func (r *GormPhotoRepository) FindNearby(ctx context.Context, center valueobject.GeoPoint, radiusMeters float64, limit int) ([]*photo.Photo, error) {
	latDelta := radiusMeters / metersPerDegreeLat
	lngScale := math.Cos(center.Latitude() * math.Pi / 180)
	lngDelta := 180.0
	if lngScale > 1e-6 {
		lngDelta = radiusMeters / (metersPerDegreeLat * lngScale)
	}

	var photoModels []models.PhotoModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", photo.StatusApproved).
		Where("latitude BETWEEN ? AND ?", center.Latitude()-latDelta, center.Latitude()+latDelta).
		Where("longitude BETWEEN ? AND ?", center.Longitude()-lngDelta, center.Longitude()+lngDelta).
		Find(&photoModels).Error; err != nil {
		return nil, err
	}

	type candidate struct {
		photo    *photo.Photo
		distance float64
	}
	candidates := make([]candidate, 0, len(photoModels))
	for i := range photoModels {
		p := photoModels[i].ToDomain()
		if p.Location == nil {
			continue
		}
		d := center.DistanceMeters(*p.Location)
		if d <= radiusMeters {
			candidates = append(candidates, candidate{photo: p, distance: d})
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].distance < candidates[j].distance
	})

	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}

	photos := make([]*photo.Photo, len(candidates))
	for i, c := range candidates {
		photos[i] = c.photo
	}
	return photos, nil
}

// CountByStatus counts photos grouped by approval status
func (r *GormPhotoRepository) CountByStatus(ctx context.Context) (photo.StatusCounts, error) {
	return r.countGrouped(r.db.WithContext(ctx).Model(&models.PhotoModel{}))
}

// CountByOwnerAndSource counts one owner's photos from a source, grouped by status
func (r *GormPhotoRepository) CountByOwnerAndSource(ctx context.Context, ownerID uuid.UUID, source photo.SourceKind) (photo.StatusCounts, error) {
	return r.countGrouped(r.db.WithContext(ctx).
		Model(&models.PhotoModel{}).
		Where("owner_id = ? AND source = ?", ownerID, source))
}

func (r *GormPhotoRepository) countGrouped(query *gorm.DB) (photo.StatusCounts, error) {
	var rows []struct {
		Status photo.ApprovalStatus
		Total  int64
	}
	if err := query.
		Select("status, COUNT(*) as total").
		Group("status").
		Scan(&rows).Error; err != nil {
		return photo.StatusCounts{}, err
	}

	var counts photo.StatusCounts
	for _, row := range rows {
		counts.Total += row.Total
		switch row.Status {
		case photo.StatusPending:
			counts.Pending = row.Total
		case photo.StatusApproved:
			counts.Approved = row.Total
		case photo.StatusRejected:
			counts.Rejected = row.Total
		}
	}
	return counts, nil
}

// Save creates or updates a photo
func (r *GormPhotoRepository) Save(ctx context.Context, p *photo.Photo) error {
	model := models.PhotoModelFromDomain(p)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves a photo with optimistic locking. The row is matched on
// the aggregate's current version and written with version+1; zero affected
// rows means a concurrent writer got there first.
func (r *GormPhotoRepository) SaveWithLock(ctx context.Context, p *photo.Photo) error {
	model := models.PhotoModelFromDomain(p)
	model.Version = p.Version + 1

	result := r.db.WithContext(ctx).
		Model(&models.PhotoModel{}).
		Where("id = ? AND version = ?", p.ID, p.Version).
		Select("*").
		Omit("id", "created_at").
		Updates(model)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	p.Version++
	return nil
}

// Delete removes a photo record
func (r *GormPhotoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.PhotoModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// applyFilter applies photo filter options to the query
func (r *GormPhotoRepository) applyFilter(query *gorm.DB, filter photo.Filter) *gorm.DB {
	if filter.OwnerID != nil {
		query = query.Where("owner_id = ?", *filter.OwnerID)
	}
	if filter.PlaceID != nil {
		query = query.Where("place_id = ?", *filter.PlaceID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Source != nil {
		query = query.Where("source = ?", *filter.Source)
	}
	return query
}
