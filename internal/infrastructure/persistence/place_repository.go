package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/wanderlens/backend/internal/domain/place"
	"github.com/wanderlens/backend/internal/domain/shared"
	"github.com/wanderlens/backend/internal/domain/shared/valueobject"
	"github.com/wanderlens/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormPlaceRepository implements place.Repository using GORM
type GormPlaceRepository struct {
	db *gorm.DB
}

// NewGormPlaceRepository creates a new GormPlaceRepository
func NewGormPlaceRepository(db *gorm.DB) *GormPlaceRepository {
	return &GormPlaceRepository{db: db}
}

// FindByID finds a place by its ID
func (r *GormPlaceRepository) FindByID(ctx context.Context, id uuid.UUID) (*place.Place, error) {
	var model models.PlaceModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByNameNear finds a place matching the name whose location lies within
// maxMeters of the point. Name equality narrows the candidate set in SQL;
// the proximity check runs on the domain value object.
func (r *GormPlaceRepository) FindByNameNear(ctx context.Context, name string, point valueobject.GeoPoint, maxMeters float64) (*place.Place, error) {
	var placeModels []models.PlaceModel
	if err := r.db.WithContext(ctx).
		Where("name = ?", strings.TrimSpace(name)).
		Find(&placeModels).Error; err != nil {
		return nil, err
	}

	for i := range placeModels {
		candidate := placeModels[i].ToDomain()
		if candidate.Location.WithinMeters(point, maxMeters) {
			return candidate, nil
		}
	}
	return nil, shared.ErrNotFound
}

// FindAll finds all places matching the filter
func (r *GormPlaceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*place.Place, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.PlaceModel{})

	if search, ok := filter.Filters["search"].(string); ok && search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}
	if country, ok := filter.Filters["country"].(string); ok && country != "" {
		query = query.Where("country = ?", country)
	}

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

	orderBy := ValidateSortField(filter.OrderBy, PlaceSortFields, "photo_count")
	orderDir := ValidateSortOrder(filter.OrderDir)

	var placeModels []models.PlaceModel
	if err := query.
		Order(orderBy + " " + orderDir).
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&placeModels).Error; err != nil {
		return nil, 0, err
	}

	places := make([]*place.Place, len(placeModels))
	for i := range placeModels {
		places[i] = placeModels[i].ToDomain()
	}
	return places, total, nil
}

// Save creates or updates a place
func (r *GormPlaceRepository) Save(ctx context.Context, p *place.Place) error {
	model := models.PlaceModelFromDomain(p)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves a place with optimistic locking on the aggregate version
func (r *GormPlaceRepository) SaveWithLock(ctx context.Context, p *place.Place) error {
	model := models.PlaceModelFromDomain(p)
	model.Version = p.Version + 1

	result := r.db.WithContext(ctx).
		Model(&models.PlaceModel{}).
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
