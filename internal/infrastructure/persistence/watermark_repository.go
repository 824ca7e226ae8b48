package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/wanderlens/backend/internal/domain/media"
	"github.com/wanderlens/backend/internal/domain/shared"
	"github.com/wanderlens/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormWatermarkRepository implements media.Repository using GORM
type GormWatermarkRepository struct {
	db *gorm.DB
}

// NewGormWatermarkRepository creates a new GormWatermarkRepository
func NewGormWatermarkRepository(db *gorm.DB) *GormWatermarkRepository {
	return &GormWatermarkRepository{db: db}
}

// FindByID finds a watermark setting by its ID
func (r *GormWatermarkRepository) FindByID(ctx context.Context, id uuid.UUID) (*media.WatermarkSetting, error) {
	var model models.WatermarkSettingModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindActive returns the currently active watermark setting
func (r *GormWatermarkRepository) FindActive(ctx context.Context) (*media.WatermarkSetting, error) {
	var model models.WatermarkSettingModel
	if err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("updated_at DESC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates a watermark setting
func (r *GormWatermarkRepository) Save(ctx context.Context, setting *media.WatermarkSetting) error {
	model := models.WatermarkSettingModelFromDomain(setting)
	return r.db.WithContext(ctx).Save(model).Error
}

// DeactivateAll clears the active flag on every setting
func (r *GormWatermarkRepository) DeactivateAll(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Model(&models.WatermarkSettingModel{}).
		Where("active = ?", true).
		Update("active", false).Error
}
