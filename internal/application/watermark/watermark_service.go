package watermark

import (
	"context"
	"errors"
	"fmt"

	"github.com/wanderlens/backend/internal/domain/media"
	"github.com/wanderlens/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Service manages the singleton-active watermark setting applied to
// derived display variants
type Service struct {
	repo   media.Repository
	logger *zap.Logger
}

// NewService creates a new watermark Service
func NewService(repo media.Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// GetActive returns the active watermark setting, or the built-in defaults
// when none has been configured yet
func (s *Service) GetActive(ctx context.Context) (*media.WatermarkSetting, error) {
	setting, err := s.repo.FindActive(ctx)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return media.NewWatermarkSetting("", "", 0, "", media.DefaultWatermarkPosition, 0)
		}
		return nil, fmt.Errorf("failed to load watermark setting: %w", err)
	}
	return setting, nil
}

// UpdateParams carries a new watermark configuration. Zero values fall back
// to the built-in defaults.
type UpdateParams struct {
	Text       string
	FontFamily string
	FontSize   int
	Color      string
	Position   media.Position
	Opacity    int
}

// Update validates and activates a new setting, deactivating every
// previous one so exactly one stays active
func (s *Service) Update(ctx context.Context, params UpdateParams) (*media.WatermarkSetting, error) {
	pos := params.Position
	if pos.X == 0 && pos.Y == 0 {
		pos = media.DefaultWatermarkPosition
	}
	setting, err := media.NewWatermarkSetting(params.Text, params.FontFamily, params.FontSize, params.Color, pos, params.Opacity)
	if err != nil {
		return nil, err
	}

	if err := s.repo.DeactivateAll(ctx); err != nil {
		return nil, fmt.Errorf("failed to deactivate previous settings: %w", err)
	}
	if err := s.repo.Save(ctx, setting); err != nil {
		return nil, fmt.Errorf("failed to save watermark setting: %w", err)
	}

	s.logger.Info("watermark setting updated",
		zap.String("setting_id", setting.ID.String()),
		zap.String("gravity", setting.Gravity().String()),
	)
	return setting, nil
}
