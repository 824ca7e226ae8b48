package media

import (
	"context"

	"github.com/google/uuid"
)

// Repository persists watermark settings
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*WatermarkSetting, error)
	// FindActive returns the currently active setting, or shared.ErrNotFound
	// when none has been configured yet
	FindActive(ctx context.Context) (*WatermarkSetting, error)
	Save(ctx context.Context, setting *WatermarkSetting) error
	// DeactivateAll clears the active flag on every setting. Callers save the
	// new active setting afterwards.
	DeactivateAll(ctx context.Context) error
}
