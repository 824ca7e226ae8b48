package place

import (
	"context"

	"github.com/google/uuid"
	"github.com/wanderlens/backend/internal/domain/shared"
	"github.com/wanderlens/backend/internal/domain/shared/valueobject"
)

// Repository is the persistence port for places
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Place, error)
	// FindByNameNear returns the first place whose name matches and whose
	// location lies within maxMeters of the point, or shared.ErrNotFound.
	FindByNameNear(ctx context.Context, name string, point valueobject.GeoPoint, maxMeters float64) (*Place, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*Place, int64, error)
	Save(ctx context.Context, p *Place) error
	// SaveWithLock saves using the aggregate version for optimistic locking
	SaveWithLock(ctx context.Context, p *Place) error
}
