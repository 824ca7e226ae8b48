package photo

import (
	"context"

	"github.com/google/uuid"
	"github.com/wanderlens/backend/internal/domain/shared/valueobject"
)

// StatusCounts aggregates photo counts per approval status
type StatusCounts struct {
	Total    int64 `json:"total"`
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
}

// Filter narrows photo list queries
type Filter struct {
	OwnerID *uuid.UUID
	PlaceID *uuid.UUID
	Status  *ApprovalStatus
	Source  *SourceKind
	// OrderBy and OrderDir are validated against a column whitelist in
	// the persistence layer; empty values mean newest first.
	OrderBy  string
	OrderDir string
	Page     int
	PageSize int
}

// Repository is the persistence port for the Photo aggregate
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Photo, error)
	FindByAssetID(ctx context.Context, assetID string) (*Photo, error)
	// FindByOwnerAndDedupKey recognizes re-imports of the same source item;
	// returns shared.ErrNotFound when no photo carries the key.
	FindByOwnerAndDedupKey(ctx context.Context, ownerID uuid.UUID, dedupKey string) (*Photo, error)
	FindAll(ctx context.Context, filter Filter) ([]*Photo, int64, error)
	// FindNearby returns approved photos within the given radius of a point,
	// nearest first, capped at limit.
	FindNearby(ctx context.Context, center valueobject.GeoPoint, radiusMeters float64, limit int) ([]*Photo, error)
	CountByStatus(ctx context.Context) (StatusCounts, error)
	CountByOwnerAndSource(ctx context.Context, ownerID uuid.UUID, source SourceKind) (StatusCounts, error)
	Save(ctx context.Context, p *Photo) error
	// SaveWithLock saves using the aggregate version for optimistic locking;
	// returns shared.ErrConcurrencyConflict when the row moved underneath.
	SaveWithLock(ctx context.Context, p *Photo) error
	Delete(ctx context.Context, id uuid.UUID) error
}
