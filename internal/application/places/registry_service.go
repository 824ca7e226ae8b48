package places

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/wanderlens/backend/internal/domain/place"
	"github.com/wanderlens/backend/internal/domain/shared"
	"github.com/wanderlens/backend/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// ResolvedLocation is the outcome of a reverse-geocode lookup, carried into
// place resolution and denormalized onto photos
type ResolvedLocation struct {
	PlaceName  string
	City       string
	State      string
	Country    string
	PostalCode string
}

// RegistryService resolves coordinates to a canonical Place, creating one
// when no existing place matches by name within the proximity threshold.
type RegistryService struct {
	placeRepo place.Repository
	logger    *zap.Logger
}

// NewRegistryService creates a new RegistryService
func NewRegistryService(placeRepo place.Repository, logger *zap.Logger) *RegistryService {
	return &RegistryService{
		placeRepo: placeRepo,
		logger:    logger,
	}
}

// Resolve finds the place matching the resolved name within the proximity
// threshold of the coordinates, or creates a new one with photo count zero.
// Name match alone is not sufficient: two same-named places in different
// cities stay distinct.
//
// This is a read-then-create pattern without a storage-level uniqueness
// constraint; concurrent resolution of the same new place can create
// duplicates.
func (s *RegistryService) Resolve(ctx context.Context, location valueobject.GeoPoint, resolved ResolvedLocation) (*place.Place, error) {
	name := resolved.PlaceName
	if name == "" {
		name = place.UnknownPlaceName
	}

	existing, err := s.placeRepo.FindByNameNear(ctx, name, location, place.ProximityThresholdMeters)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, fmt.Errorf("failed to search places: %w", err)
	}

	created, err := place.NewPlace(name, location, resolved.City, resolved.State, resolved.Country, resolved.PostalCode)
	if err != nil {
		return nil, err
	}
	if err := s.placeRepo.Save(ctx, created); err != nil {
		return nil, fmt.Errorf("failed to create place: %w", err)
	}

	s.logger.Info("created place",
		zap.String("place_id", created.ID.String()),
		zap.String("name", created.Name),
		zap.String("location", location.String()),
	)
	return created, nil
}

// ListAll returns places ordered per the supplied filter
func (s *RegistryService) ListAll(ctx context.Context, filter shared.Filter) ([]*place.Place, int64, error) {
	return s.placeRepo.FindAll(ctx, filter)
}

// GetByID returns a single place
func (s *RegistryService) GetByID(ctx context.Context, id uuid.UUID) (*place.Place, error) {
	p, err := s.placeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, shared.NewDomainError("PLACE_NOT_FOUND", "Place not found")
	}
	return p, nil
}
