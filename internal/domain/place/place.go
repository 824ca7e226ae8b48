package place

import (
	"strings"

	"github.com/wanderlens/backend/internal/domain/shared"
	"github.com/wanderlens/backend/internal/domain/shared/valueobject"
)

// ProximityThresholdMeters is the maximum distance within which two
// coordinate points are considered the same place.
const ProximityThresholdMeters = 1000.0

// UnknownPlaceName is used when reverse geocoding yields no usable name
const UnknownPlaceName = "Unknown Location"

// Place is a canonical named location that photos cluster around.
// Places are created on first reference and never deleted.
type Place struct {
	shared.BaseAggregateRoot
	Name       string               `json:"name"`
	Location   valueobject.GeoPoint `json:"-"`
	City       string               `json:"city,omitempty"`
	State      string               `json:"state,omitempty"`
	Country    string               `json:"country,omitempty"`
	PostalCode string               `json:"postal_code,omitempty"`
	PhotoCount int64                `json:"photo_count"`
	TotalViews int64                `json:"total_views"`
	CoverPhoto string               `json:"cover_photo,omitempty"`
}

// NewPlace creates a place with a zero photo count. The count is only
// incremented when photos at the place are approved.
func NewPlace(name string, location valueobject.GeoPoint, city, state, country, postalCode string) (*Place, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_PLACE_NAME", "Place name cannot be empty")
	}

	return &Place{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Location:          location,
		City:              city,
		State:             state,
		Country:           country,
		PostalCode:        postalCode,
	}, nil
}

// Matches reports whether this place covers the given name and point:
// the names must be equal and the point must lie within the proximity
// threshold. Name match alone is not sufficient, to avoid merging
// same-named places in different cities.
func (p *Place) Matches(name string, point valueobject.GeoPoint) bool {
	return p.Name == strings.TrimSpace(name) &&
		p.Location.WithinMeters(point, ProximityThresholdMeters)
}

// IncrementPhotoCount records one more approved photo at this place
func (p *Place) IncrementPhotoCount() {
	p.PhotoCount++
}

// RecordView increments the aggregate view counter
func (p *Place) RecordView() {
	p.TotalViews++
}
