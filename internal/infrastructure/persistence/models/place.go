package models

import (
	"github.com/wanderlens/backend/internal/domain/place"
	"github.com/wanderlens/backend/internal/domain/shared"
	"github.com/wanderlens/backend/internal/domain/shared/valueobject"
)

// PlaceModel is the persistence model for the Place aggregate.
type PlaceModel struct {
	AggregateModel
	Name       string  `gorm:"type:varchar(200);not null;index"`
	Latitude   float64 `gorm:"not null"`
	Longitude  float64 `gorm:"not null"`
	City       string  `gorm:"type:varchar(100)"`
	State      string  `gorm:"type:varchar(100)"`
	Country    string  `gorm:"type:varchar(100)"`
	PostalCode string  `gorm:"type:varchar(20)"`
	PhotoCount int64   `gorm:"not null;default:0"`
	TotalViews int64   `gorm:"not null;default:0"`
	CoverPhoto string  `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (PlaceModel) TableName() string {
	return "places"
}

// ToDomain converts the persistence model to a domain Place aggregate.
func (m *PlaceModel) ToDomain() *place.Place {
	location, _ := valueobject.NewGeoPoint(m.Latitude, m.Longitude)
	return &place.Place{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version: m.Version,
		},
		Name:       m.Name,
		Location:   location,
		City:       m.City,
		State:      m.State,
		Country:    m.Country,
		PostalCode: m.PostalCode,
		PhotoCount: m.PhotoCount,
		TotalViews: m.TotalViews,
		CoverPhoto: m.CoverPhoto,
	}
}

// FromDomain populates the persistence model from a domain Place aggregate.
func (m *PlaceModel) FromDomain(p *place.Place) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.Name = p.Name
	m.Latitude = p.Location.Latitude()
	m.Longitude = p.Location.Longitude()
	m.City = p.City
	m.State = p.State
	m.Country = p.Country
	m.PostalCode = p.PostalCode
	m.PhotoCount = p.PhotoCount
	m.TotalViews = p.TotalViews
	m.CoverPhoto = p.CoverPhoto
}

// PlaceModelFromDomain creates a new persistence model from a domain Place aggregate.
func PlaceModelFromDomain(p *place.Place) *PlaceModel {
	m := &PlaceModel{}
	m.FromDomain(p)
	return m
}
