package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/wanderlens/backend/internal/domain/photo"
	"github.com/wanderlens/backend/internal/domain/shared"
	"github.com/wanderlens/backend/internal/domain/shared/valueobject"
)

// PhotoModel is the persistence model for the Photo aggregate.
type PhotoModel struct {
	AggregateModel
	OwnerID        uuid.UUID            `gorm:"type:uuid;not null;uniqueIndex:idx_photos_owner_dedup,priority:1"`
	AssetID        string               `gorm:"type:varchar(255);not null;uniqueIndex"`
	OriginalURL    string               `gorm:"type:text"`
	FileName       string               `gorm:"type:varchar(255)"`
	FileSize       int64                `gorm:"not null;default:0"`
	MimeType       string               `gorm:"type:varchar(100)"`
	Width          int                  `gorm:"not null;default:0"`
	Height         int                  `gorm:"not null;default:0"`
	Source         photo.SourceKind     `gorm:"type:varchar(20);not null;default:'direct_upload';index"`
	SourceDedupKey *string              `gorm:"type:varchar(64);uniqueIndex:idx_photos_owner_dedup,priority:2"`
	Latitude       *float64             `gorm:"index:idx_photos_lat"`
	Longitude      *float64             `gorm:"index:idx_photos_lng"`
	PlaceID        *uuid.UUID           `gorm:"type:uuid;index"`
	PlaceName      string               `gorm:"type:varchar(200)"`
	City           string               `gorm:"type:varchar(100)"`
	State          string               `gorm:"type:varchar(100)"`
	Country        string               `gorm:"type:varchar(100)"`
	Exif           string               `gorm:"type:jsonb"`
	Status         photo.ApprovalStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	RejectionReason string              `gorm:"type:text"`
	ApprovedAt     *time.Time
	ApprovedBy     *uuid.UUID `gorm:"type:uuid"`
	RewardGiven    bool       `gorm:"not null;default:false"`
	Views          int64      `gorm:"not null;default:0"`
	Likes          int64      `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (PhotoModel) TableName() string {
	return "photos"
}

// ToDomain converts the persistence model to a domain Photo aggregate.
func (m *PhotoModel) ToDomain() *photo.Photo {
	p := &photo.Photo{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version: m.Version,
		},
		OwnerID:     m.OwnerID,
		AssetID:     m.AssetID,
		OriginalURL: m.OriginalURL,
		File: photo.FileInfo{
			FileName: m.FileName,
			FileSize: m.FileSize,
			MimeType: m.MimeType,
			Width:    m.Width,
			Height:   m.Height,
		},
		Source:          m.Source,
		SourceDedupKey:  m.SourceDedupKey,
		PlaceID:         m.PlaceID,
		PlaceName:       m.PlaceName,
		City:            m.City,
		State:           m.State,
		Country:         m.Country,
		Status:          m.Status,
		RejectionReason: m.RejectionReason,
		ApprovedAt:      m.ApprovedAt,
		ApprovedBy:      m.ApprovedBy,
		RewardGiven:     m.RewardGiven,
		Views:           m.Views,
		Likes:           m.Likes,
	}

	if m.Latitude != nil && m.Longitude != nil {
		if point, err := valueobject.NewGeoPoint(*m.Latitude, *m.Longitude); err == nil {
			p.Location = &point
		}
	}

	if m.Exif != "" {
		// Exif is advisory metadata; a corrupt blob degrades to empty
		_ = json.Unmarshal([]byte(m.Exif), &p.Exif)
	}

	return p
}

// FromDomain populates the persistence model from a domain Photo aggregate.
func (m *PhotoModel) FromDomain(p *photo.Photo) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.OwnerID = p.OwnerID
	m.AssetID = p.AssetID
	m.OriginalURL = p.OriginalURL
	m.FileName = p.File.FileName
	m.FileSize = p.File.FileSize
	m.MimeType = p.File.MimeType
	m.Width = p.File.Width
	m.Height = p.File.Height
	m.Source = p.Source
	m.SourceDedupKey = p.SourceDedupKey
	if p.Location != nil {
		lat := p.Location.Latitude()
		lng := p.Location.Longitude()
		m.Latitude = &lat
		m.Longitude = &lng
	}
	m.PlaceID = p.PlaceID
	m.PlaceName = p.PlaceName
	m.City = p.City
	m.State = p.State
	m.Country = p.Country
	if !p.Exif.IsEmpty() {
		if b, err := json.Marshal(p.Exif); err == nil {
			m.Exif = string(b)
		}
	}
	m.Status = p.Status
	m.RejectionReason = p.RejectionReason
	m.ApprovedAt = p.ApprovedAt
	m.ApprovedBy = p.ApprovedBy
	m.RewardGiven = p.RewardGiven
	m.Views = p.Views
	m.Likes = p.Likes
}

// PhotoModelFromDomain creates a new persistence model from a domain Photo aggregate.
func PhotoModelFromDomain(p *photo.Photo) *PhotoModel {
	m := &PhotoModel{}
	m.FromDomain(p)
	return m
}
