package models

import (
	"github.com/wanderlens/backend/internal/domain/media"
	"github.com/wanderlens/backend/internal/domain/shared"
)

// WatermarkSettingModel is the persistence model for watermark settings.
type WatermarkSettingModel struct {
	BaseModel
	Text       string `gorm:"type:varchar(200);not null"`
	FontFamily string `gorm:"type:varchar(100);not null"`
	FontSize   int    `gorm:"not null"`
	Color      string `gorm:"type:varchar(6);not null"`
	PositionX  int    `gorm:"not null"`
	PositionY  int    `gorm:"not null"`
	Opacity    int    `gorm:"not null"`
	Active     bool   `gorm:"not null;default:false;index"`
}

// TableName returns the table name for GORM
func (WatermarkSettingModel) TableName() string {
	return "watermark_settings"
}

// ToDomain converts the persistence model to a domain WatermarkSetting.
func (m *WatermarkSettingModel) ToDomain() *media.WatermarkSetting {
	return &media.WatermarkSetting{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		Text:       m.Text,
		FontFamily: m.FontFamily,
		FontSize:   m.FontSize,
		Color:      m.Color,
		Position:   media.Position{X: m.PositionX, Y: m.PositionY},
		Opacity:    m.Opacity,
		Active:     m.Active,
	}
}

// FromDomain populates the persistence model from a domain WatermarkSetting.
func (m *WatermarkSettingModel) FromDomain(s *media.WatermarkSetting) {
	m.FromDomainBaseEntity(s.BaseEntity)
	m.Text = s.Text
	m.FontFamily = s.FontFamily
	m.FontSize = s.FontSize
	m.Color = s.Color
	m.PositionX = s.Position.X
	m.PositionY = s.Position.Y
	m.Opacity = s.Opacity
	m.Active = s.Active
}

// WatermarkSettingModelFromDomain creates a new persistence model from a domain WatermarkSetting.
func WatermarkSettingModelFromDomain(s *media.WatermarkSetting) *WatermarkSettingModel {
	m := &WatermarkSettingModel{}
	m.FromDomain(s)
	return m
}
