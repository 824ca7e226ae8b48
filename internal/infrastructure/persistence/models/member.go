package models

import (
	"github.com/shopspring/decimal"
	"github.com/wanderlens/backend/internal/domain/member"
	"github.com/wanderlens/backend/internal/domain/shared"
)

// UserModel is the persistence model for the User aggregate.
type UserModel struct {
	AggregateModel
	Name          string          `gorm:"type:varchar(200);not null"`
	Email         string          `gorm:"type:varchar(200);not null;uniqueIndex"`
	Phone         string          `gorm:"type:varchar(50)"`
	ProfilePhoto  string          `gorm:"type:text"`
	PostalCode    string          `gorm:"type:varchar(20)"`
	FullAddress   string          `gorm:"type:text"`
	City          string          `gorm:"type:varchar(100)"`
	State         string          `gorm:"type:varchar(100)"`
	Country       string          `gorm:"type:varchar(100)"`
	WalletBalance decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Role          member.Role     `gorm:"type:varchar(20);not null;default:'user'"`
	Active        bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User aggregate.
func (m *UserModel) ToDomain() *member.User {
	return &member.User{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version: m.Version,
		},
		Name:         m.Name,
		Email:        m.Email,
		Phone:        m.Phone,
		ProfilePhoto: m.ProfilePhoto,
		PostalCode:   m.PostalCode,
		Address: member.Address{
			FullAddress: m.FullAddress,
			City:        m.City,
			State:       m.State,
			Country:     m.Country,
		},
		WalletBalance: m.WalletBalance,
		Role:          m.Role,
		Active:        m.Active,
	}
}

// FromDomain populates the persistence model from a domain User aggregate.
func (m *UserModel) FromDomain(u *member.User) {
	m.FromDomainAggregateRoot(u.BaseAggregateRoot)
	m.Name = u.Name
	m.Email = u.Email
	m.Phone = u.Phone
	m.ProfilePhoto = u.ProfilePhoto
	m.PostalCode = u.PostalCode
	m.FullAddress = u.Address.FullAddress
	m.City = u.Address.City
	m.State = u.Address.State
	m.Country = u.Address.Country
	m.WalletBalance = u.WalletBalance
	m.Role = u.Role
	m.Active = u.Active
}

// UserModelFromDomain creates a new persistence model from a domain User aggregate.
func UserModelFromDomain(u *member.User) *UserModel {
	m := &UserModel{}
	m.FromDomain(u)
	return m
}
