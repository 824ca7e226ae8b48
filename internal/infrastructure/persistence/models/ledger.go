package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/wanderlens/backend/internal/domain/ledger"
	"github.com/wanderlens/backend/internal/domain/shared"
)

// TransactionModel is the persistence model for wallet ledger transactions.
// Rows are append-only; there is no update path.
type TransactionModel struct {
	BaseModel
	UserID      uuid.UUID                `gorm:"type:uuid;not null;index"`
	Amount      decimal.Decimal          `gorm:"type:decimal(18,4);not null"`
	Type        ledger.TransactionType   `gorm:"type:varchar(20);not null;index"`
	Status      ledger.TransactionStatus `gorm:"type:varchar(20);not null;default:'completed';index"`
	PhotoID     *uuid.UUID               `gorm:"type:uuid;index"`
	Description string                   `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (TransactionModel) TableName() string {
	return "wallet_transactions"
}

// ToDomain converts the persistence model to a domain Transaction.
func (m *TransactionModel) ToDomain() *ledger.Transaction {
	return &ledger.Transaction{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		UserID:      m.UserID,
		Amount:      m.Amount,
		Type:        m.Type,
		Status:      m.Status,
		PhotoID:     m.PhotoID,
		Description: m.Description,
	}
}

// FromDomain populates the persistence model from a domain Transaction.
func (m *TransactionModel) FromDomain(tx *ledger.Transaction) {
	m.FromDomainBaseEntity(tx.BaseEntity)
	m.UserID = tx.UserID
	m.Amount = tx.Amount
	m.Type = tx.Type
	m.Status = tx.Status
	m.PhotoID = tx.PhotoID
	m.Description = tx.Description
}

// TransactionModelFromDomain creates a new persistence model from a domain Transaction.
func TransactionModelFromDomain(tx *ledger.Transaction) *TransactionModel {
	m := &TransactionModel{}
	m.FromDomain(tx)
	return m
}
