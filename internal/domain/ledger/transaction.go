package ledger

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/wanderlens/backend/internal/domain/shared"
)

// TransactionType represents the type of wallet transaction
type TransactionType string

const (
	// TypeReward credits the wallet when a contributed photo is approved
	TypeReward TransactionType = "reward"
	// TypeRefund reverses a reward when a rewarded photo is deleted
	TypeRefund TransactionType = "refund"
	// TypeRedemption debits the wallet when credit is spent
	TypeRedemption TransactionType = "redemption"
)

// String returns the string representation of TransactionType
func (t TransactionType) String() string {
	return string(t)
}

// IsValid returns true if the transaction type is valid
func (t TransactionType) IsValid() bool {
	switch t {
	case TypeReward, TypeRefund, TypeRedemption:
		return true
	}
	return false
}

// TransactionStatus represents the settlement state of a transaction
type TransactionStatus string

const (
	StatusPending   TransactionStatus = "pending"
	StatusCompleted TransactionStatus = "completed"
	StatusFailed    TransactionStatus = "failed"
)

// IsValid returns true if the status is valid
func (s TransactionStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusFailed:
		return true
	}
	return false
}

// Transaction is an immutable, append-only record of a wallet balance change.
// The amount is signed: rewards are positive, refunds and redemptions
// negative. The sum of a user's completed amounts equals the wallet balance.
// Once created, transactions are never modified - corrections are made with
// new transactions.
type Transaction struct {
	shared.BaseEntity
	UserID      uuid.UUID         `json:"user_id"`
	Amount      decimal.Decimal   `json:"amount"`
	Type        TransactionType   `json:"type"`
	Status      TransactionStatus `json:"status"`
	PhotoID     *uuid.UUID        `json:"photo_id,omitempty"` // retained even after photo deletion
	Description string            `json:"description"`
}

// NewRewardTransaction creates a completed reward credit referencing a photo
func NewRewardTransaction(userID, photoID uuid.UUID, amount decimal.Decimal) (*Transaction, error) {
	if amount.IsNegative() || amount.IsZero() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Reward amount must be positive")
	}
	return newTransaction(userID, &photoID, amount, TypeReward, "Photo approved - Reward credited")
}

// NewRefundTransaction creates a completed reward reversal; the photo
// reference is kept as the audit trail even though the photo itself is gone.
func NewRefundTransaction(userID, photoID uuid.UUID, amount decimal.Decimal) (*Transaction, error) {
	if amount.IsNegative() || amount.IsZero() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Refund amount must be positive")
	}
	return newTransaction(userID, &photoID, amount.Neg(), TypeRefund, "Photo deleted - reward reversed")
}

// NewRedemptionTransaction creates a completed wallet debit
func NewRedemptionTransaction(userID uuid.UUID, amount decimal.Decimal, description string) (*Transaction, error) {
	if amount.IsNegative() || amount.IsZero() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Redemption amount must be positive")
	}
	return newTransaction(userID, nil, amount.Neg(), TypeRedemption, description)
}

func newTransaction(userID uuid.UUID, photoID *uuid.UUID, amount decimal.Decimal, txType TransactionType, description string) (*Transaction, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	return &Transaction{
		BaseEntity:  shared.NewBaseEntity(),
		UserID:      userID,
		Amount:      amount,
		Type:        txType,
		Status:      StatusCompleted,
		PhotoID:     photoID,
		Description: description,
	}, nil
}

// IsCredit reports whether the transaction increases the wallet balance
func (t *Transaction) IsCredit() bool {
	return t.Amount.IsPositive()
}
