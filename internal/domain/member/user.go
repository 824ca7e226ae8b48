package member

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/wanderlens/backend/internal/domain/shared"
)

// Role represents the permission level of a user
type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperadmin Role = "superadmin"
)

// IsValid checks if the role is valid
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleSuperadmin:
		return true
	}
	return false
}

// IsAdmin reports whether the role carries moderation privileges
func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r == RoleSuperadmin
}

// Address holds the resolved postal address of a user
type Address struct {
	FullAddress string `json:"full_address,omitempty"`
	City        string `json:"city,omitempty"`
	State       string `json:"state,omitempty"`
	Country     string `json:"country,omitempty"`
}

// User is a contributor account carrying the reward wallet. The wallet
// balance is mutated only in lockstep with a ledger transaction.
type User struct {
	shared.BaseAggregateRoot
	Name          string          `json:"name"`
	Email         string          `json:"email"`
	Phone         string          `json:"phone,omitempty"`
	ProfilePhoto  string          `json:"profile_photo,omitempty"`
	PostalCode    string          `json:"postal_code,omitempty"`
	Address       Address         `json:"address"`
	WalletBalance decimal.Decimal `json:"wallet_balance"`
	Role          Role            `json:"role"`
	Active        bool            `json:"active"`
}

// NewUser creates an active user with an empty wallet
func NewUser(name, email string) (*User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, shared.NewDomainError("INVALID_EMAIL", "A valid email is required")
	}

	return &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Email:             email,
		WalletBalance:     decimal.Zero,
		Role:              RoleUser,
		Active:            true,
	}, nil
}

// CreditWallet increases the wallet balance by a positive amount
func (u *User) CreditWallet(amount decimal.Decimal) error {
	if amount.IsNegative() || amount.IsZero() {
		return shared.NewDomainError("INVALID_AMOUNT", "Credit amount must be positive")
	}
	u.WalletBalance = u.WalletBalance.Add(amount)
	return nil
}

// DebitWallet decreases the wallet balance by a positive amount. A reward
// reversal may drive the balance negative when credit was already spent;
// the ledger stays the source of truth either way.
func (u *User) DebitWallet(amount decimal.Decimal) error {
	if amount.IsNegative() || amount.IsZero() {
		return shared.NewDomainError("INVALID_AMOUNT", "Debit amount must be positive")
	}
	u.WalletBalance = u.WalletBalance.Sub(amount)
	return nil
}
