package member

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Repository is the persistence port for users
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	Save(ctx context.Context, u *User) error
	// SaveWithLock saves using the aggregate version for optimistic locking,
	// serializing concurrent wallet mutations for the same user.
	SaveWithLock(ctx context.Context, u *User) error
	Count(ctx context.Context) (int64, error)
	// SumWalletBalances returns the aggregate balance across all users
	SumWalletBalances(ctx context.Context) (decimal.Decimal, error)
}
