package ledger

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Filter narrows transaction list queries
type Filter struct {
	Type     *TransactionType
	Status   *TransactionStatus
	Page     int
	PageSize int
}

// Repository is the persistence port for the append-only transaction log.
// There is deliberately no update or delete operation.
type Repository interface {
	Create(ctx context.Context, tx *Transaction) error
	FindByID(ctx context.Context, id uuid.UUID) (*Transaction, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, filter Filter) ([]*Transaction, int64, error)
	FindByPhotoID(ctx context.Context, photoID uuid.UUID) ([]*Transaction, error)
	// SumCompletedByUserID returns the sum of completed transaction amounts,
	// which must equal the user's wallet balance at all times.
	SumCompletedByUserID(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error)
	CountByTypeAndStatus(ctx context.Context, txType TransactionType, status TransactionStatus) (int64, error)
}
