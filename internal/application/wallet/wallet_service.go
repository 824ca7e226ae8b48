package wallet

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/wanderlens/backend/internal/domain/ledger"
	"github.com/wanderlens/backend/internal/domain/member"
	"github.com/wanderlens/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Service serves wallet balances and the transaction history behind them
type Service struct {
	userRepo member.Repository
	txRepo   ledger.Repository
	logger   *zap.Logger
}

// NewService creates a new wallet Service
func NewService(userRepo member.Repository, txRepo ledger.Repository, logger *zap.Logger) *Service {
	return &Service{
		userRepo: userRepo,
		txRepo:   txRepo,
		logger:   logger,
	}
}

// Summary is a wallet balance with its backing transaction page
type Summary struct {
	Balance      decimal.Decimal       `json:"balance"`
	Transactions []*ledger.Transaction `json:"transactions"`
	Total        int64                 `json:"total"`
}

// GetSummary returns the user's balance and a page of their transactions
func (s *Service) GetSummary(ctx context.Context, userID uuid.UUID, filter ledger.Filter) (*Summary, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	txs, total, err := s.txRepo.FindByUserID(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	return &Summary{
		Balance:      user.WalletBalance,
		Transactions: txs,
		Total:        total,
	}, nil
}

// Redeem debits the wallet and appends a redemption transaction. The wallet
// must cover the amount; rewards are the only way balance enters the system.
func (s *Service) Redeem(ctx context.Context, userID uuid.UUID, amount decimal.Decimal, description string) (*ledger.Transaction, error) {
	if amount.IsNegative() || amount.IsZero() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Redemption amount must be positive")
	}

	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.WalletBalance.LessThan(amount) {
		return nil, shared.NewDomainError("INSUFFICIENT_BALANCE",
			fmt.Sprintf("Insufficient balance: available %s, required %s", user.WalletBalance, amount))
	}

	if err := user.DebitWallet(amount); err != nil {
		return nil, err
	}
	if err := s.userRepo.SaveWithLock(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to debit wallet: %w", err)
	}

	if description == "" {
		description = "Wallet credit redeemed"
	}
	tx, err := ledger.NewRedemptionTransaction(userID, amount, description)
	if err != nil {
		return nil, err
	}
	if err := s.txRepo.Create(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to record redemption: %w", err)
	}

	s.logger.Info("wallet redemption",
		zap.String("user_id", userID.String()),
		zap.String("amount", amount.String()),
	)
	return tx, nil
}

// VerifyConservation recomputes the ledger sum and compares it with the
// stored balance. Used by operational tooling to detect drift.
func (s *Service) VerifyConservation(ctx context.Context, userID uuid.UUID) (bool, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return false, err
	}
	sum, err := s.txRepo.SumCompletedByUserID(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("failed to sum transactions: %w", err)
	}
	return user.WalletBalance.Equal(sum), nil
}

func (s *Service) findUser(ctx context.Context, id uuid.UUID) (*member.User, error) {
	u, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}
	return u, nil
}
