package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wanderlens/backend/internal/domain/ledger"
	"github.com/wanderlens/backend/internal/domain/shared"
	"github.com/wanderlens/backend/internal/infrastructure/persistence/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTransactionTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.TransactionModel{})
	require.NoError(t, err)

	return db
}

func TestGormTransactionRepository_CreateAndFindByID(t *testing.T) {
	db := setupTransactionTestDB(t)
	repo := NewGormTransactionRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	photoID := uuid.New()
	tx, err := ledger.NewRewardTransaction(userID, photoID, decimal.NewFromInt(2))
	require.NoError(t, err)

	require.NoError(t, repo.Create(ctx, tx))

	found, err := repo.FindByID(ctx, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, userID, found.UserID)
	assert.Equal(t, ledger.TypeReward, found.Type)
	assert.Equal(t, ledger.StatusCompleted, found.Status)
	assert.True(t, found.Amount.Equal(decimal.NewFromInt(2)))
	require.NotNil(t, found.PhotoID)
	assert.Equal(t, photoID, *found.PhotoID)
}

func TestGormTransactionRepository_FindByID_NotFound(t *testing.T) {
	db := setupTransactionTestDB(t)
	repo := NewGormTransactionRepository(db)

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormTransactionRepository_FindByUserID(t *testing.T) {
	db := setupTransactionTestDB(t)
	repo := NewGormTransactionRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	otherID := uuid.New()

	reward, err := ledger.NewRewardTransaction(userID, uuid.New(), decimal.NewFromInt(2))
	require.NoError(t, err)
	redemption, err := ledger.NewRedemptionTransaction(userID, decimal.NewFromInt(1), "Wallet credit redeemed")
	require.NoError(t, err)
	foreign, err := ledger.NewRewardTransaction(otherID, uuid.New(), decimal.NewFromInt(2))
	require.NoError(t, err)

	for _, tx := range []*ledger.Transaction{reward, redemption, foreign} {
		require.NoError(t, repo.Create(ctx, tx))
	}

	t.Run("lists only the user's transactions", func(t *testing.T) {
		transactions, total, err := repo.FindByUserID(ctx, userID, ledger.Filter{})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, transactions, 2)
	})

	t.Run("filter by type", func(t *testing.T) {
		txType := ledger.TypeRedemption
		transactions, total, err := repo.FindByUserID(ctx, userID, ledger.Filter{Type: &txType})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, transactions, 1)
		assert.Equal(t, redemption.ID, transactions[0].ID)
	})
}

func TestGormTransactionRepository_FindByPhotoID(t *testing.T) {
	db := setupTransactionTestDB(t)
	repo := NewGormTransactionRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	photoID := uuid.New()

	reward, err := ledger.NewRewardTransaction(userID, photoID, decimal.NewFromInt(2))
	require.NoError(t, err)
	refund, err := ledger.NewRefundTransaction(userID, photoID, decimal.NewFromInt(2))
	require.NoError(t, err)

	require.NoError(t, repo.Create(ctx, reward))
	require.NoError(t, repo.Create(ctx, refund))

	transactions, err := repo.FindByPhotoID(ctx, photoID)
	require.NoError(t, err)
	assert.Len(t, transactions, 2)

	// reward and reversal cancel out
	sum := decimal.Zero
	for _, tx := range transactions {
		sum = sum.Add(tx.Amount)
	}
	assert.True(t, sum.IsZero())
}

func TestGormTransactionRepository_SumCompletedByUserID(t *testing.T) {
	db := setupTransactionTestDB(t)
	repo := NewGormTransactionRepository(db)
	ctx := context.Background()

	userID := uuid.New()

	first, err := ledger.NewRewardTransaction(userID, uuid.New(), decimal.NewFromInt(2))
	require.NoError(t, err)
	second, err := ledger.NewRewardTransaction(userID, uuid.New(), decimal.NewFromInt(2))
	require.NoError(t, err)
	redemption, err := ledger.NewRedemptionTransaction(userID, decimal.NewFromInt(3), "Wallet credit redeemed")
	require.NoError(t, err)

	for _, tx := range []*ledger.Transaction{first, second, redemption} {
		require.NoError(t, repo.Create(ctx, tx))
	}

	sum, err := repo.SumCompletedByUserID(ctx, userID)
	require.NoError(t, err)
	assert.True(t, sum.Equal(decimal.NewFromInt(1)), "expected 1, got %s", sum)
}

func TestGormTransactionRepository_SumCompletedByUserID_Empty(t *testing.T) {
	db := setupTransactionTestDB(t)
	repo := NewGormTransactionRepository(db)

	sum, err := repo.SumCompletedByUserID(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.True(t, sum.IsZero())
}

func TestGormTransactionRepository_CountByTypeAndStatus(t *testing.T) {
	db := setupTransactionTestDB(t)
	repo := NewGormTransactionRepository(db)
	ctx := context.Background()

	for range [3]struct{}{} {
		tx, err := ledger.NewRewardTransaction(uuid.New(), uuid.New(), decimal.NewFromInt(2))
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, tx))
	}
	refund, err := ledger.NewRefundTransaction(uuid.New(), uuid.New(), decimal.NewFromInt(2))
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, refund))

	count, err := repo.CountByTypeAndStatus(ctx, ledger.TypeReward, ledger.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	count, err = repo.CountByTypeAndStatus(ctx, ledger.TypeReward, ledger.StatusPending)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}
