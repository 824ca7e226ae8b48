package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/wanderlens/backend/internal/domain/ledger"
	"github.com/wanderlens/backend/internal/domain/shared"
	"github.com/wanderlens/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormTransactionRepository implements ledger.Repository using GORM.
// The table is append-only; the repository exposes no update or delete.
type GormTransactionRepository struct {
	db *gorm.DB
}

// NewGormTransactionRepository creates a new GormTransactionRepository
func NewGormTransactionRepository(db *gorm.DB) *GormTransactionRepository {
	return &GormTransactionRepository{db: db}
}

// Create appends a new transaction to the ledger
func (r *GormTransactionRepository) Create(ctx context.Context, tx *ledger.Transaction) error {
	model := models.TransactionModelFromDomain(tx)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindByID finds a transaction by its ID
func (r *GormTransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Transaction, error) {
	var model models.TransactionModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByUserID finds a user's transactions matching the filter, newest first
func (r *GormTransactionRepository) FindByUserID(ctx context.Context, userID uuid.UUID, filter ledger.Filter) ([]*ledger.Transaction, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.TransactionModel{}).
		Where("user_id = ?", userID)

	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	var txModels []models.TransactionModel
	if err := query.
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&txModels).Error; err != nil {
		return nil, 0, err
	}

	transactions := make([]*ledger.Transaction, len(txModels))
	for i := range txModels {
		transactions[i] = txModels[i].ToDomain()
	}
	return transactions, total, nil
}

// FindByPhotoID finds all transactions referencing a photo
func (r *GormTransactionRepository) FindByPhotoID(ctx context.Context, photoID uuid.UUID) ([]*ledger.Transaction, error) {
	var txModels []models.TransactionModel
	if err := r.db.WithContext(ctx).
		Where("photo_id = ?", photoID).
		Order("created_at ASC").
		Find(&txModels).Error; err != nil {
		return nil, err
	}

	transactions := make([]*ledger.Transaction, len(txModels))
	for i := range txModels {
		transactions[i] = txModels[i].ToDomain()
	}
	return transactions, nil
}

// SumCompletedByUserID sums the completed transaction amounts for a user
func (r *GormTransactionRepository) SumCompletedByUserID(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Model(&models.TransactionModel{}).
		Select("COALESCE(SUM(amount), 0) as total").
		Where("user_id = ? AND status = ?", userID, ledger.StatusCompleted).
		Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// CountByTypeAndStatus counts transactions of a type in a settlement state
func (r *GormTransactionRepository) CountByTypeAndStatus(ctx context.Context, txType ledger.TransactionType, status ledger.TransactionStatus) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.TransactionModel{}).
		Where("type = ? AND status = ?", txType, status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
