package repository

import (
	"context"

	"tontinehub/internal/models"
	"tontinehub/internal/observability"

	"gorm.io/gorm"
)

// TransactionRepository lists the illustrative contribution/payout
// history for a tontine. Rows are written by seeding only; there is no
// create path through the API.
type TransactionRepository interface {
	ListByTontine(ctx context.Context, tontineID uint) ([]models.Transaction, error)
}

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository returns a new TransactionRepository implementation.
func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) ListByTontine(ctx context.Context, tontineID uint) ([]models.Transaction, error) {
	defer observability.TrackQuery("select", "transactions")()

	var transactions []models.Transaction
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("tontine_id = ?", tontineID).
		Order("created_at DESC").
		Find(&transactions).Error; err != nil {
		return nil, storeError(err)
	}
	return transactions, nil
}
