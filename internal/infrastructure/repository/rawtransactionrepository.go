package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"millrace/internal/domain/transaction"
	"millrace/internal/infrastructure/persistence/models"
	"millrace/internal/shared/db"
	"millrace/internal/shared/logger"
)

// RawTransactionRepository persists ingested rows verbatim.
type RawTransactionRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

// NewRawTransactionRepository creates a raw transaction repository.
func NewRawTransactionRepository(database *gorm.DB, log logger.Interface) transaction.RawRepository {
	return &RawTransactionRepository{
		db:     database,
		logger: log,
	}
}

// Create stores one raw row.
func (r *RawTransactionRepository) Create(ctx context.Context, raw *transaction.RawTransaction) error {
	model := rawToModel(raw)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create raw transaction", "customer_id", raw.CustomerID, "error", err)
		return fmt.Errorf("failed to create raw transaction: %w", err)
	}

	raw.ID = model.ID
	raw.CreatedAt = model.CreatedAt
	return nil
}

// Count returns the number of stored raw rows.
func (r *RawTransactionRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := db.GetTxFromContext(ctx, r.db).Model(&models.RawTransactionModel{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count raw transactions: %w", err)
	}
	return count, nil
}

func rawToModel(raw *transaction.RawTransaction) *models.RawTransactionModel {
	return &models.RawTransactionModel{
		ID:            raw.ID,
		ExternalID:    raw.ExternalID,
		Date:          raw.Date,
		CustomerID:    raw.CustomerID,
		Product:       raw.Product,
		Category:      raw.Category,
		Quantity:      raw.Quantity,
		Price:         raw.Price,
		PaymentMethod: raw.PaymentMethod,
		City:          raw.City,
	}
}
