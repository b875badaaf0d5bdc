package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"millrace/internal/domain/feature"
	"millrace/internal/infrastructure/persistence/models"
	"millrace/internal/shared/db"
	"millrace/internal/shared/logger"
)

// FeatureRepository persists derived feature records.
type FeatureRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

// NewFeatureRepository creates a feature record repository.
func NewFeatureRepository(database *gorm.DB, log logger.Interface) feature.Repository {
	return &FeatureRepository{
		db:     database,
		logger: log,
	}
}

// Create inserts one feature record.
func (r *FeatureRepository) Create(ctx context.Context, record *feature.Record) error {
	model := featureToModel(record)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create feature record: %w", err)
	}

	record.ID = model.ID
	record.CreatedAt = model.CreatedAt
	return nil
}

// ExistsByExternalID checks the idempotence guard for feature generation.
func (r *FeatureRepository) ExistsByExternalID(ctx context.Context, externalID string) (bool, error) {
	var count int64
	err := db.GetTxFromContext(ctx, r.db).Model(&models.FeatureRecordModel{}).
		Where("external_id = ?", externalID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check feature record: %w", err)
	}
	return count > 0, nil
}

// Count returns the number of feature records.
func (r *FeatureRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := db.GetTxFromContext(ctx, r.db).Model(&models.FeatureRecordModel{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count feature records: %w", err)
	}
	return count, nil
}

func featureToModel(record *feature.Record) *models.FeatureRecordModel {
	return &models.FeatureRecordModel{
		ID:             record.ID,
		ExternalID:     record.ExternalID,
		CustomerID:     record.CustomerID,
		Date:           record.Date,
		TotalAmount:    record.Total,
		Quantity:       record.Quantity,
		Price:          record.Price,
		DailyRevenue:   record.DailyRevenue,
		LifetimeValue:  record.LifetimeValue,
		Frequency:      record.Frequency,
		DaysSinceFirst: record.DaysSinceFirst,
		AverageValue:   record.AverageValue,
		Category:       record.Category,
		PaymentMethod:  record.PaymentMethod,
		City:           record.City,
	}
}
