package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"millrace/internal/domain/analytics"
	"millrace/internal/infrastructure/persistence/models"
	"millrace/internal/shared/db"
	"millrace/internal/shared/logger"
)

// SummaryRepository persists the daily and customer aggregate tables.
type SummaryRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

// NewSummaryRepository creates a summary repository.
func NewSummaryRepository(database *gorm.DB, log logger.Interface) analytics.Repository {
	return &SummaryRepository{
		db:     database,
		logger: log,
	}
}

// UpsertDaily writes one date's aggregate, replacing any existing row for
// that date.
func (r *SummaryRepository) UpsertDaily(ctx context.Context, summary *analytics.DailySummary) error {
	tx := db.GetTxFromContext(ctx, r.db)

	var existing models.DailySummaryModel
	err := tx.Where("date = ?", summary.Date).First(&existing).Error
	if err != nil && err != gorm.ErrRecordNotFound {
		return fmt.Errorf("failed to find daily summary: %w", err)
	}

	if err == gorm.ErrRecordNotFound {
		model := &models.DailySummaryModel{
			Date:          summary.Date,
			TotalRevenue:  summary.TotalRevenue,
			TotalOrders:   summary.TotalOrders,
			TotalQuantity: summary.TotalQuantity,
		}
		if err := tx.Create(model).Error; err != nil {
			return fmt.Errorf("failed to create daily summary: %w", err)
		}
		summary.ID = model.ID
		summary.UpdatedAt = model.UpdatedAt
		return nil
	}

	updates := map[string]interface{}{
		"total_revenue":  summary.TotalRevenue,
		"total_orders":   summary.TotalOrders,
		"total_quantity": summary.TotalQuantity,
	}
	if err := tx.Model(&existing).Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to update daily summary: %w", err)
	}
	summary.ID = existing.ID
	summary.UpdatedAt = existing.UpdatedAt
	return nil
}

// UpsertCustomer writes one customer's aggregate, replacing any existing row.
func (r *SummaryRepository) UpsertCustomer(ctx context.Context, summary *analytics.CustomerSummary) error {
	tx := db.GetTxFromContext(ctx, r.db)

	var existing models.CustomerSummaryModel
	err := tx.Where("customer_id = ?", summary.CustomerID).First(&existing).Error
	if err != nil && err != gorm.ErrRecordNotFound {
		return fmt.Errorf("failed to find customer summary: %w", err)
	}

	if err == gorm.ErrRecordNotFound {
		model := &models.CustomerSummaryModel{
			CustomerID:          summary.CustomerID,
			TotalRevenue:        summary.TotalRevenue,
			TotalOrders:         summary.TotalOrders,
			AverageOrderValue:   summary.AverageOrderValue,
			LastTransactionDate: summary.LastTransactionDate,
		}
		if err := tx.Create(model).Error; err != nil {
			return fmt.Errorf("failed to create customer summary: %w", err)
		}
		summary.ID = model.ID
		summary.UpdatedAt = model.UpdatedAt
		return nil
	}

	updates := map[string]interface{}{
		"total_revenue":         summary.TotalRevenue,
		"total_orders":          summary.TotalOrders,
		"average_order_value":   summary.AverageOrderValue,
		"last_transaction_date": summary.LastTransactionDate,
	}
	if err := tx.Model(&existing).Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to update customer summary: %w", err)
	}
	summary.ID = existing.ID
	summary.UpdatedAt = existing.UpdatedAt
	return nil
}

// ListDaily returns daily summaries ordered by date descending. A limit of
// zero or less returns every row.
func (r *SummaryRepository) ListDaily(ctx context.Context, limit int) ([]*analytics.DailySummary, error) {
	query := db.GetTxFromContext(ctx, r.db).Order("date DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var rows []models.DailySummaryModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list daily summaries: %w", err)
	}

	summaries := make([]*analytics.DailySummary, len(rows))
	for i, row := range rows {
		summaries[i] = dailyModelToSummary(&row)
	}
	return summaries, nil
}

// ListCustomersByRevenue returns customer summaries ordered by revenue
// descending. A limit of zero or less returns every row.
func (r *SummaryRepository) ListCustomersByRevenue(ctx context.Context, limit int) ([]*analytics.CustomerSummary, error) {
	query := db.GetTxFromContext(ctx, r.db).Order("total_revenue DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var rows []models.CustomerSummaryModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list customer summaries: %w", err)
	}

	summaries := make([]*analytics.CustomerSummary, len(rows))
	for i, row := range rows {
		summaries[i] = customerModelToSummary(&row)
	}
	return summaries, nil
}

func dailyModelToSummary(model *models.DailySummaryModel) *analytics.DailySummary {
	return &analytics.DailySummary{
		ID:            model.ID,
		Date:          model.Date,
		TotalRevenue:  model.TotalRevenue,
		TotalOrders:   model.TotalOrders,
		TotalQuantity: model.TotalQuantity,
		UpdatedAt:     model.UpdatedAt,
	}
}

func customerModelToSummary(model *models.CustomerSummaryModel) *analytics.CustomerSummary {
	var lastDate *time.Time
	if model.LastTransactionDate != nil {
		d := *model.LastTransactionDate
		lastDate = &d
	}
	return &analytics.CustomerSummary{
		ID:                  model.ID,
		CustomerID:          model.CustomerID,
		TotalRevenue:        model.TotalRevenue,
		TotalOrders:         model.TotalOrders,
		AverageOrderValue:   model.AverageOrderValue,
		LastTransactionDate: lastDate,
		UpdatedAt:           model.UpdatedAt,
	}
}
