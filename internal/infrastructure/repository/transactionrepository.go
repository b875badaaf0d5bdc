package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"millrace/internal/domain/transaction"
	"millrace/internal/infrastructure/persistence/models"
	"millrace/internal/shared/db"
	"millrace/internal/shared/logger"
)

// TransactionRepository persists canonical transactions and answers the
// predicate and point-in-time queries the pipeline depends on.
type TransactionRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

// NewTransactionRepository creates a canonical transaction repository.
func NewTransactionRepository(database *gorm.DB, log logger.Interface) transaction.Repository {
	return &TransactionRepository{
		db:     database,
		logger: log,
	}
}

// Create inserts one canonical transaction. Uniqueness violations bubble up
// unwrapped inside the chain so callers can reclassify them as duplicates.
func (r *TransactionRepository) Create(ctx context.Context, txn *transaction.Transaction) error {
	model := txnToModel(txn)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	txn.ID = model.ID
	txn.CreatedAt = model.CreatedAt
	return nil
}

// ExistsByExternalID checks the external-id dedup tier.
func (r *TransactionRepository) ExistsByExternalID(ctx context.Context, externalID string) (bool, error) {
	var count int64
	err := db.GetTxFromContext(ctx, r.db).Model(&models.TransactionModel{}).
		Where("external_id = ?", externalID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check external id: %w", err)
	}
	return count > 0, nil
}

// ExistsByKey checks the composite dedup tier used for keyless rows.
func (r *TransactionRepository) ExistsByKey(ctx context.Context, key transaction.NaturalKey) (bool, error) {
	var count int64
	err := db.GetTxFromContext(ctx, r.db).Model(&models.TransactionModel{}).
		Where("transaction_date = ? AND customer_id = ? AND product = ? AND quantity = ? AND price = ?",
			key.Date, key.CustomerID, key.Product, key.Quantity, key.Price).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check composite key: %w", err)
	}
	return count > 0, nil
}

// GroupByDate aggregates the full canonical set per date. The reduction runs
// in memory so date values round-trip identically on MySQL and SQLite.
func (r *TransactionRepository) GroupByDate(ctx context.Context) ([]transaction.DailyGroup, error) {
	var rows []models.TransactionModel
	if err := db.GetTxFromContext(ctx, r.db).Order("transaction_date, id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load transactions for daily grouping: %w", err)
	}

	index := make(map[time.Time]int)
	groups := make([]transaction.DailyGroup, 0)
	for _, row := range rows {
		date := transaction.Midnight(row.Date)
		i, ok := index[date]
		if !ok {
			i = len(groups)
			index[date] = i
			groups = append(groups, transaction.DailyGroup{Date: date})
		}
		groups[i].Revenue += row.TotalAmount
		groups[i].Orders++
		groups[i].Quantity += row.Quantity
	}

	return groups, nil
}

// GroupByCustomer aggregates the full canonical set per customer.
func (r *TransactionRepository) GroupByCustomer(ctx context.Context) ([]transaction.CustomerGroup, error) {
	var rows []models.TransactionModel
	if err := db.GetTxFromContext(ctx, r.db).Order("customer_id, transaction_date").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load transactions for customer grouping: %w", err)
	}

	index := make(map[string]int)
	groups := make([]transaction.CustomerGroup, 0)
	for _, row := range rows {
		date := transaction.Midnight(row.Date)
		i, ok := index[row.CustomerID]
		if !ok {
			i = len(groups)
			index[row.CustomerID] = i
			groups = append(groups, transaction.CustomerGroup{CustomerID: row.CustomerID})
		}
		groups[i].Revenue += row.TotalAmount
		groups[i].Orders++
		if date.After(groups[i].LastDate) {
			groups[i].LastDate = date
		}
	}

	return groups, nil
}

// RevenueOn sums total_amount for one exact date.
func (r *TransactionRepository) RevenueOn(ctx context.Context, date time.Time) (float64, error) {
	var revenue float64
	err := db.GetTxFromContext(ctx, r.db).Model(&models.TransactionModel{}).
		Where("transaction_date = ?", date).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&revenue).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum daily revenue: %w", err)
	}
	return revenue, nil
}

// CustomerRevenueThrough sums a customer's total_amount up to and including date.
func (r *TransactionRepository) CustomerRevenueThrough(ctx context.Context, customerID string, date time.Time) (float64, error) {
	var revenue float64
	err := db.GetTxFromContext(ctx, r.db).Model(&models.TransactionModel{}).
		Where("customer_id = ? AND transaction_date <= ?", customerID, date).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&revenue).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum customer revenue: %w", err)
	}
	return revenue, nil
}

// CustomerCountThrough counts a customer's transactions up to and including date.
func (r *TransactionRepository) CustomerCountThrough(ctx context.Context, customerID string, date time.Time) (int64, error) {
	var count int64
	err := db.GetTxFromContext(ctx, r.db).Model(&models.TransactionModel{}).
		Where("customer_id = ? AND transaction_date <= ?", customerID, date).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count customer transactions: %w", err)
	}
	return count, nil
}

// CustomerAverageThrough averages a customer's total_amount up to and including date.
func (r *TransactionRepository) CustomerAverageThrough(ctx context.Context, customerID string, date time.Time) (float64, error) {
	var avg float64
	err := db.GetTxFromContext(ctx, r.db).Model(&models.TransactionModel{}).
		Where("customer_id = ? AND transaction_date <= ?", customerID, date).
		Select("COALESCE(AVG(total_amount), 0)").
		Scan(&avg).Error
	if err != nil {
		return 0, fmt.Errorf("failed to average customer transactions: %w", err)
	}
	return avg, nil
}

// CustomerFirstDate returns the customer's earliest transaction date, or nil
// when the customer has no transactions at all.
func (r *TransactionRepository) CustomerFirstDate(ctx context.Context, customerID string) (*time.Time, error) {
	var model models.TransactionModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("customer_id = ?", customerID).
		Order("transaction_date ASC").
		First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find first transaction date: %w", err)
	}
	first := transaction.Midnight(model.Date)
	return &first, nil
}

// Count returns the number of canonical transactions.
func (r *TransactionRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := db.GetTxFromContext(ctx, r.db).Model(&models.TransactionModel{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return count, nil
}

// Totals returns the dataset-wide KPI numbers.
func (r *TransactionRepository) Totals(ctx context.Context) (transaction.Totals, error) {
	totals := transaction.Totals{}
	tx := db.GetTxFromContext(ctx, r.db)

	err := tx.Model(&models.TransactionModel{}).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&totals.Revenue).Error
	if err != nil {
		return totals, fmt.Errorf("failed to sum total revenue: %w", err)
	}

	if err := tx.Model(&models.TransactionModel{}).Count(&totals.Orders).Error; err != nil {
		return totals, fmt.Errorf("failed to count orders: %w", err)
	}

	err = tx.Model(&models.TransactionModel{}).
		Distinct("customer_id").
		Count(&totals.Customers).Error
	if err != nil {
		return totals, fmt.Errorf("failed to count distinct customers: %w", err)
	}

	return totals, nil
}

// Dates returns the span of canonical transaction dates.
func (r *TransactionRepository) Dates(ctx context.Context) (transaction.DateRange, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var earliest models.TransactionModel
	err := tx.Order("transaction_date ASC").First(&earliest).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return transaction.DateRange{}, nil
		}
		return transaction.DateRange{}, fmt.Errorf("failed to find earliest transaction: %w", err)
	}

	var latest models.TransactionModel
	if err := tx.Order("transaction_date DESC").First(&latest).Error; err != nil {
		return transaction.DateRange{}, fmt.Errorf("failed to find latest transaction: %w", err)
	}

	minDate := transaction.Midnight(earliest.Date)
	maxDate := transaction.Midnight(latest.Date)
	return transaction.DateRange{Min: &minDate, Max: &maxDate}, nil
}

// DistinctCustomers counts distinct customer ids.
func (r *TransactionRepository) DistinctCustomers(ctx context.Context) (int64, error) {
	var count int64
	err := db.GetTxFromContext(ctx, r.db).Model(&models.TransactionModel{}).
		Distinct("customer_id").
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count distinct customers: %w", err)
	}
	return count, nil
}

// DistinctProducts counts distinct products.
func (r *TransactionRepository) DistinctProducts(ctx context.Context) (int64, error) {
	var count int64
	err := db.GetTxFromContext(ctx, r.db).Model(&models.TransactionModel{}).
		Distinct("product").
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count distinct products: %w", err)
	}
	return count, nil
}

func txnToModel(txn *transaction.Transaction) *models.TransactionModel {
	return &models.TransactionModel{
		ID:            txn.ID,
		ExternalID:    txn.ExternalID,
		Date:          txn.Date,
		CustomerID:    txn.CustomerID,
		Product:       txn.Product,
		Category:      txn.Category,
		Quantity:      txn.Quantity,
		Price:         txn.Price,
		TotalAmount:   txn.Total,
		PaymentMethod: txn.PaymentMethod,
		City:          txn.City,
		RawID:         txn.RawID,
	}
}
