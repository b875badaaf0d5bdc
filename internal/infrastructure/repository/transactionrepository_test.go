package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"millrace/internal/domain/transaction"
	"millrace/internal/infrastructure/persistence/models"
	"millrace/internal/shared/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.RawTransactionModel{},
		&models.TransactionModel{},
		&models.DailySummaryModel{},
		&models.CustomerSummaryModel{},
		&models.FeatureRecordModel{},
		&models.QualityMetricModel{},
	)
	require.NoError(t, err)

	return db
}

func date(s string) time.Time {
	d, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		panic(err)
	}
	return d
}

func strPtr(s string) *string {
	return &s
}

func newTxn(externalID *string, day, customer, product string, qty, price float64) *transaction.Transaction {
	return &transaction.Transaction{
		ExternalID: externalID,
		Date:       date(day),
		CustomerID: customer,
		Product:    product,
		Quantity:   qty,
		Price:      price,
		Total:      qty * price,
	}
}

func TestTransactionRepository_Create(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTransactionRepository(db, logger.NewLogger())
	ctx := context.Background()

	t.Run("create assigns id", func(t *testing.T) {
		txn := newTxn(strPtr("T1"), "2024-01-01", "C1", "Widget", 2, 50)
		err := repo.Create(ctx, txn)
		assert.NoError(t, err)
		assert.NotZero(t, txn.ID)
	})

	t.Run("duplicate external id fails", func(t *testing.T) {
		txn := newTxn(strPtr("T1"), "2024-01-02", "C2", "Widget", 1, 10)
		err := repo.Create(ctx, txn)
		assert.Error(t, err)
	})

	t.Run("multiple nil external ids allowed", func(t *testing.T) {
		err := repo.Create(ctx, newTxn(nil, "2024-01-03", "C3", "Gadget", 1, 5))
		assert.NoError(t, err)
		err = repo.Create(ctx, newTxn(nil, "2024-01-04", "C4", "Gadget", 1, 5))
		assert.NoError(t, err)
	})
}

func TestTransactionRepository_ExistenceChecks(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTransactionRepository(db, logger.NewLogger())
	ctx := context.Background()

	txn := newTxn(strPtr("T100"), "2024-02-01", "C1", "Widget", 3, 20)
	require.NoError(t, repo.Create(ctx, txn))
	keyless := newTxn(nil, "2024-02-02", "C2", "Gadget", 1, 9.99)
	require.NoError(t, repo.Create(ctx, keyless))

	t.Run("by external id", func(t *testing.T) {
		exists, err := repo.ExistsByExternalID(ctx, "T100")
		assert.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsByExternalID(ctx, "T999")
		assert.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("by composite key", func(t *testing.T) {
		exists, err := repo.ExistsByKey(ctx, keyless.Key())
		assert.NoError(t, err)
		assert.True(t, exists)

		other := keyless.Key()
		other.Price = 10.00
		exists, err = repo.ExistsByKey(ctx, other)
		assert.NoError(t, err)
		assert.False(t, exists)
	})
}

func TestTransactionRepository_Grouping(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTransactionRepository(db, logger.NewLogger())
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newTxn(strPtr("T1"), "2024-01-01", "C1", "Widget", 2, 50)))
	require.NoError(t, repo.Create(ctx, newTxn(strPtr("T2"), "2024-01-01", "C2", "Gadget", 1, 100)))
	require.NoError(t, repo.Create(ctx, newTxn(strPtr("T3"), "2024-01-02", "C1", "Widget", 3, 50)))

	t.Run("group by date", func(t *testing.T) {
		groups, err := repo.GroupByDate(ctx)
		require.NoError(t, err)
		require.Len(t, groups, 2)

		assert.True(t, groups[0].Date.Equal(date("2024-01-01")))
		assert.InDelta(t, 200.0, groups[0].Revenue, 1e-9)
		assert.Equal(t, int64(2), groups[0].Orders)
		assert.InDelta(t, 3.0, groups[0].Quantity, 1e-9)

		assert.True(t, groups[1].Date.Equal(date("2024-01-02")))
		assert.InDelta(t, 150.0, groups[1].Revenue, 1e-9)
		assert.Equal(t, int64(1), groups[1].Orders)
	})

	t.Run("group by customer", func(t *testing.T) {
		groups, err := repo.GroupByCustomer(ctx)
		require.NoError(t, err)
		require.Len(t, groups, 2)

		byCustomer := map[string]transaction.CustomerGroup{}
		for _, g := range groups {
			byCustomer[g.CustomerID] = g
		}

		c1 := byCustomer["C1"]
		assert.InDelta(t, 250.0, c1.Revenue, 1e-9)
		assert.Equal(t, int64(2), c1.Orders)
		assert.True(t, c1.LastDate.Equal(date("2024-01-02")))

		c2 := byCustomer["C2"]
		assert.InDelta(t, 100.0, c2.Revenue, 1e-9)
		assert.Equal(t, int64(1), c2.Orders)
	})
}

func TestTransactionRepository_PointInTimeQueries(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTransactionRepository(db, logger.NewLogger())
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newTxn(strPtr("T1"), "2024-01-01", "C1", "Widget", 2, 50)))
	require.NoError(t, repo.Create(ctx, newTxn(strPtr("T2"), "2024-01-05", "C1", "Widget", 1, 100)))
	require.NoError(t, repo.Create(ctx, newTxn(strPtr("T3"), "2024-01-10", "C1", "Gadget", 1, 300)))
	require.NoError(t, repo.Create(ctx, newTxn(strPtr("T4"), "2024-01-05", "C2", "Widget", 1, 40)))

	t.Run("revenue on date", func(t *testing.T) {
		revenue, err := repo.RevenueOn(ctx, date("2024-01-05"))
		require.NoError(t, err)
		assert.InDelta(t, 140.0, revenue, 1e-9)
	})

	t.Run("revenue on empty date is zero", func(t *testing.T) {
		revenue, err := repo.RevenueOn(ctx, date("2023-12-31"))
		require.NoError(t, err)
		assert.Zero(t, revenue)
	})

	t.Run("customer revenue through excludes later rows", func(t *testing.T) {
		revenue, err := repo.CustomerRevenueThrough(ctx, "C1", date("2024-01-05"))
		require.NoError(t, err)
		assert.InDelta(t, 200.0, revenue, 1e-9)
	})

	t.Run("customer count and average through", func(t *testing.T) {
		count, err := repo.CustomerCountThrough(ctx, "C1", date("2024-01-05"))
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)

		avg, err := repo.CustomerAverageThrough(ctx, "C1", date("2024-01-05"))
		require.NoError(t, err)
		assert.InDelta(t, 100.0, avg, 1e-9)
	})

	t.Run("first date", func(t *testing.T) {
		first, err := repo.CustomerFirstDate(ctx, "C1")
		require.NoError(t, err)
		require.NotNil(t, first)
		assert.True(t, first.Equal(date("2024-01-01")))
	})

	t.Run("first date nil for unknown customer", func(t *testing.T) {
		first, err := repo.CustomerFirstDate(ctx, "NOBODY")
		require.NoError(t, err)
		assert.Nil(t, first)
	})
}

func TestTransactionRepository_TotalsAndDates(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTransactionRepository(db, logger.NewLogger())
	ctx := context.Background()

	t.Run("empty dataset", func(t *testing.T) {
		totals, err := repo.Totals(ctx)
		require.NoError(t, err)
		assert.Zero(t, totals.Revenue)
		assert.Zero(t, totals.Orders)
		assert.Zero(t, totals.Customers)

		dates, err := repo.Dates(ctx)
		require.NoError(t, err)
		assert.Nil(t, dates.Min)
		assert.Nil(t, dates.Max)
	})

	require.NoError(t, repo.Create(ctx, newTxn(strPtr("T1"), "2024-03-01", "C1", "Widget", 2, 50)))
	require.NoError(t, repo.Create(ctx, newTxn(strPtr("T2"), "2024-03-15", "C2", "Gadget", 1, 75)))
	require.NoError(t, repo.Create(ctx, newTxn(strPtr("T3"), "2024-03-10", "C1", "Widget", 1, 25)))

	t.Run("totals", func(t *testing.T) {
		totals, err := repo.Totals(ctx)
		require.NoError(t, err)
		assert.InDelta(t, 200.0, totals.Revenue, 1e-9)
		assert.Equal(t, int64(3), totals.Orders)
		assert.Equal(t, int64(2), totals.Customers)
	})

	t.Run("date span", func(t *testing.T) {
		dates, err := repo.Dates(ctx)
		require.NoError(t, err)
		require.NotNil(t, dates.Min)
		require.NotNil(t, dates.Max)
		assert.True(t, dates.Min.Equal(date("2024-03-01")))
		assert.True(t, dates.Max.Equal(date("2024-03-15")))
	})

	t.Run("distinct counts", func(t *testing.T) {
		customers, err := repo.DistinctCustomers(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), customers)

		products, err := repo.DistinctProducts(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), products)
	})
}
