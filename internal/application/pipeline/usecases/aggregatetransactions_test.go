package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"millrace/internal/domain/transaction"
	"millrace/internal/infrastructure/repository"
	"millrace/internal/shared/db"
	"millrace/internal/shared/logger"
)

func TestAggregateTransactions(t *testing.T) {
	database := setupTestDB(t)
	log := logger.NewLogger()
	txnRepo := repository.NewTransactionRepository(database, log)
	summaryRepo := repository.NewSummaryRepository(database, log)
	txManager := db.NewTransactionManager(database)
	uc := NewAggregateTransactionsUseCase(txnRepo, summaryRepo, txManager, log)
	ctx := context.Background()

	seed := func(id, day, customer string, qty, price float64) {
		txn := &transaction.Transaction{
			ExternalID: strPtr(id),
			Date:       date(day),
			CustomerID: customer,
			Product:    "Widget",
			Quantity:   qty,
			Price:      price,
			Total:      qty * price,
		}
		require.NoError(t, txnRepo.Create(ctx, txn))
	}

	seed("T1", "2024-01-01", "C1", 2, 50)
	seed("T2", "2024-01-01", "C2", 1, 100)
	seed("T3", "2024-01-02", "C1", 3, 50)

	t.Run("recompute produces one row per date and customer", func(t *testing.T) {
		outcome, err := uc.Execute(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), outcome.DailySummaries)
		assert.Equal(t, int64(2), outcome.CustomerSummaries)

		daily, err := summaryRepo.ListDaily(ctx, 0)
		require.NoError(t, err)
		require.Len(t, daily, 2)

		customers, err := summaryRepo.ListCustomersByRevenue(ctx, 0)
		require.NoError(t, err)
		require.Len(t, customers, 2)
		assert.Equal(t, "C1", customers[0].CustomerID)
		assert.InDelta(t, 250.0, customers[0].TotalRevenue, 1e-9)
		assert.Equal(t, int64(2), customers[0].TotalOrders)
		assert.InDelta(t, 125.0, customers[0].AverageOrderValue, 1e-9)
		require.NotNil(t, customers[0].LastTransactionDate)
		assert.True(t, customers[0].LastTransactionDate.Equal(date("2024-01-02")))
	})

	t.Run("recompute is idempotent", func(t *testing.T) {
		_, err := uc.Execute(ctx)
		require.NoError(t, err)
		_, err = uc.Execute(ctx)
		require.NoError(t, err)

		daily, err := summaryRepo.ListDaily(ctx, 0)
		require.NoError(t, err)
		assert.Len(t, daily, 2)

		customers, err := summaryRepo.ListCustomersByRevenue(ctx, 0)
		require.NoError(t, err)
		assert.Len(t, customers, 2)
	})

	t.Run("new data is reflected after recompute", func(t *testing.T) {
		seed("T4", "2024-01-02", "C2", 1, 60)

		_, err := uc.Execute(ctx)
		require.NoError(t, err)

		customers, err := summaryRepo.ListCustomersByRevenue(ctx, 0)
		require.NoError(t, err)
		byID := map[string]float64{}
		for _, c := range customers {
			byID[c.CustomerID] = c.TotalRevenue
		}
		assert.InDelta(t, 160.0, byID["C2"], 1e-9)
	})
}
