package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"millrace/internal/domain/transaction"
	"millrace/internal/infrastructure/repository"
	"millrace/internal/shared/logger"
)

func TestGenerateFeatures(t *testing.T) {
	database := setupTestDB(t)
	log := logger.NewLogger()
	txnRepo := repository.NewTransactionRepository(database, log)
	featureRepo := repository.NewFeatureRepository(database, log)
	uc := NewGenerateFeaturesUseCase(txnRepo, featureRepo, log)
	ctx := context.Background()

	create := func(id, day, customer string, qty, price float64) *transaction.Transaction {
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
		return txn
	}

	t.Run("first record for a customer", func(t *testing.T) {
		txn := create("T1", "2024-01-01", "C1", 2, 50)

		outcome, err := uc.Execute(ctx, []*transaction.Transaction{txn})
		require.NoError(t, err)
		assert.Equal(t, int64(1), outcome.Generated)
		assert.Zero(t, outcome.Skipped)

		count, err := featureRepo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("point-in-time aggregates over customer history", func(t *testing.T) {
		second := create("T2", "2024-01-05", "C1", 1, 100)
		// Later transaction must not leak into T2's features.
		third := create("T3", "2024-01-10", "C1", 1, 300)

		outcome, err := uc.Execute(ctx, []*transaction.Transaction{third, second})
		require.NoError(t, err)
		assert.Equal(t, int64(2), outcome.Generated)

		// T2: lifetime 100+100=200, frequency 2, avg 100, 4 days since first.
		// Verify through the stored rows rather than re-deriving here.
		var got struct {
			LifetimeValue  float64
			Frequency      int64
			AverageValue   float64
			DaysSinceFirst *int64
			DailyRevenue   float64
		}
		err = database.Table("feature_records").
			Select("lifetime_value, frequency, average_value, days_since_first, daily_revenue").
			Where("external_id = ?", "T2").
			Scan(&got).Error
		require.NoError(t, err)

		assert.InDelta(t, 200.0, got.LifetimeValue, 1e-9)
		assert.Equal(t, int64(2), got.Frequency)
		assert.InDelta(t, 100.0, got.AverageValue, 1e-9)
		require.NotNil(t, got.DaysSinceFirst)
		assert.Equal(t, int64(4), *got.DaysSinceFirst)
		assert.InDelta(t, 100.0, got.DailyRevenue, 1e-9)
	})

	t.Run("existing external id is skipped", func(t *testing.T) {
		txn := create("T4", "2024-02-01", "C2", 1, 10)

		first, err := uc.Execute(ctx, []*transaction.Transaction{txn})
		require.NoError(t, err)
		require.Equal(t, int64(1), first.Generated)

		again, err := uc.Execute(ctx, []*transaction.Transaction{txn})
		require.NoError(t, err)
		assert.Zero(t, again.Generated)
		assert.Equal(t, int64(1), again.Skipped)

		count, err := featureRepo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(4), count)
	})
}
