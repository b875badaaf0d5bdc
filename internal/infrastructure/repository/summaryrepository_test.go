package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"millrace/internal/domain/analytics"
	"millrace/internal/domain/quality"
	"millrace/internal/shared/logger"
)

func TestSummaryRepository_UpsertDaily(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSummaryRepository(db, logger.NewLogger())
	ctx := context.Background()

	day := date("2024-01-01")

	require.NoError(t, repo.UpsertDaily(ctx, &analytics.DailySummary{
		Date:          day,
		TotalRevenue:  100,
		TotalOrders:   2,
		TotalQuantity: 5,
	}))

	// Second upsert for the same date replaces, not duplicates.
	require.NoError(t, repo.UpsertDaily(ctx, &analytics.DailySummary{
		Date:          day,
		TotalRevenue:  250,
		TotalOrders:   3,
		TotalQuantity: 8,
	}))

	rows, err := repo.ListDaily(ctx, 0)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.InDelta(t, 250.0, rows[0].TotalRevenue, 1e-9)
	assert.Equal(t, int64(3), rows[0].TotalOrders)
}

func TestSummaryRepository_UpsertCustomer(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSummaryRepository(db, logger.NewLogger())
	ctx := context.Background()

	last := date("2024-01-05")
	require.NoError(t, repo.UpsertCustomer(ctx, &analytics.CustomerSummary{
		CustomerID:          "C1",
		TotalRevenue:        100,
		TotalOrders:         1,
		AverageOrderValue:   100,
		LastTransactionDate: &last,
	}))

	newLast := date("2024-01-09")
	require.NoError(t, repo.UpsertCustomer(ctx, &analytics.CustomerSummary{
		CustomerID:          "C1",
		TotalRevenue:        180,
		TotalOrders:         2,
		AverageOrderValue:   90,
		LastTransactionDate: &newLast,
	}))

	rows, err := repo.ListCustomersByRevenue(ctx, 0)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.InDelta(t, 180.0, rows[0].TotalRevenue, 1e-9)
	assert.Equal(t, int64(2), rows[0].TotalOrders)
	require.NotNil(t, rows[0].LastTransactionDate)
	assert.True(t, rows[0].LastTransactionDate.Equal(newLast))
}

func TestSummaryRepository_ListOrderingAndLimit(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSummaryRepository(db, logger.NewLogger())
	ctx := context.Background()

	for _, c := range []struct {
		id      string
		revenue float64
	}{
		{"C1", 50}, {"C2", 500}, {"C3", 200},
	} {
		require.NoError(t, repo.UpsertCustomer(ctx, &analytics.CustomerSummary{
			CustomerID:   c.id,
			TotalRevenue: c.revenue,
			TotalOrders:  1,
		}))
	}

	rows, err := repo.ListCustomersByRevenue(ctx, 2)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "C2", rows[0].CustomerID)
	assert.Equal(t, "C3", rows[1].CustomerID)
}

func TestQualityRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewQualityRepository(db, logger.NewLogger())
	ctx := context.Background()

	t.Run("latest is nil when empty", func(t *testing.T) {
		latest, err := repo.Latest(ctx)
		require.NoError(t, err)
		assert.Nil(t, latest)
	})

	t.Run("aggregate is zero when empty", func(t *testing.T) {
		report, err := repo.Aggregate(ctx)
		require.NoError(t, err)
		assert.Zero(t, report.TotalBatches)
		assert.Zero(t, report.OverallPercent)
	})

	require.NoError(t, repo.Create(ctx, quality.NewMetric("batch_a", 10, 1, 1, 8)))
	require.NoError(t, repo.Create(ctx, quality.NewMetric("batch_b", 4, 2, 0, 2)))

	t.Run("latest returns most recent batch", func(t *testing.T) {
		latest, err := repo.Latest(ctx)
		require.NoError(t, err)
		require.NotNil(t, latest)
		assert.Equal(t, "batch_b", latest.BatchID)
		assert.InDelta(t, 50.0, latest.QualityPercent, 1e-9)
	})

	t.Run("aggregate sums counts and averages percentages", func(t *testing.T) {
		report, err := repo.Aggregate(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), report.TotalBatches)
		assert.Equal(t, int64(14), report.TotalIngested)
		assert.Equal(t, int64(3), report.TotalInvalid)
		assert.Equal(t, int64(1), report.TotalDuplicates)
		assert.Equal(t, int64(10), report.TotalCleaned)
		// overall: (14-3-1)/14 = 71.43; average: (80+50)/2 = 65
		assert.InDelta(t, 71.43, report.OverallPercent, 1e-9)
		assert.InDelta(t, 65.0, report.AveragePercent, 1e-9)
	})
}
