package usecases

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
	"millrace/internal/infrastructure/repository"
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

func rawRow(externalID, day, customer, product, qty, price string) *transaction.RawTransaction {
	row := &transaction.RawTransaction{
		Date:       day,
		CustomerID: customer,
		Product:    product,
		Quantity:   &qty,
		Price:      &price,
	}
	if externalID != "" {
		row.ExternalID = &externalID
	}
	return row
}

func TestCleanRows_Buckets(t *testing.T) {
	db := setupTestDB(t)
	txnRepo := repository.NewTransactionRepository(db, logger.NewLogger())
	uc := NewCleanRowsUseCase(txnRepo, logger.NewLogger())
	ctx := context.Background()

	t.Run("every row lands in exactly one bucket", func(t *testing.T) {
		rows := []*transaction.RawTransaction{
			rawRow("T1", "2024-01-01", "C1", "Widget", "2", "50"),
			rawRow("T2", "invalid_date", "C1", "Widget", "1", "10"),
			rawRow("T1", "2024-01-01", "C1", "Widget", "2", "50"),
			rawRow("T3", "2024-01-02", "", "Widget", "1", "10"),
			rawRow("T4", "2024-01-02", "C2", "Gadget", "abc", "10"),
		}

		outcome, err := uc.Execute(ctx, rows)
		require.NoError(t, err)
		assert.Equal(t, int64(1), outcome.CleanedCount())
		assert.Equal(t, int64(3), outcome.Invalid)
		assert.Equal(t, int64(1), outcome.Duplicates)
		assert.Equal(t, int64(len(rows)), outcome.CleanedCount()+outcome.Invalid+outcome.Duplicates)
	})
}

func TestCleanRows_Dedup(t *testing.T) {
	db := setupTestDB(t)
	txnRepo := repository.NewTransactionRepository(db, logger.NewLogger())
	uc := NewCleanRowsUseCase(txnRepo, logger.NewLogger())
	ctx := context.Background()

	t.Run("store duplicate by external id", func(t *testing.T) {
		first, err := uc.Execute(ctx, []*transaction.RawTransaction{
			rawRow("T1", "2024-01-01", "C1", "Widget", "2", "50"),
		})
		require.NoError(t, err)
		require.Equal(t, int64(1), first.CleanedCount())

		// Same external id in a later batch, different payload.
		second, err := uc.Execute(ctx, []*transaction.RawTransaction{
			rawRow("T1", "2024-02-01", "C9", "Other", "1", "1"),
		})
		require.NoError(t, err)
		assert.Equal(t, int64(0), second.CleanedCount())
		assert.Equal(t, int64(1), second.Duplicates)
	})

	t.Run("composite key dedup for keyless rows", func(t *testing.T) {
		first, err := uc.Execute(ctx, []*transaction.RawTransaction{
			rawRow("", "2024-03-01", "C5", "Gadget", "1", "9.99"),
		})
		require.NoError(t, err)
		require.Equal(t, int64(1), first.CleanedCount())

		second, err := uc.Execute(ctx, []*transaction.RawTransaction{
			rawRow("", "2024-03-01", "C5", "Gadget", "1", "9.99"),
			rawRow("", "2024-03-01", "C5", "Gadget", "2", "9.99"),
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), second.CleanedCount())
		assert.Equal(t, int64(1), second.Duplicates)
	})

	t.Run("in-batch keyless duplicate", func(t *testing.T) {
		outcome, err := uc.Execute(ctx, []*transaction.RawTransaction{
			rawRow("", "2024-04-01", "C6", "Widget", "1", "5"),
			rawRow("", "2024-04-01", "C6", "Widget", "1", "5"),
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), outcome.CleanedCount())
		assert.Equal(t, int64(1), outcome.Duplicates)
	})
}

func TestCleanRows_CleaningSemantics(t *testing.T) {
	db := setupTestDB(t)
	txnRepo := repository.NewTransactionRepository(db, logger.NewLogger())
	uc := NewCleanRowsUseCase(txnRepo, logger.NewLogger())
	ctx := context.Background()

	t.Run("currency formatting and negative clamp", func(t *testing.T) {
		outcome, err := uc.Execute(ctx, []*transaction.RawTransaction{
			rawRow("T10", "2024-01-01", "C1", "Widget", "2", "$1,200.50"),
			rawRow("T11", "01/15/2024", "C1", "Widget", "-3", "10"),
		})
		require.NoError(t, err)
		require.Equal(t, int64(2), outcome.CleanedCount())

		assert.InDelta(t, 2401.0, outcome.Cleaned[0].Total, 1e-9)
		assert.Zero(t, outcome.Cleaned[1].Quantity)
		assert.Zero(t, outcome.Cleaned[1].Total)
		assert.True(t, outcome.Cleaned[1].Date.Equal(date("2024-01-15")))
	})
}
