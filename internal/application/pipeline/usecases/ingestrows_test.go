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

func TestIngestRows_SkipsRowsMissingRequiredFields(t *testing.T) {
	database := setupTestDB(t)
	log := logger.NewLogger()
	rawRepo := repository.NewRawTransactionRepository(database, log)
	uc := NewIngestRowsUseCase(rawRepo, log)
	ctx := context.Background()

	rows := []*transaction.RawTransaction{
		rawRow("T1", "2024-01-01", "C1", "Widget", "2", "50"),
		rawRow("T2", "", "C2", "Gadget", "1", "30"),
		rawRow("T3", "2024-01-02", "", "Gadget", "1", "30"),
	}

	stored, invalid, err := uc.Execute(ctx, rows)
	require.NoError(t, err)
	assert.Equal(t, int64(2), invalid)
	require.Len(t, stored, 1)
	assert.Equal(t, "C1", stored[0].CustomerID)

	count, err := rawRepo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestIngestRows_AllValidRowsStored(t *testing.T) {
	database := setupTestDB(t)
	log := logger.NewLogger()
	rawRepo := repository.NewRawTransactionRepository(database, log)
	uc := NewIngestRowsUseCase(rawRepo, log)

	rows := []*transaction.RawTransaction{
		rawRow("", "2024-01-01", "C1", "Widget", "2", "50"),
		rawRow("", "2024-01-02", "C2", "Gadget", "1", "30"),
	}

	stored, invalid, err := uc.Execute(context.Background(), rows)
	require.NoError(t, err)
	assert.Zero(t, invalid)
	assert.Len(t, stored, 2)
}
