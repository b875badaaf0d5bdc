package usecases

import (
	"context"
	"fmt"

	"millrace/internal/application/analytics/dto"
	"millrace/internal/domain/feature"
	"millrace/internal/domain/transaction"
	"millrace/internal/shared/logger"
)

// GetDatasetStatsUseCase reports row counts and the stored date span across
// all pipeline stages.
type GetDatasetStatsUseCase struct {
	rawRepo     transaction.RawRepository
	txnRepo     transaction.Repository
	featureRepo feature.Repository
	logger      logger.Interface
}

func NewGetDatasetStatsUseCase(
	rawRepo transaction.RawRepository,
	txnRepo transaction.Repository,
	featureRepo feature.Repository,
	logger logger.Interface,
) *GetDatasetStatsUseCase {
	return &GetDatasetStatsUseCase{
		rawRepo:     rawRepo,
		txnRepo:     txnRepo,
		featureRepo: featureRepo,
		logger:      logger,
	}
}

func (uc *GetDatasetStatsUseCase) Execute(ctx context.Context) (*dto.DatasetStats, error) {
	stats := &dto.DatasetStats{}

	var err error
	if stats.RawRows, err = uc.rawRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count raw rows: %w", err)
	}
	if stats.Transactions, err = uc.txnRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count transactions: %w", err)
	}
	if stats.FeatureRecords, err = uc.featureRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count feature records: %w", err)
	}
	if stats.DistinctCustomers, err = uc.txnRepo.DistinctCustomers(ctx); err != nil {
		return nil, fmt.Errorf("failed to count distinct customers: %w", err)
	}
	if stats.DistinctProducts, err = uc.txnRepo.DistinctProducts(ctx); err != nil {
		return nil, fmt.Errorf("failed to count distinct products: %w", err)
	}

	dates, err := uc.txnRepo.Dates(ctx)
	if err != nil {
		uc.logger.Errorw("failed to load date range", "error", err)
		return nil, fmt.Errorf("failed to load date range: %w", err)
	}
	stats.FirstDate = dates.Min
	stats.LastDate = dates.Max

	return stats, nil
}
