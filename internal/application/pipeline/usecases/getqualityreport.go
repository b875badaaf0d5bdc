package usecases

import (
	"context"
	"fmt"

	"millrace/internal/application/pipeline/dto"
	"millrace/internal/domain/quality"
	"millrace/internal/shared/logger"
)

// GetQualityReportUseCase returns the most recent batch's quality metric.
type GetQualityReportUseCase struct {
	qualityRepo quality.Repository
	logger      logger.Interface
}

func NewGetQualityReportUseCase(qualityRepo quality.Repository, logger logger.Interface) *GetQualityReportUseCase {
	return &GetQualityReportUseCase{
		qualityRepo: qualityRepo,
		logger:      logger,
	}
}

func (uc *GetQualityReportUseCase) Execute(ctx context.Context) (*dto.QualityReport, error) {
	metric, err := uc.qualityRepo.Latest(ctx)
	if err != nil {
		uc.logger.Errorw("failed to load latest quality metric", "error", err)
		return nil, fmt.Errorf("failed to load latest quality metric: %w", err)
	}
	if metric == nil {
		// No batch processed yet reads as an all-zero metric, not an error.
		return &dto.QualityReport{}, nil
	}

	return &dto.QualityReport{
		BatchID:        metric.BatchID,
		Ingested:       metric.Ingested,
		Invalid:        metric.Invalid,
		Duplicates:     metric.Duplicates,
		Cleaned:        metric.Cleaned,
		Dropped:        metric.Dropped,
		QualityPercent: metric.QualityPercent,
		CreatedAt:      metric.CreatedAt,
	}, nil
}

// GetAggregateQualityUseCase sums quality accounting across every batch.
type GetAggregateQualityUseCase struct {
	qualityRepo quality.Repository
	logger      logger.Interface
}

func NewGetAggregateQualityUseCase(qualityRepo quality.Repository, logger logger.Interface) *GetAggregateQualityUseCase {
	return &GetAggregateQualityUseCase{
		qualityRepo: qualityRepo,
		logger:      logger,
	}
}

func (uc *GetAggregateQualityUseCase) Execute(ctx context.Context) (*dto.AggregateQualityReport, error) {
	report, err := uc.qualityRepo.Aggregate(ctx)
	if err != nil {
		uc.logger.Errorw("failed to aggregate quality metrics", "error", err)
		return nil, fmt.Errorf("failed to aggregate quality metrics: %w", err)
	}

	return &dto.AggregateQualityReport{
		TotalBatches:    report.TotalBatches,
		TotalIngested:   report.TotalIngested,
		TotalInvalid:    report.TotalInvalid,
		TotalDuplicates: report.TotalDuplicates,
		TotalCleaned:    report.TotalCleaned,
		AveragePercent:  report.AveragePercent,
		OverallPercent:  report.OverallPercent,
	}, nil
}
