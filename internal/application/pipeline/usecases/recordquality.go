package usecases

import (
	"context"
	"fmt"

	"millrace/internal/domain/quality"
	"millrace/internal/shared/logger"
)

// RecordQualityUseCase writes one batch's quality accounting.
type RecordQualityUseCase struct {
	qualityRepo quality.Repository
	logger      logger.Interface
}

func NewRecordQualityUseCase(qualityRepo quality.Repository, logger logger.Interface) *RecordQualityUseCase {
	return &RecordQualityUseCase{
		qualityRepo: qualityRepo,
		logger:      logger,
	}
}

func (uc *RecordQualityUseCase) Execute(ctx context.Context, batchID string, ingested, invalid, duplicates, cleaned int64) (*quality.Metric, error) {
	metric := quality.NewMetric(batchID, ingested, invalid, duplicates, cleaned)

	if err := uc.qualityRepo.Create(ctx, metric); err != nil {
		uc.logger.Errorw("failed to record quality metric", "batch_id", batchID, "error", err)
		return nil, fmt.Errorf("failed to record quality metric: %w", err)
	}

	uc.logger.Infow("quality metric recorded",
		"batch_id", batchID,
		"quality_percent", metric.QualityPercent)
	return metric, nil
}
