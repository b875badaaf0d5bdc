package usecases

import (
	"context"
	"fmt"

	"millrace/internal/application/pipeline/dto"
	"millrace/internal/shared/id"
	"millrace/internal/shared/logger"
)

// CacheInvalidator flushes cached dashboard reads after a batch commits.
type CacheInvalidator interface {
	Invalidate(ctx context.Context)
}

// ProcessUploadUseCase runs the full pipeline for one upload: parse, ingest,
// clean, aggregate, derive features, record quality.
type ProcessUploadUseCase struct {
	parse         *ParseUploadUseCase
	ingest        *IngestRowsUseCase
	clean         *CleanRowsUseCase
	aggregate     *AggregateTransactionsUseCase
	features      *GenerateFeaturesUseCase
	recordQuality *RecordQualityUseCase
	cache         CacheInvalidator
	logger        logger.Interface
}

func NewProcessUploadUseCase(
	parse *ParseUploadUseCase,
	ingest *IngestRowsUseCase,
	clean *CleanRowsUseCase,
	aggregate *AggregateTransactionsUseCase,
	features *GenerateFeaturesUseCase,
	recordQuality *RecordQualityUseCase,
	cache CacheInvalidator,
	logger logger.Interface,
) *ProcessUploadUseCase {
	return &ProcessUploadUseCase{
		parse:         parse,
		ingest:        ingest,
		clean:         clean,
		aggregate:     aggregate,
		features:      features,
		recordQuality: recordQuality,
		cache:         cache,
		logger:        logger,
	}
}

// Execute processes one uploaded payload end to end and returns the batch
// accounting. Parse and schema failures abort before anything is stored;
// a store failure later in the pipeline aborts the batch but keeps the rows
// already committed.
func (uc *ProcessUploadUseCase) Execute(ctx context.Context, data []byte) (*dto.UploadResult, error) {
	batchID, err := id.NewBatchID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate batch id: %w", err)
	}
	uc.logger.Infow("processing upload", "batch_id", batchID, "bytes", len(data))

	rows, err := uc.parse.Execute(data)
	if err != nil {
		return nil, err
	}

	stored, ingestInvalid, err := uc.ingest.Execute(ctx, rows)
	if err != nil {
		return nil, err
	}
	ingested := int64(len(stored))

	outcome, err := uc.clean.Execute(ctx, stored)
	if err != nil {
		return nil, err
	}
	totalInvalid := ingestInvalid + outcome.Invalid

	aggregated, err := uc.aggregate.Execute(ctx)
	if err != nil {
		return nil, err
	}

	featured, err := uc.features.Execute(ctx, outcome.Cleaned)
	if err != nil {
		return nil, err
	}

	metric, err := uc.recordQuality.Execute(ctx, batchID, ingested, totalInvalid, outcome.Duplicates, outcome.CleanedCount())
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		uc.cache.Invalidate(ctx)
	}

	result := &dto.UploadResult{
		BatchID:           batchID,
		RecordsIngested:   ingested,
		RecordsCleaned:    outcome.CleanedCount(),
		InvalidRows:       totalInvalid,
		DuplicatesSkipped: outcome.Duplicates,
		FeaturesGenerated: featured.Generated,
		DailySummaries:    aggregated.DailySummaries,
		CustomerSummaries: aggregated.CustomerSummaries,
		QualityPercent:    metric.QualityPercent,
	}

	uc.logger.Infow("upload processed",
		"batch_id", batchID,
		"ingested", result.RecordsIngested,
		"cleaned", result.RecordsCleaned,
		"invalid", result.InvalidRows,
		"duplicates", result.DuplicatesSkipped,
		"quality_percent", result.QualityPercent)
	return result, nil
}
