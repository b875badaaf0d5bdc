package usecases

import (
	"context"

	"millrace/internal/domain/transaction"
	"millrace/internal/shared/errors"
	"millrace/internal/shared/logger"
)

// IngestRowsUseCase persists parsed rows verbatim, so the original input
// survives for auditing regardless of what the cleaner later rejects. Rows
// missing date, customer id, or product are not storable at all; they are
// counted invalid and skipped.
type IngestRowsUseCase struct {
	rawRepo transaction.RawRepository
	logger  logger.Interface
}

func NewIngestRowsUseCase(rawRepo transaction.RawRepository, logger logger.Interface) *IngestRowsUseCase {
	return &IngestRowsUseCase{
		rawRepo: rawRepo,
		logger:  logger,
	}
}

// Execute stores rows in input order and returns the stored rows along with
// the count of rows rejected for missing required fields. A store failure
// aborts the batch; rows already written are retained.
func (uc *IngestRowsUseCase) Execute(ctx context.Context, rows []*transaction.RawTransaction) ([]*transaction.RawTransaction, int64, error) {
	var stored []*transaction.RawTransaction
	var invalid int64
	for i, row := range rows {
		if !row.HasRequiredFields() {
			uc.logger.Warnw("row missing required fields, skipped", "row", i)
			invalid++
			continue
		}
		if err := uc.rawRepo.Create(ctx, row); err != nil {
			uc.logger.Errorw("raw ingestion failed", "row", i, "error", err)
			return nil, invalid, errors.NewStoreError("failed to ingest raw row", err)
		}
		stored = append(stored, row)
	}

	uc.logger.Infow("raw rows ingested", "count", len(stored), "invalid", invalid)
	return stored, invalid, nil
}
