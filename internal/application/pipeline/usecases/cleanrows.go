package usecases

import (
	"context"
	stderrors "errors"

	"millrace/internal/application/pipeline/dto"
	"millrace/internal/domain/transaction"
	"millrace/internal/shared/errors"
	"millrace/internal/shared/logger"
)

// CleanRowsUseCase validates, converts, and deduplicates raw rows into
// canonical transactions. Every row lands in exactly one bucket: cleaned,
// invalid, or duplicate.
type CleanRowsUseCase struct {
	txnRepo transaction.Repository
	logger  logger.Interface
}

func NewCleanRowsUseCase(txnRepo transaction.Repository, logger logger.Interface) *CleanRowsUseCase {
	return &CleanRowsUseCase{
		txnRepo: txnRepo,
		logger:  logger,
	}
}

// Execute processes rows in input order. Deduplication is two-tier: rows with
// an external id are checked against ids seen earlier in this batch and then
// against the store; keyless rows fall back to the composite
// (date, customer, product, quantity, price) key. Each insert runs on its own
// so one bad row never rolls back its batch; a uniqueness violation raced in
// by a concurrent upload is counted as a duplicate, not a failure.
func (uc *CleanRowsUseCase) Execute(ctx context.Context, rows []*transaction.RawTransaction) (*dto.CleanOutcome, error) {
	outcome := &dto.CleanOutcome{}
	seenIDs := make(map[string]bool)
	seenKeys := make(map[transaction.NaturalKey]bool)

	for i, raw := range rows {
		txn, err := transaction.NewFromRaw(raw)
		if err != nil {
			var vErr *transaction.ValidationError
			if stderrors.As(err, &vErr) {
				uc.logger.Debugw("row rejected",
					"row", i,
					"field", vErr.Field,
					"reason", vErr.Reason)
				outcome.Invalid++
				continue
			}
			return nil, errors.NewStoreError("failed to convert row", err)
		}

		isDup, err := uc.isDuplicate(ctx, txn, seenIDs, seenKeys)
		if err != nil {
			return nil, err
		}
		if isDup {
			outcome.Duplicates++
			continue
		}

		if err := uc.txnRepo.Create(ctx, txn); err != nil {
			if errors.IsDuplicateError(err) {
				// Lost a race with a concurrent batch.
				outcome.Duplicates++
				continue
			}
			uc.logger.Errorw("failed to store cleaned row", "row", i, "error", err)
			return nil, errors.NewStoreError("failed to store cleaned row", err)
		}
		outcome.Cleaned = append(outcome.Cleaned, txn)
	}

	uc.logger.Infow("batch cleaned",
		"cleaned", outcome.CleanedCount(),
		"invalid", outcome.Invalid,
		"duplicates", outcome.Duplicates)
	return outcome, nil
}

func (uc *CleanRowsUseCase) isDuplicate(
	ctx context.Context,
	txn *transaction.Transaction,
	seenIDs map[string]bool,
	seenKeys map[transaction.NaturalKey]bool,
) (bool, error) {
	if txn.ExternalID != nil {
		id := *txn.ExternalID
		if seenIDs[id] {
			return true, nil
		}
		seenIDs[id] = true

		exists, err := uc.txnRepo.ExistsByExternalID(ctx, id)
		if err != nil {
			return false, errors.NewStoreError("failed to check duplicate id", err)
		}
		return exists, nil
	}

	key := txn.Key()
	if seenKeys[key] {
		return true, nil
	}
	seenKeys[key] = true

	exists, err := uc.txnRepo.ExistsByKey(ctx, key)
	if err != nil {
		return false, errors.NewStoreError("failed to check duplicate key", err)
	}
	return exists, nil
}
