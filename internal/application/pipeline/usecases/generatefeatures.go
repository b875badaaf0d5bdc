package usecases

import (
	"context"
	"sort"

	"millrace/internal/application/pipeline/dto"
	"millrace/internal/domain/feature"
	"millrace/internal/domain/transaction"
	"millrace/internal/shared/logger"
)

// GenerateFeaturesUseCase derives one feature record per newly-cleaned
// transaction. Features are point-in-time: every aggregate only covers
// canonical rows dated on or before the record's own date, so a record's
// features never change when later data arrives.
type GenerateFeaturesUseCase struct {
	txnRepo     transaction.Repository
	featureRepo feature.Repository
	logger      logger.Interface
}

func NewGenerateFeaturesUseCase(
	txnRepo transaction.Repository,
	featureRepo feature.Repository,
	logger logger.Interface,
) *GenerateFeaturesUseCase {
	return &GenerateFeaturesUseCase{
		txnRepo:     txnRepo,
		featureRepo: featureRepo,
		logger:      logger,
	}
}

// Execute sorts the batch ascending by (date, id) so same-day records are
// processed in insertion order, then computes and stores features for each.
// Transactions whose external id already has a feature record are skipped;
// a failure on one record is logged and skipped without aborting the rest.
func (uc *GenerateFeaturesUseCase) Execute(ctx context.Context, cleaned []*transaction.Transaction) (*dto.FeatureOutcome, error) {
	ordered := make([]*transaction.Transaction, len(cleaned))
	copy(ordered, cleaned)
	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].Date.Equal(ordered[j].Date) {
			return ordered[i].Date.Before(ordered[j].Date)
		}
		return ordered[i].ID < ordered[j].ID
	})

	outcome := &dto.FeatureOutcome{}
	for _, txn := range ordered {
		if txn.ExternalID != nil {
			exists, err := uc.featureRepo.ExistsByExternalID(ctx, *txn.ExternalID)
			if err != nil {
				uc.logger.Errorw("feature existence check failed",
					"external_id", *txn.ExternalID, "error", err)
				outcome.Skipped++
				continue
			}
			if exists {
				outcome.Skipped++
				continue
			}
		}

		record, err := uc.buildRecord(ctx, txn)
		if err != nil {
			uc.logger.Errorw("feature computation failed",
				"transaction_id", txn.ID, "error", err)
			outcome.Skipped++
			continue
		}

		if err := uc.featureRepo.Create(ctx, record); err != nil {
			uc.logger.Errorw("feature record store failed",
				"transaction_id", txn.ID, "error", err)
			outcome.Skipped++
			continue
		}
		outcome.Generated++
	}

	uc.logger.Infow("features generated",
		"generated", outcome.Generated,
		"skipped", outcome.Skipped)
	return outcome, nil
}

func (uc *GenerateFeaturesUseCase) buildRecord(ctx context.Context, txn *transaction.Transaction) (*feature.Record, error) {
	dailyRevenue, err := uc.txnRepo.RevenueOn(ctx, txn.Date)
	if err != nil {
		return nil, err
	}

	lifetimeValue, err := uc.txnRepo.CustomerRevenueThrough(ctx, txn.CustomerID, txn.Date)
	if err != nil {
		return nil, err
	}

	frequency, err := uc.txnRepo.CustomerCountThrough(ctx, txn.CustomerID, txn.Date)
	if err != nil {
		return nil, err
	}

	averageValue, err := uc.txnRepo.CustomerAverageThrough(ctx, txn.CustomerID, txn.Date)
	if err != nil {
		return nil, err
	}

	var daysSinceFirst *int64
	firstDate, err := uc.txnRepo.CustomerFirstDate(ctx, txn.CustomerID)
	if err != nil {
		return nil, err
	}
	if firstDate != nil {
		days := int64(txn.Date.Sub(*firstDate).Hours() / 24)
		daysSinceFirst = &days
	}

	return &feature.Record{
		ExternalID:     txn.ExternalID,
		CustomerID:     txn.CustomerID,
		Date:           txn.Date,
		Total:          txn.Total,
		Quantity:       txn.Quantity,
		Price:          txn.Price,
		DailyRevenue:   dailyRevenue,
		LifetimeValue:  lifetimeValue,
		Frequency:      frequency,
		DaysSinceFirst: daysSinceFirst,
		AverageValue:   averageValue,
		Category:       txn.Category,
		PaymentMethod:  txn.PaymentMethod,
		City:           txn.City,
	}, nil
}
