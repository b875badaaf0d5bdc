package usecases

import (
	"context"
	"fmt"

	"millrace/internal/application/pipeline/dto"
	"millrace/internal/domain/analytics"
	"millrace/internal/domain/transaction"
	"millrace/internal/shared/db"
	"millrace/internal/shared/logger"
)

// AggregateTransactionsUseCase recomputes the daily and customer summary
// tables from the full canonical set. Recomputing from scratch keeps the
// summaries correct under any interleaving of concurrent uploads; the last
// recompute to commit reflects all rows committed before it.
type AggregateTransactionsUseCase struct {
	txnRepo     transaction.Repository
	summaryRepo analytics.Repository
	txManager   *db.TransactionManager
	logger      logger.Interface
}

func NewAggregateTransactionsUseCase(
	txnRepo transaction.Repository,
	summaryRepo analytics.Repository,
	txManager *db.TransactionManager,
	logger logger.Interface,
) *AggregateTransactionsUseCase {
	return &AggregateTransactionsUseCase{
		txnRepo:     txnRepo,
		summaryRepo: summaryRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// Execute runs both recomputes inside one transaction so readers never see a
// half-updated dashboard.
func (uc *AggregateTransactionsUseCase) Execute(ctx context.Context) (*dto.AggregateOutcome, error) {
	outcome := &dto.AggregateOutcome{}

	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		daily, err := uc.txnRepo.GroupByDate(txCtx)
		if err != nil {
			return fmt.Errorf("failed to group by date: %w", err)
		}
		for _, group := range daily {
			summary := &analytics.DailySummary{
				Date:          group.Date,
				TotalRevenue:  group.Revenue,
				TotalOrders:   group.Orders,
				TotalQuantity: group.Quantity,
			}
			if err := uc.summaryRepo.UpsertDaily(txCtx, summary); err != nil {
				return fmt.Errorf("failed to upsert daily summary: %w", err)
			}
		}
		outcome.DailySummaries = int64(len(daily))

		customers, err := uc.txnRepo.GroupByCustomer(txCtx)
		if err != nil {
			return fmt.Errorf("failed to group by customer: %w", err)
		}
		for _, group := range customers {
			average := 0.0
			if group.Orders > 0 {
				average = group.Revenue / float64(group.Orders)
			}
			lastDate := group.LastDate
			summary := &analytics.CustomerSummary{
				CustomerID:          group.CustomerID,
				TotalRevenue:        group.Revenue,
				TotalOrders:         group.Orders,
				AverageOrderValue:   average,
				LastTransactionDate: &lastDate,
			}
			if err := uc.summaryRepo.UpsertCustomer(txCtx, summary); err != nil {
				return fmt.Errorf("failed to upsert customer summary: %w", err)
			}
		}
		outcome.CustomerSummaries = int64(len(customers))

		return nil
	})
	if err != nil {
		uc.logger.Errorw("aggregation failed", "error", err)
		return nil, err
	}

	uc.logger.Infow("summaries recomputed",
		"daily", outcome.DailySummaries,
		"customers", outcome.CustomerSummaries)
	return outcome, nil
}
