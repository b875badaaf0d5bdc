package usecases

import (
	"context"
	"fmt"

	"millrace/internal/application/analytics/dto"
	"millrace/internal/domain/transaction"
	"millrace/internal/shared/logger"
)

// DashboardCache is the optional read cache; a nil implementation is a no-op.
type DashboardCache interface {
	Get(ctx context.Context, key string, dest interface{}) bool
	Set(ctx context.Context, key string, value interface{})
}

const cacheKeyKPIs = "kpis"

// GetKPIsUseCase computes the headline dashboard numbers from the canonical
// transaction set.
type GetKPIsUseCase struct {
	txnRepo transaction.Repository
	cache   DashboardCache
	logger  logger.Interface
}

func NewGetKPIsUseCase(txnRepo transaction.Repository, cache DashboardCache, logger logger.Interface) *GetKPIsUseCase {
	return &GetKPIsUseCase{
		txnRepo: txnRepo,
		cache:   cache,
		logger:  logger,
	}
}

func (uc *GetKPIsUseCase) Execute(ctx context.Context) (*dto.KPIs, error) {
	if uc.cache != nil {
		var cached dto.KPIs
		if uc.cache.Get(ctx, cacheKeyKPIs, &cached) {
			return &cached, nil
		}
	}

	totals, err := uc.txnRepo.Totals(ctx)
	if err != nil {
		uc.logger.Errorw("failed to compute totals", "error", err)
		return nil, fmt.Errorf("failed to compute totals: %w", err)
	}

	kpis := &dto.KPIs{
		TotalRevenue:   totals.Revenue,
		TotalOrders:    totals.Orders,
		TotalCustomers: totals.Customers,
	}
	if totals.Orders > 0 {
		kpis.AverageOrderValue = totals.Revenue / float64(totals.Orders)
	}

	if uc.cache != nil {
		uc.cache.Set(ctx, cacheKeyKPIs, kpis)
	}
	return kpis, nil
}
