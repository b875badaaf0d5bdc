package usecases

import (
	"context"
	"fmt"

	"millrace/internal/application/analytics/dto"
	"millrace/internal/domain/analytics"
	"millrace/internal/shared/constants"
	"millrace/internal/shared/logger"
)

const cacheKeyDailyRevenue = "daily_revenue"

// GetDailyRevenueUseCase returns the most recent dates' revenue from the
// daily summary table.
type GetDailyRevenueUseCase struct {
	summaryRepo analytics.Repository
	cache       DashboardCache
	logger      logger.Interface
}

func NewGetDailyRevenueUseCase(summaryRepo analytics.Repository, cache DashboardCache, logger logger.Interface) *GetDailyRevenueUseCase {
	return &GetDailyRevenueUseCase{
		summaryRepo: summaryRepo,
		cache:       cache,
		logger:      logger,
	}
}

func (uc *GetDailyRevenueUseCase) Execute(ctx context.Context, days int) ([]dto.DailyRevenuePoint, error) {
	if days <= 0 {
		days = constants.DefaultDailyRevenueDays
	}

	cacheKey := fmt.Sprintf("%s:%d", cacheKeyDailyRevenue, days)
	if uc.cache != nil {
		var cached []dto.DailyRevenuePoint
		if uc.cache.Get(ctx, cacheKey, &cached) {
			return cached, nil
		}
	}

	summaries, err := uc.summaryRepo.ListDaily(ctx, days)
	if err != nil {
		uc.logger.Errorw("failed to list daily summaries", "error", err)
		return nil, fmt.Errorf("failed to list daily summaries: %w", err)
	}

	points := make([]dto.DailyRevenuePoint, len(summaries))
	for i, summary := range summaries {
		points[i] = dto.DailyRevenuePoint{
			Date:    summary.Date,
			Revenue: summary.TotalRevenue,
		}
	}

	if uc.cache != nil {
		uc.cache.Set(ctx, cacheKey, points)
	}
	return points, nil
}

// GetDailySalesUseCase returns order and quantity volume per date.
type GetDailySalesUseCase struct {
	summaryRepo analytics.Repository
	logger      logger.Interface
}

func NewGetDailySalesUseCase(summaryRepo analytics.Repository, logger logger.Interface) *GetDailySalesUseCase {
	return &GetDailySalesUseCase{
		summaryRepo: summaryRepo,
		logger:      logger,
	}
}

func (uc *GetDailySalesUseCase) Execute(ctx context.Context, days int) ([]dto.DailySalesPoint, error) {
	if days <= 0 {
		days = constants.DefaultDailyRevenueDays
	}

	summaries, err := uc.summaryRepo.ListDaily(ctx, days)
	if err != nil {
		uc.logger.Errorw("failed to list daily summaries", "error", err)
		return nil, fmt.Errorf("failed to list daily summaries: %w", err)
	}

	points := make([]dto.DailySalesPoint, len(summaries))
	for i, summary := range summaries {
		points[i] = dto.DailySalesPoint{
			Date:     summary.Date,
			Orders:   summary.TotalOrders,
			Quantity: summary.TotalQuantity,
		}
	}
	return points, nil
}
