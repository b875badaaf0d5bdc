package usecases

import (
	"context"
	"fmt"

	"millrace/internal/application/analytics/dto"
	"millrace/internal/domain/analytics"
	"millrace/internal/shared/constants"
	"millrace/internal/shared/logger"
)

// GetTopCustomersUseCase returns the revenue leaderboard.
type GetTopCustomersUseCase struct {
	summaryRepo analytics.Repository
	logger      logger.Interface
}

func NewGetTopCustomersUseCase(summaryRepo analytics.Repository, logger logger.Interface) *GetTopCustomersUseCase {
	return &GetTopCustomersUseCase{
		summaryRepo: summaryRepo,
		logger:      logger,
	}
}

func (uc *GetTopCustomersUseCase) Execute(ctx context.Context, limit int) ([]dto.TopCustomer, error) {
	if limit <= 0 {
		limit = constants.DefaultTopCustomers
	}

	summaries, err := uc.summaryRepo.ListCustomersByRevenue(ctx, limit)
	if err != nil {
		uc.logger.Errorw("failed to list top customers", "error", err)
		return nil, fmt.Errorf("failed to list top customers: %w", err)
	}

	customers := make([]dto.TopCustomer, len(summaries))
	for i, summary := range summaries {
		customers[i] = dto.TopCustomer{
			CustomerID:        summary.CustomerID,
			TotalRevenue:      summary.TotalRevenue,
			TotalOrders:       summary.TotalOrders,
			AverageOrderValue: summary.AverageOrderValue,
		}
	}
	return customers, nil
}

// ListCustomerSummariesUseCase returns every customer's aggregate row ordered
// by revenue.
type ListCustomerSummariesUseCase struct {
	summaryRepo analytics.Repository
	logger      logger.Interface
}

func NewListCustomerSummariesUseCase(summaryRepo analytics.Repository, logger logger.Interface) *ListCustomerSummariesUseCase {
	return &ListCustomerSummariesUseCase{
		summaryRepo: summaryRepo,
		logger:      logger,
	}
}

func (uc *ListCustomerSummariesUseCase) Execute(ctx context.Context) ([]dto.CustomerSummaryItem, error) {
	summaries, err := uc.summaryRepo.ListCustomersByRevenue(ctx, 0)
	if err != nil {
		uc.logger.Errorw("failed to list customer summaries", "error", err)
		return nil, fmt.Errorf("failed to list customer summaries: %w", err)
	}

	items := make([]dto.CustomerSummaryItem, len(summaries))
	for i, summary := range summaries {
		items[i] = dto.CustomerSummaryItem{
			CustomerID:          summary.CustomerID,
			TotalRevenue:        summary.TotalRevenue,
			TotalOrders:         summary.TotalOrders,
			AverageOrderValue:   summary.AverageOrderValue,
			LastTransactionDate: summary.LastTransactionDate,
		}
	}
	return items, nil
}
