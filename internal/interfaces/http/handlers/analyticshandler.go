package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"millrace/internal/application/analytics/usecases"
	"millrace/internal/shared/logger"
	"millrace/internal/shared/utils"
)

// AnalyticsHandler serves the dashboard read API.
type AnalyticsHandler struct {
	getKPIs               *usecases.GetKPIsUseCase
	getDatasetStats       *usecases.GetDatasetStatsUseCase
	getDailyRevenue       *usecases.GetDailyRevenueUseCase
	getDailySales         *usecases.GetDailySalesUseCase
	getTopCustomers       *usecases.GetTopCustomersUseCase
	listCustomerSummaries *usecases.ListCustomerSummariesUseCase
	logger                logger.Interface
}

// NewAnalyticsHandler creates a new AnalyticsHandler
func NewAnalyticsHandler(
	getKPIs *usecases.GetKPIsUseCase,
	getDatasetStats *usecases.GetDatasetStatsUseCase,
	getDailyRevenue *usecases.GetDailyRevenueUseCase,
	getDailySales *usecases.GetDailySalesUseCase,
	getTopCustomers *usecases.GetTopCustomersUseCase,
	listCustomerSummaries *usecases.ListCustomerSummariesUseCase,
	logger logger.Interface,
) *AnalyticsHandler {
	return &AnalyticsHandler{
		getKPIs:               getKPIs,
		getDatasetStats:       getDatasetStats,
		getDailyRevenue:       getDailyRevenue,
		getDailySales:         getDailySales,
		getTopCustomers:       getTopCustomers,
		listCustomerSummaries: listCustomerSummaries,
		logger:                logger,
	}
}

// GetKPIs handles GET /api/analytics/kpis
func (h *AnalyticsHandler) GetKPIs(c *gin.Context) {
	result, err := h.getKPIs.Execute(c.Request.Context())
	if err != nil {
		h.logger.Errorw("failed to get KPIs", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.OKResponse(c, result)
}

// GetDatasetStats handles GET /api/analytics/dataset-stats
func (h *AnalyticsHandler) GetDatasetStats(c *gin.Context) {
	result, err := h.getDatasetStats.Execute(c.Request.Context())
	if err != nil {
		h.logger.Errorw("failed to get dataset stats", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.OKResponse(c, result)
}

// GetDailyRevenue handles GET /api/analytics/daily-revenue
func (h *AnalyticsHandler) GetDailyRevenue(c *gin.Context) {
	result, err := h.getDailyRevenue.Execute(c.Request.Context(), intQuery(c, "days"))
	if err != nil {
		h.logger.Errorw("failed to get daily revenue", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.OKResponse(c, result)
}

// GetDailySales handles GET /api/analytics/daily-sales
func (h *AnalyticsHandler) GetDailySales(c *gin.Context) {
	result, err := h.getDailySales.Execute(c.Request.Context(), intQuery(c, "days"))
	if err != nil {
		h.logger.Errorw("failed to get daily sales", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.OKResponse(c, result)
}

// GetTopCustomers handles GET /api/analytics/top-customers
func (h *AnalyticsHandler) GetTopCustomers(c *gin.Context) {
	result, err := h.getTopCustomers.Execute(c.Request.Context(), intQuery(c, "limit"))
	if err != nil {
		h.logger.Errorw("failed to get top customers", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.OKResponse(c, result)
}

// ListCustomerSummaries handles GET /api/analytics/customer-summaries
func (h *AnalyticsHandler) ListCustomerSummaries(c *gin.Context) {
	result, err := h.listCustomerSummaries.Execute(c.Request.Context())
	if err != nil {
		h.logger.Errorw("failed to list customer summaries", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.OKResponse(c, result)
}

// intQuery reads a non-negative integer query parameter, zero when absent or
// malformed so use cases fall back to their defaults.
func intQuery(c *gin.Context, name string) int {
	raw := c.Query(name)
	if raw == "" {
		return 0
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return 0
	}
	return value
}

// Health handles GET /health
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
