package handlers

import (
	"github.com/gin-gonic/gin"

	"millrace/internal/application/pipeline/usecases"
	"millrace/internal/shared/logger"
	"millrace/internal/shared/utils"
)

// QualityHandler serves the data-quality read API.
type QualityHandler struct {
	getQualityReport    *usecases.GetQualityReportUseCase
	getAggregateQuality *usecases.GetAggregateQualityUseCase
	logger              logger.Interface
}

// NewQualityHandler creates a new QualityHandler
func NewQualityHandler(
	getQualityReport *usecases.GetQualityReportUseCase,
	getAggregateQuality *usecases.GetAggregateQualityUseCase,
	logger logger.Interface,
) *QualityHandler {
	return &QualityHandler{
		getQualityReport:    getQualityReport,
		getAggregateQuality: getAggregateQuality,
		logger:              logger,
	}
}

// GetLatest handles GET /api/analytics/data-quality
func (h *QualityHandler) GetLatest(c *gin.Context) {
	result, err := h.getQualityReport.Execute(c.Request.Context())
	if err != nil {
		h.logger.Errorw("failed to get quality report", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.OKResponse(c, result)
}

// GetAggregate handles GET /api/analytics/data-quality/aggregate
func (h *QualityHandler) GetAggregate(c *gin.Context) {
	result, err := h.getAggregateQuality.Execute(c.Request.Context())
	if err != nil {
		h.logger.Errorw("failed to get aggregate quality", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.OKResponse(c, result)
}
