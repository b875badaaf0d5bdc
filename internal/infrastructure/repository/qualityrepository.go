package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"millrace/internal/domain/quality"
	"millrace/internal/infrastructure/persistence/models"
	"millrace/internal/shared/db"
	"millrace/internal/shared/logger"
)

// QualityRepository persists per-batch quality metrics.
type QualityRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

// NewQualityRepository creates a quality metric repository.
func NewQualityRepository(database *gorm.DB, log logger.Interface) quality.Repository {
	return &QualityRepository{
		db:     database,
		logger: log,
	}
}

// Create inserts one batch metric.
func (r *QualityRepository) Create(ctx context.Context, metric *quality.Metric) error {
	model := metricToModel(metric)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create quality metric: %w", err)
	}

	metric.ID = model.ID
	metric.CreatedAt = model.CreatedAt
	return nil
}

// Latest returns the most recently recorded metric, or nil when no batch has
// been processed yet.
func (r *QualityRepository) Latest(ctx context.Context) (*quality.Metric, error) {
	var model models.QualityMetricModel
	err := db.GetTxFromContext(ctx, r.db).Order("id DESC").First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find latest quality metric: %w", err)
	}
	return modelToMetric(&model), nil
}

// Aggregate sums the counters across every recorded batch. The overall
// percentage is recomputed from the summed counts; the average is the mean of
// the stored per-batch percentages.
func (r *QualityRepository) Aggregate(ctx context.Context) (*quality.AggregateReport, error) {
	var row struct {
		TotalBatches    int64
		TotalIngested   int64
		TotalInvalid    int64
		TotalDuplicates int64
		TotalCleaned    int64
		AveragePercent  float64
	}

	err := db.GetTxFromContext(ctx, r.db).Model(&models.QualityMetricModel{}).
		Select("COUNT(*) AS total_batches, " +
			"COALESCE(SUM(ingested), 0) AS total_ingested, " +
			"COALESCE(SUM(invalid), 0) AS total_invalid, " +
			"COALESCE(SUM(duplicates), 0) AS total_duplicates, " +
			"COALESCE(SUM(cleaned), 0) AS total_cleaned, " +
			"COALESCE(AVG(quality_percent), 0) AS average_percent").
		Scan(&row).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate quality metrics: %w", err)
	}

	return &quality.AggregateReport{
		TotalBatches:    row.TotalBatches,
		TotalIngested:   row.TotalIngested,
		TotalInvalid:    row.TotalInvalid,
		TotalDuplicates: row.TotalDuplicates,
		TotalCleaned:    row.TotalCleaned,
		AveragePercent:  quality.Round2(row.AveragePercent),
		OverallPercent:  quality.Percent(row.TotalIngested, row.TotalInvalid, row.TotalDuplicates),
	}, nil
}

func metricToModel(metric *quality.Metric) *models.QualityMetricModel {
	return &models.QualityMetricModel{
		ID:             metric.ID,
		BatchID:        metric.BatchID,
		Ingested:       metric.Ingested,
		Invalid:        metric.Invalid,
		Duplicates:     metric.Duplicates,
		Cleaned:        metric.Cleaned,
		Dropped:        metric.Dropped,
		QualityPercent: metric.QualityPercent,
	}
}

func modelToMetric(model *models.QualityMetricModel) *quality.Metric {
	return &quality.Metric{
		ID:             model.ID,
		BatchID:        model.BatchID,
		Ingested:       model.Ingested,
		Invalid:        model.Invalid,
		Duplicates:     model.Duplicates,
		Cleaned:        model.Cleaned,
		Dropped:        model.Dropped,
		QualityPercent: model.QualityPercent,
		CreatedAt:      model.CreatedAt,
	}
}
