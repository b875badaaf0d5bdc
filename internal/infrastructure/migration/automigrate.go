package migration

import (
	"millrace/internal/infrastructure/persistence/models"
)

func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.RawTransactionModel{},
		&models.TransactionModel{},
		&models.DailySummaryModel{},
		&models.CustomerSummaryModel{},
		&models.FeatureRecordModel{},
		&models.QualityMetricModel{},
	}
}
