package models

import "time"

// QualityMetricModel stores one batch's data-quality accounting. Rows are
// written once per upload and never updated.
type QualityMetricModel struct {
	ID             uint    `gorm:"primarykey"`
	BatchID        string  `gorm:"size:64;not null;index:idx_quality_batch_id"`
	Ingested       int64   `gorm:"not null;default:0"`
	Invalid        int64   `gorm:"not null;default:0"`
	Duplicates     int64   `gorm:"not null;default:0"`
	Cleaned        int64   `gorm:"not null;default:0"`
	Dropped        int64   `gorm:"not null;default:0"`
	QualityPercent float64 `gorm:"not null;default:0"`
	CreatedAt      time.Time
}

// TableName specifies the table name for GORM
func (QualityMetricModel) TableName() string {
	return "quality_metrics"
}
