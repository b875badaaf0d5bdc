package models

import "time"

// FeatureRecordModel persists per-transaction derived features.
type FeatureRecordModel struct {
	ID         uint      `gorm:"primarykey"`
	ExternalID *string   `gorm:"size:64;index:idx_feature_external_id"`
	CustomerID string    `gorm:"size:64;not null;index:idx_feature_customer_date,priority:1"`
	Date       time.Time `gorm:"column:transaction_date;type:date;not null;index:idx_feature_customer_date,priority:2;index:idx_feature_date"`

	TotalAmount float64 `gorm:"not null"`
	Quantity    float64 `gorm:"not null"`
	Price       float64 `gorm:"not null"`

	DailyRevenue   float64 `gorm:"not null"`
	LifetimeValue  float64 `gorm:"not null"`
	Frequency      int64   `gorm:"not null"`
	DaysSinceFirst *int64
	AverageValue   float64 `gorm:"not null"`

	Category      *string `gorm:"size:128"`
	PaymentMethod *string `gorm:"size:64"`
	City          *string `gorm:"size:128"`
	CreatedAt     time.Time
}

// TableName specifies the table name for GORM
func (FeatureRecordModel) TableName() string {
	return "feature_records"
}
