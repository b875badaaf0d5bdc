package models

import "time"

// DailySummaryModel is the per-date aggregate table; one row per distinct date.
type DailySummaryModel struct {
	ID            uint      `gorm:"primarykey"`
	Date          time.Time `gorm:"type:date;uniqueIndex:uq_daily_summaries_date;not null"`
	TotalRevenue  float64   `gorm:"not null;default:0"`
	TotalOrders   int64     `gorm:"not null;default:0"`
	TotalQuantity float64   `gorm:"not null;default:0"`
	UpdatedAt     time.Time
}

// TableName specifies the table name for GORM
func (DailySummaryModel) TableName() string {
	return "daily_summaries"
}

// CustomerSummaryModel is the per-customer aggregate table.
type CustomerSummaryModel struct {
	ID                  uint       `gorm:"primarykey"`
	CustomerID          string     `gorm:"size:64;uniqueIndex:uq_customer_summaries_customer;not null"`
	TotalRevenue        float64    `gorm:"not null;default:0"`
	TotalOrders         int64      `gorm:"not null;default:0"`
	AverageOrderValue   float64    `gorm:"not null;default:0"`
	LastTransactionDate *time.Time `gorm:"type:date"`
	UpdatedAt           time.Time
}

// TableName specifies the table name for GORM
func (CustomerSummaryModel) TableName() string {
	return "customer_summaries"
}
