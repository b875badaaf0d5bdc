package models

import "time"

// RawTransactionModel persists ingested rows verbatim. Numeric and date
// columns stay text so malformed input is kept for inspection.
type RawTransactionModel struct {
	ID            uint    `gorm:"primarykey"`
	ExternalID    *string `gorm:"size:64;index:idx_raw_external_id"`
	Date          string  `gorm:"column:transaction_date;size:64;not null;index:idx_raw_customer_date,priority:2"`
	CustomerID    string  `gorm:"size:64;not null;index:idx_raw_customer_date,priority:1"`
	Product       string  `gorm:"size:255;not null"`
	Category      *string `gorm:"size:128"`
	Quantity      *string `gorm:"size:64"`
	Price         *string `gorm:"size:64"`
	PaymentMethod *string `gorm:"size:64"`
	City          *string `gorm:"size:128"`
	CreatedAt     time.Time
}

// TableName specifies the table name for GORM
func (RawTransactionModel) TableName() string {
	return "raw_transactions"
}
