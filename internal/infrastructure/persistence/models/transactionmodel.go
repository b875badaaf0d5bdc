package models

import "time"

// TransactionModel persists canonical transactions. ExternalID carries the
// uniqueness constraint; the composite dedup key is enforced by query plus
// insert-time violation handling, matching the raw data's semantics where
// identical keyless rows are legitimate only across separate cleanings.
type TransactionModel struct {
	ID            uint      `gorm:"primarykey"`
	ExternalID    *string   `gorm:"size:64;uniqueIndex:uq_transactions_external_id"`
	Date          time.Time `gorm:"column:transaction_date;type:date;not null;index:idx_txn_date;index:idx_txn_customer_date,priority:2"`
	CustomerID    string    `gorm:"size:64;not null;index:idx_txn_customer_date,priority:1"`
	Product       string    `gorm:"size:255;not null"`
	Category      *string   `gorm:"size:128;index:idx_txn_category"`
	Quantity      float64   `gorm:"not null"`
	Price         float64   `gorm:"not null"`
	TotalAmount   float64   `gorm:"not null"`
	PaymentMethod *string   `gorm:"size:64"`
	City          *string   `gorm:"size:128"`
	RawID         *uint     `gorm:"column:raw_transaction_id"`
	CreatedAt     time.Time
}

// TableName specifies the table name for GORM
func (TransactionModel) TableName() string {
	return "transactions"
}
