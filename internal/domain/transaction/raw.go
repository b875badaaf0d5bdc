package transaction

import "time"

// RawTransaction is one ingested row stored verbatim. Numeric and date fields
// stay raw text so malformed input survives for inspection; absent optional
// values stay nil rather than being coerced to empty strings.
type RawTransaction struct {
	ID            uint
	ExternalID    *string
	Date          string
	CustomerID    string
	Product       string
	Category      *string
	Quantity      *string
	Price         *string
	PaymentMethod *string
	City          *string
	CreatedAt     time.Time
}

// HasRequiredFields reports whether the row carries the minimum fields needed
// to be persisted at all: date text, customer id, and product.
func (r *RawTransaction) HasRequiredFields() bool {
	return r.Date != "" && r.CustomerID != "" && r.Product != ""
}
