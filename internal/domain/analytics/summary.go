// Package analytics holds the derived summary tables recomputed from the
// canonical transaction set after every upload.
package analytics

import (
	"context"
	"time"
)

// DailySummary is the per-date aggregate; one row per distinct date.
type DailySummary struct {
	ID            uint
	Date          time.Time
	TotalRevenue  float64
	TotalOrders   int64
	TotalQuantity float64
	UpdatedAt     time.Time
}

// CustomerSummary is the per-customer aggregate; one row per customer.
// AverageOrderValue is always derived from revenue and orders.
type CustomerSummary struct {
	ID                  uint
	CustomerID          string
	TotalRevenue        float64
	TotalOrders         int64
	AverageOrderValue   float64
	LastTransactionDate *time.Time
	UpdatedAt           time.Time
}

// Repository upserts and reads the summary tables.
type Repository interface {
	UpsertDaily(ctx context.Context, summary *DailySummary) error
	UpsertCustomer(ctx context.Context, summary *CustomerSummary) error

	ListDaily(ctx context.Context, limit int) ([]*DailySummary, error)
	ListCustomersByRevenue(ctx context.Context, limit int) ([]*CustomerSummary, error)
}
