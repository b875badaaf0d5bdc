// Package feature holds per-transaction derived features computed strictly
// from canonical transactions dated on or before the transaction itself.
package feature

import (
	"context"
	"time"
)

// Record is one transaction's feature row. Created once, never updated;
// re-running generation skips transactions that already have a record.
type Record struct {
	ID         uint
	ExternalID *string
	CustomerID string
	Date       time.Time

	Total    float64
	Quantity float64
	Price    float64

	DailyRevenue   float64
	LifetimeValue  float64
	Frequency      int64
	DaysSinceFirst *int64
	AverageValue   float64

	Category      *string
	PaymentMethod *string
	City          *string
	CreatedAt     time.Time
}

// Repository persists feature records.
type Repository interface {
	Create(ctx context.Context, record *Record) error
	ExistsByExternalID(ctx context.Context, externalID string) (bool, error)
	Count(ctx context.Context) (int64, error)
}
