package transaction

import (
	"context"
	"time"
)

// DailyGroup is one date's aggregate over all canonical transactions.
type DailyGroup struct {
	Date     time.Time
	Revenue  float64
	Orders   int64
	Quantity float64
}

// CustomerGroup is one customer's aggregate over all canonical transactions.
type CustomerGroup struct {
	CustomerID string
	Revenue    float64
	Orders     int64
	LastDate   time.Time
}

// Totals are whole-dataset KPI numbers computed from canonical transactions.
type Totals struct {
	Revenue   float64
	Orders    int64
	Customers int64
}

// DateRange is the span of canonical transaction dates; nil bounds mean an
// empty dataset.
type DateRange struct {
	Min *time.Time
	Max *time.Time
}

// RawRepository persists ingested rows verbatim.
type RawRepository interface {
	Create(ctx context.Context, raw *RawTransaction) error
	Count(ctx context.Context) (int64, error)
}

// Repository persists canonical transactions and answers the predicate and
// point-in-time queries the pipeline stages depend on.
type Repository interface {
	Create(ctx context.Context, txn *Transaction) error
	ExistsByExternalID(ctx context.Context, externalID string) (bool, error)
	ExistsByKey(ctx context.Context, key NaturalKey) (bool, error)

	// Full-recompute aggregation groups.
	GroupByDate(ctx context.Context) ([]DailyGroup, error)
	GroupByCustomer(ctx context.Context) ([]CustomerGroup, error)

	// Point-in-time feature queries; all bounds are inclusive.
	RevenueOn(ctx context.Context, date time.Time) (float64, error)
	CustomerRevenueThrough(ctx context.Context, customerID string, date time.Time) (float64, error)
	CustomerCountThrough(ctx context.Context, customerID string, date time.Time) (int64, error)
	CustomerAverageThrough(ctx context.Context, customerID string, date time.Time) (float64, error)
	CustomerFirstDate(ctx context.Context, customerID string) (*time.Time, error)

	// Dashboard reads.
	Count(ctx context.Context) (int64, error)
	Totals(ctx context.Context) (Totals, error)
	Dates(ctx context.Context) (DateRange, error)
	DistinctCustomers(ctx context.Context) (int64, error)
	DistinctProducts(ctx context.Context) (int64, error)
}
