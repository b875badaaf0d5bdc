// Package quality tracks per-batch and cross-batch data-quality statistics.
package quality

import (
	"context"
	"math"
	"time"
)

// Metric is one upload batch's quality accounting. Immutable once stored.
type Metric struct {
	ID             uint
	BatchID        string
	Ingested       int64
	Invalid        int64
	Duplicates     int64
	Cleaned        int64
	Dropped        int64
	QualityPercent float64
	CreatedAt      time.Time
}

// AggregateReport sums quality counters across all batches. OverallPercent is
// recomputed from the summed counts; AveragePercent is the simple mean of the
// per-batch percentages.
type AggregateReport struct {
	TotalBatches    int64
	TotalIngested   int64
	TotalInvalid    int64
	TotalDuplicates int64
	TotalCleaned    int64
	AveragePercent  float64
	OverallPercent  float64
}

// Percent computes the share of ingested rows that survived validation and
// deduplication, rounded to two decimals. Zero when nothing was ingested.
func Percent(ingested, invalid, duplicates int64) float64 {
	if ingested == 0 {
		return 0.0
	}
	cleaned := float64(ingested - invalid - duplicates)
	return Round2(cleaned / float64(ingested) * 100.0)
}

// Round2 rounds to two decimal places.
func Round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// NewMetric builds a batch metric with the derived fields filled in.
func NewMetric(batchID string, ingested, invalid, duplicates, cleaned int64) *Metric {
	return &Metric{
		BatchID:        batchID,
		Ingested:       ingested,
		Invalid:        invalid,
		Duplicates:     duplicates,
		Cleaned:        cleaned,
		Dropped:        invalid + duplicates,
		QualityPercent: Percent(ingested, invalid, duplicates),
	}
}

// Repository persists batch metrics.
type Repository interface {
	Create(ctx context.Context, metric *Metric) error
	Latest(ctx context.Context) (*Metric, error)
	Aggregate(ctx context.Context) (*AggregateReport, error)
}
