// Package dto holds the data transfer objects exchanged between the pipeline
// use cases and the interface layer.
package dto

import (
	"time"

	"millrace/internal/domain/transaction"
)

// CleanOutcome reports one batch's validation and deduplication pass. Cleaned
// holds the canonical records that were persisted, in input order.
type CleanOutcome struct {
	Cleaned    []*transaction.Transaction
	Invalid    int64
	Duplicates int64
}

// CleanedCount returns the number of persisted canonical records.
func (o *CleanOutcome) CleanedCount() int64 {
	return int64(len(o.Cleaned))
}

// AggregateOutcome reports how many summary rows a recompute touched.
type AggregateOutcome struct {
	DailySummaries    int64 `json:"daily_summaries"`
	CustomerSummaries int64 `json:"customer_summaries"`
}

// FeatureOutcome reports one feature generation pass.
type FeatureOutcome struct {
	Generated int64 `json:"generated"`
	Skipped   int64 `json:"skipped"`
}

// UploadResult is the full accounting of one processed upload batch.
type UploadResult struct {
	BatchID           string  `json:"batch_id"`
	RecordsIngested   int64   `json:"records_ingested"`
	RecordsCleaned    int64   `json:"records_cleaned"`
	InvalidRows       int64   `json:"invalid_rows"`
	DuplicatesSkipped int64   `json:"duplicates_skipped"`
	FeaturesGenerated int64   `json:"features_generated"`
	DailySummaries    int64   `json:"daily_summaries"`
	CustomerSummaries int64   `json:"customer_summaries"`
	QualityPercent    float64 `json:"quality_percent"`
}

// QualityReport is one batch's stored quality metric.
type QualityReport struct {
	BatchID        string    `json:"batch_id"`
	Ingested       int64     `json:"ingested"`
	Invalid        int64     `json:"invalid"`
	Duplicates     int64     `json:"duplicates"`
	Cleaned        int64     `json:"cleaned"`
	Dropped        int64     `json:"dropped"`
	QualityPercent float64   `json:"quality_percent"`
	CreatedAt      time.Time `json:"created_at"`
}

// AggregateQualityReport sums quality accounting across all batches.
type AggregateQualityReport struct {
	TotalBatches    int64   `json:"total_batches"`
	TotalIngested   int64   `json:"total_ingested"`
	TotalInvalid    int64   `json:"total_invalid"`
	TotalDuplicates int64   `json:"total_duplicates"`
	TotalCleaned    int64   `json:"total_cleaned"`
	AveragePercent  float64 `json:"average_quality_percent"`
	OverallPercent  float64 `json:"overall_quality_percent"`
}
