// Package dto holds the dashboard read-model payloads.
package dto

import "time"

// KPIs are the headline dashboard numbers.
type KPIs struct {
	TotalRevenue      float64 `json:"total_revenue"`
	TotalOrders       int64   `json:"total_orders"`
	TotalCustomers    int64   `json:"total_customers"`
	AverageOrderValue float64 `json:"average_order_value"`
}

// DatasetStats describes the stored dataset across all pipeline stages.
type DatasetStats struct {
	RawRows           int64      `json:"raw_rows"`
	Transactions      int64      `json:"transactions"`
	FeatureRecords    int64      `json:"feature_records"`
	DistinctCustomers int64      `json:"distinct_customers"`
	DistinctProducts  int64      `json:"distinct_products"`
	FirstDate         *time.Time `json:"first_date"`
	LastDate          *time.Time `json:"last_date"`
}

// DailyRevenuePoint is one date's revenue for the dashboard chart.
type DailyRevenuePoint struct {
	Date    time.Time `json:"date"`
	Revenue float64   `json:"revenue"`
}

// DailySalesPoint is one date's order and quantity volume.
type DailySalesPoint struct {
	Date     time.Time `json:"date"`
	Orders   int64     `json:"orders"`
	Quantity float64   `json:"quantity"`
}

// TopCustomer is one row of the revenue leaderboard.
type TopCustomer struct {
	CustomerID        string  `json:"customer_id"`
	TotalRevenue      float64 `json:"total_revenue"`
	TotalOrders       int64   `json:"total_orders"`
	AverageOrderValue float64 `json:"average_order_value"`
}

// CustomerSummaryItem is one customer's full aggregate row.
type CustomerSummaryItem struct {
	CustomerID          string     `json:"customer_id"`
	TotalRevenue        float64    `json:"total_revenue"`
	TotalOrders         int64      `json:"total_orders"`
	AverageOrderValue   float64    `json:"average_order_value"`
	LastTransactionDate *time.Time `json:"last_transaction_date"`
}
