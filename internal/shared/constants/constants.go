package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// Default pagination
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// HTTP Headers
	HeaderContentType   = "Content-Type"
	HeaderXRequestID    = "X-Request-ID"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderUserAgent     = "User-Agent"

	// Content Types
	ContentTypeJSON = "application/json"
	ContentTypeCSV  = "text/csv"
	ContentTypeForm = "multipart/form-data"

	// Context keys
	ContextKeyRequestID = "request_id"

	// Database table names
	TableRawTransactions   = "raw_transactions"
	TableTransactions      = "transactions"
	TableDailySummaries    = "daily_summaries"
	TableCustomerSummaries = "customer_summaries"
	TableFeatureRecords    = "feature_records"
	TableQualityMetrics    = "quality_metrics"

	// Dashboard defaults
	DefaultDailyRevenueDays = 30
	DefaultTopCustomers     = 10

	// Error messages
	ErrMsgInternalServerError = "Internal server error occurred"
	ErrMsgResourceNotFound    = "Resource not found"
	ErrMsgValidationFailed    = "Validation failed"
)
