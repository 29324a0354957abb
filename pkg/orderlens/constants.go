package orderlens

import "time"

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess         = 0  // Stage completed successfully
	ExitGeneralError    = 1  // Unknown or unclassified error
	ExitUsageError      = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic           = 3  // Internal panic (unexpected crash)
	ExitConfigError     = 10 // Invalid configuration or parameters
	ExitConnectionError = 11 // Failed to connect to database
	ExitApprovalDenied  = 12 // User denied table replacement approval
	ExitExecutionFailed = 13 // SQL execution failed
	ExitInputMissing    = 14 // Input file not found
)

const (
	// OrdersTable is the destination table for loaded order records.
	OrdersTable = "orders"

	// DefaultManagementDB is the default database to connect to for
	// server-level operations such as CREATE DATABASE.
	DefaultManagementDB = "postgres"

	// DefaultRetryInitialDelay is the default initial delay before the first retry attempt.
	DefaultRetryInitialDelay = 100 * time.Millisecond

	// DefaultRetryMaxDelay is the default maximum delay between retry attempts.
	DefaultRetryMaxDelay = 1 * time.Minute

	// DefaultRetryMaxAttempts is the default maximum number of retry attempts.
	DefaultRetryMaxAttempts = 3

	// DefaultForceApprovalCountdown is the countdown duration before a forced
	// approval proceeds with replacing a non-empty orders table.
	DefaultForceApprovalCountdown = 5 * time.Second

	// DefaultTopProducts is the row limit for the top-products report.
	DefaultTopProducts = 20
)

// Report file names produced by the report stage.
const (
	ReportFileDailyRevenue      = "daily_revenue.csv"
	ReportFileRevenueByCategory = "revenue_by_category.csv"
	ReportFileTopProducts       = "top_products.csv"
	ReportFileRepeatCustomers   = "repeat_customers.csv"
	ReportFileSummary           = "summary.md"
)
