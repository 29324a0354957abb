package orderlens

import (
	"context"
	"time"
)

// Loader is the main interface for executing the load stage.
// Implementations handle the full workflow: parsing the input CSV,
// connecting, recreating the orders table, and bulk-inserting all rows.
type Loader interface {
	// Load executes a load using the provided configuration.
	// It returns the number of rows loaded, or an error if the load
	// fails at any stage.
	Load(ctx context.Context, config LoadConfig) (int64, error)
}

// Reporter is the main interface for executing the report stage.
// Implementations run the fixed aggregation queries and write the report
// files plus the Markdown summary.
type Reporter interface {
	// Report executes a report run using the provided configuration.
	Report(ctx context.Context, config ReportConfig) error
}

// DailyRevenueRow is one row of the daily revenue report.
// Monetary amounts are integer cents.
type DailyRevenueRow struct {
	Date          time.Time
	OrderCount    int64
	Revenue       int64 // cents
	AvgOrderValue int64 // cents, rounded half up
}

// CategoryRevenueRow is one row of the revenue-by-category report.
type CategoryRevenueRow struct {
	Category      string
	OrderCount    int64
	Revenue       int64 // cents
	AvgOrderValue int64 // cents, rounded half up
	UnitsSold     int64
}

// TopProductRow is one row of the top-products report.
type TopProductRow struct {
	Product      string
	Category     string
	TimesOrdered int64
	UnitsSold    int64
	Revenue      int64 // cents
	AvgUnitPrice int64 // cents, rounded half up
}

// RepeatCustomerRow is one row of the repeat-customers report.
// Only customers with OrderCount >= 2 appear.
type RepeatCustomerRow struct {
	CustomerID    string
	OrderCount    int64
	TotalSpent    int64 // cents
	AvgOrderValue int64 // cents, rounded half up
	FirstOrder    time.Time
	LastOrder     time.Time
	Categories    int64 // distinct categories purchased
}

// SummaryStats holds the whole-table aggregates for the Markdown digest.
type SummaryStats struct {
	TotalOrders    int64
	TotalCustomers int64
	TotalRevenue   int64 // cents
	AvgOrderValue  int64 // cents, rounded half up
	FirstDate      time.Time
	LastDate       time.Time
}
