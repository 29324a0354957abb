package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/vkaraulov/orderlens/internal/db"
	"github.com/vkaraulov/orderlens/internal/report"
	"github.com/vkaraulov/orderlens/internal/store"
	"github.com/vkaraulov/orderlens/pkg/orderlens"
)

var _ orderlens.Reporter = (*ReportService)(nil)

// ReportService implements the Reporter interface: run the fixed
// aggregation queries against a loaded orders table and write the four
// CSV reports plus the Markdown summary.
type ReportService struct {
	connectorFactory func(*orderlens.ConnectionConfig) (orderlens.Connector, error)
	logger           orderlens.Logger

	// now is swapped out in tests to pin the summary timestamp.
	now func() time.Time
}

// NewReportService creates a ReportService with all dependencies injected.
// Nil dependencies are programmer errors and panic at construction.
func NewReportService(
	connectorFactory func(*orderlens.ConnectionConfig) (orderlens.Connector, error),
	logger orderlens.Logger,
) *ReportService {
	if connectorFactory == nil {
		panic("connectorFactory cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}

	return &ReportService{
		connectorFactory: connectorFactory,
		logger:           logger,
		now:              time.Now,
	}
}

// Report executes the report stage against the configured database.
func (s *ReportService) Report(ctx context.Context, config orderlens.ReportConfig) error {
	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	topN := config.TopN
	if topN == 0 {
		topN = orderlens.DefaultTopProducts
	}

	connConfig, err := db.ParseConnectionString(config.ConnectionString)
	if err != nil {
		return fmt.Errorf("invalid connection string: %w: %w", orderlens.ErrInvalidConfig, err)
	}
	connConfig.Database = config.DatabaseName
	connConfig.AuthMethod = config.AuthMethod
	connConfig.AWSRegion = config.AWSRegion
	connConfig.GoogleInstance = config.GoogleInstance
	connConfig.AzureTenantID = config.AzureTenantID
	connConfig.AzureClientID = config.AzureClientID
	connConfig.AzureClientSecret = config.AzureClientSecret

	connector, err := s.connectorFactory(connConfig)
	if err != nil {
		return fmt.Errorf("create connector: %w", err)
	}
	pool, err := connector.Connect(ctx)
	if err != nil {
		return fmt.Errorf("connect to database %q: %w", config.DatabaseName, err)
	}
	defer pool.Close()

	st := store.New(pool)
	s.logger.Verbose("Running aggregation queries against %q", config.DatabaseName)

	stats, err := st.Summary(ctx)
	if err != nil {
		return err
	}
	daily, err := st.DailyRevenue(ctx)
	if err != nil {
		return err
	}
	categories, err := st.RevenueByCategory(ctx)
	if err != nil {
		return err
	}
	topProducts, err := st.TopProducts(ctx, topN)
	if err != nil {
		return err
	}
	repeats, err := st.RepeatCustomers(ctx)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(config.OutputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	files := []struct {
		name  string
		write func(io.Writer) error
	}{
		{orderlens.ReportFileDailyRevenue, func(w io.Writer) error {
			return report.WriteDailyRevenue(w, daily)
		}},
		{orderlens.ReportFileRevenueByCategory, func(w io.Writer) error {
			return report.WriteRevenueByCategory(w, categories)
		}},
		{orderlens.ReportFileTopProducts, func(w io.Writer) error {
			return report.WriteTopProducts(w, topProducts)
		}},
		{orderlens.ReportFileRepeatCustomers, func(w io.Writer) error {
			return report.WriteRepeatCustomers(w, repeats)
		}},
		{orderlens.ReportFileSummary, func(w io.Writer) error {
			return report.WriteSummary(w, report.SummaryData{
				Stats:           stats,
				Daily:           daily,
				Categories:      categories,
				TopProducts:     topProducts,
				RepeatCustomers: repeats,
				GeneratedAt:     s.now(),
			})
		}},
	}

	for _, file := range files {
		path := filepath.Join(config.OutputDir, file.name)
		if err := writeFile(path, file.write); err != nil {
			return err
		}
		s.logger.Info("✓ Wrote %s", path)
	}

	s.logger.Info("Reports cover %d orders from %s to %s",
		stats.TotalOrders,
		stats.FirstDate.Format("2006-01-02"),
		stats.LastDate.Format("2006-01-02"))
	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
