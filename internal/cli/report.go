package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vkaraulov/orderlens/internal/db"
	"github.com/vkaraulov/orderlens/internal/logging"
	"github.com/vkaraulov/orderlens/internal/services"
	"github.com/vkaraulov/orderlens/pkg/orderlens"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Write revenue reports from a loaded database",
	Long: `Report runs the fixed aggregation queries against a loaded orders table
and writes four CSV reports plus a Markdown summary:

  daily_revenue.csv        Revenue and order count per day
  revenue_by_category.csv  Revenue per product category
  top_products.csv         Best-selling products by revenue
  repeat_customers.csv     Customers with two or more orders
  summary.md               Human-readable digest of the above

The output directory is created if it does not exist. Reporting against a
database that was never loaded is an error.

Examples:
  # Report into ./reports
  orderlens report -d orders

  # Wider top-products report into a custom directory
  orderlens report -d orders --output-dir /tmp/reports --top 50`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

type reportFlagValues struct {
	connFlagValues
	outputDir string
	topN      int
}

var reportFlags reportFlagValues

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVar(&reportFlags.outputDir, "output-dir", "",
		"Directory for the report files (default: orderlens.yaml reports.output_dir, or reports)")
	reportCmd.Flags().IntVar(&reportFlags.topN, "top", 0,
		fmt.Sprintf("Row limit for top_products.csv (default: orderlens.yaml reports.top_products, or %d)",
			orderlens.DefaultTopProducts))
	registerConnectionFlags(reportCmd, &reportFlags.connFlagValues)
}

// buildReportConfig builds a ReportConfig from CLI flags, environment, and
// orderlens.yaml.
func buildReportConfig(cmd *cobra.Command, verbose bool) (orderlens.ReportConfig, error) {
	_ = godotenv.Load()

	projectCfg, err := loadProjectConfig()
	if err != nil {
		return orderlens.ReportConfig{}, err
	}

	connConfig, _, err := resolveConnection(&reportFlags.connFlagValues, projectCfg)
	if err != nil {
		return orderlens.ReportConfig{}, err
	}

	targetDB, err := resolveTargetDatabase(reportFlags.database, connConfig.Database, "report", verbose)
	if err != nil {
		return orderlens.ReportConfig{}, err
	}
	connConfig.Database = targetDB

	outputDir := reportFlags.outputDir
	topN := reportFlags.topN
	if projectCfg != nil {
		if outputDir == "" {
			outputDir = projectCfg.Reports.OutputDir
		}
		if topN == 0 {
			topN = projectCfg.Reports.TopProducts
		}
	}
	if outputDir == "" {
		outputDir = "reports"
	}

	timeout, err := resolveTimeout(cmd, reportFlags.timeout, projectCfg)
	if err != nil {
		return orderlens.ReportConfig{}, err
	}

	return orderlens.ReportConfig{
		OutputDir:         outputDir,
		DatabaseName:      targetDB,
		ConnectionString:  db.BuildConnectionString(connConfig),
		TopN:              topN,
		Timeout:           timeout,
		Verbose:           verbose,
		AuthMethod:        connConfig.AuthMethod,
		AWSRegion:         connConfig.AWSRegion,
		GoogleInstance:    connConfig.GoogleInstance,
		AzureTenantID:     connConfig.AzureTenantID,
		AzureClientID:     connConfig.AzureClientID,
		AzureClientSecret: connConfig.AzureClientSecret,
	}, nil
}

func runReport(cmd *cobra.Command, args []string) error {
	verbose := getVerboseFlag(cmd)

	config, err := buildReportConfig(cmd, verbose)
	if err != nil {
		return err
	}

	reporter := services.NewReportService(db.NewConnector, logging.NewConsoleLogger(verbose))

	ctx, cancel := context.WithTimeout(context.Background(), config.Timeout)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\n[INTERRUPT] Received interrupt signal, cancelling report...")
		cancel()
	}()

	if err := reporter.Report(ctx, config); err != nil {
		return fmt.Errorf("report failed: %w", err)
	}
	return nil
}
