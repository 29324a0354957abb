package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vkaraulov/orderlens/internal/config"
	"github.com/vkaraulov/orderlens/internal/logging"
	"github.com/vkaraulov/orderlens/internal/order"
	"github.com/vkaraulov/orderlens/internal/services"
	"github.com/vkaraulov/orderlens/pkg/orderlens"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a synthetic order CSV",
	Long: `Generate writes a CSV of synthetic order records for loading with
'orderlens load'.

Orders are drawn from a fixed product catalog with plausible retail prices,
a pool of repeat customers, and order dates spread over the requested range.
The same --seed always produces the same file.

Defaults come from the generator section of orderlens.yaml when present.

Examples:
  # 1000 orders over the trailing 90 days
  orderlens generate -o orders.csv -n 1000

  # Reproducible data for a fixed quarter
  orderlens generate -o orders.csv -n 5000 --seed 42 \
    --start-date 2025-01-01 --end-date 2025-03-31`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

type generateFlagValues struct {
	output    string
	count     int
	seed      int64
	startDate string
	endDate   string
}

var generateFlags generateFlagValues

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVarP(&generateFlags.output, "output", "o", "",
		"Output CSV path (default: orderlens.yaml generator.output, or orders.csv)")
	generateCmd.Flags().IntVarP(&generateFlags.count, "count", "n", 0,
		"Number of orders to generate (default: orderlens.yaml generator.count, or 1000)")
	generateCmd.Flags().Int64Var(&generateFlags.seed, "seed", 0,
		"Random seed for reproducible output (0 seeds from the clock)")
	generateCmd.Flags().StringVar(&generateFlags.startDate, "start-date", "",
		"Earliest order date, YYYY-MM-DD (default: 90 days before end date)")
	generateCmd.Flags().StringVar(&generateFlags.endDate, "end-date", "",
		"Latest order date, YYYY-MM-DD (default: yesterday)")
}

// buildGenerateConfig merges CLI flags with orderlens.yaml defaults.
func buildGenerateConfig(projectCfg *config.ProjectConfig, verbose bool) (orderlens.GenerateConfig, error) {
	cfg := orderlens.GenerateConfig{
		OutputPath: generateFlags.output,
		Count:      generateFlags.count,
		Seed:       generateFlags.seed,
		Verbose:    verbose,
	}

	startDate := generateFlags.startDate
	endDate := generateFlags.endDate

	if projectCfg != nil {
		gen := projectCfg.Generator
		if cfg.OutputPath == "" {
			cfg.OutputPath = gen.Output
		}
		if cfg.Count == 0 {
			cfg.Count = gen.Count
		}
		if cfg.Seed == 0 {
			cfg.Seed = gen.Seed
		}
		if startDate == "" {
			startDate = gen.StartDate
		}
		if endDate == "" {
			endDate = gen.EndDate
		}
	}

	if cfg.OutputPath == "" {
		cfg.OutputPath = "orders.csv"
	}
	if cfg.Count == 0 {
		cfg.Count = 1000
	}

	var err error
	if startDate != "" {
		cfg.StartDate, err = time.ParseInLocation(order.DateLayout, startDate, time.UTC)
		if err != nil {
			return cfg, fmt.Errorf("invalid start date %q: expected YYYY-MM-DD: %w", startDate, orderlens.ErrInvalidConfig)
		}
	}
	if endDate != "" {
		cfg.EndDate, err = time.ParseInLocation(order.DateLayout, endDate, time.UTC)
		if err != nil {
			return cfg, fmt.Errorf("invalid end date %q: expected YYYY-MM-DD: %w", endDate, orderlens.ErrInvalidConfig)
		}
	}

	return cfg, nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	verbose := getVerboseFlag(cmd)

	projectCfg, err := loadProjectConfig()
	if err != nil {
		return err
	}

	cfg, err := buildGenerateConfig(projectCfg, verbose)
	if err != nil {
		return err
	}

	svc := services.NewGenerateService(logging.NewConsoleLogger(verbose))
	if _, err := svc.Generate(context.Background(), cfg); err != nil {
		return fmt.Errorf("generate failed: %w", err)
	}
	return nil
}
