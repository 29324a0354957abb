// Package services implements the three pipeline stages: generate, load,
// and report. Each service takes its dependencies through the constructor
// and panics on nil, so wiring mistakes surface at startup.
package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/vkaraulov/orderlens/internal/gen"
	"github.com/vkaraulov/orderlens/internal/order"
	"github.com/vkaraulov/orderlens/pkg/orderlens"
)

// GenerateService produces a synthetic order CSV.
type GenerateService struct {
	logger orderlens.Logger
}

// NewGenerateService creates a GenerateService.
func NewGenerateService(logger orderlens.Logger) *GenerateService {
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &GenerateService{logger: logger}
}

// Generate writes config.Count synthetic orders to config.OutputPath and
// returns the number of rows written.
func (s *GenerateService) Generate(ctx context.Context, config orderlens.GenerateConfig) (int64, error) {
	if err := config.Validate(); err != nil {
		return 0, fmt.Errorf("invalid configuration: %w", err)
	}

	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	start := config.StartDate
	end := config.EndDate
	if start.IsZero() && end.IsZero() {
		// Default to the trailing 90 days ending yesterday.
		end = time.Now().UTC().AddDate(0, 0, -1)
		start = end.AddDate(0, 0, -89)
	} else if start.IsZero() {
		start = end.AddDate(0, 0, -89)
	} else if end.IsZero() {
		end = start.AddDate(0, 0, 89)
	}

	s.logger.Verbose("Generating %d orders between %s and %s (seed %d)",
		config.Count, start.Format(order.DateLayout), end.Format(order.DateLayout), seed)

	orders, err := gen.NewGenerator(seed).Orders(config.Count, start, end)
	if err != nil {
		return 0, fmt.Errorf("generate orders: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return 0, err
	}

	if dir := filepath.Dir(config.OutputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, fmt.Errorf("create output directory: %w", err)
		}
	}

	f, err := os.Create(config.OutputPath)
	if err != nil {
		return 0, fmt.Errorf("create output file: %w", err)
	}
	defer f.Close()

	if err := order.WriteAll(f, orders); err != nil {
		return 0, fmt.Errorf("write orders: %w", err)
	}
	if err := f.Close(); err != nil {
		return 0, fmt.Errorf("close output file: %w", err)
	}

	s.logger.Info("✓ Wrote %d orders to %s", len(orders), config.OutputPath)
	return int64(len(orders)), nil
}
