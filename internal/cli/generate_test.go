package cli

import (
	"errors"
	"testing"
	"time"

	"github.com/vkaraulov/orderlens/internal/config"
	"github.com/vkaraulov/orderlens/pkg/orderlens"
)

func resetGenerateFlags(t *testing.T) {
	t.Helper()
	saved := generateFlags
	generateFlags = generateFlagValues{}
	t.Cleanup(func() { generateFlags = saved })
}

func TestBuildGenerateConfig_Defaults(t *testing.T) {
	resetGenerateFlags(t)

	cfg, err := buildGenerateConfig(nil, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.OutputPath != "orders.csv" {
		t.Errorf("unexpected output path: %q", cfg.OutputPath)
	}
	if cfg.Count != 1000 {
		t.Errorf("unexpected count: %d", cfg.Count)
	}
	if cfg.Seed != 0 || !cfg.StartDate.IsZero() || !cfg.EndDate.IsZero() {
		t.Errorf("expected zero seed and dates: %+v", cfg)
	}
}

func TestBuildGenerateConfig_ProjectDefaults(t *testing.T) {
	resetGenerateFlags(t)

	projectCfg := &config.ProjectConfig{
		Generator: config.GeneratorConfig{
			Count:     250,
			Seed:      9,
			StartDate: "2025-01-01",
			EndDate:   "2025-02-01",
			Output:    "data/orders.csv",
		},
	}

	cfg, err := buildGenerateConfig(projectCfg, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.OutputPath != "data/orders.csv" || cfg.Count != 250 || cfg.Seed != 9 {
		t.Errorf("project defaults not applied: %+v", cfg)
	}
	want := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	if !cfg.StartDate.Equal(want) {
		t.Errorf("unexpected start date: %v", cfg.StartDate)
	}
}

func TestBuildGenerateConfig_FlagsBeatProject(t *testing.T) {
	resetGenerateFlags(t)
	generateFlags.output = "flag.csv"
	generateFlags.count = 10
	generateFlags.seed = 1

	projectCfg := &config.ProjectConfig{
		Generator: config.GeneratorConfig{Count: 250, Seed: 9, Output: "yaml.csv"},
	}

	cfg, err := buildGenerateConfig(projectCfg, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.OutputPath != "flag.csv" || cfg.Count != 10 || cfg.Seed != 1 {
		t.Errorf("flags should win: %+v", cfg)
	}
}

func TestBuildGenerateConfig_InvalidDates(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
	}{
		{"bad start", "January 1", ""},
		{"bad end", "", "2025-13-40"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetGenerateFlags(t)
			generateFlags.startDate = tt.start
			generateFlags.endDate = tt.end

			_, err := buildGenerateConfig(nil, false)
			if !errors.Is(err, orderlens.ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got: %v", err)
			}
		})
	}
}
