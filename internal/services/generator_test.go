package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vkaraulov/orderlens/internal/order"
	"github.com/vkaraulov/orderlens/pkg/orderlens"
)

func TestNewGenerateService_NilLogger(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic")
		}
	}()
	NewGenerateService(nil)
}

func TestGenerate_InvalidConfig(t *testing.T) {
	svc := NewGenerateService(&mockLogger{})

	tests := []struct {
		name   string
		config orderlens.GenerateConfig
	}{
		{"missing output", orderlens.GenerateConfig{Count: 10}},
		{"zero count", orderlens.GenerateConfig{OutputPath: "orders.csv"}},
		{"negative count", orderlens.GenerateConfig{OutputPath: "orders.csv", Count: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Generate(context.Background(), tt.config)
			if !errors.Is(err, orderlens.ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got: %v", err)
			}
		})
	}
}

func TestGenerate_WritesParsableCSV(t *testing.T) {
	svc := NewGenerateService(&mockLogger{})
	path := filepath.Join(t.TempDir(), "orders.csv")

	start := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC)

	n, err := svc.Generate(context.Background(), orderlens.GenerateConfig{
		OutputPath: path,
		Count:      50,
		Seed:       7,
		StartDate:  start,
		EndDate:    end,
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if n != 50 {
		t.Errorf("Expected 50 rows written, got %d", n)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	orders, err := order.ReadAll(f)
	if err != nil {
		t.Fatalf("Generated file did not parse: %v", err)
	}
	if len(orders) != 50 {
		t.Fatalf("Expected 50 orders, got %d", len(orders))
	}
	for _, o := range orders {
		if o.OrderDate.Before(start) || o.OrderDate.After(end) {
			t.Errorf("Order date %s outside configured range", o.OrderDate.Format(order.DateLayout))
		}
	}
}

func TestGenerate_DeterministicForSeed(t *testing.T) {
	svc := NewGenerateService(&mockLogger{})
	dir := t.TempDir()

	cfg := orderlens.GenerateConfig{
		Count:     25,
		Seed:      42,
		StartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
	}

	cfg.OutputPath = filepath.Join(dir, "a.csv")
	if _, err := svc.Generate(context.Background(), cfg); err != nil {
		t.Fatal(err)
	}
	cfg.OutputPath = filepath.Join(dir, "b.csv")
	if _, err := svc.Generate(context.Background(), cfg); err != nil {
		t.Fatal(err)
	}

	a, err := os.ReadFile(filepath.Join(dir, "a.csv"))
	if err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(filepath.Join(dir, "b.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if string(a) != string(b) {
		t.Error("Expected identical output for identical seed")
	}
}

func TestGenerate_CreatesOutputDirectory(t *testing.T) {
	svc := NewGenerateService(&mockLogger{})
	path := filepath.Join(t.TempDir(), "data", "nested", "orders.csv")

	_, err := svc.Generate(context.Background(), orderlens.GenerateConfig{
		OutputPath: path,
		Count:      5,
		Seed:       1,
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("Expected output file to exist: %v", err)
	}
}

func TestGenerate_DefaultsDateRange(t *testing.T) {
	svc := NewGenerateService(&mockLogger{})
	path := filepath.Join(t.TempDir(), "orders.csv")

	if _, err := svc.Generate(context.Background(), orderlens.GenerateConfig{
		OutputPath: path,
		Count:      10,
		Seed:       3,
	}); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	orders, err := order.ReadAll(f)
	if err != nil {
		t.Fatal(err)
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	for _, o := range orders {
		if !o.OrderDate.Before(today) {
			t.Errorf("Default range should end yesterday, got %s", o.OrderDate.Format(order.DateLayout))
		}
		if o.OrderDate.Before(today.AddDate(0, 0, -91)) {
			t.Errorf("Default range should cover the trailing 90 days, got %s", o.OrderDate.Format(order.DateLayout))
		}
	}
}
