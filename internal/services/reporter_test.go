package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/vkaraulov/orderlens/pkg/orderlens"
)

func validReportConfig(t *testing.T) orderlens.ReportConfig {
	return orderlens.ReportConfig{
		OutputDir:        t.TempDir(),
		DatabaseName:     "orders_test",
		ConnectionString: "postgresql://localhost/postgres",
	}
}

func TestNewReportService_NilDeps(t *testing.T) {
	tests := []struct {
		name string
		fn   func()
	}{
		{"nil connectorFactory", func() { NewReportService(nil, &mockLogger{}) }},
		{"nil logger", func() { NewReportService(stoppingConnectorFactory, nil) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if r := recover(); r == nil {
					t.Error("Expected panic")
				}
			}()
			tt.fn()
		})
	}
}

func TestReport_InvalidConfig(t *testing.T) {
	svc := NewReportService(stoppingConnectorFactory, &mockLogger{})
	ctx := context.Background()

	tests := []struct {
		name   string
		config orderlens.ReportConfig
	}{
		{"missing OutputDir", orderlens.ReportConfig{DatabaseName: "db", ConnectionString: "postgresql://localhost/postgres"}},
		{"missing DatabaseName", orderlens.ReportConfig{OutputDir: "reports", ConnectionString: "postgresql://localhost/postgres"}},
		{"missing ConnectionString", orderlens.ReportConfig{OutputDir: "reports", DatabaseName: "db"}},
		{"negative TopN", orderlens.ReportConfig{OutputDir: "reports", DatabaseName: "db", ConnectionString: "postgresql://localhost/postgres", TopN: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Report(ctx, tt.config)
			if !errors.Is(err, orderlens.ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got: %v", err)
			}
		})
	}
}

func TestReport_InvalidConnectionString(t *testing.T) {
	svc := NewReportService(stoppingConnectorFactory, &mockLogger{})

	cfg := validReportConfig(t)
	cfg.ConnectionString = "not a connection string"

	err := svc.Report(context.Background(), cfg)
	if !errors.Is(err, orderlens.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got: %v", err)
	}
}

func TestReport_TargetsConfiguredDatabase(t *testing.T) {
	var got *orderlens.ConnectionConfig
	factory := func(connConfig *orderlens.ConnectionConfig) (orderlens.Connector, error) {
		got = connConfig
		return &mockConnector{err: errStop}, nil
	}
	svc := NewReportService(factory, &mockLogger{})

	cfg := validReportConfig(t)
	cfg.AuthMethod = orderlens.AuthMethodGoogleIAM
	cfg.GoogleInstance = "proj:region:inst"

	err := svc.Report(context.Background(), cfg)
	if !errors.Is(err, errStop) {
		t.Fatalf("Expected mock stop, got: %v", err)
	}
	if got.Database != "orders_test" {
		t.Errorf("Expected target database orders_test, got %q", got.Database)
	}
	if got.AuthMethod != orderlens.AuthMethodGoogleIAM || got.GoogleInstance != "proj:region:inst" {
		t.Errorf("Expected cloud auth fields forwarded, got %+v", got)
	}
}

func TestReport_ConnectFails(t *testing.T) {
	svc := NewReportService(stoppingConnectorFactory, &mockLogger{})

	err := svc.Report(context.Background(), validReportConfig(t))
	if err == nil || !strings.Contains(err.Error(), "orders_test") {
		t.Errorf("Expected connect error naming the database, got: %v", err)
	}
}
