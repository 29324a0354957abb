package orderlens

import (
	"errors"
	"fmt"
	"time"
)

// ConnectionConfig represents parsed connection parameters.
type ConnectionConfig struct {
	Host     string
	Port     int
	Database string
	Username string
	Password string
	SSLMode  string

	// AuthMethod indicates the authentication mechanism to use.
	AuthMethod AuthMethod

	// Additional connection parameters
	AppName          string
	ConnectTimeout   time.Duration
	AdditionalParams map[string]string

	// AWS IAM authentication (used when AuthMethod is AuthMethodAWSIAM)
	AWSRegion string

	// Google Cloud SQL instance connection name, project:region:instance
	// (used when AuthMethod is AuthMethodGoogleIAM)
	GoogleInstance string

	// Azure Entra ID authentication parameters (used when AuthMethod is
	// AuthMethodAzureEntraID). If all three are provided, Service Principal
	// authentication is used; otherwise the DefaultAzureCredential chain.
	AzureTenantID     string
	AzureClientID     string
	AzureClientSecret string
}

// AuthMethod represents the type of authentication to use.
type AuthMethod int

const (
	AuthMethodStandard     AuthMethod = iota // Username/Password
	AuthMethodAWSIAM                         // AWS IAM Database Authentication
	AuthMethodGoogleIAM                      // Google Cloud SQL IAM
	AuthMethodAzureEntraID                   // Azure Active Directory (Entra ID)
)

// String returns a human-readable string representation of the AuthMethod.
func (a AuthMethod) String() string {
	switch a {
	case AuthMethodStandard:
		return "Standard"
	case AuthMethodAWSIAM:
		return "AWS IAM"
	case AuthMethodGoogleIAM:
		return "Google IAM"
	case AuthMethodAzureEntraID:
		return "Azure Entra ID"
	default:
		return fmt.Sprintf("Unknown(%d)", a)
	}
}

// IsValid returns true if the AuthMethod is a valid, defined value.
func (a AuthMethod) IsValid() bool {
	return a >= AuthMethodStandard && a <= AuthMethodAzureEntraID
}

// GenerateConfig contains all parameters for the synthetic data stage.
type GenerateConfig struct {
	// OutputPath is the CSV file to write.
	OutputPath string

	// Count is the number of order rows to emit.
	Count int

	// Seed makes generation reproducible when non-zero.
	// A zero seed means "seed from the clock".
	Seed int64

	// StartDate and EndDate bound order dates (inclusive).
	StartDate time.Time
	EndDate   time.Time

	// Verbose enables detailed logging.
	Verbose bool
}

// Validate checks if the GenerateConfig has all required fields and valid values.
// It returns a multi-error if multiple validation failures occur.
func (c *GenerateConfig) Validate() error {
	var errs []error

	if c.OutputPath == "" {
		errs = append(errs, fmt.Errorf("OutputPath is required: %w", ErrInvalidConfig))
	}
	if c.Count <= 0 {
		errs = append(errs, fmt.Errorf("Count must be positive, got %d: %w", c.Count, ErrInvalidConfig))
	}
	if !c.StartDate.IsZero() && !c.EndDate.IsZero() && c.EndDate.Before(c.StartDate) {
		errs = append(errs, fmt.Errorf("EndDate %s precedes StartDate %s: %w",
			c.EndDate.Format("2006-01-02"), c.StartDate.Format("2006-01-02"), ErrInvalidConfig))
	}

	return errors.Join(errs...)
}

// LoadConfig contains all parameters for the load stage.
type LoadConfig struct {
	// InputPath is the CSV file to load.
	InputPath string

	// DatabaseName is the target database name.
	DatabaseName string

	// MaintenanceDatabase is the database to connect to for server-level
	// operations (CREATE DATABASE). Typically "postgres".
	MaintenanceDatabase string

	// ConnectionString is the PostgreSQL connection string.
	// After CLI resolution, this contains the TARGET database connection.
	ConnectionString string

	// Force bypasses interactive approval for replacing a non-empty table.
	Force bool

	// Timeout is the global timeout for the entire load.
	Timeout time.Duration

	// Verbose enables detailed logging.
	Verbose bool

	// AuthMethod indicates the authentication mechanism to use.
	AuthMethod AuthMethod

	// Cloud authentication parameters, forwarded to the connector.
	AWSRegion         string
	GoogleInstance    string
	AzureTenantID     string
	AzureClientID     string
	AzureClientSecret string
}

// Validate checks if the LoadConfig has all required fields and valid values.
// It returns a multi-error if multiple validation failures occur.
func (c *LoadConfig) Validate() error {
	var errs []error

	if c.InputPath == "" {
		errs = append(errs, fmt.Errorf("InputPath is required: %w", ErrInvalidConfig))
	}
	if c.DatabaseName == "" {
		errs = append(errs, fmt.Errorf("DatabaseName is required: %w", ErrInvalidConfig))
	}
	if c.ConnectionString == "" {
		errs = append(errs, fmt.Errorf("ConnectionString is required: %w", ErrInvalidConfig))
	}
	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout cannot be negative: %w", ErrInvalidConfig))
	}

	return errors.Join(errs...)
}

// ReportConfig contains all parameters for the report stage.
type ReportConfig struct {
	// OutputDir is the directory that receives the report files.
	// Created if it does not exist.
	OutputDir string

	// DatabaseName is the target database name.
	DatabaseName string

	// ConnectionString is the PostgreSQL connection string.
	ConnectionString string

	// TopN limits the top-products report. Defaults to DefaultTopProducts.
	TopN int

	// Timeout is the global timeout for the entire report run.
	Timeout time.Duration

	// Verbose enables detailed logging.
	Verbose bool

	// AuthMethod indicates the authentication mechanism to use.
	AuthMethod AuthMethod

	// Cloud authentication parameters, forwarded to the connector.
	AWSRegion         string
	GoogleInstance    string
	AzureTenantID     string
	AzureClientID     string
	AzureClientSecret string
}

// Validate checks if the ReportConfig has all required fields and valid values.
// It returns a multi-error if multiple validation failures occur.
func (c *ReportConfig) Validate() error {
	var errs []error

	if c.OutputDir == "" {
		errs = append(errs, fmt.Errorf("OutputDir is required: %w", ErrInvalidConfig))
	}
	if c.DatabaseName == "" {
		errs = append(errs, fmt.Errorf("DatabaseName is required: %w", ErrInvalidConfig))
	}
	if c.ConnectionString == "" {
		errs = append(errs, fmt.Errorf("ConnectionString is required: %w", ErrInvalidConfig))
	}
	if c.TopN < 0 {
		errs = append(errs, fmt.Errorf("TopN cannot be negative: %w", ErrInvalidConfig))
	}
	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout cannot be negative: %w", ErrInvalidConfig))
	}

	return errors.Join(errs...)
}
