package db

import (
	"fmt"
	"os"
	"strconv"

	"github.com/vkaraulov/orderlens/internal/config"
	"github.com/vkaraulov/orderlens/pkg/orderlens"
)

// GranularConnFlags represents connection parameters from CLI flags.
// These follow PostgreSQL standard flag conventions (-h, -p, -U, -d).
//
// Password is deliberately not a flag. Use $PGPASSWORD, a .pgpass file,
// or a connection string with an embedded password.
type GranularConnFlags struct {
	Host     string
	Port     int
	Username string
	Database string
	SSLMode  string
}

// IsEmpty returns true if no connection-related granular flags were provided.
// Database is excluded because it can override the database named in a
// connection string.
func (g *GranularConnFlags) IsEmpty() bool {
	return g.Host == "" && g.Port == 0 && g.Username == "" && g.SSLMode == ""
}

// CloudFlags represents cloud authentication CLI flags. Any non-empty field
// switches the connection to the matching IAM auth method. Azure client
// secret is env-only for the usual reason.
type CloudFlags struct {
	AWSRegion      string // AWS RDS IAM region, overrides $AWS_REGION
	GoogleInstance string // Cloud SQL instance, project:region:instance
	AzureTenantID  string // Overrides AZURE_TENANT_ID
	AzureClientID  string // Overrides AZURE_CLIENT_ID
}

func (c *CloudFlags) IsEmpty() bool {
	return c == nil || (c.AWSRegion == "" && c.GoogleInstance == "" &&
		c.AzureTenantID == "" && c.AzureClientID == "")
}

// EnvVars represents the PostgreSQL standard environment variables plus the
// cloud SDK conventions this tool honors.
// See: https://www.postgresql.org/docs/current/libpq-envars.html
type EnvVars struct {
	PGHOST       string
	PGPORT       string
	PGUSER       string
	PGPASSWORD   string
	PGDATABASE   string
	PGSSLMODE    string
	DATABASE_URL string // full connection string, Heroku convention

	AWS_REGION string

	AZURE_TENANT_ID     string
	AZURE_CLIENT_ID     string
	AZURE_CLIENT_SECRET string
}

// LoadFromEnvironment loads PostgreSQL and cloud provider environment variables.
func LoadFromEnvironment() *EnvVars {
	return &EnvVars{
		PGHOST:              os.Getenv("PGHOST"),
		PGPORT:              os.Getenv("PGPORT"),
		PGUSER:              os.Getenv("PGUSER"),
		PGPASSWORD:          os.Getenv("PGPASSWORD"),
		PGDATABASE:          os.Getenv("PGDATABASE"),
		PGSSLMODE:           os.Getenv("PGSSLMODE"),
		DATABASE_URL:        os.Getenv("DATABASE_URL"),
		AWS_REGION:          os.Getenv("AWS_REGION"),
		AZURE_TENANT_ID:     os.Getenv("AZURE_TENANT_ID"),
		AZURE_CLIENT_ID:     os.Getenv("AZURE_CLIENT_ID"),
		AZURE_CLIENT_SECRET: os.Getenv("AZURE_CLIENT_SECRET"),
	}
}

// ResolveConnectionParams resolves connection parameters using
// PostgreSQL-standard precedence:
//
//  1. Connection string flag (--connection), parsed directly
//  2. Granular flags (-h, -p, -U, -d)
//  3. Environment variables (PGHOST, PGPORT, ...)
//  4. DATABASE_URL, if no granular parameters were given
//  5. orderlens.yaml project config
//  6. Defaults (localhost:5432, prefer SSL)
//
// Cloud flags or the matching environment variables switch the AuthMethod
// to the corresponding IAM mechanism; flags win over env vars.
//
// Returns the resolved config, the maintenance database name used for
// server-level operations such as CREATE DATABASE, or an error when both
// --connection and granular flags were given.
func ResolveConnectionParams(
	connStringFlag string,
	granularFlags *GranularConnFlags,
	cloudFlags *CloudFlags,
	envVars *EnvVars,
	projectConfig *config.ProjectConfig,
) (*orderlens.ConnectionConfig, string, error) {
	if granularFlags == nil {
		granularFlags = &GranularConnFlags{}
	}
	if cloudFlags == nil {
		cloudFlags = &CloudFlags{}
	}
	if envVars == nil {
		envVars = &EnvVars{}
	}

	if connStringFlag != "" && !granularFlags.IsEmpty() {
		return nil, "", fmt.Errorf(
			"cannot specify both --connection and granular flags (-h, -p, -U)\n" +
				"Choose one approach:\n" +
				"  1. Connection string: --connection \"postgresql://user@localhost:5432/postgres\"\n" +
				"  2. Granular flags: -h localhost -p 5432 -U myuser -d orders\n" +
				"  3. Environment variables: export PGHOST=localhost PGPORT=5432 PGUSER=myuser",
		)
	}

	var cfg *orderlens.ConnectionConfig
	var maintenanceDB string
	var err error

	switch {
	case connStringFlag != "":
		cfg, maintenanceDB, err = resolveFromConnectionString(connStringFlag, envVars)
	case granularFlags.IsEmpty() && envVars.DATABASE_URL != "":
		cfg, maintenanceDB, err = resolveFromConnectionString(envVars.DATABASE_URL, envVars)
	default:
		cfg, maintenanceDB, err = resolveFromGranularParams(granularFlags, envVars, projectConfig)
	}
	if err != nil {
		return nil, "", err
	}

	applyCloudAuth(cfg, cloudFlags, envVars, projectConfig)

	return cfg, maintenanceDB, nil
}

// applyCloudAuth switches the config to an IAM auth method when cloud
// credentials are configured. Precedence per parameter: flag, env var,
// orderlens.yaml. Google wins over AWS wins over Azure when multiple are
// configured, matching the explicitness of their flags.
func applyCloudAuth(
	cfg *orderlens.ConnectionConfig,
	flags *CloudFlags,
	env *EnvVars,
	projectConfig *config.ProjectConfig,
) {
	var pc config.ConnectionConfig
	if projectConfig != nil {
		pc = projectConfig.Connection
	}

	googleInstance := flags.GoogleInstance
	if googleInstance == "" {
		googleInstance = pc.GoogleInstance
	}
	if googleInstance != "" {
		cfg.AuthMethod = orderlens.AuthMethodGoogleIAM
		cfg.GoogleInstance = googleInstance
		return
	}

	awsRegion := flags.AWSRegion
	if awsRegion == "" && pc.AuthMethod == "aws-iam" {
		awsRegion = env.AWS_REGION
		if awsRegion == "" {
			awsRegion = pc.AWSRegion
		}
	}
	if awsRegion != "" {
		cfg.AuthMethod = orderlens.AuthMethodAWSIAM
		cfg.AWSRegion = awsRegion
		return
	}

	tenantID := flags.AzureTenantID
	if tenantID == "" {
		tenantID = env.AZURE_TENANT_ID
	}
	if tenantID == "" {
		tenantID = pc.AzureTenantID
	}

	clientID := flags.AzureClientID
	if clientID == "" {
		clientID = env.AZURE_CLIENT_ID
	}
	if clientID == "" {
		clientID = pc.AzureClientID
	}

	if tenantID != "" || clientID != "" {
		cfg.AuthMethod = orderlens.AuthMethodAzureEntraID
		cfg.AzureTenantID = tenantID
		cfg.AzureClientID = clientID
		cfg.AzureClientSecret = env.AZURE_CLIENT_SECRET
	}
}

// resolveFromConnectionString parses a connection string and derives the
// maintenance database. The database component of the string doubles as the
// maintenance database; the actual target comes from --db.
func resolveFromConnectionString(connStr string, envVars *EnvVars) (*orderlens.ConnectionConfig, string, error) {
	cfg, err := ParseConnectionString(connStr)
	if err != nil {
		return nil, "", fmt.Errorf("invalid connection string: %w", err)
	}

	// PGSSLMODE is a fallback for strings that omit sslmode, per libpq.
	if cfg.SSLMode == "" && envVars != nil && envVars.PGSSLMODE != "" {
		cfg.SSLMode = envVars.PGSSLMODE
	}
	if cfg.SSLMode == "" {
		cfg.SSLMode = "prefer"
	}

	maintenanceDB := cfg.Database
	if maintenanceDB == "" {
		maintenanceDB = orderlens.DefaultManagementDB
	}

	return cfg, maintenanceDB, nil
}

// resolveFromGranularParams builds a ConnectionConfig from granular flags,
// environment variables, and the project config, in that order.
func resolveFromGranularParams(
	flags *GranularConnFlags,
	envVars *EnvVars,
	projectConfig *config.ProjectConfig,
) (*orderlens.ConnectionConfig, string, error) {
	cfg := &orderlens.ConnectionConfig{
		AuthMethod:       orderlens.AuthMethodStandard,
		AdditionalParams: make(map[string]string),
	}

	var pc config.ConnectionConfig
	if projectConfig != nil {
		pc = projectConfig.Connection
	}

	cfg.Host = flags.Host
	if cfg.Host == "" {
		cfg.Host = envVars.PGHOST
	}
	if cfg.Host == "" {
		cfg.Host = pc.Host
	}
	if cfg.Host == "" {
		cfg.Host = "localhost"
	}

	if flags.Port != 0 {
		cfg.Port = flags.Port
	} else if envVars.PGPORT != "" {
		port, err := strconv.Atoi(envVars.PGPORT)
		if err != nil {
			return nil, "", fmt.Errorf("invalid $PGPORT value %q: must be an integer", envVars.PGPORT)
		}
		cfg.Port = port
	} else if pc.Port != 0 {
		cfg.Port = pc.Port
	} else {
		cfg.Port = 5432
	}

	cfg.Username = flags.Username
	if cfg.Username == "" {
		cfg.Username = envVars.PGUSER
	}
	if cfg.Username == "" {
		cfg.Username = pc.Username
	}
	if cfg.Username == "" {
		if currentUser := os.Getenv("USER"); currentUser != "" {
			cfg.Username = currentUser
		} else if currentUser := os.Getenv("USERNAME"); currentUser != "" {
			cfg.Username = currentUser
		}
	}

	cfg.Password = envVars.PGPASSWORD

	cfg.Database = flags.Database
	if cfg.Database == "" {
		cfg.Database = envVars.PGDATABASE
	}
	if cfg.Database == "" {
		cfg.Database = pc.Database
	}

	cfg.SSLMode = flags.SSLMode
	if cfg.SSLMode == "" {
		cfg.SSLMode = envVars.PGSSLMODE
	}
	if cfg.SSLMode == "" {
		cfg.SSLMode = pc.SSLMode
	}
	if cfg.SSLMode == "" {
		cfg.SSLMode = "prefer"
	}

	maintenanceDB := pc.ManagementDatabase
	if maintenanceDB == "" {
		maintenanceDB = orderlens.DefaultManagementDB
	}

	return cfg, maintenanceDB, nil
}
