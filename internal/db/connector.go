// Package db provides PostgreSQL connectivity: connection string parsing,
// parameter resolution, pooled connections, and cloud IAM authentication.
package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vkaraulov/orderlens/internal/retry"
	"github.com/vkaraulov/orderlens/pkg/orderlens"
)

const (
	// DefaultMaxConns bounds the pool. The load and report stages are
	// sequential, so a handful of connections is plenty.
	DefaultMaxConns = 4

	DefaultMinConns = 1

	DefaultMaxConnIdleTime = 5 * time.Minute
)

func configurePool(poolConfig *pgxpool.Config) {
	poolConfig.MaxConns = DefaultMaxConns
	poolConfig.MinConns = DefaultMinConns
	poolConfig.MaxConnIdleTime = DefaultMaxConnIdleTime
}

func newRetryExecutor() *retry.Executor {
	classifier := retry.NewPostgreSQLErrorClassifier()
	strategy := retry.NewExponentialBackoff(orderlens.DefaultRetryMaxAttempts,
		retry.WithInitialDelay(orderlens.DefaultRetryInitialDelay),
		retry.WithMaxDelay(orderlens.DefaultRetryMaxDelay),
	)
	return retry.NewExecutor(classifier, strategy)
}

// StandardConnector implements the Connector interface for username/password
// authentication with automatic retry on transient failures.
type StandardConnector struct {
	config        *orderlens.ConnectionConfig
	retryExecutor *retry.Executor
}

// NewStandardConnector creates a StandardConnector with the given configuration.
func NewStandardConnector(config *orderlens.ConnectionConfig) *StandardConnector {
	return &StandardConnector{
		config:        config,
		retryExecutor: newRetryExecutor(),
	}
}

// Connect establishes a connection pool using standard authentication.
func (c *StandardConnector) Connect(ctx context.Context) (*pgxpool.Pool, error) {
	var pool *pgxpool.Pool
	connStr := BuildConnectionString(c.config)

	err := c.retryExecutor.Execute(ctx, func(ctx context.Context) error {
		poolConfig, err := pgxpool.ParseConfig(connStr)
		if err != nil {
			return fmt.Errorf("parse connection config: %w", err)
		}

		configurePool(poolConfig)

		pool, err = pgxpool.NewWithConfig(ctx, poolConfig)
		if err != nil {
			return wrapConnectionError(err, c.config.Host, c.config.Port, c.config.Database)
		}

		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return wrapConnectionError(err, c.config.Host, c.config.Port, c.config.Database)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return pool, nil
}

// NewConnector creates the appropriate Connector for the config's AuthMethod.
func NewConnector(config *orderlens.ConnectionConfig) (orderlens.Connector, error) {
	switch config.AuthMethod {
	case orderlens.AuthMethodStandard:
		return NewStandardConnector(config), nil
	case orderlens.AuthMethodAWSIAM:
		return newAWSConnector(config)
	case orderlens.AuthMethodGoogleIAM:
		return newGoogleConnector(config)
	case orderlens.AuthMethodAzureEntraID:
		return newAzureConnector(config)
	default:
		return nil, fmt.Errorf("auth method %v: %w", config.AuthMethod, orderlens.ErrUnsupportedAuthMethod)
	}
}

// wrapConnectionError wraps raw pgx connection errors with actionable guidance.
func wrapConnectionError(err error, host string, port int, database string) error {
	errStr := strings.ToLower(err.Error())
	addr := fmt.Sprintf("%s:%d", host, port)

	switch {
	case strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "actively refused"):
		return fmt.Errorf(`connection refused to %s

Possible causes:
  - PostgreSQL is not running (check: pg_isready -h %s -p %d)
  - Wrong host or port
  - Firewall blocking the connection

Original error: %w`, addr, host, port, connErr(err))

	case strings.Contains(errStr, "no such host") || strings.Contains(errStr, "no host"):
		return fmt.Errorf(`cannot resolve host %q

Possible causes:
  - Hostname is misspelled
  - DNS is not configured or reachable

Original error: %w`, host, connErr(err))

	case strings.Contains(errStr, "password authentication failed"):
		return fmt.Errorf(`password authentication failed for database %q

Possible causes:
  - Wrong password (check $PGPASSWORD or ~/.pgpass)
  - Wrong username
  - User does not have access to the database

Original error: %w`, database, connErr(err))

	case strings.Contains(errStr, "does not exist"):
		return fmt.Errorf(`database %q does not exist

The load stage creates it automatically:
  orderlens load --input orders.csv --db %s

Original error: %w`, database, database, connErr(err))

	case strings.Contains(errStr, "timeout") || strings.Contains(errStr, "timed out"):
		return fmt.Errorf(`connection timed out to %s

Possible causes:
  - Server is overloaded or unresponsive
  - Firewall silently dropping packets
  - Wrong host/port (server not listening)

Original error: %w`, addr, connErr(err))

	case strings.Contains(errStr, "ssl") || strings.Contains(errStr, "tls"):
		return fmt.Errorf(`SSL/TLS connection error

Possible causes:
  - Server requires SSL but --sslmode is wrong
  - Certificate verification failed (try --sslmode=require)

Original error: %w`, connErr(err))

	default:
		return fmt.Errorf("failed to connect to database: %w", connErr(err))
	}
}

// errors tags a raw connection failure with the connection sentinel so
// callers can map it to the right exit code with errors.Is.
func connErr(err error) error {
	return fmt.Errorf("%w: %w", orderlens.ErrConnectionFailed, err)
}

// newAWSConnector creates a token-based connector with the AWS IAM token provider.
func newAWSConnector(config *orderlens.ConnectionConfig) (orderlens.Connector, error) {
	endpoint := fmt.Sprintf("%s:%d", config.Host, config.Port)

	tokenProvider, err := NewAWSIAMTokenProvider(endpoint, config.AWSRegion, config.Username)
	if err != nil {
		return nil, fmt.Errorf("create AWS IAM token provider: %w", err)
	}

	return NewTokenBasedConnector(config, tokenProvider, "AWS IAM"), nil
}

// newGoogleConnector creates a connector for Google Cloud SQL IAM authentication.
func newGoogleConnector(config *orderlens.ConnectionConfig) (orderlens.Connector, error) {
	if config.GoogleInstance == "" {
		return nil, fmt.Errorf("google Cloud SQL IAM auth requires --google-instance (project:region:instance)")
	}
	if config.Username == "" {
		return nil, fmt.Errorf("google Cloud SQL IAM auth requires username (-U)")
	}

	return NewGoogleCloudSQLConnector(config, config.GoogleInstance), nil
}

// newAzureConnector creates a token-based connector with the Azure Entra ID
// token provider. Explicit tenant/client/secret selects Service Principal
// auth; otherwise the DefaultAzureCredential chain is used.
func newAzureConnector(config *orderlens.ConnectionConfig) (orderlens.Connector, error) {
	var tokenProvider TokenProvider
	var err error

	if config.AzureTenantID != "" && config.AzureClientID != "" && config.AzureClientSecret != "" {
		tokenProvider, err = NewAzureServicePrincipalProvider(
			config.AzureTenantID,
			config.AzureClientID,
			config.AzureClientSecret,
		)
		if err != nil {
			return nil, fmt.Errorf("create Azure Service Principal provider: %w", err)
		}
	} else {
		tokenProvider, err = NewAzureDefaultCredentialProvider()
		if err != nil {
			return nil, fmt.Errorf("create Azure Default Credential provider: %w", err)
		}
	}

	return NewTokenBasedConnector(config, tokenProvider, "Azure"), nil
}
