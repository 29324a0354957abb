package db

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vkaraulov/orderlens/internal/retry"
	"github.com/vkaraulov/orderlens/pkg/orderlens"
)

// tokenExpiryWarning is how close to expiry a freshly acquired token can be
// before a warning is printed.
const tokenExpiryWarning = 5 * time.Minute

// TokenBasedConnector connects to cloud-hosted PostgreSQL using short-lived
// credentials (AWS IAM, Azure Entra ID). Every connection attempt acquires a
// fresh token and sends it as the password.
type TokenBasedConnector struct {
	config        *orderlens.ConnectionConfig
	tokenProvider TokenProvider
	retryExecutor *retry.Executor
	providerName  string
}

// NewTokenBasedConnector creates a connector backed by the given
// TokenProvider. providerName appears in error and warning messages.
func NewTokenBasedConnector(config *orderlens.ConnectionConfig, tokenProvider TokenProvider, providerName string) *TokenBasedConnector {
	return &TokenBasedConnector{
		config:        config,
		tokenProvider: tokenProvider,
		retryExecutor: newRetryExecutor(),
		providerName:  providerName,
	}
}

func (c *TokenBasedConnector) Connect(ctx context.Context) (*pgxpool.Pool, error) {
	var pool *pgxpool.Pool
	err := c.retryExecutor.Execute(ctx, func(ctx context.Context) error {
		p, err := c.connectOnce(ctx)
		if err != nil {
			return err
		}
		pool = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pool, nil
}

func (c *TokenBasedConnector) connectOnce(ctx context.Context) (*pgxpool.Pool, error) {
	token, expiresOn, err := c.tokenProvider.GetToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire %s token: %w", c.providerName, err)
	}
	if ttl := time.Until(expiresOn); ttl < tokenExpiryWarning {
		fmt.Fprintf(os.Stderr, "Warning: %s token expires in %v\n", c.providerName, ttl.Round(time.Second))
	}

	// Token stands in for the password; never stored on c.config.
	cfg := *c.config
	cfg.Password = token

	poolConfig, err := pgxpool.ParseConfig(BuildConnectionString(&cfg))
	if err != nil {
		return nil, fmt.Errorf("parse connection config: %w", err)
	}
	configurePool(poolConfig)

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, wrapConnectionError(err, c.config.Host, c.config.Port, c.config.Database)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, wrapConnectionError(err, c.config.Host, c.config.Port, c.config.Database)
	}
	return pool, nil
}
