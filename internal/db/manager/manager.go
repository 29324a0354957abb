// Package manager provides server-level database operations: existence
// checks, creation, and dropping. All identifier interpolation goes through
// pgx.Identifier.Sanitize, so names with spaces or quotes are safe.
package manager

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/vkaraulov/orderlens/pkg/orderlens"
)

const (
	queryDatabaseExists       = "SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)"
	queryTerminateConnections = `
		SELECT pg_terminate_backend(pid)
		FROM pg_stat_activity
		WHERE datname = $1 AND pid <> pg_backend_pid()
	`
)

// Manager implements database lifecycle operations on the DBConnection
// abstraction. Stateless; thread safety follows the injected connection.
type Manager struct{}

// New creates a DatabaseManager instance.
func New() orderlens.DatabaseManager {
	return &Manager{}
}

// Exists checks if a database exists.
func (m *Manager) Exists(ctx context.Context, conn orderlens.DBConnection, dbName string) (bool, error) {
	var exists bool
	err := conn.QueryRow(ctx, queryDatabaseExists, dbName).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check database existence: %w", err)
	}
	return exists, nil
}

// Create creates a new database. CREATE DATABASE cannot run inside a
// transaction, so it uses a dedicated connection.
func (m *Manager) Create(ctx context.Context, conn orderlens.DBConnection, dbName string) error {
	pooledConn, err := conn.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer pooledConn.Release()

	query := fmt.Sprintf("CREATE DATABASE %s", pgx.Identifier{dbName}.Sanitize())
	if _, err := pooledConn.Exec(ctx, query); err != nil {
		return fmt.Errorf("create database %q: %w", dbName, err)
	}
	return nil
}

// Drop drops the specified database.
func (m *Manager) Drop(ctx context.Context, conn orderlens.DBConnection, dbName string) error {
	pooledConn, err := conn.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer pooledConn.Release()

	query := fmt.Sprintf("DROP DATABASE %s", pgx.Identifier{dbName}.Sanitize())
	if _, err := pooledConn.Exec(ctx, query); err != nil {
		return fmt.Errorf("drop database %q: %w", dbName, err)
	}
	return nil
}

// TerminateConnections terminates all other connections to the database.
func (m *Manager) TerminateConnections(ctx context.Context, conn orderlens.DBConnection, dbName string) error {
	if _, err := conn.Exec(ctx, queryTerminateConnections, dbName); err != nil {
		return fmt.Errorf("terminate connections to database %q: %w", dbName, err)
	}
	return nil
}

var _ orderlens.DatabaseManager = (*Manager)(nil)
