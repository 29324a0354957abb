package services

import (
	"context"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vkaraulov/orderlens/pkg/orderlens"
)

type mockConnector struct {
	pool *pgxpool.Pool
	err  error
}

func (m *mockConnector) Connect(_ context.Context) (*pgxpool.Pool, error) {
	return m.pool, m.err
}

type mockApprover struct {
	approved bool
	err      error
}

func (m *mockApprover) RequestApproval(_ context.Context, _ string, _ int64) (bool, error) {
	return m.approved, m.err
}

type mockDatabaseManager struct {
	existsResult bool
	existsErr    error
	createErr    error
	dropErr      error
	terminateErr error

	createdDatabases []string
}

func (m *mockDatabaseManager) Exists(_ context.Context, _ orderlens.DBConnection, _ string) (bool, error) {
	return m.existsResult, m.existsErr
}

func (m *mockDatabaseManager) Create(_ context.Context, _ orderlens.DBConnection, dbName string) error {
	if m.createErr == nil {
		m.createdDatabases = append(m.createdDatabases, dbName)
	}
	return m.createErr
}

func (m *mockDatabaseManager) Drop(_ context.Context, _ orderlens.DBConnection, _ string) error {
	return m.dropErr
}

func (m *mockDatabaseManager) TerminateConnections(_ context.Context, _ orderlens.DBConnection, _ string) error {
	return m.terminateErr
}

type mockDBConnection struct{}

func (m *mockDBConnection) Exec(_ context.Context, _ string, _ ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (m *mockDBConnection) QueryRow(_ context.Context, _ string, _ ...any) orderlens.Row {
	return nil
}

func (m *mockDBConnection) Acquire(_ context.Context) (orderlens.PooledConnection, error) {
	return nil, nil
}

type mockLogger struct{}

func (m *mockLogger) Verbose(_ string, _ ...interface{}) {}
func (m *mockLogger) Info(_ string, _ ...interface{})    {}
func (m *mockLogger) Error(_ string, _ ...interface{})   {}
