package orderlens

import (
	"context"

	"github.com/jackc/pgx/v5/pgconn"
)

// DBConnection is the slice of a connection pool the database manager
// needs. Keeping it an interface keeps pgx out of the public API and lets
// tests substitute a fake.
type DBConnection interface {
	// Exec runs a statement that returns no rows.
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)

	// QueryRow runs a query expected to return at most one row. The
	// returned Row is never nil; errors surface from Scan.
	QueryRow(ctx context.Context, sql string, args ...any) Row

	// Acquire checks out a dedicated connection. CREATE DATABASE and
	// DROP DATABASE refuse to run inside a transaction, so they need
	// connection affinity. Callers must Release the connection.
	Acquire(ctx context.Context) (PooledConnection, error)
}

// Row is the single-row result of QueryRow.
type Row interface {
	Scan(dest ...any) error
}

// PooledConnection is a checked-out pool connection. Release returns it;
// the connection must not be used afterwards.
type PooledConnection interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Release()
}
