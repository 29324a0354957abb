package orderlens

import "context"

// DatabaseManager handles server-level database lifecycle operations.
// These run against the maintenance database, not the target database.
type DatabaseManager interface {
	// Exists checks if a database exists.
	Exists(ctx context.Context, conn DBConnection, dbName string) (bool, error)

	// Create creates a new database.
	Create(ctx context.Context, conn DBConnection, dbName string) error

	// Drop drops the specified database.
	Drop(ctx context.Context, conn DBConnection, dbName string) error

	// TerminateConnections terminates all other connections to the
	// specified database, a prerequisite for dropping it.
	TerminateConnections(ctx context.Context, conn DBConnection, dbName string) error
}
