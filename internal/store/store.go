// Package store owns the orders table: schema, bulk replacement, and the
// fixed aggregation queries behind the reports.
//
// Monetary values cross the SQL boundary as two-decimal strings. Parameters
// are bound as strings into NUMERIC columns, and aggregates are read back
// with a ::text cast and parsed to integer cents, so no float arithmetic
// touches money on either side.
package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vkaraulov/orderlens/internal/order"
	"github.com/vkaraulov/orderlens/pkg/orderlens"
)

// Store executes order persistence and aggregation against a single pool.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a Store. Panics if pool is nil, following the constructor
// injection convention used across the codebase.
func New(pool *pgxpool.Pool) *Store {
	if pool == nil {
		panic("store.New: pool cannot be nil")
	}
	return &Store{pool: pool}
}

// TableExists reports whether the orders table is present.
func (s *Store) TableExists(ctx context.Context) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM information_schema.tables
		 WHERE table_schema = current_schema() AND table_name = $1)`,
		orderlens.OrdersTable,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check orders table existence: %w", err)
	}
	return exists, nil
}

// Count returns the number of rows in the orders table.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM orders`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count orders: %w", err)
	}
	return count, nil
}

// Replace drops and recreates the orders table, then bulk-inserts all rows
// in a single transaction. Either the new dataset lands completely or the
// old table survives untouched.
func (s *Store) Replace(ctx context.Context, orders []order.Order) (int64, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, stmt := range []string{dropOrdersTable, createOrdersTable, createOrderDateIndex, createCustomerIndex} {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return 0, fmt.Errorf("recreate orders table: %w: %w", orderlens.ErrExecutionFailed, err)
		}
	}

	copied, err := tx.CopyFrom(ctx,
		pgx.Identifier{orderlens.OrdersTable},
		[]string{"order_id", "order_date", "customer_id", "product", "category", "quantity", "unit_price"},
		pgx.CopyFromSlice(len(orders), func(i int) ([]any, error) {
			o := orders[i]
			return []any{
				o.OrderID,
				o.OrderDate,
				o.CustomerID,
				o.Product,
				o.Category,
				o.Quantity,
				order.FormatMoney(o.UnitPrice),
			}, nil
		}),
	)
	if err != nil {
		return 0, fmt.Errorf("bulk insert orders: %w: %w", orderlens.ErrExecutionFailed, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit load: %w", err)
	}

	return copied, nil
}
