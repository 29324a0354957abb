package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/vkaraulov/orderlens/internal/order"
	"github.com/vkaraulov/orderlens/pkg/orderlens"
)

// The report queries are fixed. Ties on the ordering metric break on the
// natural sort order of the grouping key so output is stable across runs.
const (
	queryDailyRevenue = `
		SELECT
			order_date,
			COUNT(*) AS order_count,
			SUM(revenue)::text AS total_revenue,
			round(AVG(revenue), 2)::text AS avg_order_value
		FROM orders
		GROUP BY order_date
		ORDER BY order_date`

	queryRevenueByCategory = `
		SELECT
			category,
			COUNT(*) AS order_count,
			SUM(revenue)::text AS total_revenue,
			round(AVG(revenue), 2)::text AS avg_order_value,
			SUM(quantity) AS total_units_sold
		FROM orders
		GROUP BY category
		ORDER BY SUM(revenue) DESC, category`

	queryTopProducts = `
		SELECT
			product,
			category,
			COUNT(*) AS times_ordered,
			SUM(quantity) AS total_units_sold,
			SUM(revenue)::text AS total_revenue,
			round(AVG(unit_price), 2)::text AS avg_unit_price
		FROM orders
		GROUP BY product, category
		ORDER BY SUM(revenue) DESC, product
		LIMIT $1`

	queryRepeatCustomers = `
		SELECT
			customer_id,
			COUNT(*) AS order_count,
			SUM(revenue)::text AS total_spent,
			round(AVG(revenue), 2)::text AS avg_order_value,
			MIN(order_date) AS first_order_date,
			MAX(order_date) AS last_order_date,
			COUNT(DISTINCT category) AS categories_purchased
		FROM orders
		GROUP BY customer_id
		HAVING COUNT(*) >= 2
		ORDER BY SUM(revenue) DESC, customer_id`

	querySummaryStats = `
		SELECT
			COUNT(*) AS total_orders,
			COUNT(DISTINCT customer_id) AS total_customers,
			COALESCE(SUM(revenue), 0)::text AS total_revenue,
			COALESCE(round(AVG(revenue), 2), 0)::text AS avg_order_value,
			MIN(order_date) AS first_date,
			MAX(order_date) AS last_date
		FROM orders`
)

// DailyRevenue returns per-day order counts and revenue, oldest day first.
func (s *Store) DailyRevenue(ctx context.Context) ([]orderlens.DailyRevenueRow, error) {
	rows, err := s.pool.Query(ctx, queryDailyRevenue)
	if err != nil {
		return nil, fmt.Errorf("daily revenue query: %w: %w", orderlens.ErrExecutionFailed, err)
	}

	return collect(rows, func(row pgx.Row) (orderlens.DailyRevenueRow, error) {
		var r orderlens.DailyRevenueRow
		var revenue, avg string
		if err := row.Scan(&r.Date, &r.OrderCount, &revenue, &avg); err != nil {
			return r, err
		}
		return r, scanMoney(map[*int64]string{&r.Revenue: revenue, &r.AvgOrderValue: avg})
	})
}

// RevenueByCategory returns per-category totals, highest revenue first.
func (s *Store) RevenueByCategory(ctx context.Context) ([]orderlens.CategoryRevenueRow, error) {
	rows, err := s.pool.Query(ctx, queryRevenueByCategory)
	if err != nil {
		return nil, fmt.Errorf("revenue by category query: %w: %w", orderlens.ErrExecutionFailed, err)
	}

	return collect(rows, func(row pgx.Row) (orderlens.CategoryRevenueRow, error) {
		var r orderlens.CategoryRevenueRow
		var revenue, avg string
		if err := row.Scan(&r.Category, &r.OrderCount, &revenue, &avg, &r.UnitsSold); err != nil {
			return r, err
		}
		return r, scanMoney(map[*int64]string{&r.Revenue: revenue, &r.AvgOrderValue: avg})
	})
}

// TopProducts returns the limit highest-revenue product/category pairs.
func (s *Store) TopProducts(ctx context.Context, limit int) ([]orderlens.TopProductRow, error) {
	if limit <= 0 {
		limit = orderlens.DefaultTopProducts
	}

	rows, err := s.pool.Query(ctx, queryTopProducts, limit)
	if err != nil {
		return nil, fmt.Errorf("top products query: %w: %w", orderlens.ErrExecutionFailed, err)
	}

	return collect(rows, func(row pgx.Row) (orderlens.TopProductRow, error) {
		var r orderlens.TopProductRow
		var revenue, avgPrice string
		if err := row.Scan(&r.Product, &r.Category, &r.TimesOrdered, &r.UnitsSold, &revenue, &avgPrice); err != nil {
			return r, err
		}
		return r, scanMoney(map[*int64]string{&r.Revenue: revenue, &r.AvgUnitPrice: avgPrice})
	})
}

// RepeatCustomers returns customers with at least two orders, biggest
// spenders first.
func (s *Store) RepeatCustomers(ctx context.Context) ([]orderlens.RepeatCustomerRow, error) {
	rows, err := s.pool.Query(ctx, queryRepeatCustomers)
	if err != nil {
		return nil, fmt.Errorf("repeat customers query: %w: %w", orderlens.ErrExecutionFailed, err)
	}

	return collect(rows, func(row pgx.Row) (orderlens.RepeatCustomerRow, error) {
		var r orderlens.RepeatCustomerRow
		var spent, avg string
		if err := row.Scan(&r.CustomerID, &r.OrderCount, &spent, &avg, &r.FirstOrder, &r.LastOrder, &r.Categories); err != nil {
			return r, err
		}
		return r, scanMoney(map[*int64]string{&r.TotalSpent: spent, &r.AvgOrderValue: avg})
	})
}

// Summary returns whole-table aggregates for the Markdown digest.
// Returns ErrNoOrders when the table is empty.
func (s *Store) Summary(ctx context.Context) (orderlens.SummaryStats, error) {
	// MIN/MAX over an empty table come back NULL, so an empty table is
	// rejected up front instead of scanned around.
	count, err := s.Count(ctx)
	if err != nil {
		return orderlens.SummaryStats{}, err
	}
	if count == 0 {
		return orderlens.SummaryStats{}, orderlens.ErrNoOrders
	}

	var stats orderlens.SummaryStats
	var revenue, avg string

	err = s.pool.QueryRow(ctx, querySummaryStats).Scan(
		&stats.TotalOrders,
		&stats.TotalCustomers,
		&revenue,
		&avg,
		&stats.FirstDate,
		&stats.LastDate,
	)
	if err != nil {
		return orderlens.SummaryStats{}, fmt.Errorf("summary query: %w: %w", orderlens.ErrExecutionFailed, err)
	}

	if err := scanMoney(map[*int64]string{&stats.TotalRevenue: revenue, &stats.AvgOrderValue: avg}); err != nil {
		return orderlens.SummaryStats{}, err
	}
	return stats, nil
}

// collect drains rows through scan, closing them on every path.
func collect[T any](rows pgx.Rows, scan func(pgx.Row) (T, error)) ([]T, error) {
	defer rows.Close()

	var out []T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan report row: %w", err)
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read report rows: %w: %w", orderlens.ErrExecutionFailed, err)
	}
	return out, nil
}

// scanMoney parses the text-cast NUMERIC values into cents.
func scanMoney(fields map[*int64]string) error {
	for dst, text := range fields {
		cents, err := order.ParseMoney(text)
		if err != nil {
			return fmt.Errorf("parse money value %q: %w", text, err)
		}
		*dst = cents
	}
	return nil
}
