// Package report renders query results into the delimited report files and
// the Markdown summary.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/vkaraulov/orderlens/internal/order"
	"github.com/vkaraulov/orderlens/pkg/orderlens"
)

// Column headers for each report file. These are part of the output
// contract and match the report documentation.
var (
	DailyRevenueHeader      = []string{"Date", "Order Count", "Total Revenue", "Average Order Value"}
	RevenueByCategoryHeader = []string{"Category", "Order Count", "Total Revenue", "Average Order Value", "Units Sold"}
	TopProductsHeader       = []string{"Product", "Category", "Times Ordered", "Units Sold", "Total Revenue", "Avg Unit Price"}
	RepeatCustomersHeader   = []string{"Customer ID", "Order Count", "Total Spent", "Avg Order Value", "First Order", "Last Order", "Categories Purchased"}
)

// WriteDailyRevenue writes the daily revenue report as CSV.
func WriteDailyRevenue(w io.Writer, rows []orderlens.DailyRevenueRow) error {
	return writeCSV(w, DailyRevenueHeader, len(rows), func(i int) []string {
		r := rows[i]
		return []string{
			r.Date.Format(order.DateLayout),
			strconv.FormatInt(r.OrderCount, 10),
			order.FormatMoney(r.Revenue),
			order.FormatMoney(r.AvgOrderValue),
		}
	})
}

// WriteRevenueByCategory writes the revenue-by-category report as CSV.
func WriteRevenueByCategory(w io.Writer, rows []orderlens.CategoryRevenueRow) error {
	return writeCSV(w, RevenueByCategoryHeader, len(rows), func(i int) []string {
		r := rows[i]
		return []string{
			r.Category,
			strconv.FormatInt(r.OrderCount, 10),
			order.FormatMoney(r.Revenue),
			order.FormatMoney(r.AvgOrderValue),
			strconv.FormatInt(r.UnitsSold, 10),
		}
	})
}

// WriteTopProducts writes the top-products report as CSV.
func WriteTopProducts(w io.Writer, rows []orderlens.TopProductRow) error {
	return writeCSV(w, TopProductsHeader, len(rows), func(i int) []string {
		r := rows[i]
		return []string{
			r.Product,
			r.Category,
			strconv.FormatInt(r.TimesOrdered, 10),
			strconv.FormatInt(r.UnitsSold, 10),
			order.FormatMoney(r.Revenue),
			order.FormatMoney(r.AvgUnitPrice),
		}
	})
}

// WriteRepeatCustomers writes the repeat-customers report as CSV.
func WriteRepeatCustomers(w io.Writer, rows []orderlens.RepeatCustomerRow) error {
	return writeCSV(w, RepeatCustomersHeader, len(rows), func(i int) []string {
		r := rows[i]
		return []string{
			r.CustomerID,
			strconv.FormatInt(r.OrderCount, 10),
			order.FormatMoney(r.TotalSpent),
			order.FormatMoney(r.AvgOrderValue),
			r.FirstOrder.Format(order.DateLayout),
			r.LastOrder.Format(order.DateLayout),
			strconv.FormatInt(r.Categories, 10),
		}
	})
}

func writeCSV(w io.Writer, header []string, n int, record func(int) []string) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i := 0; i < n; i++ {
		if err := cw.Write(record(i)); err != nil {
			return fmt.Errorf("write record %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
