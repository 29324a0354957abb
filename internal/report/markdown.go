package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/vkaraulov/orderlens/internal/order"
	"github.com/vkaraulov/orderlens/pkg/orderlens"
)

// SummaryData carries everything the Markdown digest needs.
type SummaryData struct {
	Stats           orderlens.SummaryStats
	Daily           []orderlens.DailyRevenueRow
	Categories      []orderlens.CategoryRevenueRow
	TopProducts     []orderlens.TopProductRow
	RepeatCustomers []orderlens.RepeatCustomerRow
	GeneratedAt     time.Time
}

// WriteSummary renders the Markdown digest: headline numbers, the leading
// categories and products, and a few derived insights.
func WriteSummary(w io.Writer, data SummaryData) error {
	var b strings.Builder

	repeatCount := int64(len(data.RepeatCustomers))
	repeatRate := 0.0
	if data.Stats.TotalCustomers > 0 {
		repeatRate = float64(repeatCount) / float64(data.Stats.TotalCustomers) * 100
	}

	b.WriteString("# Orders Analytics Summary Report\n\n")
	fmt.Fprintf(&b, "Generated on: %s\n\n", data.GeneratedAt.Format("2006-01-02 15:04:05"))

	b.WriteString("## Overview\n\n")
	fmt.Fprintf(&b, "- **Total Orders**: %s\n", groupInt(data.Stats.TotalOrders))
	fmt.Fprintf(&b, "- **Total Customers**: %s\n", groupInt(data.Stats.TotalCustomers))
	fmt.Fprintf(&b, "- **Total Revenue**: %s\n", dollars(data.Stats.TotalRevenue))
	fmt.Fprintf(&b, "- **Average Order Value**: %s\n", dollars(data.Stats.AvgOrderValue))
	fmt.Fprintf(&b, "- **Date Range**: %s to %s\n",
		data.Stats.FirstDate.Format(order.DateLayout),
		data.Stats.LastDate.Format(order.DateLayout))
	fmt.Fprintf(&b, "- **Repeat Customers**: %s (%.1f%% of all customers)\n\n",
		groupInt(repeatCount), repeatRate)

	b.WriteString("## Top Performing Categories\n\n")
	b.WriteString("| Category | Orders | Revenue | Avg Order Value |\n")
	b.WriteString("|----------|--------|---------|-----------------|\n")
	for _, c := range head(data.Categories, 5) {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
			c.Category, groupInt(c.OrderCount), dollars(c.Revenue), dollars(c.AvgOrderValue))
	}

	b.WriteString("\n## Top 5 Products by Revenue\n\n")
	b.WriteString("| Product | Category | Revenue | Units Sold |\n")
	b.WriteString("|---------|----------|---------|------------|\n")
	for _, p := range head(data.TopProducts, 5) {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
			p.Product, p.Category, dollars(p.Revenue), groupInt(p.UnitsSold))
	}

	b.WriteString("\n## Key Insights\n\n")

	if len(data.Daily) > 0 {
		highest, lowest, total := data.Daily[0].Revenue, data.Daily[0].Revenue, int64(0)
		for _, d := range data.Daily {
			if d.Revenue > highest {
				highest = d.Revenue
			}
			if d.Revenue < lowest {
				lowest = d.Revenue
			}
			total += d.Revenue
		}
		avgDaily := total / int64(len(data.Daily))

		b.WriteString("### Revenue Trends\n")
		fmt.Fprintf(&b, "- Highest single-day revenue: %s\n", dollars(highest))
		fmt.Fprintf(&b, "- Lowest single-day revenue: %s\n", dollars(lowest))
		fmt.Fprintf(&b, "- Average daily revenue: %s\n\n", dollars(avgDaily))
	}

	if repeatCount > 0 {
		top := data.RepeatCustomers[0]
		var repeatTotal int64
		for _, c := range data.RepeatCustomers {
			repeatTotal += c.TotalSpent
		}

		b.WriteString("### Customer Behavior\n")
		fmt.Fprintf(&b, "- %s customers made multiple purchases\n", groupInt(repeatCount))
		fmt.Fprintf(&b, "- Top repeat customer spent: %s across %d orders\n",
			dollars(top.TotalSpent), top.OrderCount)
		fmt.Fprintf(&b, "- Average repeat customer value: %s\n\n",
			dollars(repeatTotal/repeatCount))
	}

	if len(data.Categories) > 0 && len(data.TopProducts) > 0 {
		b.WriteString("### Product Performance\n")
		fmt.Fprintf(&b, "- Most popular category: %s (%s orders)\n",
			data.Categories[0].Category, groupInt(data.Categories[0].OrderCount))
		fmt.Fprintf(&b, "- Best-selling product: %s (%s revenue)\n\n",
			data.TopProducts[0].Product, dollars(data.TopProducts[0].Revenue))
	}

	b.WriteString("## Files Generated\n\n")
	fmt.Fprintf(&b, "- `%s` - Daily revenue breakdown\n", orderlens.ReportFileDailyRevenue)
	fmt.Fprintf(&b, "- `%s` - Category performance analysis\n", orderlens.ReportFileRevenueByCategory)
	fmt.Fprintf(&b, "- `%s` - Top products by revenue\n", orderlens.ReportFileTopProducts)
	fmt.Fprintf(&b, "- `%s` - Repeat customer analysis\n", orderlens.ReportFileRepeatCustomers)
	fmt.Fprintf(&b, "- `%s` - This summary report\n", orderlens.ReportFileSummary)

	_, err := io.WriteString(w, b.String())
	return err
}

func head[T any](s []T, n int) []T {
	if len(s) < n {
		return s
	}
	return s[:n]
}

// dollars renders cents as "$1,234.56".
func dollars(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%s.%02d", sign, groupInt(cents/100), cents%100)
}

// groupInt renders n with comma thousands separators.
func groupInt(n int64) string {
	s := fmt.Sprintf("%d", n)
	if n < 0 {
		return "-" + groupInt(-n)
	}
	if len(s) <= 3 {
		return s
	}

	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
