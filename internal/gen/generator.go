// Package gen produces synthetic order datasets for exercising the load
// and report stages without a real upstream feed.
package gen

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/vkaraulov/orderlens/internal/order"
)

// Generator emits randomized but plausible orders. A fixed seed yields a
// byte-identical dataset, which the tests rely on.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a generator seeded with the given value.
func NewGenerator(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Orders generates count orders with dates uniformly distributed in
// [start, end] at day precision. It returns an error if the range is
// inverted or count is not positive.
func (g *Generator) Orders(count int, start, end time.Time) ([]order.Order, error) {
	if count <= 0 {
		return nil, fmt.Errorf("order count must be positive, got %d", count)
	}

	start = truncateToDay(start)
	end = truncateToDay(end)
	if end.Before(start) {
		return nil, fmt.Errorf("end date %s is before start date %s",
			end.Format(order.DateLayout), start.Format(order.DateLayout))
	}
	days := int(end.Sub(start).Hours()/24) + 1

	orders := make([]order.Order, 0, count)
	for i := 0; i < count; i++ {
		entry := catalog[g.rng.Intn(len(catalog))]

		id, err := uuid.NewRandomFromReader(g.rng)
		if err != nil {
			return nil, fmt.Errorf("generate order id: %w", err)
		}

		orders = append(orders, order.Order{
			OrderID:    id.String(),
			OrderDate:  start.AddDate(0, 0, g.rng.Intn(days)),
			CustomerID: fmt.Sprintf("C%04d", 1+g.rng.Intn(customerPoolSize)),
			Product:    entry.Product,
			Category:   entry.Category,
			Quantity:   int64(1 + g.rng.Intn(maxQuantity)),
			UnitPrice:  g.price(entry),
		})
	}
	return orders, nil
}

// price draws a uniform amount from the entry's band, snapped to whole
// cents ending in .X9 so generated prices read like retail prices.
func (g *Generator) price(entry catalogEntry) int64 {
	span := entry.MaxPrice - entry.MinPrice + 1
	p := entry.MinPrice + g.rng.Int63n(span)
	p = p - p%10 + 9
	if p > entry.MaxPrice {
		p -= 10
	}
	if p < entry.MinPrice {
		p = entry.MinPrice
	}
	return p
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
