// Package order defines the order record entity and its CSV wire format.
//
// Monetary amounts are integer cents throughout; the two-decimal string form
// exists only at the CSV and SQL boundaries. This keeps revenue arithmetic
// exact in Go regardless of row count.
package order

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire format for order dates.
const DateLayout = "2006-01-02"

// Order is one purchase line: write-once, read-many.
type Order struct {
	OrderID    string
	OrderDate  time.Time // date precision, UTC
	CustomerID string
	Product    string
	Category   string
	Quantity   int64
	UnitPrice  int64 // cents
}

// Revenue returns the line revenue in cents.
func (o Order) Revenue() int64 {
	return o.UnitPrice * o.Quantity
}

// ParseMoney converts a two-decimal currency string ("19.99") to cents.
// At most two fraction digits are accepted; a missing fraction is allowed
// ("7" and "7.5" parse to 700 and 750).
func ParseMoney(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}

	negative := false
	if strings.HasPrefix(s, "-") {
		negative = true
		s = s[1:]
	}

	whole, frac, hasFrac := strings.Cut(s, ".")
	if whole == "" {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	if hasFrac && (frac == "" || len(frac) > 2) {
		return 0, fmt.Errorf("invalid amount %q: expected at most two decimal places", s)
	}

	cents, err := parseDigits(whole)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	cents *= 100

	if hasFrac {
		f, err := parseDigits(frac)
		if err != nil {
			return 0, fmt.Errorf("invalid amount %q: %w", s, err)
		}
		if len(frac) == 1 {
			f *= 10
		}
		cents += f
	}

	if negative {
		cents = -cents
	}
	return cents, nil
}

// FormatMoney renders cents as a two-decimal currency string.
func FormatMoney(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

func parseDigits(s string) (int64, error) {
	if s == "" {
		return 0, fmt.Errorf("missing digits")
	}
	var n int64
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("unexpected character %q", r)
		}
		n = n*10 + int64(r-'0')
	}
	return n, nil
}
