package order

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/vkaraulov/orderlens/pkg/orderlens"
)

// Header is the fixed input column order. The loader rejects files whose
// header row does not match it exactly.
var Header = []string{
	"order_id", "order_date", "customer_id", "product", "category", "quantity", "unit_price",
}

// Record renders an order as one CSV record in Header order.
func Record(o Order) []string {
	return []string{
		o.OrderID,
		o.OrderDate.Format(DateLayout),
		o.CustomerID,
		o.Product,
		o.Category,
		strconv.FormatInt(o.Quantity, 10),
		FormatMoney(o.UnitPrice),
	}
}

// ParseRecord parses one CSV record in Header order.
// Validation is type-level only: fields must parse and must not be empty.
func ParseRecord(fields []string) (Order, error) {
	if len(fields) != len(Header) {
		return Order{}, fmt.Errorf("expected %d columns, got %d: %w",
			len(Header), len(fields), orderlens.ErrMalformedRow)
	}

	for i, name := range Header {
		if strings.TrimSpace(fields[i]) == "" {
			return Order{}, fmt.Errorf("empty %s: %w", name, orderlens.ErrMalformedRow)
		}
	}

	date, err := time.ParseInLocation(DateLayout, fields[1], time.UTC)
	if err != nil {
		return Order{}, fmt.Errorf("order_date %q: expected %s: %w",
			fields[1], DateLayout, orderlens.ErrMalformedRow)
	}

	quantity, err := strconv.ParseInt(fields[5], 10, 64)
	if err != nil {
		return Order{}, fmt.Errorf("quantity %q: %w", fields[5], orderlens.ErrMalformedRow)
	}

	unitPrice, err := ParseMoney(fields[6])
	if err != nil {
		return Order{}, fmt.Errorf("unit_price: %v: %w", err, orderlens.ErrMalformedRow)
	}

	return Order{
		OrderID:    fields[0],
		OrderDate:  date,
		CustomerID: fields[2],
		Product:    fields[3],
		Category:   fields[4],
		Quantity:   quantity,
		UnitPrice:  unitPrice,
	}, nil
}

// ReadAll reads a complete order CSV including the header row.
// A malformed header or row is a terminal error naming the offending line;
// there is no partial-row recovery.
func ReadAll(r io.Reader) ([]Order, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // column count checked per record for better errors

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("missing header row: %w", orderlens.ErrMalformedRow)
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if err := checkHeader(header); err != nil {
		return nil, err
	}

	var orders []Order
	for line := 2; ; line++ {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		o, err := ParseRecord(fields)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		orders = append(orders, o)
	}

	return orders, nil
}

// WriteAll writes the header row followed by one record per order.
func WriteAll(w io.Writer, orders []Order) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, o := range orders {
		if err := cw.Write(Record(o)); err != nil {
			return fmt.Errorf("write order %s: %w", o.OrderID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func checkHeader(header []string) error {
	if len(header) != len(Header) {
		return fmt.Errorf("header has %d columns, expected %d: %w",
			len(header), len(Header), orderlens.ErrMalformedRow)
	}
	for i, name := range Header {
		if strings.TrimSpace(header[i]) != name {
			return fmt.Errorf("header column %d is %q, expected %q: %w",
				i+1, header[i], name, orderlens.ErrMalformedRow)
		}
	}
	return nil
}
