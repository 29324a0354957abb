package store

// The revenue column is computed by the database so every aggregate reads
// the same stored value instead of re-deriving unit_price * quantity.
const (
	dropOrdersTable = `DROP TABLE IF EXISTS orders`

	createOrdersTable = `
		CREATE TABLE orders (
			order_id    TEXT PRIMARY KEY,
			order_date  DATE NOT NULL,
			customer_id TEXT NOT NULL,
			product     TEXT NOT NULL,
			category    TEXT NOT NULL,
			quantity    BIGINT NOT NULL CHECK (quantity > 0),
			unit_price  NUMERIC(10,2) NOT NULL,
			revenue     NUMERIC(14,2) GENERATED ALWAYS AS (unit_price * quantity) STORED
		)`

	createOrderDateIndex = `CREATE INDEX orders_order_date_idx ON orders (order_date)`

	createCustomerIndex = `CREATE INDEX orders_customer_id_idx ON orders (customer_id)`
)
