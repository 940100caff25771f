package sqlite

// Fechas del libro como TEXT "YYYY-MM-DD": la comparación lexicográfica respeta el orden cronológico.
const schema = `
CREATE TABLE IF NOT EXISTS suppliers (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	name           TEXT    NOT NULL,
	lead_time_days INTEGER NOT NULL DEFAULT 2 CHECK (lead_time_days >= 0)
);

CREATE TABLE IF NOT EXISTS products (
	id               INTEGER PRIMARY KEY AUTOINCREMENT,
	name             TEXT    NOT NULL,
	sku              TEXT    NOT NULL DEFAULT '',
	category         TEXT    NOT NULL DEFAULT '',
	price            TEXT    NOT NULL DEFAULT '0',
	cost             TEXT    NOT NULL DEFAULT '0',
	current_stock    INTEGER NOT NULL DEFAULT 0 CHECK (current_stock >= 0),
	safety_stock     INTEGER NOT NULL DEFAULT 0,
	min_stock_level  INTEGER NOT NULL DEFAULT 0,
	reorder_quantity INTEGER NOT NULL DEFAULT 0,
	supplier_id      INTEGER REFERENCES suppliers(id) ON DELETE SET NULL,
	created_at       TEXT    NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at       TEXT    NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS daily_stock_ledger (
	product_id    INTEGER NOT NULL REFERENCES products(id) ON DELETE CASCADE,
	date          TEXT    NOT NULL,
	opening_stock INTEGER NOT NULL DEFAULT 0 CHECK (opening_stock >= 0),
	purchased_qty INTEGER NOT NULL DEFAULT 0 CHECK (purchased_qty >= 0),
	sold_qty      INTEGER NOT NULL DEFAULT 0 CHECK (sold_qty >= 0),
	closing_stock INTEGER NOT NULL DEFAULT 0 CHECK (closing_stock >= 0),
	updated_at    TEXT    NOT NULL DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (product_id, date)
);
CREATE INDEX IF NOT EXISTS idx_daily_stock_ledger_date ON daily_stock_ledger(date);

CREATE TABLE IF NOT EXISTS sales (
	id        INTEGER PRIMARY KEY AUTOINCREMENT,
	sale_date TEXT    NOT NULL,
	status    TEXT    NOT NULL DEFAULT 'completed'
);

CREATE TABLE IF NOT EXISTS sale_items (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	sale_id    INTEGER NOT NULL REFERENCES sales(id) ON DELETE CASCADE,
	product_id INTEGER NOT NULL REFERENCES products(id),
	quantity   INTEGER NOT NULL CHECK (quantity > 0)
);
CREATE INDEX IF NOT EXISTS idx_sale_items_sale ON sale_items(sale_id);

CREATE TABLE IF NOT EXISTS purchase_orders (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	supplier_id   INTEGER REFERENCES suppliers(id),
	status        TEXT    NOT NULL DEFAULT 'pending',
	received_date TEXT
);

CREATE TABLE IF NOT EXISTS purchase_order_items (
	id                INTEGER PRIMARY KEY AUTOINCREMENT,
	purchase_order_id INTEGER NOT NULL REFERENCES purchase_orders(id) ON DELETE CASCADE,
	product_id        INTEGER NOT NULL REFERENCES products(id),
	quantity_received INTEGER NOT NULL DEFAULT 0 CHECK (quantity_received >= 0)
);
CREATE INDEX IF NOT EXISTS idx_purchase_order_items_po ON purchase_order_items(purchase_order_id);
`
