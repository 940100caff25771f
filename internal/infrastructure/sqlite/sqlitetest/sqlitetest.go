// Package sqlitetest arma bases SQLite temporales con datos de prueba para los tests de otros paquetes.
package sqlitetest

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bev-flow/internal/infrastructure/sqlite"
)

// NewDB abre una base en un archivo temporal del test, con el esquema aplicado.
func NewDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "bevflow.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// Supplier inserta un proveedor y devuelve su id.
func Supplier(t *testing.T, db *sql.DB, name string, leadTimeDays int) int64 {
	t.Helper()
	res, err := db.Exec(`INSERT INTO suppliers (name, lead_time_days) VALUES (?, ?)`, name, leadTimeDays)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return id
}

// Product describe un producto de prueba. SupplierID 0 = sin proveedor.
type Product struct {
	ID           int64
	Name         string
	Cost         string
	CurrentStock int
	SupplierID   int64
}

// InsertProduct inserta un producto con id explícito cuando p.ID > 0.
func InsertProduct(t *testing.T, db *sql.DB, p Product) int64 {
	t.Helper()
	var supplier any
	if p.SupplierID > 0 {
		supplier = p.SupplierID
	}
	cost := p.Cost
	if cost == "" {
		cost = "0"
	}
	var id any
	if p.ID > 0 {
		id = p.ID
	}
	res, err := db.Exec(
		`INSERT INTO products (id, name, sku, cost, current_stock, supplier_id) VALUES (?, ?, ?, ?, ?, ?)`,
		id, p.Name, p.Name, cost, p.CurrentStock, supplier,
	)
	require.NoError(t, err)
	newID, err := res.LastInsertId()
	require.NoError(t, err)
	return newID
}

// CurrentStock lee products.current_stock.
func CurrentStock(t *testing.T, db *sql.DB, productID int64) int {
	t.Helper()
	var stock int
	require.NoError(t, db.QueryRow(`SELECT current_stock FROM products WHERE id = ?`, productID).Scan(&stock))
	return stock
}

// Sale inserta una venta con un solo ítem. saleDate acepta "YYYY-MM-DD" o "YYYY-MM-DD HH:MM:SS".
func Sale(t *testing.T, db *sql.DB, productID int64, saleDate string, qty int, status string) {
	t.Helper()
	res, err := db.Exec(`INSERT INTO sales (sale_date, status) VALUES (?, ?)`, saleDate, status)
	require.NoError(t, err)
	saleID, err := res.LastInsertId()
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO sale_items (sale_id, product_id, quantity) VALUES (?, ?, ?)`, saleID, productID, qty)
	require.NoError(t, err)
}

// Receipt inserta una orden de compra con un ítem recibido.
func Receipt(t *testing.T, db *sql.DB, productID int64, receivedDate string, qty int, status string) {
	t.Helper()
	res, err := db.Exec(`INSERT INTO purchase_orders (status, received_date) VALUES (?, ?)`, status, receivedDate)
	require.NoError(t, err)
	poID, err := res.LastInsertId()
	require.NoError(t, err)
	_, err = db.Exec(
		`INSERT INTO purchase_order_items (purchase_order_id, product_id, quantity_received) VALUES (?, ?, ?)`,
		poID, productID, qty,
	)
	require.NoError(t, err)
}

// LedgerRow inserta una fila del libro directamente (historia previa).
func LedgerRow(t *testing.T, db *sql.DB, productID int64, date string, opening, purchased, sold, closing int) {
	t.Helper()
	_, err := db.Exec(
		`INSERT INTO daily_stock_ledger (product_id, date, opening_stock, purchased_qty, sold_qty, closing_stock)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		productID, date, opening, purchased, sold, closing,
	)
	require.NoError(t, err)
}
