package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo (bebidas, snacks, insumos de karaoke).
// El ciclo de vida pertenece al catálogo; el núcleo de inventario solo lee y ajusta CurrentStock.
type Product struct {
	ID              int64           `db:"id"`
	Name            string          `db:"name"`
	SKU             string          `db:"sku"`
	Category        string          `db:"category"`
	Price           decimal.Decimal `db:"price"` // precio de venta
	Cost            decimal.Decimal `db:"cost"`  // costo unitario de compra
	CurrentStock    int             `db:"current_stock"`
	SafetyStock     int             `db:"safety_stock"`      // configurado en el catálogo
	MinStockLevel   int             `db:"min_stock_level"`
	ReorderQuantity int             `db:"reorder_quantity"`
	SupplierID      *int64          `db:"supplier_id"`
	CreatedAt       time.Time       `db:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at"`
}
