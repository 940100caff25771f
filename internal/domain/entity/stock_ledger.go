package entity

import "time"

// StockLedgerEntry fila del libro diario de stock: una por producto y día calendario.
// Invariante: ClosingStock = max(0, OpeningStock + PurchasedQty - SoldQty).
type StockLedgerEntry struct {
	ProductID    int64     `db:"product_id"`
	Date         time.Time `db:"date"` // día calendario en UTC, sin componente horario
	OpeningStock int       `db:"opening_stock"`
	PurchasedQty int       `db:"purchased_qty"`
	SoldQty      int       `db:"sold_qty"`
	ClosingStock int       `db:"closing_stock"`
}
