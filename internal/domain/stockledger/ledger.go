// Package stockledger contiene la aritmética del libro diario de stock (servicio de dominio puro).
package stockledger

import (
	"time"

	"github.com/jhoicas/bev-flow/internal/domain/entity"
)

// ClosingStock = max(0, apertura + compras - ventas).
func ClosingStock(opening, purchased, sold int) int {
	return clampZero(opening + purchased - sold)
}

// Apply suma los deltas a una fila existente. Compras y ventas nunca quedan negativas
// y el cierre se recalcula desde la apertura almacenada.
func Apply(e *entity.StockLedgerEntry, soldDelta, purchasedDelta int) {
	e.PurchasedQty = clampZero(e.PurchasedQty + purchasedDelta)
	e.SoldQty = clampZero(e.SoldQty + soldDelta)
	e.ClosingStock = ClosingStock(e.OpeningStock, e.PurchasedQty, e.SoldQty)
}

// NewEntry construye la primera fila del día para un producto a partir de la apertura resuelta.
func NewEntry(productID int64, date time.Time, opening, soldDelta, purchasedDelta int) *entity.StockLedgerEntry {
	opening = clampZero(opening)
	purchased := clampZero(purchasedDelta)
	sold := clampZero(soldDelta)
	return &entity.StockLedgerEntry{
		ProductID:    productID,
		Date:         Day(date),
		OpeningStock: opening,
		PurchasedQty: purchased,
		SoldQty:      sold,
		ClosingStock: ClosingStock(opening, purchased, sold),
	}
}

// IsConsistent verifica la invariante de cierre de una fila.
func IsConsistent(e *entity.StockLedgerEntry) bool {
	return e.ClosingStock == ClosingStock(e.OpeningStock, e.PurchasedQty, e.SoldQty)
}

func clampZero(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
