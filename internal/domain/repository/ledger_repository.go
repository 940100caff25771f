package repository

import (
	"context"
	"time"

	"github.com/jhoicas/bev-flow/internal/domain/entity"
)

// LedgerFilter filtros para listar el libro diario. Fechas inclusivas; ProductID 0 = todos.
type LedgerFilter struct {
	Start     time.Time
	End       time.Time
	ProductID int64
}

// LedgerRepository define el puerto de persistencia del libro diario de stock (DIP).
// Las dos implementaciones (SQLite local y PostgreSQL alojado) comparten esta semántica.
type LedgerRepository interface {
	// Get devuelve la fila (producto, día) o nil si no existe.
	Get(ctx context.Context, productID int64, date time.Time) (*entity.StockLedgerEntry, error)
	// GetForUpdate igual que Get pero serializa escrituras concurrentes sobre el producto.
	GetForUpdate(ctx context.Context, productID int64, date time.Time) (*entity.StockLedgerEntry, error)
	// Upsert inserta o reemplaza la fila (producto, día); la unicidad la garantiza la PK.
	Upsert(ctx context.Context, entry *entity.StockLedgerEntry) error
	ListRange(ctx context.Context, filter LedgerFilter) ([]*entity.StockLedgerEntry, error)
	// DeleteRange elimina las filas del rango (solo para reconstrucción masiva).
	DeleteRange(ctx context.Context, start, end time.Time) (int64, error)

	// ListDemand devuelve las ventas diarias registradas en el libro (sold_qty > 0)
	// desde since (cero = todo el historial). productID 0 = todos los productos.
	ListDemand(ctx context.Context, since time.Time, productID int64) ([]entity.DemandObservation, error)
}
