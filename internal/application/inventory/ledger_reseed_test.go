package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bev-flow/internal/application/dto"
	"github.com/jhoicas/bev-flow/internal/domain"
	"github.com/jhoicas/bev-flow/internal/domain/entity"
	"github.com/jhoicas/bev-flow/internal/infrastructure/sqlite/sqlitetest"
)

func TestReseed_RebuildsRangeFromMovements(t *testing.T) {
	uc, db := newReconciler(t)
	id := sqlitetest.InsertProduct(t, db, sqlitetest.Product{Name: "Cerveza", CurrentStock: 40})
	sqlitetest.LedgerRow(t, db, id, "2026-01-31", 20, 0, 0, 20)
	sqlitetest.LedgerRow(t, db, id, "2026-02-01", 99, 0, 0, 99) // fila obsoleta

	sqlitetest.Sale(t, db, id, "2026-02-01 10:30:00", 5, entity.SaleStatusCompleted)
	sqlitetest.Sale(t, db, id, "2026-02-02 09:00:00", 3, entity.SaleStatusCompleted)
	sqlitetest.Sale(t, db, id, "2026-02-02 11:00:00", 100, "cancelled")
	sqlitetest.Receipt(t, db, id, "2026-02-02", 10, entity.PurchaseOrderStatusReceived)
	sqlitetest.Receipt(t, db, id, "2026-02-02", 50, "pending")

	res, err := uc.Reseed(context.Background(), day(t, "2026-02-01"), day(t, "2026-02-02"))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Days)
	assert.Equal(t, int64(1), res.Deleted)
	assert.Equal(t, 2, res.Created)

	d1 := mustEntry(t, uc, id, "2026-02-01")
	assert.Equal(t, 20, d1.OpeningStock)
	assert.Equal(t, 5, d1.SoldQty)
	assert.Equal(t, 15, d1.ClosingStock)

	d2 := mustEntry(t, uc, id, "2026-02-02")
	assert.Equal(t, 15, d2.OpeningStock)
	assert.Equal(t, 10, d2.PurchasedQty)
	assert.Equal(t, 3, d2.SoldQty)
	assert.Equal(t, 22, d2.ClosingStock)

	// Fuera del rango no se toca y current_stock tampoco
	assert.Equal(t, 20, mustEntry(t, uc, id, "2026-01-31").ClosingStock)
	assert.Equal(t, 40, sqlitetest.CurrentStock(t, db, id))
}

func TestReseed_FirstDayFallsBackToCurrentStock(t *testing.T) {
	uc, db := newReconciler(t)
	a := sqlitetest.InsertProduct(t, db, sqlitetest.Product{Name: "A", CurrentStock: 8})
	b := sqlitetest.InsertProduct(t, db, sqlitetest.Product{Name: "B", CurrentStock: 3})
	sqlitetest.Sale(t, db, a, "2026-03-01", 2, entity.SaleStatusCompleted)

	res, err := uc.Reseed(context.Background(), day(t, "2026-03-01"), day(t, "2026-03-01"))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Created)

	assert.Equal(t, 6, mustEntry(t, uc, a, "2026-03-01").ClosingStock)
	eb := mustEntry(t, uc, b, "2026-03-01")
	assert.Equal(t, 3, eb.OpeningStock)
	assert.Equal(t, 3, eb.ClosingStock)
}

func TestReseed_InvalidRange(t *testing.T) {
	uc, _ := newReconciler(t)
	ctx := context.Background()

	_, err := uc.Reseed(ctx, day(t, "2026-03-02"), day(t, "2026-03-01"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Reseed(ctx, day(t, "2025-01-01"), day(t, "2026-03-01"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.ReseedFromRequest(ctx, dto.ReseedRequest{StartDate: "2026-03-01", EndDate: "mañana"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReseedFromRequest_ReturnsDTO(t *testing.T) {
	uc, db := newReconciler(t)
	sqlitetest.InsertProduct(t, db, sqlitetest.Product{Name: "A", CurrentStock: 1})

	out, err := uc.ReseedFromRequest(context.Background(), dto.ReseedRequest{StartDate: "2026-03-01", EndDate: "2026-03-03"})
	require.NoError(t, err)
	assert.Equal(t, "2026-03-01", out.StartDate)
	assert.Equal(t, "2026-03-03", out.EndDate)
	assert.Equal(t, 3, out.Days)
	assert.Equal(t, 3, out.Created)
}
