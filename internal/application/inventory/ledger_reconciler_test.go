package inventory_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bev-flow/internal/application/dto"
	"github.com/jhoicas/bev-flow/internal/application/inventory"
	"github.com/jhoicas/bev-flow/internal/domain"
	"github.com/jhoicas/bev-flow/internal/domain/entity"
	"github.com/jhoicas/bev-flow/internal/domain/repository"
	"github.com/jhoicas/bev-flow/internal/domain/stockledger"
	"github.com/jhoicas/bev-flow/internal/infrastructure/sqlite"
	"github.com/jhoicas/bev-flow/internal/infrastructure/sqlite/sqlitetest"
)

func newReconciler(t *testing.T) (*inventory.LedgerReconcilerUseCase, *sql.DB) {
	t.Helper()
	db := sqlitetest.NewDB(t)
	uc := inventory.NewLedgerReconcilerUseCase(
		sqlite.NewTxRunner(db),
		sqlite.NewLedgerRepository(db),
		zerolog.Nop(),
	)
	return uc, db
}

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := stockledger.ParseDate(s)
	require.NoError(t, err)
	return d
}

func mustEntry(t *testing.T, uc *inventory.LedgerReconcilerUseCase, productID int64, date string) *entity.StockLedgerEntry {
	t.Helper()
	e, err := uc.GetEntry(context.Background(), productID, day(t, date))
	require.NoError(t, err)
	require.NotNil(t, e, "debe existir la fila %d/%s", productID, date)
	return e
}

func TestApplyDelta_ClampsClosingAtZero(t *testing.T) {
	uc, db := newReconciler(t)
	sqlitetest.InsertProduct(t, db, sqlitetest.Product{ID: 7, Name: "Cerveza lata", CurrentStock: 10})
	sqlitetest.LedgerRow(t, db, 7, "2026-02-01", 3, 0, 0, 3)

	require.NoError(t, uc.ApplyDelta(context.Background(), 7, day(t, "2026-02-01"), 5, 0))

	e := mustEntry(t, uc, 7, "2026-02-01")
	assert.Equal(t, 3, e.OpeningStock)
	assert.Equal(t, 5, e.SoldQty)
	assert.Equal(t, 0, e.ClosingStock)
	assert.Equal(t, 5, sqlitetest.CurrentStock(t, db, 7))
}

func TestApplyDelta_OpeningFromPreviousDay(t *testing.T) {
	uc, db := newReconciler(t)
	sqlitetest.InsertProduct(t, db, sqlitetest.Product{ID: 2, Name: "Agua 600ml", CurrentStock: 20})
	sqlitetest.LedgerRow(t, db, 2, "2026-03-04", 10, 4, 0, 14)

	require.NoError(t, uc.ApplyDelta(context.Background(), 2, day(t, "2026-03-05"), 3, 6))

	e := mustEntry(t, uc, 2, "2026-03-05")
	assert.Equal(t, 14, e.OpeningStock)
	assert.Equal(t, 6, e.PurchasedQty)
	assert.Equal(t, 3, e.SoldQty)
	assert.Equal(t, 17, e.ClosingStock)
	assert.Equal(t, 23, sqlitetest.CurrentStock(t, db, 2))
}

func TestApplyDelta_OpeningFromCurrentStockWithoutHistory(t *testing.T) {
	uc, db := newReconciler(t)
	id := sqlitetest.InsertProduct(t, db, sqlitetest.Product{Name: "Jugo", CurrentStock: 50})

	require.NoError(t, uc.ApplyDelta(context.Background(), id, day(t, "2026-04-10"), 4, 0))

	e := mustEntry(t, uc, id, "2026-04-10")
	assert.Equal(t, 50, e.OpeningStock)
	assert.Equal(t, 46, e.ClosingStock)
	assert.Equal(t, 46, sqlitetest.CurrentStock(t, db, id))
}

func TestApplyDelta_ReversalRestoresRowAndStock(t *testing.T) {
	uc, db := newReconciler(t)
	id := sqlitetest.InsertProduct(t, db, sqlitetest.Product{Name: "Gaseosa", CurrentStock: 12})
	ctx := context.Background()
	d := day(t, "2026-05-01")

	require.NoError(t, uc.ApplyDelta(ctx, id, d, 5, 0))
	require.NoError(t, uc.ApplyDelta(ctx, id, d, -5, 0))

	e := mustEntry(t, uc, id, "2026-05-01")
	assert.Equal(t, 0, e.SoldQty)
	assert.Equal(t, e.OpeningStock, e.ClosingStock)
	assert.Equal(t, 12, sqlitetest.CurrentStock(t, db, id))
}

func TestApplyDelta_OneRowPerProductAndDay(t *testing.T) {
	uc, db := newReconciler(t)
	id := sqlitetest.InsertProduct(t, db, sqlitetest.Product{Name: "Té", CurrentStock: 30})
	ctx := context.Background()
	d := day(t, "2026-05-02")

	for i := 0; i < 3; i++ {
		require.NoError(t, uc.ApplyDelta(ctx, id, d, 1, 2))
	}

	list, err := uc.ListRange(ctx, repository.LedgerFilter{Start: d, End: d, ProductID: id})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 3, list[0].SoldQty)
	assert.Equal(t, 6, list[0].PurchasedQty)
	assert.Equal(t, 33, list[0].ClosingStock)
	assert.True(t, stockledger.IsConsistent(list[0]))
}

func TestApplyDelta_RetroactiveEditDoesNotCascade(t *testing.T) {
	uc, db := newReconciler(t)
	id := sqlitetest.InsertProduct(t, db, sqlitetest.Product{Name: "Vino", CurrentStock: 10})
	ctx := context.Background()

	require.NoError(t, uc.ApplyDelta(ctx, id, day(t, "2026-06-01"), 2, 0))
	require.NoError(t, uc.ApplyDelta(ctx, id, day(t, "2026-06-02"), 1, 0))
	require.Equal(t, 8, mustEntry(t, uc, id, "2026-06-02").OpeningStock)

	// Corrección del día anterior
	require.NoError(t, uc.ApplyDelta(ctx, id, day(t, "2026-06-01"), 3, 0))

	assert.Equal(t, 5, mustEntry(t, uc, id, "2026-06-01").ClosingStock)
	assert.Equal(t, 8, mustEntry(t, uc, id, "2026-06-02").OpeningStock)
}

func TestApplyDeltaBatch_RollsBackOnUnknownProduct(t *testing.T) {
	uc, db := newReconciler(t)
	id := sqlitetest.InsertProduct(t, db, sqlitetest.Product{Name: "Ron", CurrentStock: 9})
	ctx := context.Background()
	d := day(t, "2026-07-01")

	err := uc.ApplyDeltaBatch(ctx, []inventory.DeltaItem{
		{ProductID: id, SoldDelta: 2},
		{ProductID: 999, SoldDelta: 1},
	}, d)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	e, err := uc.GetEntry(ctx, id, d)
	require.NoError(t, err)
	assert.Nil(t, e, "el primer ítem debe revertirse")
	assert.Equal(t, 9, sqlitetest.CurrentStock(t, db, id))
}

func TestApplyDeltaBatch_EmptyIsNoop(t *testing.T) {
	uc, _ := newReconciler(t)
	assert.NoError(t, uc.ApplyDeltaBatch(context.Background(), nil, day(t, "2026-07-01")))
}

func TestApplyDeltaBatch_CurrentStockNeverNegative(t *testing.T) {
	uc, db := newReconciler(t)
	id := sqlitetest.InsertProduct(t, db, sqlitetest.Product{Name: "Whisky", CurrentStock: 2})

	require.NoError(t, uc.ApplyDelta(context.Background(), id, day(t, "2026-07-02"), 5, 0))

	assert.Equal(t, 0, sqlitetest.CurrentStock(t, db, id))
	assert.Equal(t, 0, mustEntry(t, uc, id, "2026-07-02").ClosingStock)
}

func TestApplyDeltasFromRequest_Validation(t *testing.T) {
	uc, db := newReconciler(t)
	id := sqlitetest.InsertProduct(t, db, sqlitetest.Product{Name: "Soda", CurrentStock: 5})
	ctx := context.Background()

	err := uc.ApplyDeltasFromRequest(ctx, dto.ApplyDeltasRequest{Date: "01/02/2026", Items: []dto.LedgerDeltaItem{{ProductID: id, SoldDelta: 1}}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	err = uc.ApplyDeltasFromRequest(ctx, dto.ApplyDeltasRequest{Date: "2026-02-01", Items: []dto.LedgerDeltaItem{{ProductID: 0, SoldDelta: 1}}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	require.NoError(t, uc.ApplyDeltasFromRequest(ctx, dto.ApplyDeltasRequest{
		Date:  "2026-02-01",
		Items: []dto.LedgerDeltaItem{{ProductID: id, SoldDelta: 1, PurchasedDelta: 3}},
	}))
	assert.Equal(t, 7, mustEntry(t, uc, id, "2026-02-01").ClosingStock)
}

func TestListFromQuery_DefaultWindowAndOrder(t *testing.T) {
	uc, db := newReconciler(t)
	a := sqlitetest.InsertProduct(t, db, sqlitetest.Product{Name: "A", CurrentStock: 5})
	b := sqlitetest.InsertProduct(t, db, sqlitetest.Product{Name: "B", CurrentStock: 5})
	sqlitetest.LedgerRow(t, db, b, "2026-08-10", 5, 0, 1, 4)
	sqlitetest.LedgerRow(t, db, a, "2026-08-10", 5, 0, 2, 3)
	sqlitetest.LedgerRow(t, db, a, "2026-08-12", 3, 0, 0, 3)
	sqlitetest.LedgerRow(t, db, a, "2026-06-01", 5, 0, 0, 5) // fuera de la ventana de 30 días

	now := time.Date(2026, 8, 12, 15, 0, 0, 0, time.UTC)
	list, err := uc.ListFromQuery(context.Background(), dto.LedgerQuery{}, now)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, dto.LedgerEntryDTO{ProductID: a, Date: "2026-08-10", OpeningStock: 5, SoldQty: 2, ClosingStock: 3}, list[0])
	assert.Equal(t, b, list[1].ProductID)
	assert.Equal(t, "2026-08-12", list[2].Date)

	filtered, err := uc.ListFromQuery(context.Background(), dto.LedgerQuery{ProductID: b}, now)
	require.NoError(t, err)
	require.Len(t, filtered, 1)

	_, err = uc.ListFromQuery(context.Background(), dto.LedgerQuery{StartDate: "2026-08-12", EndDate: "2026-08-01"}, now)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
