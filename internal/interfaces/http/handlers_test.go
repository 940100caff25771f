package http_test

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bev-flow/internal/application/analytics"
	"github.com/jhoicas/bev-flow/internal/application/dto"
	"github.com/jhoicas/bev-flow/internal/application/inventory"
	"github.com/jhoicas/bev-flow/internal/infrastructure/sqlite"
	"github.com/jhoicas/bev-flow/internal/infrastructure/sqlite/sqlitetest"
	apphttp "github.com/jhoicas/bev-flow/internal/interfaces/http"
)

// buildTestApp arma la API completa sobre una base SQLite temporal.
func buildTestApp(t *testing.T) (*fiber.App, *sql.DB) {
	t.Helper()
	db := sqlitetest.NewDB(t)
	ledgerRepo := sqlite.NewLedgerRepository(db)
	ledgerUC := inventory.NewLedgerReconcilerUseCase(sqlite.NewTxRunner(db), ledgerRepo, zerolog.Nop())
	analyticsUC := analytics.NewReorderAnalyticsUseCase(
		sqlite.NewProductRepository(db), ledgerRepo, sqlite.NewMovementRepository(db),
		analytics.ReorderOptions{}, zerolog.Nop(),
	)

	app := fiber.New()
	app.Use(apphttp.RequestLogger(zerolog.Nop()))
	apphttp.Router(app, apphttp.RouterDeps{Ledger: ledgerUC, Analytics: analyticsUC})
	return app, db
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func TestApplyDeltas_CreatesEntry(t *testing.T) {
	app, db := buildTestApp(t)
	sqlitetest.InsertProduct(t, db, sqlitetest.Product{ID: 2, Name: "Agua", CurrentStock: 20})
	sqlitetest.LedgerRow(t, db, 2, "2026-03-04", 10, 4, 0, 14)

	resp := doJSON(t, app, http.MethodPost, "/api/stock-ledger/deltas", dto.ApplyDeltasRequest{
		Date:  "2026-03-05",
		Items: []dto.LedgerDeltaItem{{ProductID: 2, SoldDelta: 3, PurchasedDelta: 6}},
	})
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/stock-ledger/2/2026-03-05", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var entry map[string]any
	decode(t, resp, &entry)
	assert.Equal(t, map[string]any{
		"productId":    float64(2),
		"date":         "2026-03-05",
		"openingStock": float64(14),
		"purchasedQty": float64(6),
		"soldQty":      float64(3),
		"closingStock": float64(17),
	}, entry)
}

func TestApplyDeltas_Errors(t *testing.T) {
	app, db := buildTestApp(t)
	sqlitetest.InsertProduct(t, db, sqlitetest.Product{ID: 1, Name: "Cerveza", CurrentStock: 5})

	req := httptest.NewRequest(http.MethodPost, "/api/stock-ledger/deltas", bytes.NewBufferString("{no-json"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	var errBody dto.ErrorResponse
	decode(t, resp, &errBody)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_BODY", errBody.Code)

	resp = doJSON(t, app, http.MethodPost, "/api/stock-ledger/deltas", dto.ApplyDeltasRequest{
		Date:  "2026-13-01",
		Items: []dto.LedgerDeltaItem{{ProductID: 1, SoldDelta: 1}},
	})
	decode(t, resp, &errBody)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", errBody.Code)

	resp = doJSON(t, app, http.MethodPost, "/api/stock-ledger/deltas", dto.ApplyDeltasRequest{
		Date: "2026-03-01",
		Items: []dto.LedgerDeltaItem{
			{ProductID: 1, SoldDelta: 1},
			{ProductID: 404, SoldDelta: 1},
		},
	})
	decode(t, resp, &errBody)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", errBody.Code)
	assert.Equal(t, 5, sqlitetest.CurrentStock(t, db, 1), "el lote completo debe revertirse")
}

func TestGetEntry_NotFoundAndBadParams(t *testing.T) {
	app, _ := buildTestApp(t)

	resp := doJSON(t, app, http.MethodGet, "/api/stock-ledger/3/2026-03-05", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/stock-ledger/abc/2026-03-05", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/stock-ledger/3/05-03-2026", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestListLedger(t *testing.T) {
	app, db := buildTestApp(t)
	a := sqlitetest.InsertProduct(t, db, sqlitetest.Product{Name: "A", CurrentStock: 5})
	b := sqlitetest.InsertProduct(t, db, sqlitetest.Product{Name: "B", CurrentStock: 5})
	sqlitetest.LedgerRow(t, db, a, "2026-08-10", 5, 0, 2, 3)
	sqlitetest.LedgerRow(t, db, b, "2026-08-10", 5, 0, 1, 4)
	sqlitetest.LedgerRow(t, db, a, "2026-08-11", 3, 0, 0, 3)

	resp := doJSON(t, app, http.MethodGet, "/api/stock-ledger?start_date=2026-08-01&end_date=2026-08-31", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body struct {
		Total int                  `json:"total"`
		Data  []dto.LedgerEntryDTO `json:"data"`
	}
	decode(t, resp, &body)
	assert.Equal(t, 3, body.Total)
	assert.Len(t, body.Data, 3)

	resp = doJSON(t, app, http.MethodGet, "/api/stock-ledger?start_date=2026-08-01&end_date=2026-08-31&product_id=2", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &body)
	require.Equal(t, 1, body.Total)
	assert.Equal(t, b, body.Data[0].ProductID)

	resp = doJSON(t, app, http.MethodGet, "/api/stock-ledger?start_date=2026-09-01&end_date=2026-08-01", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestReseedEndpoint(t *testing.T) {
	app, db := buildTestApp(t)
	id := sqlitetest.InsertProduct(t, db, sqlitetest.Product{Name: "Cerveza", CurrentStock: 10})
	sqlitetest.Sale(t, db, id, "2026-02-01 12:00:00", 4, "completed")

	resp := doJSON(t, app, http.MethodPost, "/api/stock-ledger/reseed", dto.ReseedRequest{StartDate: "2026-02-01", EndDate: "2026-02-02"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.ReseedResultDTO
	decode(t, resp, &out)
	assert.Equal(t, 2, out.Days)
	assert.Equal(t, 2, out.Created)

	resp = doJSON(t, app, http.MethodPost, "/api/stock-ledger/reseed", dto.ReseedRequest{StartDate: "2026-02-05", EndDate: "2026-02-01"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestReorderEndpoints(t *testing.T) {
	app, db := buildTestApp(t)
	supplier := sqlitetest.Supplier(t, db, "Proveedor", 2)
	id := sqlitetest.InsertProduct(t, db, sqlitetest.Product{Name: "Cerveza", Cost: "1.00", CurrentStock: 15, SupplierID: supplier})
	sqlitetest.LedgerRow(t, db, id, "2026-01-01", 100, 0, 8, 92)
	sqlitetest.LedgerRow(t, db, id, "2026-01-02", 92, 0, 12, 80)
	sqlitetest.LedgerRow(t, db, id, "2026-01-03", 80, 0, 10, 70)
	sqlitetest.LedgerRow(t, db, id, "2026-01-04", 70, 0, 10, 60)

	resp := doJSON(t, app, http.MethodGet, "/api/analytics/reorder", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var report dto.ReorderAnalyticsReport
	decode(t, resp, &report)
	require.Len(t, report.Data, 1)
	assert.Equal(t, 23, report.Data[0].ReorderPoint)
	assert.Equal(t, 35, report.Data[0].EOQ)
	assert.Equal(t, 1, report.Summary.NeedsReorder)
	assert.Equal(t, "ledger", report.Constants.DemandSource)

	resp = doJSON(t, app, http.MethodGet, "/api/analytics/reorder/1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var single dto.ReorderAnalyticsDTO
	decode(t, resp, &single)
	assert.Equal(t, 3, single.SafetyStock)

	resp = doJSON(t, app, http.MethodGet, "/api/analytics/reorder/77", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
