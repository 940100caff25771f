package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bev-flow/internal/application/analytics"
	"github.com/jhoicas/bev-flow/internal/application/inventory"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Ledger    *inventory.LedgerReconcilerUseCase
	Analytics *analytics.ReorderAnalyticsUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Libro diario de stock
	ledger := api.Group("/stock-ledger")
	ledgerHandler := NewLedgerHandler(deps.Ledger)
	ledger.Post("/deltas", ledgerHandler.ApplyDeltas)
	ledger.Post("/reseed", ledgerHandler.Reseed)
	ledger.Get("/", ledgerHandler.List)
	ledger.Get("/:productId/:date", ledgerHandler.GetEntry)

	// Analítica de reposición (siempre fresca)
	reorderGroup := api.Group("/analytics/reorder")
	analyticsHandler := NewAnalyticsHandler(deps.Analytics)
	reorderGroup.Get("/", analyticsHandler.GetReorder)
	reorderGroup.Get("/:productId", analyticsHandler.GetReorderForProduct)
}
