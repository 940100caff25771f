package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bev-flow/internal/application/dto"
	"github.com/jhoicas/bev-flow/internal/application/inventory"
	"github.com/jhoicas/bev-flow/internal/domain/stockledger"
)

// LedgerHandler endpoints del libro diario de stock.
type LedgerHandler struct {
	uc  *inventory.LedgerReconcilerUseCase
	now func() time.Time
}

// NewLedgerHandler construye el handler.
func NewLedgerHandler(uc *inventory.LedgerReconcilerUseCase) *LedgerHandler {
	return &LedgerHandler{uc: uc, now: time.Now}
}

// ApplyDeltas godoc
// @Summary      Aplicar deltas de ventas/compras al libro diario
// @Description  Todos los ítems del lote se aplican en una transacción: si uno falla no se aplica ninguno.
// @Tags         stock-ledger
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ApplyDeltasRequest  true  "date (YYYY-MM-DD) e items con productId, soldDelta, purchasedDelta"
// @Success      204
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/stock-ledger/deltas [post]
func (h *LedgerHandler) ApplyDeltas(c *fiber.Ctx) error {
	var in dto.ApplyDeltasRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if err := h.uc.ApplyDeltasFromRequest(c.UserContext(), in); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// List godoc
// @Summary      Reporte diario de stock
// @Tags         stock-ledger
// @Produce      json
// @Param        start_date  query  string  false  "Inicio (YYYY-MM-DD). Default: hace 30 días."
// @Param        end_date    query  string  false  "Fin (YYYY-MM-DD). Default: hoy."
// @Param        product_id  query  int     false  "Filtrar por producto."
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock-ledger [get]
func (h *LedgerHandler) List(c *fiber.Ctx) error {
	var q dto.LedgerQuery
	if err := c.QueryParser(&q); err != nil {
		return badRequest(c, "INVALID_PARAMS", "parámetros de consulta inválidos")
	}
	list, err := h.uc.ListFromQuery(c.UserContext(), q, h.now())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"total": len(list),
		"data":  list,
	})
}

// GetEntry godoc
// @Summary      Fila del libro para un producto y día
// @Tags         stock-ledger
// @Produce      json
// @Param        productId  path  int     true  "ID del producto"
// @Param        date       path  string  true  "Día (YYYY-MM-DD)"
// @Success      200  {object}  dto.LedgerEntryDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock-ledger/{productId}/{date} [get]
func (h *LedgerHandler) GetEntry(c *fiber.Ctx) error {
	productID, err := c.ParamsInt("productId")
	if err != nil || productID <= 0 {
		return badRequest(c, "INVALID_ID", "productId inválido")
	}
	date, err := stockledger.ParseDate(c.Params("date"))
	if err != nil {
		return respondError(c, err)
	}
	entry, err := h.uc.GetEntry(c.UserContext(), int64(productID), date)
	if err != nil {
		return respondError(c, err)
	}
	if entry == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "sin movimientos para ese producto y día"})
	}
	return c.JSON(inventory.ToLedgerEntryDTO(entry))
}

// Reseed godoc
// @Summary      Reconstruir el libro de un rango desde ventas y recepciones
// @Description  Borra las filas del rango y las vuelve a crear día por día. No modifica current_stock.
// @Tags         stock-ledger
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReseedRequest  true  "startDate y endDate (YYYY-MM-DD)"
// @Success      200  {object}  dto.ReseedResultDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/stock-ledger/reseed [post]
func (h *LedgerHandler) Reseed(c *fiber.Ctx) error {
	var in dto.ReseedRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	res, err := h.uc.ReseedFromRequest(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}
