package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bev-flow/internal/application/analytics"
)

// AnalyticsHandler maneja los endpoints de analítica de reposición.
type AnalyticsHandler struct {
	uc *analytics.ReorderAnalyticsUseCase
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(uc *analytics.ReorderAnalyticsUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

// GetReorder godoc
// @Summary      Stock de seguridad, punto de reorden y EOQ por producto
// @Description  Siempre recalculado desde la demanda histórica (sin caché). Los que necesitan
//               reorden van primero, luego por mayor déficit.
// @Tags         analytics
// @Produce      json
// @Success      200  {object}  dto.ReorderAnalyticsReport
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/analytics/reorder [get]
func (h *AnalyticsHandler) GetReorder(c *fiber.Ctx) error {
	report, err := h.uc.ComputeForAllProducts(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}

// GetReorderForProduct godoc
// @Summary      Métricas de reposición de un producto
// @Tags         analytics
// @Produce      json
// @Param        productId  path  int  true  "ID del producto"
// @Success      200  {object}  dto.ReorderAnalyticsDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/analytics/reorder/{productId} [get]
func (h *AnalyticsHandler) GetReorderForProduct(c *fiber.Ctx) error {
	productID, err := c.ParamsInt("productId")
	if err != nil || productID <= 0 {
		return badRequest(c, "INVALID_ID", "productId inválido")
	}
	out, err := h.uc.ComputeForProduct(c.UserContext(), int64(productID))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
