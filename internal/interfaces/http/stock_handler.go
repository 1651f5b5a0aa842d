package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/application/stock"
)

// StockHandler maneja consultas y ajustes de stock.
type StockHandler struct {
	uc *stock.UseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *stock.UseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// Availability godoc
// @Summary      Disponibilidad de un artículo para una cantidad
// @Tags         stock
// @Produce      json
// @Param        id        path   string  true   "ID del artículo"
// @Param        quantity  query  int     false  "Cantidad solicitada (default 1)"
// @Success      200  {object}  dto.AvailabilityResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/menu-items/{id}/availability [get]
func (h *StockHandler) Availability(c *fiber.Ctx) error {
	quantity := c.QueryInt("quantity", 1)
	if quantity < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "quantity debe ser mayor que cero"})
	}
	resp, err := h.uc.CheckAvailability(c.Context(), c.Params("id"), quantity)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(resp)
}

// Restock godoc
// @Summary      Reponer stock de un artículo (staff/admin)
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del artículo"
// @Param        body  body  dto.RestockRequest  true  "quantity > 0"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/{id}/restock [post]
func (h *StockHandler) Restock(c *fiber.Ctx) error {
	var in dto.RestockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.Restock(c.Context(), c.Params("id"), GetUserID(c), in.Quantity); err != nil {
		return mapError(c, err)
	}
	return c.JSON(fiber.Map{"message": "stock actualizado"})
}

// Movements godoc
// @Summary      Auditoría de movimientos de stock de un pedido (staff/admin)
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        orderId  path  string  true  "ID del pedido"
// @Success      200  {array}  dto.StockMovementResponse
// @Router       /api/stock/movements/{orderId} [get]
func (h *StockHandler) Movements(c *fiber.Ctx) error {
	list, err := h.uc.ListMovementsByOrder(c.Context(), c.Params("orderId"))
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "movements": list})
}

// LowStock godoc
// @Summary      Artículos en o bajo su mínimo (staff/admin)
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.LowStockItemResponse
// @Router       /api/stock/low [get]
func (h *StockHandler) LowStock(c *fiber.Ctx) error {
	list, err := h.uc.ListLowStock(c.Context())
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "items": list})
}
