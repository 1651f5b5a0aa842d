package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/application/orders"
)

// OrderHandler maneja las peticiones HTTP de pedidos (protegido).
type OrderHandler struct {
	placeUC  *orders.PlaceOrderUseCase
	cancelUC *orders.CancelOrderUseCase
	statusUC *orders.UpdateOrderStatusUseCase
	queryUC  *orders.OrderQueryUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(
	placeUC *orders.PlaceOrderUseCase,
	cancelUC *orders.CancelOrderUseCase,
	statusUC *orders.UpdateOrderStatusUseCase,
	queryUC *orders.OrderQueryUseCase,
) *OrderHandler {
	return &OrderHandler{placeUC: placeUC, cancelUC: cancelUC, statusUC: statusUC, queryUC: queryUC}
}

// Place godoc
// @Summary      Crear pedido
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PlaceOrderRequest  true  "order_type, items[{menu_item_id, quantity}], delivery_address_id (delivery)"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Place(c *fiber.Ctx) error {
	customerID := GetUserID(c)
	if customerID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.PlaceOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.placeUC.PlaceOrder(c.Context(), customerID, in)
	if err != nil {
		return mapError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetByID godoc
// @Summary      Consultar pedido
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del pedido"
// @Success      200  {object}  dto.OrderResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	resp, err := h.queryUC.GetOrder(c.Context(), c.Params("id"), GetUserID(c), GetRole(c))
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(resp)
}

// List godoc
// @Summary      Listar pedidos de un cliente
// @Description  Sin customer_id lista los del usuario autenticado; staff/admin
//	pueden pasar customer_id de cualquier cliente.
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        customer_id  query  string  false  "Cliente (staff/admin)"
// @Param        limit        query  int     false  "Tamaño de página"
// @Param        offset       query  int     false  "Desplazamiento"
// @Success      200  {array}  dto.OrderResponse
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	customerID := c.Query("customer_id")
	if customerID == "" {
		customerID = GetUserID(c)
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	list, err := h.queryUC.ListByCustomer(c.Context(), customerID, GetUserID(c), GetRole(c), page)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "orders": list})
}

// Cancel godoc
// @Summary      Cancelar pedido (restaura stock)
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del pedido"
// @Param        body  body  dto.CancelOrderRequest  false  "reason opcional"
// @Success      200   {object}  dto.OrderResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/cancel [post]
func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	var in dto.CancelOrderRequest
	// body opcional: sin body se cancela sin motivo
	_ = c.BodyParser(&in)
	resp, err := h.cancelUC.Cancel(c.Context(), c.Params("id"), GetUserID(c), GetRole(c), in.Reason)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(resp)
}

// UpdateStatus godoc
// @Summary      Avanzar estado del pedido (staff/admin)
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del pedido"
// @Param        body  body  dto.UpdateOrderStatusRequest  true  "status destino; delivery_time opcional al entregar"
// @Success      200   {object}  dto.OrderResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateOrderStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.statusUC.UpdateStatus(c.Context(), c.Params("id"), GetRole(c), in.Status, in.DeliveryTime)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(resp)
}
