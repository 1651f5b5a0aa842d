package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Pedidos-api/internal/application/orders"
	"github.com/jhoicas/Pedidos-api/internal/application/stock"
	"github.com/jhoicas/Pedidos-api/internal/domain/order"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	PlaceOrder   *orders.PlaceOrderUseCase
	CancelOrder  *orders.CancelOrderUseCase
	UpdateStatus *orders.UpdateOrderStatusUseCase
	OrderQuery   *orders.OrderQueryUseCase
	StockUC      *stock.UseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Disponibilidad (público: el menú del cliente la consulta sin sesión)
	stockHandler := NewStockHandler(deps.StockUC)
	api.Get("/menu-items/:id/availability", stockHandler.Availability)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Orders (protegido)
	ordersGroup := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.PlaceOrder, deps.CancelOrder, deps.UpdateStatus, deps.OrderQuery)
	ordersGroup.Post("/", orderHandler.Place)
	ordersGroup.Get("/", orderHandler.List)
	ordersGroup.Get("/:id", orderHandler.GetByID)
	ordersGroup.Post("/:id/cancel", orderHandler.Cancel)
	ordersGroup.Patch("/:id/status", RequireRole(order.RoleStaff, order.RoleAdmin), orderHandler.UpdateStatus)

	// Stock (protegido, operación del local)
	stockGroup := protected.Group("/stock", RequireRole(order.RoleStaff, order.RoleAdmin))
	stockGroup.Get("/low", stockHandler.LowStock)
	stockGroup.Get("/movements/:orderId", stockHandler.Movements)
	stockGroup.Post("/:id/restock", stockHandler.Restock)
}
