package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Pedidos-api/internal/domain/order"
)

// Tipos de pedido.
const (
	OrderTypePickup   = "pickup"
	OrderTypeDelivery = "delivery"
)

// Order cabecera de un pedido. Los totales se calculan al crear y no cambian:
// total = subtotal + tax + delivery_fee, cada uno redondeado a 2 decimales antes de sumar.
type Order struct {
	ID                 string
	OrderNumber        string
	CustomerID         string
	Status             order.Status
	OrderType          string
	DeliveryAddressID  string // vacío en pickup
	Subtotal           decimal.Decimal
	Tax                decimal.Decimal
	DeliveryFee        decimal.Decimal
	Total              decimal.Decimal
	ActualDeliveryTime *time.Time // se estampa una sola vez al pasar a delivered
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// OrderItem línea de pedido. UnitPrice es un snapshot del precio del ítem al
// momento del pedido; inmutable después de creada.
type OrderItem struct {
	ID                  string
	OrderID             string
	MenuItemID          string
	Quantity            int
	UnitPrice           decimal.Decimal
	TotalPrice          decimal.Decimal
	SpecialInstructions string
}

// OrderNote anotación append-only sobre un pedido (ej. motivo de cancelación).
type OrderNote struct {
	ID        string
	OrderID   string
	ActorID   string
	ActorRole string
	Note      string
	CreatedAt time.Time
}
