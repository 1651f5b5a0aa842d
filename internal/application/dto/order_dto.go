package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PlaceOrderLine línea solicitada en POST /api/orders.
type PlaceOrderLine struct {
	MenuItemID          string `json:"menu_item_id"`
	Quantity            int    `json:"quantity"`
	SpecialInstructions string `json:"special_instructions,omitempty"`
}

// PlaceOrderRequest body para POST /api/orders.
type PlaceOrderRequest struct {
	OrderType         string           `json:"order_type"` // pickup | delivery
	DeliveryAddressID string           `json:"delivery_address_id,omitempty"`
	Items             []PlaceOrderLine `json:"items"`
}

// CancelOrderRequest body para POST /api/orders/:id/cancel.
type CancelOrderRequest struct {
	Reason string `json:"reason,omitempty"`
}

// UpdateOrderStatusRequest body para PATCH /api/orders/:id/status.
type UpdateOrderStatusRequest struct {
	Status       string     `json:"status"`
	DeliveryTime *time.Time `json:"delivery_time,omitempty"` // opcional al marcar delivered
}

// OrderItemResponse línea en respuestas de pedido.
type OrderItemResponse struct {
	MenuItemID          string          `json:"menu_item_id"`
	Quantity            int             `json:"quantity"`
	UnitPrice           decimal.Decimal `json:"unit_price"`
	TotalPrice          decimal.Decimal `json:"total_price"`
	SpecialInstructions string          `json:"special_instructions,omitempty"`
}

// OrderNoteResponse anotación en respuestas de pedido.
type OrderNoteResponse struct {
	ActorID   string    `json:"actor_id"`
	ActorRole string    `json:"actor_role"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"created_at"`
}

// OrderResponse respuesta completa de un pedido.
type OrderResponse struct {
	ID                 string              `json:"id"`
	OrderNumber        string              `json:"order_number"`
	CustomerID         string              `json:"customer_id"`
	Status             string              `json:"status"`
	OrderType          string              `json:"order_type"`
	DeliveryAddressID  string              `json:"delivery_address_id,omitempty"`
	Subtotal           decimal.Decimal     `json:"subtotal"`
	Tax                decimal.Decimal     `json:"tax"`
	DeliveryFee        decimal.Decimal     `json:"delivery_fee"`
	Total              decimal.Decimal     `json:"total"`
	ActualDeliveryTime *time.Time          `json:"actual_delivery_time,omitempty"`
	CreatedAt          time.Time           `json:"created_at"`
	Items              []OrderItemResponse `json:"items,omitempty"`
	Notes              []OrderNoteResponse `json:"notes,omitempty"`
}

// InsufficientStockLine detalle por línea del error agregado de stock.
type InsufficientStockLine struct {
	MenuItemID string `json:"menu_item_id"`
	Requested  int    `json:"requested"`
	Available  int    `json:"available"`
}
