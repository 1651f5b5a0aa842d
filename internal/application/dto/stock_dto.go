package dto

import "time"

// AvailabilityResponse respuesta de GET /api/stock/:itemId/availability.
type AvailabilityResponse struct {
	MenuItemID   string `json:"menu_item_id"`
	Available    bool   `json:"available"`
	CurrentStock int    `json:"current_stock"`
	Reason       string `json:"reason,omitempty"` // ITEM_UNAVAILABLE | INSUFFICIENT_STOCK
}

// RestockRequest body para POST /api/stock/:itemId/restock.
type RestockRequest struct {
	Quantity int `json:"quantity"`
}

// StockMovementResponse fila de la auditoría de movimientos de un pedido.
type StockMovementResponse struct {
	ID            string    `json:"id"`
	OrderID       string    `json:"order_id,omitempty"`
	MenuItemID    string    `json:"menu_item_id"`
	Type          string    `json:"type"` // IN | OUT
	Quantity      int       `json:"quantity"`
	PreviousStock int       `json:"previous_stock"`
	NewStock      int       `json:"new_stock"`
	CreatedAt     time.Time `json:"created_at"`
	CreatedBy     string    `json:"created_by"`
}

// LowStockItemResponse fila del listado de stock bajo.
type LowStockItemResponse struct {
	MenuItemID   string `json:"menu_item_id"`
	Name         string `json:"name"`
	CurrentStock int    `json:"current_stock"`
	MinimumStock int    `json:"minimum_stock"`
	Unit         string `json:"unit,omitempty"`
}
