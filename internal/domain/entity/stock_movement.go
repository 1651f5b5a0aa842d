package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementTypeIN  = "IN"  // entrada (reposición o cancelación)
	MovementTypeOUT = "OUT" // salida (pedido)
)

// StockMovement registro de auditoría de cada mutación del stock.
// OrderID queda vacío en reposiciones manuales.
type StockMovement struct {
	ID            string
	OrderID       string
	MenuItemID    string
	Type          string
	Quantity      int
	PreviousStock int
	NewStock      int
	CreatedAt     time.Time
	CreatedBy     string
}
