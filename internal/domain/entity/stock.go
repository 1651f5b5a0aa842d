package entity

import "time"

// Stock representa el inventario actual de un ítem del menú (una fila por ítem).
// CurrentStock nunca es negativo: el decremento usa UPDATE con guarda y la tabla
// tiene CHECK (current_stock >= 0).
type Stock struct {
	MenuItemID   string
	CurrentStock int
	MinimumStock int
	MaximumStock *int // informativo, no se aplica como tope
	Unit         string
	UpdatedAt    time.Time
}

// LowStockItem fila del listado de reposición (stock <= mínimo), con datos del ítem.
type LowStockItem struct {
	MenuItemID   string
	Name         string
	CurrentStock int
	MinimumStock int
	Unit         string
}
