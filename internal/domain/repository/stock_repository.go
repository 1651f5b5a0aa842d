package repository

import "github.com/jhoicas/Pedidos-api/internal/domain/entity"

// StockRepository puerto de persistencia del stock por ítem de menú.
//
// Decrement es la única operación que puede fallar a mitad de un flujo: usa un
// UPDATE con guarda (current_stock >= qty) y reporta domain.ErrInsufficientStock
// cuando la guarda rechaza, de modo que el decremento es linealizable frente a
// decrementos concurrentes sin depender del nivel de aislamiento.
type StockRepository interface {
	// Get lee el stock de un ítem. Retorna domain.ErrNotFound si no hay fila.
	Get(menuItemID string) (*entity.Stock, error)
	// Decrement resta qty con guarda de suficiencia. Retorna stock previo y nuevo.
	Decrement(menuItemID string, qty int) (previous, current int, err error)
	// Increment suma qty (siempre procede; no se aplica maximum_stock como tope).
	Increment(menuItemID string, qty int) (previous, current int, err error)
	// ListLowStock lista ítems con current_stock <= minimum_stock.
	ListLowStock() ([]*entity.LowStockItem, error)
}
