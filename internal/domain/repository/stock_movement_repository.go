package repository

import "github.com/jhoicas/Pedidos-api/internal/domain/entity"

// StockMovementRepository puerto del registro de auditoría de stock.
type StockMovementRepository interface {
	// Create persiste un movimiento (IN/OUT) con el stock previo y resultante.
	Create(mov *entity.StockMovement) error
	// ListByOrderID obtiene los movimientos asociados a un pedido.
	ListByOrderID(orderID string) ([]*entity.StockMovement, error)
}
