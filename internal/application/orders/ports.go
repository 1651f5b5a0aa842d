package orders

import (
	"context"

	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad de los flujos de pedido:
// cabecera + líneas + stock + disponibilidad se confirman o revierten juntos.
type TxRunner interface {
	RunOrder(ctx context.Context, fn func(
		orderRepo repository.OrderRepository,
		stockRepo repository.StockRepository,
		menuRepo repository.MenuItemRepository,
		movRepo repository.StockMovementRepository,
	) error) error
}

// Eventos del ciclo de vida de un pedido para notificación.
// Los cambios de estado usan el propio estado como nombre de evento
// (confirmed, preparing, ready, out_for_delivery, delivered).
const (
	EventOrderPlaced    = "placed"
	EventOrderCancelled = "cancelled"
)

// Notifier puerto de notificaciones post-commit. Best-effort: los casos de uso
// registran el error y nunca lo propagan al resultado de la transacción.
type Notifier interface {
	OrderEvent(ctx context.Context, event string, customer *entity.Customer, o *entity.Order, items []*entity.OrderItem) error
	LowStock(ctx context.Context, menuItemID, name string, current, minimum int) error
}
