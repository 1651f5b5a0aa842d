package repository

import (
	"time"

	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/order"
)

// OrderRepository puerto de persistencia de pedidos, líneas y anotaciones.
type OrderRepository interface {
	// Create persiste la cabecera. Retorna domain.ErrDuplicate si el
	// order_number ya existe (constraint único; el caso de uso regenera y reintenta).
	Create(o *entity.Order) error
	// CreateItem persiste una línea del pedido.
	CreateItem(item *entity.OrderItem) error
	// GetByID obtiene la cabecera; nil si no existe.
	GetByID(id string) (*entity.Order, error)
	// GetItemsByOrderID obtiene las líneas de un pedido.
	GetItemsByOrderID(orderID string) ([]*entity.OrderItem, error)
	// ListByCustomer lista pedidos de un cliente, más recientes primero.
	ListByCustomer(customerID string, limit, offset int) ([]*entity.Order, error)
	// UpdateStatus escribe status y updated_at; deliveredAt solo se escribe si
	// no es nil y actual_delivery_time sigue NULL (estampado único).
	UpdateStatus(id string, status order.Status, deliveredAt *time.Time, updatedAt time.Time) error
	// CreateNote agrega una anotación append-only.
	CreateNote(note *entity.OrderNote) error
	// GetNotesByOrderID obtiene las anotaciones de un pedido, en orden de creación.
	GetNotesByOrderID(orderID string) ([]*entity.OrderNote, error)
}
