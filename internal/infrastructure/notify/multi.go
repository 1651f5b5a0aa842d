package notify

import (
	"context"
	"errors"

	"github.com/jhoicas/Pedidos-api/internal/application/orders"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
)

var _ orders.Notifier = (Multi)(nil)

// Multi fan-out a varios notificadores (correo + eventos). Intenta todos y
// junta los errores; un canal caído no bloquea a los demás.
type Multi []orders.Notifier

// OrderEvent notifica el evento por todos los canales.
func (m Multi) OrderEvent(ctx context.Context, event string, customer *entity.Customer, o *entity.Order, items []*entity.OrderItem) error {
	var errs []error
	for _, n := range m {
		if err := n.OrderEvent(ctx, event, customer, o, items); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// LowStock notifica la alerta por todos los canales.
func (m Multi) LowStock(ctx context.Context, menuItemID, name string, current, minimum int) error {
	var errs []error
	for _, n := range m {
		if err := n.LowStock(ctx, menuItemID, name, current, minimum); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
