package orders

import (
	"context"
	"time"

	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/order"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
	"github.com/jhoicas/Pedidos-api/pkg/logger"
)

// UpdateOrderStatusUseCase avanza el estado de un pedido según la tabla de
// transiciones. El estado cancelled no pasa por aquí: ese cambio restaura
// stock y va por CancelOrderUseCase.
type UpdateOrderStatusUseCase struct {
	orderRepo    repository.OrderRepository
	customerRepo repository.CustomerRepository
	notifier     Notifier
	log          *logger.Logger
}

// NewUpdateOrderStatusUseCase construye el caso de uso.
func NewUpdateOrderStatusUseCase(
	orderRepo repository.OrderRepository,
	customerRepo repository.CustomerRepository,
	notifier Notifier,
	log *logger.Logger,
) *UpdateOrderStatusUseCase {
	return &UpdateOrderStatusUseCase{
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		notifier:     notifier,
		log:          log,
	}
}

// UpdateStatus valida y aplica la transición. Al pasar a delivered estampa
// actual_delivery_time exactamente una vez (escrituras posteriores no lo pisan).
func (uc *UpdateOrderStatusUseCase) UpdateStatus(ctx context.Context, orderID, actorRole, newStatus string, deliveryTime *time.Time) (*dto.OrderResponse, error) {
	if orderID == "" {
		return nil, domain.ErrInvalidInput
	}
	target, err := order.ParseStatus(newStatus)
	if err != nil {
		return nil, err
	}

	o, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrOrderNotFound
	}

	if err := order.ValidateTransition(o.Status, target, actorRole); err != nil {
		return nil, err
	}

	now := time.Now()
	var deliveredAt *time.Time
	if target == order.StatusDelivered && o.ActualDeliveryTime == nil {
		t := now
		if deliveryTime != nil {
			t = *deliveryTime
		}
		deliveredAt = &t
	}

	if err := uc.orderRepo.UpdateStatus(o.ID, target, deliveredAt, now); err != nil {
		return nil, err
	}

	o.Status = target
	o.UpdatedAt = now
	if deliveredAt != nil {
		o.ActualDeliveryTime = deliveredAt
	}

	customer, cerr := uc.customerRepo.GetByID(o.CustomerID)
	if cerr != nil || customer == nil {
		uc.log.Warn().Str("customer_id", o.CustomerID).Msg("cliente no resuelto para notificación de estado")
	} else if nerr := uc.notifier.OrderEvent(ctx, string(target), customer, o, nil); nerr != nil {
		uc.log.Error().Err(nerr).Str("order_id", o.ID).Str("status", string(target)).Msg("notificación de cambio de estado")
	}

	return toOrderResponse(o, nil, nil), nil
}
