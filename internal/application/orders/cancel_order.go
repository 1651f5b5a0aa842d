package orders

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/order"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
	"github.com/jhoicas/Pedidos-api/pkg/logger"
)

// CancelOrderUseCase revierte un pedido: restaura el stock de cada línea,
// re-habilita los ítems y pasa el pedido a cancelled, todo en una transacción.
type CancelOrderUseCase struct {
	txRunner     TxRunner
	orderRepo    repository.OrderRepository
	customerRepo repository.CustomerRepository
	notifier     Notifier
	log          *logger.Logger
}

// NewCancelOrderUseCase construye el caso de uso.
func NewCancelOrderUseCase(
	txRunner TxRunner,
	orderRepo repository.OrderRepository,
	customerRepo repository.CustomerRepository,
	notifier Notifier,
	log *logger.Logger,
) *CancelOrderUseCase {
	return &CancelOrderUseCase{
		txRunner:     txRunner,
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		notifier:     notifier,
		log:          log,
	}
}

// Cancel cancela un pedido. Cliente: solo su propio pedido y solo en
// pending/confirmed. Admin: cualquier pedido no terminal. Cualquier otro rol
// se rechaza. La cancelación es un cambio de estado, nunca un borrado.
func (uc *CancelOrderUseCase) Cancel(ctx context.Context, orderID, actorID, actorRole, reason string) (*dto.OrderResponse, error) {
	if orderID == "" || actorID == "" {
		return nil, domain.ErrInvalidInput
	}

	o, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrOrderNotFound
	}
	if o.Status == order.StatusCancelled {
		return nil, domain.ErrAlreadyCancelled
	}

	switch actorRole {
	case order.RoleCustomer:
		if o.CustomerID != actorID {
			return nil, domain.ErrForbidden
		}
	case order.RoleAdmin:
		// sin restricción de propiedad
	default:
		return nil, domain.ErrForbidden
	}
	if !order.CanCancel(o.Status, actorRole) {
		return nil, &order.ErrInvalidTransition{From: o.Status, To: order.StatusCancelled, Role: actorRole}
	}

	now := time.Now()
	var items []*entity.OrderItem
	err = uc.txRunner.RunOrder(ctx, func(
		orderRepo repository.OrderRepository,
		stockRepo repository.StockRepository,
		menuRepo repository.MenuItemRepository,
		movRepo repository.StockMovementRepository,
	) error {
		items, err = orderRepo.GetItemsByOrderID(o.ID)
		if err != nil {
			return err
		}
		for _, line := range items {
			prev, current, err := stockRepo.Increment(line.MenuItemID, line.Quantity)
			if err != nil {
				return err
			}
			if err := movRepo.Create(&entity.StockMovement{
				ID:            uuid.New().String(),
				OrderID:       o.ID,
				MenuItemID:    line.MenuItemID,
				Type:          entity.MovementTypeIN,
				Quantity:      line.Quantity,
				PreviousStock: prev,
				NewStock:      current,
				CreatedAt:     now,
				CreatedBy:     actorID,
			}); err != nil {
				return err
			}
			// Re-habilitación incondicional al restaurar stock (política heredada:
			// no distingue por qué estaba deshabilitado el ítem)
			if err := menuRepo.SetAvailability(line.MenuItemID, true); err != nil {
				return err
			}
		}
		if err := orderRepo.UpdateStatus(o.ID, order.StatusCancelled, nil, now); err != nil {
			return err
		}
		if reason != "" {
			return orderRepo.CreateNote(&entity.OrderNote{
				ID:        uuid.New().String(),
				OrderID:   o.ID,
				ActorID:   actorID,
				ActorRole: actorRole,
				Note:      reason,
				CreatedAt: now,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	o.Status = order.StatusCancelled
	o.UpdatedAt = now

	customer, cerr := uc.customerRepo.GetByID(o.CustomerID)
	if cerr != nil || customer == nil {
		uc.log.Warn().Str("customer_id", o.CustomerID).Msg("cliente no resuelto para notificación de cancelación")
	} else if nerr := uc.notifier.OrderEvent(ctx, EventOrderCancelled, customer, o, items); nerr != nil {
		uc.log.Error().Err(nerr).Str("order_id", o.ID).Msg("notificación de cancelación")
	}

	return toOrderResponse(o, items, nil), nil
}
