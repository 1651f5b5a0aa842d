package orders

import (
	"context"

	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/order"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

// OrderQueryUseCase lecturas de pedidos (detalle y listado).
type OrderQueryUseCase struct {
	orderRepo repository.OrderRepository
}

// NewOrderQueryUseCase construye el caso de uso.
func NewOrderQueryUseCase(orderRepo repository.OrderRepository) *OrderQueryUseCase {
	return &OrderQueryUseCase{orderRepo: orderRepo}
}

// GetOrder obtiene un pedido con líneas y anotaciones. Un cliente solo ve sus
// propios pedidos; staff/admin ven cualquiera.
func (uc *OrderQueryUseCase) GetOrder(ctx context.Context, orderID, actorID, actorRole string) (*dto.OrderResponse, error) {
	o, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrOrderNotFound
	}
	if actorRole == order.RoleCustomer && o.CustomerID != actorID {
		return nil, domain.ErrForbidden
	}
	items, err := uc.orderRepo.GetItemsByOrderID(o.ID)
	if err != nil {
		return nil, err
	}
	notes, err := uc.orderRepo.GetNotesByOrderID(o.ID)
	if err != nil {
		return nil, err
	}
	return toOrderResponse(o, items, notes), nil
}

// ListByCustomer lista los pedidos de un cliente (más recientes primero).
// Un cliente solo lista los suyos; staff/admin pueden listar los de cualquiera.
func (uc *OrderQueryUseCase) ListByCustomer(ctx context.Context, customerID, actorID, actorRole string, page dto.PageRequest) ([]*dto.OrderResponse, error) {
	if customerID == "" {
		return nil, domain.ErrInvalidInput
	}
	if actorRole == order.RoleCustomer && customerID != actorID {
		return nil, domain.ErrForbidden
	}
	page.DefaultPage()
	list, err := uc.orderRepo.ListByCustomer(customerID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.OrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, toOrderResponse(o, nil, nil))
	}
	return out, nil
}
