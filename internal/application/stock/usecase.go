package stock

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

// Razones de no disponibilidad en CheckAvailability.
const (
	ReasonItemUnavailable   = "ITEM_UNAVAILABLE"
	ReasonInsufficientStock = "INSUFFICIENT_STOCK"
)

// UseCase operaciones de stock fuera del flujo de pedidos: consulta de
// disponibilidad, reposición manual y listado de stock bajo.
type UseCase struct {
	txRunner  TxRunner
	menuRepo  repository.MenuItemRepository
	stockRepo repository.StockRepository
	movRepo   repository.StockMovementRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	menuRepo repository.MenuItemRepository,
	stockRepo repository.StockRepository,
	movRepo repository.StockMovementRepository,
) *UseCase {
	return &UseCase{txRunner: txRunner, menuRepo: menuRepo, stockRepo: stockRepo, movRepo: movRepo}
}

// CheckAvailability lectura pura: disponible = flag del ítem encendido y stock
// suficiente para la cantidad pedida. Nunca muta estado.
func (uc *UseCase) CheckAvailability(ctx context.Context, menuItemID string, quantity int) (*dto.AvailabilityResponse, error) {
	if menuItemID == "" || quantity < 1 {
		return nil, domain.ErrInvalidInput
	}
	item, err := uc.menuRepo.GetByID(menuItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	s, err := uc.stockRepo.Get(menuItemID)
	if err != nil {
		return nil, err
	}
	resp := &dto.AvailabilityResponse{
		MenuItemID:   menuItemID,
		CurrentStock: s.CurrentStock,
	}
	switch {
	case !item.IsAvailable:
		resp.Reason = ReasonItemUnavailable
	case s.CurrentStock < quantity:
		resp.Reason = ReasonInsufficientStock
	default:
		resp.Available = true
	}
	return resp, nil
}

// Restock repone stock de un ítem (entrada manual de cocina/bodega) y
// re-habilita el ítem, en una transacción con su movimiento de auditoría.
func (uc *UseCase) Restock(ctx context.Context, menuItemID, userID string, quantity int) error {
	if menuItemID == "" || quantity < 1 {
		return domain.ErrInvalidInput
	}
	item, err := uc.menuRepo.GetByID(menuItemID)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}

	now := time.Now()
	return uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		menuRepo repository.MenuItemRepository,
		movRepo repository.StockMovementRepository,
	) error {
		prev, current, err := stockRepo.Increment(menuItemID, quantity)
		if err != nil {
			return err
		}
		if err := movRepo.Create(&entity.StockMovement{
			ID:            uuid.New().String(),
			MenuItemID:    menuItemID,
			Type:          entity.MovementTypeIN,
			Quantity:      quantity,
			PreviousStock: prev,
			NewStock:      current,
			CreatedAt:     now,
			CreatedBy:     userID,
		}); err != nil {
			return err
		}
		// Cualquier reposición re-habilita el ítem (política heredada)
		return menuRepo.SetAvailability(menuItemID, true)
	})
}

// ListLowStock lista los ítems con stock en o por debajo del mínimo.
func (uc *UseCase) ListLowStock(ctx context.Context) ([]dto.LowStockItemResponse, error) {
	rows, err := uc.stockRepo.ListLowStock()
	if err != nil {
		return nil, err
	}
	out := make([]dto.LowStockItemResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.LowStockItemResponse{
			MenuItemID:   r.MenuItemID,
			Name:         r.Name,
			CurrentStock: r.CurrentStock,
			MinimumStock: r.MinimumStock,
			Unit:         r.Unit,
		})
	}
	return out, nil
}

// ListMovementsByOrder devuelve la auditoría de stock de un pedido: cada
// decremento por creación y cada restauración por cancelación, en orden.
func (uc *UseCase) ListMovementsByOrder(ctx context.Context, orderID string) ([]dto.StockMovementResponse, error) {
	if orderID == "" {
		return nil, domain.ErrInvalidInput
	}
	rows, err := uc.movRepo.ListByOrderID(orderID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockMovementResponse, 0, len(rows))
	for _, m := range rows {
		out = append(out, dto.StockMovementResponse{
			ID:            m.ID,
			OrderID:       m.OrderID,
			MenuItemID:    m.MenuItemID,
			Type:          m.Type,
			Quantity:      m.Quantity,
			PreviousStock: m.PreviousStock,
			NewStock:      m.NewStock,
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
		})
	}
	return out, nil
}
