package orders

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/order"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
	"github.com/jhoicas/Pedidos-api/pkg/logger"
)

// PricingPolicy política de precios aplicada al crear un pedido.
type PricingPolicy struct {
	TaxRate     decimal.Decimal // ej. 0.10
	DeliveryFee decimal.Decimal // tarifa plana para delivery; 0 en pickup
}

// Reintentos de generación de order_number ante colisión del constraint único.
// La unicidad del generador (timestamp + sufijo aleatorio) es probabilística;
// la garantiza el constraint y este reintento.
const orderNumberAttempts = 3

// PlaceOrderUseCase crea un pedido y descuenta el stock en una sola transacción.
// Toda la validación corre ANTES de abrir la tx; dentro de la tx el decremento
// con guarda re-verifica la suficiencia, así que la validación previa es
// consultiva y el commit es quien decide ante carreras.
type PlaceOrderUseCase struct {
	txRunner     TxRunner
	menuRepo     repository.MenuItemRepository
	stockRepo    repository.StockRepository
	customerRepo repository.CustomerRepository
	addressRepo  repository.AddressRepository
	notifier     Notifier
	policy       PricingPolicy
	log          *logger.Logger
}

// NewPlaceOrderUseCase construye el caso de uso.
func NewPlaceOrderUseCase(
	txRunner TxRunner,
	menuRepo repository.MenuItemRepository,
	stockRepo repository.StockRepository,
	customerRepo repository.CustomerRepository,
	addressRepo repository.AddressRepository,
	notifier Notifier,
	policy PricingPolicy,
	log *logger.Logger,
) *PlaceOrderUseCase {
	return &PlaceOrderUseCase{
		txRunner:     txRunner,
		menuRepo:     menuRepo,
		stockRepo:    stockRepo,
		customerRepo: customerRepo,
		addressRepo:  addressRepo,
		notifier:     notifier,
		policy:       policy,
		log:          log,
	}
}

// lowStockAlert evento de stock bajo detectado dentro de la tx, notificado después del commit.
type lowStockAlert struct {
	menuItemID string
	name       string
	current    int
	minimum    int
}

// PlaceOrder valida las líneas solicitadas contra catálogo y stock, y luego en
// una transacción: re-lee precios, calcula totales, inserta cabecera y líneas,
// descuenta stock con guarda y deshabilita los ítems que quedan en cero.
// Cualquier fallo dentro de la tx revierte todo; no quedan pedidos a medias.
func (uc *PlaceOrderUseCase) PlaceOrder(ctx context.Context, customerID string, in dto.PlaceOrderRequest) (*dto.OrderResponse, error) {
	if customerID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.OrderType != entity.OrderTypePickup && in.OrderType != entity.OrderTypeDelivery {
		return nil, domain.ErrInvalidInput
	}
	for _, line := range in.Items {
		if line.MenuItemID == "" || line.Quantity < 1 {
			return nil, domain.ErrInvalidInput
		}
	}

	customer, err := uc.customerRepo.GetByID(customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}

	// Delivery exige dirección y que pertenezca al cliente
	if in.OrderType == entity.OrderTypeDelivery {
		if in.DeliveryAddressID == "" {
			return nil, domain.ErrInvalidInput
		}
		addr, err := uc.addressRepo.GetByID(in.DeliveryAddressID)
		if err != nil {
			return nil, err
		}
		if addr == nil {
			return nil, domain.ErrNotFound
		}
		if addr.CustomerID != customerID {
			return nil, domain.ErrForbidden
		}
	}

	// Validar catálogo: existencia y disponibilidad de cada ítem (fuera de la tx, solo lectura)
	itemsByID := make(map[string]*entity.MenuItem)
	for _, line := range in.Items {
		item, err := uc.menuRepo.GetByID(line.MenuItemID)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, domain.ErrNotFound
		}
		if !item.IsAvailable {
			return nil, domain.ErrItemUnavailable
		}
		itemsByID[line.MenuItemID] = item
	}

	// Chequeo de stock consultivo: acumula TODAS las líneas insuficientes para
	// devolver el panorama completo, no solo la primera.
	minimumsByID := make(map[string]int)
	var shortage []dto.InsufficientStockLine
	for _, line := range in.Items {
		stock, err := uc.stockRepo.Get(line.MenuItemID)
		if err != nil {
			return nil, err
		}
		minimumsByID[line.MenuItemID] = stock.MinimumStock
		if stock.CurrentStock < line.Quantity {
			shortage = append(shortage, dto.InsufficientStockLine{
				MenuItemID: line.MenuItemID,
				Requested:  line.Quantity,
				Available:  stock.CurrentStock,
			})
		}
	}
	if len(shortage) > 0 {
		return nil, &InsufficientStockError{Lines: shortage}
	}

	var (
		created      *entity.Order
		createdItems []*entity.OrderItem
		alerts       []lowStockAlert
	)

	// El insert de la cabecera puede chocar con el constraint único de
	// order_number; en ese caso se regenera el número y se reintenta la tx completa.
	for attempt := 0; attempt < orderNumberAttempts; attempt++ {
		now := time.Now()
		number := generateOrderNumber(now)
		alerts = alerts[:0]

		err = uc.txRunner.RunOrder(ctx, func(
			orderRepo repository.OrderRepository,
			stockRepo repository.StockRepository,
			menuRepo repository.MenuItemRepository,
			movRepo repository.StockMovementRepository,
		) error {
			// Re-leer precio y disponibilidad dentro de la tx para no usar precios viejos
			var subtotal decimal.Decimal
			lines := make([]*entity.OrderItem, 0, len(in.Items))
			for _, reqLine := range in.Items {
				item, err := menuRepo.GetByID(reqLine.MenuItemID)
				if err != nil {
					return err
				}
				if item == nil {
					return domain.ErrNotFound
				}
				if !item.IsAvailable {
					return domain.ErrItemUnavailable
				}
				lineTotal := item.Price.Mul(decimal.NewFromInt(int64(reqLine.Quantity))).Round(2)
				subtotal = subtotal.Add(lineTotal)
				lines = append(lines, &entity.OrderItem{
					ID:                  uuid.New().String(),
					MenuItemID:          reqLine.MenuItemID,
					Quantity:            reqLine.Quantity,
					UnitPrice:           item.Price,
					TotalPrice:          lineTotal,
					SpecialInstructions: reqLine.SpecialInstructions,
				})
			}

			// Totales: cada componente se redondea a 2 decimales y luego se suma
			tax := subtotal.Mul(uc.policy.TaxRate).Round(2)
			deliveryFee := decimal.Zero
			if in.OrderType == entity.OrderTypeDelivery {
				deliveryFee = uc.policy.DeliveryFee.Round(2)
			}
			total := subtotal.Add(tax).Add(deliveryFee)

			o := &entity.Order{
				ID:                uuid.New().String(),
				OrderNumber:       number,
				CustomerID:        customerID,
				Status:            order.StatusPending,
				OrderType:         in.OrderType,
				DeliveryAddressID: in.DeliveryAddressID,
				Subtotal:          subtotal,
				Tax:               tax,
				DeliveryFee:       deliveryFee,
				Total:             total,
				CreatedAt:         now,
				UpdatedAt:         now,
			}
			if err := orderRepo.Create(o); err != nil {
				return err
			}
			for _, line := range lines {
				line.OrderID = o.ID
				if err := orderRepo.CreateItem(line); err != nil {
					return err
				}
			}

			// Descontar stock con guarda; si una línea pierde la carrera, toda la tx revierte
			for _, line := range lines {
				prev, current, err := stockRepo.Decrement(line.MenuItemID, line.Quantity)
				if errors.Is(err, domain.ErrInsufficientStock) {
					return &InsufficientStockError{Lines: []dto.InsufficientStockLine{{
						MenuItemID: line.MenuItemID,
						Requested:  line.Quantity,
						Available:  prev,
					}}}
				}
				if err != nil {
					return err
				}
				if err := movRepo.Create(&entity.StockMovement{
					ID:            uuid.New().String(),
					OrderID:       o.ID,
					MenuItemID:    line.MenuItemID,
					Type:          entity.MovementTypeOUT,
					Quantity:      line.Quantity,
					PreviousStock: prev,
					NewStock:      current,
					CreatedAt:     now,
					CreatedBy:     customerID,
				}); err != nil {
					return err
				}
				if current == 0 {
					// Cero stock: el ítem deja de venderse dentro de la misma tx
					if err := menuRepo.SetAvailability(line.MenuItemID, false); err != nil {
						return err
					}
				} else if current <= minimumsByID[line.MenuItemID] {
					alerts = append(alerts, lowStockAlert{
						menuItemID: line.MenuItemID,
						name:       itemsByID[line.MenuItemID].Name,
						current:    current,
						minimum:    minimumsByID[line.MenuItemID],
					})
				}
			}

			created = o
			createdItems = lines
			return nil
		})
		if errors.Is(err, domain.ErrDuplicate) {
			uc.log.Warn().Str("order_number", number).Msg("colisión de número de pedido, regenerando")
			continue
		}
		break
	}
	if err != nil {
		return nil, err
	}

	// Post-commit, best-effort: fallos se registran, nunca deshacen el pedido
	if nerr := uc.notifier.OrderEvent(ctx, EventOrderPlaced, customer, created, createdItems); nerr != nil {
		uc.log.Error().Err(nerr).Str("order_id", created.ID).Msg("notificación de pedido creado")
	}
	for _, a := range alerts {
		if nerr := uc.notifier.LowStock(ctx, a.menuItemID, a.name, a.current, a.minimum); nerr != nil {
			uc.log.Error().Err(nerr).Str("menu_item_id", a.menuItemID).Msg("alerta de stock bajo")
		}
	}

	return toOrderResponse(created, createdItems, nil), nil
}

// generateOrderNumber genera un número legible derivado del timestamp más un
// sufijo aleatorio. No es único por construcción: el constraint de la tabla y
// el reintento en PlaceOrder cubren las colisiones.
func generateOrderNumber(now time.Time) string {
	return fmt.Sprintf("PED-%s-%04d", now.Format("20060102150405"), rand.IntN(10000))
}
