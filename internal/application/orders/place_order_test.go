package orders_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/application/orders"
	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/pkg/logger"
)

func newPlaceUC(f *fixture) *orders.PlaceOrderUseCase {
	policy := orders.PricingPolicy{
		TaxRate:     decimal.RequireFromString("0.10"),
		DeliveryFee: decimal.RequireFromString("5.00"),
	}
	return orders.NewPlaceOrderUseCase(
		f.txRunner, f.menuRepo, f.stockRepo, f.customerRepo, f.addressRepo,
		f.notifier, policy, logger.Nop(),
	)
}

func deliveryRequest(lines ...dto.PlaceOrderLine) dto.PlaceOrderRequest {
	return dto.PlaceOrderRequest{
		OrderType:         entity.OrderTypeDelivery,
		DeliveryAddressID: fixAddressID,
		Items:             lines,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Flujo feliz
// ──────────────────────────────────────────────────────────────────────────────

func TestPlaceOrder_Delivery_TotalesYStock(t *testing.T) {
	f := newFixture()
	uc := newPlaceUC(f)

	// 2 pizzas ($8.50) + 2 gaseosas ($1.50) = $20.00
	resp, err := uc.PlaceOrder(context.Background(), fixCustomerID, deliveryRequest(
		dto.PlaceOrderLine{MenuItemID: "item-pizza", Quantity: 2},
		dto.PlaceOrderLine{MenuItemID: "item-soda", Quantity: 2},
	))
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, "pending", resp.Status, "el pedido nace en pending")
	assert.Equal(t, fixCustomerID, resp.CustomerID)
	assert.True(t, decimal.RequireFromString("20.00").Equal(resp.Subtotal), "subtotal: %s", resp.Subtotal)
	assert.True(t, decimal.RequireFromString("2.00").Equal(resp.Tax), "tax 10%%: %s", resp.Tax)
	assert.True(t, decimal.RequireFromString("5.00").Equal(resp.DeliveryFee))
	assert.True(t, decimal.RequireFromString("27.00").Equal(resp.Total), "total: %s", resp.Total)
	assert.Regexp(t, `^PED-\d{14}-\d{4}$`, resp.OrderNumber)
	require.Len(t, resp.Items, 2)

	// Stock descontado y movimientos OUT registrados
	pizza, _ := f.stockRepo.Get("item-pizza")
	soda, _ := f.stockRepo.Get("item-soda")
	assert.Equal(t, 8, pizza.CurrentStock)
	assert.Equal(t, 3, soda.CurrentStock)
	require.Len(t, f.movRepo.movements, 2)
	assert.Equal(t, entity.MovementTypeOUT, f.movRepo.movements[0].Type)
	assert.Equal(t, 10, f.movRepo.movements[0].PreviousStock)
	assert.Equal(t, 8, f.movRepo.movements[0].NewStock)

	// Evento post-commit
	require.Len(t, f.notifier.events, 1)
	assert.Equal(t, orders.EventOrderPlaced, f.notifier.events[0].event)
	assert.Equal(t, resp.ID, f.notifier.events[0].orderID)
}

func TestPlaceOrder_Pickup_SinTarifaDeEnvio(t *testing.T) {
	f := newFixture()
	uc := newPlaceUC(f)

	resp, err := uc.PlaceOrder(context.Background(), fixCustomerID, dto.PlaceOrderRequest{
		OrderType: entity.OrderTypePickup,
		Items:     []dto.PlaceOrderLine{{MenuItemID: "item-soda", Quantity: 1}},
	})
	require.NoError(t, err)

	assert.True(t, resp.DeliveryFee.IsZero(), "pickup no paga envío")
	assert.True(t, decimal.RequireFromString("1.65").Equal(resp.Total), "1.50 + 0.15 de impuesto: %s", resp.Total)
}

// ──────────────────────────────────────────────────────────────────────────────
// Stock insuficiente
// ──────────────────────────────────────────────────────────────────────────────

func TestPlaceOrder_StockInsuficiente_AgregaTodasLasLineas(t *testing.T) {
	f := newFixture()
	uc := newPlaceUC(f)

	_, err := uc.PlaceOrder(context.Background(), fixCustomerID, deliveryRequest(
		dto.PlaceOrderLine{MenuItemID: "item-pizza", Quantity: 20}, // hay 10
		dto.PlaceOrderLine{MenuItemID: "item-soda", Quantity: 6},   // hay 5
	))
	require.Error(t, err)

	var insuf *orders.InsufficientStockError
	require.ErrorAs(t, err, &insuf)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
	require.Len(t, insuf.Lines, 2, "debe reportar TODAS las líneas cortas, no solo la primera")
	assert.Equal(t, 20, insuf.Lines[0].Requested)
	assert.Equal(t, 10, insuf.Lines[0].Available)
	assert.Equal(t, 6, insuf.Lines[1].Requested)
	assert.Equal(t, 5, insuf.Lines[1].Available)

	// Nada persistido, nada descontado
	assert.Empty(t, f.orderRepo.orders)
	pizza, _ := f.stockRepo.Get("item-pizza")
	assert.Equal(t, 10, pizza.CurrentStock)
}

func TestPlaceOrder_CarreraPerdida_RevierteTodaLaTx(t *testing.T) {
	f := newFixture()
	uc := newPlaceUC(f)

	// La validación consultiva ve stock suficiente; antes del decremento de la
	// segunda línea otro pedido consume las gaseosas.
	calls := 0
	f.stockRepo.onDecrement = func() {
		calls++
		if calls == 2 {
			f.stockRepo.stocks["item-soda"].CurrentStock = 1
		}
	}

	_, err := uc.PlaceOrder(context.Background(), fixCustomerID, deliveryRequest(
		dto.PlaceOrderLine{MenuItemID: "item-pizza", Quantity: 2},
		dto.PlaceOrderLine{MenuItemID: "item-soda", Quantity: 3},
	))
	require.Error(t, err)

	var insuf *orders.InsufficientStockError
	require.ErrorAs(t, err, &insuf)
	require.Len(t, insuf.Lines, 1)
	assert.Equal(t, "item-soda", insuf.Lines[0].MenuItemID)
	assert.Equal(t, 1, insuf.Lines[0].Available)

	// Rollback total: ni pedido, ni movimientos, ni el decremento de la pizza
	assert.Empty(t, f.orderRepo.orders)
	assert.Empty(t, f.movRepo.movements)
	pizza, _ := f.stockRepo.Get("item-pizza")
	assert.Equal(t, 10, pizza.CurrentStock, "la primera línea también debe revertirse")
	assert.Empty(t, f.notifier.events, "sin commit no hay notificación")
}

// ──────────────────────────────────────────────────────────────────────────────
// Disponibilidad y alertas
// ──────────────────────────────────────────────────────────────────────────────

func TestPlaceOrder_StockEnCero_DeshabilitaElItem(t *testing.T) {
	f := newFixture()
	uc := newPlaceUC(f)

	_, err := uc.PlaceOrder(context.Background(), fixCustomerID, dto.PlaceOrderRequest{
		OrderType: entity.OrderTypePickup,
		Items:     []dto.PlaceOrderLine{{MenuItemID: "item-soda", Quantity: 5}},
	})
	require.NoError(t, err)

	soda, _ := f.stockRepo.Get("item-soda")
	assert.Equal(t, 0, soda.CurrentStock)
	item, _ := f.menuRepo.GetByID("item-soda")
	assert.False(t, item.IsAvailable, "al llegar a cero el ítem se deshabilita en la misma tx")
}

func TestPlaceOrder_BajoMinimo_EmiteAlerta(t *testing.T) {
	f := newFixture()
	uc := newPlaceUC(f)

	// 10 - 8 = 2, bajo el mínimo de 3
	_, err := uc.PlaceOrder(context.Background(), fixCustomerID, dto.PlaceOrderRequest{
		OrderType: entity.OrderTypePickup,
		Items:     []dto.PlaceOrderLine{{MenuItemID: "item-pizza", Quantity: 8}},
	})
	require.NoError(t, err)

	require.Len(t, f.notifier.lowStock, 1)
	assert.Equal(t, "item-pizza", f.notifier.lowStock[0].menuItemID)
	assert.Equal(t, 2, f.notifier.lowStock[0].current)
	assert.Equal(t, 3, f.notifier.lowStock[0].minimum)

	item, _ := f.menuRepo.GetByID("item-pizza")
	assert.True(t, item.IsAvailable, "bajo mínimo pero sobre cero sigue a la venta")
}

func TestPlaceOrder_ItemDeshabilitado_Rechaza(t *testing.T) {
	f := newFixture()
	f.menuRepo.items["item-pizza"].IsAvailable = false
	uc := newPlaceUC(f)

	_, err := uc.PlaceOrder(context.Background(), fixCustomerID, deliveryRequest(
		dto.PlaceOrderLine{MenuItemID: "item-pizza", Quantity: 1},
	))
	assert.ErrorIs(t, err, domain.ErrItemUnavailable)
}

func TestPlaceOrder_ItemInexistente_Rechaza(t *testing.T) {
	f := newFixture()
	uc := newPlaceUC(f)

	_, err := uc.PlaceOrder(context.Background(), fixCustomerID, deliveryRequest(
		dto.PlaceOrderLine{MenuItemID: "item-fantasma", Quantity: 1},
	))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación de entrada
// ──────────────────────────────────────────────────────────────────────────────

func TestPlaceOrder_Validacion(t *testing.T) {
	f := newFixture()
	uc := newPlaceUC(f)
	ctx := context.Background()

	casos := []struct {
		nombre string
		id     string
		req    dto.PlaceOrderRequest
		want   error
	}{
		{"sin items", fixCustomerID, dto.PlaceOrderRequest{OrderType: entity.OrderTypePickup}, domain.ErrInvalidInput},
		{"tipo desconocido", fixCustomerID, dto.PlaceOrderRequest{
			OrderType: "drone",
			Items:     []dto.PlaceOrderLine{{MenuItemID: "item-soda", Quantity: 1}},
		}, domain.ErrInvalidInput},
		{"cantidad cero", fixCustomerID, dto.PlaceOrderRequest{
			OrderType: entity.OrderTypePickup,
			Items:     []dto.PlaceOrderLine{{MenuItemID: "item-soda", Quantity: 0}},
		}, domain.ErrInvalidInput},
		{"delivery sin dirección", fixCustomerID, dto.PlaceOrderRequest{
			OrderType: entity.OrderTypeDelivery,
			Items:     []dto.PlaceOrderLine{{MenuItemID: "item-soda", Quantity: 1}},
		}, domain.ErrInvalidInput},
		{"cliente inexistente", "cust-fantasma", dto.PlaceOrderRequest{
			OrderType: entity.OrderTypePickup,
			Items:     []dto.PlaceOrderLine{{MenuItemID: "item-soda", Quantity: 1}},
		}, domain.ErrNotFound},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			_, err := uc.PlaceOrder(ctx, c.id, c.req)
			assert.ErrorIs(t, err, c.want)
		})
	}
}

func TestPlaceOrder_DireccionDeOtroCliente_Rechaza(t *testing.T) {
	f := newFixture()
	f.addressRepo.addresses["addr-ajena"] = &entity.CustomerAddress{
		ID: "addr-ajena", CustomerID: "otro-cliente", AddressLine: "Cra 7 #12-30",
	}
	uc := newPlaceUC(f)

	_, err := uc.PlaceOrder(context.Background(), fixCustomerID, dto.PlaceOrderRequest{
		OrderType:         entity.OrderTypeDelivery,
		DeliveryAddressID: "addr-ajena",
		Items:             []dto.PlaceOrderLine{{MenuItemID: "item-soda", Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// Número de pedido duplicado
// ──────────────────────────────────────────────────────────────────────────────

func TestPlaceOrder_NumeroDuplicado_ReintentaYCrea(t *testing.T) {
	f := newFixture()
	f.orderRepo.dupFailures = 1
	uc := newPlaceUC(f)

	resp, err := uc.PlaceOrder(context.Background(), fixCustomerID, dto.PlaceOrderRequest{
		OrderType: entity.OrderTypePickup,
		Items:     []dto.PlaceOrderLine{{MenuItemID: "item-soda", Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, f.orderRepo.createCalls, "un intento fallido + el reintento exitoso")
	assert.Len(t, f.orderRepo.orders, 1)

	// Solo el intento exitoso descontó stock
	soda, _ := f.stockRepo.Get("item-soda")
	assert.Equal(t, 4, soda.CurrentStock)
	assert.Regexp(t, `^PED-`, resp.OrderNumber)
}

func TestPlaceOrder_NumeroDuplicado_AgotaReintentos(t *testing.T) {
	f := newFixture()
	f.orderRepo.dupFailures = 3
	uc := newPlaceUC(f)

	_, err := uc.PlaceOrder(context.Background(), fixCustomerID, dto.PlaceOrderRequest{
		OrderType: entity.OrderTypePickup,
		Items:     []dto.PlaceOrderLine{{MenuItemID: "item-soda", Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Equal(t, 3, f.orderRepo.createCalls)
	assert.Empty(t, f.orderRepo.orders)
}

// ──────────────────────────────────────────────────────────────────────────────
// Notificación best-effort
// ──────────────────────────────────────────────────────────────────────────────

func TestPlaceOrder_FalloDeNotificacion_NoDeshaceElPedido(t *testing.T) {
	f := newFixture()
	f.notifier.failWith = errors.New("smtp caído")
	uc := newPlaceUC(f)

	resp, err := uc.PlaceOrder(context.Background(), fixCustomerID, dto.PlaceOrderRequest{
		OrderType: entity.OrderTypePickup,
		Items:     []dto.PlaceOrderLine{{MenuItemID: "item-soda", Quantity: 1}},
	})
	require.NoError(t, err, "la notificación es best-effort")
	assert.Contains(t, f.orderRepo.orders, resp.ID)
}
