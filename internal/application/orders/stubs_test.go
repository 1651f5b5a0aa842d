package orders_test

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Pedidos-api/internal/application/orders"
	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/order"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Stubs en memoria. El stubTxRunner toma snapshot del estado al abrir la "tx"
// y lo restaura si la función falla, para que los tests verifiquen rollback real.
// ──────────────────────────────────────────────────────────────────────────────

type stubStockRepo struct {
	stocks map[string]*entity.Stock
	// onDecrement corre antes de cada Decrement; permite simular una carrera
	// perdida (otro pedido consumió el stock entre la validación y la tx).
	onDecrement func()
}

var _ repository.StockRepository = (*stubStockRepo)(nil)

func (s *stubStockRepo) Get(menuItemID string) (*entity.Stock, error) {
	st, ok := s.stocks[menuItemID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *st
	return &cp, nil
}

func (s *stubStockRepo) Decrement(menuItemID string, qty int) (int, int, error) {
	if s.onDecrement != nil {
		s.onDecrement()
	}
	st, ok := s.stocks[menuItemID]
	if !ok {
		return 0, 0, domain.ErrNotFound
	}
	if st.CurrentStock < qty {
		return st.CurrentStock, st.CurrentStock, domain.ErrInsufficientStock
	}
	prev := st.CurrentStock
	st.CurrentStock -= qty
	return prev, st.CurrentStock, nil
}

func (s *stubStockRepo) Increment(menuItemID string, qty int) (int, int, error) {
	st, ok := s.stocks[menuItemID]
	if !ok {
		return 0, 0, domain.ErrNotFound
	}
	prev := st.CurrentStock
	st.CurrentStock += qty
	return prev, st.CurrentStock, nil
}

func (s *stubStockRepo) ListLowStock() ([]*entity.LowStockItem, error) {
	var out []*entity.LowStockItem
	for id, st := range s.stocks {
		if st.CurrentStock <= st.MinimumStock {
			out = append(out, &entity.LowStockItem{
				MenuItemID:   id,
				CurrentStock: st.CurrentStock,
				MinimumStock: st.MinimumStock,
			})
		}
	}
	return out, nil
}

func (s *stubStockRepo) snapshot() map[string]*entity.Stock {
	cp := make(map[string]*entity.Stock, len(s.stocks))
	for k, v := range s.stocks {
		c := *v
		cp[k] = &c
	}
	return cp
}

type stubMenuRepo struct {
	items map[string]*entity.MenuItem
}

var _ repository.MenuItemRepository = (*stubMenuRepo)(nil)

func (s *stubMenuRepo) GetByID(id string) (*entity.MenuItem, error) {
	item, ok := s.items[id]
	if !ok {
		return nil, nil
	}
	cp := *item
	return &cp, nil
}

func (s *stubMenuRepo) SetAvailability(id string, available bool) error {
	item, ok := s.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	item.IsAvailable = available
	return nil
}

func (s *stubMenuRepo) snapshot() map[string]*entity.MenuItem {
	cp := make(map[string]*entity.MenuItem, len(s.items))
	for k, v := range s.items {
		c := *v
		cp[k] = &c
	}
	return cp
}

type stubOrderRepo struct {
	orders map[string]*entity.Order
	items  map[string][]*entity.OrderItem // por order_id
	notes  map[string][]*entity.OrderNote // por order_id
	// dupFailures hace fallar los próximos N Create con ErrDuplicate,
	// simulando colisión del constraint único de order_number.
	dupFailures int
	createCalls int
}

var _ repository.OrderRepository = (*stubOrderRepo)(nil)

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{
		orders: make(map[string]*entity.Order),
		items:  make(map[string][]*entity.OrderItem),
		notes:  make(map[string][]*entity.OrderNote),
	}
}

func (s *stubOrderRepo) Create(o *entity.Order) error {
	s.createCalls++
	if s.dupFailures > 0 {
		s.dupFailures--
		return domain.ErrDuplicate
	}
	for _, existing := range s.orders {
		if existing.OrderNumber == o.OrderNumber {
			return domain.ErrDuplicate
		}
	}
	cp := *o
	s.orders[o.ID] = &cp
	return nil
}

func (s *stubOrderRepo) CreateItem(item *entity.OrderItem) error {
	cp := *item
	s.items[item.OrderID] = append(s.items[item.OrderID], &cp)
	return nil
}

func (s *stubOrderRepo) GetByID(id string) (*entity.Order, error) {
	o, ok := s.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (s *stubOrderRepo) GetItemsByOrderID(orderID string) ([]*entity.OrderItem, error) {
	return s.items[orderID], nil
}

func (s *stubOrderRepo) ListByCustomer(customerID string, limit, offset int) ([]*entity.Order, error) {
	var out []*entity.Order
	for _, o := range s.orders {
		if o.CustomerID == customerID {
			cp := *o
			out = append(out, &cp)
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *stubOrderRepo) UpdateStatus(id string, status order.Status, deliveredAt *time.Time, updatedAt time.Time) error {
	o, ok := s.orders[id]
	if !ok {
		return domain.ErrOrderNotFound
	}
	o.Status = status
	o.UpdatedAt = updatedAt
	// Estampado único: escrituras posteriores no pisan la primera
	if deliveredAt != nil && o.ActualDeliveryTime == nil {
		t := *deliveredAt
		o.ActualDeliveryTime = &t
	}
	return nil
}

func (s *stubOrderRepo) CreateNote(note *entity.OrderNote) error {
	cp := *note
	s.notes[note.OrderID] = append(s.notes[note.OrderID], &cp)
	return nil
}

func (s *stubOrderRepo) GetNotesByOrderID(orderID string) ([]*entity.OrderNote, error) {
	return s.notes[orderID], nil
}

func (s *stubOrderRepo) snapshot() map[string]*entity.Order {
	cp := make(map[string]*entity.Order, len(s.orders))
	for k, v := range s.orders {
		c := *v
		cp[k] = &c
	}
	return cp
}

type stubMovementRepo struct {
	movements []*entity.StockMovement
}

var _ repository.StockMovementRepository = (*stubMovementRepo)(nil)

func (s *stubMovementRepo) Create(mov *entity.StockMovement) error {
	cp := *mov
	s.movements = append(s.movements, &cp)
	return nil
}

func (s *stubMovementRepo) ListByOrderID(orderID string) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range s.movements {
		if m.OrderID == orderID {
			out = append(out, m)
		}
	}
	return out, nil
}

type stubCustomerRepo struct {
	customers map[string]*entity.Customer
}

var _ repository.CustomerRepository = (*stubCustomerRepo)(nil)

func (s *stubCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	return s.customers[id], nil
}

type stubAddressRepo struct {
	addresses map[string]*entity.CustomerAddress
}

var _ repository.AddressRepository = (*stubAddressRepo)(nil)

func (s *stubAddressRepo) GetByID(id string) (*entity.CustomerAddress, error) {
	return s.addresses[id], nil
}

// stubTxRunner pasa los stubs a la función y restaura el estado si falla,
// emulando el rollback de la transacción real.
type stubTxRunner struct {
	orderRepo *stubOrderRepo
	stockRepo *stubStockRepo
	menuRepo  *stubMenuRepo
	movRepo   *stubMovementRepo
}

var _ orders.TxRunner = (*stubTxRunner)(nil)

func (r *stubTxRunner) RunOrder(_ context.Context, fn func(
	repository.OrderRepository,
	repository.StockRepository,
	repository.MenuItemRepository,
	repository.StockMovementRepository,
) error) error {
	ordersSnap := r.orderRepo.snapshot()
	itemsSnap := make(map[string][]*entity.OrderItem, len(r.orderRepo.items))
	for k, v := range r.orderRepo.items {
		itemsSnap[k] = append([]*entity.OrderItem(nil), v...)
	}
	notesSnap := make(map[string][]*entity.OrderNote, len(r.orderRepo.notes))
	for k, v := range r.orderRepo.notes {
		notesSnap[k] = append([]*entity.OrderNote(nil), v...)
	}
	stockSnap := r.stockRepo.snapshot()
	menuSnap := r.menuRepo.snapshot()
	movSnap := append([]*entity.StockMovement(nil), r.movRepo.movements...)

	if err := fn(r.orderRepo, r.stockRepo, r.menuRepo, r.movRepo); err != nil {
		r.orderRepo.orders = ordersSnap
		r.orderRepo.items = itemsSnap
		r.orderRepo.notes = notesSnap
		r.stockRepo.stocks = stockSnap
		r.menuRepo.items = menuSnap
		r.movRepo.movements = movSnap
		return err
	}
	return nil
}

type notifiedEvent struct {
	event   string
	orderID string
}

type lowStockCall struct {
	menuItemID string
	current    int
	minimum    int
}

type stubNotifier struct {
	events   []notifiedEvent
	lowStock []lowStockCall
	failWith error
}

var _ orders.Notifier = (*stubNotifier)(nil)

func (n *stubNotifier) OrderEvent(_ context.Context, event string, _ *entity.Customer, o *entity.Order, _ []*entity.OrderItem) error {
	if n.failWith != nil {
		return n.failWith
	}
	n.events = append(n.events, notifiedEvent{event: event, orderID: o.ID})
	return nil
}

func (n *stubNotifier) LowStock(_ context.Context, menuItemID, _ string, current, minimum int) error {
	if n.failWith != nil {
		return n.failWith
	}
	n.lowStock = append(n.lowStock, lowStockCall{menuItemID: menuItemID, current: current, minimum: minimum})
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

const (
	fixCustomerID = "cust-1"
	fixAddressID  = "addr-1"
)

type fixture struct {
	stockRepo    *stubStockRepo
	menuRepo     *stubMenuRepo
	orderRepo    *stubOrderRepo
	movRepo      *stubMovementRepo
	customerRepo *stubCustomerRepo
	addressRepo  *stubAddressRepo
	txRunner     *stubTxRunner
	notifier     *stubNotifier
}

// newFixture arma un catálogo con dos ítems disponibles:
//
//	item-pizza  $8.50, stock 10, mínimo 3
//	item-soda   $1.50, stock 5,  mínimo 2
func newFixture() *fixture {
	menuRepo := &stubMenuRepo{items: map[string]*entity.MenuItem{
		"item-pizza": {ID: "item-pizza", Name: "Pizza Margarita", Price: decimal.RequireFromString("8.50"), IsAvailable: true},
		"item-soda":  {ID: "item-soda", Name: "Gaseosa", Price: decimal.RequireFromString("1.50"), IsAvailable: true},
	}}
	stockRepo := &stubStockRepo{stocks: map[string]*entity.Stock{
		"item-pizza": {MenuItemID: "item-pizza", CurrentStock: 10, MinimumStock: 3},
		"item-soda":  {MenuItemID: "item-soda", CurrentStock: 5, MinimumStock: 2},
	}}
	orderRepo := newStubOrderRepo()
	movRepo := &stubMovementRepo{}
	return &fixture{
		stockRepo: stockRepo,
		menuRepo:  menuRepo,
		orderRepo: orderRepo,
		movRepo:   movRepo,
		customerRepo: &stubCustomerRepo{customers: map[string]*entity.Customer{
			fixCustomerID: {ID: fixCustomerID, Name: "Ana Pérez", Email: "ana@example.com"},
		}},
		addressRepo: &stubAddressRepo{addresses: map[string]*entity.CustomerAddress{
			fixAddressID: {ID: fixAddressID, CustomerID: fixCustomerID, AddressLine: "Calle 10 #4-20", City: "Bogotá"},
		}},
		txRunner: &stubTxRunner{orderRepo: orderRepo, stockRepo: stockRepo, menuRepo: menuRepo, movRepo: movRepo},
		notifier: &stubNotifier{},
	}
}

// seedOrder inserta un pedido ya creado con sus líneas (para cancel/status).
func (f *fixture) seedOrder(id string, status order.Status, lines map[string]int) *entity.Order {
	o := &entity.Order{
		ID:          id,
		OrderNumber: fmt.Sprintf("PED-TEST-%s", id),
		CustomerID:  fixCustomerID,
		Status:      status,
		OrderType:   entity.OrderTypePickup,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	f.orderRepo.orders[id] = o
	for itemID, qty := range lines {
		f.orderRepo.items[id] = append(f.orderRepo.items[id], &entity.OrderItem{
			ID:         fmt.Sprintf("%s-%s", id, itemID),
			OrderID:    id,
			MenuItemID: itemID,
			Quantity:   qty,
		})
	}
	return o
}
