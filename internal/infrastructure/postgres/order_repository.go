package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/order"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación de OrderRepository sobre PostgreSQL (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create persiste la cabecera del pedido. El constraint único de order_number
// se reporta como domain.ErrDuplicate para que el caso de uso regenere el número.
func (r *OrderRepo) Create(o *entity.Order) error {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	query := `
		INSERT INTO orders (id, order_number, customer_id, status, order_type, delivery_address_id, subtotal, tax, delivery_fee, total, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		o.ID, o.OrderNumber, o.CustomerID, string(o.Status), o.OrderType,
		nullIfEmpty(o.DeliveryAddressID), o.Subtotal, o.Tax, o.DeliveryFee, o.Total,
		o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// CreateItem persiste una línea del pedido.
func (r *OrderRepo) CreateItem(item *entity.OrderItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	query := `
		INSERT INTO order_items (id, order_id, menu_item_id, quantity, unit_price, total_price, special_instructions)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.OrderID, item.MenuItemID, item.Quantity, item.UnitPrice,
		item.TotalPrice, nullIfEmpty(item.SpecialInstructions),
	)
	if err != nil {
		return fmt.Errorf("insert order item: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera de un pedido por ID.
func (r *OrderRepo) GetByID(id string) (*entity.Order, error) {
	query := `
		SELECT id, order_number, customer_id, status, order_type,
		       COALESCE(delivery_address_id, ''), subtotal, tax, delivery_fee, total,
		       actual_delivery_time, created_at, updated_at
		FROM orders WHERE id = $1`
	var o entity.Order
	var status string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&o.ID, &o.OrderNumber, &o.CustomerID, &status, &o.OrderType,
		&o.DeliveryAddressID, &o.Subtotal, &o.Tax, &o.DeliveryFee, &o.Total,
		&o.ActualDeliveryTime, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	o.Status = order.Status(status)
	return &o, nil
}

// GetItemsByOrderID obtiene todas las líneas de un pedido.
func (r *OrderRepo) GetItemsByOrderID(orderID string) ([]*entity.OrderItem, error) {
	query := `
		SELECT id, order_id, menu_item_id, quantity, unit_price, total_price, COALESCE(special_instructions, '')
		FROM order_items WHERE order_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()
	var list []*entity.OrderItem
	for rows.Next() {
		var it entity.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.MenuItemID, &it.Quantity, &it.UnitPrice, &it.TotalPrice, &it.SpecialInstructions); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// ListByCustomer lista pedidos de un cliente, más recientes primero.
func (r *OrderRepo) ListByCustomer(customerID string, limit, offset int) ([]*entity.Order, error) {
	query := `
		SELECT id, order_number, customer_id, status, order_type,
		       COALESCE(delivery_address_id, ''), subtotal, tax, delivery_fee, total,
		       actual_delivery_time, created_at, updated_at
		FROM orders WHERE customer_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, customerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.Order
	for rows.Next() {
		var o entity.Order
		var status string
		if err := rows.Scan(
			&o.ID, &o.OrderNumber, &o.CustomerID, &status, &o.OrderType,
			&o.DeliveryAddressID, &o.Subtotal, &o.Tax, &o.DeliveryFee, &o.Total,
			&o.ActualDeliveryTime, &o.CreatedAt, &o.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		o.Status = order.Status(status)
		list = append(list, &o)
	}
	return list, rows.Err()
}

// UpdateStatus escribe status y updated_at. actual_delivery_time usa COALESCE
// para estamparse una sola vez: una vez escrito, envíos posteriores no lo pisan.
func (r *OrderRepo) UpdateStatus(id string, status order.Status, deliveredAt *time.Time, updatedAt time.Time) error {
	query := `
		UPDATE orders
		SET status = $2,
		    actual_delivery_time = COALESCE(actual_delivery_time, $3),
		    updated_at = $4
		WHERE id = $1`
	ct, err := r.q.Exec(context.Background(), query, id, string(status), deliveredAt, updatedAt)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

// CreateNote agrega una anotación append-only al pedido.
func (r *OrderRepo) CreateNote(note *entity.OrderNote) error {
	if note.ID == "" {
		note.ID = uuid.New().String()
	}
	query := `
		INSERT INTO order_notes (id, order_id, actor_id, actor_role, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		note.ID, note.OrderID, note.ActorID, note.ActorRole, note.Note, note.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order note: %w", err)
	}
	return nil
}

// GetNotesByOrderID obtiene las anotaciones de un pedido en orden de creación.
func (r *OrderRepo) GetNotesByOrderID(orderID string) ([]*entity.OrderNote, error) {
	query := `
		SELECT id, order_id, actor_id, actor_role, note, created_at
		FROM order_notes WHERE order_id = $1 ORDER BY created_at ASC`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order notes: %w", err)
	}
	defer rows.Close()
	var list []*entity.OrderNote
	for rows.Next() {
		var n entity.OrderNote
		if err := rows.Scan(&n.ID, &n.OrderID, &n.ActorID, &n.ActorRole, &n.Note, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan order note: %w", err)
		}
		list = append(list, &n)
	}
	return list, rows.Err()
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
