package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene el stock actual de un ítem del menú.
func (r *StockRepo) Get(menuItemID string) (*entity.Stock, error) {
	query := `
		SELECT menu_item_id, current_stock, minimum_stock, maximum_stock, unit, updated_at
		FROM stock WHERE menu_item_id = $1`
	var s entity.Stock
	err := r.q.QueryRow(context.Background(), query, menuItemID).Scan(
		&s.MenuItemID, &s.CurrentStock, &s.MinimumStock, &s.MaximumStock, &s.Unit, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// Decrement resta qty en un solo UPDATE con guarda de suficiencia: la condición
// current_stock >= qty hace el check y la resta en la misma sentencia, así el
// decremento es linealizable frente a pedidos concurrentes sin depender del
// nivel de aislamiento. Si la guarda rechaza, previous trae el stock observado
// y err es domain.ErrInsufficientStock.
func (r *StockRepo) Decrement(menuItemID string, qty int) (previous, current int, err error) {
	query := `
		UPDATE stock
		SET current_stock = current_stock - $2, updated_at = now()
		WHERE menu_item_id = $1 AND current_stock >= $2
		RETURNING current_stock`
	err = r.q.QueryRow(context.Background(), query, menuItemID, qty).Scan(&current)
	if err == nil {
		return current + qty, current, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, 0, fmt.Errorf("decrement stock: %w", err)
	}
	// La guarda no casó: distinguir fila ausente de stock insuficiente
	var available int
	err = r.q.QueryRow(context.Background(), `SELECT current_stock FROM stock WHERE menu_item_id = $1`, menuItemID).Scan(&available)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, 0, domain.ErrNotFound
		}
		return 0, 0, fmt.Errorf("decrement stock: %w", err)
	}
	return available, available, domain.ErrInsufficientStock
}

// Increment suma qty (restauración por cancelación o reposición manual).
// No aplica maximum_stock como tope: es metadato informativo.
func (r *StockRepo) Increment(menuItemID string, qty int) (previous, current int, err error) {
	query := `
		UPDATE stock
		SET current_stock = current_stock + $2, updated_at = now()
		WHERE menu_item_id = $1
		RETURNING current_stock`
	err = r.q.QueryRow(context.Background(), query, menuItemID, qty).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, 0, domain.ErrNotFound
		}
		return 0, 0, fmt.Errorf("increment stock: %w", err)
	}
	return current - qty, current, nil
}

// ListLowStock lista ítems con current_stock <= minimum_stock, más críticos primero.
func (r *StockRepo) ListLowStock() ([]*entity.LowStockItem, error) {
	query := `
		SELECT s.menu_item_id, m.name, s.current_stock, s.minimum_stock, s.unit
		FROM stock s
		JOIN menu_items m ON m.id = s.menu_item_id
		WHERE s.current_stock <= s.minimum_stock
		ORDER BY s.current_stock ASC, m.name ASC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	defer rows.Close()
	var list []*entity.LowStockItem
	for rows.Next() {
		var it entity.LowStockItem
		if err := rows.Scan(&it.MenuItemID, &it.Name, &it.CurrentStock, &it.MinimumStock, &it.Unit); err != nil {
			return nil, fmt.Errorf("scan low stock: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}
