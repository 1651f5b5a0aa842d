package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

var _ repository.MenuItemRepository = (*MenuItemRepo)(nil)

// MenuItemRepo implementación de MenuItemRepository sobre PostgreSQL (usable con pool o tx).
type MenuItemRepo struct {
	q Querier
}

// NewMenuItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMenuItemRepository(q Querier) *MenuItemRepo {
	return &MenuItemRepo{q: q}
}

// GetByID obtiene un ítem del menú por ID.
func (r *MenuItemRepo) GetByID(id string) (*entity.MenuItem, error) {
	query := `
		SELECT id, category_id, name, description, price, is_available, created_at, updated_at
		FROM menu_items WHERE id = $1`
	var m entity.MenuItem
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&m.ID, &m.CategoryID, &m.Name, &m.Description, &m.Price, &m.IsAvailable,
		&m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get menu item: %w", err)
	}
	return &m, nil
}

// SetAvailability escribe el flag is_available.
func (r *MenuItemRepo) SetAvailability(id string, available bool) error {
	query := `UPDATE menu_items SET is_available = $2, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, available)
	if err != nil {
		return fmt.Errorf("set menu item availability: %w", err)
	}
	return nil
}
