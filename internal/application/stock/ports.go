package stock

import (
	"context"

	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios de stock atados a esa tx (reposición: incremento + movimiento +
// re-habilitación del ítem).
type TxRunner interface {
	Run(ctx context.Context, fn func(
		stockRepo repository.StockRepository,
		menuRepo repository.MenuItemRepository,
		movRepo repository.StockMovementRepository,
	) error) error
}
