package orders

import (
	"fmt"

	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/domain"
)

// InsufficientStockError error agregado de stock: reúne TODAS las líneas con
// stock insuficiente para que el cliente pueda ajustar su carrito completo de
// una vez. Envuelve domain.ErrInsufficientStock (errors.Is compatible).
type InsufficientStockError struct {
	Lines []dto.InsufficientStockLine
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente en %d línea(s)", len(e.Lines))
}

// Unwrap permite errors.Is(err, domain.ErrInsufficientStock).
func (e *InsufficientStockError) Unwrap() error {
	return domain.ErrInsufficientStock
}
