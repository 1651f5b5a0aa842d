package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MenuItem representa un ítem vendible del menú. Price es el precio vigente;
// los pedidos guardan su propio snapshot de precio en OrderItem.
// IsAvailable la escriben los flujos de pedido cuando el stock cruza cero o se repone.
type MenuItem struct {
	ID          string
	CategoryID  string
	Name        string
	Description string
	Price       decimal.Decimal
	IsAvailable bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
