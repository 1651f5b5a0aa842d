package repository

import "github.com/jhoicas/Pedidos-api/internal/domain/entity"

// MenuItemRepository puerto de lectura del catálogo y escritura del flag de
// disponibilidad. El resto del catálogo (precio, nombre, categorías) lo
// administra otro módulo.
type MenuItemRepository interface {
	// GetByID obtiene un ítem del menú; nil si no existe.
	GetByID(id string) (*entity.MenuItem, error)
	// SetAvailability escribe is_available (auto-deshabilitar en cero stock,
	// re-habilitar al reponer).
	SetAvailability(id string, available bool) error
}
