package repository

import "github.com/jhoicas/Pedidos-api/internal/domain/entity"

// CustomerRepository puerto de lectura de clientes (la gestión de cuentas es
// de otro módulo; aquí solo se resuelven datos para validación y notificación).
type CustomerRepository interface {
	// GetByID obtiene un cliente; nil si no existe.
	GetByID(id string) (*entity.Customer, error)
}

// AddressRepository puerto de lectura de direcciones de entrega.
type AddressRepository interface {
	// GetByID obtiene una dirección; nil si no existe.
	GetByID(id string) (*entity.CustomerAddress, error)
}
