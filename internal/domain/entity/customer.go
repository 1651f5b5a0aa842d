package entity

import "time"

// Customer representa un cliente (solo lectura en este servicio; la gestión de
// cuentas vive en otro módulo). Email se usa para notificaciones de pedido.
type Customer struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	CreatedAt time.Time
}

// CustomerAddress dirección de entrega de un cliente. Solo se consulta para
// validar pertenencia en pedidos de tipo delivery.
type CustomerAddress struct {
	ID          string
	CustomerID  string
	Label       string
	AddressLine string
	City        string
	CreatedAt   time.Time
}
