package order

import (
	"fmt"
	"strings"
)

// Status estado del ciclo de vida de un pedido (enum cerrado).
type Status string

const (
	StatusPending        Status = "pending"
	StatusConfirmed      Status = "confirmed"
	StatusPreparing      Status = "preparing"
	StatusReady          Status = "ready"
	StatusOutForDelivery Status = "out_for_delivery"
	StatusDelivered      Status = "delivered"
	StatusCancelled      Status = "cancelled"
)

// Roles de actor que pueden mutar un pedido.
const (
	RoleCustomer = "customer"
	RoleStaff    = "staff"
	RoleAdmin    = "admin"
)

// AllStatuses conjunto legal de estados, en orden de avance.
var AllStatuses = []Status{
	StatusPending, StatusConfirmed, StatusPreparing, StatusReady,
	StatusOutForDelivery, StatusDelivered, StatusCancelled,
}

// validNext tabla de transiciones hacia adelante (cancelación aparte, ver CanCancel).
var validNext = map[Status]map[Status]bool{
	StatusPending:        {StatusConfirmed: true},
	StatusConfirmed:      {StatusPreparing: true},
	StatusPreparing:      {StatusReady: true},
	StatusReady:          {StatusOutForDelivery: true, StatusDelivered: true},
	StatusOutForDelivery: {StatusDelivered: true},
	StatusDelivered:      {},
	StatusCancelled:      {},
}

// ErrInvalidStatus error al parsear un estado desconocido; incluye el conjunto legal.
type ErrInvalidStatus struct {
	Value string
}

func (e *ErrInvalidStatus) Error() string {
	legal := make([]string, 0, len(AllStatuses))
	for _, s := range AllStatuses {
		legal = append(legal, string(s))
	}
	return fmt.Sprintf("estado %q no reconocido; estados válidos: %s", e.Value, strings.Join(legal, ", "))
}

// ErrInvalidTransition error de transición fuera de la tabla o rol no permitido.
type ErrInvalidTransition struct {
	From Status
	To   Status
	Role string
}

func (e *ErrInvalidTransition) Error() string {
	return fmt.Sprintf("transición %s -> %s no permitida para rol %s", e.From, e.To, e.Role)
}

// ParseStatus valida un estado recibido como string.
func ParseStatus(s string) (Status, error) {
	for _, st := range AllStatuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", &ErrInvalidStatus{Value: s}
}

// IsTerminal indica si el estado no admite más transiciones.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransition indica si el avance from -> to está en la tabla.
func CanTransition(from, to Status) bool {
	return validNext[from][to]
}

// ValidateTransition aplica la tabla de transiciones y las reglas por rol.
// Solo staff/admin avanzan el pedido; la cancelación va por CanCancel (flujo aparte,
// porque debe restaurar stock).
func ValidateTransition(from, to Status, role string) error {
	if to == StatusCancelled {
		return &ErrInvalidTransition{From: from, To: to, Role: role}
	}
	if role != RoleStaff && role != RoleAdmin {
		return &ErrInvalidTransition{From: from, To: to, Role: role}
	}
	if !CanTransition(from, to) {
		return &ErrInvalidTransition{From: from, To: to, Role: role}
	}
	return nil
}

// CanCancel indica si un actor con el rol dado puede cancelar un pedido en el
// estado actual. Cliente: solo pending/confirmed y solo su propio pedido (la
// propiedad la verifica el caso de uso). Admin: cualquier estado no terminal.
func CanCancel(current Status, role string) bool {
	switch role {
	case RoleCustomer:
		return current == StatusPending || current == StatusConfirmed
	case RoleAdmin:
		return !current.IsTerminal()
	default:
		return false
	}
}
