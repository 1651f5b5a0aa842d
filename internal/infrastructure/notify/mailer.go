package notify

import (
	"context"
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"

	"github.com/jhoicas/Pedidos-api/internal/application/orders"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/pkg/config"
)

var _ orders.Notifier = (*Mailer)(nil)

// Mailer envía correos de ciclo de vida del pedido vía SMTP (gomail).
// Es un colaborador best-effort: el que llama registra el error y sigue.
type Mailer struct {
	cfg config.SMTPConfig
}

// NewMailer construye el adaptador SMTP.
func NewMailer(cfg config.SMTPConfig) *Mailer {
	return &Mailer{cfg: cfg}
}

// asuntos por evento; los eventos de estado usan el estado como nombre.
var subjects = map[string]string{
	orders.EventOrderPlaced:    "Recibimos tu pedido %s",
	"confirmed":                "Tu pedido %s fue confirmado",
	"preparing":                "Tu pedido %s está en preparación",
	"ready":                    "Tu pedido %s está listo",
	"out_for_delivery":         "Tu pedido %s va en camino",
	"delivered":                "Tu pedido %s fue entregado",
	orders.EventOrderCancelled: "Tu pedido %s fue cancelado",
}

// OrderEvent envía el correo del evento al cliente.
func (m *Mailer) OrderEvent(ctx context.Context, event string, customer *entity.Customer, o *entity.Order, items []*entity.OrderItem) error {
	if m.cfg.Host == "" || customer.Email == "" {
		return nil
	}
	subjectFmt, ok := subjects[event]
	if !ok {
		subjectFmt = "Actualización de tu pedido %s"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Hola %s,\n\n", customer.Name)
	fmt.Fprintf(&b, "Pedido %s — estado: %s\n", o.OrderNumber, o.Status)
	if len(items) > 0 {
		b.WriteString("\nDetalle:\n")
		for _, it := range items {
			fmt.Fprintf(&b, "  %d x %s — %s\n", it.Quantity, it.MenuItemID, it.TotalPrice.StringFixed(2))
		}
		fmt.Fprintf(&b, "\nSubtotal: %s\nImpuesto: %s\nDomicilio: %s\nTotal: %s\n",
			o.Subtotal.StringFixed(2), o.Tax.StringFixed(2), o.DeliveryFee.StringFixed(2), o.Total.StringFixed(2))
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", customer.Email)
	msg.SetHeader("Subject", fmt.Sprintf(subjectFmt, o.OrderNumber))
	msg.SetBody("text/plain", b.String())

	d := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.User, m.cfg.Password)
	if err := d.DialAndSend(msg); err != nil {
		return fmt.Errorf("enviar correo %q: %w", event, err)
	}
	return nil
}

// LowStock alerta al correo operativo cuando un ítem queda en o bajo el mínimo.
func (m *Mailer) LowStock(ctx context.Context, menuItemID, name string, current, minimum int) error {
	if m.cfg.Host == "" || m.cfg.OpsTo == "" {
		return nil
	}
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", m.cfg.OpsTo)
	msg.SetHeader("Subject", fmt.Sprintf("Stock bajo: %s (%d/%d)", name, current, minimum))
	msg.SetBody("text/plain", fmt.Sprintf(
		"El ítem %s (%s) quedó con stock %d (mínimo %d). Considerar reposición.\n",
		name, menuItemID, current, minimum,
	))

	d := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.User, m.cfg.Password)
	if err := d.DialAndSend(msg); err != nil {
		return fmt.Errorf("enviar alerta de stock: %w", err)
	}
	return nil
}
