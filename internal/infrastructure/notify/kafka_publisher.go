package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/jhoicas/Pedidos-api/internal/application/orders"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
)

var _ orders.Notifier = (*KafkaPublisher)(nil)

// Tipos de evento publicados al tópico de pedidos.
const (
	eventTypeOrder    = "order"
	eventTypeLowStock = "stock_low"
)

// envelope sobre estándar de los eventos publicados.
type envelope struct {
	EventID    string          `json:"event_id"`
	EventType  string          `json:"event_type"` // order | stock_low
	Event      string          `json:"event"`      // placed, confirmed, ..., cancelled
	OccurredAt time.Time       `json:"occurred_at"`
	Producer   string          `json:"producer"`
	Payload    json.RawMessage `json:"payload"`
}

type orderPayload struct {
	OrderID     string          `json:"order_id"`
	OrderNumber string          `json:"order_number"`
	CustomerID  string          `json:"customer_id"`
	Status      string          `json:"status"`
	Total       string          `json:"total"`
	Items       []orderLineItem `json:"items,omitempty"`
}

type orderLineItem struct {
	MenuItemID string `json:"menu_item_id"`
	Quantity   int    `json:"quantity"`
}

type lowStockPayload struct {
	MenuItemID   string `json:"menu_item_id"`
	Name         string `json:"name"`
	CurrentStock int    `json:"current_stock"`
	MinimumStock int    `json:"minimum_stock"`
}

// KafkaPublisher publica eventos de ciclo de vida de pedidos para el fan-out
// de notificaciones (apps móviles, dashboards de cocina). Best-effort.
type KafkaPublisher struct {
	w        *kafka.Writer
	producer string
}

// NewKafkaPublisher construye el publicador.
func NewKafkaPublisher(brokers []string, topic, producer string) *KafkaPublisher {
	return &KafkaPublisher{
		w: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
		},
		producer: producer,
	}
}

// Close cierra el writer subyacente.
func (p *KafkaPublisher) Close() error { return p.w.Close() }

// OrderEvent publica el evento del pedido, con key = order id para mantener
// orden por pedido en la partición.
func (p *KafkaPublisher) OrderEvent(ctx context.Context, event string, customer *entity.Customer, o *entity.Order, items []*entity.OrderItem) error {
	payload := orderPayload{
		OrderID:     o.ID,
		OrderNumber: o.OrderNumber,
		CustomerID:  o.CustomerID,
		Status:      string(o.Status),
		Total:       o.Total.StringFixed(2),
	}
	for _, it := range items {
		payload.Items = append(payload.Items, orderLineItem{MenuItemID: it.MenuItemID, Quantity: it.Quantity})
	}
	return p.publish(ctx, eventTypeOrder, event, o.ID, payload)
}

// LowStock publica la alerta de stock bajo, con key = menu item id.
func (p *KafkaPublisher) LowStock(ctx context.Context, menuItemID, name string, current, minimum int) error {
	return p.publish(ctx, eventTypeLowStock, eventTypeLowStock, menuItemID, lowStockPayload{
		MenuItemID:   menuItemID,
		Name:         name,
		CurrentStock: current,
		MinimumStock: minimum,
	})
}

func (p *KafkaPublisher) publish(ctx context.Context, eventType, event, key string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	env := envelope{
		EventID:    uuid.New().String(),
		EventType:  eventType,
		Event:      event,
		OccurredAt: time.Now(),
		Producer:   p.producer,
		Payload:    raw,
	}
	body, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal envelope: %w", err)
	}
	if err := p.w.WriteMessages(ctx, kafka.Message{Key: []byte(key), Value: body}); err != nil {
		return fmt.Errorf("publicar evento %s/%s: %w", eventType, event, err)
	}
	return nil
}
