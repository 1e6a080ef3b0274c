package kafka

import (
	"time"

	"github.com/vladislavdragonenkov/ocs/internal/domain"
)

// EventType определяет тип события заказа.
type EventType string

const (
	// EventTypeOrderCreated публикуется после успешного сохранения заказа
	// и списания остатков.
	EventTypeOrderCreated EventType = "order.created"
)

// TopicOrderEvents — topic событий заказов.
const TopicOrderEvents = "ocs.order.events"

// OrderLinePayload — позиция заказа в составе события.
type OrderLinePayload struct {
	ProductID  string `json:"product_id"`
	Qty        int32  `json:"qty"`
	PriceMinor int64  `json:"price_minor"`
}

// OrderCreatedEvent — событие о созданном заказе.
type OrderCreatedEvent struct {
	EventType   EventType          `json:"event_type"`
	OrderID     string             `json:"order_id"`
	CustomerID  string             `json:"customer_id"`
	AmountMinor int64              `json:"amount_minor"`
	Lines       []OrderLinePayload `json:"lines"`
	CreatedAt   time.Time          `json:"created_at"`
	Timestamp   time.Time          `json:"timestamp"`
}

// NewOrderCreatedEvent собирает событие из сохранённого заказа.
func NewOrderCreatedEvent(order domain.Order) *OrderCreatedEvent {
	lines := make([]OrderLinePayload, 0, len(order.Lines))
	for _, line := range order.Lines {
		lines = append(lines, OrderLinePayload{
			ProductID:  line.ProductID,
			Qty:        line.Qty,
			PriceMinor: line.PriceMinor,
		})
	}

	return &OrderCreatedEvent{
		EventType:   EventTypeOrderCreated,
		OrderID:     order.ID,
		CustomerID:  order.CustomerID,
		AmountMinor: order.AmountMinor,
		Lines:       lines,
		CreatedAt:   order.CreatedAt,
		Timestamp:   time.Now(),
	}
}
