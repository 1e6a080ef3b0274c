package kafka_test

import (
	"testing"
	"time"

	"github.com/vladislavdragonenkov/ocs/internal/domain"
	"github.com/vladislavdragonenkov/ocs/internal/messaging/kafka"
)

func TestNewOrderCreatedEvent(t *testing.T) {
	now := time.Now().UTC()
	order := domain.Order{
		ID:          "order-1",
		CustomerID:  "c1",
		AmountMinor: 3250,
		Lines: []domain.OrderLine{
			{ID: "l1", ProductID: "p1", Qty: 3, PriceMinor: 1000, CreatedAt: now},
			{ID: "l2", ProductID: "p2", Qty: 1, PriceMinor: 250, CreatedAt: now},
		},
		CreatedAt: now,
	}

	event := kafka.NewOrderCreatedEvent(order)

	if event.EventType != kafka.EventTypeOrderCreated {
		t.Fatalf("unexpected event type: %s", event.EventType)
	}
	if event.OrderID != "order-1" || event.CustomerID != "c1" {
		t.Fatalf("unexpected identifiers: %+v", event)
	}
	if event.AmountMinor != 3250 {
		t.Fatalf("expected amount 3250, got %d", event.AmountMinor)
	}
	if len(event.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(event.Lines))
	}
	if event.Lines[0].ProductID != "p1" || event.Lines[0].Qty != 3 {
		t.Fatalf("unexpected first line: %+v", event.Lines[0])
	}
	if event.Timestamp.IsZero() {
		t.Fatal("expected event timestamp to be set")
	}
}
