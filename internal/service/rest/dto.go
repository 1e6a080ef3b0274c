package rest

import (
	"time"

	"github.com/vladislavdragonenkov/ocs/internal/domain"
)

// CreateOrderRequest — входной JSON для POST /orders.
type CreateOrderRequest struct {
	CustomerID string             `json:"customer_id"`
	Lines      []OrderLineRequest `json:"lines"`
}

// OrderLineRequest — запрошенная позиция: товар и количество.
// Цена не принимается от клиента, её назначает каталог.
type OrderLineRequest struct {
	ProductID string `json:"product_id"`
	Qty       int32  `json:"qty"`
}

// OrderResponse — представление сохранённого заказа.
type OrderResponse struct {
	ID          string              `json:"id"`
	CustomerID  string              `json:"customer_id"`
	AmountMinor int64               `json:"amount_minor"`
	Lines       []OrderLineResponse `json:"lines"`
	CreatedAt   time.Time           `json:"created_at"`
}

// OrderLineResponse — позиция заказа с зафиксированной ценой.
type OrderLineResponse struct {
	ID         string `json:"id"`
	ProductID  string `json:"product_id"`
	Qty        int32  `json:"qty"`
	PriceMinor int64  `json:"price_minor"`
}

// ErrorResponse — унифицированный формат ошибки API.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func toRequestedLines(lines []OrderLineRequest) []domain.RequestedLine {
	out := make([]domain.RequestedLine, 0, len(lines))
	for _, line := range lines {
		out = append(out, domain.RequestedLine{
			ProductID: line.ProductID,
			Qty:       line.Qty,
		})
	}
	return out
}

func toOrderResponse(order domain.Order) OrderResponse {
	lines := make([]OrderLineResponse, 0, len(order.Lines))
	for _, line := range order.Lines {
		lines = append(lines, OrderLineResponse{
			ID:         line.ID,
			ProductID:  line.ProductID,
			Qty:        line.Qty,
			PriceMinor: line.PriceMinor,
		})
	}
	return OrderResponse{
		ID:          order.ID,
		CustomerID:  order.CustomerID,
		AmountMinor: order.AmountMinor,
		Lines:       lines,
		CreatedAt:   order.CreatedAt,
	}
}
