package domain

import "time"

// RequestedLine — одна позиция входящего запроса на создание заказа:
// товар и желаемое количество. Цены здесь ещё нет, её фиксирует каталог.
type RequestedLine struct {
	ProductID string
	Qty       int32
}

// OrderLine представляет одну позицию заказа с ценой, зафиксированной
// на момент резолва каталога.
type OrderLine struct {
	// ID позиции нужен для однозначной идентификации и аудита.
	ID        string
	ProductID string
	Qty       int32
	// PriceMinor — цена за единицу в минимальных денежных единицах.
	PriceMinor int64
	CreatedAt  time.Time
}

// Order агрегирует заказ клиента и его позиции. Создаётся workflow,
// идентификатор и timestamp назначает хранилище при сохранении.
type Order struct {
	ID          string
	CustomerID  string
	AmountMinor int64
	Lines       []OrderLine
	CreatedAt   time.Time
}

// LinesTotal возвращает сумму позиций: qty * price.
func LinesTotal(lines []OrderLine) int64 {
	var total int64
	for _, line := range lines {
		total += int64(line.Qty) * line.PriceMinor
	}
	return total
}

// ValidateInvariants проверяет базовые инварианты заказа и возвращает список замечаний.
func (o *Order) ValidateInvariants() []error {
	var errs []error

	if o.CustomerID == "" {
		errs = append(errs, ErrCustomerNotFound)
	}
	if len(o.Lines) == 0 {
		errs = append(errs, ErrEmptyOrder)
	}
	for _, line := range o.Lines {
		if line.Qty <= 0 {
			errs = append(errs, ErrQuantityInvalid)
		}
	}
	if o.AmountMinor != LinesTotal(o.Lines) {
		errs = append(errs, ErrAmountMismatch)
	}

	return errs
}
