package domain

import "time"

// Product — запись каталога товаров. Значение, возвращённое FindAllByID,
// является снапшотом цены и остатка на момент чтения и не гарантирует
// свежесть к моменту списания.
type Product struct {
	ID string
	// Name — человекочитаемое название товара.
	Name string
	// PriceMinor — цена за единицу в минимальных денежных единицах.
	PriceMinor int64
	// Quantity — доступный остаток на складе.
	Quantity  int32
	UpdatedAt time.Time
}
