package domain

import "time"

// Customer — клиент, от имени которого создаётся заказ.
// Управляется внешним коллаборатором; workflow держит только read-ссылку.
type Customer struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
