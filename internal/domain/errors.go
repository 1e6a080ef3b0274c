package domain

import "errors"

var (
	// ErrCustomerNotFound возвращается, если клиент с указанным ID не существует.
	ErrCustomerNotFound = errors.New("customer not found")
	// ErrProductNotFound возвращается, если запрошенный товар отсутствует в каталоге.
	ErrProductNotFound = errors.New("product not found")
	// ErrInsufficientStock возвращается, если запрошенное количество превышает остаток.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrEmptyOrder возвращается, если после валидации не осталось ни одной позиции.
	ErrEmptyOrder = errors.New("order must contain at least one line")
	// ErrQuantityInvalid возвращается при запрошенном количестве <= 0.
	ErrQuantityInvalid = errors.New("requested quantity must be greater than zero")
	// ErrOrderNotFound возвращается, если заказ не найден в хранилище.
	ErrOrderNotFound = errors.New("order not found")
	// ErrAmountMismatch — несоответствие суммы заказа и сумм его позиций.
	ErrAmountMismatch = errors.New("order amount does not match lines sum")
	// ErrCustomerExists возвращается при попытке повторно создать клиента с тем же ID.
	ErrCustomerExists = errors.New("customer already exists")
	// ErrProductExists возвращается при попытке повторно создать товар с тем же ID.
	ErrProductExists = errors.New("product already exists")
)

// IsValidationError проверяет, относится ли ошибка к ошибкам валидации запроса,
// а не к инфраструктурным сбоям коллабораторов.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrCustomerNotFound) ||
		errors.Is(err, ErrProductNotFound) ||
		errors.Is(err, ErrInsufficientStock) ||
		errors.Is(err, ErrEmptyOrder) ||
		errors.Is(err, ErrQuantityInvalid)
}
