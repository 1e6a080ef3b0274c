package domain

// CustomerRepository описывает lookup клиентов. Для workflow достаточно
// FindByID; Create нужен сидированию и тестам.
type CustomerRepository interface {
	// FindByID возвращает клиента или ErrCustomerNotFound, если его нет.
	FindByID(id string) (Customer, error)
	// Create сохраняет нового клиента. Возвращает ErrCustomerExists при дубликате ID.
	Create(customer Customer) error
}

// ProductRepository описывает каталог товаров и списание остатков.
type ProductRepository interface {
	// FindAllByID возвращает снапшоты товаров по набору идентификаторов.
	// Неизвестные идентификаторы просто отсутствуют в результате, это не ошибка.
	FindAllByID(ids []string) ([]Product, error)
	// UpdateQuantity списывает остатки по каждой позиции. Списание условное
	// (остаток >= запрошенного) и атомарное для всего набора: либо списываются
	// все позиции, либо ни одной. Возвращает ErrInsufficientStock или
	// ErrProductNotFound по первой неудачной позиции.
	UpdateQuantity(lines []RequestedLine) error
	// Get возвращает товар или ErrProductNotFound.
	Get(id string) (Product, error)
	// Create сохраняет новый товар. Возвращает ErrProductExists при дубликате ID.
	Create(product Product) error
}

// OrderRepository описывает хранилище заказов.
type OrderRepository interface {
	// Create сохраняет заказ из клиента и набора позиций, назначая ID и
	// created timestamp, и возвращает сохранённое представление.
	Create(customer Customer, lines []OrderLine) (Order, error)
	// Get возвращает заказ по идентификатору или ErrOrderNotFound, если его нет.
	Get(id string) (Order, error)
	// ListByCustomer возвращает заказы клиента с опциональным ограничением на количество.
	ListByCustomer(customerID string, limit int) ([]Order, error)
}
