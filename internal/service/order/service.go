package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/ocs/internal/domain"
	"github.com/vladislavdragonenkov/ocs/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/ocs/internal/metrics"
)

// Service описывает публичный контракт workflow создания заказа.
type Service interface {
	// CreateOrder валидирует запрос, сохраняет заказ и списывает остатки.
	// Ошибки валидации различимы через errors.Is по sentinel-ошибкам domain.
	CreateOrder(ctx context.Context, customerID string, requested []domain.RequestedLine) (domain.Order, error)
}

// EventPublisher абстрагирует публикацию событий; Kafka опционален.
type EventPublisher interface {
	PublishEvent(topic string, key string, event interface{}) error
}

// service реализует последовательность шагов создания заказа:
// lookup клиента → batch-резолв каталога → валидация позиций →
// сохранение → списание остатков → событие.
type service struct {
	customers domain.CustomerRepository
	products  domain.ProductRepository
	orders    domain.OrderRepository
	publisher EventPublisher
	logger    *log.Entry
	metrics   *metrics.OrderMetrics
}

// NewService создаёт рабочий экземпляр workflow.
func NewService(
	customers domain.CustomerRepository,
	products domain.ProductRepository,
	orders domain.OrderRepository,
	logger *log.Entry,
) Service {
	if logger == nil {
		logger = log.New().WithField("component", "order-service")
	}
	return &service{
		customers: customers,
		products:  products,
		orders:    orders,
		logger:    logger,
		metrics:   metrics.NewOrderMetrics(),
	}
}

// NewServiceWithPublisher создаёт workflow с публикацией событий order.created.
func NewServiceWithPublisher(
	customers domain.CustomerRepository,
	products domain.ProductRepository,
	orders domain.OrderRepository,
	publisher EventPublisher,
	logger *log.Entry,
) Service {
	if logger == nil {
		logger = log.New().WithField("component", "order-service")
	}
	return &service{
		customers: customers,
		products:  products,
		orders:    orders,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics.NewOrderMetrics(),
	}
}

// NewServiceWithoutMetrics создаёт workflow без метрик (для тестов).
func NewServiceWithoutMetrics(
	customers domain.CustomerRepository,
	products domain.ProductRepository,
	orders domain.OrderRepository,
	logger *log.Entry,
) Service {
	if logger == nil {
		logger = log.New().WithField("component", "order-service")
	}
	return &service{
		customers: customers,
		products:  products,
		orders:    orders,
		logger:    logger,
	}
}

// CreateOrder выполняет один заказ как единую операцию: первая ошибка
// прерывает всё, до сохранения заказа никаких внешних мутаций не происходит.
func (s *service) CreateOrder(_ context.Context, customerID string, requested []domain.RequestedLine) (domain.Order, error) {
	start := time.Now()
	defer func() {
		if s.metrics != nil {
			s.metrics.RecordCreateDuration(time.Since(start))
		}
	}()

	customer, err := s.customers.FindByID(customerID)
	if err != nil {
		if errors.Is(err, domain.ErrCustomerNotFound) {
			return domain.Order{}, s.fail("customer_not_found",
				fmt.Errorf("%w: customer %s", domain.ErrCustomerNotFound, customerID))
		}
		// Инфраструктурные ошибки коллабораторов пробрасываются без переинтерпретации.
		return domain.Order{}, err
	}

	for _, line := range requested {
		if line.Qty <= 0 {
			return domain.Order{}, s.fail("invalid_quantity",
				fmt.Errorf("%w: product %s", domain.ErrQuantityInvalid, line.ProductID))
		}
	}

	snapshots, err := s.resolveProducts(requested)
	if err != nil {
		return domain.Order{}, err
	}

	// Порядок позиций заказа определяется порядком запроса.
	lines := make([]domain.OrderLine, 0, len(requested))
	for _, line := range requested {
		snapshot, ok := snapshots[line.ProductID]
		if !ok {
			return domain.Order{}, s.fail("product_not_found",
				fmt.Errorf("%w: product %s", domain.ErrProductNotFound, line.ProductID))
		}
		if line.Qty > snapshot.Quantity {
			return domain.Order{}, s.fail("insufficient_stock",
				fmt.Errorf("%w: product %s, requested %d, available %d",
					domain.ErrInsufficientStock, line.ProductID, line.Qty, snapshot.Quantity))
		}
		lines = append(lines, domain.OrderLine{
			ProductID:  line.ProductID,
			Qty:        line.Qty,
			PriceMinor: snapshot.PriceMinor,
		})
	}

	if len(lines) == 0 {
		return domain.Order{}, s.fail("empty_order", domain.ErrEmptyOrder)
	}

	order, err := s.orders.Create(customer, lines)
	if err != nil {
		return domain.Order{}, err
	}

	// Списание условное и атомарное, поэтому гонка проверка-списание не
	// приводит к oversell: проигравший получает ErrInsufficientStock здесь.
	// Сам заказ при этом уже сохранён и не откатывается.
	if err := s.products.UpdateQuantity(requested); err != nil {
		s.logger.WithError(err).WithField("order_id", order.ID).
			Error("stock decrement failed after order was persisted")
		if s.metrics != nil {
			s.metrics.RecordOrderFailed(failureReason(err))
		}
		return domain.Order{}, fmt.Errorf("order %s persisted but stock decrement failed: %w", order.ID, err)
	}

	if s.metrics != nil {
		s.metrics.RecordStockDecrement()
		s.metrics.RecordOrderCreated(len(order.Lines))
	}

	s.publishOrderCreated(order)

	s.logger.WithFields(log.Fields{
		"order_id":     order.ID,
		"customer_id":  order.CustomerID,
		"lines":        len(order.Lines),
		"amount_minor": order.AmountMinor,
	}).Info("order created")

	return order, nil
}

// resolveProducts делает один batch-запрос в каталог по уникальным ID.
// Отсутствующие товары не ошибка на этом шаге: их ловит повалидационная
// проверка по каждой позиции.
func (s *service) resolveProducts(requested []domain.RequestedLine) (map[string]domain.Product, error) {
	ids := make([]string, 0, len(requested))
	seen := make(map[string]struct{}, len(requested))
	for _, line := range requested {
		if _, dup := seen[line.ProductID]; dup {
			continue
		}
		seen[line.ProductID] = struct{}{}
		ids = append(ids, line.ProductID)
	}

	products, err := s.products.FindAllByID(ids)
	if err != nil {
		return nil, err
	}

	snapshots := make(map[string]domain.Product, len(products))
	for _, product := range products {
		snapshots[product.ID] = product
	}
	return snapshots, nil
}

// publishOrderCreated отправляет событие best-effort: заказ и списание уже
// зафиксированы, ошибка публикации только логируется.
func (s *service) publishOrderCreated(order domain.Order) {
	if s.publisher == nil {
		return
	}

	event := kafka.NewOrderCreatedEvent(order)
	if err := s.publisher.PublishEvent(kafka.TopicOrderEvents, order.ID, event); err != nil {
		s.logger.WithError(err).WithField("order_id", order.ID).Warn("failed to publish order.created")
		return
	}
	if s.metrics != nil {
		s.metrics.RecordEventPublished()
	}
}

func (s *service) fail(reason string, err error) error {
	if s.metrics != nil {
		s.metrics.RecordOrderFailed(reason)
	}
	s.logger.WithError(err).Warn("order creation rejected")
	return err
}

// failureReason сводит ошибку списания к метке метрики.
func failureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, domain.ErrProductNotFound):
		return "product_not_found"
	default:
		return "stock_decrement"
	}
}
