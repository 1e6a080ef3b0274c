package memory

import (
	"fmt"
	"sync"
	"time"

	"github.com/vladislavdragonenkov/ocs/internal/domain"
)

// productRepositoryInMemory — in-memory реализация ProductRepository.
type productRepositoryInMemory struct {
	mu    sync.RWMutex
	items map[string]domain.Product
}

// NewProductRepository возвращает in-memory каталог для локальной разработки и тестов.
func NewProductRepository() domain.ProductRepository {
	return &productRepositoryInMemory{
		items: make(map[string]domain.Product),
	}
}

// FindAllByID возвращает снапшоты найденных товаров; неизвестные ID пропускаются.
func (r *productRepositoryInMemory) FindAllByID(ids []string) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]domain.Product, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if product, ok := r.items[id]; ok {
			products = append(products, product)
		}
	}
	return products, nil
}

// UpdateQuantity атомарно списывает остатки по всем позициям: сначала
// проверяется весь набор, затем применяется. Частичных списаний не бывает.
func (r *productRepositoryInMemory) UpdateQuantity(lines []domain.RequestedLine) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Суммируем списания по товару: один товар может встречаться в нескольких позициях.
	totals := make(map[string]int32, len(lines))
	for _, line := range lines {
		if line.Qty <= 0 {
			return fmt.Errorf("%w: product %s", domain.ErrQuantityInvalid, line.ProductID)
		}
		totals[line.ProductID] += line.Qty
	}

	for _, line := range lines {
		product, ok := r.items[line.ProductID]
		if !ok {
			return fmt.Errorf("%w: product %s", domain.ErrProductNotFound, line.ProductID)
		}
		if totals[line.ProductID] > product.Quantity {
			return fmt.Errorf("%w: product %s", domain.ErrInsufficientStock, line.ProductID)
		}
	}

	now := time.Now().UTC()
	for id, qty := range totals {
		product := r.items[id]
		product.Quantity -= qty
		product.UpdatedAt = now
		r.items[id] = product
	}
	return nil
}

// Get возвращает товар или ErrProductNotFound.
func (r *productRepositoryInMemory) Get(id string) (domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.items[id]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return product, nil
}

// Create сохраняет новый товар, если ID ещё не занят.
func (r *productRepositoryInMemory) Create(product domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[product.ID]; exists {
		return domain.ErrProductExists
	}
	r.items[product.ID] = product
	return nil
}

var _ domain.ProductRepository = (*productRepositoryInMemory)(nil)
