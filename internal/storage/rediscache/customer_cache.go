package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/ocs/internal/domain"
)

const (
	defaultTTL       = 5 * time.Minute
	defaultOpTimeout = 500 * time.Millisecond
)

// customerCache — read-through кэш поверх CustomerRepository. Ошибки Redis
// деградируют до обращения к внутреннему репозиторию и никогда не
// становятся ошибками вызывающей стороны.
type customerCache struct {
	client *redis.Client
	inner  domain.CustomerRepository
	ttl    time.Duration
	logger *log.Entry
}

// NewCustomerCache оборачивает репозиторий клиентов кэшем в Redis.
// ttl <= 0 заменяется значением по умолчанию.
func NewCustomerCache(client *redis.Client, inner domain.CustomerRepository, ttl time.Duration, logger *log.Entry) domain.CustomerRepository {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if logger == nil {
		logger = log.WithField("component", "customer-cache")
	}
	return &customerCache{
		client: client,
		inner:  inner,
		ttl:    ttl,
		logger: logger,
	}
}

// NewClient создаёт Redis-клиент по адресу в конфигурации.
func NewClient(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        addr,
		DialTimeout: defaultOpTimeout,
		ReadTimeout: defaultOpTimeout,
	})
}

func cacheKey(id string) string {
	return fmt.Sprintf("ocs:customer:%s", id)
}

// FindByID сначала смотрит в Redis, при промахе или ошибке идёт во
// внутренний репозиторий и лениво наполняет кэш.
func (c *customerCache) FindByID(id string) (domain.Customer, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultOpTimeout)
	defer cancel()

	raw, err := c.client.Get(ctx, cacheKey(id)).Result()
	if err == nil && raw != "" {
		var customer domain.Customer
		if err := json.Unmarshal([]byte(raw), &customer); err == nil {
			return customer, nil
		}
		c.logger.WithField("customer_id", id).Warn("corrupted cache entry, falling back to repository")
	} else if err != nil && !errors.Is(err, redis.Nil) {
		c.logger.WithError(err).Debug("redis get failed, falling back to repository")
	}

	customer, err := c.inner.FindByID(id)
	if err != nil {
		return domain.Customer{}, err
	}

	c.store(customer)
	return customer, nil
}

// Create делегирует внутреннему репозиторию и сбрасывает запись в кэше.
func (c *customerCache) Create(customer domain.Customer) error {
	if err := c.inner.Create(customer); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultOpTimeout)
	defer cancel()
	if err := c.client.Del(ctx, cacheKey(customer.ID)).Err(); err != nil {
		c.logger.WithError(err).Debug("redis del failed")
	}
	return nil
}

func (c *customerCache) store(customer domain.Customer) {
	payload, err := json.Marshal(customer)
	if err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultOpTimeout)
	defer cancel()
	if err := c.client.Set(ctx, cacheKey(customer.ID), payload, c.ttl).Err(); err != nil {
		c.logger.WithError(err).Debug("redis set failed")
	}
}

var _ domain.CustomerRepository = (*customerCache)(nil)
