package app

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/ocs/internal/domain"
	"github.com/vladislavdragonenkov/ocs/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/ocs/internal/storage/memory"
	"github.com/vladislavdragonenkov/ocs/internal/storage/postgres"
	"github.com/vladislavdragonenkov/ocs/internal/storage/rediscache"
)

// Dependencies содержит инфраструктурные зависимости приложения.
type Dependencies struct {
	Customers domain.CustomerRepository
	Products  domain.ProductRepository
	Orders    domain.OrderRepository

	Store    *postgres.Store
	Redis    *redis.Client
	Producer *kafka.Producer

	Logger *log.Entry
}

// NewDependencies собирает хранилище, кэш и producer по конфигурации.
// Postgres и Redis опциональны: без DSN сервис работает in-memory,
// без Redis клиенты читаются напрямую из хранилища.
func NewDependencies(ctx context.Context, cfg Config, logger *log.Entry) (*Dependencies, error) {
	if logger == nil {
		logger = log.WithField("component", "app")
	}

	deps := &Dependencies{Logger: logger}

	if cfg.PostgresDSN != "" {
		store, err := postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		if err := store.EnsureSchema(ctx); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("ensure schema: %w", err)
		}
		deps.Store = store
		deps.Customers = postgres.NewCustomerRepository(store)
		deps.Products = postgres.NewProductRepository(store)
		deps.Orders = postgres.NewOrderRepository(store)
		logger.Info("using postgres storage")
	} else {
		deps.Customers = memory.NewCustomerRepository()
		deps.Products = memory.NewProductRepository()
		deps.Orders = memory.NewOrderRepository()
		logger.Info("using in-memory storage")
	}

	if cfg.RedisAddr != "" {
		deps.Redis = rediscache.NewClient(cfg.RedisAddr)
		deps.Customers = rediscache.NewCustomerCache(deps.Redis, deps.Customers, cfg.CustomerCacheTTL, nil)
		logger.WithField("addr", cfg.RedisAddr).Info("customer cache enabled")
	}

	// Kafka best-effort: без брокера сервис продолжает работать,
	// просто не публикует события.
	if len(cfg.KafkaBrokers) > 0 {
		producer, err := kafka.NewProducer(cfg.KafkaBrokers)
		if err != nil {
			logger.WithError(err).Warn("failed to create kafka producer, continuing without kafka")
		} else {
			deps.Producer = producer
			logger.WithField("brokers", cfg.KafkaBrokers).Info("kafka producer initialized")
		}
	}

	return deps, nil
}

// Close освобождает все внешние ресурсы.
func (d *Dependencies) Close() {
	if d.Producer != nil {
		if err := d.Producer.Close(); err != nil {
			d.Logger.WithError(err).Warn("failed to close kafka producer")
		}
	}
	if d.Redis != nil {
		if err := d.Redis.Close(); err != nil {
			d.Logger.WithError(err).Warn("failed to close redis client")
		}
	}
	if d.Store != nil {
		if err := d.Store.Close(); err != nil {
			d.Logger.WithError(err).Warn("failed to close postgres store")
		}
	}
}
