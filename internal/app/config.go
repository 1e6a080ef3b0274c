package app

import (
	"os"
	"strings"
	"time"
)

// Config описывает настройки запуска сервиса заказов.
type Config struct {
	// HTTPAddr — адрес основного API.
	HTTPAddr string
	// MetricsAddr — адрес метрик и health checks.
	MetricsAddr string
	// PostgresDSN включает postgres-хранилище; пустое значение — in-memory.
	PostgresDSN string
	// RedisAddr включает кэш клиентов; пустое значение — без кэша.
	RedisAddr string
	// KafkaBrokers включает публикацию событий; пустой список — без Kafka.
	KafkaBrokers []string
	// CustomerCacheTTL — время жизни записи клиента в кэше.
	CustomerCacheTTL time.Duration
}

// DefaultConfig возвращает базовую конфигурацию: in-memory хранилище,
// без Kafka и Redis.
func DefaultConfig() Config {
	return Config{
		HTTPAddr:         ":8080",
		MetricsAddr:      ":9090",
		CustomerCacheTTL: 5 * time.Minute,
	}
}

// LoadConfig читает конфигурацию из переменных окружения с префиксом OCS_.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("OCS_HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}
	if v := os.Getenv("OCS_METRICS_ADDR"); v != "" {
		cfg.MetricsAddr = v
	}
	if v := strings.TrimSpace(os.Getenv("OCS_POSTGRES_DSN")); v != "" {
		cfg.PostgresDSN = v
	}
	if v := strings.TrimSpace(os.Getenv("OCS_REDIS_ADDR")); v != "" {
		cfg.RedisAddr = v
	}
	if v := strings.TrimSpace(os.Getenv("OCS_KAFKA_BROKERS")); v != "" {
		cfg.KafkaBrokers = splitBrokers(v)
	}
	if v := os.Getenv("OCS_CUSTOMER_CACHE_TTL"); v != "" {
		if ttl, err := time.ParseDuration(v); err == nil && ttl > 0 {
			cfg.CustomerCacheTTL = ttl
		}
	}

	return cfg
}

func splitBrokers(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
