// Package config collects runtime settings for the checkout service from the environment.
package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/time/rate"
)

type Config struct {
	Port          string
	DatabaseURL   string
	MigrationsDir string

	RedisURL         string
	ProductsCacheTTL time.Duration

	RabbitMQURL        string
	OutboxPollInterval time.Duration
	OutboxBatchSize    int32

	RateLimitEnabled bool
	OrderRateLimit   rate.Limit
	OrderRateBurst   int
}

// LoadDotEnv reads a .env file into the process environment when one exists.
func LoadDotEnv(files ...string) bool {
	return godotenv.Load(files...) == nil
}

// Load reads the environment. DATABASE_URL is the only required value.
func Load() (Config, error) {
	cfg := Config{
		Port:               getenv("PORT", "8080"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		MigrationsDir:      getenv("MIGRATIONS_DIR", "migrations"),
		RedisURL:           os.Getenv("REDIS_URL"),
		ProductsCacheTTL:   durenv("PRODUCTS_CACHE_TTL", 5*time.Minute),
		RabbitMQURL:        os.Getenv("RABBITMQ_URL"),
		OutboxPollInterval: durenv("OUTBOX_POLL_INTERVAL", 5*time.Second),
		OutboxBatchSize:    int32(atoienv("OUTBOX_BATCH_SIZE", 50)),
		RateLimitEnabled:   boolenv("RATE_LIMIT_ENABLED", false),
		OrderRateLimit:     rate.Limit(atoienv("ORDER_RATE_LIMIT_RPS", 10)),
		OrderRateBurst:     atoienv("ORDER_RATE_LIMIT_BURST", 20),
	}

	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("DATABASE_URL is not set")
	}
	if cfg.OutboxBatchSize <= 0 {
		cfg.OutboxBatchSize = 50
	}

	return cfg, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoienv(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func boolenv(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

// durenv accepts Go duration strings ("30s", "5m").
func durenv(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
