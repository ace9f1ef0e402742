package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	LogLevel slog.Level
	Ledger   LedgerConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	RabbitMQ RabbitMQConfig
}

type ServerConfig struct {
	Host string
	Port int
}

// LedgerConfig controls persistence and the knobs of the ledger services.
type LedgerConfig struct {
	Persist         bool
	BuyRateLimit    int
	BuyRateWindow   time.Duration
	ConcertCacheTTL time.Duration
	IdempotencyTTL  time.Duration
}

type PostgresConfig struct {
	User     string
	Password string
	Name     string
	Host     string
	Port     int
	SSLMode  string
}

// RedisConfig with an empty Addr runs the service without redis.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

func (c RedisConfig) Enabled() bool {
	return c.Addr != ""
}

// RabbitMQConfig with an empty URL drops settlement events. Consume runs the
// settlement reconciler on this instance.
type RabbitMQConfig struct {
	URL     string
	Consume bool
}

func (c RabbitMQConfig) Enabled() bool {
	return c.URL != ""
}

func New() (*Config, error) {
	const op = "config.New"

	_ = godotenv.Load()

	cfg, err := fromEnv()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return cfg, nil
}

func fromEnv() (*Config, error) {
	var (
		cfg Config
		err error
	)

	cfg.Server.Host = envString("SERVER_HOST", "localhost")
	if cfg.Server.Port, err = envInt("SERVER_PORT", 8080); err != nil {
		return nil, err
	}

	if cfg.LogLevel, err = envLevel("LOG_LEVEL", slog.LevelInfo); err != nil {
		return nil, err
	}

	if cfg.Ledger.Persist, err = envBool("LEDGER_PERSIST", false); err != nil {
		return nil, err
	}
	if cfg.Ledger.BuyRateLimit, err = envInt("BUY_RATE_LIMIT", 10); err != nil {
		return nil, err
	}
	if cfg.Ledger.BuyRateWindow, err = envDuration("BUY_RATE_WINDOW", time.Minute); err != nil {
		return nil, err
	}
	if cfg.Ledger.ConcertCacheTTL, err = envDuration("CONCERT_CACHE_TTL", 60*time.Second); err != nil {
		return nil, err
	}
	if cfg.Ledger.IdempotencyTTL, err = envDuration("IDEMPOTENCY_TTL", 24*time.Hour); err != nil {
		return nil, err
	}

	cfg.Postgres.Host = envString("POSTGRES_HOST", "localhost")
	if cfg.Postgres.Port, err = envInt("POSTGRES_PORT", 5432); err != nil {
		return nil, err
	}
	cfg.Postgres.User = os.Getenv("POSTGRES_USER")
	cfg.Postgres.Password = os.Getenv("POSTGRES_PASSWORD")
	cfg.Postgres.Name = os.Getenv("POSTGRES_DB")
	cfg.Postgres.SSLMode = envString("POSTGRES_SSLMODE", "disable")

	if cfg.Ledger.Persist {
		for name, v := range map[string]string{
			"POSTGRES_USER":     cfg.Postgres.User,
			"POSTGRES_PASSWORD": cfg.Postgres.Password,
			"POSTGRES_DB":       cfg.Postgres.Name,
		} {
			if v == "" {
				return nil, fmt.Errorf("missing %s (required with LEDGER_PERSIST)", name)
			}
		}
	}

	cfg.Redis.Addr = os.Getenv("REDIS_ADDR")
	cfg.Redis.Password = os.Getenv("REDIS_PASSWORD")
	if cfg.Redis.DB, err = envInt("REDIS_DB", 0); err != nil {
		return nil, err
	}

	cfg.RabbitMQ.URL = os.Getenv("RABBITMQ_URL")
	if cfg.RabbitMQ.Consume, err = envBool("RABBITMQ_CONSUME", true); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}

	return n, nil
}

func envBool(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}

	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}

	return b, nil
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}

	return d, nil
}

func envLevel(key string, def slog.Level) (slog.Level, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}

	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(v))); err != nil {
		return def, fmt.Errorf("invalid %s: %w", key, err)
	}

	return lvl, nil
}
