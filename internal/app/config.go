package app

import (
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
)

const (
	StorageDriverMemory   = "memory"
	StorageDriverPostgres = "postgres"
	StorageDriverBolt     = "bolt"
)

// Config описывает настройки запуска приложения.
type Config struct {
	HTTPAddr    string `env:"SALES_HTTP_ADDR" envDefault:":8080"`
	MetricsAddr string `env:"SALES_METRICS_ADDR" envDefault:":9090"`

	StorageDriver string `env:"SALES_STORAGE_DRIVER" envDefault:"memory"`
	PostgresDSN   string `env:"SALES_POSTGRES_DSN"`
	BoltPath      string `env:"SALES_BOLT_PATH" envDefault:"sales.db"`

	// PostgresMaxConns ограничивает число открытых подключений к PostgreSQL.
	PostgresMaxConns int `env:"SALES_POSTGRES_MAX_CONNS" envDefault:"25"`

	// Если KafkaBrokers пуст, события не публикуются.
	KafkaBrokers []string `env:"SALES_KAFKA_BROKERS" envSeparator:","`
	KafkaTopic   string   `env:"SALES_KAFKA_TOPIC" envDefault:"sales.sale.events"`

	LogLevel        string        `env:"SALES_LOG_LEVEL" envDefault:"info"`
	ShutdownTimeout time.Duration `env:"SALES_SHUTDOWN_TIMEOUT" envDefault:"5s"`

	// Testing переключает подключение на тестовую базу DB_NAME_TEST.
	Testing bool `env:"SALES_TESTING"`
	DB      DBConfig
}

// DBConfig — параметры подключения по частям. Используются,
// только если SALES_POSTGRES_DSN не задан.
type DBConfig struct {
	Name     string `env:"DB_NAME"`
	NameTest string `env:"DB_NAME_TEST"`
	Username string `env:"DB_USERNAME"`
	Password string `env:"DB_PASSWORD"`
	Host     string `env:"DB_HOST"`
	Port     string `env:"DB_PORT" envDefault:"5432"`
}

// DefaultConfig возвращает настройки по умолчанию.
func DefaultConfig() Config {
	return Config{
		HTTPAddr:         ":8080",
		MetricsAddr:      ":9090",
		StorageDriver:    StorageDriverMemory,
		PostgresMaxConns: 25,
		BoltPath:         "sales.db",
		KafkaTopic:       "sales.sale.events",
		LogLevel:         "info",
		ShutdownTimeout:  5 * time.Second,
		DB:               DBConfig{Port: "5432"},
	}
}

// LoadConfig читает конфигурацию из переменных окружения процесса.
func LoadConfig() (Config, error) {
	return loadConfig(env.Options{})
}

func loadConfig(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env config: %w", err)
	}

	cfg.StorageDriver = strings.ToLower(strings.TrimSpace(cfg.StorageDriver))
	cfg.PostgresDSN = strings.TrimSpace(cfg.PostgresDSN)
	if cfg.PostgresDSN == "" {
		cfg.PostgresDSN = cfg.DB.DSN(cfg.Testing)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate проверяет согласованность настроек.
func (c Config) Validate() error {
	switch c.StorageDriver {
	case StorageDriverMemory:
	case StorageDriverPostgres:
		if c.PostgresDSN == "" {
			return fmt.Errorf("postgres storage requires SALES_POSTGRES_DSN or DB_HOST")
		}
		if c.PostgresMaxConns <= 0 {
			return fmt.Errorf("SALES_POSTGRES_MAX_CONNS must be > 0")
		}
	case StorageDriverBolt:
		if c.BoltPath == "" {
			return fmt.Errorf("bolt storage requires SALES_BOLT_PATH")
		}
	default:
		return fmt.Errorf("unsupported storage driver %q", c.StorageDriver)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown timeout must be > 0")
	}
	return nil
}

// DSN собирает строку подключения PostgreSQL. Без Host возвращает пустую строку.
func (c DBConfig) DSN(testing bool) string {
	if c.Host == "" {
		return ""
	}

	name := c.Name
	if testing {
		name = c.NameTest
	}

	u := url.URL{
		Scheme:   "postgres",
		Host:     net.JoinHostPort(c.Host, c.Port),
		Path:     "/" + name,
		RawQuery: "sslmode=disable",
	}
	if c.Username != "" {
		u.User = url.UserPassword(c.Username, c.Password)
	}
	return u.String()
}
