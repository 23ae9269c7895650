// Package config loads the storefront settings: built-in defaults, then an
// optional YAML file, then environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTPPort           string        `yaml:"http_port"`
	OrdersAPIURL       string        `yaml:"orders_api_url"`
	AccountsAPIURL     string        `yaml:"accounts_api_url"`
	RequestTimeout     time.Duration `yaml:"request_timeout"`
	ShutdownTimeout    time.Duration `yaml:"shutdown_timeout"`
	MaxRequestBodySize int64         `yaml:"max_request_body_size"`
	CartClearDelay     time.Duration `yaml:"cart_clear_delay"`
	VisitorIdleTimeout time.Duration `yaml:"visitor_idle_timeout"`
	VisitorSweepPeriod time.Duration `yaml:"visitor_sweep_period"`

	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password"`

	CatalogDBPath  string `yaml:"catalog_db_path"`
	MigrationsPath string `yaml:"migrations_path"`

	KafkaBrokers []string `yaml:"kafka_brokers"`
	KafkaTopic   string   `yaml:"kafka_topic"`

	LogLevel       string `yaml:"log_level"`
	LogDevelopment bool   `yaml:"log_development"`

	PromoCodes map[string]float64 `yaml:"promo_codes"`
}

func Default() *Config {
	return &Config{
		HTTPPort:           "8080",
		OrdersAPIURL:       "https://backend.webextremesinternational.com/api/v1",
		AccountsAPIURL:     "http://localhost:4000/api/v1",
		RequestTimeout:     30 * time.Second,
		ShutdownTimeout:    10 * time.Second,
		MaxRequestBodySize: 1 << 20, // 1MB
		CartClearDelay:     2 * time.Second,
		VisitorIdleTimeout: 30 * time.Minute,
		VisitorSweepPeriod: time.Minute,
		CatalogDBPath:      "catalog.db",
		MigrationsPath:     "internal/catalog/migrations",
		KafkaTopic:         "storefront-orders",
		LogLevel:           "info",
		PromoCodes:         map[string]float64{"WELCOME15": 15},
	}
}

// Load reads path when it is not empty. Environment variables win over the
// file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), cfg); err != nil {
			return nil, fmt.Errorf("unmarshal config: %w", err)
		}
	}

	cfg.HTTPPort = getEnv("HTTP_PORT", cfg.HTTPPort)
	cfg.OrdersAPIURL = getEnv("ORDERS_API_URL", cfg.OrdersAPIURL)
	cfg.AccountsAPIURL = getEnv("ACCOUNTS_API_URL", cfg.AccountsAPIURL)
	cfg.RedisAddr = getEnv("REDIS_ADDR", cfg.RedisAddr)
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", cfg.RedisPassword)
	cfg.CatalogDBPath = getEnv("CATALOG_DB_PATH", cfg.CatalogDBPath)
	cfg.MigrationsPath = getEnv("MIGRATIONS_PATH", cfg.MigrationsPath)
	cfg.KafkaTopic = getEnv("KAFKA_TOPIC", cfg.KafkaTopic)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		cfg.KafkaBrokers = splitList(brokers)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.HTTPPort == "" {
		errs = append(errs, errors.New("http_port is required"))
	}
	if c.OrdersAPIURL == "" {
		errs = append(errs, errors.New("orders_api_url is required"))
	}
	if c.AccountsAPIURL == "" {
		errs = append(errs, errors.New("accounts_api_url is required"))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, errors.New("request_timeout must be positive"))
	}
	if c.CartClearDelay < 0 {
		errs = append(errs, errors.New("cart_clear_delay must not be negative"))
	}
	if c.VisitorIdleTimeout < 0 {
		errs = append(errs, errors.New("visitor_idle_timeout must not be negative"))
	}
	if c.VisitorIdleTimeout > 0 && c.VisitorSweepPeriod <= 0 {
		errs = append(errs, errors.New("visitor_sweep_period must be positive when eviction is on"))
	}
	for code, pct := range c.PromoCodes {
		if pct <= 0 || pct > 100 {
			errs = append(errs, fmt.Errorf("promo code %s: percent must be in (0, 100]", code))
		}
	}
	return errors.Join(errs...)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
