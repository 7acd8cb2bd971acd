// Package config конфигурация сервиса из config.toml.
// Секреты (ключ Stripe) берутся из окружения, .env подхватывается в main
// через godotenv до загрузки конфигурации.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config конфигурация сервиса
type Config struct {
	Server       ServerConfig       `toml:"server"`
	Database     DatabaseConfig     `toml:"database"`
	Logs         LogsConfig         `toml:"logs"`
	Metrics      MetricsConfig      `toml:"metrics"`
	VenueService VenueServiceConfig `toml:"venue_service"`
	Stripe       StripeConfig       `toml:"stripe"`
	Booking      BookingConfig      `toml:"booking"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`

	// Ограничение частоты запросов на проверку билетов
	CheckinRPS   float64 `toml:"checkin_rps"`
	CheckinBurst int     `toml:"checkin_burst"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN возвращает строку подключения к PostgreSQL
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки Prometheus-метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// VenueServiceConfig настройки клиента VenueService (хранилище клубов и столов)
type VenueServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// StripeConfig настройки платежного шлюза.
// SecretKey не хранится в toml - читается из STRIPE_SECRET_KEY.
type StripeConfig struct {
	BaseURL   string `toml:"base_url"`
	Timeout   int    `toml:"timeout"` // секунды
	SecretKey string `toml:"-"`
}

// BookingConfig бизнес-параметры бронирования
type BookingConfig struct {
	PlatformFeePercent float64 `toml:"platform_fee_percent"`
	Currency           string  `toml:"currency"`
}

// Load читает конфигурацию из TOML файла и окружения
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	cfg.Stripe.SecretKey = os.Getenv("STRIPE_SECRET_KEY")

	applyDefaults(&cfg)

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.HTTPPort == 0 {
		cfg.Server.HTTPPort = 8080
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10
	}
	if cfg.Server.CheckinRPS == 0 {
		cfg.Server.CheckinRPS = 10
	}
	if cfg.Server.CheckinBurst == 0 {
		cfg.Server.CheckinBurst = 20
	}
	if cfg.Logs.File == "" {
		cfg.Logs.File = "logs/app.log"
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.Stripe.BaseURL == "" {
		cfg.Stripe.BaseURL = "https://api.stripe.com"
	}
	if cfg.Stripe.Timeout == 0 {
		cfg.Stripe.Timeout = 15
	}
	if cfg.Booking.PlatformFeePercent == 0 {
		cfg.Booking.PlatformFeePercent = 10
	}
	if cfg.Booking.Currency == "" {
		cfg.Booking.Currency = "eur"
	}
}
