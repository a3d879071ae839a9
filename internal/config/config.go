package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/sweetnarcisse/SN-BookingService/internal/domain"
)

// Config is the full service configuration loaded from config.toml
type Config struct {
	Server         ServerConfig         `toml:"server"`
	Database       DatabaseConfig       `toml:"database"`
	Redis          RedisConfig          `toml:"redis"`
	Logs           LogsConfig           `toml:"logs"`
	Metrics        MetricsConfig        `toml:"metrics"`
	PaymentService PaymentServiceConfig `toml:"payment_service"`
	Schedule       ScheduleConfig       `toml:"schedule"`
}

// ServerConfig HTTP server settings
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig PostgreSQL connection settings
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN builds the PostgreSQL connection string
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// RedisConfig cache backend settings
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// LogsConfig logging settings
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig prometheus settings
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

// PaymentServiceConfig settings of the payment collaborator
type PaymentServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// ScheduleConfig business schedule settings; zero values fall back to
// the production defaults.
type ScheduleConfig struct {
	TourDurationMinutes    int     `toml:"tour_duration_minutes"`
	BufferTimeMinutes      int     `toml:"buffer_time_minutes"`
	IntervalMinutes        int     `toml:"interval_minutes"`
	MinBookingDelayMinutes int     `toml:"min_booking_delay_minutes"`
	PriceAdult             float64 `toml:"price_adult"`
	PriceChild             float64 `toml:"price_child"`
	PriceBaby              float64 `toml:"price_baby"`
}

// Load reads and validates the configuration from path
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	if cfg.Server.HTTPPort == 0 {
		cfg.Server.HTTPPort = 8080
	}
	if cfg.Database.Host == "" {
		return nil, fmt.Errorf("config: database.host is required")
	}
	if cfg.Metrics.Enabled && cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}

	return &cfg, nil
}

// BuildSchedule merges the configured schedule over the production
// defaults. Zero values keep the default; the baby price defaults to
// zero either way.
func (c *Config) BuildSchedule() domain.Schedule {
	s := domain.DefaultSchedule()

	if c.Schedule.TourDurationMinutes > 0 {
		s.TourDurationMinutes = c.Schedule.TourDurationMinutes
	}
	if c.Schedule.BufferTimeMinutes > 0 {
		s.BufferTimeMinutes = c.Schedule.BufferTimeMinutes
	}
	if c.Schedule.IntervalMinutes > 0 {
		s.IntervalMinutes = c.Schedule.IntervalMinutes
	}
	if c.Schedule.MinBookingDelayMinutes > 0 {
		s.MinBookingDelayMinutes = c.Schedule.MinBookingDelayMinutes
	}
	if c.Schedule.PriceAdult > 0 {
		s.PriceAdult = c.Schedule.PriceAdult
	}
	if c.Schedule.PriceChild > 0 {
		s.PriceChild = c.Schedule.PriceChild
	}
	if c.Schedule.PriceBaby > 0 {
		s.PriceBaby = c.Schedule.PriceBaby
	}

	return s
}
