package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-BookingPortal/internal/domain"
)

// Session store backends
const (
	SessionBackendMemory   = "memory"
	SessionBackendRedis    = "redis"
	SessionBackendPostgres = "postgres"
)

// DefaultBookingAPIURL адрес бэкенда по умолчанию (локальная разработка)
const DefaultBookingAPIURL = "http://localhost:3000"

// ErrInvalidConfig возвращается при некорректных значениях конфигурации
var ErrInvalidConfig = errors.New("config: invalid value")

// Config конфигурация портала бронирования
type Config struct {
	Server     ServerConfig     `toml:"server"`
	Logs       LogsConfig       `toml:"logs"`
	Metrics    MetricsConfig    `toml:"metrics"`
	BookingAPI BookingAPIConfig `toml:"booking_api"`
	Booking    BookingConfig    `toml:"booking"`
	Admin      AdminConfig      `toml:"admin"`
	Session    SessionConfig    `toml:"session"`
	Redis      RedisConfig      `toml:"redis"`
	Database   DatabaseConfig   `toml:"database"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды; 0 для SSE-потока сессии
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// BookingAPIConfig внешний бэкенд записей
type BookingAPIConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды, 0 = без таймаута
}

type BookingConfig struct {
	Timezone string `toml:"timezone"`
}

type AdminConfig struct {
	SessionHours       int `toml:"session_hours"`
	LoginRatePerMinute int `toml:"login_rate_per_minute"`
	LoginBurst         int `toml:"login_burst"`
}

type SessionConfig struct {
	Backend      string `toml:"backend"` // memory | redis | postgres
	CookieName   string `toml:"cookie_name"`
	CookieSecure bool   `toml:"cookie_secure"`

	// Очистка просроченных строк для postgres (cron-выражение)
	SweepSchedule   string `toml:"sweep_schedule"`
	SweepGraceHours int    `toml:"sweep_grace_hours"`
}

type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Prefix   string `toml:"prefix"`
}

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

// DSN строка подключения к PostgreSQL
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// Location часовой пояс магазина
func (b BookingConfig) Location() (*time.Location, error) {
	return time.LoadLocation(b.Timezone)
}

// Default конфигурация по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    0,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "smc-booking-portal",
		},
		BookingAPI: BookingAPIConfig{URL: DefaultBookingAPIURL, Timeout: 15},
		Booking:    BookingConfig{Timezone: domain.DefaultTimezone},
		Admin: AdminConfig{
			SessionHours:       domain.DefaultAdminSessionHours,
			LoginRatePerMinute: 5,
			LoginBurst:         3,
		},
		Session: SessionConfig{
			Backend:         SessionBackendMemory,
			CookieName:      "smc_portal_session",
			SweepSchedule:   "@every 1h",
			SweepGraceHours: 24,
		},
		Redis: RedisConfig{Addr: "localhost:6379", Prefix: "smc:portal"},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
	}
}

// Load читает .env (если есть), TOML-файл (если есть) и переменные окружения
// Приоритет: окружение > файл > значения по умолчанию
func Load(path string) (*Config, error) {
	// .env не обязателен
	_ = godotenv.Load()

	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, cfg); err != nil {
				return nil, fmt.Errorf("decode config file %s: %w", path, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("stat config file %s: %w", path, err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnv переопределяет значения из окружения
func applyEnv(cfg *Config) error {
	if v := os.Getenv("BOOKING_API_URL"); v != "" {
		cfg.BookingAPI.URL = v
	}
	if v := os.Getenv("SESSION_BACKEND"); v != "" {
		cfg.Session.Backend = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("DATABASE_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logs.Level = v
	}
	if v := os.Getenv("STORE_TIMEZONE"); v != "" {
		cfg.Booking.Timezone = v
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"ADMIN_SESSION_HOURS", &cfg.Admin.SessionHours},
		{"HTTP_PORT", &cfg.Server.HTTPPort},
		{"BOOKING_API_TIMEOUT", &cfg.BookingAPI.Timeout},
	}
	for _, item := range ints {
		v := os.Getenv(item.key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not an integer", ErrInvalidConfig, item.key, v)
		}
		*item.dst = n
	}

	return nil
}

// Validate проверяет согласованность значений
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port=%d", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if strings.TrimSpace(c.BookingAPI.URL) == "" {
		return fmt.Errorf("%w: booking_api.url is empty", ErrInvalidConfig)
	}
	if c.BookingAPI.Timeout < 0 {
		return fmt.Errorf("%w: booking_api.timeout=%d", ErrInvalidConfig, c.BookingAPI.Timeout)
	}
	if c.Admin.SessionHours <= 0 {
		return fmt.Errorf("%w: admin.session_hours must be positive, got %d", ErrInvalidConfig, c.Admin.SessionHours)
	}
	if _, err := c.Booking.Location(); err != nil {
		return fmt.Errorf("%w: booking.timezone=%q: %v", ErrInvalidConfig, c.Booking.Timezone, err)
	}

	switch c.Session.Backend {
	case SessionBackendMemory, SessionBackendRedis, SessionBackendPostgres:
	default:
		return fmt.Errorf("%w: session.backend=%q", ErrInvalidConfig, c.Session.Backend)
	}
	if strings.TrimSpace(c.Session.CookieName) == "" {
		return fmt.Errorf("%w: session.cookie_name is empty", ErrInvalidConfig)
	}
	if c.Session.SweepGraceHours < 0 {
		return fmt.Errorf("%w: session.sweep_grace_hours=%d", ErrInvalidConfig, c.Session.SweepGraceHours)
	}
	if c.Admin.LoginRatePerMinute <= 0 || c.Admin.LoginBurst <= 0 {
		return fmt.Errorf("%w: admin login rate limit must be positive", ErrInvalidConfig)
	}

	return nil
}
