package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Поддерживаемые драйверы хранилища
const (
	StorageMemory   = "memory"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
)

var (
	// ErrInvalidConfig возвращается при невалидной конфигурации
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Config конфигурация сервиса
type Config struct {
	Server            ServerConfig            `toml:"server"`
	Logs              LogsConfig              `toml:"logs"`
	Metrics           MetricsConfig           `toml:"metrics"`
	Storage           StorageConfig           `toml:"storage"`
	Database          DatabaseConfig          `toml:"database"`
	Redis             RedisConfig             `toml:"redis"`
	Schedule          ScheduleConfig          `toml:"schedule"`
	Booking           BookingConfig           `toml:"booking"`
	SpecialistService SpecialistServiceConfig `toml:"specialist_service"`
	RateLimit         RateLimitConfig         `toml:"rate_limit"`
	Providers         []ProviderConfig        `toml:"providers"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type StorageConfig struct {
	Driver    string `toml:"driver"` // memory | redis | postgres
	KeyPrefix string `toml:"key_prefix"`
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

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// URL строка подключения для golang-migrate
func (d DatabaseConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode)
}

type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// ScheduleConfig шаблон дня: слоты от DayStart до DayEnd включительно с шагом SlotStepMinutes
type ScheduleConfig struct {
	DayStart        string `toml:"day_start"`
	DayEnd          string `toml:"day_end"`
	SlotStepMinutes int    `toml:"slot_step_minutes"`
	Timezone        string `toml:"timezone"`
}

// Location часовой пояс, в котором трактуются даты и время слотов
func (s ScheduleConfig) Location() (*time.Location, error) {
	if s.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(s.Timezone)
}

type BookingConfig struct {
	DefaultDurationMinutes int `toml:"default_duration_minutes"`
	// 0 = неоплаченные онлайн-брони не истекают
	HoldTTLMinutes           int `toml:"hold_ttl_minutes"`
	HoldSweepIntervalSeconds int `toml:"hold_sweep_interval_seconds"`
}

// HoldTTL время жизни неоплаченной онлайн-брони
func (b BookingConfig) HoldTTL() time.Duration {
	return time.Duration(b.HoldTTLMinutes) * time.Minute
}

type SpecialistServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

type RateLimitConfig struct {
	RequestsPerMinute int  `toml:"requests_per_minute"`
	Burst             int  `toml:"burst"`
	// true только за прокси, который сам выставляет X-Forwarded-For / X-Real-IP
	TrustProxyHeaders bool `toml:"trust_proxy_headers"`
	IdleTTLMinutes    int  `toml:"idle_ttl_minutes"`
}

// IdleTTL через сколько простоя забывается счетчик IP
func (r RateLimitConfig) IdleTTL() time.Duration {
	return time.Duration(r.IdleTTLMinutes) * time.Minute
}

// ProviderConfig статическая запись справочника специалистов
// (используется, если specialist_service.url не задан)
type ProviderConfig struct {
	ID     string  `toml:"id"`
	Name   string  `toml:"name"`
	Active bool    `toml:"active"`
	Price  float64 `toml:"price"`
}

// Load читает TOML-файл, подгружает .env и применяет переопределения из окружения
func Load(path string) (*Config, error) {
	// .env опционален
	_ = godotenv.Load()

	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		path = envPath
	}

	cfg := defaults()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "psy-booking-service",
		},
		Storage: StorageConfig{Driver: StorageMemory},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Redis: RedisConfig{Addr: "localhost:6379"},
		Schedule: ScheduleConfig{
			DayStart:        "09:00",
			DayEnd:          "23:00",
			SlotStepMinutes: 60,
		},
		Booking: BookingConfig{
			DefaultDurationMinutes:   60,
			HoldSweepIntervalSeconds: 60,
		},
		SpecialistService: SpecialistServiceConfig{Timeout: 5},
		RateLimit:         RateLimitConfig{RequestsPerMinute: 60, Burst: 10, IdleTTLMinutes: 10},
	}
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("STORAGE_DRIVER"); v != "" {
		cfg.Storage.Driver = v
	}
	if v := os.Getenv("HTTP_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.HTTPPort = port
		}
	}
}

// Validate проверяет согласованность настроек
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case StorageMemory, StorageRedis, StoragePostgres:
	default:
		return fmt.Errorf("%w: unknown storage driver %q", ErrInvalidConfig, c.Storage.Driver)
	}

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: http_port out of range: %d", ErrInvalidConfig, c.Server.HTTPPort)
	}

	if c.Schedule.SlotStepMinutes <= 0 {
		return fmt.Errorf("%w: slot_step_minutes must be positive", ErrInvalidConfig)
	}
	if c.Schedule.DayStart >= c.Schedule.DayEnd {
		return fmt.Errorf("%w: day_start %q must be before day_end %q",
			ErrInvalidConfig, c.Schedule.DayStart, c.Schedule.DayEnd)
	}
	if _, err := c.Schedule.Location(); err != nil {
		return fmt.Errorf("%w: timezone: %v", ErrInvalidConfig, err)
	}

	if c.Booking.HoldTTLMinutes < 0 {
		return fmt.Errorf("%w: hold_ttl_minutes must not be negative", ErrInvalidConfig)
	}
	if c.Booking.HoldTTLMinutes > 0 && c.Booking.HoldSweepIntervalSeconds <= 0 {
		return fmt.Errorf("%w: hold_sweep_interval_seconds must be positive", ErrInvalidConfig)
	}

	if c.RateLimit.IdleTTLMinutes <= 0 {
		return fmt.Errorf("%w: rate_limit.idle_ttl_minutes must be positive", ErrInvalidConfig)
	}

	seen := make(map[string]struct{}, len(c.Providers))
	for _, p := range c.Providers {
		if p.ID == "" {
			return fmt.Errorf("%w: provider with empty id", ErrInvalidConfig)
		}
		if _, ok := seen[p.ID]; ok {
			return fmt.Errorf("%w: duplicate provider id %q", ErrInvalidConfig, p.ID)
		}
		seen[p.ID] = struct{}{}
	}

	return nil
}
