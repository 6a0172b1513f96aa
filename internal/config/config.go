package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/robfig/cron/v3"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// EnvConfigPath переменная окружения, переопределяющая путь к файлу конфигурации
const EnvConfigPath = "SCHEDULING_CONFIG"

// Поддерживаемые бэкенды хранилища
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Storage  StorageConfig  `toml:"storage"`
	Database DatabaseConfig `toml:"database"`
	Redis    RedisConfig    `toml:"redis"`
	Booking  BookingConfig  `toml:"booking"`
	Jobs     JobsConfig     `toml:"jobs"`
}

// ServerConfig настройки HTTP сервера, таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type LogsConfig struct {
	Level  string `toml:"level"`
	File   string `toml:"file"`
	Format string `toml:"format"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type StorageConfig struct {
	Backend string `toml:"backend"`
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
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // в секундах
	MigrateOnStart  bool   `toml:"migrate_on_start"`
}

type RedisConfig struct {
	Addr      string `toml:"addr"`
	Password  string `toml:"password"`
	DB        int    `toml:"db"`
	KeyPrefix string `toml:"key_prefix"`
}

// BookingConfig параметры поиска слотов и альтернатив
type BookingConfig struct {
	DefaultSlotMinutes      int `toml:"default_slot_minutes"`
	AlternativesLimit       int `toml:"alternatives_limit"`
	AlternativesHorizonDays int `toml:"alternatives_horizon_days"`
}

type JobsConfig struct {
	CompletionEnabled  bool   `toml:"completion_enabled"`
	CompletionSchedule string `toml:"completion_schedule"`
}

// Load читает конфигурацию из файла path
// Если задана переменная SCHEDULING_CONFIG, используется путь из нее.
func Load(path string) (*Config, error) {
	if override := strings.TrimSpace(os.Getenv(EnvConfigPath)); override != "" {
		path = override
	}

	cfg := &Config{}
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%w: unknown keys %v", ErrInvalidConfig, undecoded)
	}

	cfg.applyDefaults(meta)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default возвращает конфигурацию со значениями по умолчанию (in-memory хранилище)
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults(toml.MetaData{})
	return cfg
}

func (c *Config) applyDefaults(meta toml.MetaData) {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10
	}

	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}
	if c.Logs.Format == "" {
		c.Logs.Format = "json"
	}

	// metrics.enabled по умолчанию включены, если ключ не задан явно
	if !meta.IsDefined("metrics", "enabled") {
		c.Metrics.Enabled = true
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "scheduling_service"
	}

	if c.Storage.Backend == "" {
		c.Storage.Backend = BackendMemory
	}

	if c.Database.Host == "" {
		c.Database.Host = "localhost"
	}
	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 10
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}

	if c.Redis.Addr == "" {
		c.Redis.Addr = "localhost:6379"
	}
	if c.Redis.KeyPrefix == "" {
		c.Redis.KeyPrefix = "scheduling"
	}

	if c.Booking.DefaultSlotMinutes == 0 {
		c.Booking.DefaultSlotMinutes = 30
	}
	if c.Booking.AlternativesLimit == 0 {
		c.Booking.AlternativesLimit = 3
	}
	if c.Booking.AlternativesHorizonDays == 0 {
		c.Booking.AlternativesHorizonDays = 30
	}

	if !meta.IsDefined("jobs", "completion_enabled") {
		c.Jobs.CompletionEnabled = true
	}
	if c.Jobs.CompletionSchedule == "" {
		c.Jobs.CompletionSchedule = "@every 5m"
	}
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port=%d", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 || c.Server.IdleTimeout < 0 || c.Server.ShutdownTimeout < 0 {
		return fmt.Errorf("%w: server timeouts must not be negative", ErrInvalidConfig)
	}

	switch strings.ToLower(c.Logs.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("%w: logs.format=%q", ErrInvalidConfig, c.Logs.Format)
	}

	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("%w: metrics.path must start with /", ErrInvalidConfig)
	}

	switch c.Storage.Backend {
	case BackendMemory:
	case BackendPostgres:
		if c.Database.User == "" || c.Database.DBName == "" {
			return fmt.Errorf("%w: database.user and database.dbname are required for postgres backend", ErrInvalidConfig)
		}
	case BackendRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("%w: redis.addr is required for redis backend", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: storage.backend=%q", ErrInvalidConfig, c.Storage.Backend)
	}

	if c.Booking.DefaultSlotMinutes < domain.MinSlotDurationMinutes || c.Booking.DefaultSlotMinutes > domain.MaxSlotDurationMinutes {
		return fmt.Errorf("%w: booking.default_slot_minutes must be between %d and %d",
			ErrInvalidConfig, domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
	}
	if c.Booking.AlternativesLimit < 0 {
		return fmt.Errorf("%w: booking.alternatives_limit must not be negative", ErrInvalidConfig)
	}
	if c.Booking.AlternativesHorizonDays <= 0 {
		return fmt.Errorf("%w: booking.alternatives_horizon_days must be positive", ErrInvalidConfig)
	}

	if c.Jobs.CompletionEnabled {
		if _, err := cron.ParseStandard(c.Jobs.CompletionSchedule); err != nil {
			return fmt.Errorf("%w: jobs.completion_schedule=%q: %v", ErrInvalidConfig, c.Jobs.CompletionSchedule, err)
		}
	}

	return nil
}

// DSN возвращает строку подключения lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// URL возвращает postgres:// URL для golang-migrate
func (d DatabaseConfig) URL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     d.Host + ":" + strconv.Itoa(d.Port),
		Path:     "/" + d.DBName,
		RawQuery: "sslmode=" + url.QueryEscape(d.SSLMode),
	}
	return u.String()
}

// ConnMaxLifetimeDuration время жизни соединения в пуле
func (d DatabaseConfig) ConnMaxLifetimeDuration() time.Duration {
	return time.Duration(d.ConnMaxLifetime) * time.Second
}

// DefaultSlotDuration длительность слота по умолчанию
func (b BookingConfig) DefaultSlotDuration() time.Duration {
	return time.Duration(b.DefaultSlotMinutes) * time.Minute
}
