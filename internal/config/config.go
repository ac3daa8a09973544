package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix префикс переменных окружения, переопределяющих config.toml
// (например BOOKING_DATABASE_HOST, BOOKING_AUTH_JWT_SECRET)
const EnvPrefix = "BOOKING"

// Драйверы брокера событий
const (
	EventsDriverNone     = "none"
	EventsDriverRabbitMQ = "rabbitmq"
	EventsDriverKafka    = "kafka"
)

// ErrInvalidConfig возвращается, когда конфигурация не проходит проверку
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server" split_words:"true"`
	Database  DatabaseConfig  `toml:"database" split_words:"true"`
	Logs      LogsConfig      `toml:"logs" split_words:"true"`
	Metrics   MetricsConfig   `toml:"metrics" split_words:"true"`
	Auth      AuthConfig      `toml:"auth" split_words:"true"`
	Redis     RedisConfig     `toml:"redis" split_words:"true"`
	Events    EventsConfig    `toml:"events" split_words:"true"`
	Tracing   TracingConfig   `toml:"tracing" split_words:"true"`
	RateLimit RateLimitConfig `toml:"rate_limit" split_words:"true"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port" split_words:"true"`
	ReadTimeout     int `toml:"read_timeout" split_words:"true"`
	WriteTimeout    int `toml:"write_timeout" split_words:"true"`
	IdleTimeout     int `toml:"idle_timeout" split_words:"true"`
	ShutdownTimeout int `toml:"shutdown_timeout" split_words:"true"`
}

// DatabaseConfig настройки PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host" split_words:"true"`
	Port            int    `toml:"port" split_words:"true"`
	User            string `toml:"user" split_words:"true"`
	Password        string `toml:"password" split_words:"true"`
	DBName          string `toml:"dbname" split_words:"true"`
	SSLMode         string `toml:"sslmode" split_words:"true"`
	MaxOpenConns    int    `toml:"max_open_conns" split_words:"true"`
	MaxIdleConns    int    `toml:"max_idle_conns" split_words:"true"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" split_words:"true"` // секунды
}

// DSN возвращает строку подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	Level string `toml:"level" split_words:"true"`
	File  string `toml:"file" split_words:"true"` // пусто = только stdout
}

// MetricsConfig настройки Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled" split_words:"true"`
	ServiceName string `toml:"service_name" split_words:"true"`
	Path        string `toml:"path" split_words:"true"`
}

// AuthConfig настройки проверки JWT
type AuthConfig struct {
	JWTSecret string `toml:"jwt_secret" split_words:"true"`
}

// RedisConfig настройки кэша бизнесов
type RedisConfig struct {
	Enabled    bool   `toml:"enabled" split_words:"true"`
	Addr       string `toml:"addr" split_words:"true"`
	Password   string `toml:"password" split_words:"true"`
	DB         int    `toml:"db" split_words:"true"`
	TTLSeconds int    `toml:"ttl_seconds" split_words:"true"`
}

// TTL время жизни записи кэша
func (r RedisConfig) TTL() time.Duration {
	return time.Duration(r.TTLSeconds) * time.Second
}

// EventsConfig настройки публикации событий бронирований
type EventsConfig struct {
	Driver         string `toml:"driver" split_words:"true"` // none | rabbitmq | kafka
	RabbitURL      string `toml:"rabbit_url" split_words:"true"`
	Exchange       string `toml:"exchange" split_words:"true"`
	KafkaBrokers   string `toml:"kafka_brokers" split_words:"true"` // через запятую
	KafkaTopic     string `toml:"kafka_topic" split_words:"true"`
	PublishTimeout int    `toml:"publish_timeout" split_words:"true"` // секунды
}

// TracingConfig настройки OpenTelemetry
type TracingConfig struct {
	Enabled      bool    `toml:"enabled" split_words:"true"`
	ServiceName  string  `toml:"service_name" split_words:"true"`
	OTLPEndpoint string  `toml:"otlp_endpoint" split_words:"true"`
	SampleRatio  float64 `toml:"sample_ratio" split_words:"true"`
}

// RateLimitConfig ограничение частоты запросов на клиента
type RateLimitConfig struct {
	Enabled bool    `toml:"enabled" split_words:"true"`
	RPS     float64 `toml:"rps" split_words:"true"`
	Burst   int     `toml:"burst" split_words:"true"`
}

// Load читает config.toml, применяет переменные окружения с префиксом BOOKING,
// заполняет значения по умолчанию и проверяет результат.
// Пустой path: конфигурация только из окружения.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: decode %s: %w", path, err)
		}
	}

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("config: apply environment: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	setInt(&c.Server.HTTPPort, 8080)
	setInt(&c.Server.ReadTimeout, 10)
	setInt(&c.Server.WriteTimeout, 10)
	setInt(&c.Server.IdleTimeout, 60)
	setInt(&c.Server.ShutdownTimeout, 10)

	setString(&c.Database.Host, "localhost")
	setInt(&c.Database.Port, 5432)
	setString(&c.Database.SSLMode, "disable")
	setInt(&c.Database.MaxOpenConns, 25)
	setInt(&c.Database.MaxIdleConns, 5)
	setInt(&c.Database.ConnMaxLifetime, 300)

	setString(&c.Logs.Level, "info")

	setString(&c.Metrics.ServiceName, "appointment_booking")
	setString(&c.Metrics.Path, "/metrics")

	setString(&c.Redis.Addr, "localhost:6379")
	setInt(&c.Redis.TTLSeconds, 300)

	setString(&c.Events.Driver, EventsDriverNone)
	setString(&c.Events.Exchange, "booking.events")
	setString(&c.Events.KafkaTopic, "booking.events")
	setInt(&c.Events.PublishTimeout, 3)

	setString(&c.Tracing.ServiceName, "appointment-booking")
	setString(&c.Tracing.OTLPEndpoint, "localhost:4317")
	if c.Tracing.SampleRatio == 0 {
		c.Tracing.SampleRatio = 1
	}

	if c.RateLimit.RPS == 0 {
		c.RateLimit.RPS = 10
	}
	setInt(&c.RateLimit.Burst, 20)
}

// Validate проверяет обязательные поля и согласованность настроек
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port %d out of range", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("%w: database.dbname is required", ErrInvalidConfig)
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("%w: auth.jwt_secret is required", ErrInvalidConfig)
	}

	switch c.Events.Driver {
	case EventsDriverNone:
	case EventsDriverRabbitMQ:
		if c.Events.RabbitURL == "" {
			return fmt.Errorf("%w: events.rabbit_url is required for rabbitmq driver", ErrInvalidConfig)
		}
	case EventsDriverKafka:
		if c.Events.KafkaBrokers == "" {
			return fmt.Errorf("%w: events.kafka_brokers is required for kafka driver", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown events.driver %q", ErrInvalidConfig, c.Events.Driver)
	}

	if c.Tracing.SampleRatio < 0 || c.Tracing.SampleRatio > 1 {
		return fmt.Errorf("%w: tracing.sample_ratio must be within [0, 1]", ErrInvalidConfig)
	}
	if c.RateLimit.Enabled && (c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("%w: rate_limit.rps and rate_limit.burst must be positive", ErrInvalidConfig)
	}

	return nil
}

func setInt(v *int, def int) {
	if *v == 0 {
		*v = def
	}
}

func setString(v *string, def string) {
	if *v == "" {
		*v = def
	}
}
