// Package config загрузка конфигурации сервиса: config.toml + переопределения из окружения (CT_*)
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix префикс переменных окружения
const EnvPrefix = "CT"

var (
	// ErrReadConfig не удалось прочитать или разобрать файл
	ErrReadConfig = errors.New("config: failed to read config")

	// ErrEnvOverride не удалось применить переменные окружения
	ErrEnvOverride = errors.New("config: failed to apply env overrides")

	// ErrInvalidConfig конфигурация не прошла проверку
	ErrInvalidConfig = errors.New("config: invalid config")
)

// Транспорт доставки событий
const (
	EventsTransportLocal = "local"
	EventsTransportAMQP  = "amqp"
)

type Config struct {
	Logs          LogsConfig          `toml:"logs" split_words:"true"`
	Metrics       MetricsConfig       `toml:"metrics" split_words:"true"`
	Database      DatabaseConfig      `toml:"database" split_words:"true"`
	Server        ServerConfig        `toml:"server" split_words:"true"`
	Auth          AuthConfig          `toml:"auth" split_words:"true"`
	Redis         RedisConfig         `toml:"redis" split_words:"true"`
	Cache         CacheConfig         `toml:"cache" split_words:"true"`
	Events        EventsConfig        `toml:"events" split_words:"true"`
	AMQP          AMQPConfig          `toml:"amqp" split_words:"true"`
	Notifications NotificationsConfig `toml:"notifications" split_words:"true"`
	SMSGateway    GatewayConfig       `toml:"sms_gateway" split_words:"true"`
	EmailGateway  GatewayConfig       `toml:"email_gateway" split_words:"true"`
	Reminder      ReminderConfig      `toml:"reminder" split_words:"true"`
	Payments      PaymentsConfig      `toml:"payments" split_words:"true"`
}

type LogsConfig struct {
	Level string `toml:"level" split_words:"true"`
	File  string `toml:"file" split_words:"true"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled" split_words:"true"`
	Path        string `toml:"path" split_words:"true"`
	ServiceName string `toml:"service_name" split_words:"true"`
}

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
	AutoMigrate     bool   `toml:"auto_migrate" split_words:"true"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.DBName,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port" split_words:"true"`
	ReadTimeout     int `toml:"read_timeout" split_words:"true"`     // секунды
	WriteTimeout    int `toml:"write_timeout" split_words:"true"`    // секунды
	IdleTimeout     int `toml:"idle_timeout" split_words:"true"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout" split_words:"true"` // секунды
}

type AuthConfig struct {
	JWTSecret string `toml:"jwt_secret" split_words:"true"`
	Issuer    string `toml:"issuer" split_words:"true"`
}

type RedisConfig struct {
	Enabled  bool   `toml:"enabled" split_words:"true"`
	Addr     string `toml:"addr" split_words:"true"`
	Password string `toml:"password" split_words:"true"`
	DB       int    `toml:"db" split_words:"true"`
	SlotTTL  int    `toml:"slot_ttl" split_words:"true"` // секунды
}

type CacheConfig struct {
	Enabled     bool  `toml:"enabled" split_words:"true"`
	MaxCostMB   int64 `toml:"max_cost_mb" split_words:"true"`
	NumCounters int64 `toml:"num_counters" split_words:"true"`
	TTL         int   `toml:"ttl" split_words:"true"` // секунды
}

type EventsConfig struct {
	Transport       string `toml:"transport" split_words:"true"` // local | amqp
	PollInterval    int    `toml:"poll_interval_ms" split_words:"true"`
	BatchSize       int    `toml:"batch_size" split_words:"true"`
	MaxAttempts     int    `toml:"max_attempts" split_words:"true"`
	LockTimeout     int    `toml:"lock_timeout" split_words:"true"` // секунды
	ListenNotify    bool   `toml:"listen_notify" split_words:"true"`
	BroadcastLimit  int    `toml:"broadcast_limit" split_words:"true"`
	BroadcastWorker int    `toml:"broadcast_workers" split_words:"true"`
}

type AMQPConfig struct {
	URL      string `toml:"url" split_words:"true"`
	Exchange string `toml:"exchange" split_words:"true"`
	Queue    string `toml:"queue" split_words:"true"`
	Prefetch int    `toml:"prefetch" split_words:"true"`
	DLX      string `toml:"dlx" split_words:"true"`
	DLQ      string `toml:"dlq" split_words:"true"`
}

type NotificationsConfig struct {
	SMSEnabled     bool   `toml:"sms_enabled" split_words:"true"`
	EmailEnabled   bool   `toml:"email_enabled" split_words:"true"`
	SMSDefaultFrom string `toml:"sms_default_from" split_words:"true"`
	SMSQuota       int    `toml:"sms_quota" split_words:"true"`
	EmailFrom      string `toml:"email_from" split_words:"true"`
	EmailFromName  string `toml:"email_from_name" split_words:"true"`
}

type GatewayConfig struct {
	URL     string `toml:"url" split_words:"true"`
	APIKey  string `toml:"api_key" split_words:"true"`
	Timeout int    `toml:"timeout" split_words:"true"` // секунды
}

type ReminderConfig struct {
	Enabled  bool `toml:"enabled" split_words:"true"`
	Interval int  `toml:"interval" split_words:"true"` // секунды
}

type PaymentsConfig struct {
	WebhookSecret string `toml:"webhook_secret" split_words:"true"`
}

// Load читает файл, применяет значения по умолчанию и переменные окружения
func Load(path string) (*Config, error) {
	cfg := defaults()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadConfig, path, err)
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEnvOverride, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Logs:     LogsConfig{Level: "info"},
		Metrics:  MetricsConfig{Path: "/metrics", ServiceName: "ct_inspection_service"},
		Database: DatabaseConfig{Port: 5432, SSLMode: "disable", MaxOpenConns: 25, MaxIdleConns: 5, ConnMaxLifetime: 300},
		Server:   ServerConfig{HTTPPort: 8080, ReadTimeout: 15, WriteTimeout: 15, IdleTimeout: 60, ShutdownTimeout: 10},
		Redis:    RedisConfig{Addr: "localhost:6379", SlotTTL: 300},
		Cache:    CacheConfig{MaxCostMB: 32, NumCounters: 100_000, TTL: 60},
		Events: EventsConfig{
			Transport:       EventsTransportLocal,
			PollInterval:    1000,
			BatchSize:       50,
			MaxAttempts:     10,
			LockTimeout:     60,
			ListenNotify:    true,
			BroadcastLimit:  200,
			BroadcastWorker: 4,
		},
		AMQP:          AMQPConfig{Exchange: "ct.events", Queue: "ct.events.dispatcher", Prefetch: 8},
		Notifications: NotificationsConfig{SMSDefaultFrom: "AgendaCT", SMSQuota: 100, EmailFromName: "AgendaCT"},
		SMSGateway:    GatewayConfig{Timeout: 10},
		EmailGateway:  GatewayConfig{Timeout: 10},
		Reminder:      ReminderConfig{Interval: 3600},
	}
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	var problems []string

	if c.Database.Host == "" {
		problems = append(problems, "database.host is required")
	}
	if c.Database.DBName == "" {
		problems = append(problems, "database.dbname is required")
	}
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		problems = append(problems, "server.http_port must be in 1..65535")
	}
	if c.Auth.JWTSecret == "" {
		problems = append(problems, "auth.jwt_secret is required")
	}
	switch c.Events.Transport {
	case EventsTransportLocal:
	case EventsTransportAMQP:
		if c.AMQP.URL == "" {
			problems = append(problems, "amqp.url is required for amqp transport")
		}
	default:
		problems = append(problems, fmt.Sprintf("events.transport %q is not supported", c.Events.Transport))
	}
	if c.Events.BatchSize <= 0 {
		problems = append(problems, "events.batch_size must be positive")
	}
	if c.Events.BroadcastWorker <= 0 {
		problems = append(problems, "events.broadcast_workers must be positive")
	}
	if c.Notifications.SMSEnabled && c.SMSGateway.URL == "" {
		problems = append(problems, "sms_gateway.url is required when sms is enabled")
	}
	if c.Notifications.EmailEnabled && c.EmailGateway.URL == "" {
		problems = append(problems, "email_gateway.url is required when email is enabled")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}
