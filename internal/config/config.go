package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	QueueBackendRedis    = "redis"
	QueueBackendPostgres = "postgres"
)

type Config struct {
	Options  OptionsConfig
	Server   ServerConfig
	Queue    QueueConfig
	Redis    RedisConfig
	Postgres PostgresConfig
	Tracing  TracingConfig
	Logging  LogConfig
}

type OptionsConfig struct {
	A string `envconfig:"OPTION_A" default:"Cats"`
	B string `envconfig:"OPTION_B" default:"Dogs"`
}

type ServerConfig struct {
	Host       string `envconfig:"HOST" default:"0.0.0.0"`
	Port       string `envconfig:"PORT" default:"80"`
	CookieName string `envconfig:"COOKIE_NAME" default:"voter_id"`
}

type QueueConfig struct {
	Backend string        `envconfig:"QUEUE_BACKEND" default:"redis"`
	Key     string        `envconfig:"QUEUE_KEY" default:"votes"`
	Timeout time.Duration `envconfig:"QUEUE_TIMEOUT" default:"3s"`
}

type RedisConfig struct {
	Addr     string `envconfig:"REDIS_ADDR" default:"redis:6379"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

type PostgresConfig struct {
	Host     string `envconfig:"POSTGRES_HOST" default:"db"`
	Port     string `envconfig:"POSTGRES_PORT" default:"5432"`
	User     string `envconfig:"POSTGRES_USER" default:"postgres"`
	Password string `envconfig:"POSTGRES_PASSWORD" default:"postgres"`
	DB       string `envconfig:"POSTGRES_DB" default:"postgres"`
}

type TracingConfig struct {
	Enabled       bool    `envconfig:"TRACING_ENABLED" default:"true"`
	Endpoint      string  `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	Insecure      bool    `envconfig:"OTEL_EXPORTER_OTLP_INSECURE" default:"true"`
	ServiceName   string  `envconfig:"OTEL_SERVICE_NAME" default:"vote"`
	SamplingRatio float64 `envconfig:"OTEL_SAMPLING_RATIO" default:"1.0"`
}

type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// Load reads an optional .env file and then the process environment.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Queue.Backend {
	case QueueBackendRedis, QueueBackendPostgres:
	default:
		return fmt.Errorf("unsupported queue backend %q", c.Queue.Backend)
	}
	if c.Queue.Timeout <= 0 {
		return errors.New("queue timeout must be positive")
	}
	if c.Tracing.SamplingRatio < 0 || c.Tracing.SamplingRatio > 1 {
		return fmt.Errorf("sampling ratio %v out of range [0,1]", c.Tracing.SamplingRatio)
	}
	return nil
}

func (c ServerConfig) Addr() string {
	return c.Host + ":" + c.Port
}

func (c PostgresConfig) ConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", c.User, c.Password, c.Host, c.Port, c.DB)
}
