package config

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,       default=8081"`
	Env       string `env:"ENV,        default=development" validate:"oneof=development staging production test"`
	LogLevel  string `env:"LOG_LEVEL,  default=info"`
	LogPretty bool   `env:"LOG_PRETTY, default=false"`

	Backend BackendConfig
	Session SessionConfig
	Mongo   MongoConfig
	Redis   RedisConfig
}

type BackendConfig struct {
	URL      string        `env:"BACKEND_URL,       default=http://localhost:8080" validate:"required,url"`
	Timeout  time.Duration `env:"BACKEND_TIMEOUT,   default=10s"                   validate:"gt=0"`
	AuthMode string        `env:"BACKEND_AUTH_MODE, default=path"                  validate:"oneof=path header"`
}

type SessionConfig struct {
	Store        string        `env:"SESSION_STORE,         default=memory"   validate:"oneof=memory redis mongo"`
	TTL          time.Duration `env:"SESSION_TTL,           default=12h"      validate:"gte=0"`
	CookieName   string        `env:"SESSION_COOKIE,        default=hcms_sid" validate:"required"`
	CookieSecure bool          `env:"SESSION_COOKIE_SECURE, default=false"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=hospital_portal"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadFrom(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadFrom reads and validates configuration from l.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}
	return &cfg, nil
}

// Production reports whether the portal runs in production.
func (c *Config) Production() bool {
	return c.Env == "production"
}
