// Package config загружает конфигурацию сервера из переменных окружения.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// minSecretLen минимальная длина секрета подписи JWT
const minSecretLen = 16

// Config конфигурация gymkeeper-server
type Config struct {
	Address         string        `env:"ADDRESS" envDefault:":8080"`
	DatabasePath    string        `env:"DATABASE_PATH" envDefault:"gymkeeper.db"`
	JWTSecret       string        `env:"JWT_SECRET,required"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat       string        `env:"LOG_FORMAT" envDefault:"text"`
	AccessTokenTTL  time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"720h"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	RateLimitWindow time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"1m"`
	RateLimit       int           `env:"RATE_LIMIT" envDefault:"120"`
}

// envPrefix общий префикс переменных окружения сервера
const envPrefix = "GYMKEEPER_SERVER_"

// Load читает конфигурацию из окружения процесса
func Load() (*Config, error) {
	return parse(env.Options{Prefix: envPrefix})
}

// LoadFrom читает конфигурацию из переданного набора переменных (ключи с префиксом)
func LoadFrom(environ map[string]string) (*Config, error) {
	return parse(env.Options{Prefix: envPrefix, Environment: environ})
}

func parse(opts env.Options) (*Config, error) {
	cfg, err := env.ParseAsWithOptions[Config](opts)
	if err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate проверяет значения конфигурации
func (c *Config) Validate() error {
	if len(c.JWTSecret) < minSecretLen {
		return fmt.Errorf("JWT secret must be at least %d characters", minSecretLen)
	}
	if c.AccessTokenTTL <= 0 {
		return errors.New("access token TTL must be positive")
	}
	if c.RateLimit < 0 {
		return errors.New("rate limit must not be negative")
	}
	if c.RateLimit > 0 && c.RateLimitWindow <= 0 {
		return errors.New("rate limit window must be positive")
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	return nil
}
