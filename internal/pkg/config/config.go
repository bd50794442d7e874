package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port            string `env:"PORT,             default=8080"`
	Env             string `env:"ENV,              default=development"`
	LogLevel        string `env:"LOG_LEVEL,        default=info"`
	ActivityWorkers int    `env:"ACTIVITY_WORKERS, default=4"`

	Auth  AuthConfig
	Mongo MongoConfig
	Redis RedisConfig
}

type AuthConfig struct {
	JWTSecret    string `env:"JWT_SECRET,    required"`
	JWTAlgorithm string `env:"JWT_ALGORITHM, required"`
	// ExpireMinutes is the access token lifetime.
	ExpireMinutes int `env:"EXPIRE_TIME, default=15"`
	BcryptCost    int `env:"BCRYPT_COST, default=10"`
}

type MongoConfig struct {
	URI        string        `env:"MONGO_URI,        required"`
	Database   string        `env:"MONGO_DB,         required"`
	Collection string        `env:"MONGO_COLLECTION, required"`
	Timeout    time.Duration `env:"STORE_TIMEOUT,    default=10s"`
	ListLimit  int           `env:"LIST_LIMIT,       default=50"`
}

type RedisConfig struct {
	// Addr is optional; empty disables username reservation.
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

// TokenLifetime returns the configured access token lifetime.
func (c *Config) TokenLifetime() time.Duration {
	return time.Duration(c.Auth.ExpireMinutes) * time.Minute
}

// IsDevelopment reports whether the service runs with developer defaults.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}

// Validate rejects settings that would only fail later at request time.
func (c *Config) Validate() error {
	var errs []error
	switch c.Auth.JWTAlgorithm {
	case "HS256", "HS384", "HS512":
	default:
		errs = append(errs, fmt.Errorf("JWT_ALGORITHM %q: only HS256, HS384 and HS512 are supported", c.Auth.JWTAlgorithm))
	}
	if c.Auth.ExpireMinutes <= 0 {
		errs = append(errs, fmt.Errorf("EXPIRE_TIME must be positive, got %d", c.Auth.ExpireMinutes))
	}
	if c.Mongo.ListLimit <= 0 {
		errs = append(errs, fmt.Errorf("LIST_LIMIT must be positive, got %d", c.Mongo.ListLimit))
	}
	if c.Mongo.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("STORE_TIMEOUT must be positive, got %s", c.Mongo.Timeout))
	}
	return errors.Join(errs...)
}

// Load reads an optional .env file, then configuration from environment
// variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
