package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/joefazee/atlas/app/database"
	"github.com/joefazee/atlas/app/explorer"
	"github.com/joefazee/atlas/app/favorites"
	"github.com/joefazee/atlas/app/restcountries"
	"github.com/joefazee/atlas/app/user"
	"github.com/joefazee/atlas/internal/cache"
	"github.com/joefazee/atlas/internal/nexus"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type CacheConfig struct {
	Backend       string        `env:"CACHE_BACKEND" yaml:"backend" validate:"omitempty,oneof=memory redis"`
	RedisAddr     string        `env:"REDIS_ADDR" yaml:"redis_addr"`
	RedisPassword string        `env:"REDIS_PASSWORD" yaml:"redis_password" secret:"true"`
	RedisDB       int           `env:"REDIS_DB" yaml:"redis_db"`
	KeyPrefix     string        `env:"CACHE_KEY_PREFIX" yaml:"key_prefix"`
	OpTimeout     time.Duration `env:"CACHE_OP_TIMEOUT" yaml:"op_timeout"`
}

// Options converts the config into the cache constructor options.
func (c *CacheConfig) Options() cache.Options {
	opts := cache.Options{Backend: c.Backend}
	if c.Backend == cache.RedisBackend {
		opts.Redis = &cache.RedisOptions{
			Addr:      c.RedisAddr,
			Password:  c.RedisPassword,
			DB:        c.RedisDB,
			KeyPrefix: c.KeyPrefix,
			OpTimeout: c.OpTimeout,
		}
	}
	return opts
}

func (c *CacheConfig) Validate() error {
	if c.Backend == cache.RedisBackend && c.RedisAddr == "" {
		return errors.New("redis cache backend requires REDIS_ADDR")
	}
	return nil
}

type Config struct {
	AppHost    string `env:"APP_HOST" yaml:"host"`
	AppPort    string `env:"APP_PORT" yaml:"port" validate:"required"`
	Env        string `env:"APP_ENV" yaml:"env" validate:"required"`
	Version    string `env:"APP_VERSION" yaml:"version"`
	LogLevel   string `env:"LOG_LEVEL" yaml:"log_level"`
	CorsOrigin string `env:"CORS_ORIGIN" yaml:"cors_origin"`

	DB            database.Config      `yaml:"database"`
	Cache         CacheConfig          `yaml:"cache"`
	RestCountries restcountries.Config `yaml:"restcountries"`
	Explore       explorer.Config      `yaml:"explore"`
	Favorites     favorites.Config     `yaml:"favorites"`
	User          user.Config          `yaml:"user"`
}

func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// Addr is the listen address of the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.AppHost, c.AppPort)
}

// Validate runs the module level checks that struct tags cannot express.
func (c *Config) Validate() error {
	checks := []struct {
		name string
		fn   func() error
	}{
		{"database", c.DB.Validate},
		{"cache", c.Cache.Validate},
		{"restcountries", c.RestCountries.Validate},
		{"explore", c.Explore.Validate},
		{"user", c.User.Validate},
	}
	for _, check := range checks {
		if err := check.fn(); err != nil {
			return fmt.Errorf("%s config: %w", check.name, err)
		}
	}
	return nil
}

func DefaultConfig() *Config {
	return &Config{
		AppHost:       "localhost",
		AppPort:       "8080",
		Env:           EnvDevelopment,
		Version:       "1.0.0",
		LogLevel:      "info",
		Cache:         CacheConfig{Backend: cache.MemoryBackend, OpTimeout: 100 * time.Millisecond},
		RestCountries: *restcountries.DefaultConfig(),
		Explore:       *explorer.DefaultConfig(),
		Favorites:     *favorites.GetDefaultConfig(),
		User:          *user.GetDefaultConfig(),
	}
}

// LoadConfig loads the application configuration from the environment, an optional file
// named by the -config flag in args, and DefaultConfig for anything left unset.
func LoadConfig(ctx context.Context, args []string) (*Config, error) {
	fs := flag.NewFlagSet("atlas-api", flag.ContinueOnError)
	c := &Config{}
	err := nexus.NewLoader(
		nexus.WithFileFlag("config", fs, args),
		nexus.WithDefaults(DefaultConfig()),
	).Load(ctx, c)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}
