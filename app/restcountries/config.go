package restcountries

import (
	"errors"
	"time"
)

const (
	DefaultBaseURL   = "https://restcountries.com/v3.1"
	DefaultUserAgent = "atlas/1.0"
	DefaultTimeout   = 10 * time.Second
)

// DefaultListFields is the projection requested by the list endpoints. The upstream
// caps /all at ten fields.
var DefaultListFields = []string{
	"name", "cca2", "cca3", "region", "subregion", "languages",
	"population", "area", "capital", "flags",
}

type Config struct {
	BaseURL        string        `env:"RESTCOUNTRIES_BASE_URL" yaml:"base_url" validate:"required,url"`
	Timeout        time.Duration `env:"RESTCOUNTRIES_TIMEOUT" yaml:"timeout"`
	UserAgent      string        `env:"RESTCOUNTRIES_USER_AGENT" yaml:"user_agent"`
	ListFields     []string      `env:"RESTCOUNTRIES_FIELDS" env-separator:"," yaml:"fields"`
	MaxConcurrency int           `env:"RESTCOUNTRIES_MAX_CONCURRENCY" yaml:"max_concurrency"`
}

func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return errors.New("restcountries base url must be set")
	}
	if c.Timeout < 0 {
		return errors.New("restcountries timeout cannot be negative")
	}
	if len(c.ListFields) > 10 {
		return errors.New("restcountries accepts at most 10 list fields")
	}
	return nil
}

func DefaultConfig() *Config {
	fields := make([]string, len(DefaultListFields))
	copy(fields, DefaultListFields)
	return &Config{
		BaseURL:        DefaultBaseURL,
		Timeout:        DefaultTimeout,
		UserAgent:      DefaultUserAgent,
		ListFields:     fields,
		MaxConcurrency: 4,
	}
}
