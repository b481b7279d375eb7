package user

import (
	"errors"
	"time"

	"golang.org/x/crypto/chacha20poly1305"
)

const developmentSymmetricKey = "12345678901234567890123456789012"

type Config struct {
	SymmetricKey     string        `env:"SYMMETRIC_KEY" yaml:"symmetric_key" secret:"true"`
	SessionDuration  time.Duration `env:"SESSION_DURATION" yaml:"session_duration"`
	IdentityCacheTTL time.Duration `env:"IDENTITY_CACHE_TTL" yaml:"identity_cache_ttl"`
	SecureCookie     bool          `env:"SESSION_COOKIE_SECURE" yaml:"secure_cookie"`
}

func (c *Config) Validate() error {
	if c.SymmetricKey == "" {
		return errors.New("symmetric key must be set")
	}
	if len(c.SymmetricKey) != chacha20poly1305.KeySize {
		return errors.New("symmetric key must be exactly 32 characters")
	}
	if c.SessionDuration <= 0 {
		return errors.New("session duration must be positive")
	}
	if c.IdentityCacheTTL < 0 {
		return errors.New("identity cache ttl cannot be negative")
	}
	return nil
}

func GetDefaultConfig() *Config {
	return &Config{
		SymmetricKey:     developmentSymmetricKey,
		SessionDuration:  7 * 24 * time.Hour,
		IdentityCacheTTL: 5 * time.Minute,
	}
}
