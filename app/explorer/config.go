package explorer

import (
	"errors"
	"time"
)

type Config struct {
	DebounceInterval time.Duration `env:"EXPLORE_DEBOUNCE" yaml:"debounce"`
	IdleTTL          time.Duration `env:"EXPLORE_IDLE_TTL" yaml:"idle_ttl"`
	SweepInterval    time.Duration `env:"EXPLORE_SWEEP_INTERVAL" yaml:"sweep_interval"`
	MaxSessions      int           `env:"EXPLORE_MAX_SESSIONS" yaml:"max_sessions"`
	LoadTimeout      time.Duration `env:"EXPLORE_LOAD_TIMEOUT" yaml:"load_timeout"`
}

func (c *Config) Validate() error {
	if c.DebounceInterval < 0 || c.IdleTTL < 0 || c.SweepInterval < 0 || c.LoadTimeout < 0 {
		return errors.New("explore durations cannot be negative")
	}
	if c.MaxSessions < 0 {
		return errors.New("explore max sessions cannot be negative")
	}
	return nil
}

func DefaultConfig() *Config {
	return &Config{
		DebounceInterval: 300 * time.Millisecond,
		IdleTTL:          30 * time.Minute,
		SweepInterval:    time.Minute,
		MaxSessions:      1000,
		LoadTimeout:      15 * time.Second,
	}
}
