package favorites

// Config controls how favorites are partitioned. With PerUser false every identity
// of a deployment reads and writes the same list.
type Config struct {
	PerUser bool `env:"FAVORITES_PER_USER" yaml:"per_user"`
}

func GetDefaultConfig() *Config {
	return &Config{}
}
