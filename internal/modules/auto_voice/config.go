package auto_voice

import "fmt"

// Registry backends.
const (
	RegistryBackendSQLite = "sqlite"
	RegistryBackendMemory = "memory"
)

// Config holds the auto voice module configuration.
type Config struct {
	RegistryBackend      string `env:"REGISTRY_BACKEND"       envDefault:"sqlite"`
	DatabasePath         string `env:"DATABASE_PATH"          envDefault:"db.sqlite"`
	DatabasePoolSize     int    `env:"DATABASE_POOL_SIZE"     envDefault:"4"`
	PrimaryChannelName   string `env:"PRIMARY_CHANNEL_NAME"   envDefault:"➕ New Session"`
	TemporaryChannelName string `env:"TEMPORARY_CHANNEL_NAME" envDefault:"General"`
	MetricsAddress       string `env:"METRICS_ADDRESS"`
}

func (c *Config) validate() error {
	switch c.RegistryBackend {
	case RegistryBackendSQLite:
		if c.DatabasePath == "" {
			return fmt.Errorf("DATABASE_PATH is required for the %s registry", RegistryBackendSQLite)
		}
	case RegistryBackendMemory:
	default:
		return fmt.Errorf("unknown REGISTRY_BACKEND %q", c.RegistryBackend)
	}
	if c.DatabasePoolSize < 1 {
		return fmt.Errorf("DATABASE_POOL_SIZE must be positive, got %d", c.DatabasePoolSize)
	}
	return nil
}
