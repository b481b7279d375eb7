package database

import (
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gLogger "gorm.io/gorm/logger"

	"github.com/joefazee/atlas/models"

	// import necessary for gorm to recognize the postgres driver
	_ "github.com/lib/pq"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Driver   string `env:"DB_DRIVER" env-default:"sqlite" yaml:"driver"`
	Path     string `env:"DB_PATH" env-default:"atlas.db" yaml:"path"`
	Host     string `env:"DB_HOST" yaml:"host"`
	Port     string `env:"DB_PORT" env-default:"5432" yaml:"port"`
	User     string `env:"DB_USER" yaml:"user"`
	Password string `env:"DB_PASSWORD" yaml:"password" secret:"true"`
	Database string `env:"DB_NAME" yaml:"name"`
	UseSSL   bool   `env:"DB_SSL_MODE" yaml:"ssl"`
	LogQuery bool   `env:"DB_LOG_QUERY" yaml:"log_query"`
}

func (c *Config) Validate() error {
	switch c.Driver {
	case DriverPostgres:
		if c.Host == "" ||
			c.Password == "" || c.Database == "" || c.User == "" {
			return models.ErrDatabaseCredentialNotConfigured
		}
	case DriverSQLite, "":
		if c.Path == "" {
			return models.ErrDatabaseCredentialNotConfigured
		}
	default:
		return fmt.Errorf("%w: %q", models.ErrUnsupportedDatabaseDriver, c.Driver)
	}
	return nil
}

// DSN returns the connection string for the configured driver.
func (c *Config) DSN() string {
	if c.Driver != DriverPostgres {
		return c.Path
	}

	SSLMode := "disable"
	if c.UseSSL {
		SSLMode = "require"
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.Host, c.User, c.Password, c.Database, c.Port, SSLMode)
}

func New(c *Config) (*gorm.DB, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	cfg := &gorm.Config{}
	if !c.LogQuery {
		cfg.Logger = gLogger.Discard
	}

	dialector := sqlite.Open(c.DSN())
	if c.Driver == DriverPostgres {
		dialector = postgres.Open(c.DSN())
	}

	db, err := gorm.Open(dialector, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm connection: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB from gorm: %w", err)
	}

	if c.Driver == DriverPostgres {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(50)
	} else {
		// sqlite allows a single writer and ":memory:" is per connection
		sqlDB.SetMaxOpenConns(1)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

// Migrate creates or updates the tables Atlas owns. Postgres deployments may instead
// apply the SQL files under migrations/.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.StorageEntry{}); err != nil {
		return fmt.Errorf("failed to migrate storage entries: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
