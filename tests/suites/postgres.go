package suites

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/golang-migrate/migrate/v4"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"

	"github.com/joefazee/atlas/app/database"

	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
)

const (
	postgresImage    = "postgres:17.5-alpine3.21"
	postgresPort     = "5432/tcp"
	postgresDatabase = "atlas_test"
	postgresUser     = "atlas"
	postgresPassword = "atlas-test-password"
)

// PostgresContainer is a throwaway postgres server together with the config that reaches it.
type PostgresContainer struct {
	testcontainers.Container
	Config database.Config
}

// URL is the connection string in the form golang-migrate expects.
func (pc *PostgresContainer) URL() string {
	return postgresURL(pc.Config.Host, pc.Config.Port)
}

func postgresURL(host, port string) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		postgresUser, postgresPassword, host, port, postgresDatabase)
}

func NewPostgresContainer(ctx context.Context) (*PostgresContainer, error) {
	req := testcontainers.ContainerRequest{
		Image:        postgresImage,
		ExposedPorts: []string{postgresPort},
		Cmd:          []string{"postgres", "-c", "fsync=off"},
		Env: map[string]string{
			"POSTGRES_DB":       postgresDatabase,
			"POSTGRES_USER":     postgresUser,
			"POSTGRES_PASSWORD": postgresPassword,
		},
		WaitingFor: wait.ForSQL(postgresPort, "postgres", func(host string, port nat.Port) string {
			return postgresURL(host, port.Port())
		}).WithStartupTimeout(30 * time.Second).WithQuery("SELECT 1"),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start postgres container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get container host: %w", err)
	}
	mapped, err := container.MappedPort(ctx, "5432")
	if err != nil {
		return nil, fmt.Errorf("failed to get container port: %w", err)
	}

	return &PostgresContainer{
		Container: container,
		Config: database.Config{
			Driver:   database.DriverPostgres,
			Host:     host,
			Port:     mapped.Port(),
			User:     postgresUser,
			Password: postgresPassword,
			Database: postgresDatabase,
		},
	}, nil
}

// RepositoryTestSuite runs a suite against a real postgres server. The schema comes from
// the SQL files under migrations/ when AutoMigrate is set, and every table except the
// migration bookkeeping is emptied before each test.
type RepositoryTestSuite struct {
	suite.Suite
	Container      *PostgresContainer
	DB             *gorm.DB
	AutoMigrate    bool
	MigrationsPath string
}

func (suite *RepositoryTestSuite) SetupSuite() {
	if testing.Short() {
		suite.T().Skip("Skipping database integration tests in short mode")
	}

	if suite.MigrationsPath == "" {
		suite.MigrationsPath = findMigrationsPath()
	}

	container, err := NewPostgresContainer(context.Background())
	suite.Require().NoError(err)
	suite.Container = container
	suite.T().Cleanup(func() { _ = container.Terminate(context.Background()) })

	db, err := database.New(&container.Config)
	suite.Require().NoError(err, "open gorm connection")
	suite.DB = db
	suite.T().Cleanup(func() { _ = database.Close(db) })

	if suite.AutoMigrate {
		suite.Require().NoError(suite.RunMigrations())
	}
}

func findMigrationsPath() string {
	wd, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(wd, "go.mod")); err == nil {
			return filepath.Join(wd, "migrations")
		}
		parent := filepath.Dir(wd)
		if parent == wd {
			return ""
		}
		wd = parent
	}
}

func (suite *RepositoryTestSuite) RunMigrations() error {
	if _, err := os.Stat(suite.MigrationsPath); err != nil {
		return fmt.Errorf("migrations path %q: %w", suite.MigrationsPath, err)
	}

	m, err := migrate.New("file://"+suite.MigrationsPath, suite.Container.URL())
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}
	defer func() { _, _ = m.Close() }()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

func (suite *RepositoryTestSuite) BeforeTest(_, _ string) {
	if suite.DB == nil {
		return
	}

	var tables []string
	suite.DB.Raw(`
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = 'public'
		AND table_type = 'BASE TABLE'
		AND table_name <> 'schema_migrations'
	`).Scan(&tables)

	for _, table := range tables {
		suite.DB.Exec(fmt.Sprintf(`DELETE FROM %q`, table))
	}
}

func (suite *RepositoryTestSuite) CountRecords(table string) int64 {
	var c int64
	suite.DB.Table(table).Count(&c)
	return c
}

func (suite *RepositoryTestSuite) AssertNoDBError(err error, args ...interface{}) {
	suite.Assert().NoError(err, args...)
}
