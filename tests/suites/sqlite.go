package suites

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/joefazee/atlas/app/database"
)

// NewSQLiteDB opens a migrated in-memory database that lives for the duration of t.
func NewSQLiteDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := database.New(&database.Config{Driver: database.DriverSQLite, Path: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() { _ = database.Close(db) })
	return db
}
