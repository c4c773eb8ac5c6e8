package sqlite

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// Open and Migrate both resolve driver name "sqlite". A second registration
// of that name panics at init, so exactly one sqlite driver may be linked.
func TestSqliteDriverRegisteredOnce(t *testing.T) {
	registered := 0
	for _, name := range sql.Drivers() {
		if name == "sqlite" {
			registered++
		}
	}
	require.Equal(t, 1, registered)
}

func TestOpenAndMigrate(t *testing.T) {
	migrationsDir := filepath.Join("..", "..", "..", "..", "db", "migrations")

	db, err := Open(filepath.Join(t.TempDir(), "warehouse.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, Migrate(db, migrationsDir))
	// Reruns against a current schema must stay a no-op.
	require.NoError(t, Migrate(db, migrationsDir))

	var count int
	require.NoError(t, db.Get(&count, "SELECT COUNT(*) FROM matches"))
	require.Zero(t, count)
}
