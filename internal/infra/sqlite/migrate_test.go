package sqlite_test

import (
	"database/sql"
	"testing"

	"github.com/matiasleandrokruk/peoplebridge/internal/infra/sqlite"
)

func TestMigrate_Idempotent(t *testing.T) {
	t.Parallel()

	db := mustOpenMemoryDB(t)

	if err := sqlite.MigrateUp(db); err != nil {
		t.Fatalf("MigrateUp() first run error = %v", err)
	}
	if err := sqlite.MigrateUp(db); err != nil {
		t.Fatalf("MigrateUp() second run error = %v; want nil", err)
	}

	version, err := sqlite.MigrationVersion(db)
	if err != nil {
		t.Fatalf("MigrationVersion() error = %v", err)
	}
	if version != 3 {
		t.Errorf("MigrationVersion() = %d; want 3", version)
	}
}

func TestMigrate_TablesCreated(t *testing.T) {
	t.Parallel()

	db, err := sqlite.Open(":memory:")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	for _, table := range []string{"oauth_token", "audit_event"} {
		assertTableExists(t, db, table)
	}
}

func mustOpenMemoryDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sqlite.NewDB(":memory:")
	if err != nil {
		t.Fatalf("NewDB() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func assertTableExists(t *testing.T, db *sql.DB, table string) {
	t.Helper()
	var name string
	err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
	if err != nil {
		t.Fatalf("table %q not found: %v", table, err)
	}
}
