// Package dbtest opens migrated in-memory databases for repository tests.
package dbtest

import (
	"context"
	"testing"

	"github.com/nerrad567/smarthome-core/internal/infrastructure/database"
	_ "github.com/nerrad567/smarthome-core/migrations" // registers the embedded schema
)

// Open returns an in-memory database with the full schema applied. It is
// closed when t finishes.
func Open(t testing.TB) *database.DB {
	t.Helper()

	db, err := database.OpenMemory(context.Background())
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() {
		db.Close() //nolint:errcheck // test cleanup
	})
	return db
}

// Exec runs seed statements, failing t on error.
func Exec(t testing.TB, db *database.DB, stmts ...string) {
	t.Helper()
	for _, s := range stmts {
		if _, err := db.ExecContext(context.Background(), s); err != nil {
			t.Fatalf("seeding test database: %v\n%s", err, s)
		}
	}
}
