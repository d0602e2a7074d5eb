package database

import (
	"context"
	"embed"
	"os"
	"path/filepath"
	"testing"

	"github.com/nerrad567/smarthome-core/internal/infrastructure/config"
)

//go:embed testdata/*.sql
var testMigrationsFS embed.FS

// useTestMigrations points the runner at testdata for the duration of t.
func useTestMigrations(t *testing.T) {
	t.Helper()
	origFS, origDir := MigrationsFS, MigrationsDir
	MigrationsFS, MigrationsDir = testMigrationsFS, "testdata"
	t.Cleanup(func() {
		MigrationsFS, MigrationsDir = origFS, origDir
	})
}

func openMigrated(t *testing.T) *DB {
	t.Helper()
	useTestMigrations(t)
	db, err := OpenMemory(context.Background())
	if err != nil {
		t.Fatalf("OpenMemory() error = %v", err)
	}
	t.Cleanup(func() { db.Close() }) //nolint:errcheck // test cleanup
	return db
}

func TestOpenFile(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "home.db")

	db, err := Open(config.DatabaseConfig{Path: dbPath, WALMode: true, BusyTimeout: 5})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer db.Close() //nolint:errcheck // test cleanup

	if err := db.HealthCheck(context.Background()); err != nil {
		t.Errorf("HealthCheck() error = %v", err)
	}
	if _, err := os.Stat(dbPath); err != nil {
		t.Errorf("database file missing: %v", err)
	}
	if db.Path() != dbPath {
		t.Errorf("Path() = %q, want %q", db.Path(), dbPath)
	}
}

func TestClose(t *testing.T) {
	db, err := Open(config.DatabaseConfig{Path: MemoryPath})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := db.HealthCheck(context.Background()); err == nil {
		t.Error("HealthCheck() on closed db should fail")
	}
}

func TestMigrateAndStatus(t *testing.T) {
	db := openMigrated(t)
	ctx := context.Background()

	applied, pending, err := db.MigrationStatus(ctx)
	if err != nil {
		t.Fatalf("MigrationStatus() error = %v", err)
	}
	if len(applied) != 2 || len(pending) != 0 {
		t.Fatalf("applied = %d, pending = %d, want 2, 0", len(applied), len(pending))
	}

	// Running again is a no-op.
	if err := db.Migrate(ctx); err != nil {
		t.Fatalf("second Migrate() error = %v", err)
	}

	if _, err := db.ExecContext(ctx, "INSERT INTO widgets (id, name) VALUES ('w1', 'bolt')"); err != nil {
		t.Fatalf("insert error = %v", err)
	}
}

func TestMigrateDown(t *testing.T) {
	db := openMigrated(t)
	ctx := context.Background()

	if err := db.MigrateDown(ctx); err != nil {
		t.Fatalf("MigrateDown() error = %v", err)
	}
	applied, pending, err := db.MigrationStatus(ctx)
	if err != nil {
		t.Fatalf("MigrationStatus() error = %v", err)
	}
	if len(applied) != 1 || len(pending) != 1 || pending[0].Name != "parts" {
		t.Errorf("after down: applied = %d, pending = %+v", len(applied), pending)
	}
}

func TestConstraintClassification(t *testing.T) {
	db := openMigrated(t)
	ctx := context.Background()

	if _, err := db.ExecContext(ctx, "INSERT INTO widgets (id, name) VALUES ('w1', 'bolt')"); err != nil {
		t.Fatalf("insert error = %v", err)
	}

	_, err := db.ExecContext(ctx, "INSERT INTO widgets (id, name) VALUES ('w1', 'nut')")
	if !IsUniqueViolation(err) {
		t.Errorf("duplicate primary key: IsUniqueViolation(%v) = false", err)
	}

	_, err = db.ExecContext(ctx, "INSERT INTO widgets (id, name) VALUES ('w2', 'bolt')")
	if !IsUniqueViolation(err) {
		t.Errorf("duplicate unique column: IsUniqueViolation(%v) = false", err)
	}

	_, err = db.ExecContext(ctx, "INSERT INTO parts (id, widget_id) VALUES ('p1', 'missing')")
	if !IsForeignKeyViolation(err) {
		t.Errorf("dangling reference: IsForeignKeyViolation(%v) = false", err)
	}
	if IsUniqueViolation(nil) || IsForeignKeyViolation(nil) {
		t.Error("nil error should not classify")
	}
}

func TestParseMigrationFilename(t *testing.T) {
	tests := []struct {
		file        string
		wantVersion string
		wantName    string
		wantUp      bool
		wantOK      bool
	}{
		{"20260118_120000_initial.up.sql", "20260118_120000", "initial", true, true},
		{"20260118_120000_initial.down.sql", "20260118_120000", "initial", false, true},
		{"20260118_120000_add_sensor_values.up.sql", "20260118_120000", "add_sensor_values", true, true},
		{"20260118_120000_initial.sql", "", "", false, false},
		{"readme.md", "", "", false, false},
		{"2026_12_x.up.sql", "", "", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			version, name, isUp, ok := parseMigrationFilename(tt.file)
			if version != tt.wantVersion || name != tt.wantName || isUp != tt.wantUp || ok != tt.wantOK {
				t.Errorf("parseMigrationFilename(%q) = %q, %q, %v, %v", tt.file, version, name, isUp, ok)
			}
		})
	}
}
