package sqlitemigrate

import (
	"database/sql"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"
)

func openDB(t *testing.T) *sql.DB {
	t.Helper()
	sqlDB, err := sql.Open("sqlite", t.TempDir()+"/test.db")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	return sqlDB
}

func TestApplyMigrations(t *testing.T) {
	sqlDB := openDB(t)
	fsys := fstest.MapFS{
		"0001_init.sql": {Data: []byte(`CREATE TABLE things (id TEXT PRIMARY KEY);`)},
		"0002_more.sql": {Data: []byte(`ALTER TABLE things ADD COLUMN label TEXT;`)},
		"notes.txt":     {Data: []byte(`ignored`)},
	}

	if err := ApplyMigrations(sqlDB, fsys); err != nil {
		t.Fatalf("apply: %v", err)
	}

	if _, err := sqlDB.Exec(`INSERT INTO things (id, label) VALUES ('a', 'b')`); err != nil {
		t.Fatalf("migrated schema unusable: %v", err)
	}

	var count int
	if err := sqlDB.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&count); err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	if count != 2 {
		t.Errorf("recorded migrations = %d, want 2", count)
	}
}

func TestApplyMigrations_Idempotent(t *testing.T) {
	sqlDB := openDB(t)
	fsys := fstest.MapFS{
		"0001_init.sql": {Data: []byte(`CREATE TABLE things (id TEXT PRIMARY KEY);`)},
	}

	if err := ApplyMigrations(sqlDB, fsys); err != nil {
		t.Fatalf("first apply: %v", err)
	}
	// A second pass must skip the applied file instead of failing on the
	// existing table.
	if err := ApplyMigrations(sqlDB, fsys); err != nil {
		t.Fatalf("second apply: %v", err)
	}
}

func TestApplyMigrations_BadSQL(t *testing.T) {
	sqlDB := openDB(t)
	fsys := fstest.MapFS{
		"0001_bad.sql": {Data: []byte(`CREATE ELEPHANT;`)},
	}

	if err := ApplyMigrations(sqlDB, fsys); err == nil {
		t.Fatal("expected error for malformed migration")
	}
}

func TestApplyMigrations_NilDB(t *testing.T) {
	if err := ApplyMigrations(nil, fstest.MapFS{}); err == nil {
		t.Fatal("expected error for nil db")
	}
}
