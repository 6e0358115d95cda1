// Package sqlite provides the SQLite-backed implementation of the gridfall
// storage interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/louisbranch/gridfall/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/gridfall/internal/run"
	"github.com/louisbranch/gridfall/internal/storage"
	"github.com/louisbranch/gridfall/internal/storage/sqlite/migrations"
	"github.com/louisbranch/gridfall/internal/world"
)

// Store persists worlds and run states in SQLite.
type Store struct {
	sqlDB *sql.DB
	clock func() time.Time
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite store at the provided path and applies embedded
// migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("apply migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB, clock: time.Now}, nil
}

// Close closes the underlying SQLite database.
// Close is nil-safe so callers can defer it in all startup paths.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// PutWorld stores or replaces a world definition record.
func (s *Store) PutWorld(ctx context.Context, record storage.WorldRecord) error {
	data, err := json.Marshal(record.Definition)
	if err != nil {
		return fmt.Errorf("marshal world definition: %w", err)
	}
	createdAt := record.CreatedAt
	if createdAt.IsZero() {
		createdAt = s.clock()
	}
	_, err = s.sqlDB.ExecContext(ctx, `
INSERT INTO worlds (id, definition_json, created_at)
VALUES (?, ?, ?)
ON CONFLICT (id) DO UPDATE SET definition_json = excluded.definition_json
`, record.ID, data, toMillis(createdAt))
	if err != nil {
		return fmt.Errorf("put world: %w", err)
	}
	return nil
}

// GetWorld loads a world definition record.
func (s *Store) GetWorld(ctx context.Context, id string) (storage.WorldRecord, error) {
	var (
		data      []byte
		createdAt int64
	)
	err := s.sqlDB.QueryRowContext(ctx, `
SELECT definition_json, created_at FROM worlds WHERE id = ?
`, id).Scan(&data, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.WorldRecord{}, storage.ErrNotFound
	}
	if err != nil {
		return storage.WorldRecord{}, fmt.Errorf("get world: %w", err)
	}

	var def world.Definition
	if err := json.Unmarshal(data, &def); err != nil {
		return storage.WorldRecord{}, fmt.Errorf("unmarshal world definition: %w", err)
	}
	return storage.WorldRecord{
		ID:         id,
		Definition: def,
		CreatedAt:  fromMillis(createdAt),
	}, nil
}

// CreateRun stores a new run record at version 1.
func (s *Store) CreateRun(ctx context.Context, record storage.RunRecord) error {
	data, err := run.Marshal(record.State)
	if err != nil {
		return fmt.Errorf("marshal run state: %w", err)
	}
	version := record.Version
	if version == 0 {
		version = 1
	}
	_, err = s.sqlDB.ExecContext(ctx, `
INSERT INTO runs (id, world_id, state_json, version, updated_at)
VALUES (?, ?, ?, ?, ?)
`, record.ID, record.WorldID, data, version, toMillis(s.clock()))
	if err != nil {
		return fmt.Errorf("create run: %w", err)
	}
	return nil
}

// GetRun loads a run record.
func (s *Store) GetRun(ctx context.Context, id string) (storage.RunRecord, error) {
	var (
		worldID   string
		data      []byte
		version   int64
		updatedAt int64
	)
	err := s.sqlDB.QueryRowContext(ctx, `
SELECT world_id, state_json, version, updated_at FROM runs WHERE id = ?
`, id).Scan(&worldID, &data, &version, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.RunRecord{}, storage.ErrNotFound
	}
	if err != nil {
		return storage.RunRecord{}, fmt.Errorf("get run: %w", err)
	}

	state, err := run.Unmarshal(data)
	if err != nil {
		return storage.RunRecord{}, fmt.Errorf("unmarshal run state: %w", err)
	}
	return storage.RunRecord{
		ID:        id,
		WorldID:   worldID,
		State:     state,
		Version:   version,
		UpdatedAt: fromMillis(updatedAt),
	}, nil
}

// UpdateRun replaces the stored state when the expected version matches.
func (s *Store) UpdateRun(ctx context.Context, id string, state run.State, expectedVersion int64) (storage.RunRecord, error) {
	data, err := run.Marshal(state)
	if err != nil {
		return storage.RunRecord{}, fmt.Errorf("marshal run state: %w", err)
	}

	result, err := s.sqlDB.ExecContext(ctx, `
UPDATE runs SET state_json = ?, version = version + 1, updated_at = ?
WHERE id = ? AND version = ?
`, data, toMillis(s.clock()), id, expectedVersion)
	if err != nil {
		return storage.RunRecord{}, fmt.Errorf("update run: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return storage.RunRecord{}, fmt.Errorf("update run rows affected: %w", err)
	}
	if affected == 0 {
		// Distinguish a missing run from a lost version race.
		if _, getErr := s.GetRun(ctx, id); errors.Is(getErr, storage.ErrNotFound) {
			return storage.RunRecord{}, storage.ErrNotFound
		}
		return storage.RunRecord{}, storage.ErrVersionConflict
	}

	return s.GetRun(ctx, id)
}
