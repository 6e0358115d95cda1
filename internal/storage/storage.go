// Package storage defines the persistence interfaces for world definitions
// and run states. The rules engine never touches storage directly: callers
// load a state, run a resolver, and persist the replacement. Concurrency
// control lives here, not in the engine, via optimistic versioning on run
// updates.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/louisbranch/gridfall/internal/run"
	"github.com/louisbranch/gridfall/internal/world"
)

// ErrNotFound indicates a requested record is missing.
var ErrNotFound = errors.New("record not found")

// ErrVersionConflict indicates a run update lost an optimistic-version
// race. The caller should reload and retry.
var ErrVersionConflict = errors.New("run state version conflict")

// WorldRecord is a stored world definition.
type WorldRecord struct {
	ID         string
	Definition world.Definition
	CreatedAt  time.Time
}

// RunRecord is a stored run state plus its optimistic version.
type RunRecord struct {
	ID        string
	WorldID   string
	State     run.State
	Version   int64
	UpdatedAt time.Time
}

// WorldStore persists world definition records.
type WorldStore interface {
	PutWorld(ctx context.Context, record WorldRecord) error
	GetWorld(ctx context.Context, id string) (WorldRecord, error)
}

// RunStore persists run state records.
type RunStore interface {
	CreateRun(ctx context.Context, record RunRecord) error
	GetRun(ctx context.Context, id string) (RunRecord, error)
	// UpdateRun replaces the stored state when expectedVersion matches the
	// stored version, bumping it by one. It returns ErrVersionConflict when
	// another writer got there first.
	UpdateRun(ctx context.Context, id string, state run.State, expectedVersion int64) (RunRecord, error)
}
