// Package ports defines the interfaces (driven and driving ports)
// for the Success application following hexagonal architecture
// principles. These interfaces define the contracts between the core
// and external infrastructure.
package ports

import (
	"context"
	"time"

	"github.com/success-cli/success/internal/domain"
)

// GoalRepository defines the interface for goal persistence.
// This is a driven port (implemented by adapters).
type GoalRepository interface {
	// Save persists a goal to storage.
	Save(ctx context.Context, goal *domain.Goal) error

	// FindByID retrieves a goal by its unique identifier.
	FindByID(ctx context.Context, id string) (*domain.Goal, error)

	// FindAll retrieves all goals, optionally filtered by the reward flag.
	FindAll(ctx context.Context, isReward *bool) ([]*domain.Goal, error)

	// Search fuzzy-matches goals by name, biased toward the given
	// reward flag and ordered by most recent session.
	Search(ctx context.Context, query string, isReward *bool) ([]*domain.Goal, error)
}

// SessionRepository defines the interface for session persistence.
// This is a driven port (implemented by adapters).
type SessionRepository interface {
	// Save persists a completed session to storage.
	Save(ctx context.Context, session *domain.Session) error

	// FindByDay retrieves the sessions that started on the given
	// calendar day, ordered by start time.
	FindByDay(ctx context.Context, day time.Time) ([]*domain.Session, error)

	// FindBetween retrieves sessions within an optional time range,
	// ordered by start time.
	FindBetween(ctx context.Context, start, end *time.Time) ([]*domain.Session, error)

	// FindLastForGoal returns the most recently started session for a
	// goal, or nil when the goal has no history.
	FindLastForGoal(ctx context.Context, goalID string) (*domain.Session, error)
}

// NoteStore defines the interface for per-goal note text.
// This is a driven port (implemented by adapters).
type NoteStore interface {
	// Get returns the note text for a goal. A missing note reads as
	// empty.
	Get(goalID string) (string, error)

	// Put replaces the note text for a goal.
	Put(goalID, text string) error

	// Path returns the on-disk location of the note, for handing to
	// an external editor.
	Path(goalID string) string
}

// Storage is the combined repository interface.
// This is a driven port (implemented by adapters).
type Storage interface {
	// Goals provides access to goal operations.
	Goals() GoalRepository

	// Sessions provides access to session operations.
	Sessions() SessionRepository

	// Notes provides access to note operations.
	Notes() NoteStore

	// Close closes the storage connection.
	Close() error

	// Migrate runs database migrations.
	Migrate() error
}
