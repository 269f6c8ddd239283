// Package storage provides the SQLite and filesystem implementations
// of the storage ports. Goals and sessions live in a SQLite database
// inside the archive directory; notes live next to it as plain
// Markdown files so external editors can open them.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/success-cli/success/internal/ports"
	_ "modernc.org/sqlite"
)

// DatabaseFile is the name of the SQLite database inside the archive
// directory.
const DatabaseFile = "success.db"

// sqliteStorage implements the ports.Storage interface using SQLite
// plus a file-backed note store.
type sqliteStorage struct {
	db          *sql.DB
	goalRepo    ports.GoalRepository
	sessionRepo ports.SessionRepository
	noteStore   ports.NoteStore
}

// Ensure sqliteStorage implements ports.Storage.
var _ ports.Storage = (*sqliteStorage)(nil)

// New opens the archive at archiveDir, creating the directory and
// database on first use.
func New(archiveDir string) (ports.Storage, error) {
	if err := os.MkdirAll(archiveDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create archive directory: %w", err)
	}
	return open(filepath.Join(archiveDir, DatabaseFile), filepath.Join(archiveDir, "notes"))
}

// NewMemory creates an in-memory storage instance for testing. Notes
// are stored under notesDir.
func NewMemory(notesDir string) (ports.Storage, error) {
	return open(":memory:", notesDir)
}

func open(dbPath, notesDir string) (ports.Storage, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys and WAL mode for better performance
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	storage := &sqliteStorage{
		db:          db,
		goalRepo:    newGoalRepository(db),
		sessionRepo: newSessionRepository(db),
		noteStore:   newNoteStore(notesDir),
	}

	if err := storage.Migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return storage, nil
}

// Goals returns the goal repository.
func (s *sqliteStorage) Goals() ports.GoalRepository {
	return s.goalRepo
}

// Sessions returns the session repository.
func (s *sqliteStorage) Sessions() ports.SessionRepository {
	return s.sessionRepo
}

// Notes returns the note store.
func (s *sqliteStorage) Notes() ports.NoteStore {
	return s.noteStore
}

// Close closes the database connection.
func (s *sqliteStorage) Close() error {
	return s.db.Close()
}

// Migrate creates the database schema.
func (s *sqliteStorage) Migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS goals (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		is_reward INTEGER NOT NULL,
		commands TEXT,
		quantity_unit TEXT,
		created_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_goals_reward ON goals(is_reward);

	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		goal_id TEXT,
		label TEXT NOT NULL,
		started_at DATETIME NOT NULL,
		duration_ms INTEGER NOT NULL,
		is_reward INTEGER NOT NULL,
		quantity INTEGER,
		FOREIGN KEY (goal_id) REFERENCES goals(id) ON DELETE SET NULL
	);

	CREATE INDEX IF NOT EXISTS idx_sessions_goal ON sessions(goal_id);
	CREATE INDEX IF NOT EXISTS idx_sessions_started ON sessions(started_at);
	`

	_, err := s.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	return nil
}
