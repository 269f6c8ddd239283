package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/success-cli/success/internal/domain"
	"github.com/success-cli/success/internal/ports"
)

// sessionRepository implements ports.SessionRepository using SQLite.
type sessionRepository struct {
	db *sql.DB
}

// newSessionRepository creates a new session repository.
func newSessionRepository(db *sql.DB) ports.SessionRepository {
	return &sessionRepository{db: db}
}

// Save persists a completed session to storage.
func (r *sessionRepository) Save(ctx context.Context, session *domain.Session) error {
	query := `
		INSERT INTO sessions (id, goal_id, label, started_at, duration_ms, is_reward, quantity)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	var quantity sql.NullInt64
	if session.Quantity != nil {
		quantity = sql.NullInt64{Int64: int64(*session.Quantity), Valid: true}
	}

	_, err := r.db.ExecContext(ctx, query,
		session.ID,
		session.GoalID,
		session.Label,
		session.StartedAt,
		session.Duration.Milliseconds(),
		session.IsReward,
		quantity,
	)

	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

// FindByDay retrieves the sessions that started on the given calendar
// day, ordered by start time.
func (r *sessionRepository) FindByDay(ctx context.Context, day time.Time) ([]*domain.Session, error) {
	start := domain.DayOf(day)
	end := start.Add(24 * time.Hour)

	query := `
		SELECT id, goal_id, label, started_at, duration_ms, is_reward, quantity
		FROM sessions
		WHERE started_at >= ? AND started_at < ?
		ORDER BY started_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions by day: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return r.scanSessions(rows)
}

// FindBetween retrieves sessions within an optional time range,
// ordered by start time.
func (r *sessionRepository) FindBetween(ctx context.Context, start, end *time.Time) ([]*domain.Session, error) {
	query := `
		SELECT id, goal_id, label, started_at, duration_ms, is_reward, quantity
		FROM sessions
		WHERE 1=1
	`
	var args []interface{}

	if start != nil {
		query += ` AND started_at >= ?`
		args = append(args, *start)
	}
	if end != nil {
		query += ` AND started_at < ?`
		args = append(args, *end)
	}
	query += ` ORDER BY started_at ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return r.scanSessions(rows)
}

// FindLastForGoal returns the most recently started session for a
// goal, or nil when the goal has no history.
func (r *sessionRepository) FindLastForGoal(ctx context.Context, goalID string) (*domain.Session, error) {
	query := `
		SELECT id, goal_id, label, started_at, duration_ms, is_reward, quantity
		FROM sessions
		WHERE goal_id = ?
		ORDER BY started_at DESC
		LIMIT 1
	`

	var session domain.Session
	var goalRef sql.NullString
	var durationMS int64
	var quantity sql.NullInt64

	err := r.db.QueryRowContext(ctx, query, goalID).Scan(
		&session.ID,
		&goalRef,
		&session.Label,
		&session.StartedAt,
		&durationMS,
		&session.IsReward,
		&quantity,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find last session: %w", err)
	}

	session.GoalID = goalRef.String
	session.Duration = time.Duration(durationMS) * time.Millisecond
	if quantity.Valid {
		q := int(quantity.Int64)
		session.Quantity = &q
	}

	return &session, nil
}

// scanSessions scans multiple session rows.
func (r *sessionRepository) scanSessions(rows *sql.Rows) ([]*domain.Session, error) {
	var sessions []*domain.Session

	for rows.Next() {
		var session domain.Session
		// goal_id may have been nulled by a goal deletion cascading
		// through ON DELETE SET NULL.
		var goalRef sql.NullString
		var durationMS int64
		var quantity sql.NullInt64

		err := rows.Scan(
			&session.ID,
			&goalRef,
			&session.Label,
			&session.StartedAt,
			&durationMS,
			&session.IsReward,
			&quantity,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}

		session.GoalID = goalRef.String
		session.Duration = time.Duration(durationMS) * time.Millisecond
		if quantity.Valid {
			q := int(quantity.Int64)
			session.Quantity = &q
		}

		sessions = append(sessions, &session)
	}

	return sessions, rows.Err()
}
