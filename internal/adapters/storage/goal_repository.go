package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"
	"github.com/success-cli/success/internal/domain"
	"github.com/success-cli/success/internal/ports"
)

// goalRepository implements ports.GoalRepository using SQLite.
type goalRepository struct {
	db *sql.DB
}

// newGoalRepository creates a new goal repository.
func newGoalRepository(db *sql.DB) ports.GoalRepository {
	return &goalRepository{db: db}
}

// Save persists a goal to storage.
func (r *goalRepository) Save(ctx context.Context, goal *domain.Goal) error {
	query := `
		INSERT INTO goals (id, name, is_reward, commands, quantity_unit, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	commands := strings.Join(goal.Commands, "\n")

	_, err := r.db.ExecContext(ctx, query,
		goal.ID,
		goal.Name,
		goal.IsReward,
		commands,
		goal.QuantityUnit,
		goal.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to save goal: %w", err)
	}

	return nil
}

// FindByID retrieves a goal by its unique identifier.
func (r *goalRepository) FindByID(ctx context.Context, id string) (*domain.Goal, error) {
	query := `
		SELECT id, name, is_reward, commands, quantity_unit, created_at
		FROM goals
		WHERE id = ?
	`

	var goal domain.Goal
	var commands string

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&goal.ID,
		&goal.Name,
		&goal.IsReward,
		&commands,
		&goal.QuantityUnit,
		&goal.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, domain.ErrGoalNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find goal: %w", err)
	}

	if commands != "" {
		goal.Commands = strings.Split(commands, "\n")
	}

	return &goal, nil
}

// FindAll retrieves goals, optionally filtered by the reward flag.
// Goals with recent sessions come first so pickers surface what the
// user actually works on.
func (r *goalRepository) FindAll(ctx context.Context, isReward *bool) ([]*domain.Goal, error) {
	query := `
		SELECT g.id, g.name, g.is_reward, g.commands, g.quantity_unit, g.created_at
		FROM goals g
		LEFT JOIN (
			SELECT goal_id, MAX(started_at) AS last_session
			FROM sessions
			WHERE goal_id IS NOT NULL
			GROUP BY goal_id
		) s ON g.id = s.goal_id
	`
	var args []interface{}
	if isReward != nil {
		query += ` WHERE g.is_reward = ?`
		args = append(args, *isReward)
	}
	query += ` ORDER BY s.last_session IS NULL, s.last_session DESC, g.created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query goals: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return r.scanGoals(rows)
}

// Search fuzzy-matches goals by name. An empty query returns all
// goals in recency order; otherwise the fuzzy match ranking decides.
func (r *goalRepository) Search(ctx context.Context, query string, isReward *bool) ([]*domain.Goal, error) {
	goals, err := r.FindAll(ctx, isReward)
	if err != nil {
		return nil, fmt.Errorf("failed to get goals for fuzzy search: %w", err)
	}

	if strings.TrimSpace(query) == "" {
		return goals, nil
	}

	names := make([]string, len(goals))
	for i, goal := range goals {
		names[i] = goal.Name
	}

	matches := fuzzy.Find(query, names)

	var result []*domain.Goal
	for _, match := range matches {
		result = append(result, goals[match.Index])
	}

	return result, nil
}

// scanGoals scans multiple goal rows.
func (r *goalRepository) scanGoals(rows *sql.Rows) ([]*domain.Goal, error) {
	var goals []*domain.Goal

	for rows.Next() {
		var goal domain.Goal
		var commands string

		err := rows.Scan(
			&goal.ID,
			&goal.Name,
			&goal.IsReward,
			&commands,
			&goal.QuantityUnit,
			&goal.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}

		if commands != "" {
			goal.Commands = strings.Split(commands, "\n")
		}

		goals = append(goals, &goal)
	}

	return goals, rows.Err()
}
