package ports

import (
	"context"
	"time"

	"github.com/success-cli/success/internal/domain"
)

// MCPStateProvider provides archive state to the MCP server.
// This is a driven port (implemented by the services layer).
type MCPStateProvider interface {
	// ListGoals returns goals, optionally filtered by the reward flag.
	ListGoals(ctx context.Context, isReward *bool) ([]*domain.Goal, error)

	// SearchGoals fuzzy-matches goals by name.
	SearchGoals(ctx context.Context, query string, isReward *bool) ([]*domain.Goal, error)

	// DaySessions returns the sessions of one calendar day.
	DaySessions(ctx context.Context, day time.Time) ([]*domain.Session, error)

	// RecentSessions returns the most recent sessions, newest last.
	RecentSessions(ctx context.Context, limit int) ([]*domain.Session, error)

	// GetNote returns the note text for a goal.
	GetNote(ctx context.Context, goalID string) (string, error)

	// EditNote replaces the note text for a goal.
	EditNote(ctx context.Context, goalID, text string) error
}
