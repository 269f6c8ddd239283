// Package services contains the application services sitting between
// adapters and the storage ports.
package services

import (
	"context"
	"time"

	"github.com/success-cli/success/internal/domain"
	"github.com/success-cli/success/internal/ports"
)

// StateService exposes read and write access to the archive for
// out-of-process consumers.
type StateService struct {
	storage ports.Storage
}

// Ensure StateService implements MCPStateProvider.
var _ ports.MCPStateProvider = (*StateService)(nil)

// NewStateService creates a new state service.
func NewStateService(storage ports.Storage) *StateService {
	return &StateService{storage: storage}
}

// ListGoals implements ports.MCPStateProvider.
func (s *StateService) ListGoals(ctx context.Context, isReward *bool) ([]*domain.Goal, error) {
	return s.storage.Goals().FindAll(ctx, isReward)
}

// SearchGoals implements ports.MCPStateProvider.
func (s *StateService) SearchGoals(ctx context.Context, query string, isReward *bool) ([]*domain.Goal, error) {
	return s.storage.Goals().Search(ctx, query, isReward)
}

// DaySessions implements ports.MCPStateProvider.
func (s *StateService) DaySessions(ctx context.Context, day time.Time) ([]*domain.Session, error) {
	return s.storage.Sessions().FindByDay(ctx, day)
}

// RecentSessions implements ports.MCPStateProvider. The window is the
// last seven days, trimmed to limit with the newest kept.
func (s *StateService) RecentSessions(ctx context.Context, limit int) ([]*domain.Session, error) {
	since := time.Now().AddDate(0, 0, -7)
	sessions, err := s.storage.Sessions().FindBetween(ctx, &since, nil)
	if err != nil {
		return nil, err
	}

	if limit > 0 && len(sessions) > limit {
		return sessions[len(sessions)-limit:], nil
	}
	return sessions, nil
}

// GetNote implements ports.MCPStateProvider.
func (s *StateService) GetNote(ctx context.Context, goalID string) (string, error) {
	if _, err := s.storage.Goals().FindByID(ctx, goalID); err != nil {
		return "", err
	}
	return s.storage.Notes().Get(goalID)
}

// EditNote implements ports.MCPStateProvider.
func (s *StateService) EditNote(ctx context.Context, goalID, text string) error {
	if _, err := s.storage.Goals().FindByID(ctx, goalID); err != nil {
		return err
	}
	return s.storage.Notes().Put(goalID, text)
}
