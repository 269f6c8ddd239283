package mcp

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/success-cli/success/internal/domain"
)

// mockStateProvider is a mock implementation of ports.MCPStateProvider for testing.
type mockStateProvider struct {
	goals    []*domain.Goal
	sessions []*domain.Session
	notes    map[string]string
}

func (m *mockStateProvider) ListGoals(ctx context.Context, isReward *bool) ([]*domain.Goal, error) {
	var out []*domain.Goal
	for _, g := range m.goals {
		if isReward == nil || g.IsReward == *isReward {
			out = append(out, g)
		}
	}
	return out, nil
}

func (m *mockStateProvider) SearchGoals(ctx context.Context, query string, isReward *bool) ([]*domain.Goal, error) {
	goals, _ := m.ListGoals(ctx, isReward)
	var out []*domain.Goal
	for _, g := range goals {
		if strings.Contains(strings.ToLower(g.Name), strings.ToLower(query)) {
			out = append(out, g)
		}
	}
	return out, nil
}

func (m *mockStateProvider) DaySessions(ctx context.Context, day time.Time) ([]*domain.Session, error) {
	var out []*domain.Session
	for _, s := range m.sessions {
		if s.Day().Equal(domain.DayOf(day)) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *mockStateProvider) RecentSessions(ctx context.Context, limit int) ([]*domain.Session, error) {
	if len(m.sessions) > limit {
		return m.sessions[len(m.sessions)-limit:], nil
	}
	return m.sessions, nil
}

func (m *mockStateProvider) GetNote(ctx context.Context, goalID string) (string, error) {
	if m.notes == nil {
		return "", domain.ErrGoalNotFound
	}
	text, ok := m.notes[goalID]
	if !ok {
		return "", domain.ErrGoalNotFound
	}
	return text, nil
}

func (m *mockStateProvider) EditNote(ctx context.Context, goalID, text string) error {
	if m.notes == nil {
		return domain.ErrGoalNotFound
	}
	m.notes[goalID] = text
	return nil
}

func requestWith(args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: args,
		},
	}
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if result == nil || len(result.Content) == 0 {
		t.Fatal("result has no content")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content is %T, want TextContent", result.Content[0])
	}
	return text.Text
}

func TestNewServer(t *testing.T) {
	mock := &mockStateProvider{}
	server := NewServer(mock)

	if server == nil {
		t.Fatal("NewServer() returned nil")
	}
	if server.stateProvider != mock {
		t.Error("NewServer() did not set state provider correctly")
	}
	if server.server == nil {
		t.Error("NewServer() did not create MCP server")
	}
}

func TestServer_IsRunning(t *testing.T) {
	server := NewServer(&mockStateProvider{})

	if server.IsRunning() {
		t.Error("IsRunning() should return false before Start()")
	}
}

func TestServer_handleListGoals(t *testing.T) {
	read, _ := domain.NewGoal("Read", false, nil, "pages")
	game, _ := domain.NewGoal("Game", true, nil, "")
	mock := &mockStateProvider{goals: []*domain.Goal{read, game}}
	server := NewServer(mock)

	t.Run("unfiltered", func(t *testing.T) {
		result, err := server.handleListGoals(context.Background(), requestWith(nil))
		if err != nil {
			t.Fatalf("handleListGoals() error = %v", err)
		}
		text := resultText(t, result)
		if !strings.Contains(text, "Read") || !strings.Contains(text, "Game") {
			t.Errorf("result missing goals: %s", text)
		}
	})

	t.Run("reward filter", func(t *testing.T) {
		result, err := server.handleListGoals(context.Background(), requestWith(map[string]interface{}{
			"kind": "reward",
		}))
		if err != nil {
			t.Fatalf("handleListGoals() error = %v", err)
		}
		text := resultText(t, result)
		if strings.Contains(text, "Read") {
			t.Errorf("work goal leaked through the reward filter: %s", text)
		}
	})
}

func TestServer_handleSearchGoals_MissingQuery(t *testing.T) {
	server := NewServer(&mockStateProvider{})

	result, err := server.handleSearchGoals(context.Background(), requestWith(map[string]interface{}{}))
	if err != nil {
		t.Fatalf("handleSearchGoals() error = %v", err)
	}
	if !result.IsError {
		t.Error("handleSearchGoals() should return error for missing query")
	}
}

func TestServer_handleDaySessions(t *testing.T) {
	goal, _ := domain.NewGoal("Read", false, nil, "")
	qty := 12
	session := domain.NewSession(goal.ID, "Read", time.Now(), 30*time.Minute, false, &qty)
	mock := &mockStateProvider{sessions: []*domain.Session{session}}
	server := NewServer(mock)

	t.Run("defaults to today", func(t *testing.T) {
		result, err := server.handleDaySessions(context.Background(), requestWith(nil))
		if err != nil {
			t.Fatalf("handleDaySessions() error = %v", err)
		}
		text := resultText(t, result)
		if !strings.Contains(text, `"quantity": 12`) {
			t.Errorf("result missing quantity: %s", text)
		}
	})

	t.Run("rejects malformed date", func(t *testing.T) {
		result, err := server.handleDaySessions(context.Background(), requestWith(map[string]interface{}{
			"date": "yesterday",
		}))
		if err != nil {
			t.Fatalf("handleDaySessions() error = %v", err)
		}
		if !result.IsError {
			t.Error("handleDaySessions() should reject a malformed date")
		}
	})
}

func TestServer_handleNotes(t *testing.T) {
	goal, _ := domain.NewGoal("Read", false, nil, "")
	mock := &mockStateProvider{notes: map[string]string{goal.ID: "chapter one\n"}}
	server := NewServer(mock)

	result, err := server.handleGetNote(context.Background(), requestWith(map[string]interface{}{
		"goal_id": goal.ID,
	}))
	if err != nil {
		t.Fatalf("handleGetNote() error = %v", err)
	}
	if !strings.Contains(resultText(t, result), "chapter one") {
		t.Error("handleGetNote() missing note text")
	}

	result, err = server.handleEditNote(context.Background(), requestWith(map[string]interface{}{
		"goal_id": goal.ID,
		"text":    "rewritten",
	}))
	if err != nil {
		t.Fatalf("handleEditNote() error = %v", err)
	}
	if result.IsError {
		t.Error("handleEditNote() returned error result")
	}
	if mock.notes[goal.ID] != "rewritten" {
		t.Errorf("note = %q, want replaced text", mock.notes[goal.ID])
	}
}

func TestServer_handleGetNote_UnknownGoal(t *testing.T) {
	server := NewServer(&mockStateProvider{notes: map[string]string{}})

	result, err := server.handleGetNote(context.Background(), requestWith(map[string]interface{}{
		"goal_id": "nope",
	}))
	if err != nil {
		t.Fatalf("handleGetNote() error = %v", err)
	}
	if !result.IsError {
		t.Error("handleGetNote() should surface unknown goals as tool errors")
	}
}

func TestServer_Stop(t *testing.T) {
	server := NewServer(&mockStateProvider{})

	// Stop before Start should not panic
	if err := server.Stop(); err != nil {
		t.Errorf("Stop() error = %v", err)
	}
}
