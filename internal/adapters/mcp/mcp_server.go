// Package mcp provides the MCP (Model Context Protocol) server
// implementation, exposing the goal archive to external agents.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/success-cli/success/internal/domain"
	"github.com/success-cli/success/internal/ports"
)

// Server implements the MCP server using mark3labs/mcp-go.
type Server struct {
	server        *server.MCPServer
	stateProvider ports.MCPStateProvider
	ctx           context.Context
	cancel        context.CancelFunc
}

// NewServer creates a new MCP server instance.
func NewServer(stateProvider ports.MCPStateProvider) *Server {
	s := &Server{
		stateProvider: stateProvider,
	}

	s.server = server.NewMCPServer(
		"success",
		"1.0.0",
		server.WithLogging(),
	)

	s.registerTools()

	return s
}

// registerTools registers all available MCP tools.
func (s *Server) registerTools() {
	// Tool: list_goals
	listGoalsTool := mcp.NewTool(
		"list_goals",
		mcp.WithDescription("List archived goals and rewards, most recently worked-on first"),
		mcp.WithString(
			"kind",
			mcp.Description("Filter by kind: work or reward"),
			mcp.Enum("work", "reward"),
		),
	)
	s.server.AddTool(listGoalsTool, s.handleListGoals)

	// Tool: search_goals
	searchGoalsTool := mcp.NewTool(
		"search_goals",
		mcp.WithDescription("Fuzzy-search goals by name"),
		mcp.WithString(
			"query",
			mcp.Required(),
			mcp.Description("The search query"),
		),
		mcp.WithString(
			"kind",
			mcp.Description("Filter by kind: work or reward"),
			mcp.Enum("work", "reward"),
		),
	)
	s.server.AddTool(searchGoalsTool, s.handleSearchGoals)

	// Tool: get_day_sessions
	daySessionsTool := mcp.NewTool(
		"get_day_sessions",
		mcp.WithDescription("Get the recorded sessions of one calendar day"),
		mcp.WithString(
			"date",
			mcp.Description("The day in YYYY-MM-DD format (default: today)"),
		),
	)
	s.server.AddTool(daySessionsTool, s.handleDaySessions)

	// Tool: get_recent_sessions
	recentSessionsTool := mcp.NewTool(
		"get_recent_sessions",
		mcp.WithDescription("Get the most recent sessions of the last week"),
		mcp.WithNumber(
			"limit",
			mcp.Description("Maximum number of sessions to return (default: 20)"),
		),
	)
	s.server.AddTool(recentSessionsTool, s.handleRecentSessions)

	// Tool: get_note
	getNoteTool := mcp.NewTool(
		"get_note",
		mcp.WithDescription("Get the Markdown note attached to a goal"),
		mcp.WithString(
			"goal_id",
			mcp.Required(),
			mcp.Description("The ID of the goal"),
		),
	)
	s.server.AddTool(getNoteTool, s.handleGetNote)

	// Tool: edit_note
	editNoteTool := mcp.NewTool(
		"edit_note",
		mcp.WithDescription("Replace the Markdown note attached to a goal"),
		mcp.WithString(
			"goal_id",
			mcp.Required(),
			mcp.Description("The ID of the goal"),
		),
		mcp.WithString(
			"text",
			mcp.Required(),
			mcp.Description("The new note text"),
		),
	)
	s.server.AddTool(editNoteTool, s.handleEditNote)
}

// Start begins serving MCP requests via stdio.
func (s *Server) Start(ctx context.Context) error {
	s.ctx, s.cancel = context.WithCancel(ctx)

	return server.ServeStdio(s.server)
}

// Stop gracefully shuts down the server.
func (s *Server) Stop() error {
	if s.cancel != nil {
		s.cancel()
	}
	return nil
}

// IsRunning returns true if the server is active.
func (s *Server) IsRunning() bool {
	if s.ctx == nil {
		return false
	}
	return s.ctx.Err() == nil
}

// rewardFilter translates the kind argument into the repository
// filter. Unknown or missing kinds mean no filter.
func rewardFilter(request mcp.CallToolRequest) *bool {
	switch request.GetString("kind", "") {
	case "work":
		f := false
		return &f
	case "reward":
		f := true
		return &f
	}
	return nil
}

func goalJSON(goal *domain.Goal) map[string]interface{} {
	kind := "work"
	if goal.IsReward {
		kind = "reward"
	}
	data := map[string]interface{}{
		"id":         goal.ID,
		"name":       goal.Name,
		"kind":       kind,
		"created_at": goal.CreatedAt.Format("2006-01-02T15:04:05"),
	}
	if goal.QuantityUnit != "" {
		data["quantity_unit"] = goal.QuantityUnit
	}
	if len(goal.Commands) > 0 {
		data["commands"] = goal.Commands
	}
	return data
}

func sessionJSON(session *domain.Session) map[string]interface{} {
	data := map[string]interface{}{
		"id":         session.ID,
		"goal_id":    session.GoalID,
		"label":      session.Label,
		"kind":       string(session.Kind()),
		"duration":   session.Duration.String(),
		"started_at": session.StartedAt.Format("2006-01-02T15:04:05"),
		"time_range": session.TimeRange(),
	}
	if session.Quantity != nil {
		data["quantity"] = *session.Quantity
	}
	return data
}

// handleListGoals handles the list_goals tool.
func (s *Server) handleListGoals(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	goals, err := s.stateProvider.ListGoals(ctx, rewardFilter(request))
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}

	var goalList []map[string]interface{}
	for _, goal := range goals {
		goalList = append(goalList, goalJSON(goal))
	}

	result := map[string]interface{}{
		"goals":       goalList,
		"total_count": len(goalList),
	}

	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal goals: %w", err)
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}

// handleSearchGoals handles the search_goals tool.
func (s *Server) handleSearchGoals(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query is required: " + err.Error()), nil
	}

	goals, err := s.stateProvider.SearchGoals(ctx, query, rewardFilter(request))
	if err != nil {
		return nil, fmt.Errorf("failed to search goals: %w", err)
	}

	var goalList []map[string]interface{}
	for _, goal := range goals {
		goalList = append(goalList, goalJSON(goal))
	}

	result := map[string]interface{}{
		"query":       query,
		"goals":       goalList,
		"total_count": len(goalList),
	}

	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal goals: %w", err)
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}

// handleDaySessions handles the get_day_sessions tool.
func (s *Server) handleDaySessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	day := time.Now()
	if raw := request.GetString("date", ""); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			return mcp.NewToolResultError("date must be YYYY-MM-DD: " + err.Error()), nil
		}
		day = parsed
	}

	sessions, err := s.stateProvider.DaySessions(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("failed to get day sessions: %w", err)
	}

	var sessionList []map[string]interface{}
	for _, session := range sessions {
		sessionList = append(sessionList, sessionJSON(session))
	}

	result := map[string]interface{}{
		"date":           domain.DayOf(day).Format("2006-01-02"),
		"sessions":       sessionList,
		"total_sessions": len(sessionList),
	}

	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal sessions: %w", err)
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}

// handleRecentSessions handles the get_recent_sessions tool.
func (s *Server) handleRecentSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := int(request.GetFloat("limit", 20))
	if limit <= 0 {
		limit = 20
	}

	sessions, err := s.stateProvider.RecentSessions(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent sessions: %w", err)
	}

	var sessionList []map[string]interface{}
	for _, session := range sessions {
		sessionList = append(sessionList, sessionJSON(session))
	}

	result := map[string]interface{}{
		"sessions":       sessionList,
		"total_sessions": len(sessionList),
	}

	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal sessions: %w", err)
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}

// handleGetNote handles the get_note tool.
func (s *Server) handleGetNote(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	goalID, err := request.RequireString("goal_id")
	if err != nil {
		return mcp.NewToolResultError("goal_id is required: " + err.Error()), nil
	}

	text, err := s.stateProvider.GetNote(ctx, goalID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to get note: %v", err)), nil
	}

	result := map[string]interface{}{
		"goal_id": goalID,
		"note":    text,
	}

	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal note: %w", err)
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}

// handleEditNote handles the edit_note tool.
func (s *Server) handleEditNote(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	goalID, err := request.RequireString("goal_id")
	if err != nil {
		return mcp.NewToolResultError("goal_id is required: " + err.Error()), nil
	}

	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError("text is required: " + err.Error()), nil
	}

	if err := s.stateProvider.EditNote(ctx, goalID, text); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to edit note: %v", err)), nil
	}

	result := map[string]interface{}{
		"goal_id": goalID,
		"written": len(text),
	}

	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}
