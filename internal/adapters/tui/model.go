// Package tui provides the terminal user interface implementation
// using the Bubbletea framework.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/success-cli/success/internal/config"
	"github.com/success-cli/success/internal/core"
)

// tickMsg is sent on every poll wake.
type tickMsg time.Time

// editorFinishedMsg is sent when the external editor exits.
type editorFinishedMsg struct {
	err error
}

// Model represents the TUI state. All domain state lives in the core
// app; the model only adds rendering concerns.
type Model struct {
	app      *core.App
	progress progress.Model
	theme    config.ThemeConfig
	editor   string
	fileMgr  string
	width    int
	height   int
	err      error
}

// NewModel creates a new TUI model around the core app.
func NewModel(app *core.App, cfg *config.Config) Model {
	theme := config.DefaultThemeConfig()
	editor := "nvim"
	fileMgr := ""
	if cfg != nil {
		theme = cfg.Theme
		editor = cfg.EditorCommand()
		fileMgr = cfg.FileManager
	}
	return Model{
		app:      app,
		progress: progress.New(progress.WithDefaultGradient()),
		theme:    theme,
		editor:   editor,
		fileMgr:  fileMgr,
	}
}

// Init initializes the TUI.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// External programs are a frontend concern; everything else
		// goes to the core state machine.
		if browsing(m.app.Mode()) {
			switch msg.String() {
			case "E":
				if cmd := m.openEditorCmd(); cmd != nil {
					return m, cmd
				}
				return m, nil
			case "o":
				m.err = m.openFileManager()
				return m, nil
			}
		}

		key, ok := toKeyEvent(msg)
		if !ok {
			return m, nil
		}
		if m.app.HandleKey(key) {
			m.app.Shutdown()
			return m, tea.Quit
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = msg.Width - 8

	case tickMsg:
		m.app.Tick()
		return m, tickCmd()

	case editorFinishedMsg:
		m.err = msg.err
		m.app.ReloadNotes()
		return m, nil
	}

	var cmd tea.Cmd
	newProgress, cmd := m.progress.Update(msg)
	if p, ok := newProgress.(progress.Model); ok {
		m.progress = p
	}
	return m, cmd
}

// browsing reports whether the app is in a list-browsing mode, where
// the external editor and file manager shortcuts apply.
func browsing(m core.Mode) bool {
	switch m.(type) {
	case core.ModeView, core.ModeRunningTimer:
		return true
	default:
		return false
	}
}

// tickCmd creates a command that sends a tick message. The countdown
// is wall-clock anchored, so a coarse poll interval only affects
// display latency.
func tickCmd() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Run starts the interactive interface and blocks until the user
// quits.
func Run(ctx context.Context, app *core.App, cfg *config.Config) error {
	program := tea.NewProgram(
		NewModel(app, cfg),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}
