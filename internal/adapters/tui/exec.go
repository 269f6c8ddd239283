package tui

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// openEditorCmd suspends the TUI and runs the configured editor on the
// selected goal's note file. The note is reloaded when the editor exits.
func (m *Model) openEditorCmd() tea.Cmd {
	path := m.app.NotePath()
	if path == "" {
		return nil
	}
	args := splitCommandArgs(m.editor)
	if len(args) == 0 {
		return nil
	}
	args = append(args, path)
	c := exec.Command(args[0], args[1:]...)
	return tea.ExecProcess(c, func(err error) tea.Msg {
		return editorFinishedMsg{err: err}
	})
}

// openFileManager launches the configured file manager on the archive
// directory without waiting for it.
func (m *Model) openFileManager() error {
	dir := m.app.ArchiveDir()
	fm := m.fileMgr
	if fm == "" {
		switch runtime.GOOS {
		case "darwin":
			fm = "open"
		case "windows":
			fm = "explorer"
		default:
			fm = "xdg-open"
		}
	}
	args := splitCommandArgs(fm)
	if len(args) == 0 {
		return fmt.Errorf("empty file manager command")
	}
	args = append(args, dir)
	c := exec.Command(args[0], args[1:]...)
	if err := c.Start(); err != nil {
		return fmt.Errorf("launching file manager: %w", err)
	}
	go func() { _ = c.Wait() }()
	return nil
}

// splitCommandArgs splits a command line on whitespace, honouring
// single quotes, double quotes and backslash escapes so editor
// commands like "code --wait" or quoted arguments work.
func splitCommandArgs(s string) []string {
	var args []string
	var cur strings.Builder
	var quote rune
	escaped := false
	pending := false

	for _, r := range s {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case r == '\\' && quote != '\'':
			escaped = true
			pending = true
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				cur.WriteRune(r)
			}
		case r == '\'' || r == '"':
			quote = r
			pending = true
		case r == ' ' || r == '\t':
			if pending || cur.Len() > 0 {
				args = append(args, cur.String())
				cur.Reset()
				pending = false
			}
		default:
			cur.WriteRune(r)
		}
	}
	if pending || cur.Len() > 0 {
		args = append(args, cur.String())
	}
	return args
}
