package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/success-cli/success/internal/core"
)

// toKeyEvent translates a Bubbletea key message into the core event
// vocabulary. Unmapped keys are dropped.
func toKeyEvent(msg tea.KeyMsg) (core.KeyEvent, bool) {
	switch msg.String() {
	case "enter":
		return core.KeyEvent{Code: core.KeyEnter}, true
	case "esc":
		return core.KeyEvent{Code: core.KeyEsc}, true
	case "backspace":
		return core.KeyEvent{Code: core.KeyBackspace}, true
	case "delete":
		return core.KeyEvent{Code: core.KeyDelete}, true
	case "left":
		return core.KeyEvent{Code: core.KeyLeft}, true
	case "right":
		return core.KeyEvent{Code: core.KeyRight}, true
	case "up":
		return core.KeyEvent{Code: core.KeyUp}, true
	case "down":
		return core.KeyEvent{Code: core.KeyDown}, true
	case "home":
		return core.KeyEvent{Code: core.KeyHome}, true
	case "end":
		return core.KeyEvent{Code: core.KeyEnd}, true
	case "tab":
		return core.KeyEvent{Code: core.KeyTab}, true
	case "shift+tab":
		return core.KeyEvent{Code: core.KeyBackTab}, true
	case "ctrl+left":
		return core.KeyEvent{Code: core.KeyLeft, Ctrl: true}, true
	case "ctrl+right":
		return core.KeyEvent{Code: core.KeyRight, Ctrl: true}, true
	case "ctrl+c":
		return core.KeyEvent{Code: core.KeyRune, Rune: 'c', Ctrl: true}, true
	case " ", "space":
		return core.RuneKey(' '), true
	}

	if msg.Type == tea.KeyRunes && len(msg.Runes) == 1 {
		return core.KeyEvent{Code: core.KeyRune, Rune: msg.Runes[0], Alt: msg.Alt}, true
	}
	return core.KeyEvent{}, false
}
