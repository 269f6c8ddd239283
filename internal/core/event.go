// Package core implements the session state machine for Success: the
// modal interaction flow, the wall-clock timer engine and the session
// finalizer. It is render-agnostic; frontends convert their native
// key events into KeyEvent and draw the view model returned by
// BuildView.
package core

// KeyCode identifies a logical key, independent of any terminal or
// canvas frontend.
type KeyCode int

const (
	KeyRune KeyCode = iota
	KeyEnter
	KeyEsc
	KeyBackspace
	KeyDelete
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
	KeyTab
	KeyBackTab
)

// KeyEvent is the abstract input event consumed by the state machine.
// Rune is only meaningful when Code is KeyRune.
type KeyEvent struct {
	Code KeyCode
	Rune rune
	Ctrl bool
	Alt  bool
}

// RuneKey builds a plain character event.
func RuneKey(r rune) KeyEvent {
	return KeyEvent{Code: KeyRune, Rune: r}
}
