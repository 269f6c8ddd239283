package core

// Mode is the current interaction mode, a sealed tagged union: each
// variant owns exactly the payload it needs and only one is active at
// a time. Frontends switch on the concrete type for cursor styles and
// help text.
type Mode interface {
	mode()
}

// ModeView is the base browsing mode over the day's session list.
type ModeView struct{}

// ModePickGoal is the fuzzy goal picker opened from the add rows.
type ModePickGoal struct {
	IsReward bool
}

// ModeGoalForm is the three-field goal creation dialog.
type ModeGoalForm struct {
	Form *GoalForm
}

// ModeQuantityPrompt collects an optional quantity after a timer for
// a quantity-tracked goal expires.
type ModeQuantityPrompt struct {
	GoalName string
	UnitName string
}

// ModePickDuration is the free-text duration picker shown before a
// timer starts.
type ModePickDuration struct {
	IsReward bool
	GoalName string
	GoalID   string
}

// ModeRunningTimer is active while a countdown runs; navigation and
// note editing stay available.
type ModeRunningTimer struct{}

// ModeEditNotes is the inline notes editor for the selected goal.
type ModeEditNotes struct{}

func (ModeView) mode()           {}
func (ModePickGoal) mode()       {}
func (ModeGoalForm) mode()       {}
func (ModeQuantityPrompt) mode() {}
func (ModePickDuration) mode()   {}
func (ModeRunningTimer) mode()   {}
func (ModeEditNotes) mode()      {}

// DialogOpen reports whether the mode is modal: list navigation
// highlighting is suppressed except for the active dialog.
func DialogOpen(m Mode) bool {
	switch m.(type) {
	case ModePickGoal, ModeGoalForm, ModeQuantityPrompt, ModePickDuration:
		return true
	default:
		return false
	}
}

// FormField identifies one input of the goal creation form.
type FormField int

const (
	FieldGoalName FormField = iota
	FieldQuantityUnit
	FieldCommands
)

// GoalForm holds the goal creation dialog state: three ordered
// fields cycled circularly with Tab/Shift-Tab or arrows.
type GoalForm struct {
	Field    FormField
	Name     TextBuffer
	Unit     TextBuffer
	Commands TextBuffer
	IsReward bool
}

// ActiveBuffer returns the buffer of the focused field.
func (f *GoalForm) ActiveBuffer() *TextBuffer {
	switch f.Field {
	case FieldQuantityUnit:
		return &f.Unit
	case FieldCommands:
		return &f.Commands
	default:
		return &f.Name
	}
}

// NextField advances focus circularly.
func (f *GoalForm) NextField() {
	f.Field = (f.Field + 1) % 3
}

// PrevField moves focus back circularly.
func (f *GoalForm) PrevField() {
	f.Field = (f.Field + 2) % 3
}
