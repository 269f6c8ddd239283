package core

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// The notes cursor is a byte offset into a.notes, only ever moved by
// whole runes. Every mutation persists immediately; there is no
// explicit save step.

func (a *App) handleNotesKey(key KeyEvent) {
	if key.Ctrl {
		switch key.Code {
		case KeyLeft:
			a.moveNotesCursorWordLeft()
		case KeyRight:
			a.moveNotesCursorWordRight()
		}
		return
	}

	switch key.Code {
	case KeyEsc:
		a.saveNotesForSelection()
		a.mode = ModeView{}
	case KeyBackspace:
		if a.notesCursor > 0 {
			_, size := utf8.DecodeLastRuneInString(a.notes[:a.notesCursor])
			start := a.notesCursor - size
			a.notes = a.notes[:start] + a.notes[a.notesCursor:]
			a.notesCursor = start
			a.saveNotesForSelection()
		}
	case KeyEnter:
		a.insertNotesText("\n")
	case KeyTab:
		a.insertNotesText("    ")
	case KeyRune:
		a.insertNotesText(string(key.Rune))
	case KeyLeft:
		a.moveNotesCursorLeft()
	case KeyRight:
		a.moveNotesCursorRight()
	case KeyUp:
		a.moveNotesCursorVert(-1)
	case KeyDown:
		a.moveNotesCursorVert(1)
	}
}

func (a *App) insertNotesText(text string) {
	a.notes = a.notes[:a.notesCursor] + text + a.notes[a.notesCursor:]
	a.notesCursor += len(text)
	a.saveNotesForSelection()
}

// NotePath returns the on-disk location of the selected goal's note,
// or "" when nothing is selected. Frontends hand this to external
// editors.
func (a *App) NotePath() string {
	goalID := a.SelectedGoalID()
	if goalID == "" {
		return ""
	}
	return a.storage.Notes().Path(goalID)
}

// ReloadNotes re-reads the selected goal's note from storage, for
// frontends returning from an external editor.
func (a *App) ReloadNotes() {
	a.refreshNotesForSelection()
}

// refreshNotesForSelection loads the selected goal's note, cursor at
// the end.
func (a *App) refreshNotesForSelection() {
	goalID := a.SelectedGoalID()
	if goalID == "" {
		a.notes = ""
		a.notesCursor = 0
		return
	}
	note, err := a.storage.Notes().Get(goalID)
	if err != nil {
		a.logger.Printf("failed to load notes: %v", err)
		note = ""
	}
	a.notes = note
	a.notesCursor = len(a.notes)
}

func (a *App) saveNotesForSelection() {
	goalID := a.SelectedGoalID()
	if goalID == "" {
		return
	}
	if err := a.storage.Notes().Put(goalID, a.notes); err != nil {
		a.logger.Printf("failed to save notes: %v", err)
	}
}

func (a *App) moveNotesCursorLeft() {
	if a.notesCursor == 0 {
		return
	}
	_, size := utf8.DecodeLastRuneInString(a.notes[:a.notesCursor])
	a.notesCursor -= size
}

func (a *App) moveNotesCursorRight() {
	if a.notesCursor >= len(a.notes) {
		return
	}
	_, size := utf8.DecodeRuneInString(a.notes[a.notesCursor:])
	a.notesCursor += size
}

func (a *App) moveNotesCursorWordLeft() {
	idx := a.notesCursor
	for idx > 0 {
		r, size := utf8.DecodeLastRuneInString(a.notes[:idx])
		if !unicode.IsSpace(r) {
			break
		}
		idx -= size
	}
	for idx > 0 {
		r, size := utf8.DecodeLastRuneInString(a.notes[:idx])
		if unicode.IsSpace(r) {
			break
		}
		idx -= size
	}
	a.notesCursor = idx
}

func (a *App) moveNotesCursorWordRight() {
	idx := a.notesCursor
	for idx < len(a.notes) {
		r, size := utf8.DecodeRuneInString(a.notes[idx:])
		if !unicode.IsSpace(r) {
			break
		}
		idx += size
	}
	for idx < len(a.notes) {
		r, size := utf8.DecodeRuneInString(a.notes[idx:])
		if unicode.IsSpace(r) {
			break
		}
		idx += size
	}
	a.notesCursor = idx
}

// moveNotesCursorVert moves the cursor one line up or down, keeping
// the column where possible and clamping it to the destination
// line's length.
func (a *App) moveNotesCursorVert(delta int) {
	starts := lineStarts(a.notes)
	line, col := a.NotesLineCol()
	target := line + delta
	if target < 0 || target >= len(starts) {
		return
	}

	lineStart := starts[target]
	lineEnd := len(a.notes)
	if target+1 < len(starts) {
		lineEnd = starts[target+1] - 1 // exclude the newline
	}

	idx := lineStart
	for remaining := col; remaining > 0 && idx < lineEnd; remaining-- {
		_, size := utf8.DecodeRuneInString(a.notes[idx:])
		idx += size
	}
	a.notesCursor = idx
}

// NotesLineCol returns the cursor position as zero-based line and
// rune column, for frontends placing a visible cursor.
func (a *App) NotesLineCol() (line, col int) {
	for _, r := range a.notes[:a.notesCursor] {
		if r == '\n' {
			line++
			col = 0
		} else {
			col++
		}
	}
	return line, col
}

// lineStarts returns the byte offset of every line start.
func lineStarts(text string) []int {
	starts := []int{0}
	for idx, width := 0, 0; idx < len(text); idx += width {
		var r rune
		r, width = utf8.DecodeRuneInString(text[idx:])
		if r == '\n' {
			starts = append(starts, idx+width)
		}
	}
	return starts
}

// WrapText word-wraps a single line to fit width runes, breaking
// over-long words. Used by frontends to wrap list labels.
func WrapText(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}
	var lines []string
	var current string
	for _, word := range strings.Fields(text) {
		wordLen := len([]rune(word))
		switch {
		case current == "" && wordLen > width:
			lines = append(lines, chunkRunes(word, width)...)
		case current == "":
			current = word
		case len([]rune(current))+1+wordLen > width:
			lines = append(lines, current)
			if wordLen > width {
				current = ""
				lines = append(lines, chunkRunes(word, width)...)
			} else {
				current = word
			}
		default:
			current += " " + word
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	return lines
}

func chunkRunes(word string, width int) []string {
	runes := []rune(word)
	var chunks []string
	for len(runes) > width {
		chunks = append(chunks, string(runes[:width]))
		runes = runes[width:]
	}
	if len(runes) > 0 {
		chunks = append(chunks, string(runes))
	}
	return chunks
}
