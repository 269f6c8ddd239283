package core

import "unicode"

// TextBuffer is a cursor-addressed single-line edit buffer shared by
// every input field. The cursor is rune-indexed so multi-byte input
// never splits a code point; it always satisfies
// 0 <= Cursor <= len([]rune(Value)).
type TextBuffer struct {
	Value  string
	Cursor int
}

// NewTextBuffer returns a buffer pre-filled with value, cursor at the
// end.
func NewTextBuffer(value string) TextBuffer {
	return TextBuffer{Value: value, Cursor: len([]rune(value))}
}

// HandleKey applies editing keys to the buffer. It reports whether
// the event was consumed, letting callers fall through to
// mode-specific bindings (Enter, Esc, Tab) on false.
func (b *TextBuffer) HandleKey(key KeyEvent) bool {
	switch key.Code {
	case KeyRune:
		if key.Ctrl || key.Alt {
			return false
		}
		b.Insert(key.Rune)
		return true
	case KeyBackspace:
		b.DeleteBackward()
		return true
	case KeyDelete:
		b.DeleteForward()
		return true
	case KeyLeft:
		if key.Ctrl {
			b.MoveWordLeft()
		} else {
			b.MoveLeft()
		}
		return true
	case KeyRight:
		if key.Ctrl {
			b.MoveWordRight()
		} else {
			b.MoveRight()
		}
		return true
	case KeyHome:
		b.Cursor = 0
		return true
	case KeyEnd:
		b.Cursor = len([]rune(b.Value))
		return true
	default:
		return false
	}
}

// Insert places r at the cursor and advances past it.
func (b *TextBuffer) Insert(r rune) {
	runes := []rune(b.Value)
	if b.Cursor >= len(runes) {
		b.Value += string(r)
		b.Cursor = len(runes) + 1
		return
	}
	out := make([]rune, 0, len(runes)+1)
	out = append(out, runes[:b.Cursor]...)
	out = append(out, r)
	out = append(out, runes[b.Cursor:]...)
	b.Value = string(out)
	b.Cursor++
}

// DeleteBackward removes the rune before the cursor. At cursor 0 it
// is a no-op.
func (b *TextBuffer) DeleteBackward() {
	if b.Cursor == 0 {
		return
	}
	runes := []rune(b.Value)
	out := append(runes[:b.Cursor-1:b.Cursor-1], runes[b.Cursor:]...)
	b.Value = string(out)
	b.Cursor--
}

// DeleteForward removes the rune under the cursor, if any.
func (b *TextBuffer) DeleteForward() {
	runes := []rune(b.Value)
	if b.Cursor >= len(runes) {
		return
	}
	out := append(runes[:b.Cursor:b.Cursor], runes[b.Cursor+1:]...)
	b.Value = string(out)
}

// MoveLeft steps the cursor one rune left.
func (b *TextBuffer) MoveLeft() {
	if b.Cursor > 0 {
		b.Cursor--
	}
}

// MoveRight steps the cursor one rune right. At the end it is a
// no-op.
func (b *TextBuffer) MoveRight() {
	if b.Cursor < len([]rune(b.Value)) {
		b.Cursor++
	}
}

// MoveWordLeft skips contiguous whitespace, then the word before it.
func (b *TextBuffer) MoveWordLeft() {
	runes := []rune(b.Value)
	idx := b.Cursor
	for idx > 0 && unicode.IsSpace(runes[idx-1]) {
		idx--
	}
	for idx > 0 && !unicode.IsSpace(runes[idx-1]) {
		idx--
	}
	b.Cursor = idx
}

// MoveWordRight skips the rest of the current word, then the
// whitespace after it.
func (b *TextBuffer) MoveWordRight() {
	runes := []rune(b.Value)
	idx := b.Cursor
	for idx < len(runes) && !unicode.IsSpace(runes[idx]) {
		idx++
	}
	for idx < len(runes) && unicode.IsSpace(runes[idx]) {
		idx++
	}
	b.Cursor = idx
}

// Clear empties the buffer and resets the cursor.
func (b *TextBuffer) Clear() {
	b.Value = ""
	b.Cursor = 0
}
