package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/success-cli/success/internal/ports"
)

// noteStore implements ports.NoteStore on plain Markdown files, one
// per goal. Keeping notes as files lets external editors work on them
// directly.
type noteStore struct {
	dir string
}

var _ ports.NoteStore = (*noteStore)(nil)

// newNoteStore creates a note store rooted at dir. The directory is
// created lazily on the first write.
func newNoteStore(dir string) ports.NoteStore {
	return &noteStore{dir: dir}
}

// Get returns the note text for a goal. A missing note reads as
// empty.
func (n *noteStore) Get(goalID string) (string, error) {
	data, err := os.ReadFile(n.Path(goalID))
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read note: %w", err)
	}
	return string(data), nil
}

// Put replaces the note text for a goal.
func (n *noteStore) Put(goalID, text string) error {
	if err := os.MkdirAll(n.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create notes directory: %w", err)
	}
	if err := os.WriteFile(n.Path(goalID), []byte(text), 0o644); err != nil {
		return fmt.Errorf("failed to write note: %w", err)
	}
	return nil
}

// Path returns the on-disk location of a goal's note.
func (n *noteStore) Path(goalID string) string {
	return filepath.Join(n.dir, fmt.Sprintf("goal_%s.md", goalID))
}
