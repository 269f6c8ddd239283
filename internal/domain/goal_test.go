package domain

import (
	"reflect"
	"testing"
)

func TestNewGoal(t *testing.T) {
	goal, err := NewGoal("Read", false, []string{"zathura book.pdf"}, "pages")
	if err != nil {
		t.Fatalf("NewGoal() error = %v", err)
	}

	if goal.ID == "" {
		t.Error("NewGoal() ID is empty")
	}
	if goal.Name != "Read" {
		t.Errorf("Name = %q, want %q", goal.Name, "Read")
	}
	if !goal.TracksQuantity() {
		t.Error("TracksQuantity() = false, want true")
	}
	if goal.CreatedAt.IsZero() {
		t.Error("CreatedAt is zero")
	}
}

func TestNewGoal_TrimsAndValidates(t *testing.T) {
	if _, err := NewGoal("   ", false, nil, ""); err != ErrEmptyGoalName {
		t.Errorf("NewGoal(blank) error = %v, want ErrEmptyGoalName", err)
	}

	goal, err := NewGoal("  Write  ", true, nil, "  ")
	if err != nil {
		t.Fatalf("NewGoal() error = %v", err)
	}
	if goal.Name != "Write" {
		t.Errorf("Name = %q, want trimmed %q", goal.Name, "Write")
	}
	if goal.TracksQuantity() {
		t.Error("TracksQuantity() = true for blank unit, want false")
	}
}

func TestParseCommands(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"semicolons", "firefox; nvim notes.md", []string{"firefox", "nvim notes.md"}},
		{"newlines", "mpv song.mp3\nsteam", []string{"mpv song.mp3", "steam"}},
		{"mixed with blanks", " a ;; b \n\n", []string{"a", "b"}},
		{"empty", "   ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseCommands(tt.input); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseCommands(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
