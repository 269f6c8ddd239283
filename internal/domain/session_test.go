package domain

import (
	"testing"
	"time"
)

func TestNewSession(t *testing.T) {
	start := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)
	qty := 12
	session := NewSession("goal-1", "Read", start, 30*time.Minute, false, &qty)

	if session.ID == "" {
		t.Error("NewSession() ID is empty")
	}
	if session.Kind() != SessionKindWork {
		t.Errorf("Kind() = %v, want %v", session.Kind(), SessionKindWork)
	}
	if session.Quantity == nil || *session.Quantity != 12 {
		t.Errorf("Quantity = %v, want 12", session.Quantity)
	}
	if got := session.EndedAt(); !got.Equal(start.Add(30 * time.Minute)) {
		t.Errorf("EndedAt() = %v, want %v", got, start.Add(30*time.Minute))
	}
}

func TestSessionKind_Reward(t *testing.T) {
	session := NewSession("goal-1", "Games", time.Now(), time.Minute, true, nil)
	if session.Kind() != SessionKindReward {
		t.Errorf("Kind() = %v, want %v", session.Kind(), SessionKindReward)
	}
}

func TestDayOf(t *testing.T) {
	ts := time.Date(2025, 3, 10, 23, 59, 59, 0, time.Local)
	day := DayOf(ts)
	if day.Hour() != 0 || day.Minute() != 0 || day.Second() != 0 {
		t.Errorf("DayOf() = %v, want midnight", day)
	}
	if day.Day() != 10 || day.Month() != 3 {
		t.Errorf("DayOf() = %v, wrong day", day)
	}
}
