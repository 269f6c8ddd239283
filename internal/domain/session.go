package domain

import "time"

// SessionKind distinguishes work sessions from reward sessions.
type SessionKind string

const (
	SessionKindWork   SessionKind = "work"
	SessionKindReward SessionKind = "reward"
)

// Session is a persisted record of one completed goal or reward
// interval.
type Session struct {
	ID        string
	GoalID    string
	Label     string
	StartedAt time.Time
	Duration  time.Duration
	IsReward  bool
	Quantity  *int
}

// NewSession creates a session record for a finished interval.
func NewSession(goalID, label string, startedAt time.Time, duration time.Duration, isReward bool, quantity *int) *Session {
	return &Session{
		ID:        generateID(),
		GoalID:    goalID,
		Label:     label,
		StartedAt: startedAt,
		Duration:  duration,
		IsReward:  isReward,
		Quantity:  quantity,
	}
}

// Kind returns the session kind derived from the reward flag.
func (s *Session) Kind() SessionKind {
	if s.IsReward {
		return SessionKindReward
	}
	return SessionKindWork
}

// EndedAt returns when the session finished.
func (s *Session) EndedAt() time.Time {
	return s.StartedAt.Add(s.Duration)
}

// Day returns the calendar day the session started on, in local time.
func (s *Session) Day() time.Time {
	return DayOf(s.StartedAt.Local())
}

// TimeRange formats the session's start and end as "HH:MM-HH:MM" in
// local time.
func (s *Session) TimeRange() string {
	start := s.StartedAt.Local()
	end := s.EndedAt().Local()
	return start.Format("15:04") + "-" + end.Format("15:04")
}

// DayOf truncates a timestamp to midnight of its calendar day.
func DayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
