package core

import (
	"fmt"
	"strings"
	"time"

	"github.com/success-cli/success/internal/domain"
	"github.com/success-cli/success/internal/ports"
)

// timerSession is the single active countdown. At most one exists;
// ModeRunningTimer holds exactly when timer != nil.
type timerSession struct {
	label     string
	goalID    string
	total     time.Duration
	remaining time.Duration
	isReward  bool
	startedAt time.Time
	spawned   []*ports.SpawnedProcess
}

// pendingSession is the snapshot between timer expiry and
// persistence. It is consumed exactly once by finalizeSession.
type pendingSession struct {
	label     string
	goalID    string
	total     time.Duration
	isReward  bool
	startedAt time.Time
}

// viewItem renders the timer as a two-line list row: info plus a
// progress bar sized to width.
func (t *timerSession) viewItem(width int) ViewItem {
	info := fmt.Sprintf("[*] %s (%ds left) [started %s]",
		t.label, int(t.remaining.Seconds()), t.startedAt.Local().Format("15:04"))

	ratio := 0.0
	if t.total > 0 {
		ratio = 1 - float64(t.remaining)/float64(t.total)
	}
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	if width < 1 {
		width = 1
	}
	filled := int(ratio * float64(width))
	bar := "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"

	return ViewItem{Label: info + "\n" + bar, Kind: ViewItemRunningTimer}
}

// TimerRemaining returns the seconds left on the active countdown, or
// -1 when none runs.
func (a *App) TimerRemaining() int {
	if a.timer == nil {
		return -1
	}
	return int(a.timer.remaining.Seconds())
}

// TimerPercent returns the elapsed fraction of the active countdown
// in [0, 1], or 0 when none runs.
func (a *App) TimerPercent() float64 {
	if a.timer == nil || a.timer.total <= 0 {
		return 0
	}
	return 1 - float64(a.timer.remaining)/float64(a.timer.total)
}

// tickTimer recomputes remaining from the wall clock. Elapsed time is
// a wall-clock subtraction, never a monotonic reading, so suspending
// the machine does not pause the countdown. A negative elapsed means
// clock skew and the tick is ignored.
func (a *App) tickTimer(now time.Time) {
	t := a.timer
	if t == nil {
		return
	}
	elapsed := now.Sub(t.startedAt)
	if elapsed < 0 {
		return
	}
	if elapsed >= t.total {
		t.remaining = 0
	} else {
		t.remaining = t.total - elapsed
	}
	if t.remaining == 0 {
		a.finishTimer()
	}
}

// startTimer confirms a duration pick: it spawns the goal's helper
// commands and anchors the countdown to the wall clock. Starting
// while a timer is active is a no-op.
func (a *App) startTimer(goalName, goalID string, d time.Duration, isReward bool) {
	if a.timer != nil {
		return
	}

	// A timer always runs on today's view.
	if !a.currentDay.Equal(a.today()) {
		if err := a.reloadDay(a.today()); err != nil {
			a.logger.Printf("failed to load today: %v", err)
		}
		a.selectLast()
		a.refreshNotesForSelection()
	}

	startedAt := a.clock()
	var commands []string
	if g := a.goalByID(goalID); g != nil {
		commands = g.Commands
	}

	a.timer = &timerSession{
		label:     goalName,
		goalID:    goalID,
		total:     d,
		remaining: d,
		isReward:  isReward,
		startedAt: startedAt,
		spawned:   a.procs.Spawn(commands),
	}
	a.selectLast()
	if err := a.appendSessionStartHeader(goalID, startedAt); err != nil {
		a.logger.Printf("failed to prepare notes: %v", err)
	}
	a.refreshNotesForSelection()
	a.mode = ModeRunningTimer{}
}

// finishTimer handles expiry: the timer is removed from state first
// so a re-entrant tick cannot double-finalize. Helper processes are
// torn down only for reward sessions; work sessions leave them
// running.
func (a *App) finishTimer() {
	t := a.timer
	if t == nil {
		return
	}
	a.timer = nil

	if _, editing := a.mode.(ModeEditNotes); editing {
		a.saveNotesForSelection()
	}

	if t.isReward {
		a.procs.TerminateAll(t.spawned)
	}

	if a.notifier != nil {
		title := "Session complete"
		if t.isReward {
			title = "Reward over"
		}
		_ = a.notifier.Notify(title, t.label)
	}

	pending := &pendingSession{
		label:     t.label,
		goalID:    t.goalID,
		total:     t.total,
		isReward:  t.isReward,
		startedAt: t.startedAt,
	}

	if unit := a.goalQuantityUnit(t.goalID); unit != "" {
		a.pending = pending
		a.quantityInput.Clear()
		a.mode = ModeQuantityPrompt{GoalName: t.label, UnitName: unit}
		return
	}
	a.finalizeSession(pending, nil)
}

// finalizeSession persists the pending session. On storage failure
// the record is dropped: the timer is already gone, so the elapsed
// time is lost (logged, never fatal).
func (a *App) finalizeSession(pending *pendingSession, quantity *int) {
	if _, editing := a.mode.(ModeEditNotes); editing {
		a.saveNotesForSelection()
	}
	a.mode = ModeView{}

	session := domain.NewSession(pending.goalID, pending.label, pending.startedAt, pending.total, pending.isReward, quantity)
	if err := a.storage.Sessions().Save(a.ctx, session); err != nil {
		a.logger.Printf("failed to record session: %v", err)
		return
	}

	if a.currentDay.Equal(session.Day()) {
		if err := a.reloadDay(session.Day()); err != nil {
			a.logger.Printf("failed to reload day: %v", err)
			return
		}
		a.selectLast()
		a.refreshNotesForSelection()
	}
}
