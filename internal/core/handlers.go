package core

import (
	"strconv"
	"strings"
	"time"

	"github.com/success-cli/success/internal/domain"
)

// handleViewKey serves both View and RunningTimer modes.
func (a *App) handleViewKey(key KeyEvent) bool {
	switch {
	case key.Code == KeyRune && key.Rune == 'q':
		return true
	case key.Code == KeyUp || (key.Code == KeyRune && key.Rune == 'k'):
		a.moveSelection(-1)
	case key.Code == KeyDown || (key.Code == KeyRune && key.Rune == 'j'):
		a.moveSelection(1)
	case key.Code == KeyLeft || (key.Code == KeyRune && key.Rune == 'h'):
		a.shiftDay(-1)
	case key.Code == KeyRight || (key.Code == KeyRune && key.Rune == 'l'):
		a.shiftDay(1)
	case key.Code == KeyRune && key.Rune == 'e':
		if a.SelectedGoalID() != "" {
			a.refreshNotesForSelection()
			a.mode = ModeEditNotes{}
		}
	case key.Code == KeyEnter:
		a.confirmViewSelection()
	}
	return false
}

func (a *App) moveSelection(delta int) {
	items := a.buildViewItems(internalViewWidth)
	if len(items) == 0 {
		return
	}
	next := a.selected + delta
	if next < 0 {
		next = 0
	}
	if next > len(items)-1 {
		next = len(items) - 1
	}
	if next != a.selected {
		a.selected = next
		a.refreshNotesForSelection()
	}
}

// shiftDay moves the viewed day, clamped so it never exceeds today.
func (a *App) shiftDay(deltaDays int) {
	if deltaDays == 0 {
		return
	}
	newDay := a.currentDay.AddDate(0, 0, deltaDays)
	if newDay.After(a.today()) {
		return
	}
	if err := a.reloadDay(newDay); err != nil {
		a.logger.Printf("failed to load day: %v", err)
		return
	}
	a.selectLast()
	a.refreshNotesForSelection()
}

func (a *App) confirmViewSelection() {
	items := a.buildViewItems(internalViewWidth)
	if a.selected < 0 || a.selected >= len(items) {
		return
	}
	switch items[a.selected].Kind {
	case ViewItemAddSession:
		if a.timer != nil {
			return
		}
		a.searchInput.Clear()
		a.searchSelected = 0
		a.mode = ModePickGoal{IsReward: false}
	case ViewItemAddReward:
		if a.timer != nil {
			return
		}
		a.searchInput.Clear()
		a.searchSelected = 0
		a.mode = ModePickGoal{IsReward: true}
	}
}

func (a *App) handleSearchKey(key KeyEvent, pick ModePickGoal) {
	if a.searchInput.HandleKey(key) {
		a.searchSelected = 0
		return
	}
	switch key.Code {
	case KeyEsc:
		a.searchInput.Clear()
		a.searchSelected = 0
		a.mode = ModeView{}
	case KeyUp:
		if a.searchSelected > 0 {
			a.searchSelected--
		}
	case KeyDown:
		if n := len(a.SearchResults()); n > 0 && a.searchSelected < n-1 {
			a.searchSelected++
		}
	case KeyEnter:
		results := a.SearchResults()
		if a.searchSelected >= len(results) {
			return
		}
		picked := results[a.searchSelected]
		a.searchInput.Clear()
		a.searchSelected = 0

		if picked.Goal == nil {
			form := &GoalForm{
				Name:     NewTextBuffer(picked.CreateName),
				IsReward: pick.IsReward,
			}
			a.mode = ModeGoalForm{Form: form}
			return
		}

		a.durationInput = NewTextBuffer(a.durationSuggestion(picked.Goal.ID))
		a.mode = ModePickDuration{
			IsReward: pick.IsReward,
			GoalName: picked.Goal.Name,
			GoalID:   picked.Goal.ID,
		}
	}
}

// durationSuggestion derives a default from the goal's most recent
// session length, falling back to 25 minutes with no history.
func (a *App) durationSuggestion(goalID string) string {
	last, err := a.storage.Sessions().FindLastForGoal(a.ctx, goalID)
	if err != nil {
		a.logger.Printf("failed to look up last session: %v", err)
		return "25m"
	}
	if last == nil {
		return "25m"
	}
	return domain.FormatSuggestion(last.Duration)
}

func (a *App) handleFormKey(key KeyEvent, m ModeGoalForm) {
	form := m.Form
	if form.ActiveBuffer().HandleKey(key) {
		return
	}
	switch key.Code {
	case KeyEsc:
		a.mode = ModeView{}
	case KeyUp, KeyBackTab:
		form.PrevField()
	case KeyDown, KeyTab:
		form.NextField()
	case KeyEnter:
		name := strings.TrimSpace(form.Name.Value)
		if name == "" {
			return
		}
		goal, err := domain.NewGoal(name, form.IsReward, domain.ParseCommands(form.Commands.Value), form.Unit.Value)
		if err != nil {
			return
		}
		if err := a.storage.Goals().Save(a.ctx, goal); err != nil {
			a.logger.Printf("failed to create goal: %v", err)
			return
		}
		a.goals = append(a.goals, goal)

		a.durationInput = NewTextBuffer("25m")
		a.mode = ModePickDuration{
			IsReward: form.IsReward,
			GoalName: goal.Name,
			GoalID:   goal.ID,
		}
	}
}

func (a *App) handleDurationKey(key KeyEvent, m ModePickDuration) {
	if a.durationInput.HandleKey(key) {
		return
	}
	switch key.Code {
	case KeyEsc:
		a.durationInput.Clear()
		a.mode = ModeView{}
	case KeyEnter:
		d, err := domain.ParseDuration(a.durationInput.Value)
		if err != nil {
			d = defaultDuration
		}
		a.startTimer(m.GoalName, m.GoalID, d, m.IsReward)
	}
}

func (a *App) handleQuantityKey(key KeyEvent) {
	if a.quantityInput.HandleKey(key) {
		return
	}
	switch key.Code {
	case KeyEsc:
		// Skipping the quantity is a valid terminal action, not a
		// cancellation: the session already happened.
		a.quantityInput.Clear()
		if pending := a.takePending(); pending != nil {
			a.finalizeSession(pending, nil)
		} else {
			a.mode = ModeView{}
		}
	case KeyEnter:
		qty := parseOptionalInt(a.quantityInput.Value)
		if pending := a.takePending(); pending != nil {
			a.finalizeSession(pending, qty)
		}
		a.quantityInput.Clear()
	}
}

// takePending consumes the pending session; finalize can only ever
// see each snapshot once.
func (a *App) takePending() *pendingSession {
	p := a.pending
	a.pending = nil
	return p
}

// parseOptionalInt reads an optional non-negative integer: empty or
// unparseable input means none.
func parseOptionalInt(input string) *int {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return nil
	}
	n, err := strconv.Atoi(trimmed)
	if err != nil || n < 0 {
		return nil
	}
	return &n
}

// appendSessionStartHeader stamps the goal's note with the session
// start so in-session notes land under a dated divider.
func (a *App) appendSessionStartHeader(goalID string, startedAt time.Time) error {
	note, err := a.storage.Notes().Get(goalID)
	if err != nil {
		return err
	}
	note += "---\n" + startedAt.Local().Format("2006-01-02 15:04") + "\n"
	return a.storage.Notes().Put(goalID, note)
}
