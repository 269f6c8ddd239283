package core

import (
	"fmt"
	"strings"
	"time"

	"github.com/success-cli/success/internal/domain"
)

// ViewItemKind tags one row of the session list view model.
type ViewItemKind int

const (
	// ViewItemSession is a persisted session row; SessionIndex points
	// into the day's session list.
	ViewItemSession ViewItemKind = iota

	// ViewItemRunningTimer is the live countdown row.
	ViewItemRunningTimer

	// ViewItemAddSession is the "work on new goal" pseudo-row (also
	// used for the quantity insert hint row).
	ViewItemAddSession

	// ViewItemAddReward is the "receive reward" pseudo-row.
	ViewItemAddReward
)

// ViewItem is one render-agnostic row of the main list. Labels may
// contain newlines (the timer row carries its progress bar on a
// second line).
type ViewItem struct {
	Label        string
	Kind         ViewItemKind
	IsReward     bool
	SessionIndex int
}

// BuildView projects the current state into the list view model.
// width only affects the timer progress bar.
func (a *App) BuildView(width int) []ViewItem {
	return a.buildViewItems(width)
}

func (a *App) buildViewItems(width int) []ViewItem {
	var items []ViewItem
	for i, s := range a.sessions {
		prefix := "[S]"
		if s.IsReward {
			prefix = "[R]"
		}
		mins := int(s.Duration.Minutes())
		qty := ""
		if s.Quantity != nil {
			unit := a.goalQuantityUnit(s.GoalID)
			if unit != "" {
				unit = " " + unit
			}
			qty = fmt.Sprintf("%d%s in ", *s.Quantity, unit)
		}
		items = append(items, ViewItem{
			Label:        fmt.Sprintf("%s %s (%s%dm) [%s]", prefix, s.Label, qty, mins, s.TimeRange()),
			Kind:         ViewItemSession,
			IsReward:     s.IsReward,
			SessionIndex: i,
		})
	}

	viewingToday := a.currentDay.Equal(a.today())

	// The running timer only renders on today's view.
	if a.timer != nil && viewingToday {
		items = append(items, a.timer.viewItem(width))
	}

	// Add rows only appear when no timer runs and we view today.
	if a.timer == nil && viewingToday {
		if m, ok := a.mode.(ModeQuantityPrompt); ok {
			unit := m.UnitName
			if unit == "" {
				unit = "quantity"
			}
			items = append(items, ViewItem{
				Label: fmt.Sprintf("[+] Insert %s for %s", unit, m.GoalName),
				Kind:  ViewItemAddSession,
			})
		} else if n := len(a.sessions); n > 0 && !a.sessions[n-1].IsReward {
			items = append(items, ViewItem{Label: "[+] Receive reward", Kind: ViewItemAddReward})
		} else {
			items = append(items, ViewItem{Label: "[+] Work on new goal", Kind: ViewItemAddSession})
		}
	}
	return items
}

// SearchResult is one row of the goal picker: an existing goal, or
// the always-present synthetic create row when Goal is nil.
type SearchResult struct {
	Label      string
	Goal       *domain.Goal
	CreateName string
}

// SearchResults runs the fuzzy goal search for the picker dialog and
// appends the synthetic "Create:" row.
func (a *App) SearchResults() []SearchResult {
	pick, ok := a.mode.(ModePickGoal)
	if !ok {
		return nil
	}
	query := strings.TrimSpace(a.searchInput.Value)

	goals, err := a.storage.Goals().Search(a.ctx, query, &pick.IsReward)
	if err != nil {
		a.logger.Printf("goal search failed: %v", err)
		goals = nil
	}

	results := make([]SearchResult, 0, len(goals)+1)
	for _, g := range goals {
		results = append(results, SearchResult{Label: g.Name, Goal: g})
	}

	createName := query
	if createName == "" {
		if pick.IsReward {
			createName = "New reward"
		} else {
			createName = "New goal"
		}
	}
	results = append(results, SearchResult{
		Label:      "Create: " + query,
		CreateName: createName,
	})
	return results
}

// SelectedGoalID resolves the current selection to a goal id: the
// running timer's goal for the timer row, the linked session's goal
// for an existing row, and the active timer's goal as a last resort
// so notes stay addressable while a dialog is open. Returns "" when
// nothing resolves.
func (a *App) SelectedGoalID() string {
	items := a.buildViewItems(internalViewWidth)
	if a.selected >= 0 && a.selected < len(items) {
		switch item := items[a.selected]; item.Kind {
		case ViewItemRunningTimer:
			if a.timer != nil {
				return a.timer.goalID
			}
		case ViewItemSession:
			if item.SessionIndex < len(a.sessions) {
				return a.sessions[item.SessionIndex].GoalID
			}
		}
	}
	if a.timer != nil {
		return a.timer.goalID
	}
	return ""
}

// FormatDayLabel renders the viewed day as "2006-01-02, today" or
// "2006-01-02, -Nd".
func (a *App) FormatDayLabel() string {
	base := a.currentDay.Format("2006-01-02")
	// Both ends are local midnights, but a DST shift makes the gap
	// deviate from a multiple of 24h; round to the nearest day.
	diff := int((a.today().Sub(a.currentDay) + 12*time.Hour) / (24 * time.Hour))
	if diff == 0 {
		return base + ", today"
	}
	return fmt.Sprintf("%s, -%dd", base, diff)
}
