package core

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/success-cli/success/internal/domain"
	"github.com/success-cli/success/internal/ports"
)

// defaultDuration is used whenever duration input is missing or
// unparseable; the pick-duration flow never rejects.
const defaultDuration = 25 * time.Minute

// internalViewWidth is used for selection math where the rendered
// width does not matter.
const internalViewWidth = 20

// Deps carries the collaborators the state machine drives.
type Deps struct {
	Storage    ports.Storage
	Processes  ports.ProcessManager
	Notifier   ports.Notifier
	Logger     *log.Logger
	ArchiveDir string
}

// App owns the whole interactive state: current mode, day view,
// running timer and pending session. It is single-threaded; the
// frontend calls HandleKey, Tick and BuildView from one goroutine.
type App struct {
	ctx      context.Context
	storage  ports.Storage
	procs    ports.ProcessManager
	notifier ports.Notifier
	logger   *log.Logger
	clock    func() time.Time

	archiveDir string

	goals    []*domain.Goal
	sessions []*domain.Session

	currentDay time.Time
	selected   int
	mode       Mode

	searchInput    TextBuffer
	searchSelected int
	durationInput  TextBuffer
	quantityInput  TextBuffer

	timer   *timerSession
	pending *pendingSession

	notes       string
	notesCursor int // byte offset into notes, always on a rune boundary
}

// New builds the app and loads today's view from storage.
func New(ctx context.Context, deps Deps) (*App, error) {
	logger := deps.Logger
	if logger == nil {
		logger = log.New(os.Stderr, "", log.LstdFlags)
	}

	a := &App{
		ctx:        ctx,
		storage:    deps.Storage,
		procs:      deps.Processes,
		notifier:   deps.Notifier,
		logger:     logger,
		clock:      time.Now,
		archiveDir: deps.ArchiveDir,
		mode:       ModeView{},
	}

	goals, err := a.storage.Goals().FindAll(ctx, nil)
	if err != nil {
		return nil, err
	}
	a.goals = goals

	a.currentDay = domain.DayOf(a.clock())
	sessions, err := a.storage.Sessions().FindByDay(ctx, a.currentDay)
	if err != nil {
		return nil, err
	}
	a.sessions = sessions

	a.selectLast()
	a.refreshNotesForSelection()
	return a, nil
}

// HandleKey routes one input event to the current mode's handler and
// reports whether the user asked to quit.
func (a *App) HandleKey(key KeyEvent) bool {
	if key.Ctrl && key.Code == KeyRune && key.Rune == 'c' {
		return true
	}
	switch m := a.mode.(type) {
	case ModeView:
		return a.handleViewKey(key)
	case ModePickGoal:
		a.handleSearchKey(key, m)
	case ModeGoalForm:
		a.handleFormKey(key, m)
	case ModeQuantityPrompt:
		a.handleQuantityKey(key)
	case ModePickDuration:
		a.handleDurationKey(key, m)
	case ModeRunningTimer:
		// Browsing and note editing stay available while the timer
		// runs; the add rows are absent so no new session can start.
		return a.handleViewKey(key)
	case ModeEditNotes:
		a.handleNotesKey(key)
	}
	return false
}

// Tick advances the timer engine once. The frontend calls it on every
// poll wake (roughly every 200ms).
func (a *App) Tick() {
	a.tickTimer(a.clock())
}

// Shutdown tears down helper processes of any active timer. Calling
// it again is a no-op.
func (a *App) Shutdown() {
	if a.timer != nil {
		a.procs.TerminateAll(a.timer.spawned)
		a.timer = nil
	}
}

// Mode returns the current interaction mode.
func (a *App) Mode() Mode {
	return a.mode
}

// CurrentDay returns the day the session list shows.
func (a *App) CurrentDay() time.Time {
	return a.currentDay
}

// Selected returns the selected row index of the view item list.
func (a *App) Selected() int {
	return a.selected
}

// ArchiveDir returns the archive location for display and opening.
func (a *App) ArchiveDir() string {
	return a.archiveDir
}

// SearchInput exposes the goal picker buffer for rendering.
func (a *App) SearchInput() *TextBuffer {
	return &a.searchInput
}

// SearchSelected returns the highlighted picker row.
func (a *App) SearchSelected() int {
	return a.searchSelected
}

// DurationInput exposes the duration picker buffer for rendering.
func (a *App) DurationInput() *TextBuffer {
	return &a.durationInput
}

// QuantityInput exposes the quantity prompt buffer for rendering.
func (a *App) QuantityInput() *TextBuffer {
	return &a.quantityInput
}

// Notes returns the note text of the selected goal.
func (a *App) Notes() string {
	return a.notes
}

// TimerActive reports whether a countdown is running.
func (a *App) TimerActive() bool {
	return a.timer != nil
}

// selectLast moves selection to the most recent item.
func (a *App) selectLast() {
	n := len(a.buildViewItems(internalViewWidth))
	if n == 0 {
		a.selected = 0
		return
	}
	a.selected = n - 1
}

// today returns midnight of the current wall-clock day.
func (a *App) today() time.Time {
	return domain.DayOf(a.clock())
}

// goalByID looks a goal up in the cached goal list.
func (a *App) goalByID(id string) *domain.Goal {
	for _, g := range a.goals {
		if g.ID == id {
			return g
		}
	}
	return nil
}

// goalQuantityUnit returns the quantity unit configured on a goal, or
// "" when the goal tracks none.
func (a *App) goalQuantityUnit(goalID string) string {
	if g := a.goalByID(goalID); g != nil {
		return g.QuantityUnit
	}
	return ""
}

// reloadDay replaces the session list with the stored sessions of
// day and makes it the viewed day.
func (a *App) reloadDay(day time.Time) error {
	sessions, err := a.storage.Sessions().FindByDay(a.ctx, day)
	if err != nil {
		return err
	}
	a.currentDay = day
	a.sessions = sessions
	return nil
}
