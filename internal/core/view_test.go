package core

import (
	"strings"
	"testing"
	"time"

	"github.com/success-cli/success/internal/domain"
)

func intPtr(v int) *int { return &v }

func TestBuildView_SessionLabels(t *testing.T) {
	storage := newFakeStorage()
	goal, _ := domain.NewGoal("Read", false, nil, "pages")
	reward, _ := domain.NewGoal("Game", true, nil, "")
	storage.goals = []*domain.Goal{goal, reward}
	start := domain.DayOf(time.Now()).Add(9 * time.Hour)
	storage.sessions = []*domain.Session{
		domain.NewSession(goal.ID, "Read", start, 30*time.Minute, false, intPtr(12)),
		domain.NewSession(reward.ID, "Game", start.Add(time.Hour), 15*time.Minute, true, nil),
	}
	app, _, _ := newTestApp(t, storage)

	items := app.BuildView(40)
	if len(items) != 3 {
		t.Fatalf("items = %d, want 2 sessions + add row", len(items))
	}
	if want := "[S] Read (12 pages in 30m) [09:00-09:30]"; items[0].Label != want {
		t.Errorf("label = %q, want %q", items[0].Label, want)
	}
	if want := "[R] Game (15m) [10:00-10:15]"; items[1].Label != want {
		t.Errorf("label = %q, want %q", items[1].Label, want)
	}
}

func TestBuildView_AddRowVariants(t *testing.T) {
	storage := newFakeStorage()
	goal, _ := domain.NewGoal("Read", false, nil, "")
	reward, _ := domain.NewGoal("Game", true, nil, "")
	storage.goals = []*domain.Goal{goal, reward}

	t.Run("empty day offers work", func(t *testing.T) {
		app, _, _ := newTestApp(t, storage)
		items := app.BuildView(40)
		last := items[len(items)-1]
		if last.Kind != ViewItemAddSession || last.Label != "[+] Work on new goal" {
			t.Errorf("last = %+v", last)
		}
	})

	t.Run("after work offers reward", func(t *testing.T) {
		s := newFakeStorage()
		s.goals = storage.goals
		s.sessions = []*domain.Session{
			domain.NewSession(goal.ID, "Read", time.Now().Add(-time.Hour), 30*time.Minute, false, nil),
		}
		app, _, _ := newTestApp(t, s)
		items := app.BuildView(40)
		last := items[len(items)-1]
		if last.Kind != ViewItemAddReward || last.Label != "[+] Receive reward" {
			t.Errorf("last = %+v", last)
		}
	})

	t.Run("after reward offers work again", func(t *testing.T) {
		s := newFakeStorage()
		s.goals = storage.goals
		s.sessions = []*domain.Session{
			domain.NewSession(reward.ID, "Game", time.Now().Add(-time.Hour), 15*time.Minute, true, nil),
		}
		app, _, _ := newTestApp(t, s)
		items := app.BuildView(40)
		last := items[len(items)-1]
		if last.Kind != ViewItemAddSession {
			t.Errorf("last = %+v", last)
		}
	})
}

func TestBuildView_NoAddRowWhileTimerRuns(t *testing.T) {
	storage := newFakeStorage()
	goal, _ := domain.NewGoal("Read", false, nil, "")
	storage.goals = []*domain.Goal{goal}
	app, _, _ := newTestApp(t, storage)

	app.startTimer(goal.Name, goal.ID, time.Minute, false)
	items := app.BuildView(40)
	if len(items) != 1 {
		t.Fatalf("items = %d, want only the timer row", len(items))
	}
	if items[0].Kind != ViewItemRunningTimer {
		t.Errorf("kind = %v, want ViewItemRunningTimer", items[0].Kind)
	}
	lines := strings.Split(items[0].Label, "\n")
	if len(lines) != 2 {
		t.Fatalf("timer label = %q, want two lines", items[0].Label)
	}
	if !strings.Contains(lines[0], goal.Name) {
		t.Errorf("first line = %q, want the goal name", lines[0])
	}
}

func TestBuildView_QuantityPromptShowsInsertRow(t *testing.T) {
	storage := newFakeStorage()
	goal, _ := domain.NewGoal("Read", false, nil, "pages")
	storage.goals = []*domain.Goal{goal}
	app, _, clock := newTestApp(t, storage)

	app.startTimer(goal.Name, goal.ID, time.Minute, false)
	clock.Advance(2 * time.Minute)
	app.Tick()

	if _, ok := app.Mode().(ModeQuantityPrompt); !ok {
		t.Fatalf("Mode = %T, want ModeQuantityPrompt", app.Mode())
	}
	items := app.BuildView(40)
	last := items[len(items)-1]
	if want := "[+] Insert pages for Read"; last.Label != want {
		t.Errorf("last = %q, want %q", last.Label, want)
	}
}

func TestSearchResults_CreateRowAlwaysPresent(t *testing.T) {
	storage := newFakeStorage()
	goal, _ := domain.NewGoal("Read books", false, nil, "")
	reward, _ := domain.NewGoal("Game", true, nil, "")
	storage.goals = []*domain.Goal{goal, reward}
	app, _, _ := newTestApp(t, storage)

	press(app, KeyEnter) // work picker on an empty day
	typeString(app, "read")

	results := app.SearchResults()
	if len(results) != 2 {
		t.Fatalf("results = %v, want the match and the create row", results)
	}
	if results[0].Goal == nil || results[0].Goal.ID != goal.ID {
		t.Errorf("first result = %+v, want the work goal", results[0])
	}
	if results[1].Goal != nil || results[1].CreateName != "read" {
		t.Errorf("create row = %+v", results[1])
	}
}

func TestSearchResults_RewardPickerFiltersKind(t *testing.T) {
	storage := newFakeStorage()
	goal, _ := domain.NewGoal("Read", false, nil, "")
	reward, _ := domain.NewGoal("Game", true, nil, "")
	storage.goals = []*domain.Goal{goal, reward}
	storage.sessions = []*domain.Session{
		domain.NewSession(goal.ID, "Read", time.Now().Add(-time.Hour), 30*time.Minute, false, nil),
	}
	app, _, _ := newTestApp(t, storage)

	press(app, KeyEnter) // reward picker, last session was work

	pick, ok := app.Mode().(ModePickGoal)
	if !ok || !pick.IsReward {
		t.Fatalf("Mode = %#v, want the reward picker", app.Mode())
	}
	results := app.SearchResults()
	if len(results) != 2 {
		t.Fatalf("results = %v", results)
	}
	if results[0].Goal.ID != reward.ID {
		t.Errorf("first result = %+v, want the reward", results[0])
	}
	if results[1].CreateName != "New reward" {
		t.Errorf("create name = %q, want %q", results[1].CreateName, "New reward")
	}
}

func TestFormatDayLabel(t *testing.T) {
	app, _, _ := newTestApp(t, newFakeStorage())

	if got := app.FormatDayLabel(); !strings.HasSuffix(got, ", today") {
		t.Errorf("label = %q, want today suffix", got)
	}

	press(app, KeyLeft)
	press(app, KeyLeft)
	if got := app.FormatDayLabel(); !strings.HasSuffix(got, ", -2d") {
		t.Errorf("label = %q, want -2d suffix", got)
	}
}

func TestFormatDayLabel_SpringForwardDay(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tz database unavailable")
	}

	app, _, clock := newTestApp(t, newFakeStorage())
	// 2026-03-08 is the spring-forward day: only 23h separate its
	// midnight from the next one.
	clock.now = time.Date(2026, 3, 9, 10, 0, 0, 0, loc)
	app.currentDay = time.Date(2026, 3, 8, 0, 0, 0, 0, loc)

	if got := app.FormatDayLabel(); got != "2026-03-08, -1d" {
		t.Errorf("label = %q, want %q", got, "2026-03-08, -1d")
	}
}
