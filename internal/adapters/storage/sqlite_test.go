package storage

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/success-cli/success/internal/domain"
	"github.com/success-cli/success/internal/ports"
)

func newMemory(t *testing.T) ports.Storage {
	t.Helper()
	storage, err := NewMemory(t.TempDir())
	if err != nil {
		t.Fatalf("NewMemory() error = %v", err)
	}
	t.Cleanup(func() { _ = storage.Close() })
	return storage
}

func TestNewMemory(t *testing.T) {
	storage := newMemory(t)
	if storage == nil {
		t.Error("NewMemory() returned nil storage")
	}
	if err := storage.Migrate(); err != nil {
		t.Errorf("Migrate() should be idempotent, got %v", err)
	}
}

func TestGoalRepository_SaveAndFind(t *testing.T) {
	storage := newMemory(t)
	ctx := context.Background()
	repo := storage.Goals()

	t.Run("save and find by id", func(t *testing.T) {
		goal, _ := domain.NewGoal("Read", false, []string{"zathura book.pdf", "mpv rain.mp3"}, "pages")
		if err := repo.Save(ctx, goal); err != nil {
			t.Fatalf("Save() error = %v", err)
		}

		found, err := repo.FindByID(ctx, goal.ID)
		if err != nil {
			t.Fatalf("FindByID() error = %v", err)
		}
		if found.Name != "Read" || found.QuantityUnit != "pages" {
			t.Errorf("found = %+v", found)
		}
		if len(found.Commands) != 2 || found.Commands[0] != "zathura book.pdf" {
			t.Errorf("commands = %v", found.Commands)
		}
	})

	t.Run("find non-existent", func(t *testing.T) {
		_, err := repo.FindByID(ctx, "non-existent-id")
		if err != domain.ErrGoalNotFound {
			t.Errorf("FindByID() error = %v, want ErrGoalNotFound", err)
		}
	})

	t.Run("empty commands round-trip as none", func(t *testing.T) {
		goal, _ := domain.NewGoal("Plain", false, nil, "")
		if err := repo.Save(ctx, goal); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		found, err := repo.FindByID(ctx, goal.ID)
		if err != nil {
			t.Fatalf("FindByID() error = %v", err)
		}
		if len(found.Commands) != 0 {
			t.Errorf("commands = %v, want none", found.Commands)
		}
	})
}

func TestGoalRepository_FindAll_FiltersByReward(t *testing.T) {
	storage := newMemory(t)
	ctx := context.Background()
	repo := storage.Goals()

	work, _ := domain.NewGoal("Write", false, nil, "")
	reward, _ := domain.NewGoal("Game", true, nil, "")
	for _, g := range []*domain.Goal{work, reward} {
		if err := repo.Save(ctx, g); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
	}

	all, err := repo.FindAll(ctx, nil)
	if err != nil {
		t.Fatalf("FindAll() error = %v", err)
	}
	if len(all) != 2 {
		t.Errorf("FindAll(nil) = %d goals, want 2", len(all))
	}

	isReward := true
	rewards, err := repo.FindAll(ctx, &isReward)
	if err != nil {
		t.Fatalf("FindAll() error = %v", err)
	}
	if len(rewards) != 1 || rewards[0].ID != reward.ID {
		t.Errorf("FindAll(reward) = %v", rewards)
	}
}

func TestGoalRepository_Search(t *testing.T) {
	storage := newMemory(t)
	ctx := context.Background()
	repo := storage.Goals()

	read, _ := domain.NewGoal("Read papers", false, nil, "")
	write, _ := domain.NewGoal("Write report", false, nil, "")
	game, _ := domain.NewGoal("Play game", true, nil, "")
	for _, g := range []*domain.Goal{read, write, game} {
		if err := repo.Save(ctx, g); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
	}

	t.Run("fuzzy match on name", func(t *testing.T) {
		results, err := repo.Search(ctx, "read", nil)
		if err != nil {
			t.Fatalf("Search() error = %v", err)
		}
		if len(results) == 0 || results[0].ID != read.ID {
			t.Errorf("Search(read) = %v", results)
		}
	})

	t.Run("reward flag filters candidates", func(t *testing.T) {
		isReward := true
		results, err := repo.Search(ctx, "", &isReward)
		if err != nil {
			t.Fatalf("Search() error = %v", err)
		}
		if len(results) != 1 || results[0].ID != game.ID {
			t.Errorf("Search(rewards) = %v", results)
		}
	})

	t.Run("empty query biased toward recent sessions", func(t *testing.T) {
		// Give "Write report" a session so it outranks the others.
		session := domain.NewSession(write.ID, write.Name, time.Now().Add(-time.Hour), 25*time.Minute, false, nil)
		if err := storage.Sessions().Save(ctx, session); err != nil {
			t.Fatalf("Save() error = %v", err)
		}

		isReward := false
		results, err := repo.Search(ctx, "", &isReward)
		if err != nil {
			t.Fatalf("Search() error = %v", err)
		}
		if len(results) != 2 || results[0].ID != write.ID {
			t.Errorf("Search() order = %v, want the goal with history first", results)
		}
	})
}

func TestSessionRepository_FindByDay(t *testing.T) {
	storage := newMemory(t)
	ctx := context.Background()
	repo := storage.Sessions()

	goal, _ := domain.NewGoal("Read", false, nil, "")
	if err := storage.Goals().Save(ctx, goal); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	day := domain.DayOf(time.Now())
	qty := 12
	inDay1 := domain.NewSession(goal.ID, "Read", day.Add(9*time.Hour), 30*time.Minute, false, &qty)
	inDay2 := domain.NewSession(goal.ID, "Read", day.Add(14*time.Hour), 25*time.Minute, false, nil)
	before := domain.NewSession(goal.ID, "Read", day.Add(-2*time.Hour), 25*time.Minute, false, nil)
	for _, s := range []*domain.Session{inDay2, inDay1, before} {
		if err := repo.Save(ctx, s); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
	}

	sessions, err := repo.FindByDay(ctx, day.Add(12*time.Hour))
	if err != nil {
		t.Fatalf("FindByDay() error = %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("FindByDay() = %d sessions, want 2", len(sessions))
	}
	if sessions[0].ID != inDay1.ID || sessions[1].ID != inDay2.ID {
		t.Error("sessions should come back in start order")
	}
	if sessions[0].Quantity == nil || *sessions[0].Quantity != 12 {
		t.Errorf("quantity = %v, want 12", sessions[0].Quantity)
	}
	if sessions[0].Duration != 30*time.Minute {
		t.Errorf("duration = %v, want 30m", sessions[0].Duration)
	}
}

func TestSessionRepository_FindBetween(t *testing.T) {
	storage := newMemory(t)
	ctx := context.Background()
	repo := storage.Sessions()

	goal, _ := domain.NewGoal("Read", false, nil, "")
	if err := storage.Goals().Save(ctx, goal); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	base := time.Now().Add(-72 * time.Hour)
	for i := 0; i < 3; i++ {
		s := domain.NewSession(goal.ID, "Read", base.Add(time.Duration(i)*24*time.Hour), 25*time.Minute, false, nil)
		if err := repo.Save(ctx, s); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
	}

	t.Run("open range returns all", func(t *testing.T) {
		sessions, err := repo.FindBetween(ctx, nil, nil)
		if err != nil {
			t.Fatalf("FindBetween() error = %v", err)
		}
		if len(sessions) != 3 {
			t.Errorf("FindBetween(nil, nil) = %d, want 3", len(sessions))
		}
	})

	t.Run("bounded range filters", func(t *testing.T) {
		start := base.Add(12 * time.Hour)
		end := base.Add(60 * time.Hour)
		sessions, err := repo.FindBetween(ctx, &start, &end)
		if err != nil {
			t.Fatalf("FindBetween() error = %v", err)
		}
		if len(sessions) != 2 {
			t.Errorf("FindBetween(bounded) = %d, want 2", len(sessions))
		}
	})
}

func TestSessionRepository_FindLastForGoal(t *testing.T) {
	storage := newMemory(t)
	ctx := context.Background()
	repo := storage.Sessions()

	goal, _ := domain.NewGoal("Read", false, nil, "")
	if err := storage.Goals().Save(ctx, goal); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	t.Run("no history returns nil", func(t *testing.T) {
		last, err := repo.FindLastForGoal(ctx, goal.ID)
		if err != nil {
			t.Fatalf("FindLastForGoal() error = %v", err)
		}
		if last != nil {
			t.Errorf("last = %v, want nil", last)
		}
	})

	t.Run("most recent session wins", func(t *testing.T) {
		old := domain.NewSession(goal.ID, "Read", time.Now().Add(-48*time.Hour), 30*time.Minute, false, nil)
		recent := domain.NewSession(goal.ID, "Read", time.Now().Add(-time.Hour), 90*time.Minute, false, nil)
		for _, s := range []*domain.Session{old, recent} {
			if err := repo.Save(ctx, s); err != nil {
				t.Fatalf("Save() error = %v", err)
			}
		}

		last, err := repo.FindLastForGoal(ctx, goal.ID)
		if err != nil {
			t.Fatalf("FindLastForGoal() error = %v", err)
		}
		if last == nil || last.ID != recent.ID {
			t.Errorf("last = %v, want the recent session", last)
		}
		if last.Duration != 90*time.Minute {
			t.Errorf("duration = %v, want 90m", last.Duration)
		}
	})
}

func TestSessionRepository_SurvivesGoalDeletion(t *testing.T) {
	storage := newMemory(t)
	ctx := context.Background()

	goal, _ := domain.NewGoal("Read", false, nil, "pages")
	if err := storage.Goals().Save(ctx, goal); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	session := domain.NewSession(goal.ID, goal.Name, time.Now().Add(-time.Hour), 25*time.Minute, false, nil)
	if err := storage.Sessions().Save(ctx, session); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	// Deleting the goal nulls the session's goal_id via the foreign
	// key; the session row itself must stay readable.
	db := storage.(*sqliteStorage).db
	if _, err := db.ExecContext(ctx, "DELETE FROM goals WHERE id = ?", goal.ID); err != nil {
		t.Fatalf("deleting goal: %v", err)
	}

	sessions, err := storage.Sessions().FindByDay(ctx, time.Now())
	if err != nil {
		t.Fatalf("FindByDay() error = %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("got %d sessions, want 1", len(sessions))
	}
	if sessions[0].GoalID != "" {
		t.Errorf("GoalID = %q, want empty after goal deletion", sessions[0].GoalID)
	}
	if sessions[0].Label != "Read" {
		t.Errorf("Label = %q, want the recorded label", sessions[0].Label)
	}
}

func TestNoteStore(t *testing.T) {
	dir := t.TempDir()
	notes := newNoteStore(dir)

	t.Run("missing note reads empty", func(t *testing.T) {
		text, err := notes.Get("nope")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if text != "" {
			t.Errorf("Get() = %q, want empty", text)
		}
	})

	t.Run("put then get round-trips", func(t *testing.T) {
		if err := notes.Put("g1", "chapter one\n"); err != nil {
			t.Fatalf("Put() error = %v", err)
		}
		text, err := notes.Get("g1")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if text != "chapter one\n" {
			t.Errorf("Get() = %q", text)
		}
	})

	t.Run("path points at a markdown file", func(t *testing.T) {
		path := notes.Path("g1")
		if !strings.HasSuffix(path, "goal_g1.md") {
			t.Errorf("Path() = %q", path)
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("note file should exist after Put: %v", err)
		}
	})
}
