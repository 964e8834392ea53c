package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{100, 50, 200} {
		if _, err := store.SaveScore("cafe", score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("pool", 500); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("cafe", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("expected 3 scores, got %d", len(scores))
	}
	if scores[0].Score != 200 || scores[1].Score != 100 || scores[2].Score != 50 {
		t.Errorf("scores not in descending order: %+v", scores)
	}

	top, err := store.TopScores("cafe", 2)
	if err != nil || len(top) != 2 {
		t.Errorf("TopScores(limit 2) = %d entries, %v", len(top), err)
	}
}

func TestStoreHighScoreAndClear(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("cafe")
	if err != nil || high != 0 {
		t.Errorf("HighScore() on empty = %d, %v", high, err)
	}

	store.SaveScore("cafe", 7)
	store.SaveScore("cafe", 12)
	if high, _ := store.HighScore("cafe"); high != 12 {
		t.Errorf("HighScore() = %d, expected 12", high)
	}

	if err := store.ClearScores("cafe"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}
	if high, _ := store.HighScore("cafe"); high != 0 {
		t.Errorf("HighScore() after clear = %d", high)
	}
}

func TestStoreSceneStats(t *testing.T) {
	store := openTestStore(t)
	store.SaveScore("cafe", 4)
	store.SaveScore("cafe", 8)
	store.SaveScore("pool", 1)

	stats, err := store.AllSceneStats()
	if err != nil {
		t.Fatalf("AllSceneStats() failed: %v", err)
	}
	cafe := stats["cafe"]
	if cafe == nil || cafe.Plays != 2 || cafe.HighScore != 8 || cafe.AvgScore != 6 || cafe.TotalScore != 12 {
		t.Errorf("cafe stats = %+v", cafe)
	}
	if stats["pool"] == nil || stats["pool"].Plays != 1 {
		t.Errorf("pool stats = %+v", stats["pool"])
	}
}

func TestStoreRuns(t *testing.T) {
	store := openTestStore(t)

	first := Run{
		SceneID:    "balls_grid",
		Steps:      600,
		Bodies:     250,
		Pairs:      123456,
		Collisions: 789,
		WallTime:   1500 * time.Millisecond,
		Hash:       0xfedcba9876543210,
	}
	id, err := store.SaveRun(first)
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	store.SaveRun(Run{SceneID: "balls_quadtree", Steps: 600, Bodies: 250, Hash: 1})

	got, err := store.RunByID(id)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if got.Hash != first.Hash || got.WallTime != first.WallTime || got.Pairs != first.Pairs {
		t.Errorf("RunByID() = %+v, expected %+v", got, first)
	}

	all, err := store.RecentRuns("", 10)
	if err != nil || len(all) != 2 {
		t.Fatalf("RecentRuns(all) = %d, %v", len(all), err)
	}
	if all[0].SceneID != "balls_quadtree" {
		t.Errorf("RecentRuns should be newest first, got %q", all[0].SceneID)
	}

	grid, _ := store.RecentRuns("balls_grid", 10)
	if len(grid) != 1 || grid[0].Collisions != 789 {
		t.Errorf("RecentRuns(balls_grid) = %+v", grid)
	}

	if _, err := store.RunByID(999); !errors.Is(err, ErrNotFound) {
		t.Errorf("RunByID(missing) error = %v", err)
	}
}
