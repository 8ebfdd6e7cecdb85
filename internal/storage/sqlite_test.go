package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/vovakirdan/lane-runner/internal/core"
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

func run(track string, score int, distance float64) core.RunSummary {
	return core.RunSummary{
		RunID:    uuid.NewString(),
		Track:    track,
		Score:    score,
		Distance: distance,
		Coins:    score / 100,
		Weather:  "rain",
		Frames:   score,
	}
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, r := range []core.RunSummary{
		run("jungle", 100, 20),
		run("jungle", 50, 10),
		run("jungle", 200, 45.5),
		run("snow", 500, 90),
	} {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	runs, err := store.TopRuns("jungle", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(runs))
	}

	// Should be sorted descending
	for i, want := range []int{200, 100, 50} {
		if runs[i].Score != want {
			t.Errorf("Run %d score = %d, want %d", i, runs[i].Score, want)
		}
	}
	if runs[0].Distance != 45.5 || runs[0].Coins != 2 || runs[0].Weather != "rain" || runs[0].Frames != 200 {
		t.Errorf("Run fields not round-tripped: %+v", runs[0])
	}
	if runs[0].CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}

	snow, err := store.TopRuns("snow", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(snow) != 1 || snow[0].Score != 500 {
		t.Errorf("Expected one snow run of 500, got %+v", snow)
	}
}

func TestStoreTopRunsLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 20; i++ {
		if _, err := store.SaveRun(run("desert", i*10, float64(i))); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	runs, err := store.TopRuns("desert", 5)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 5 {
		t.Errorf("Expected 5 runs, got %d", len(runs))
	}
	if runs[0].Score != 190 {
		t.Errorf("Expected top score 190, got %d", runs[0].Score)
	}

	// Non-positive limit falls back to ten.
	runs, err = store.TopRuns("desert", 0)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 10 {
		t.Errorf("Expected default limit of 10, got %d", len(runs))
	}
}

func TestStoreHighScoreAndDistance(t *testing.T) {
	store := openTestStore(t)

	score, err := store.HighScore("night")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if score != 0 {
		t.Errorf("Expected high score 0 for empty track, got %d", score)
	}

	store.SaveRun(run("night", 100, 80))
	store.SaveRun(run("night", 300, 60))
	store.SaveRun(run("night", 200, 95))

	score, err = store.HighScore("night")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if score != 300 {
		t.Errorf("Expected high score 300, got %d", score)
	}

	dist, err := store.LongestDistance("night")
	if err != nil {
		t.Fatalf("LongestDistance() failed: %v", err)
	}
	if dist != 95 {
		t.Errorf("Expected longest distance 95, got %f", dist)
	}
}

func TestStoreRunByID(t *testing.T) {
	store := openTestStore(t)

	r := run("jungle", 1234, 321.5)
	if _, err := store.SaveRun(r); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	got, err := store.RunByID(r.RunID)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if got == nil || got.Score != 1234 || got.Track != "jungle" {
		t.Fatalf("Unexpected run %+v", got)
	}

	missing, err := store.RunByID(uuid.NewString())
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if missing != nil {
		t.Errorf("Expected nil for unknown run, got %+v", missing)
	}
}

func TestStoreRejectsDuplicateAndEmptyIDs(t *testing.T) {
	store := openTestStore(t)

	r := run("jungle", 10, 1)
	if _, err := store.SaveRun(r); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if _, err := store.SaveRun(r); err == nil {
		t.Error("Saving the same run twice should fail")
	}

	r.RunID = ""
	if _, err := store.SaveRun(r); err == nil {
		t.Error("Saving a run without an ID should fail")
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(run("jungle", 100, 1))
	store.SaveRun(run("jungle", 200, 2))
	store.SaveRun(run("snow", 500, 3))

	if err := store.ClearRuns("jungle"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	runs, _ := store.TopRuns("jungle", 10)
	if len(runs) != 0 {
		t.Errorf("Expected 0 runs after clear, got %d", len(runs))
	}

	snow, _ := store.TopRuns("snow", 10)
	if len(snow) != 1 {
		t.Errorf("Expected snow runs to be preserved, got %d", len(snow))
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(run("desert", 100, 10))
	store.SaveRun(run("desert", 300, 30))
	store.SaveRun(run("snow", 700, 70))

	stats, err := store.Stats("desert")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Runs != 2 || stats.HighScore != 300 || stats.AvgScore != 200 {
		t.Errorf("Unexpected stats %+v", stats)
	}
	if stats.TotalDistance != 40 || stats.TotalCoins != 4 {
		t.Errorf("Unexpected totals %+v", stats)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed should be set")
	}

	empty, err := store.Stats("night")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if empty.Runs != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("Expected empty stats, got %+v", empty)
	}

	all, err := store.AllStats()
	if err != nil {
		t.Fatalf("AllStats() failed: %v", err)
	}
	if len(all) != 2 || all["snow"].HighScore != 700 {
		t.Errorf("Unexpected AllStats %+v", all)
	}
}
