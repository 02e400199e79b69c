package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestSaveAndGetPattern(t *testing.T) {
	store := openTestStore(t)

	doc := `{"type": "ring", "count": 8, "speed": 150, "start_angle": 0}`
	if _, err := store.SavePattern("ring8", "json", doc); err != nil {
		t.Fatalf("SavePattern() failed: %v", err)
	}

	entry, err := store.GetPattern("ring8")
	if err != nil {
		t.Fatalf("GetPattern() failed: %v", err)
	}
	if entry == nil {
		t.Fatal("GetPattern() returned nil for saved pattern")
	}
	if entry.Format != "json" || entry.Document != doc {
		t.Errorf("GetPattern() = %q/%q, expected json/%q", entry.Format, entry.Document, doc)
	}
}

func TestSavePatternUpsert(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SavePattern("p", "json", `{"type": "ring"}`); err != nil {
		t.Fatalf("SavePattern() failed: %v", err)
	}
	if _, err := store.SavePattern("p", "yaml", "type: spread"); err != nil {
		t.Fatalf("SavePattern() on existing name failed: %v", err)
	}

	entry, err := store.GetPattern("p")
	if err != nil {
		t.Fatalf("GetPattern() failed: %v", err)
	}
	if entry.Format != "yaml" || entry.Document != "type: spread" {
		t.Errorf("upsert kept %q/%q, expected replacement", entry.Format, entry.Document)
	}

	entries, err := store.ListPatterns()
	if err != nil {
		t.Fatalf("ListPatterns() failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("ListPatterns() returned %d entries after upsert, expected 1", len(entries))
	}
}

func TestGetPatternMissing(t *testing.T) {
	store := openTestStore(t)

	entry, err := store.GetPattern("nope")
	if err != nil {
		t.Fatalf("GetPattern() failed: %v", err)
	}
	if entry != nil {
		t.Errorf("GetPattern() = %+v for missing name, expected nil", entry)
	}
}

func TestListPatternsSorted(t *testing.T) {
	store := openTestStore(t)

	for _, name := range []string{"zeta", "alpha", "mid"} {
		if _, err := store.SavePattern(name, "json", "{}"); err != nil {
			t.Fatalf("SavePattern(%q) failed: %v", name, err)
		}
	}

	entries, err := store.ListPatterns()
	if err != nil {
		t.Fatalf("ListPatterns() failed: %v", err)
	}
	want := []string{"alpha", "mid", "zeta"}
	if len(entries) != len(want) {
		t.Fatalf("ListPatterns() returned %d entries, expected %d", len(entries), len(want))
	}
	for i, e := range entries {
		if e.Name != want[i] {
			t.Errorf("entry %d = %q, expected %q", i, e.Name, want[i])
		}
	}
}

func TestDeletePattern(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SavePattern("gone", "json", "{}"); err != nil {
		t.Fatalf("SavePattern() failed: %v", err)
	}

	deleted, err := store.DeletePattern("gone")
	if err != nil {
		t.Fatalf("DeletePattern() failed: %v", err)
	}
	if !deleted {
		t.Error("DeletePattern() = false for existing pattern")
	}

	deleted, err = store.DeletePattern("gone")
	if err != nil {
		t.Fatalf("DeletePattern() failed: %v", err)
	}
	if deleted {
		t.Error("DeletePattern() = true for already deleted pattern")
	}
}

func TestRunsAndStats(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.RecordRun("spiral-storm", 12.5, 300); err != nil {
		t.Fatalf("RecordRun() failed: %v", err)
	}
	if _, err := store.RecordRun("spiral-storm", 7.5, 180); err != nil {
		t.Fatalf("RecordRun() failed: %v", err)
	}
	if _, err := store.RecordRun("ring-pulse", 3, 48); err != nil {
		t.Fatalf("RecordRun() failed: %v", err)
	}

	runs, err := store.RecentRuns(2)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("RecentRuns(2) returned %d entries, expected 2", len(runs))
	}
	// Newest first
	if runs[0].PatternName != "ring-pulse" {
		t.Errorf("newest run = %q, expected ring-pulse", runs[0].PatternName)
	}

	stats, err := store.GetRunStats("spiral-storm")
	if err != nil {
		t.Fatalf("GetRunStats() failed: %v", err)
	}
	if stats.Runs != 2 {
		t.Errorf("Runs = %d, expected 2", stats.Runs)
	}
	if stats.TotalSeconds != 20 {
		t.Errorf("TotalSeconds = %v, expected 20", stats.TotalSeconds)
	}
	if stats.TotalSpawned != 480 {
		t.Errorf("TotalSpawned = %d, expected 480", stats.TotalSpawned)
	}
	if stats.LastRun.IsZero() {
		t.Error("LastRun is zero, expected a timestamp")
	}
}

func TestGetRunStatsEmpty(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.GetRunStats("never-run")
	if err != nil {
		t.Fatalf("GetRunStats() failed: %v", err)
	}
	if stats.Runs != 0 || stats.TotalSpawned != 0 {
		t.Errorf("stats = %+v for unseen pattern, expected zeros", stats)
	}
}
