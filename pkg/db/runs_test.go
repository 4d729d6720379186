package db

import (
	"path/filepath"
	"testing"
	"time"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	database := &DB{path: ":memory:"}
	var err error
	database.DB, err = openDB(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	// Each pooled connection to :memory: is a separate database.
	database.SetMaxOpenConns(1)

	if err := database.InitSchema(); err != nil {
		t.Fatalf("failed to initialize schema: %v", err)
	}

	return database
}

func TestInsertRun(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	runID, err := db.InsertRun(Run{
		ArchiveURL: "https://example.com/a.zip",
		DataDir:    "/content/tutorial-fois-2025",
		Source:     "fallback",
		FetchError: "status code: 404",
		TTLCount:   3,
		Verified:   true,
	})
	if err != nil {
		t.Fatalf("InsertRun() error = %v", err)
	}
	if runID == 0 {
		t.Fatal("InsertRun() returned 0 ID")
	}

	got, err := db.GetRunByID(runID)
	if err != nil {
		t.Fatalf("GetRunByID() error = %v", err)
	}
	if got.Source != "fallback" || got.TTLCount != 3 || !got.Verified {
		t.Errorf("GetRunByID() = %+v", got)
	}
	if got.FetchError != "status code: 404" {
		t.Errorf("FetchError = %q", got.FetchError)
	}
	if got.Layout != "" {
		t.Errorf("Layout = %q, want empty", got.Layout)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt was not set")
	}
}

func TestListRuns_Order(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, source := range []string{"fallback", "download", "download"} {
		_, err := db.InsertRun(Run{
			CreatedAt:  base.Add(time.Duration(i) * time.Hour),
			ArchiveURL: "https://example.com/a.zip",
			DataDir:    "/data",
			Source:     source,
			Layout:     "nested-twice",
		})
		if err != nil {
			t.Fatalf("InsertRun() error = %v", err)
		}
	}

	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{name: "all", limit: 0, want: 3},
		{name: "limited", limit: 2, want: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runs, err := db.ListRuns(tt.limit)
			if err != nil {
				t.Fatalf("ListRuns() error = %v", err)
			}
			if len(runs) != tt.want {
				t.Fatalf("ListRuns() returned %d runs, want %d", len(runs), tt.want)
			}
			if !runs[0].CreatedAt.Equal(base.Add(2 * time.Hour)) {
				t.Errorf("first run CreatedAt = %v, want newest", runs[0].CreatedAt)
			}
		})
	}

	latest, err := db.LatestRun()
	if err != nil {
		t.Fatalf("LatestRun() error = %v", err)
	}
	if latest == nil || latest.Source != "download" {
		t.Errorf("LatestRun() = %+v", latest)
	}
}

func TestLatestRun_Empty(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	latest, err := db.LatestRun()
	if err != nil {
		t.Fatalf("LatestRun() error = %v", err)
	}
	if latest != nil {
		t.Errorf("LatestRun() = %+v, want nil", latest)
	}
}

func TestGetRunByID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	if _, err := db.GetRunByID(42); err == nil {
		t.Error("GetRunByID(42) error = nil, want not found")
	}
}

func TestOpen_FileAndReopen(t *testing.T) {
	dir := t.TempDir()

	db, err := Open(dir)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if db.Path() != filepath.Join(dir, DefaultDBName) {
		t.Errorf("Path() = %q", db.Path())
	}
	if _, err := db.InsertRun(Run{ArchiveURL: "u", DataDir: "d", Source: "download"}); err != nil {
		t.Fatalf("InsertRun() error = %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	db, err = Open(filepath.Join(dir, DefaultDBName))
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer db.Close()
	runs, err := db.ListRuns(0)
	if err != nil {
		t.Fatalf("ListRuns() error = %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("ListRuns() after reopen = %d runs, want 1", len(runs))
	}
}

func TestOpen_EmptyPath(t *testing.T) {
	if _, err := Open(""); err == nil {
		t.Error("Open(\"\") error = nil")
	}
}
