package db

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/fois-tutorial-setup/internal/setup"
	dbpkg "github.com/dtnitsch/fois-tutorial-setup/pkg/db"
)

func runHistory(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := &cli.App{
		Name:           "fois-setup",
		Writer:         &out,
		ExitErrHandler: func(*cli.Context, error) {},
		Commands: []*cli.Command{
			{
				Name: "history",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "history-db"},
					&cli.IntFlag{Name: "limit", Value: 20},
					&cli.BoolFlag{Name: "latest"},
				},
				Action: HistoryAction,
			},
		},
	}
	err := app.Run(append([]string{"fois-setup", "history"}, args...))
	return out.String(), err
}

func seedHistory(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "history.db")
	database, err := dbpkg.Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer database.Close()

	base := time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)
	runs := []dbpkg.Run{
		{CreatedAt: base, ArchiveURL: "https://example.com/a.zip", DataDir: "/srv/fois", Source: "fallback", FetchError: "status 404", TTLCount: 3, ImageCount: 3, Verified: true},
		{CreatedAt: base.Add(time.Hour), ArchiveURL: "https://example.com/a.zip", DataDir: "/srv/fois", Source: "download", Layout: "nested-twice", TTLCount: 12, ImageCount: 4, Verified: true},
	}
	for _, r := range runs {
		if _, err := database.InsertRun(r); err != nil {
			t.Fatalf("InsertRun() error = %v", err)
		}
	}
	return path
}

func TestHistoryAction_List(t *testing.T) {
	path := seedHistory(t)

	out, err := runHistory(t, "--history-db", path)
	if err != nil {
		t.Fatalf("history error = %v", err)
	}
	if !strings.Contains(out, "Total: 2 runs") {
		t.Errorf("output missing total:\n%s", out)
	}
	if strings.Index(out, "download") > strings.Index(out, "fallback") {
		t.Errorf("runs not listed newest first:\n%s", out)
	}
}

func TestHistoryAction_Latest(t *testing.T) {
	path := seedHistory(t)

	out, err := runHistory(t, "--history-db", path, "--latest")
	if err != nil {
		t.Fatalf("history --latest error = %v", err)
	}
	for _, want := range []string{"Source:      download", "TTL files:   12", "Layout:      nested-twice", "Error:       -"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "fallback") {
		t.Errorf("--latest printed an older run:\n%s", out)
	}
}

func TestHistoryAction_LatestEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.db")

	out, err := runHistory(t, "--history-db", path, "--latest")
	if err != nil {
		t.Fatalf("history --latest error = %v", err)
	}
	if strings.TrimSpace(out) != "No runs recorded" {
		t.Errorf("output = %q, want %q", out, "No runs recorded")
	}
}

func TestHistoryAction_MissingPath(t *testing.T) {
	_, err := runHistory(t)
	var exitErr cli.ExitCoder
	if !errors.As(err, &exitErr) {
		t.Fatalf("history error = %v, want cli.ExitCoder", err)
	}
	if exitErr.ExitCode() != setup.ExitConfigError {
		t.Errorf("exit code = %d, want %d", exitErr.ExitCode(), setup.ExitConfigError)
	}
}
