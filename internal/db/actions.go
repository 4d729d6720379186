package db

import (
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/fois-tutorial-setup/internal/setup"
	dbpkg "github.com/dtnitsch/fois-tutorial-setup/pkg/db"
)

// HistoryAction lists recorded setup runs, newest first. With --latest it
// prints the details of the most recent run only.
func HistoryAction(c *cli.Context) error {
	path := c.String("history-db")
	if path == "" {
		return cli.Exit("Error: --history-db is required", setup.ExitConfigError)
	}

	database, err := dbpkg.Open(path)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error: failed to open database: %v", err), setup.ExitConfigError)
	}
	defer database.Close()

	w := c.App.Writer

	if c.Bool("latest") {
		run, err := database.LatestRun()
		if err != nil {
			return fmt.Errorf("failed to get latest run: %w", err)
		}
		if run == nil {
			fmt.Fprintln(w, "No runs recorded")
			return nil
		}
		printRun(w, run)
		return nil
	}

	runs, err := database.ListRuns(c.Int("limit"))
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded")
		return nil
	}

	fmt.Fprintf(w, "%-6s %-20s %-9s %-6s %-7s %-9s %-14s %s\n",
		"ID", "Created", "Source", "TTL", "Images", "Verified", "Layout", "Error")
	fmt.Fprintln(w, strings.Repeat("-", 110))

	for _, r := range runs {
		fmt.Fprintf(w, "%-6d %-20s %-9s %-6d %-7d %-9t %-14s %s\n",
			r.RunID,
			r.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			r.Source,
			r.TTLCount,
			r.ImageCount,
			r.Verified,
			dash(r.Layout),
			dash(r.FetchError),
		)
	}

	fmt.Fprintf(w, "\nTotal: %d runs\n", len(runs))
	return nil
}

func printRun(w io.Writer, r *dbpkg.Run) {
	fmt.Fprintf(w, "Run:         %d\n", r.RunID)
	fmt.Fprintf(w, "Created:     %s\n", r.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Archive URL: %s\n", r.ArchiveURL)
	fmt.Fprintf(w, "Data dir:    %s\n", r.DataDir)
	fmt.Fprintf(w, "Source:      %s\n", r.Source)
	fmt.Fprintf(w, "Layout:      %s\n", dash(r.Layout))
	fmt.Fprintf(w, "TTL files:   %d\n", r.TTLCount)
	fmt.Fprintf(w, "Images:      %d\n", r.ImageCount)
	fmt.Fprintf(w, "Verified:    %t\n", r.Verified)
	fmt.Fprintf(w, "Error:       %s\n", dash(r.FetchError))
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
