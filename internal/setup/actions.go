package setup

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/fois-tutorial-setup/pkg/db"
	setuppkg "github.com/dtnitsch/fois-tutorial-setup/pkg/setup"
	"github.com/dtnitsch/fois-tutorial-setup/pkg/verify"
)

const (
	ExitOK           = 0
	ExitVerifyFailed = 1
	ExitConfigError  = 2
)

// SetupAction downloads the tutorial archive (or falls back to samples) and verifies it.
func SetupAction(c *cli.Context) error {
	return run(c, false)
}

// SamplesAction skips the download and writes placeholder samples.
func SamplesAction(c *cli.Context) error {
	return run(c, true)
}

// VerifyAction only inspects the data directory.
func VerifyAction(c *cli.Context) error {
	cfg, err := ConfigFromContext(c)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), ExitConfigError)
	}
	report := verify.Verify(cfg.DataDir, cfg.EventFramesDir, os.Stdout)
	if !report.OK {
		return cli.Exit("", ExitVerifyFailed)
	}
	return nil
}

func run(c *cli.Context, samplesOnly bool) error {
	logger := NewLogger(c)
	cfg, err := ConfigFromContext(c)
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		return cli.Exit(fmt.Sprintf("Error: %v", err), ExitConfigError)
	}

	runner := setuppkg.NewRunner(cfg, os.Stdout, logger)

	if cfg.HistoryDB != "" {
		database, err := db.Open(cfg.HistoryDB)
		if err != nil {
			logger.Error("failed to open history database", "path", cfg.HistoryDB, "error", err)
			return cli.Exit(fmt.Sprintf("Error: %v", err), ExitConfigError)
		}
		defer database.Close()
		runner.History = database
	}

	fmt.Println("🚀 Setting up Knowledge Enrichment Tutorial...")

	var outcome *setuppkg.Outcome
	if samplesOnly {
		outcome, err = runner.Fallback()
	} else {
		outcome, err = runner.Run(c.Context)
	}
	if err != nil {
		logger.Error("setup aborted", "error", err)
		return cli.Exit(fmt.Sprintf("Error: %v", err), ExitConfigError)
	}

	logger.Info("setup finished",
		"source", outcome.Source,
		"ttl_files", outcome.Report.TTLCount,
		"image_files", outcome.Report.ImageCount,
		"verified", outcome.Report.OK,
	)

	fmt.Println("\n🎉 Setup complete! You can now run the tutorial cells.")
	if !outcome.OK() {
		return cli.Exit("", ExitVerifyFailed)
	}
	return nil
}
