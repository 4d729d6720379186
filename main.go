package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	dbactions "github.com/dtnitsch/fois-tutorial-setup/internal/db"
	"github.com/dtnitsch/fois-tutorial-setup/internal/setup"
	"github.com/dtnitsch/fois-tutorial-setup/pkg/help"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	app := &cli.App{
		Name:    "fois-setup",
		Usage:   "fetch the FOIS 2025 tutorial data, or create sample data if the download fails",
		Version: version,
		Flags:   setup.ConfigFlags(),
		Action:  setup.SetupAction,
		Commands: []*cli.Command{
			{
				Name:   "setup",
				Usage:  "download and install the tutorial archive, falling back to samples, then verify",
				Flags:  setup.ConfigFlags(),
				Action: setup.SetupAction,
			},
			{
				Name:   "samples",
				Usage:  "write placeholder sample data without downloading, then verify",
				Flags:  setup.ConfigFlags(),
				Action: setup.SamplesAction,
			},
			{
				Name:   "verify",
				Usage:  "check that event_frames holds at least one .ttl file",
				Flags:  setup.ConfigFlags(),
				Action: setup.VerifyAction,
			},
			{
				Name:  "history",
				Usage: "list runs recorded in the history database",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "history-db", Usage: "SQLite database written by setup --history-db", Required: true},
					&cli.IntFlag{Name: "limit", Usage: "max runs to show (0 for all)", Value: 20},
					&cli.BoolFlag{Name: "latest", Usage: "show details of the most recent run only"},
				},
				Action: dbactions.HistoryAction,
			},
			{
				Name:  "coldstart",
				Usage: "print a quick-start reference",
				Action: func(c *cli.Context) error {
					fmt.Print(help.ColdstartYAML)
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(setup.ExitConfigError)
	}
}
