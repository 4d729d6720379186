package setup

import (
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/fois-tutorial-setup/internal/common"
	"github.com/dtnitsch/fois-tutorial-setup/models"
)

// ConfigFlags are accepted by every command that touches the data directory.
// Unset flags leave the default (or config file) value alone.
func ConfigFlags() []cli.Flag {
	d := models.DefaultSetupConfig()
	return []cli.Flag{
		&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "YAML config file"},
		&cli.StringFlag{Name: "url", Usage: "archive URL", Value: d.ArchiveURL},
		&cli.StringFlag{Name: "data-dir", Usage: "tutorial data directory", Value: d.DataDir},
		&cli.StringFlag{Name: "extract-root", Usage: "directory the archive is extracted into", Value: d.ExtractRoot},
		&cli.StringFlag{Name: "archive-path", Usage: "temporary archive file", Value: d.ArchivePath},
		&cli.StringFlag{Name: "archive-root", Usage: "top-level folder name inside the archive", Value: d.ArchiveRoot},
		&cli.IntFlag{Name: "samples", Usage: "number of placeholder samples on fallback", Value: d.SampleCount},
		&cli.BoolFlag{Name: "no-images", Usage: "skip placeholder image generation"},
		&cli.DurationFlag{Name: "timeout", Usage: "HTTP timeout (0 waits indefinitely)", Value: d.Timeout},
		&cli.StringFlag{Name: "cache-dir", Usage: "cache downloaded archives here"},
		&cli.DurationFlag{Name: "cache-ttl", Usage: "max age of a cached archive", Value: d.CacheTTL},
		&cli.StringFlag{Name: "history-db", Usage: "record runs in this SQLite database"},
		&cli.StringFlag{Name: "summary-file", Usage: "YAML run summary, relative to the data directory (empty to skip)", Value: d.SummaryFile},
		&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "only log errors"},
		&cli.BoolFlag{Name: "verbose", Usage: "log debug details"},
	}
}

// ConfigFromContext layers defaults, the optional config file and set flags.
func ConfigFromContext(c *cli.Context) (models.SetupConfig, error) {
	cfg := models.DefaultSetupConfig()
	if fc := flagContext(c, "config"); fc != nil && fc.String("config") != "" {
		path := fc.String("config")
		loaded, err := models.LoadConfig(path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	if fc := flagContext(c, "url"); fc != nil {
		cfg.ArchiveURL = fc.String("url")
	}
	if fc := flagContext(c, "data-dir"); fc != nil {
		cfg.DataDir = fc.String("data-dir")
	}
	if fc := flagContext(c, "extract-root"); fc != nil {
		cfg.ExtractRoot = fc.String("extract-root")
	}
	if fc := flagContext(c, "archive-path"); fc != nil {
		cfg.ArchivePath = fc.String("archive-path")
	}
	if fc := flagContext(c, "archive-root"); fc != nil {
		cfg.ArchiveRoot = fc.String("archive-root")
	}
	if fc := flagContext(c, "samples"); fc != nil {
		cfg.SampleCount = fc.Int("samples")
	}
	if fc := flagContext(c, "no-images"); fc != nil && fc.Bool("no-images") {
		cfg.Images = false
	}
	if fc := flagContext(c, "timeout"); fc != nil {
		cfg.Timeout = fc.Duration("timeout")
	}
	if fc := flagContext(c, "cache-dir"); fc != nil {
		cfg.CacheDir = fc.String("cache-dir")
	}
	if fc := flagContext(c, "cache-ttl"); fc != nil {
		cfg.CacheTTL = fc.Duration("cache-ttl")
	}
	if fc := flagContext(c, "history-db"); fc != nil {
		cfg.HistoryDB = fc.String("history-db")
	}
	if fc := flagContext(c, "summary-file"); fc != nil {
		cfg.SummaryFile = fc.String("summary-file")
	}

	url, err := common.ValidateArchiveURL(cfg.ArchiveURL)
	if err != nil {
		return cfg, err
	}
	cfg.ArchiveURL = url

	return cfg, cfg.Validate()
}

// flagContext returns the innermost context in which name was explicitly set.
// ConfigFlags are registered on both the app and its commands, so a flag given
// before the command name lives on a parent context.
func flagContext(c *cli.Context, name string) *cli.Context {
	for _, ctx := range c.Lineage() {
		if ctx.IsSet(name) {
			return ctx
		}
	}
	return nil
}

// NewLogger writes JSON logs to stderr so stdout stays readable in a notebook.
func NewLogger(c *cli.Context) *slog.Logger {
	logLevel := slog.LevelInfo
	if fc := flagContext(c, "verbose"); fc != nil && fc.Bool("verbose") {
		logLevel = slog.LevelDebug
	}
	if fc := flagContext(c, "quiet"); fc != nil && fc.Bool("quiet") {
		logLevel = slog.LevelError
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}
