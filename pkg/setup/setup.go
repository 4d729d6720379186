// Package setup runs the download-or-fallback pipeline and verifies the result.
package setup

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/dtnitsch/fois-tutorial-setup/internal/common"
	"github.com/dtnitsch/fois-tutorial-setup/models"
	"github.com/dtnitsch/fois-tutorial-setup/pkg/archive"
	"github.com/dtnitsch/fois-tutorial-setup/pkg/caching"
	"github.com/dtnitsch/fois-tutorial-setup/pkg/db"
	"github.com/dtnitsch/fois-tutorial-setup/pkg/fetcher"
	"github.com/dtnitsch/fois-tutorial-setup/pkg/manifest"
	"github.com/dtnitsch/fois-tutorial-setup/pkg/samples"
	"github.com/dtnitsch/fois-tutorial-setup/pkg/storage"
	"github.com/dtnitsch/fois-tutorial-setup/pkg/verify"
)

const (
	SourceDownload = "download"
	SourceFallback = "fallback"
)

type invalidator interface {
	Invalidate(url string) error
}

// Outcome is everything one Run produced.
type Outcome struct {
	Source        string
	ArchiveSHA256 string
	ArchiveBytes  int
	FetchError    error
	Install       *archive.InstallResult
	Samples       *samples.Result
	Report        verify.Report
	SummaryPath   string
	RunID         int64
}

// OK reports whether verification passed.
func (o *Outcome) OK() bool {
	return o != nil && o.Report.OK
}

// Runner wires the pipeline components together. Fetcher, Capability,
// History and Now are optional.
type Runner struct {
	Config     models.SetupConfig
	Fetcher    fetcher.Getter
	Capability samples.ImageCapability
	History    *db.DB
	Out        io.Writer
	Logger     *slog.Logger
	Now        func() time.Time

	storage *storage.Storage
}

// NewRunner builds a Runner with the default HTTP fetcher and PNG capability.
func NewRunner(cfg models.SetupConfig, out io.Writer, logger *slog.Logger) *Runner {
	r := &Runner{
		Config: cfg,
		Out:    out,
		Logger: logger,
	}
	r.defaults()
	return r
}

func (r *Runner) defaults() {
	if r.Out == nil {
		r.Out = io.Discard
	}
	if r.Logger == nil {
		r.Logger = slog.Default()
	}
	if r.Fetcher == nil {
		r.Fetcher = r.newFetcher()
	}
	if r.Capability == nil {
		if r.Config.Images {
			r.Capability = samples.PNGCapability(r.Config.ImageWidth, r.Config.ImageHeight)
		} else {
			r.Capability = samples.NoImages
		}
	}
	if r.Now == nil {
		r.Now = time.Now
	}
	if r.storage == nil {
		r.storage = &storage.Storage{}
	}
}

// Run downloads and installs the archive, falling back to sample data on any
// fetch or install error, then verifies the data directory. The returned
// error is reserved for failures that stop the pipeline before verification
// (invalid config, unwritable data directory).
func (r *Runner) Run(ctx context.Context) (*Outcome, error) {
	r.defaults()
	cfg := r.Config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	fmt.Fprintln(r.Out, "Setting up tutorial data...")

	if err := r.storage.EnsureDir(cfg.DataDir); err != nil {
		return nil, err
	}

	out := &Outcome{}
	if err := r.download(ctx, out); err != nil {
		out.FetchError = err
		r.Logger.Warn("download failed, falling back to sample data", "url", cfg.ArchiveURL, "error", err)
		fmt.Fprintf(r.Out, "❌ Error downloading from GitHub: %v\n", err)
		fmt.Fprintln(r.Out, "Falling back to creating sample data...")
		r.fallback(out)
	} else {
		out.Source = SourceDownload
		fmt.Fprintln(r.Out, "✅ Data downloaded and extracted successfully!")
	}

	out.Report = verify.Verify(cfg.DataDir, cfg.EventFramesDir, r.Out)
	r.record(out)
	return out, nil
}

// Fallback skips the download and writes sample data, then verifies.
func (r *Runner) Fallback() (*Outcome, error) {
	r.defaults()
	cfg := r.Config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if err := r.storage.EnsureDir(cfg.DataDir); err != nil {
		return nil, err
	}

	out := &Outcome{}
	r.fallback(out)
	out.Report = verify.Verify(cfg.DataDir, cfg.EventFramesDir, r.Out)
	r.record(out)
	return out, nil
}

// newFetcher returns the HTTP fetcher, wrapped in the archive cache when a
// cache directory is configured.
func (r *Runner) newFetcher() fetcher.Getter {
	var f fetcher.Getter = fetcher.NewFetcher(r.Config.Timeout)
	if r.Config.CacheDir == "" {
		return f
	}
	cache, err := caching.NewCache(r.Config.CacheDir, r.Config.CacheTTL)
	if err != nil {
		r.Logger.Warn("archive cache disabled", "dir", r.Config.CacheDir, "error", err)
		return f
	}
	return fetcher.NewCachingFetcher(f, cache, r.Logger)
}

func (r *Runner) download(ctx context.Context, out *Outcome) error {
	cfg := r.Config
	fmt.Fprintln(r.Out, "Downloading data from GitHub...")
	r.Logger.Info("fetching archive", "url", cfg.ArchiveURL)

	data, err := r.Fetcher.GetBytes(ctx, cfg.ArchiveURL)
	if err != nil {
		return err
	}
	out.ArchiveBytes = len(data)
	out.ArchiveSHA256 = common.ContentHash(data)
	r.Logger.Info("archive fetched", "bytes", len(data), "sha256", out.ArchiveSHA256)

	res, err := archive.NewInstaller(cfg, r.storage, r.Logger).Install(data)
	out.Install = res
	if err != nil {
		r.invalidate(cfg.ArchiveURL)
		return err
	}
	r.Logger.Info("archive installed", "layout", res.Layout, "moved", len(res.Moved), "files", res.ExtractedFiles)
	return nil
}

// invalidate drops a cached archive that failed to install, so a corrupt body
// is not served again until the TTL runs out.
func (r *Runner) invalidate(url string) {
	inv, ok := r.Fetcher.(invalidator)
	if !ok {
		return
	}
	if err := inv.Invalidate(url); err != nil {
		r.Logger.Warn("failed to invalidate cached archive", "url", url, "error", err)
	}
}

func (r *Runner) fallback(out *Outcome) {
	out.Source = SourceFallback
	g := &samples.Generator{
		Subdir:     r.Config.EventFramesDir,
		Count:      r.Config.SampleCount,
		Capability: r.Capability,
		Storage:    r.storage,
		Out:        r.Out,
		Logger:     r.Logger,
	}
	res, err := g.Generate(r.Config.DataDir)
	out.Samples = res
	if err != nil {
		r.Logger.Error("sample data generation failed", "error", err)
		fmt.Fprintf(r.Out, "❌ Error creating sample data: %v\n", err)
	}
}

// record writes the YAML summary and, when configured, the history row.
// Neither failure affects the outcome.
func (r *Runner) record(out *Outcome) {
	cfg := r.Config
	now := r.Now()

	if cfg.SummaryFile != "" {
		path := cfg.SummaryFile
		if !filepath.IsAbs(path) {
			path = filepath.Join(cfg.DataDir, path)
		}
		if err := manifest.WriteSummary(path, r.summary(out, now), r.storage); err != nil {
			r.Logger.Warn("failed to write run summary", "path", path, "error", err)
		} else {
			out.SummaryPath = path
		}
	}

	if r.History != nil {
		run := db.Run{
			CreatedAt:  now,
			ArchiveURL: cfg.ArchiveURL,
			DataDir:    cfg.DataDir,
			Source:     out.Source,
			TTLCount:   out.Report.TTLCount,
			ImageCount: out.Report.ImageCount,
			Verified:   out.Report.OK,
		}
		if out.FetchError != nil {
			run.FetchError = out.FetchError.Error()
		}
		if out.Install != nil {
			run.Layout = string(out.Install.Layout)
		}
		runID, err := r.History.InsertRun(run)
		if err != nil {
			r.Logger.Warn("failed to record run history", "error", err)
		} else {
			out.RunID = runID
		}
	}
}

func (r *Runner) summary(out *Outcome, now time.Time) manifest.RunSummary {
	s := manifest.RunSummary{
		GeneratedAt:   now.UTC().Format(time.RFC3339),
		Source:        out.Source,
		ArchiveURL:    r.Config.ArchiveURL,
		ArchiveSHA256: out.ArchiveSHA256,
		ArchiveBytes:  out.ArchiveBytes,
		Verification:  out.Report,
	}
	if out.FetchError != nil {
		s.FetchError = out.FetchError.Error()
	}
	if out.Install != nil && out.Source == SourceDownload {
		s.Layout = string(out.Install.Layout)
		s.Moved = out.Install.Moved
	}
	if out.Samples != nil {
		for _, f := range out.Samples.TTLFiles {
			s.SampleFiles = append(s.SampleFiles, filepath.Base(f))
		}
		for _, f := range out.Samples.ImageFiles {
			s.SampleFiles = append(s.SampleFiles, filepath.Base(f))
		}
		s.ImagesSkipped = out.Samples.ImagesSkipped
	}
	return s
}
