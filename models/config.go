// Package models defines data structures for configuration and archive layouts.
package models

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultArchiveURL     = "https://github.com/StenDoipanni/demos-tutorials/archive/main.zip"
	DefaultDataDir        = "/content/tutorial-fois-2025"
	DefaultExtractRoot    = "/content"
	DefaultArchivePath    = "/content/tutorial_data.zip"
	DefaultArchiveRoot    = "demos-tutorials-main"
	DefaultTutorialDir    = "tutorial-fois-2025"
	DefaultEventFramesDir = "event_frames"
	DefaultSampleCount    = 3
	DefaultImageWidth     = 400
	DefaultImageHeight    = 300
	DefaultCacheTTL       = 24 * time.Hour
	DefaultSummaryFile    = "setup-summary.yaml"
)

// SetupConfig holds every value the setup pipeline needs.
// Defaults reproduce the Colab layout; a YAML file and CLI flags can override them.
type SetupConfig struct {
	ArchiveURL     string        `yaml:"archive_url"`
	DataDir        string        `yaml:"data_dir"`
	ExtractRoot    string        `yaml:"extract_root"`
	ArchivePath    string        `yaml:"archive_path"`
	ArchiveRoot    string        `yaml:"archive_root"`
	TutorialDir    string        `yaml:"tutorial_dir"`
	EventFramesDir string        `yaml:"event_frames_dir"`
	SampleCount    int           `yaml:"sample_count"`
	ImageWidth     int           `yaml:"image_width"`
	ImageHeight    int           `yaml:"image_height"`
	Images         bool          `yaml:"images"`
	Timeout        time.Duration `yaml:"timeout"`   // 0 means the request may block indefinitely
	CacheDir       string        `yaml:"cache_dir"` // empty disables the archive cache
	CacheTTL       time.Duration `yaml:"cache_ttl"`
	HistoryDB      string        `yaml:"history_db"` // empty disables run history
	SummaryFile    string        `yaml:"summary_file"`
}

// DefaultSetupConfig returns the configuration used when nothing is overridden.
func DefaultSetupConfig() SetupConfig {
	return SetupConfig{
		ArchiveURL:     DefaultArchiveURL,
		DataDir:        DefaultDataDir,
		ExtractRoot:    DefaultExtractRoot,
		ArchivePath:    DefaultArchivePath,
		ArchiveRoot:    DefaultArchiveRoot,
		TutorialDir:    DefaultTutorialDir,
		EventFramesDir: DefaultEventFramesDir,
		SampleCount:    DefaultSampleCount,
		ImageWidth:     DefaultImageWidth,
		ImageHeight:    DefaultImageHeight,
		Images:         true,
		CacheTTL:       DefaultCacheTTL,
		SummaryFile:    DefaultSummaryFile,
	}
}

// LoadConfig reads a YAML file on top of the defaults.
// Keys missing from the file keep their default values.
func LoadConfig(path string) (SetupConfig, error) {
	cfg := DefaultSetupConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// ResidueDir is the top-level directory the archive extracts into.
func (c SetupConfig) ResidueDir() string {
	return filepath.Join(c.ExtractRoot, c.ArchiveRoot)
}

// Validate reports the first unusable value.
func (c SetupConfig) Validate() error {
	switch {
	case strings.TrimSpace(c.ArchiveURL) == "":
		return errors.New("archive URL is required")
	case strings.TrimSpace(c.DataDir) == "":
		return errors.New("data directory is required")
	case strings.TrimSpace(c.ExtractRoot) == "":
		return errors.New("extract root is required")
	case strings.TrimSpace(c.ArchivePath) == "":
		return errors.New("archive path is required")
	case !isPathElement(c.ArchiveRoot):
		return fmt.Errorf("archive root must be a single directory name, got %q", c.ArchiveRoot)
	case c.TutorialDir != "" && !isPathElement(c.TutorialDir):
		return fmt.Errorf("tutorial dir must be a single directory name, got %q", c.TutorialDir)
	case !isPathElement(c.EventFramesDir):
		return fmt.Errorf("event frames directory must be a single directory name, got %q", c.EventFramesDir)
	case insideResidue(c.DataDir, c.ResidueDir()):
		return fmt.Errorf("data directory %s must not be inside the extraction residue %s", c.DataDir, c.ResidueDir())
	case c.SampleCount <= 0:
		return fmt.Errorf("sample count must be positive, got %d", c.SampleCount)
	case c.ImageWidth <= 0 || c.ImageHeight <= 0:
		return fmt.Errorf("image size must be positive, got %dx%d", c.ImageWidth, c.ImageHeight)
	case c.Timeout < 0:
		return fmt.Errorf("timeout must not be negative, got %s", c.Timeout)
	}
	return nil
}

// isPathElement reports whether v names exactly one entry inside a directory.
// Cleanup removes <extract root>/<archive root>, so "." or "../x" must never get that far.
func isPathElement(v string) bool {
	if strings.TrimSpace(v) == "" || v == "." || v == ".." {
		return false
	}
	return filepath.Base(v) == v && !strings.ContainsAny(v, `/\`)
}

// insideResidue reports whether dir is residue itself or below it.
func insideResidue(dir, residue string) bool {
	rel, err := filepath.Rel(residue, dir)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
