package manifest

import "github.com/dtnitsch/fois-tutorial-setup/pkg/verify"

// RunSummary is the YAML record written into the data directory after a run.
// It lets the notebook check where its data came from without re-running setup.
type RunSummary struct {
	GeneratedAt   string        `yaml:"generated_at"`
	Source        string        `yaml:"source"` // "download" or "fallback"
	ArchiveURL    string        `yaml:"archive_url"`
	ArchiveSHA256 string        `yaml:"archive_sha256,omitempty"`
	ArchiveBytes  int           `yaml:"archive_bytes,omitempty"`
	FetchError    string        `yaml:"fetch_error,omitempty"`
	Layout        string        `yaml:"layout,omitempty"`
	Moved         []string      `yaml:"moved,omitempty"`
	SampleFiles   []string      `yaml:"sample_files,omitempty"`
	ImagesSkipped bool          `yaml:"images_skipped,omitempty"`
	Verification  verify.Report `yaml:"verification"`
}
