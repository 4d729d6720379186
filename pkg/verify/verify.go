// Package verify checks that the data directory is usable by the tutorial.
package verify

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/dtnitsch/fois-tutorial-setup/pkg/storage"
)

var (
	TTLExts   = []string{".ttl"}
	ImageExts = []string{".png", ".jpg"}
)

// Report is the outcome of one verification pass.
type Report struct {
	Dir        string `yaml:"dir"`
	DirExists  bool   `yaml:"dir_exists"`
	TTLCount   int    `yaml:"ttl_count"`
	ImageCount int    `yaml:"image_count"`
	OK         bool   `yaml:"ok"`
}

// Verify inspects dataDir/subdir and writes human-readable diagnostics to out.
// It succeeds when at least one .ttl file is present; images are optional.
func Verify(dataDir, subdir string, out io.Writer) Report {
	if out == nil {
		out = io.Discard
	}
	s := &storage.Storage{}
	dir := filepath.Join(dataDir, subdir)
	report := Report{Dir: dir}

	fmt.Fprintln(out, "\nVerifying setup...")

	if !s.IsDir(dir) {
		fmt.Fprintf(out, "❌ %s directory not found!\n", subdir)
		return report
	}
	report.DirExists = true

	ttl, err := s.CountByExt(dir, TTLExts...)
	if err != nil {
		fmt.Fprintf(out, "❌ Could not read %s: %v\n", subdir, err)
		return report
	}
	images, err := s.CountByExt(dir, ImageExts...)
	if err != nil {
		fmt.Fprintf(out, "❌ Could not read %s: %v\n", subdir, err)
		return report
	}
	report.TTLCount = ttl
	report.ImageCount = images

	fmt.Fprintf(out, "Found %d TTL files\n", ttl)
	fmt.Fprintf(out, "Found %d image files\n", images)

	if ttl == 0 {
		fmt.Fprintln(out, "❌ No TTL files found!")
		return report
	}
	if images == 0 {
		fmt.Fprintln(out, "⚠️  No image files found - tutorial will work but without image enrichment")
	}

	fmt.Fprintln(out, "✅ Setup verification complete!")
	report.OK = true
	return report
}
