// Package samples writes placeholder tutorial data when the real archive
// cannot be installed.
package samples

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/dtnitsch/fois-tutorial-setup/pkg/storage"
)

// TTLContent is written verbatim into every sample .ttl file.
const TTLContent = `@prefix log: <file://./log.owl#> .

log:contact1 a log:Contact .
log:support1 a log:Support .
log:cutting1 a log:Cutting .
log:person1 a log:Person .
log:knife1 a log:Knife .
`

// Result lists what Generate wrote.
type Result struct {
	Dir           string
	TTLFiles      []string
	ImageFiles    []string
	ImagesSkipped bool
}

type Generator struct {
	Subdir     string
	Count      int
	Capability ImageCapability
	Storage    *storage.Storage
	Out        io.Writer
	Logger     *slog.Logger
}

// TTLName returns the file name of the i-th sample (1-based).
func TTLName(i int) string {
	return fmt.Sprintf("sample%d.ttl", i)
}

// Caption returns the caption lines drawn onto the i-th placeholder image.
func Caption(i int) []string {
	return []string{
		fmt.Sprintf("Sample %d Image", i),
		"Corresponding to " + TTLName(i),
	}
}

// Generate writes Count sample .ttl files into dataDir/Subdir, plus one
// placeholder image per file when the imaging capability is available.
// Missing imaging is a warning, not an error.
func (g *Generator) Generate(dataDir string) (*Result, error) {
	s := g.Storage
	if s == nil {
		s = &storage.Storage{}
	}
	logger := g.Logger
	if logger == nil {
		logger = slog.Default()
	}
	out := g.Out
	if out == nil {
		out = io.Discard
	}

	fmt.Fprintln(out, "Creating sample data...")

	dir := filepath.Join(dataDir, g.Subdir)
	if err := s.EnsureDir(dir); err != nil {
		return nil, err
	}

	res := &Result{Dir: dir}
	for i := 1; i <= g.Count; i++ {
		path := filepath.Join(dir, TTLName(i))
		if err := s.SaveFile(path, []byte(TTLContent)); err != nil {
			return res, fmt.Errorf("failed to write sample %d: %w", i, err)
		}
		res.TTLFiles = append(res.TTLFiles, path)
	}

	capability := g.Capability
	if capability == nil {
		capability = NoImages
	}
	renderer, err := capability()
	if err != nil {
		res.ImagesSkipped = true
		logger.Warn("skipping sample image creation", "error", err)
		if errors.Is(err, ErrImagingUnavailable) {
			fmt.Fprintln(out, "⚠️  Imaging not available, skipping image creation")
		} else {
			fmt.Fprintf(out, "⚠️  Imaging failed, skipping image creation: %v\n", err)
		}
		return res, nil
	}

	for i := 1; i <= g.Count; i++ {
		var buf bytes.Buffer
		if err := renderer.Render(&buf, Caption(i)); err != nil {
			logger.Warn("failed to render sample image", "index", i, "error", err)
			continue
		}
		path := filepath.Join(dir, fmt.Sprintf("sample%d%s", i, renderer.Ext()))
		if err := s.SaveFile(path, buf.Bytes()); err != nil {
			logger.Warn("failed to write sample image", "path", path, "error", err)
			continue
		}
		res.ImageFiles = append(res.ImageFiles, path)
	}

	fmt.Fprintln(out, "✅ Sample data created successfully!")
	return res, nil
}
