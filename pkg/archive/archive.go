// Package archive installs a downloaded tutorial zip into the data directory.
package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dtnitsch/fois-tutorial-setup/models"
	"github.com/dtnitsch/fois-tutorial-setup/pkg/storage"
)

// ErrLayoutNotFound means none of the known layouts exist in the extracted tree.
var ErrLayoutNotFound = errors.New("no known archive layout found in extracted tree")

// InstallResult describes what an Install call moved into place.
type InstallResult struct {
	Layout         models.ArchiveLayout
	SourceDir      string
	Moved          []string
	ExtractedFiles int
	ExtractedBytes int64
}

type Installer struct {
	cfg     models.SetupConfig
	storage *storage.Storage
	logger  *slog.Logger
}

func NewInstaller(cfg models.SetupConfig, s *storage.Storage, logger *slog.Logger) *Installer {
	if s == nil {
		s = &storage.Storage{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Installer{cfg: cfg, storage: s, logger: logger}
}

// Install writes data to the temporary archive path, extracts it under the
// extract root, and moves the tutorial content into the data directory.
// The temporary archive and the extraction residue are removed whether or
// not installation succeeds.
func (i *Installer) Install(data []byte) (*InstallResult, error) {
	if err := i.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	// A residue dir left by an earlier run would otherwise match a layout
	// even when this archive never created it.
	if err := i.storage.RemoveAll(i.cfg.ResidueDir()); err != nil {
		return nil, fmt.Errorf("failed to clear stale extraction residue: %w", err)
	}

	archivePath := i.cfg.ArchivePath
	if err := i.storage.SaveFile(archivePath, data); err != nil {
		return nil, fmt.Errorf("failed to write archive: %w", err)
	}
	defer func() {
		if err := os.Remove(archivePath); err != nil && !os.IsNotExist(err) {
			i.logger.Warn("failed to remove temporary archive", "path", archivePath, "error", err)
		}
	}()

	result := &InstallResult{}
	defer func() {
		if err := i.storage.RemoveAll(i.cfg.ResidueDir()); err != nil {
			i.logger.Warn("failed to remove extraction residue", "path", i.cfg.ResidueDir(), "error", err)
		}
	}()

	files, size, err := Extract(archivePath, i.cfg.ExtractRoot)
	if err != nil {
		return nil, err
	}
	result.ExtractedFiles = files
	result.ExtractedBytes = size
	i.logger.Debug("archive extracted", "root", i.cfg.ExtractRoot, "files", files, "bytes", size)

	layout, dir, err := i.ResolveLayout()
	if err != nil {
		return nil, err
	}
	result.Layout = layout
	result.SourceDir = dir
	i.logger.Debug("archive layout resolved", "layout", layout, "dir", dir)

	moved, err := i.storage.MoveContents(dir, i.cfg.DataDir)
	result.Moved = moved
	if err != nil {
		return nil, fmt.Errorf("failed to move tutorial content: %w", err)
	}
	return result, nil
}

// ResolveLayout checks models.KnownLayouts in order and returns the first
// one that exists as a directory.
func (i *Installer) ResolveLayout() (models.ArchiveLayout, string, error) {
	for _, layout := range models.KnownLayouts {
		dir := layout.Path(i.cfg)
		if dir != "" && i.storage.IsDir(dir) {
			return layout, dir, nil
		}
	}
	return "", "", fmt.Errorf("%w (looked for %s)", ErrLayoutNotFound, i.cfg.ResidueDir())
}

// Extract unpacks every entry of the zip at archivePath under root and
// returns the number of regular files written and their total size.
// Entries that would land outside root are rejected.
func Extract(archivePath, root string) (int, int64, error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to open archive: %w", err)
	}
	defer r.Close()

	cleanRoot, err := filepath.Abs(root)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to resolve extract root: %w", err)
	}

	var files int
	var total int64
	for _, f := range r.File {
		target := filepath.Join(cleanRoot, filepath.FromSlash(f.Name))
		if target != cleanRoot && !strings.HasPrefix(target, cleanRoot+string(os.PathSeparator)) {
			return files, total, fmt.Errorf("illegal path in archive: %s", f.Name)
		}

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return files, total, fmt.Errorf("failed to create %s: %w", f.Name, err)
			}
			continue
		}

		n, err := extractFile(f, target)
		if err != nil {
			return files, total, fmt.Errorf("failed to extract %s: %w", f.Name, err)
		}
		files++
		total += n
	}
	return files, total, nil
}

func extractFile(f *zip.File, target string) (int64, error) {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return 0, err
	}

	rc, err := f.Open()
	if err != nil {
		return 0, err
	}
	defer rc.Close()

	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(out, rc)
	if err != nil {
		_ = out.Close()
		return n, err
	}
	return n, out.Close()
}
