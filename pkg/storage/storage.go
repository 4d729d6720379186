package storage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
)

type Storage struct{}

// SaveFile writes content to filePath, creating parent directories as needed.
func (s *Storage) SaveFile(filePath string, content []byte) error {
	if err := s.EnsureDir(filepath.Dir(filePath)); err != nil {
		return err
	}
	if err := os.WriteFile(filePath, content, 0o644); err != nil {
		return fmt.Errorf("error saving file: %w", err)
	}
	return nil
}

func (s *Storage) ReadFile(filePath string) ([]byte, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}
	return data, nil
}

// EnsureDir is MkdirAll; calling it on an existing directory is a no-op.
func (s *Storage) EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("error creating directory %s: %w", dir, err)
	}
	return nil
}

func (s *Storage) HasFile(fn string) bool {
	_, err := os.Stat(fn)
	return err == nil
}

// IsDir reports whether path exists and is a directory.
func (s *Storage) IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// RemoveAll deletes path and everything below it. Missing paths are ignored.
func (s *Storage) RemoveAll(path string) error {
	if err := os.RemoveAll(path); err != nil {
		return fmt.Errorf("error removing %s: %w", path, err)
	}
	return nil
}

// MoveContents moves every top-level entry of srcDir into dstDir, replacing
// entries of the same name. It returns the moved names in sorted order.
func (s *Storage) MoveContents(srcDir, dstDir string) ([]string, error) {
	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return nil, fmt.Errorf("error listing %s: %w", srcDir, err)
	}
	if err := s.EnsureDir(dstDir); err != nil {
		return nil, err
	}

	moved := make([]string, 0, len(entries))
	for _, e := range entries {
		src := filepath.Join(srcDir, e.Name())
		dst := filepath.Join(dstDir, e.Name())
		if err := os.RemoveAll(dst); err != nil {
			return moved, fmt.Errorf("error replacing %s: %w", dst, err)
		}
		if err := move(src, dst); err != nil {
			return moved, fmt.Errorf("error moving %s: %w", e.Name(), err)
		}
		moved = append(moved, e.Name())
	}
	sort.Strings(moved)
	return moved, nil
}

// CountByExt counts regular files directly inside dir whose extension matches
// one of exts (case-sensitive, leading dot included).
func (s *Storage) CountByExt(dir string, exts ...string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("error listing %s: %w", dir, err)
	}
	count := 0
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		for _, want := range exts {
			if ext == want {
				count++
				break
			}
		}
	}
	return count, nil
}

// move renames src to dst and falls back to copy+delete across filesystems.
func move(src, dst string) error {
	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}
	var linkErr *os.LinkError
	if !errors.As(err, &linkErr) || !errors.Is(linkErr.Err, syscall.EXDEV) {
		return err
	}
	if err := copyTree(src, dst); err != nil {
		return err
	}
	return os.RemoveAll(src)
}

func copyTree(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		if !d.Type().IsRegular() {
			return fmt.Errorf("refusing to copy non-regular file %s", strings.TrimPrefix(path, src))
		}
		return copyFile(path, target)
	})
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
