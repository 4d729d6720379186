package storage

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create dirs: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func TestEnsureDir_Idempotent(t *testing.T) {
	s := &Storage{}
	dir := filepath.Join(t.TempDir(), "a", "b")
	for i := 0; i < 2; i++ {
		if err := s.EnsureDir(dir); err != nil {
			t.Fatalf("EnsureDir() call %d error = %v", i, err)
		}
	}
	if !s.IsDir(dir) {
		t.Errorf("IsDir(%s) = false", dir)
	}
}

func TestSaveFile_CreatesParents(t *testing.T) {
	s := &Storage{}
	path := filepath.Join(t.TempDir(), "nested", "out.txt")
	if err := s.SaveFile(path, []byte("hi")); err != nil {
		t.Fatalf("SaveFile() error = %v", err)
	}
	got, err := s.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(got) != "hi" {
		t.Errorf("ReadFile() = %q, want %q", got, "hi")
	}
	if !s.HasFile(path) {
		t.Errorf("HasFile(%s) = false", path)
	}
}

func TestMoveContents(t *testing.T) {
	s := &Storage{}
	root := t.TempDir()
	src := filepath.Join(root, "src")
	dst := filepath.Join(root, "dst")

	writeFile(t, filepath.Join(src, "event_frames", "a.ttl"), "new")
	writeFile(t, filepath.Join(src, "README.md"), "readme")
	writeFile(t, filepath.Join(dst, "event_frames", "stale.ttl"), "old")

	moved, err := s.MoveContents(src, dst)
	if err != nil {
		t.Fatalf("MoveContents() error = %v", err)
	}
	if want := []string{"README.md", "event_frames"}; !reflect.DeepEqual(moved, want) {
		t.Errorf("moved = %v, want %v", moved, want)
	}

	if !s.HasFile(filepath.Join(dst, "event_frames", "a.ttl")) {
		t.Error("a.ttl not moved")
	}
	if s.HasFile(filepath.Join(dst, "event_frames", "stale.ttl")) {
		t.Error("existing destination entry was not replaced")
	}
	entries, err := os.ReadDir(src)
	if err != nil {
		t.Fatalf("ReadDir(src) error = %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("src still holds %d entries", len(entries))
	}
}

func TestCountByExt(t *testing.T) {
	s := &Storage{}
	dir := t.TempDir()
	for _, name := range []string{"a.ttl", "b.ttl", "a.png", "b.jpg", "c.jpeg", "notes.txt"} {
		writeFile(t, filepath.Join(dir, name), "x")
	}
	writeFile(t, filepath.Join(dir, "sub", "nested.ttl"), "x")

	tests := []struct {
		name string
		exts []string
		want int
	}{
		{name: "ttl", exts: []string{".ttl"}, want: 2},
		{name: "images", exts: []string{".png", ".jpg"}, want: 2},
		{name: "none", exts: []string{".owl"}, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.CountByExt(dir, tt.exts...)
			if err != nil {
				t.Fatalf("CountByExt() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("CountByExt(%v) = %d, want %d", tt.exts, got, tt.want)
			}
		})
	}
}

func TestCountByExt_MissingDir(t *testing.T) {
	s := &Storage{}
	if _, err := s.CountByExt(filepath.Join(t.TempDir(), "missing"), ".ttl"); err == nil {
		t.Error("CountByExt() on missing dir error = nil")
	}
}
