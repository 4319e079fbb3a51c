package collect_test

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"snapmotion/internal/collect"
	"snapmotion/internal/failure"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestImagesFiltersExtensionsCaseInsensitively(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.jpg", "b.JPEG", "c.Png", "notes.txt", "d.gif", "noext"} {
		touch(t, filepath.Join(dir, name))
	}
	touch(t, filepath.Join(dir, "nested", "e.jpg"))
	if err := os.Mkdir(filepath.Join(dir, "folder.jpg"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	entries, err := collect.Images(dir)
	if err != nil {
		t.Fatalf("Images: %v", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
		if e.Path != filepath.Join(dir, e.Name) {
			t.Fatalf("unexpected path %q for %q", e.Path, e.Name)
		}
		if e.ModTime.IsZero() {
			t.Fatalf("expected mod time for %q", e.Name)
		}
	}
	sort.Strings(names)
	want := []string{"a.jpg", "b.JPEG", "c.Png"}
	if len(names) != len(want) {
		t.Fatalf("got %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("got %v, want %v", names, want)
		}
	}
	if got := collect.TotalSize(entries); got != 3 {
		t.Fatalf("TotalSize = %d, want 3", got)
	}
}

func TestImagesFollowsSymlinks(t *testing.T) {
	dir := t.TempDir()
	store := t.TempDir()
	target := filepath.Join(store, "real.jpg")
	if err := os.WriteFile(target, []byte("hello"), 0o644); err != nil {
		t.Fatalf("write target: %v", err)
	}
	links := map[string]string{
		"b.jpg":        target,
		"dangling.png": filepath.Join(store, "gone.png"),
		"album.jpg":    store,
	}
	for name, to := range links {
		if err := os.Symlink(to, filepath.Join(dir, name)); err != nil {
			t.Fatalf("symlink %s: %v", name, err)
		}
	}

	entries, err := collect.Images(dir)
	if err != nil {
		t.Fatalf("Images on a folder of links: %v", err)
	}
	if len(entries) != 1 || entries[0].Name != "b.jpg" {
		t.Fatalf("expected only b.jpg, got %#v", entries)
	}
	if entries[0].Size != 5 {
		t.Fatalf("expected target size 5, got %d", entries[0].Size)
	}

	touch(t, filepath.Join(dir, "a.jpg"))
	entries, err = collect.Images(dir)
	if err != nil {
		t.Fatalf("Images: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected regular file and link, got %d entries", len(entries))
	}
}

func TestImagesInvalidPath(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file.jpg")
	touch(t, file)

	cases := map[string]string{
		"missing":    filepath.Join(dir, "missing"),
		"file":       file,
		"empty":      "",
		"whitespace": "   ",
	}
	for name, path := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := collect.Images(path)
			if !errors.Is(err, failure.ErrInvalidPath) {
				t.Fatalf("expected ErrInvalidPath, got %v", err)
			}
			if stage := failure.StageOf(err); stage != failure.StageCollect {
				t.Fatalf("stage = %q", stage)
			}
		})
	}
}

func TestImagesEmptyDirectory(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "readme.md"))

	_, err := collect.Images(dir)
	if !errors.Is(err, failure.ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
}

func TestIsSupported(t *testing.T) {
	cases := map[string]bool{
		"a.jpg":     true,
		"a.JPG":     true,
		"a.jpeg":    true,
		"a.png":     true,
		"a.png.bak": false,
		"a.webp":    false,
		".jpg":      true,
		"jpg":       false,
	}
	for name, want := range cases {
		if got := collect.IsSupported(name); got != want {
			t.Errorf("IsSupported(%q) = %v, want %v", name, got, want)
		}
	}
}
