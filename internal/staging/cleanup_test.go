package staging

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"snapmotion/internal/logging"
)

func TestCleanStaleInvalidPaths(t *testing.T) {
	for _, dir := range []string{"", "   ", "/nonexistent/path/12345"} {
		result := CleanStale(context.Background(), dir, time.Hour, logging.NewNop())
		if len(result.Removed) != 0 || len(result.Errors) != 0 {
			t.Errorf("expected empty result for path %q", dir)
		}
	}
}

func TestCleanStaleRemovesOldPartials(t *testing.T) {
	dir := t.TempDir()
	write := func(name string, age time.Duration) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
		mod := time.Now().Add(-age)
		if err := os.Chtimes(path, mod, mod); err != nil {
			t.Fatalf("chtimes %s: %v", name, err)
		}
		return path
	}

	old := write(PartialName("clip.mp4"), 2*time.Hour)
	recent := write(PartialName("clip.mp4"), time.Minute)
	finished := write("clip.mp4", 2*time.Hour)
	hidden := write(".notes", 2*time.Hour)
	userPartial := write(".download.partial", 2*time.Hour)

	result := CleanStale(context.Background(), dir, time.Hour, logging.NewNop())
	if len(result.Removed) != 1 || result.Removed[0] != old {
		t.Fatalf("unexpected removed list %v", result.Removed)
	}
	if _, err := os.Stat(old); !os.IsNotExist(err) {
		t.Error("stale partial should have been removed")
	}
	for _, keep := range []string{recent, finished, hidden, userPartial} {
		if _, err := os.Stat(keep); err != nil {
			t.Errorf("%s should still exist: %v", keep, err)
		}
	}
}

func TestPartialName(t *testing.T) {
	a, b := PartialName("clip.mp4"), PartialName("clip.mp4")
	if a == b {
		t.Fatal("partial names should be unique")
	}
	for _, name := range []string{a, ".clip.mp4.0123abcd.partial", ".a.b.c.ffffffff.partial"} {
		if !IsPartial(name) {
			t.Errorf("IsPartial(%q) = false", name)
		}
	}
	for _, name := range []string{
		"clip.mp4",
		".partial",
		"clip.partial",
		".clip.mp4",
		".download.partial",
		".clip.mp4.ABCDEF12.partial",
		".clip.mp4.1234567.partial",
		"..0123abcd.partial",
		"clip.mp4.0123abcd.partial",
	} {
		if IsPartial(name) {
			t.Errorf("IsPartial(%q) = true", name)
		}
	}
}
