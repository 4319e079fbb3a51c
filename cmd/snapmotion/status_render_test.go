package main

import (
	"fmt"
	"strings"
	"testing"

	"snapmotion/internal/deps"
	"snapmotion/internal/preflight"
)

func TestRenderStatusLineNoColor(t *testing.T) {
	got := renderStatusLine("FFmpeg", statusError, "not found", false)
	want := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, "FFmpeg:", "[ERROR] not found")
	if got != want {
		t.Fatalf("renderStatusLine mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestRenderStatusLineWithColor(t *testing.T) {
	got := renderStatusLine("FFmpeg", statusOK, "Ready", true)
	if !strings.HasPrefix(got, ansiGreen) {
		t.Fatalf("expected green prefix, got %q", got)
	}
	if !strings.HasSuffix(got, ansiReset) {
		t.Fatalf("expected reset suffix, got %q", got)
	}
}

func TestDependencyLines(t *testing.T) {
	statuses := []deps.Status{
		{Name: "FFmpeg", Available: true, Command: "/usr/bin/ffmpeg"},
		{Name: "FFprobe", Optional: true, Detail: `binary "ffprobe" not found`},
	}
	lines := dependencyLines(statuses, false)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "[OK] Ready (command: /usr/bin/ffmpeg)") {
		t.Fatalf("unexpected first line %q", lines[0])
	}
	if !strings.Contains(lines[1], "[WARN]") || !strings.Contains(lines[1], "(optional)") {
		t.Fatalf("unexpected second line %q", lines[1])
	}

	lines = dependencyLines([]deps.Status{{Name: "FFmpeg"}}, false)
	if len(lines) != 2 || !strings.Contains(lines[0], "[ERROR] not available") || !strings.Contains(lines[1], "Missing dependencies") {
		t.Fatalf("unexpected lines for missing ffmpeg: %q", lines)
	}
}

func TestCheckLines(t *testing.T) {
	if lines := checkLines(nil, false); len(lines) != 1 || !strings.Contains(lines[0], "none configured") {
		t.Fatalf("unexpected lines %q", lines)
	}
	lines := checkLines([]preflight.Result{
		{Name: "Output directory", Passed: true, Detail: "/out (read/write ok)"},
		{Name: "Log directory", Detail: "/logs (error: does not exist)"},
	}, false)
	if !strings.Contains(lines[0], "[OK]") || !strings.Contains(lines[1], "[ERROR]") {
		t.Fatalf("unexpected lines %q", lines)
	}
}

func TestRenderSectionHeader(t *testing.T) {
	lines := renderSectionHeader("Dependencies", false)
	if lines[0] != "== Dependencies ==" || lines[1] != strings.Repeat("-", len(lines[0])) {
		t.Fatalf("unexpected header %q", lines)
	}
}
