package prompt

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"snapmotion/internal/config"
	"snapmotion/internal/sequence"
)

func runWizard(t *testing.T, defaults Defaults, lines ...string) (Answers, string, error) {
	t.Helper()
	var out bytes.Buffer
	w := New(strings.NewReader(strings.Join(lines, "\n")+"\n"), &out, defaults)
	answers, err := w.Run()
	return answers, out.String(), err
}

func TestRunAcceptsDefaults(t *testing.T) {
	in := t.TempDir()
	outDir := t.TempDir()
	cfg := config.Default()
	cfg.Output.Dir = outDir

	answers, _, err := runWizard(t, DefaultsFromConfig(&cfg), in, "", "", "", "holiday", "")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := Answers{
		InputDir:        in,
		Sort:            sequence.ByName,
		SecondsPerFrame: 2.0,
		FileName:        "holiday",
		OutputDir:       outDir,
	}
	if answers != want {
		t.Fatalf("answers = %+v, want %+v", answers, want)
	}
	if answers.OutputPath() != filepath.Join(outDir, "holiday.mp4") {
		t.Fatalf("unexpected output path %q", answers.OutputPath())
	}
}

func TestRunReasksInvalidAnswers(t *testing.T) {
	in := t.TempDir()
	outDir := t.TempDir()

	answers, transcript, err := runWizard(t, Defaults{SecondsPerFrame: 1},
		filepath.Join(in, "missing"), in,
		"3", "2",
		"abc", "-1", "0.5",
		"1280by720", "1280x720",
		"", "clip.mp4",
		filepath.Join(outDir, "nope"), outDir,
	)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if answers.Sort != sequence.ByDate || answers.SecondsPerFrame != 0.5 {
		t.Fatalf("unexpected answers %+v", answers)
	}
	if answers.Width != 1280 || answers.Height != 720 {
		t.Fatalf("resolution %dx%d", answers.Width, answers.Height)
	}
	if answers.FileName != "clip" || answers.OutputDir != outDir {
		t.Fatalf("unexpected output %+v", answers)
	}
	for _, msg := range []string{"does not exist", "invalid sort order", "invalid number", "positive number", "invalid resolution", "a value is required"} {
		if !strings.Contains(transcript, msg) {
			t.Fatalf("transcript missing %q:\n%s", msg, transcript)
		}
	}
}

func TestRunKeepsConfiguredResolutionUnlessOriginal(t *testing.T) {
	in := t.TempDir()
	defaults := Defaults{SecondsPerFrame: 2, Width: 1920, Height: 1080, OutputDir: in}

	answers, _, err := runWizard(t, defaults, in, "", "", "", "a", "")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if answers.Width != 1920 || answers.Height != 1080 {
		t.Fatalf("expected configured resolution, got %dx%d", answers.Width, answers.Height)
	}

	answers, _, err = runWizard(t, defaults, in, "", "", "original", "a", "")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if answers.Width != 0 || answers.Height != 0 {
		t.Fatalf("expected original size, got %dx%d", answers.Width, answers.Height)
	}
}

func TestRunAbortsOnEOF(t *testing.T) {
	in := t.TempDir()
	_, _, err := runWizard(t, Defaults{SecondsPerFrame: 2}, in, "1")
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"maybe\ny\n", true},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		w := New(strings.NewReader(tt.input), &out, Defaults{})
		got, err := w.Confirm("Ready to begin processing?")
		if err != nil {
			t.Fatalf("Confirm(%q): %v", tt.input, err)
		}
		if got != tt.want {
			t.Fatalf("Confirm(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}

	w := New(strings.NewReader(""), &bytes.Buffer{}, Defaults{})
	if _, err := w.Confirm("Continue?"); !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted on empty input, got %v", err)
	}
}

func TestValidFileName(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"holiday", "holiday", false},
		{"holiday.MP4", "holiday", false},
		{"  trip 2024 ", "trip 2024", false},
		{".mp4", "", true},
		{"a/b", "a-b", false},
		{"..", "", true},
		{"?", "", true},
	}
	for _, tt := range tests {
		got, err := validFileName(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("validFileName(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Fatalf("validFileName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
