package main

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"snapmotion/internal/config"
	"snapmotion/internal/prompt"
	"snapmotion/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	inputDir   string
	baseDir    string
}

func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	cfg := testsupport.NewConfig(t, opts...)
	base := testsupport.BaseDir(cfg)
	home := filepath.Join(base, "home")
	if err := os.MkdirAll(home, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", home)
	t.Setenv("NO_COLOR", "1")
	t.Chdir(base)

	input := filepath.Join(base, "photos")
	testsupport.WriteJPEG(t, filepath.Join(input, "IMG_0001.jpg"), 64, 48, color.RGBA{R: 255, A: 255})
	testsupport.WriteJPEG(t, filepath.Join(input, "IMG_0002.jpg"), 64, 48, color.RGBA{B: 255, A: 255})

	configPath := filepath.Join(base, "snapmotion-test.toml")
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{cfg: cfg, configPath: configPath, inputDir: input, baseDir: base}
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	content := fmt.Sprintf(
		"[render]\nfps = %d\nseconds_per_frame = %v\n\n[output]\ndir = %q\n\n[ffmpeg]\nbinary = %q\n",
		4,
		cfg.Render.SecondsPerFrame,
		cfg.Output.Dir,
		cfg.FFmpeg.Binary,
	)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, args []string, configPath, stdin string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected output to contain %q\noutput:\n%s", substr, output)
	}
}

func answers(lines ...string) string {
	return strings.Join(lines, "\n") + "\n"
}

func TestCLIWizardCreatesTimelapse(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithStubbedFFmpeg())

	stdin := answers(env.inputDir, "1", "0.5", "64x48", "holiday", "", "y")
	out, stderr, err := runCLI(t, nil, env.configPath, stdin)
	if err != nil {
		t.Fatalf("wizard run: %v\nstderr:\n%s", err, stderr)
	}
	requireContains(t, out, "== Summary ==")
	requireContains(t, out, "Estimated duration")
	requireContains(t, out, "== Timelapse created ==")
	requireContains(t, out, "Total frames")
	requireContains(t, stderr, "timelapse written")

	target := filepath.Join(env.cfg.Output.Dir, "holiday.mp4")
	info, err := os.Stat(target)
	if err != nil {
		t.Fatalf("expected output at %s: %v", target, err)
	}
	// 2 images x 2 repeats of 64x48 rgb24 through the copying stub
	if info.Size() != 2*2*64*48*3 {
		t.Fatalf("unexpected output size %d", info.Size())
	}
}

func TestCLIWizardDeclinedWritesNothing(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithStubbedFFmpeg())

	stdin := answers(env.inputDir, "", "", "", "clip", "", "n")
	out, _, err := runCLI(t, nil, env.configPath, stdin)
	if err != nil {
		t.Fatalf("wizard run: %v", err)
	}
	requireContains(t, out, "Processing canceled")
	entries, _ := os.ReadDir(env.cfg.Output.Dir)
	if len(entries) != 0 {
		t.Fatalf("expected empty output dir, found %d entries", len(entries))
	}
}

func TestCLIWizardAbortsOnClosedInput(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithStubbedFFmpeg())

	_, _, err := runCLI(t, nil, env.configPath, answers(env.inputDir))
	if !errors.Is(err, prompt.ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}

func TestCLIRejectsInvalidLogLevel(t *testing.T) {
	env := setupCLITestEnv(t)
	_, _, err := runCLI(t, []string{"--log-level", "loud", "config", "validate"}, env.configPath, "")
	if err == nil || !strings.Contains(err.Error(), "logging.level") {
		t.Fatalf("expected logging.level error, got %v", err)
	}
}

func TestDoctorReportsDependencies(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithStubbedFFmpeg())

	out, _, err := runCLI(t, []string{"doctor"}, env.configPath, "")
	if err != nil {
		t.Fatalf("doctor: %v\n%s", err, out)
	}
	requireContains(t, out, "== Dependencies ==")
	requireContains(t, out, "[OK] Ready (command: ")
	requireContains(t, out, "Output directory:")
}

func TestDoctorFailsWithoutEncoder(t *testing.T) {
	env := setupCLITestEnv(t)
	env.cfg.FFmpeg.Binary = "snapmotion-missing-ffmpeg"
	writeTestConfig(t, env.configPath, env.cfg)

	out, _, err := runCLI(t, []string{"doctor"}, env.configPath, "")
	if err == nil {
		t.Fatal("expected doctor to fail")
	}
	requireContains(t, out, "[ERROR] binary \"snapmotion-missing-ffmpeg\" not found")
	requireContains(t, out, "Missing dependencies")
}
