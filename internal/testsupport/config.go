package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"snapmotion/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Output.Dir = filepath.Join(base, "out")
	if err := os.MkdirAll(cfgVal.Output.Dir, 0o755); err != nil {
		t.Fatalf("mkdir output dir: %v", err)
	}

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithResolution overrides the render size.
func WithResolution(width, height int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Render.Width = width
		b.cfg.Render.Height = height
	}
}

// WithStubbedFFmpeg installs an ffmpeg stand-in that copies everything it
// reads on stdin into its last argument, so tests can inspect the exact raw
// frames the writer produced.
func WithStubbedFFmpeg() ConfigOption {
	return withScript("ffmpeg", "#!/bin/sh\n"+
		"if [ \"$1\" = \"-version\" ]; then echo 'ffmpeg version stub'; exit 0; fi\n"+
		"for last; do :; done\n"+
		"cat > \"$last\"\n")
}

// WithFailingFFmpeg installs an ffmpeg stand-in that drains stdin and exits
// non-zero after complaining on stderr.
func WithFailingFFmpeg() ConfigOption {
	return withScript("ffmpeg", "#!/bin/sh\n"+
		"cat > /dev/null\n"+
		"echo 'Unknown encoder' >&2\n"+
		"exit 1\n")
}

// WithStubbedFFprobe installs an ffprobe stand-in that reports the given
// number of decoded video frames for any input.
func WithStubbedFFprobe(frames int) ConfigOption {
	return withScript("ffprobe", fmt.Sprintf("#!/bin/sh\n"+
		"if [ \"$1\" = \"-version\" ]; then echo 'ffprobe version stub'; exit 0; fi\n"+
		"cat <<'JSON'\n"+
		"{\"streams\":[{\"index\":0,\"codec_type\":\"video\",\"codec_name\":\"h264\",\"width\":640,\"height\":480,\"nb_read_frames\":\"%d\"}],"+
		"\"format\":{\"format_name\":\"mov,mp4,m4a,3gp,3g2,mj2\",\"duration\":\"1.000000\",\"size\":\"1024\"}}\n"+
		"JSON\n", frames))
}

func withScript(name, script string) ConfigOption {
	return func(b *configBuilder) {
		binDir := filepath.Join(b.baseDir, "bin")
		if err := os.MkdirAll(binDir, 0o755); err != nil {
			b.t.Fatalf("mkdir bin dir: %v", err)
		}
		target := filepath.Join(binDir, name)
		if err := os.WriteFile(target, []byte(script), 0o755); err != nil {
			b.t.Fatalf("write stub %s: %v", name, err)
		}
		prependPath(b.t, binDir)
	}
}

func prependPath(t testing.TB, dir string) {
	oldPath := os.Getenv("PATH")
	if err := os.Setenv("PATH", dir+string(os.PathListSeparator)+oldPath); err != nil {
		t.Fatalf("set PATH: %v", err)
	}
	t.Cleanup(func() {
		_ = os.Setenv("PATH", oldPath)
	})
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Output.Dir)
}
