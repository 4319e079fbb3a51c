package config

import (
	_ "embed"
	"errors"
	"fmt"
	"image/color"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"

	"snapmotion/internal/sequence"
)

//go:embed sample_config.toml
var sampleConfig string

// Input controls how images are ordered.
type Input struct {
	Sort      string `toml:"sort"`
	Collation string `toml:"collation"` // BCP 47 tag; empty means byte order
}

// Render contains the frame geometry and timing defaults.
type Render struct {
	// Width and Height of the output video. Zero for both keeps the size of
	// the first decodable image.
	Width           int     `toml:"width"`
	Height          int     `toml:"height"`
	FPS             int     `toml:"fps"`
	SecondsPerFrame float64 `toml:"seconds_per_frame"`
	Background      string  `toml:"background"`
}

// Output contains encoder settings and the default destination folder.
type Output struct {
	Dir        string `toml:"dir"`
	Codec      string `toml:"codec"`
	CRF        int    `toml:"crf"`
	Preset     string `toml:"preset"`
	Verify     bool   `toml:"verify"`
	StagingDir string `toml:"staging_dir"`
}

// FFmpeg names the external binaries.
type FFmpeg struct {
	Binary        string `toml:"binary"`
	FFprobeBinary string `toml:"ffprobe_binary"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	Dir    string `toml:"dir"`
}

// Config encapsulates all configuration values for SnapMotion.
type Config struct {
	Input   Input   `toml:"input"`
	Render  Render  `toml:"render"`
	Output  Output  `toml:"output"`
	FFmpeg  FFmpeg  `toml:"ffmpeg"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigLocation)
}

// Load locates, parses, and validates a configuration file. A missing file is
// not an error: defaults are returned and the bool result reports false.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs(projectConfigFileName)
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// SortMode returns the configured default ordering.
func (c *Config) SortMode() sequence.Mode {
	mode, err := sequence.ParseSortMode(c.Input.Sort)
	if err != nil {
		return sequence.ByName
	}
	return mode
}

// CollationTag returns the configured collation locale, if any.
func (c *Config) CollationTag() (language.Tag, bool) {
	if c.Input.Collation == "" {
		return language.Und, false
	}
	tag, err := language.Parse(c.Input.Collation)
	if err != nil {
		return language.Und, false
	}
	return tag, true
}

// BackgroundColor returns the padding colour for letterboxed frames.
func (c *Config) BackgroundColor() color.RGBA {
	bg, err := ParseBackground(c.Render.Background)
	if err != nil {
		return color.RGBA{A: 0xff}
	}
	return bg
}

// LogFilePath returns the per-run log file location, or "" when file logging
// is disabled.
func (c *Config) LogFilePath(runID string) string {
	if c.Logging.Dir == "" {
		return ""
	}
	name := "snapmotion.log"
	if runID != "" {
		name = "snapmotion-" + runID + ".log"
	}
	return filepath.Join(c.Logging.Dir, name)
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the path expansion rules so wizard answers resolve the
// same way as configured directories.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(strings.TrimSpace(pathValue))
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
