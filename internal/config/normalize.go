package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeInput()
	c.normalizeRender()
	if err := c.normalizeOutput(); err != nil {
		return err
	}
	c.normalizeFFmpeg()
	return c.normalizeLogging()
}

func (c *Config) normalizeInput() {
	c.Input.Sort = strings.ToLower(strings.TrimSpace(c.Input.Sort))
	if c.Input.Sort == "" {
		c.Input.Sort = defaultSort
	}
	c.Input.Collation = strings.TrimSpace(c.Input.Collation)
}

func (c *Config) normalizeRender() {
	c.Render.Background = strings.ToLower(strings.TrimSpace(c.Render.Background))
	if c.Render.Background == "" {
		c.Render.Background = defaultBackground
	}
	if c.Render.FPS == 0 {
		c.Render.FPS = defaultFPS
	}
	if c.Render.SecondsPerFrame == 0 {
		c.Render.SecondsPerFrame = defaultSecondsPerFrame
	}
}

func (c *Config) normalizeOutput() error {
	var err error
	if c.Output.Dir, err = expandPath(strings.TrimSpace(c.Output.Dir)); err != nil {
		return fmt.Errorf("output.dir: %w", err)
	}
	if c.Output.StagingDir, err = expandPath(strings.TrimSpace(c.Output.StagingDir)); err != nil {
		return fmt.Errorf("output.staging_dir: %w", err)
	}
	c.Output.Codec = strings.TrimSpace(c.Output.Codec)
	if c.Output.Codec == "" {
		c.Output.Codec = defaultCodec
	}
	c.Output.Preset = strings.ToLower(strings.TrimSpace(c.Output.Preset))
	if c.Output.Preset == "" {
		c.Output.Preset = defaultPreset
	}
	return nil
}

func (c *Config) normalizeFFmpeg() {
	c.FFmpeg.Binary = strings.TrimSpace(c.FFmpeg.Binary)
	if c.FFmpeg.Binary == "" {
		c.FFmpeg.Binary = defaultFFmpegBinary
	}
	c.FFmpeg.FFprobeBinary = strings.TrimSpace(c.FFmpeg.FFprobeBinary)
	if c.FFmpeg.FFprobeBinary == "" {
		c.FFmpeg.FFprobeBinary = defaultFFprobeBinary
	}
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	var err error
	if c.Logging.Dir, err = expandPath(strings.TrimSpace(c.Logging.Dir)); err != nil {
		return fmt.Errorf("logging.dir: %w", err)
	}
	return nil
}
