package config

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"golang.org/x/text/language"

	"snapmotion/internal/sequence"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateInput(); err != nil {
		return err
	}
	if err := c.validateRender(); err != nil {
		return err
	}
	if err := c.validateOutput(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateInput() error {
	if _, err := sequence.ParseSortMode(c.Input.Sort); err != nil {
		return fmt.Errorf("input.sort: %w", err)
	}
	if c.Input.Collation != "" {
		if _, err := language.Parse(c.Input.Collation); err != nil {
			return fmt.Errorf("input.collation: invalid language tag %q: %w", c.Input.Collation, err)
		}
	}
	return nil
}

func (c *Config) validateRender() error {
	w, h := c.Render.Width, c.Render.Height
	switch {
	case w < 0 || w > maxDimension:
		return fmt.Errorf("render.width must be between 0 and %d", maxDimension)
	case h < 0 || h > maxDimension:
		return fmt.Errorf("render.height must be between 0 and %d", maxDimension)
	case (w == 0) != (h == 0):
		return errors.New("render.width and render.height must both be set or both be 0")
	}
	if c.Render.FPS <= 0 || c.Render.FPS > maxFPS {
		return fmt.Errorf("render.fps must be between 1 and %d", maxFPS)
	}
	spf := c.Render.SecondsPerFrame
	if math.IsNaN(spf) || math.IsInf(spf, 0) || spf <= 0 {
		return errors.New("render.seconds_per_frame must be a positive number")
	}
	if spf > MaxSecondsPerFrame {
		return fmt.Errorf("render.seconds_per_frame must be at most %g", MaxSecondsPerFrame)
	}
	if _, err := ParseBackground(c.Render.Background); err != nil {
		return fmt.Errorf("render.background: %w", err)
	}
	return nil
}

func (c *Config) validateOutput() error {
	if c.Output.CRF < 0 || c.Output.CRF > maxCRF {
		return fmt.Errorf("output.crf must be between 0 and %d", maxCRF)
	}
	if !slices.Contains(validPresets, c.Output.Preset) {
		return fmt.Errorf("output.preset: unsupported preset %q", c.Output.Preset)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported format %q (expected console or json)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level: unsupported level %q", c.Logging.Level)
	}
	return nil
}
