package config

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
)

// ParseResolution parses "WIDTHxHEIGHT" (case-insensitive separator). An
// empty value means keep the original size and returns 0, 0.
func ParseResolution(value string) (int, int, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return 0, 0, nil
	}
	wText, hText, ok := strings.Cut(value, "x")
	if !ok {
		return 0, 0, fmt.Errorf("invalid resolution %q (expected WIDTHxHEIGHT, e.g. 1280x720)", value)
	}
	w, err := strconv.Atoi(strings.TrimSpace(wText))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid resolution width %q", wText)
	}
	h, err := strconv.Atoi(strings.TrimSpace(hText))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid resolution height %q", hText)
	}
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("resolution %dx%d must be positive", w, h)
	}
	if w > maxDimension || h > maxDimension {
		return 0, 0, fmt.Errorf("resolution %dx%d exceeds %d pixels per side", w, h, maxDimension)
	}
	return w, h, nil
}

// ParseSeconds parses a positive duration in seconds of at most
// MaxSecondsPerFrame.
func ParseSeconds(value string) (float64, error) {
	seconds, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", value)
	}
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds <= 0 {
		return 0, errors.New("seconds per image must be a positive number")
	}
	if seconds > MaxSecondsPerFrame {
		return 0, fmt.Errorf("seconds per image must be at most %g", MaxSecondsPerFrame)
	}
	return seconds, nil
}

// ParseBackground parses "#rrggbb" or "rrggbb" into an opaque colour.
func ParseBackground(value string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(value), "#")
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid colour %q (expected #rrggbb)", value)
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid colour %q (expected #rrggbb)", value)
	}
	return color.RGBA{R: uint8(n >> 16), G: uint8(n >> 8), B: uint8(n), A: 0xff}, nil
}
