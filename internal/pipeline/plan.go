package pipeline

import (
	"image/color"
	"log/slog"
	"time"

	"snapmotion/internal/collect"
	"snapmotion/internal/config"
	"snapmotion/internal/sequence"
	"snapmotion/internal/video"
)

// Options describes one run. Zero values fall back to Config.
type Options struct {
	Config          *config.Config
	InputDir        string
	Sort            sequence.Mode
	SecondsPerFrame float64
	// Width and Height set the output size. Both zero keeps the size of the
	// first decodable image.
	Width      int
	Height     int
	OutputPath string
	Logger     *slog.Logger
}

// RenderConfig fixes the geometry and timing of every frame in a run.
type RenderConfig struct {
	Width           int
	Height          int
	SecondsPerFrame float64
	FPS             int
	Background      color.RGBA
}

// Plan is a fully resolved run, ready to execute.
type Plan struct {
	RunID        string
	InputDir     string
	Sort         sequence.Mode
	Entries      []collect.ImageEntry
	Render       RenderConfig
	KeepOriginal bool
	OutputPath   string

	cfg    *config.Config
	logger *slog.Logger
}

// Repeats is the number of encoder frames each image occupies.
func (p *Plan) Repeats() int {
	return video.Repeats(p.Render.SecondsPerFrame, p.Render.FPS)
}

// ExpectedFrames is the frame count of the output when every image decodes.
func (p *Plan) ExpectedFrames() int64 {
	return int64(len(p.Entries)) * int64(p.Repeats())
}

// EstimatedDuration is the playback length of the output when every image
// decodes.
func (p *Plan) EstimatedDuration() time.Duration {
	return framesDuration(p.ExpectedFrames(), p.Render.FPS)
}

// InputBytes is the combined size of the planned images.
func (p *Plan) InputBytes() int64 {
	return collect.TotalSize(p.Entries)
}

func framesDuration(frames int64, fps int) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(frames) * time.Second / time.Duration(fps)
}

// Skip records an image that was left out of the output.
type Skip struct {
	Entry  collect.ImageEntry
	Reason string
}

// Summary describes a finished run.
type Summary struct {
	RunID      string
	OutputPath string
	ImagesUsed int
	Skipped    []Skip
	Frames     int64
	Duration   time.Duration
	SizeBytes  int64
	Elapsed    time.Duration
	Verified   bool
}

// Observer receives run progress. Calls happen on the goroutine running
// Execute.
type Observer interface {
	Started(plan *Plan)
	ImageRendered(index int, entry collect.ImageEntry, frames int64)
	ImageSkipped(index int, entry collect.ImageEntry, err error)
	Finished(summary Summary)
}

// NopObserver ignores all events.
type NopObserver struct{}

func (NopObserver) Started(*Plan) {}

func (NopObserver) ImageRendered(int, collect.ImageEntry, int64) {}

func (NopObserver) ImageSkipped(int, collect.ImageEntry, error) {}

func (NopObserver) Finished(Summary) {}
