package main

import (
	"fmt"
	"io"

	"github.com/schollz/progressbar/v3"

	"snapmotion/internal/collect"
	"snapmotion/internal/pipeline"
)

// progressObserver drives a terminal progress bar from pipeline events.
type progressObserver struct {
	w        io.Writer
	colorize bool
	bar      *progressbar.ProgressBar
}

func newProgressObserver(w io.Writer, colorize bool) *progressObserver {
	return &progressObserver{w: w, colorize: colorize}
}

func (p *progressObserver) Started(plan *pipeline.Plan) {
	description := "Rendering frames"
	if p.colorize {
		description = "[cyan]Rendering frames[reset]"
	}
	p.bar = progressbar.NewOptions(len(plan.Entries),
		progressbar.OptionSetWriter(p.w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionEnableColorCodes(p.colorize),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "▐",
			BarEnd:        "▌",
		}),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionSetItsString("img"),
		progressbar.OptionShowIts(),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(p.w)
		}),
	)
}

func (p *progressObserver) ImageRendered(int, collect.ImageEntry, int64) {
	p.add()
}

func (p *progressObserver) ImageSkipped(int, collect.ImageEntry, error) {
	p.add()
}

func (p *progressObserver) Finished(pipeline.Summary) {
	if p.bar != nil {
		_ = p.bar.Finish()
	}
}

// close leaves the cursor on a fresh line when a run stops early.
func (p *progressObserver) close() {
	if p.bar != nil && !p.bar.IsFinished() {
		_ = p.bar.Exit()
		fmt.Fprintln(p.w)
	}
}

func (p *progressObserver) add() {
	if p.bar != nil {
		_ = p.bar.Add(1)
	}
}
