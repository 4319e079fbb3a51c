package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"snapmotion/internal/collect"
	"snapmotion/internal/config"
	"snapmotion/internal/deps"
	"snapmotion/internal/failure"
	"snapmotion/internal/frame"
	"snapmotion/internal/logging"
	"snapmotion/internal/preflight"
	"snapmotion/internal/sequence"
)

// Prepare collects, orders and checks everything a run needs without
// touching the output. The run id is taken from ctx when one is attached.
func Prepare(ctx context.Context, opts Options) (*Plan, error) {
	cfg := opts.Config
	if cfg == nil {
		def := config.Default()
		cfg = &def
	}
	runID, ok := logging.RunIDFromContext(ctx)
	if !ok {
		runID = uuid.NewString()
		ctx = logging.WithRunID(ctx, runID)
	}
	logger := logging.WithContext(ctx, logging.NewComponentLogger(opts.Logger, "pipeline"))

	plan := &Plan{
		RunID:    runID,
		InputDir: strings.TrimSpace(opts.InputDir),
		cfg:      cfg,
		logger:   opts.Logger,
	}

	entries, err := collect.Images(plan.InputDir)
	if err != nil {
		return nil, err
	}
	logger.Debug("images collected",
		slog.String("input_dir", plan.InputDir),
		slog.Int("count", len(entries)),
	)

	plan.Sort = opts.Sort
	if plan.Sort == "" {
		plan.Sort = cfg.SortMode()
	}
	var seqOpts []sequence.Option
	if tag, ok := cfg.CollationTag(); ok {
		seqOpts = append(seqOpts, sequence.WithCollation(tag))
	}
	plan.Entries, err = sequence.Order(entries, plan.Sort, seqOpts...)
	if err != nil {
		return nil, err
	}

	if err := plan.resolveOutput(opts.OutputPath); err != nil {
		return nil, err
	}
	if err := plan.resolveRender(opts, logger); err != nil {
		return nil, err
	}
	if err := checkEncoder(cfg); err != nil {
		return nil, err
	}

	logger.Info("run planned",
		slog.String(logging.FieldEventType, "run_planned"),
		slog.Int("images", len(plan.Entries)),
		slog.String("sort", string(plan.Sort)),
		slog.String("resolution", fmt.Sprintf("%dx%d", plan.Render.Width, plan.Render.Height)),
		slog.Int("fps", plan.Render.FPS),
		slog.Int("repeats", plan.Repeats()),
		slog.String("output", plan.OutputPath),
	)
	return plan, nil
}

func (p *Plan) resolveOutput(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return failure.Wrap(failure.ErrInvalidPath, failure.StageWrite, "plan", "output path not set", nil)
	}
	if !strings.EqualFold(filepath.Ext(path), ".mp4") {
		path += ".mp4"
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return failure.Wrap(failure.ErrInvalidPath, failure.StageWrite, "plan", path, err)
	}
	p.OutputPath = abs

	checks := []preflight.Result{preflight.CheckDirectoryAccess("Output directory", filepath.Dir(abs))}
	if staging := p.cfg.Output.StagingDir; staging != "" {
		checks = append(checks, preflight.CheckDirectoryAccess("Staging directory", staging))
	}
	if failed := preflight.Failed(checks); len(failed) > 0 {
		return failure.Wrap(failure.ErrWrite, failure.StageWrite, "preflight", failed[0].Name, errors.New(failed[0].Detail))
	}
	return nil
}

func (p *Plan) resolveRender(opts Options, logger *slog.Logger) error {
	spf := opts.SecondsPerFrame
	if spf == 0 {
		spf = p.cfg.Render.SecondsPerFrame
	}
	if spf <= 0 || spf > config.MaxSecondsPerFrame || math.IsNaN(spf) || math.IsInf(spf, 0) {
		return failure.Wrap(failure.ErrConfiguration, failure.StageRender, "plan", fmt.Sprintf("invalid seconds per image %v", spf), nil)
	}
	p.Render = RenderConfig{
		Width:           opts.Width,
		Height:          opts.Height,
		SecondsPerFrame: spf,
		FPS:             p.cfg.Render.FPS,
		Background:      p.cfg.BackgroundColor(),
	}
	if p.Render.FPS <= 0 {
		return failure.Wrap(failure.ErrConfiguration, failure.StageRender, "plan", fmt.Sprintf("invalid frame rate %d", p.Render.FPS), nil)
	}

	switch {
	case opts.Width > 0 && opts.Height > 0:
		return nil
	case opts.Width == 0 && opts.Height == 0:
	default:
		return failure.Wrap(failure.ErrConfiguration, failure.StageRender, "plan",
			fmt.Sprintf("invalid resolution %dx%d", opts.Width, opts.Height), nil)
	}

	// Keep the original size: use the first image whose header decodes.
	p.KeepOriginal = true
	for _, entry := range p.Entries {
		size, err := frame.DecodeSize(entry.Path)
		if err != nil {
			logger.Debug("image header unreadable", slog.String("image", entry.Name), logging.Error(err))
			continue
		}
		even := frame.EvenSize(size)
		p.Render.Width, p.Render.Height = even.X, even.Y
		if even != size {
			logger.Info("original size rounded up to even dimensions",
				slog.String("image", entry.Name),
				slog.String("original", fmt.Sprintf("%dx%d", size.X, size.Y)),
				slog.String("resolution", fmt.Sprintf("%dx%d", even.X, even.Y)),
			)
		}
		return nil
	}
	return failure.Wrap(failure.ErrEmptyInput, failure.StageRender, "plan", "none of the images could be decoded", nil)
}

func checkEncoder(cfg *config.Config) error {
	missing := deps.Missing(preflight.CheckSystemDeps(cfg))
	if len(missing) == 0 {
		return nil
	}
	names := make([]string, 0, len(missing))
	for _, m := range missing {
		names = append(names, m.Detail)
	}
	return failure.Wrap(failure.ErrWrite, failure.StageWrite, "preflight", "required binaries unavailable", errors.New(strings.Join(names, "; ")))
}
