package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"snapmotion/internal/config"
	"snapmotion/internal/deps"
	"snapmotion/internal/failure"
	"snapmotion/internal/fileutil"
	"snapmotion/internal/frame"
	"snapmotion/internal/logging"
	"snapmotion/internal/media/ffprobe"
	"snapmotion/internal/staging"
	"snapmotion/internal/video"
)

// Execute renders plan into its output file. Images that fail to decode are
// skipped and reported; any other failure aborts the run and leaves no
// output behind.
func Execute(ctx context.Context, plan *Plan, obs Observer) (Summary, error) {
	if plan == nil {
		return Summary{}, failure.Wrap(failure.ErrConfiguration, "", "execute", "plan is required", nil)
	}
	if obs == nil {
		obs = NopObserver{}
	}
	started := time.Now()
	ctx = logging.WithRunID(ctx, plan.RunID)
	renderCtx := logging.WithStage(ctx, failure.StageRender)
	logger := logging.WithContext(renderCtx, logging.NewComponentLogger(plan.logger, "pipeline"))

	renderer, err := frame.NewRenderer(plan.Render.Width, plan.Render.Height, plan.Render.Background)
	if err != nil {
		return Summary{}, failure.Wrap(failure.ErrConfiguration, failure.StageRender, "execute", "renderer", err)
	}

	cfg := plan.cfg
	if cfg == nil {
		def := config.Default()
		cfg = &def
	}
	stagingDir := cfg.Output.StagingDir
	if stagingDir == "" {
		stagingDir = filepath.Dir(plan.OutputPath)
	}
	staging.CleanStale(ctx, stagingDir, staging.DefaultMaxAge, logger)

	writer, err := video.Open(ctx, video.Options{
		Path:            plan.OutputPath,
		Width:           plan.Render.Width,
		Height:          plan.Render.Height,
		FPS:             plan.Render.FPS,
		SecondsPerFrame: plan.Render.SecondsPerFrame,
		Format:          renderer.Format(),
		Codec:           cfg.Output.Codec,
		CRF:             cfg.Output.CRF,
		Preset:          cfg.Output.Preset,
		FFmpegBinary:    cfg.FFmpeg.Binary,
		StagingDir:      cfg.Output.StagingDir,
		Logger:          logging.WithContext(logging.WithStage(ctx, failure.StageWrite), plan.logger),
	})
	if err != nil {
		return Summary{}, err
	}
	defer func() { _ = writer.Abort() }()

	obs.Started(plan)
	logger.Info("render started",
		slog.String(logging.FieldEventType, "render_start"),
		slog.Int("images", len(plan.Entries)),
		slog.Int64("expected_frames", plan.ExpectedFrames()),
	)

	summary := Summary{RunID: plan.RunID, OutputPath: plan.OutputPath}
	sampler := logging.NewProgressSampler(10)
	total := len(plan.Entries)
	for i, entry := range plan.Entries {
		if err := ctx.Err(); err != nil {
			return summary, failure.Wrap(failure.ErrWrite, failure.StageRender, "execute", "interrupted", err)
		}
		f, err := renderer.Render(entry)
		if err != nil {
			if failure.Fatal(err) {
				return summary, err
			}
			logger.Warn("image skipped",
				slog.String(logging.FieldEventType, "image_skipped"),
				slog.String("image", entry.Name),
				logging.Error(err),
			)
			summary.Skipped = append(summary.Skipped, Skip{Entry: entry, Reason: skipReason(err)})
			obs.ImageSkipped(i, entry, err)
			continue
		}
		if err := writer.WriteFrame(f); err != nil {
			return summary, err
		}
		summary.ImagesUsed++
		obs.ImageRendered(i, entry, writer.FramesWritten())

		percent := float64(i+1) / float64(total) * 100
		if sampler.ShouldLog(percent, failure.StageRender) {
			logger.Info("render progress",
				slog.String("percent", fmt.Sprintf("%.0f%%", percent)),
				slog.Int("image", i+1),
				slog.Int("of", total),
			)
		}
	}

	if summary.ImagesUsed == 0 {
		return summary, failure.Wrap(failure.ErrEmptyInput, failure.StageRender, "execute",
			fmt.Sprintf("none of the %d images could be decoded", total), nil)
	}
	if err := writer.Finalize(); err != nil {
		return summary, err
	}
	summary.Frames = writer.FramesWritten()
	summary.Duration = framesDuration(summary.Frames, plan.Render.FPS)

	if cfg.Output.Verify {
		if err := verifyOutput(ctx, cfg.FFmpeg.FFprobeBinary, plan.OutputPath, summary.Frames); err != nil {
			if rmErr := fileutil.RemoveIfExists(plan.OutputPath); rmErr != nil {
				logger.Warn("failed to remove unverified output", slog.String("path", plan.OutputPath), logging.Error(rmErr))
			}
			return summary, err
		}
		summary.Verified = true
	}

	if info, err := os.Stat(plan.OutputPath); err == nil {
		summary.SizeBytes = info.Size()
	}
	summary.Elapsed = time.Since(started)

	logger.Info("timelapse written",
		slog.String(logging.FieldEventType, "run_complete"),
		slog.String("output", summary.OutputPath),
		slog.Int("images", summary.ImagesUsed),
		slog.Int("skipped", len(summary.Skipped)),
		slog.Int64("frames", summary.Frames),
		slog.Duration("elapsed", summary.Elapsed),
	)
	obs.Finished(summary)
	return summary, nil
}

func verifyOutput(ctx context.Context, ffprobeBinary, path string, expected int64) error {
	binary, err := deps.Resolve(ffprobeBinary)
	if err != nil {
		return failure.Wrap(failure.ErrWrite, failure.StageWrite, "verify", "ffprobe not available", err)
	}
	result, err := ffprobe.Inspect(ctx, binary, path, ffprobe.Options{CountFrames: true})
	if err != nil {
		return failure.Wrap(failure.ErrWrite, failure.StageWrite, "verify", "inspect output", err)
	}
	if got := result.FrameCount(); got != expected {
		return failure.Wrap(failure.ErrWrite, failure.StageWrite, "verify",
			fmt.Sprintf("output has %d frames, expected %d", got, expected), nil)
	}
	return nil
}

func skipReason(err error) string {
	var fe *failure.Error
	if errors.As(err, &fe) && fe.Err != nil {
		return fe.Operation + ": " + fe.Err.Error()
	}
	return err.Error()
}
