package main

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"snapmotion/internal/logging"
	"snapmotion/internal/pipeline"
	"snapmotion/internal/prompt"
)

func runWizard(cmd *cobra.Command, ctx *commandContext) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)

	wizard := prompt.New(cmd.InOrStdin(), out, prompt.DefaultsFromConfig(cfg))
	answers, err := wizard.Run()
	if err != nil {
		return err
	}

	runID := uuid.NewString()
	logger, err := ctx.newLogger(cmd, runID)
	if err != nil {
		return err
	}
	logger = logger.With(slog.String(logging.FieldComponent, "cli"))
	if !stdinIsTerminal(cmd) {
		logger.Debug("answers read from a non-interactive stdin")
	}
	runCtx := logging.WithRunID(cmd.Context(), runID)

	fmt.Fprintln(out, "\nCollecting your images...")
	plan, err := pipeline.Prepare(runCtx, pipeline.Options{
		Config:          cfg,
		InputDir:        answers.InputDir,
		Sort:            answers.Sort,
		SecondsPerFrame: answers.SecondsPerFrame,
		Width:           answers.Width,
		Height:          answers.Height,
		OutputPath:      answers.OutputPath(),
		Logger:          logger,
	})
	if err != nil {
		return err
	}

	for _, line := range renderSectionHeader("Summary", colorize) {
		fmt.Fprintln(out, line)
	}
	fmt.Fprintln(out, renderPlan(plan))

	proceed, err := wizard.Confirm("\nReady to begin processing?")
	if err != nil {
		return err
	}
	if !proceed {
		fmt.Fprintln(out, "Processing canceled. Nothing was written.")
		return nil
	}

	observer := newProgressObserver(cmd.ErrOrStderr(), shouldColorize(cmd.ErrOrStderr()))
	summary, err := pipeline.Execute(runCtx, plan, observer)
	observer.close()
	if err != nil {
		return err
	}

	fmt.Fprintln(out)
	for _, line := range renderSectionHeader("Timelapse created", colorize) {
		fmt.Fprintln(out, line)
	}
	fmt.Fprintln(out, renderSummary(summary))
	for _, line := range skippedLines(summary, colorize) {
		fmt.Fprintln(out, line)
	}
	return nil
}

func stdinIsTerminal(cmd *cobra.Command) bool {
	return isTerminal(cmd.InOrStdin())
}
