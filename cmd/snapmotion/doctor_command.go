package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"snapmotion/internal/deps"
	"snapmotion/internal/preflight"
)

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check that ffmpeg and the configured directories are usable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			var lines []string
			lines = append(lines, renderSectionHeader("Configuration", colorize)...)
			configDetail := ctx.configPath
			configKind := statusOK
			if !ctx.configExists {
				configDetail += " (not found, using defaults)"
				configKind = statusInfo
			}
			lines = append(lines, renderStatusLine("Config", configKind, configDetail, colorize))

			statuses := preflight.CheckSystemDeps(cfg)
			lines = append(lines, "")
			lines = append(lines, renderSectionHeader("Dependencies", colorize)...)
			lines = append(lines, dependencyLines(statuses, colorize)...)

			results := preflight.RunAll(cfg)
			lines = append(lines, "")
			lines = append(lines, renderSectionHeader("Directories", colorize)...)
			lines = append(lines, checkLines(results, colorize)...)

			for _, line := range lines {
				fmt.Fprintln(out, line)
			}

			problems := len(deps.Missing(statuses)) + len(preflight.Failed(results))
			if problems > 0 {
				return fmt.Errorf("doctor found %d problem(s)", problems)
			}
			return nil
		},
	}
}
