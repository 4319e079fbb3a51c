package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"snapmotion/internal/pipeline"
	"snapmotion/internal/sequence"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := range columns {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := range columns {
			if i < len(row) {
				r[i] = row[i]
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := range columns {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

var settingColumns = []columnAlignment{alignLeft, alignLeft}

func renderPlan(plan *pipeline.Plan) string {
	resolution := fmt.Sprintf("%dx%d", plan.Render.Width, plan.Render.Height)
	if plan.KeepOriginal {
		resolution += " (original)"
	}
	rows := [][]string{
		{"Images", humanize.Comma(int64(len(plan.Entries)))},
		{"Order", sortLabel(plan.Sort)},
		{"Seconds per image", formatSeconds(plan.Render.SecondsPerFrame)},
		{"Resolution", resolution},
		{"Frame rate", fmt.Sprintf("%d fps", plan.Render.FPS)},
		{"Estimated duration", formatDuration(plan.EstimatedDuration())},
		{"Input size", humanize.IBytes(uint64(plan.InputBytes()))},
		{"Output", plan.OutputPath},
	}
	return renderTable([]string{"Setting", "Value"}, rows, settingColumns)
}

func renderSummary(summary pipeline.Summary) string {
	rows := [][]string{
		{"Location", summary.OutputPath},
		{"Images used", humanize.Comma(int64(summary.ImagesUsed))},
		{"Images skipped", humanize.Comma(int64(len(summary.Skipped)))},
		{"Total frames", humanize.Comma(summary.Frames)},
		{"Duration", formatDuration(summary.Duration)},
		{"File size", humanize.IBytes(uint64(summary.SizeBytes))},
		{"Elapsed", summary.Elapsed.Round(time.Millisecond).String()},
		{"Verified", yesNo(summary.Verified)},
	}
	return renderTable([]string{"Result", "Value"}, rows, settingColumns)
}

func skippedLines(summary pipeline.Summary, colorize bool) []string {
	lines := make([]string, 0, len(summary.Skipped))
	for _, skip := range summary.Skipped {
		lines = append(lines, renderStatusLine(skip.Entry.Name, statusWarn, "skipped: "+skip.Reason, colorize))
	}
	return lines
}

func sortLabel(mode sequence.Mode) string {
	switch mode {
	case sequence.ByDate:
		return "by date/time"
	default:
		return "by filename"
	}
}

func formatSeconds(s float64) string {
	return humanize.FtoaWithDigits(s, 3) + " s"
}

func formatDuration(d time.Duration) string {
	return fmt.Sprintf("%.1f s", d.Seconds())
}
