package main

import (
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"cinelog/internal/pipeline"
)

const summaryDurationUnit = time.Millisecond

// renderSummary lays out per-entry outcomes as a table for the sync report.
func renderSummary(summary pipeline.Summary) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Film", "Watched", "Rating", "Result", "Synced"})

	for _, outcome := range summary.Outcomes {
		entry := outcome.Entry
		result := outcome.State.String()
		if outcome.Err != nil {
			result = "failed: " + outcome.Err.Error()
		}
		tw.AppendRow(table.Row{
			entry.Film(),
			entry.WatchedLabel(),
			ratingLabel(entry.Rating),
			result,
			yesNo(outcome.Synced),
		})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}

func ratingLabel(rating float64) string {
	if rating <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f", rating)
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
