package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"recast/internal/converter"
)

type SummaryRow struct {
	Label string
	Value string
}

func RenderSummary(rows []SummaryRow) string {
	labelWidth := 0
	valueWidth := 0
	for _, row := range rows {
		labelWidth = max(labelWidth, lipgloss.Width(row.Label))
		valueWidth = max(valueWidth, lipgloss.Width(row.Value))
	}

	hline := strings.Repeat("-", labelWidth+valueWidth+3)
	lines := []string{hline}

	for _, row := range rows {
		label := padRight(row.Label, labelWidth)
		value := padRight(row.Value, valueWidth)
		line := fmt.Sprintf("%s | %s", labelStyle.Render(label), valueStyle.Render(value))
		lines = append(lines, line)
	}

	lines = append(lines, hline)
	return strings.Join(lines, "\n")
}

// ReportRows turns a run report into summary rows.
func ReportRows(report converter.RunReport) []SummaryRow {
	return []SummaryRow{
		{Label: "Result", Value: report.State.String()},
		{Label: "Files processed", Value: fmt.Sprintf("%d", report.Files)},
		{Label: "Jobs run", Value: fmt.Sprintf("%d", report.Jobs)},
		{Label: "Jobs failed", Value: fmt.Sprintf("%d", report.Failed)},
		{Label: "Bytes written", Value: fmt.Sprintf("%d", report.BytesWritten)},
	}
}

// RenderFailures lists every failed job, one per line, in report order.
func RenderFailures(failures []converter.JobOutcome) string {
	if len(failures) == 0 {
		return ""
	}
	lines := []string{errorStyle.Render(fmt.Sprintf("%d failed job(s):", len(failures)))}
	for _, f := range failures {
		target := f.Dest
		if target == "" {
			target = f.Format
		}
		lines = append(lines, fmt.Sprintf("  %s %s %s %s",
			dimStyle.Render("-"),
			sourceStyle.Render(f.Source),
			dimStyle.Render("->"),
			valueStyle.Render(target)),
		)
		lines = append(lines, "    "+errorStyle.Render(f.Err.Error()))
	}
	return strings.Join(lines, "\n")
}

func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

var (
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true)
)
