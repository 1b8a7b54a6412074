package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"recast/internal/converter"
)

// RenderEvent formats one run event as a single log line. It returns an
// empty string for events that only drive the progress view.
func RenderEvent(ev converter.Event) string {
	switch ev.Kind {
	case converter.EventConverted:
		return fmt.Sprintf("Converted %s to %s %s",
			sourceStyle.Render(ev.Source),
			formatStyle.Render(strings.ToUpper(ev.Format)),
			destStyle.Render(ev.Dest),
		)
	case converter.EventCompressed:
		return fmt.Sprintf("Compressed %s to %s with quality %s",
			sourceStyle.Render(ev.Source),
			destStyle.Render(ev.Dest),
			formatStyle.Render(fmt.Sprintf("%d", ev.Quality)),
		)
	case converter.EventJobFailed:
		if ev.Job == converter.JobCompress {
			return errorStyle.Render(fmt.Sprintf("Error compressing image %s: %v", ev.Source, ev.Err))
		}
		return errorStyle.Render(fmt.Sprintf("Error converting %s to %s: %v", ev.Source, strings.ToUpper(ev.Format), ev.Err))
	case converter.EventDirCreated:
		return "Created directory " + destStyle.Render(ev.Dest)
	case converter.EventDirFailed:
		return errorStyle.Render(fmt.Sprintf("Failed to create directory %s: %v", ev.Dest, ev.Err))
	case converter.EventNoInputFiles:
		return errorStyle.Render("No images found to convert or compress in " + ev.Source)
	default:
		return ""
	}
}

var (
	sourceStyle = lipgloss.NewStyle().Foreground(ColorAccentAlt)
	formatStyle = lipgloss.NewStyle().Foreground(ColorWarn)
	destStyle   = lipgloss.NewStyle().Foreground(ColorSuccess)
	errorStyle  = lipgloss.NewStyle().Foreground(ColorError)
)
