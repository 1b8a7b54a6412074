package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"recast/internal/converter"
)

func TestRenderEvent(t *testing.T) {
	boom := errors.New("boom")
	tests := []struct {
		name string
		ev   converter.Event
		want []string
	}{
		{
			name: "converted",
			ev:   converter.Event{Kind: converter.EventConverted, Source: "src/a.jpg", Dest: "dist/a.avif", Format: "avif"},
			want: []string{"Converted", "src/a.jpg", "AVIF", "dist/a.avif"},
		},
		{
			name: "compressed",
			ev:   converter.Event{Kind: converter.EventCompressed, Job: converter.JobCompress, Source: "src/a.jpg", Dest: "dist/a.jpg", Quality: 85},
			want: []string{"Compressed", "src/a.jpg", "dist/a.jpg", "85"},
		},
		{
			name: "convert failed",
			ev:   converter.Event{Kind: converter.EventJobFailed, Source: "src/a.jpg", Format: "webp", Err: boom},
			want: []string{"Error converting", "WEBP", "boom"},
		},
		{
			name: "compress failed",
			ev:   converter.Event{Kind: converter.EventJobFailed, Job: converter.JobCompress, Source: "src/a.jpg", Err: boom},
			want: []string{"Error compressing", "src/a.jpg", "boom"},
		},
		{
			name: "dir created",
			ev:   converter.Event{Kind: converter.EventDirCreated, Dest: "dist/a/"},
			want: []string{"Created directory", "dist/a/"},
		},
		{
			name: "dir failed",
			ev:   converter.Event{Kind: converter.EventDirFailed, Dest: "dist/a/", Err: boom},
			want: []string{"Failed to create directory", "dist/a/", "boom"},
		},
		{
			name: "no files",
			ev:   converter.Event{Kind: converter.EventNoInputFiles, Source: "src"},
			want: []string{"No images found", "src"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := RenderEvent(tt.ev)
			for _, w := range tt.want {
				if !strings.Contains(line, w) {
					t.Fatalf("RenderEvent = %q, missing %q", line, w)
				}
			}
		})
	}

	if line := RenderEvent(converter.Event{Kind: converter.EventFileDone}); line != "" {
		t.Fatalf("FileDone should not render a line, got %q", line)
	}
}

func TestModelTracksProgress(t *testing.T) {
	m := NewModel(nil, nil)
	for _, ev := range []converter.Event{
		{Kind: converter.EventDiscovered, Count: 2},
		{Kind: converter.EventDirCreated},
		{Kind: converter.EventConverted},
		{Kind: converter.EventJobFailed},
		{Kind: converter.EventFileDone},
	} {
		next, _ := m.Update(eventMsg(ev))
		m = next.(Model)
	}

	if m.files != 2 || m.filesDone != 1 || m.jobsDone != 2 || m.failed != 1 || m.dirs != 1 {
		t.Fatalf("unexpected model state: %+v", m)
	}
	view := m.View()
	if !strings.Contains(view, "Files: 1/2") || !strings.Contains(view, "failed jobs:1") {
		t.Fatalf("unexpected view:\n%s", view)
	}

	interrupted := false
	m.interrupt = func() { interrupted = true }
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if !interrupted {
		t.Fatal("ctrl+c should trigger the interrupt callback")
	}
	m = next.(Model)

	next, _ = m.Update(doneMsg{})
	if next.(Model).View() != "" {
		t.Fatal("view should be empty after done")
	}
}

func TestRenderSummary(t *testing.T) {
	report := converter.RunReport{State: converter.StateCompleted, Files: 3, Jobs: 6, Failed: 1, BytesWritten: 2048}
	out := RenderSummary(ReportRows(report))

	for _, want := range []string{"Files processed", "| 3", "Jobs failed", "| 1", "completed"} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary missing %q:\n%s", want, out)
		}
	}
	lines := strings.Split(out, "\n")
	if lines[0] != lines[len(lines)-1] || strings.Trim(lines[0], "-") != "" {
		t.Fatalf("summary should be framed by matching rules:\n%s", out)
	}
}

func TestRenderFailures(t *testing.T) {
	if RenderFailures(nil) != "" {
		t.Fatal("expected empty output without failures")
	}
	out := RenderFailures([]converter.JobOutcome{
		{Source: "src/a.png", Dest: "dist/a.avif", Format: "avif", Err: errors.New("encode error: bad quality")},
	})
	for _, want := range []string{"1 failed job", "src/a.png", "dist/a.avif", "bad quality"} {
		if !strings.Contains(out, want) {
			t.Fatalf("failures missing %q:\n%s", want, out)
		}
	}
}
