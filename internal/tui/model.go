package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"recast/internal/converter"
)

// Model is the live progress view of a conversion run. Event log lines are
// printed above the view as they arrive.
type Model struct {
	events    <-chan converter.Event
	started   time.Time
	width     int
	files     int
	filesDone int
	jobsDone  int
	failed    int
	dirs      int
	quitting  bool
	interrupt func()
}

type doneMsg struct{}

type eventMsg converter.Event

// NewModel builds the view. interrupt, when set, is called on ctrl+c; the
// view keeps draining events until the run closes the channel.
func NewModel(events <-chan converter.Event, interrupt func()) Model {
	return Model{events: events, started: time.Now(), interrupt: interrupt}
}

func (m Model) Init() tea.Cmd {
	return listenForEvents(m.events)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		ev := converter.Event(msg)
		m.apply(ev)
		if line := RenderEvent(ev); line != "" {
			return m, tea.Sequence(tea.Println(line), listenForEvents(m.events))
		}
		return m, listenForEvents(m.events)
	case doneMsg:
		m.quitting = true
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" && m.interrupt != nil {
			m.interrupt()
		}
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	default:
		return m, nil
	}
}

func (m *Model) apply(ev converter.Event) {
	switch ev.Kind {
	case converter.EventDiscovered:
		m.files = ev.Count
	case converter.EventFileDone:
		m.filesDone++
	case converter.EventConverted, converter.EventCompressed:
		m.jobsDone++
	case converter.EventJobFailed:
		m.jobsDone++
		m.failed++
	case converter.EventDirCreated:
		m.dirs++
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	barWidth := 40
	if m.width > 0 {
		barWidth = int(math.Min(60, float64(m.width-10)))
		if barWidth < 20 {
			barWidth = 20
		}
	}

	ratio := 0.0
	if m.files > 0 {
		ratio = float64(m.filesDone) / float64(m.files)
		if ratio > 1 {
			ratio = 1
		}
	}

	bar := renderBar(barWidth, ratio)
	elapsed := time.Since(m.started).Round(time.Millisecond)

	lines := []string{
		titleStyle.Render("recast"),
		labelStyle.Render(fmt.Sprintf("Files: %d/%d", m.filesDone, m.files)) + dimStyle.Render(fmt.Sprintf("  failed jobs:%d", m.failed)),
		labelStyle.Render(fmt.Sprintf("Jobs finished: %d", m.jobsDone)),
		labelStyle.Render(fmt.Sprintf("Directories created: %d", m.dirs)),
		dimStyle.Render(fmt.Sprintf("Elapsed: %s", elapsed)),
		barStyle.Render(bar),
	}

	return strings.Join(lines, "\n")
}

func listenForEvents(events <-chan converter.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func renderBar(width int, ratio float64) string {
	filled := int(math.Round(ratio * float64(width)))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return "[" + strings.Repeat("=", filled) + strings.Repeat(" ", width-filled) + "]"
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	barStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)
