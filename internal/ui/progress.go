// Package ui renders batch progress in a terminal.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"elide/internal/driver"
)

type fileState uint8

const (
	stateQueued fileState = iota
	stateEliding
	stateDone
	stateFailed
)

func (s fileState) String() string {
	switch s {
	case stateEliding:
		return "eliding"
	case stateDone:
		return "done"
	case stateFailed:
		return "failed"
	default:
		return "queued"
	}
}

type fileItem struct {
	path      string
	state     fileState
	lifetimes int
}

type eventMsg driver.Event
type doneMsg struct{}

type progressModel struct {
	title    string
	events   <-chan driver.Event
	spinner  spinner.Model
	prog     progress.Model
	items    []fileItem
	finished int
	width    int
	done     bool
}

// NewProgressModel returns a Bubble Tea model that renders per-file state
// from driver events. The model quits when events is closed.
func NewProgressModel(title string, files []string, events <-chan driver.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	items := make([]fileItem, len(files))
	for i, f := range files {
		items[i] = fileItem{path: f}
	}
	return &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		items:   items,
		width:   80,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.applyEvent(driver.Event(msg))
		return m, tea.Batch(cmd, m.listenForEvent())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = msg.Width - 4
		}
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case progress.FrameMsg:
		pm, cmd := m.prog.Update(msg)
		m.prog = pm.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) View() string {
	if len(m.items) == 0 {
		return ""
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	header := fmt.Sprintf("%s %d/%d", m.title, m.finished, len(m.items))
	if m.done {
		header = "done: " + header
	} else {
		header = m.spinner.View() + " " + header
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	nameWidth := max(m.width-26, 20)
	for _, item := range m.items {
		status := styleStatus(item.state).Render(fmt.Sprintf("%8s", item.state))
		fmt.Fprintf(&b, "  %s %s", status, truncate(item.path, nameWidth))
		if item.state == stateDone {
			fmt.Fprintf(&b, "  %d", item.lifetimes)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n")
	return b.String()
}

func (m *progressModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) applyEvent(ev driver.Event) tea.Cmd {
	if ev.Index < 0 || ev.Index >= len(m.items) {
		return nil
	}
	item := &m.items[ev.Index]
	switch ev.Kind {
	case driver.EventQueued:
		item.state = stateQueued
		return nil
	case driver.EventStart:
		item.state = stateEliding
		return nil
	case driver.EventDone:
		if item.state < stateDone {
			m.finished++
		}
		item.state = stateDone
		if ev.Result != nil {
			if ev.Result.Failed() {
				item.state = stateFailed
			}
			item.lifetimes = ev.Result.Stats.Total()
		}
	}
	return m.prog.SetPercent(float64(m.finished) / float64(len(m.items)))
}

func styleStatus(s fileState) lipgloss.Style {
	switch s {
	case stateDone:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case stateFailed:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	case stateEliding:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	}
}

func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}
