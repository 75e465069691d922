package ui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/skelly-dev/projscout/internal/project"
)

// SnapshotMsg carries a snapshot from an enrichment callback into the program.
type SnapshotMsg struct {
	Info project.Info
}

// DoneMsg reports that no further snapshots will arrive.
type DoneMsg struct{}

// InfoModel shows the latest snapshot for one directory and a spinner until
// enrichment finishes.
type InfoModel struct {
	styles  Styles
	spinner spinner.Model

	info     project.Info
	received bool
	done     bool
	quitting bool
}

func NewInfoModel(styles Styles) InfoModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner
	return InfoModel{styles: styles, spinner: sp}
}

func (m InfoModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m InfoModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	case SnapshotMsg:
		if !m.received || msg.Info.Stage >= m.info.Stage {
			m.info = msg.Info
			m.received = true
		}
		return m, nil

	case DoneMsg:
		m.done = true
		return m, nil

	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m InfoModel) View() string {
	if m.quitting {
		return ""
	}
	if !m.received {
		return m.spinner.View() + " " + m.styles.Muted.Render("classifying...") + "\n"
	}

	body := m.styles.Frame.Render(Render(m.info, m.styles))
	status := m.styles.Muted.Render("q to close")
	if !m.done {
		status = m.spinner.View() + " " + m.styles.Muted.Render("refining... q to close")
	}
	return body + "\n" + status + "\n"
}

// Info returns the snapshot currently on display.
func (m InfoModel) Info() project.Info {
	return m.info
}

func (m InfoModel) Done() bool {
	return m.done
}
