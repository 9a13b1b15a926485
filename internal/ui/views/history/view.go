package history

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	sessiondto "focusflow/internal/modules/session/dto"
	"focusflow/internal/platform/timefmt"
	"focusflow/internal/ui/theme"
)

// Port is the slice of the session usecase this view needs.
type Port interface {
	ListHistory(ctx context.Context) ([]sessiondto.SessionOutput, error)
}

// LoadedMsg delivers the full history, newest first.
type LoadedMsg struct {
	Rows []sessiondto.SessionOutput
	Err  error
}

type Model struct {
	port  Port
	rows  []sessiondto.SessionOutput
	err   error
	vp    viewport.Model
	ready bool
}

func New(port Port) Model {
	return Model{port: port}
}

func (m Model) Init() tea.Cmd { return m.Reload() }

func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		rows, err := m.port.ListHistory(context.Background())
		return LoadedMsg{Rows: rows, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if !m.ready {
			m.vp = viewport.New(msg.Width, msg.Height)
			m.ready = true
		} else {
			m.vp.Width = msg.Width
			m.vp.Height = msg.Height
		}
		m.vp.SetContent(m.render())
		return m, nil
	case LoadedMsg:
		m.rows = msg.Rows
		m.err = msg.Err
		if m.ready {
			m.vp.SetContent(m.render())
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if !m.ready {
		return ""
	}
	return m.vp.View()
}

func (m Model) render() string {
	if m.err != nil {
		return theme.Bad.Render("Could not load history: " + m.err.Error())
	}
	if len(m.rows) == 0 {
		empty := theme.Muted.Render("No sessions yet.")
		return lipgloss.Place(m.vp.Width, m.vp.Height, lipgloss.Center, lipgloss.Center, empty)
	}

	var sb strings.Builder
	sb.WriteString(theme.Title.Render("History") + "\n\n")
	for _, row := range m.rows {
		subject := row.Subject
		if subject == "" {
			subject = "No subject"
		}
		sb.WriteString(fmt.Sprintf("%s %s\n", theme.Hot.Render(row.Title), theme.Muted.Render("· "+subject)))
		sb.WriteString(fmt.Sprintf("  %s  %d min planned  %d min focused  %d distraction(s)\n\n",
			theme.Muted.Render(timefmt.DayDate(row.CreatedAt)),
			row.DurationMinutes, row.FocusedMinutes, len(row.Distractions)))
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(sb.String())
}
