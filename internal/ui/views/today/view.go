package today

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	sessiondto "focusflow/internal/modules/session/dto"
	"focusflow/internal/ui/theme"
)

// Port is the slice of the session usecase this view needs.
type Port interface {
	ListToday(ctx context.Context) ([]sessiondto.SessionOutput, error)
}

// LoadedMsg delivers the day's sessions, or the error that prevented it.
type LoadedMsg struct {
	Rows []sessiondto.SessionOutput
	Err  error
}

type Model struct {
	port   Port
	rows   []sessiondto.SessionOutput
	err    error
	width  int
	height int
}

func New(port Port) Model {
	return Model{port: port}
}

func (m Model) Init() tea.Cmd { return m.Reload() }

func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		rows, err := m.port.ListToday(context.Background())
		return LoadedMsg{Rows: rows, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case LoadedMsg:
		m.rows = msg.Rows
		m.err = msg.Err
	}
	return m, nil
}

func (m Model) View() string {
	if m.err != nil {
		return theme.Bad.Render("Could not load today's sessions: " + m.err.Error())
	}
	if len(m.rows) == 0 {
		empty := theme.Muted.Render("No sessions created today.")
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, empty)
	}

	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Today") + "\n\n")
	for _, row := range m.rows {
		subject := row.Subject
		if subject == "" {
			subject = "No subject"
		}
		status := theme.Muted.Render("Not completed")
		if row.Completed {
			status = theme.Good.Render("Completed")
		}
		sb.WriteString(fmt.Sprintf("%s %s\n", theme.Hot.Render(row.Title), theme.Muted.Render("· "+subject)))
		sb.WriteString(fmt.Sprintf("  %d min planned, %d min focused  %s\n\n",
			row.DurationMinutes, row.FocusedMinutes, status))
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(sb.String())
}
