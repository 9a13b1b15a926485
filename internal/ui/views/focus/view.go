package focus

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	sessiondto "focusflow/internal/modules/session/dto"
	"focusflow/internal/platform/timefmt"
	"focusflow/internal/ui/theme"
)

// Model renders the active session panel: title, subject, task list,
// distraction log, and the live countdown. It holds no port; the app model
// feeds it a fresh snapshot after every mutation and every tick.
type Model struct {
	active           sessiondto.ActiveOutput
	hasActive        bool
	distractionTypes []string
	width            int
	height           int
}

func New(distractionTypes []string) Model {
	return Model{distractionTypes: distractionTypes}
}

// SetActive replaces the rendered snapshot wholesale.
func (m *Model) SetActive(active sessiondto.ActiveOutput, hasActive bool) {
	m.active = active
	m.hasActive = hasActive
}

// SetRemaining updates only the countdown, used on plain timer ticks.
func (m *Model) SetRemaining(seconds int) {
	m.active.RemainingSeconds = seconds
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = size.Width
		m.height = size.Height
	}
	return m, nil
}

func (m Model) View() string {
	if !m.hasActive {
		empty := theme.Muted.Render("No active session.") + "\n\n" +
			theme.Muted.Render("n: new session")
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, empty)
	}

	s := m.active.Session
	subject := s.Subject
	if subject == "" {
		subject = "No subject"
	}

	var sb strings.Builder
	sb.WriteString(theme.Title.Render(s.Title) + "\n")
	sb.WriteString(theme.Muted.Render(subject) + "\n\n")

	clock := theme.Clock.Render(timefmt.Clock(m.active.RemainingSeconds))
	sb.WriteString(clock + "  " + m.renderTimerState() + "\n\n")
	sb.WriteString(m.renderControls() + "\n\n")

	sb.WriteString(theme.Title.Render("Tasks") + "\n")
	if len(s.Tasks) == 0 {
		sb.WriteString(theme.Muted.Render("  (none)") + "\n")
	}
	for _, task := range s.Tasks {
		sb.WriteString("  • " + task + "\n")
	}
	sb.WriteString("\n")

	sb.WriteString(theme.Title.Render("Distractions") + "\n")
	if len(s.Distractions) == 0 {
		sb.WriteString(theme.Muted.Render("  (none logged)") + "\n")
	}
	for _, d := range s.Distractions {
		sb.WriteString(fmt.Sprintf("  %s %s\n", d.Type, theme.Muted.Render("@ "+timefmt.DayTime(d.Timestamp))))
	}
	if len(m.distractionTypes) > 0 {
		var hints []string
		for i, t := range m.distractionTypes {
			hints = append(hints, fmt.Sprintf("%d:%s", i+1, t))
		}
		sb.WriteString("\n" + theme.Muted.Render("log: "+strings.Join(hints, "  ")) + "\n")
	}

	if m.active.ReflectionPending {
		sb.WriteString("\n" + theme.Hot.Render("Session ended, reflection pending") + "\n")
	}

	return lipgloss.NewStyle().Padding(1, 2).Width(m.width).Render(sb.String())
}

func (m Model) renderTimerState() string {
	switch m.active.TimerState {
	case "running":
		return theme.Good.Render("running")
	case "paused":
		return theme.Hot.Render("paused")
	case "finished":
		return theme.Muted.Render("finished")
	default:
		return theme.Muted.Render("ready")
	}
}

// renderControls dims whichever actions the timer state rules out: start
// while running, pause while not running, end while idle.
func (m Model) renderControls() string {
	running := m.active.TimerState == "running"
	idle := m.active.TimerState == "idle"

	control := func(key, name string, enabled bool) string {
		text := key + ":" + name
		if enabled {
			return lipgloss.NewStyle().Foreground(theme.Sky).Render(text)
		}
		return theme.BarRail.Render(text)
	}
	return control("s", "start", !running) + "  " +
		control("p", "pause", running) + "  " +
		control("e", "end", !idle)
}
