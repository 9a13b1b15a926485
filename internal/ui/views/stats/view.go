package stats

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	statsdto "focusflow/internal/modules/stats/dto"
	"focusflow/internal/ui/theme"
)

const dailyWindowDays = 7

// Port is the slice of the stats usecase this view needs.
type Port interface {
	SubjectTotals(ctx context.Context) (statsdto.ChartData, error)
	DailyFocus(ctx context.Context, days int) ([]statsdto.DayFocusOutput, error)
}

// LoadedMsg delivers both chart payloads in one message so the view never
// renders a half-refreshed state.
type LoadedMsg struct {
	Chart statsdto.ChartData
	Daily []statsdto.DayFocusOutput
	Err   error
}

type Model struct {
	port   Port
	chart  statsdto.ChartData
	daily  []statsdto.DayFocusOutput
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
		ctx := context.Background()
		chart, err := m.port.SubjectTotals(ctx)
		if err != nil {
			return LoadedMsg{Err: err}
		}
		daily, err := m.port.DailyFocus(ctx, dailyWindowDays)
		if err != nil {
			return LoadedMsg{Chart: chart, Err: err}
		}
		return LoadedMsg{Chart: chart, Daily: daily}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case LoadedMsg:
		m.chart = msg.Chart
		m.daily = msg.Daily
		m.err = msg.Err
	}
	return m, nil
}

func (m Model) View() string {
	if m.err != nil {
		return theme.Bad.Render("Could not load stats: " + m.err.Error())
	}
	if len(m.chart.Labels) == 0 {
		empty := theme.Muted.Render("No sessions recorded yet.")
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, empty)
	}

	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Focused minutes by subject") + "\n\n")
	sb.WriteString(m.renderBars())

	if len(m.daily) > 0 {
		sb.WriteString("\n" + theme.Title.Render(fmt.Sprintf("Last %d days", dailyWindowDays)) + "\n\n")
		for _, day := range m.daily {
			sb.WriteString(fmt.Sprintf("  %s  %3d min in %d session(s)\n",
				theme.Muted.Render(day.DateKey), day.FocusedMinutes, day.Sessions))
		}
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(sb.String())
}

// renderBars draws one horizontal bar per subject, scaled to the largest
// total. A subject with zero focused minutes still gets its row so the
// labels match the underlying data.
func (m Model) renderBars() string {
	data := []int{}
	if len(m.chart.Datasets) > 0 {
		data = m.chart.Datasets[0].Data
	}

	labelWidth := 0
	maxVal := 0
	for i, label := range m.chart.Labels {
		if len(label) > labelWidth {
			labelWidth = len(label)
		}
		if i < len(data) && data[i] > maxVal {
			maxVal = data[i]
		}
	}

	barWidth := m.width - labelWidth - 14
	if barWidth < 10 {
		barWidth = 10
	}

	var sb strings.Builder
	for i, label := range m.chart.Labels {
		value := 0
		if i < len(data) {
			value = data[i]
		}
		filled := 0
		if maxVal > 0 {
			filled = value * barWidth / maxVal
		}
		bar := theme.Bar.Render(strings.Repeat("█", filled)) +
			theme.BarRail.Render(strings.Repeat("░", barWidth-filled))
		sb.WriteString(fmt.Sprintf("  %-*s %s %d\n", labelWidth, label, bar, value))
	}
	return sb.String()
}
