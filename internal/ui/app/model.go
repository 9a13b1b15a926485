package app

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	sessiondto "focusflow/internal/modules/session/dto"
	apperrors "focusflow/internal/platform/errors"
	"focusflow/internal/ui/components"
	"focusflow/internal/ui/theme"
	focusview "focusflow/internal/ui/views/focus"
	historyview "focusflow/internal/ui/views/history"
	statsview "focusflow/internal/ui/views/stats"
	todayview "focusflow/internal/ui/views/today"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// sessionPort is the slice of the session usecase this orchestration layer
// drives directly. Sub-view ports are defined in their own packages.

type sessionPort interface {
	Create(ctx context.Context, title, subject string, durationMin, breakMin int, tasksRaw string) (sessiondto.ActiveOutput, error)
	GetActive(ctx context.Context) (sessiondto.ActiveOutput, error)
	StartTimer(ctx context.Context) (sessiondto.ActiveOutput, error)
	PauseTimer(ctx context.Context) (sessiondto.ActiveOutput, error)
	Tick(ctx context.Context) (sessiondto.TickOutput, error)
	AddDistraction(ctx context.Context, distractionType string) (sessiondto.ActiveOutput, error)
	EndSession(ctx context.Context) (sessiondto.ActiveOutput, error)
	AttachReflection(ctx context.Context, rating int, good, improve string) (sessiondto.SessionOutput, error)
	DismissReflection(ctx context.Context) error
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabFocus tabID = iota
	tabToday
	tabHistory
	tabStats
	tabCount
)

var tabLabels = [tabCount]string{
	"Focus", "Today", "History", "Stats",
}

// ─── async messages ───────────────────────────────────────────────────────────

type activeLoadedMsg struct {
	active sessiondto.ActiveOutput
	err    error
}

type sessionCreatedMsg struct {
	active sessiondto.ActiveOutput
	err    error
}

type timerChangedMsg struct {
	active sessiondto.ActiveOutput
	err    error
}

// tickMsg fires once a second while the countdown runs; tickResultMsg carries
// the outcome of applying that second to the stored session.
type tickMsg time.Time

type tickResultMsg struct {
	out sessiondto.TickOutput
	err error
}

type distractionLoggedMsg struct {
	active sessiondto.ActiveOutput
	err    error
}

type sessionEndedMsg struct {
	active sessiondto.ActiveOutput
	err    error
}

type reflectionSavedMsg struct {
	session sessiondto.SessionOutput
	err     error
}

type reflectionDismissedMsg struct{ err error }

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab      key.Binding
	Help     key.Binding
	Quit     key.Binding
	New      key.Binding
	Start    key.Binding
	Pause    key.Binding
	End      key.Binding
	Distract key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		New:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new session")),
		Start:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start timer")),
		Pause:    key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause timer")),
		End:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "end session")),
		Distract: key.NewBinding(key.WithKeys("1", "2", "3", "4"), key.WithHelp("1-4", "log distraction")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.New, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.New, k.Start, k.Pause, k.End},
		{k.Distract},
		{k.Tab, k.Help, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, the active-session
// snapshot, the countdown loop, and the two modal forms. Business logic lives
// behind the session port; rendering is delegated to sub-views.
type Model struct {
	session sessionPort

	focusView   focusview.Model
	todayView   todayview.Model
	historyView historyview.Model
	statsView   statsview.Model

	sessionForm    components.SessionForm
	reflectionForm components.ReflectionForm

	activeTab        tabID
	keys             keyMap
	help             help.Model
	showHelp         bool
	active           sessiondto.ActiveOutput
	hasActive        bool
	ticking          bool
	distractionTypes []string
	status           string
	width            int
	height           int
}

func NewModel(
	session sessionPort,
	today todayview.Port,
	history historyview.Port,
	stats statsview.Port,
	distractionTypes []string,
	defaultDuration, defaultBreak int,
) Model {
	return Model{
		session:          session,
		focusView:        focusview.New(distractionTypes),
		todayView:        todayview.New(today),
		historyView:      historyview.New(history),
		statsView:        statsview.New(stats),
		sessionForm:      components.NewSessionForm(defaultDuration, defaultBreak),
		reflectionForm:   components.NewReflectionForm(),
		activeTab:        tabFocus,
		keys:             defaultKeys(),
		help:             help.New(),
		distractionTypes: distractionTypes,
		status:           "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.todayView.Init(),
		m.historyView.Init(),
		m.statsView.Init(),
		m.loadActiveCmd(),
	)
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// Modal forms intercept all input while open.
	if m.sessionForm.Visible() {
		if _, ok := msg.(tea.KeyMsg); ok {
			var cmd tea.Cmd
			m.sessionForm, cmd = m.sessionForm.Update(msg)
			return m, cmd
		}
	}
	if m.reflectionForm.Visible() {
		if _, ok := msg.(tea.KeyMsg); ok {
			var cmd tea.Cmd
			m.reflectionForm, cmd = m.reflectionForm.Update(msg)
			return m, cmd
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.sessionForm.SetWidth(min(m.width-4, 72))
		m.reflectionForm.SetWidth(min(m.width-4, 64))
		m.help.Width = m.width
		m.propagateSize()

	case activeLoadedMsg:
		if msg.err != nil {
			if !errors.Is(msg.err, apperrors.ErrNoActiveSession) {
				m.status = "active session check: " + msg.err.Error()
			}
			m.hasActive = false
			m.focusView.SetActive(sessiondto.ActiveOutput{}, false)
		} else {
			m.hasActive = true
			m.active = msg.active
			m.focusView.SetActive(msg.active, true)
			m.status = "session recovered: " + msg.active.Session.Title
			// Resume the countdown when the stored state was left running.
			if msg.active.TimerState == "running" && !m.ticking {
				m.ticking = true
				cmds = append(cmds, armTick())
			}
			if msg.active.ReflectionPending {
				cmds = append(cmds, m.reflectionForm.Open(msg.active.Session.Title))
			}
		}

	case sessionCreatedMsg:
		if msg.err != nil {
			m.status = "create failed: " + msg.err.Error()
		} else {
			m.hasActive = true
			m.active = msg.active
			m.focusView.SetActive(msg.active, true)
			m.activeTab = tabFocus
			m.status = "session created: " + msg.active.Session.Title
			cmds = append(cmds, m.todayView.Reload(), m.historyView.Reload())
		}

	case timerChangedMsg:
		if msg.err != nil {
			m.status = "timer: " + msg.err.Error()
		} else {
			m.active = msg.active
			m.focusView.SetActive(msg.active, true)
			if msg.active.TimerState == "running" && !m.ticking {
				m.ticking = true
				cmds = append(cmds, armTick())
			}
		}

	case tickMsg:
		cmds = append(cmds, m.tickCmd())

	case tickResultMsg:
		if msg.err != nil {
			m.ticking = false
			if !errors.Is(msg.err, apperrors.ErrNoActiveSession) {
				m.status = "tick: " + msg.err.Error()
			}
			break
		}
		m.active.RemainingSeconds = msg.out.RemainingSeconds
		m.focusView.SetRemaining(msg.out.RemainingSeconds)
		if msg.out.Finished {
			m.ticking = false
			m.active.TimerState = "finished"
			m.active.ReflectionPending = true
			m.focusView.SetActive(m.active, true)
			m.status = "time is up"
			cmds = append(cmds,
				m.reflectionForm.Open(m.active.Session.Title),
				m.todayView.Reload(), m.historyView.Reload(), m.statsView.Reload(),
			)
		} else if m.active.TimerState == "running" {
			cmds = append(cmds, armTick())
		} else {
			m.ticking = false
		}

	case distractionLoggedMsg:
		if msg.err != nil {
			m.status = "distraction: " + msg.err.Error()
		} else {
			m.active = msg.active
			m.focusView.SetActive(msg.active, true)
			m.status = "distraction logged"
			cmds = append(cmds, m.todayView.Reload(), m.historyView.Reload())
		}

	case sessionEndedMsg:
		if msg.err != nil {
			m.status = "end failed: " + msg.err.Error()
		} else {
			m.ticking = false
			m.active = msg.active
			m.focusView.SetActive(msg.active, true)
			m.status = "session ended"
			cmds = append(cmds,
				m.reflectionForm.Open(msg.active.Session.Title),
				m.todayView.Reload(), m.historyView.Reload(), m.statsView.Reload(),
			)
		}

	case reflectionSavedMsg:
		if msg.err != nil {
			m.status = "reflection: " + msg.err.Error()
		} else {
			m.hasActive = false
			m.active = sessiondto.ActiveOutput{}
			m.focusView.SetActive(sessiondto.ActiveOutput{}, false)
			m.status = "reflection saved: " + msg.session.Title
			cmds = append(cmds, m.todayView.Reload(), m.historyView.Reload(), m.statsView.Reload())
		}

	case reflectionDismissedMsg:
		if msg.err != nil {
			m.status = "dismiss: " + msg.err.Error()
		} else {
			m.hasActive = false
			m.active = sessiondto.ActiveOutput{}
			m.focusView.SetActive(sessiondto.ActiveOutput{}, false)
			m.status = "ready"
		}

	case components.SessionSubmitMsg:
		return m, m.createSessionCmd(msg.Input)

	case components.SessionCancelMsg:
		m.status = "ready"

	case components.ReflectionSubmitMsg:
		return m, m.attachReflectionCmd(msg.Input)

	case components.ReflectionDismissMsg:
		return m, m.dismissReflectionCmd()

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
		case "?":
			m.showHelp = !m.showHelp
		case "n":
			cmds = append(cmds, m.sessionForm.Open())
			return m, tea.Batch(cmds...)
		case "s":
			if m.hasActive && m.active.TimerState != "running" && m.active.TimerState != "finished" {
				cmds = append(cmds, m.startTimerCmd())
			}
		case "p":
			if m.hasActive && m.active.TimerState == "running" {
				cmds = append(cmds, m.pauseTimerCmd())
			}
		case "e":
			if m.hasActive && m.active.TimerState != "idle" && !m.active.ReflectionPending {
				cmds = append(cmds, m.endSessionCmd())
			}
		default:
			if m.activeTab == tabFocus && m.hasActive && !m.active.ReflectionPending {
				if idx, err := strconv.Atoi(msg.String()); err == nil {
					if idx >= 1 && idx <= len(m.distractionTypes) {
						cmds = append(cmds, m.logDistractionCmd(m.distractionTypes[idx-1]))
					}
				}
			}
		}
	}

	// Propagate the message to the active tab's sub-view.
	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabFocus:
		m.focusView, tabCmd = m.focusView.Update(msg)
	case tabToday:
		m.todayView, tabCmd = m.todayView.Update(msg)
	case tabHistory:
		m.historyView, tabCmd = m.historyView.Update(msg)
	case tabStats:
		m.statsView, tabCmd = m.statsView.Update(msg)
	}
	cmds = append(cmds, tabCmd)

	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	tabBarH := lipgloss.Height(tabBar)
	statusBarH := lipgloss.Height(statusBar)

	contentH := m.height - tabBarH - statusBarH
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.sessionForm.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.sessionForm.View())
	case m.reflectionForm.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.reflectionForm.View())
	default:
		content = m.activeView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabFocus:
		return m.focusView.View()
	case tabToday:
		return m.todayView.View()
	case tabHistory:
		return m.historyView.View()
	case tabStats:
		return m.statsView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "focusflow  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.hasActive {
		left = theme.Hot.Render("● "+m.active.Session.Title) + "  " + left
	}
	right := theme.Muted.Render("?:help  tab:switch  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.focusView, _ = m.focusView.Update(sz)
	m.todayView, _ = m.todayView.Update(sz)
	m.historyView, _ = m.historyView.Update(sz)
	m.statsView, _ = m.statsView.Update(sz)
}

// armTick schedules the next one-second step. Only one tick is ever in
// flight; the loop re-arms from tickResultMsg, never from key handling.
func armTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) loadActiveCmd() tea.Cmd {
	return func() tea.Msg {
		active, err := m.session.GetActive(context.Background())
		return activeLoadedMsg{active: active, err: err}
	}
}

func (m Model) createSessionCmd(input sessiondto.CreateInput) tea.Cmd {
	return func() tea.Msg {
		active, err := m.session.Create(context.Background(),
			input.Title, input.Subject, input.DurationMinutes, input.BreakMinutes, input.TasksRaw)
		return sessionCreatedMsg{active: active, err: err}
	}
}

func (m Model) startTimerCmd() tea.Cmd {
	return func() tea.Msg {
		active, err := m.session.StartTimer(context.Background())
		return timerChangedMsg{active: active, err: err}
	}
}

func (m Model) pauseTimerCmd() tea.Cmd {
	return func() tea.Msg {
		active, err := m.session.PauseTimer(context.Background())
		return timerChangedMsg{active: active, err: err}
	}
}

func (m Model) tickCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.session.Tick(context.Background())
		return tickResultMsg{out: out, err: err}
	}
}

func (m Model) logDistractionCmd(distractionType string) tea.Cmd {
	return func() tea.Msg {
		active, err := m.session.AddDistraction(context.Background(), distractionType)
		return distractionLoggedMsg{active: active, err: err}
	}
}

func (m Model) endSessionCmd() tea.Cmd {
	return func() tea.Msg {
		active, err := m.session.EndSession(context.Background())
		return sessionEndedMsg{active: active, err: err}
	}
}

func (m Model) attachReflectionCmd(input sessiondto.ReflectionInput) tea.Cmd {
	return func() tea.Msg {
		session, err := m.session.AttachReflection(context.Background(), input.Rating, input.Good, input.Improve)
		return reflectionSavedMsg{session: session, err: err}
	}
}

func (m Model) dismissReflectionCmd() tea.Cmd {
	return func() tea.Msg {
		err := m.session.DismissReflection(context.Background())
		return reflectionDismissedMsg{err: err}
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
