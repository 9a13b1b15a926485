package components

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	sessiondto "focusflow/internal/modules/session/dto"
	"focusflow/internal/ui/theme"
)

// SessionSubmitMsg carries a validated creation input out of the form.
type SessionSubmitMsg struct{ Input sessiondto.CreateInput }

// SessionCancelMsg is emitted when the user presses esc.
type SessionCancelMsg struct{}

const (
	fieldTitle = iota
	fieldSubject
	fieldDuration
	fieldBreak
	fieldTasks
	fieldCount
)

var formStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.RoundedBorder()).
	BorderForeground(theme.Mauve).
	Background(theme.Mantle).
	Foreground(theme.Text).
	Padding(0, 1)

// SessionForm is the session creation overlay. Duration and break survive
// between opens so back-to-back sessions keep their last values; the other
// fields are cleared every time.
type SessionForm struct {
	inputs  [fieldTasks]textinput.Model
	tasks   textarea.Model
	focus   int
	visible bool
	status  string
	width   int
}

func NewSessionForm(defaultDuration, defaultBreak int) SessionForm {
	var f SessionForm

	title := textinput.New()
	title.Placeholder = "What will you work on?"
	title.CharLimit = 120
	f.inputs[fieldTitle] = title

	subject := textinput.New()
	subject.Placeholder = "Subject (optional)"
	subject.CharLimit = 60
	f.inputs[fieldSubject] = subject

	duration := textinput.New()
	duration.Placeholder = "minutes"
	duration.CharLimit = 4
	duration.SetValue(strconv.Itoa(defaultDuration))
	f.inputs[fieldDuration] = duration

	brk := textinput.New()
	brk.Placeholder = "minutes"
	brk.CharLimit = 4
	brk.SetValue(strconv.Itoa(defaultBreak))
	f.inputs[fieldBreak] = brk

	tasks := textarea.New()
	tasks.Placeholder = "One task per line"
	tasks.SetHeight(4)
	tasks.CharLimit = 0
	f.tasks = tasks

	return f
}

func (f SessionForm) Visible() bool { return f.visible }

// Open clears title, subject, and tasks, keeps duration and break, and
// focuses the title field.
func (f *SessionForm) Open() tea.Cmd {
	f.visible = true
	f.status = ""
	f.focus = fieldTitle
	f.inputs[fieldTitle].SetValue("")
	f.inputs[fieldSubject].SetValue("")
	f.tasks.SetValue("")
	f.tasks.Blur()
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
	return f.inputs[fieldTitle].Focus()
}

func (f *SessionForm) SetWidth(w int) { f.width = w }

func (f SessionForm) Update(msg tea.Msg) (SessionForm, tea.Cmd) {
	if !f.visible {
		return f, nil
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			f.visible = false
			return f, func() tea.Msg { return SessionCancelMsg{} }
		case "tab", "down":
			if f.focus != fieldTasks || key.String() == "tab" {
				return f.moveFocus(1)
			}
		case "shift+tab", "up":
			if f.focus != fieldTasks || key.String() == "shift+tab" {
				return f.moveFocus(-1)
			}
		case "enter":
			if f.focus != fieldTasks {
				return f.moveFocus(1)
			}
		case "ctrl+s":
			return f.submit()
		}
	}
	return f.updateFocused(msg)
}

// submit validates before anything leaves the form: a missing title or a
// non-positive duration aborts with a visible message and no state change.
// An unparsable break count degrades to zero.
func (f SessionForm) submit() (SessionForm, tea.Cmd) {
	title := strings.TrimSpace(f.inputs[fieldTitle].Value())
	duration, derr := strconv.Atoi(strings.TrimSpace(f.inputs[fieldDuration].Value()))
	if title == "" || derr != nil || duration <= 0 {
		f.status = "Please provide a title and a valid duration."
		return f, nil
	}
	brk, berr := strconv.Atoi(strings.TrimSpace(f.inputs[fieldBreak].Value()))
	if berr != nil || brk < 0 {
		brk = 0
	}
	input := sessiondto.CreateInput{
		Title:           title,
		Subject:         strings.TrimSpace(f.inputs[fieldSubject].Value()),
		DurationMinutes: duration,
		BreakMinutes:    brk,
		TasksRaw:        f.tasks.Value(),
	}
	f.visible = false
	return f, func() tea.Msg { return SessionSubmitMsg{Input: input} }
}

func (f SessionForm) moveFocus(delta int) (SessionForm, tea.Cmd) {
	f.focus = (f.focus + delta + fieldCount) % fieldCount
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
	f.tasks.Blur()
	if f.focus == fieldTasks {
		return f, f.tasks.Focus()
	}
	return f, f.inputs[f.focus].Focus()
}

func (f SessionForm) updateFocused(msg tea.Msg) (SessionForm, tea.Cmd) {
	var cmd tea.Cmd
	if f.focus == fieldTasks {
		f.tasks, cmd = f.tasks.Update(msg)
		return f, cmd
	}
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

func (f SessionForm) View() string {
	if !f.visible {
		return ""
	}
	label := func(s string, active bool) string {
		if active {
			return theme.Hot.Render(s)
		}
		return theme.Muted.Render(s)
	}

	var sb strings.Builder
	sb.WriteString(theme.Title.Render("New Focus Session") + "\n\n")
	sb.WriteString(label("Title    ", f.focus == fieldTitle) + f.inputs[fieldTitle].View() + "\n")
	sb.WriteString(label("Subject  ", f.focus == fieldSubject) + f.inputs[fieldSubject].View() + "\n")
	sb.WriteString(label("Duration ", f.focus == fieldDuration) + f.inputs[fieldDuration].View() + "\n")
	sb.WriteString(label("Break    ", f.focus == fieldBreak) + f.inputs[fieldBreak].View() + "\n")
	sb.WriteString(label("Tasks    ", f.focus == fieldTasks) + "\n" + f.tasks.View() + "\n")
	if f.status != "" {
		sb.WriteString("\n" + theme.Bad.Render(f.status) + "\n")
	}
	sb.WriteString("\n" + theme.Muted.Render("ctrl+s: create  tab: next field  esc: cancel"))

	w := f.width
	if w < 30 {
		w = 64
	}
	return formStyle.Width(w - 2).Render(sb.String())
}
