package components

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	sessiondto "focusflow/internal/modules/session/dto"
	"focusflow/internal/ui/theme"
)

// ReflectionSubmitMsg carries the parsed post-session reflection.
type ReflectionSubmitMsg struct{ Input sessiondto.ReflectionInput }

// ReflectionDismissMsg is emitted when the prompt is closed without
// submitting; the session keeps whatever finalize already recorded.
type ReflectionDismissMsg struct{}

const (
	reflectRating = iota
	reflectGood
	reflectImprove
	reflectCount
)

// ReflectionForm is the end-of-session prompt: a 1-5 rating plus two
// free-text answers.
type ReflectionForm struct {
	inputs  [reflectCount]textinput.Model
	focus   int
	visible bool
	status  string
	title   string
	width   int
}

func NewReflectionForm() ReflectionForm {
	var f ReflectionForm

	rating := textinput.New()
	rating.Placeholder = "1-5"
	rating.CharLimit = 2
	f.inputs[reflectRating] = rating

	good := textinput.New()
	good.Placeholder = "What went well?"
	good.CharLimit = 200
	f.inputs[reflectGood] = good

	improve := textinput.New()
	improve.Placeholder = "What would you improve?"
	improve.CharLimit = 200
	f.inputs[reflectImprove] = improve

	return f
}

func (f ReflectionForm) Visible() bool { return f.visible }

// Open clears all fields and shows the prompt for the named session.
func (f *ReflectionForm) Open(sessionTitle string) tea.Cmd {
	f.visible = true
	f.status = ""
	f.title = sessionTitle
	f.focus = reflectRating
	for i := range f.inputs {
		f.inputs[i].SetValue("")
		f.inputs[i].Blur()
	}
	return f.inputs[reflectRating].Focus()
}

func (f *ReflectionForm) SetWidth(w int) { f.width = w }

func (f ReflectionForm) Update(msg tea.Msg) (ReflectionForm, tea.Cmd) {
	if !f.visible {
		return f, nil
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			f.visible = false
			return f, func() tea.Msg { return ReflectionDismissMsg{} }
		case "tab", "down":
			return f.moveFocus(1)
		case "shift+tab", "up":
			return f.moveFocus(-1)
		case "enter":
			if f.focus == reflectImprove {
				return f.submit()
			}
			return f.moveFocus(1)
		case "ctrl+s":
			return f.submit()
		}
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

func (f ReflectionForm) submit() (ReflectionForm, tea.Cmd) {
	rating, err := strconv.Atoi(strings.TrimSpace(f.inputs[reflectRating].Value()))
	if err != nil || rating < 1 || rating > 5 {
		f.status = "Rating must be a number from 1 to 5."
		return f, nil
	}
	input := sessiondto.ReflectionInput{
		Rating:  rating,
		Good:    strings.TrimSpace(f.inputs[reflectGood].Value()),
		Improve: strings.TrimSpace(f.inputs[reflectImprove].Value()),
	}
	f.visible = false
	return f, func() tea.Msg { return ReflectionSubmitMsg{Input: input} }
}

func (f ReflectionForm) moveFocus(delta int) (ReflectionForm, tea.Cmd) {
	f.focus = (f.focus + delta + reflectCount) % reflectCount
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
	return f, f.inputs[f.focus].Focus()
}

func (f ReflectionForm) View() string {
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
	sb.WriteString(theme.Title.Render("Session Reflection") + "\n")
	if f.title != "" {
		sb.WriteString(theme.Muted.Render(f.title) + "\n")
	}
	sb.WriteString("\n")
	sb.WriteString(label("Rating   ", f.focus == reflectRating) + f.inputs[reflectRating].View() + "\n")
	sb.WriteString(label("Went well", f.focus == reflectGood) + f.inputs[reflectGood].View() + "\n")
	sb.WriteString(label("Improve  ", f.focus == reflectImprove) + f.inputs[reflectImprove].View() + "\n")
	if f.status != "" {
		sb.WriteString("\n" + theme.Bad.Render(f.status) + "\n")
	}
	sb.WriteString("\n" + theme.Muted.Render("enter/ctrl+s: save  esc: skip"))

	w := f.width
	if w < 30 {
		w = 56
	}
	return formStyle.Width(w - 2).Render(sb.String())
}
