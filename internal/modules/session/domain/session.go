package domain

import (
	"math"
	"strings"
)

// Session is one focus session. JSON tags match the storage format of the
// sessions collection, so a stored blob round-trips field for field.
type Session struct {
	ID              string        `json:"id"`
	Title           string        `json:"title"`
	Subject         string        `json:"subject"`
	DurationMinutes int           `json:"durationMinutes"`
	BreakMinutes    int           `json:"breakMinutes"`
	Tasks           []string      `json:"tasks"`
	Distractions    []Distraction `json:"distractions"`
	Reflection      *Reflection   `json:"reflection"`
	DateKey         string        `json:"dateKey"`
	CreatedAt       int64         `json:"createdAt"`
	Completed       bool          `json:"completed"`
	FocusedMinutes  int           `json:"focusedMinutes"`
}

type Distraction struct {
	Type      string `json:"type"`
	Timestamp int64  `json:"timestamp"`
}

type Reflection struct {
	Rating  int    `json:"rating"`
	Good    string `json:"good"`
	Improve string `json:"improve"`
}

// PlannedSeconds is the exact duration-to-seconds conversion.
func (s Session) PlannedSeconds() int {
	return s.DurationMinutes * 60
}

// Finalize records focused minutes as planned minus remaining, rounded to
// whole minutes and floored at zero. Completed latches: a session already
// completed stays completed regardless of autoCompleted.
func (s *Session) Finalize(remainingSeconds int, autoCompleted bool) {
	focused := int(math.Round(float64(s.PlannedSeconds()-remainingSeconds) / 60))
	if focused < 0 {
		focused = 0
	}
	s.FocusedMinutes = focused
	s.Completed = s.Completed || autoCompleted
}

// ParseTasks splits newline-delimited task input, trimming each line and
// dropping blanks, preserving input order.
func ParseTasks(raw string) []string {
	var tasks []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			tasks = append(tasks, line)
		}
	}
	return tasks
}
