package domain

// FallbackSubject buckets sessions created without a subject.
const FallbackSubject = "Other"

// SessionFacts is the reporting view of a session: everything the chart
// and the daily report need, nothing else.
type SessionFacts struct {
	ID               string
	Title            string
	Subject          string
	DurationMinutes  int
	DistractionCount int
	DateKey          string
	CreatedAt        int64
	Completed        bool
	FocusedMinutes   int
	HasReflection    bool
	Rating           int
}

type SubjectTotal struct {
	Subject        string
	FocusedMinutes int
}

type DayTotal struct {
	DateKey        string
	FocusedMinutes int
	Sessions       int
}

// TotalsBySubject sums focused minutes per subject across every session,
// unfinished ones included (their zero default contributes nothing).
// Buckets appear in first-seen order.
func TotalsBySubject(facts []SessionFacts) []SubjectTotal {
	index := make(map[string]int)
	var totals []SubjectTotal
	for _, f := range facts {
		subject := f.Subject
		if subject == "" {
			subject = FallbackSubject
		}
		pos, ok := index[subject]
		if !ok {
			pos = len(totals)
			index[subject] = pos
			totals = append(totals, SubjectTotal{Subject: subject})
		}
		totals[pos].FocusedMinutes += f.FocusedMinutes
	}
	return totals
}
