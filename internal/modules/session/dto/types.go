package dto

type CreateInput struct {
	Title           string
	Subject         string
	DurationMinutes int
	BreakMinutes    int
	TasksRaw        string
}

type DistractionOutput struct {
	Type      string
	Timestamp int64
}

type ReflectionInput struct {
	Rating  int
	Good    string
	Improve string
}

type SessionOutput struct {
	ID              string
	Title           string
	Subject         string
	DurationMinutes int
	BreakMinutes    int
	Tasks           []string
	Distractions    []DistractionOutput
	HasReflection   bool
	Rating          int
	DateKey         string
	CreatedAt       int64
	Completed       bool
	FocusedMinutes  int
}

// ActiveOutput is the active-session snapshot the views render from.
type ActiveOutput struct {
	Session           SessionOutput
	PlannedSeconds    int
	RemainingSeconds  int
	TimerState        string
	ReflectionPending bool
}

type TickOutput struct {
	RemainingSeconds int
	Finished         bool
}
