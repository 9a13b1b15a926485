package domain

type TimerState string

const (
	TimerIdle     TimerState = "idle"
	TimerRunning  TimerState = "running"
	TimerPaused   TimerState = "paused"
	TimerFinished TimerState = "finished"
)

// Timer is the countdown state machine for the active session. Ticking is
// count-based: each Tick subtracts exactly one second no matter how much
// wall time passed since the last one, so a delayed or missed callback is
// never reconciled against the clock.
type Timer struct {
	State            TimerState
	PlannedSeconds   int
	RemainingSeconds int
}

func NewTimer(plannedSeconds int) Timer {
	return Timer{
		State:            TimerIdle,
		PlannedSeconds:   plannedSeconds,
		RemainingSeconds: plannedSeconds,
	}
}

// Start transitions to Running. No-op when already running or finished.
func (t *Timer) Start() bool {
	if t.State != TimerIdle && t.State != TimerPaused {
		return false
	}
	t.State = TimerRunning
	return true
}

// Pause stops the countdown, retaining the remaining seconds for a later
// resume. No-op when not running.
func (t *Timer) Pause() bool {
	if t.State != TimerRunning {
		return false
	}
	t.State = TimerPaused
	return true
}

// Tick advances the countdown by one second and reports whether it just
// hit zero. No-op when not running.
func (t *Timer) Tick() bool {
	if t.State != TimerRunning {
		return false
	}
	t.RemainingSeconds--
	if t.RemainingSeconds <= 0 {
		t.RemainingSeconds = 0
		t.State = TimerFinished
		return true
	}
	return false
}

func (t Timer) Running() bool {
	return t.State == TimerRunning
}

// ActiveState is the persisted reference to the single active session,
// including its timer position so a later process can resume the countdown.
type ActiveState struct {
	SessionID         string     `json:"session_id"`
	PlannedSeconds    int        `json:"planned_seconds"`
	RemainingSeconds  int        `json:"remaining_seconds"`
	TimerState        TimerState `json:"timer_state"`
	ReflectionPending bool       `json:"reflection_pending"`
}

// Timer materializes the persisted timer position.
func (a ActiveState) Timer() Timer {
	return Timer{
		State:            a.TimerState,
		PlannedSeconds:   a.PlannedSeconds,
		RemainingSeconds: a.RemainingSeconds,
	}
}

// ApplyTimer writes a timer position back into the state.
func (a *ActiveState) ApplyTimer(t Timer) {
	a.TimerState = t.State
	a.PlannedSeconds = t.PlannedSeconds
	a.RemainingSeconds = t.RemainingSeconds
}
