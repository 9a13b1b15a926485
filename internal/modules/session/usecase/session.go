package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"focusflow/internal/modules/session/domain"
	sessiondto "focusflow/internal/modules/session/dto"
	sessionin "focusflow/internal/modules/session/port/in"
	sessionout "focusflow/internal/modules/session/port/out"
	"focusflow/internal/modules/session/service"
	apperrors "focusflow/internal/platform/errors"
)

// Interactor orchestrates the session lifecycle around the single
// active-session reference: at most one session is eligible for timer
// control and distraction logging at any time.
type Interactor struct {
	svc         *service.SessionService
	activeStore sessionout.ActiveStateStore
}

func NewInteractor(svc *service.SessionService, activeStore sessionout.ActiveStateStore) sessionin.Usecase {
	return &Interactor{svc: svc, activeStore: activeStore}
}

// Create validates the input, appends the new record, and makes it the
// active session unconditionally. A previously active session is simply
// abandoned un-finalized.
func (i *Interactor) Create(ctx context.Context, input sessiondto.CreateInput) (sessiondto.ActiveOutput, error) {
	session, err := i.svc.Create(ctx, input.Title, input.Subject, input.DurationMinutes, input.BreakMinutes, input.TasksRaw)
	if err != nil {
		return sessiondto.ActiveOutput{}, err
	}
	state := domain.ActiveState{
		SessionID:        session.ID,
		PlannedSeconds:   session.PlannedSeconds(),
		RemainingSeconds: session.PlannedSeconds(),
		TimerState:       domain.TimerIdle,
	}
	if err := i.activeStore.SaveActive(ctx, state); err != nil {
		return sessiondto.ActiveOutput{}, err
	}
	return toActiveOutput(session, state), nil
}

func (i *Interactor) GetActive(ctx context.Context) (sessiondto.ActiveOutput, error) {
	state, session, err := i.loadActive(ctx)
	if err != nil {
		return sessiondto.ActiveOutput{}, err
	}
	return toActiveOutput(session, state), nil
}

// StartTimer begins the countdown. Starting an already-running timer is a
// no-op that returns the unchanged snapshot.
func (i *Interactor) StartTimer(ctx context.Context) (sessiondto.ActiveOutput, error) {
	state, session, err := i.loadActive(ctx)
	if err != nil {
		return sessiondto.ActiveOutput{}, err
	}
	timer := state.Timer()
	if timer.Start() {
		state.ApplyTimer(timer)
		if err := i.activeStore.SaveActive(ctx, state); err != nil {
			return sessiondto.ActiveOutput{}, err
		}
	}
	return toActiveOutput(session, state), nil
}

// PauseTimer stops the countdown, retaining remaining seconds. No-op when
// the timer is not running.
func (i *Interactor) PauseTimer(ctx context.Context) (sessiondto.ActiveOutput, error) {
	state, session, err := i.loadActive(ctx)
	if err != nil {
		return sessiondto.ActiveOutput{}, err
	}
	timer := state.Timer()
	if timer.Pause() {
		state.ApplyTimer(timer)
		if err := i.activeStore.SaveActive(ctx, state); err != nil {
			return sessiondto.ActiveOutput{}, err
		}
	}
	return toActiveOutput(session, state), nil
}

// Tick advances the countdown by exactly one second. When it reaches zero
// the session is finalized as auto-completed and a reflection becomes
// pending. Ticking a non-running timer changes nothing.
func (i *Interactor) Tick(ctx context.Context) (sessiondto.TickOutput, error) {
	state, _, err := i.loadActive(ctx)
	if err != nil {
		return sessiondto.TickOutput{}, err
	}
	timer := state.Timer()
	if !timer.Running() {
		return sessiondto.TickOutput{RemainingSeconds: timer.RemainingSeconds}, nil
	}
	finished := timer.Tick()
	state.ApplyTimer(timer)
	if finished {
		if err := i.finalize(ctx, &state, true); err != nil {
			return sessiondto.TickOutput{}, err
		}
	} else if err := i.activeStore.SaveActive(ctx, state); err != nil {
		return sessiondto.TickOutput{}, err
	}
	return sessiondto.TickOutput{RemainingSeconds: timer.RemainingSeconds, Finished: finished}, nil
}

func (i *Interactor) AddDistraction(ctx context.Context, distractionType string) (sessiondto.ActiveOutput, error) {
	state, _, err := i.loadActive(ctx)
	if err != nil {
		return sessiondto.ActiveOutput{}, err
	}
	session, err := i.svc.AddDistraction(ctx, state.SessionID, distractionType)
	if err != nil {
		return sessiondto.ActiveOutput{}, err
	}
	return toActiveOutput(session, state), nil
}

// EndSession finalizes the active session manually, regardless of timer run
// state, and leaves a reflection pending.
func (i *Interactor) EndSession(ctx context.Context) (sessiondto.ActiveOutput, error) {
	state, _, err := i.loadActive(ctx)
	if err != nil {
		return sessiondto.ActiveOutput{}, err
	}
	if err := i.finalize(ctx, &state, false); err != nil {
		return sessiondto.ActiveOutput{}, err
	}
	session, err := i.svc.Get(ctx, state.SessionID)
	if err != nil {
		return sessiondto.ActiveOutput{}, err
	}
	return toActiveOutput(session, state), nil
}

// AttachReflection records the one-time post-session reflection, marks the
// session completed, and releases the active reference. Focused minutes are
// never revised here even when finalize ran earlier.
func (i *Interactor) AttachReflection(ctx context.Context, input sessiondto.ReflectionInput) (sessiondto.SessionOutput, error) {
	state, _, err := i.loadActive(ctx)
	if err != nil {
		return sessiondto.SessionOutput{}, err
	}
	if !state.ReflectionPending {
		return sessiondto.SessionOutput{}, fmt.Errorf("%w: no reflection pending", apperrors.ErrInvalidInput)
	}
	session, err := i.svc.AttachReflection(ctx, state.SessionID, input.Rating, input.Good, input.Improve)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			_ = i.activeStore.ClearActive(ctx)
			return sessiondto.SessionOutput{}, apperrors.ErrNoActiveSession
		}
		return sessiondto.SessionOutput{}, err
	}
	if err := i.activeStore.ClearActive(ctx); err != nil {
		return sessiondto.SessionOutput{}, err
	}
	return toSessionOutput(session), nil
}

// DismissReflection releases the active reference without recording a
// reflection. The session keeps whatever finalize already set.
func (i *Interactor) DismissReflection(ctx context.Context) error {
	return i.activeStore.ClearActive(ctx)
}

func (i *Interactor) ListToday(ctx context.Context) ([]sessiondto.SessionOutput, error) {
	sessions, err := i.svc.List(ctx)
	if err != nil {
		return nil, err
	}
	today := i.svc.TodayKey()
	var out []sessiondto.SessionOutput
	for _, session := range sessions {
		if session.DateKey == today {
			out = append(out, toSessionOutput(session))
		}
	}
	return out, nil
}

// ListHistory returns every session, newest first. The sort is stable so
// records sharing a timestamp keep their insertion order.
func (i *Interactor) ListHistory(ctx context.Context) ([]sessiondto.SessionOutput, error) {
	sessions, err := i.svc.List(ctx)
	if err != nil {
		return nil, err
	}
	sorted := make([]domain.Session, len(sessions))
	copy(sorted, sessions)
	sort.SliceStable(sorted, func(a, b int) bool {
		return sorted[a].CreatedAt > sorted[b].CreatedAt
	})
	out := make([]sessiondto.SessionOutput, len(sorted))
	for idx, session := range sorted {
		out[idx] = toSessionOutput(session)
	}
	return out, nil
}

func (i *Interactor) ListAll(ctx context.Context) ([]sessiondto.SessionOutput, error) {
	sessions, err := i.svc.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]sessiondto.SessionOutput, len(sessions))
	for idx, session := range sessions {
		out[idx] = toSessionOutput(session)
	}
	return out, nil
}

// loadActive resolves the active reference to its record. A reference whose
// record no longer exists is cleared on the spot and reported as no active
// session.
func (i *Interactor) loadActive(ctx context.Context) (domain.ActiveState, domain.Session, error) {
	state, err := i.activeStore.LoadActive(ctx)
	if err != nil {
		return domain.ActiveState{}, domain.Session{}, err
	}
	session, err := i.svc.Get(ctx, state.SessionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			_ = i.activeStore.ClearActive(ctx)
			return domain.ActiveState{}, domain.Session{}, apperrors.ErrNoActiveSession
		}
		return domain.ActiveState{}, domain.Session{}, err
	}
	return state, session, nil
}

// finalize records focused minutes on the active record, stops the timer,
// and flags the pending reflection. The state is persisted here.
func (i *Interactor) finalize(ctx context.Context, state *domain.ActiveState, autoCompleted bool) error {
	if _, err := i.svc.Finalize(ctx, state.SessionID, state.RemainingSeconds, autoCompleted); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			_ = i.activeStore.ClearActive(ctx)
			return apperrors.ErrNoActiveSession
		}
		return err
	}
	state.TimerState = domain.TimerFinished
	state.ReflectionPending = true
	return i.activeStore.SaveActive(ctx, *state)
}

func toSessionOutput(session domain.Session) sessiondto.SessionOutput {
	distractions := make([]sessiondto.DistractionOutput, len(session.Distractions))
	for idx, d := range session.Distractions {
		distractions[idx] = sessiondto.DistractionOutput{Type: d.Type, Timestamp: d.Timestamp}
	}
	out := sessiondto.SessionOutput{
		ID:              session.ID,
		Title:           session.Title,
		Subject:         session.Subject,
		DurationMinutes: session.DurationMinutes,
		BreakMinutes:    session.BreakMinutes,
		Tasks:           append([]string(nil), session.Tasks...),
		Distractions:    distractions,
		DateKey:         session.DateKey,
		CreatedAt:       session.CreatedAt,
		Completed:       session.Completed,
		FocusedMinutes:  session.FocusedMinutes,
	}
	if session.Reflection != nil {
		out.HasReflection = true
		out.Rating = session.Reflection.Rating
	}
	return out
}

func toActiveOutput(session domain.Session, state domain.ActiveState) sessiondto.ActiveOutput {
	return sessiondto.ActiveOutput{
		Session:           toSessionOutput(session),
		PlannedSeconds:    state.PlannedSeconds,
		RemainingSeconds:  state.RemainingSeconds,
		TimerState:        string(state.TimerState),
		ReflectionPending: state.ReflectionPending,
	}
}
