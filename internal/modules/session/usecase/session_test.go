package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"focusflow/internal/modules/session/adapter/out"
	"focusflow/internal/modules/session/domain"
	sessiondto "focusflow/internal/modules/session/dto"
	sessionin "focusflow/internal/modules/session/port/in"
	"focusflow/internal/modules/session/service"
	"focusflow/internal/modules/session/usecase"
	apperrors "focusflow/internal/platform/errors"
)

type fakeClock struct {
	values []time.Time
	idx    int
}

func (f *fakeClock) Now() time.Time {
	if f.idx >= len(f.values) {
		return f.values[len(f.values)-1]
	}
	v := f.values[f.idx]
	f.idx++
	return v
}

type seqID struct{ n int }

func (s *seqID) New() string {
	s.n++
	return fmt.Sprintf("sess-%d", s.n)
}

func newInteractor(t *testing.T, clk *fakeClock) (sessionin.Usecase, string) {
	t.Helper()
	dir := t.TempDir()
	svc := service.NewSessionService(clk, &seqID{}, out.NewFileSessionStore(filepath.Join(dir, "sessions.json")), nil)
	return usecase.NewInteractor(svc, out.NewFileActiveStateStore(filepath.Join(dir, "active.json"))), dir
}

func TestSessionLifecycleAutoCompletesWhenCountdownRunsOut(t *testing.T) {
	t.Parallel()
	clk := &fakeClock{values: []time.Time{time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)}}
	uc, _ := newInteractor(t, clk)
	ctx := context.Background()

	active, err := uc.Create(ctx, sessiondto.CreateInput{
		Title:           "  Read networking paper  ",
		Subject:         " math ",
		DurationMinutes: 1,
		BreakMinutes:    -3,
		TasksRaw:        "skim abstract\n\n  take notes  \n",
	})
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if active.Session.Title != "Read networking paper" || active.Session.Subject != "math" {
		t.Fatalf("expected trimmed title and subject, got %+v", active.Session)
	}
	if active.Session.BreakMinutes != 0 {
		t.Fatalf("negative break must clamp to 0, got %d", active.Session.BreakMinutes)
	}
	if len(active.Session.Tasks) != 2 || active.Session.Tasks[1] != "take notes" {
		t.Fatalf("expected 2 trimmed tasks, got %v", active.Session.Tasks)
	}
	if active.TimerState != "idle" || active.RemainingSeconds != 60 {
		t.Fatalf("new session must start idle at full duration, got %+v", active)
	}

	if active, err = uc.StartTimer(ctx); err != nil || active.TimerState != "running" {
		t.Fatalf("start timer: state=%s err=%v", active.TimerState, err)
	}

	for i := 0; i < 59; i++ {
		tick, err := uc.Tick(ctx)
		if err != nil {
			t.Fatalf("tick %d: %v", i, err)
		}
		if tick.Finished {
			t.Fatalf("finished early at tick %d", i)
		}
	}

	// A paused timer ignores ticks entirely.
	if active, err = uc.PauseTimer(ctx); err != nil || active.TimerState != "paused" {
		t.Fatalf("pause timer: state=%s err=%v", active.TimerState, err)
	}
	tick, err := uc.Tick(ctx)
	if err != nil || tick.RemainingSeconds != 1 || tick.Finished {
		t.Fatalf("paused tick must change nothing, got %+v err=%v", tick, err)
	}

	if _, err = uc.StartTimer(ctx); err != nil {
		t.Fatalf("resume timer: %v", err)
	}
	tick, err = uc.Tick(ctx)
	if err != nil {
		t.Fatalf("final tick: %v", err)
	}
	if !tick.Finished || tick.RemainingSeconds != 0 {
		t.Fatalf("expected finish at zero, got %+v", tick)
	}

	active, err = uc.GetActive(ctx)
	if err != nil {
		t.Fatalf("get active after finish: %v", err)
	}
	if active.TimerState != "finished" || !active.ReflectionPending {
		t.Fatalf("expected finished state with pending reflection, got %+v", active)
	}
	if !active.Session.Completed || active.Session.FocusedMinutes != 1 {
		t.Fatalf("auto-complete must record the full minute, got %+v", active.Session)
	}

	saved, err := uc.AttachReflection(ctx, sessiondto.ReflectionInput{Rating: 4, Good: "steady", Improve: "earlier start"})
	if err != nil {
		t.Fatalf("attach reflection: %v", err)
	}
	if !saved.HasReflection || saved.Rating != 4 || !saved.Completed {
		t.Fatalf("reflection not recorded, got %+v", saved)
	}
	if _, err := uc.GetActive(ctx); !errors.Is(err, apperrors.ErrNoActiveSession) {
		t.Fatalf("expected no active session after reflection, got %v", err)
	}

	history, err := uc.ListHistory(ctx)
	if err != nil || len(history) != 1 {
		t.Fatalf("expected one history row, got %d err=%v", len(history), err)
	}
}

func TestManualEndRoundsFocusedMinutesAndKeepsCompletedFalse(t *testing.T) {
	t.Parallel()
	clk := &fakeClock{values: []time.Time{time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)}}
	uc, _ := newInteractor(t, clk)
	ctx := context.Background()

	if _, err := uc.Create(ctx, sessiondto.CreateInput{Title: "Essay draft", DurationMinutes: 25}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := uc.StartTimer(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	// 90 elapsed seconds round up to 2 focused minutes.
	for i := 0; i < 90; i++ {
		if _, err := uc.Tick(ctx); err != nil {
			t.Fatalf("tick %d: %v", i, err)
		}
	}
	ended, err := uc.EndSession(ctx)
	if err != nil {
		t.Fatalf("end session: %v", err)
	}
	if ended.Session.FocusedMinutes != 2 {
		t.Fatalf("expected 2 focused minutes, got %d", ended.Session.FocusedMinutes)
	}
	if ended.Session.Completed {
		t.Fatalf("manual end must not mark the session completed")
	}
	if !ended.ReflectionPending || ended.TimerState != "finished" {
		t.Fatalf("expected pending reflection after end, got %+v", ended)
	}

	// Dismissing keeps what finalize recorded and frees the slot.
	if err := uc.DismissReflection(ctx); err != nil {
		t.Fatalf("dismiss: %v", err)
	}
	if _, err := uc.GetActive(ctx); !errors.Is(err, apperrors.ErrNoActiveSession) {
		t.Fatalf("expected no active session after dismiss, got %v", err)
	}
	history, err := uc.ListHistory(ctx)
	if err != nil || len(history) != 1 {
		t.Fatalf("history: %v", err)
	}
	if history[0].FocusedMinutes != 2 || history[0].Completed || history[0].HasReflection {
		t.Fatalf("dismissed session must keep finalize result untouched, got %+v", history[0])
	}
}

func TestCreateValidationAndMissingActiveErrors(t *testing.T) {
	t.Parallel()
	clk := &fakeClock{values: []time.Time{time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)}}
	uc, _ := newInteractor(t, clk)
	ctx := context.Background()

	if _, err := uc.Create(ctx, sessiondto.CreateInput{Title: "   ", DurationMinutes: 25}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("blank title must be invalid, got %v", err)
	}
	if _, err := uc.Create(ctx, sessiondto.CreateInput{Title: "x", DurationMinutes: 0}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("zero duration must be invalid, got %v", err)
	}

	for name, op := range map[string]func() error{
		"get":      func() error { _, err := uc.GetActive(ctx); return err },
		"start":    func() error { _, err := uc.StartTimer(ctx); return err },
		"pause":    func() error { _, err := uc.PauseTimer(ctx); return err },
		"tick":     func() error { _, err := uc.Tick(ctx); return err },
		"distract": func() error { _, err := uc.AddDistraction(ctx, "phone"); return err },
		"end":      func() error { _, err := uc.EndSession(ctx); return err },
		"reflect": func() error {
			_, err := uc.AttachReflection(ctx, sessiondto.ReflectionInput{Rating: 3})
			return err
		},
	} {
		if err := op(); !errors.Is(err, apperrors.ErrNoActiveSession) {
			t.Fatalf("%s without active session: expected ErrNoActiveSession, got %v", name, err)
		}
	}

	if _, err := uc.Create(ctx, sessiondto.CreateInput{Title: "x", DurationMinutes: 25}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := uc.AddDistraction(ctx, "   "); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("blank distraction type must be invalid, got %v", err)
	}
	// Reflections only exist after finalize.
	if _, err := uc.AttachReflection(ctx, sessiondto.ReflectionInput{Rating: 3}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("reflection before finalize must be invalid, got %v", err)
	}
}

func TestCreateReplacesActiveSessionAndResetsTimer(t *testing.T) {
	t.Parallel()
	clk := &fakeClock{values: []time.Time{time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)}}
	uc, _ := newInteractor(t, clk)
	ctx := context.Background()

	first, err := uc.Create(ctx, sessiondto.CreateInput{Title: "first", DurationMinutes: 25})
	if err != nil {
		t.Fatalf("create first: %v", err)
	}
	if _, err := uc.StartTimer(ctx); err != nil {
		t.Fatalf("start first: %v", err)
	}
	if _, err := uc.Tick(ctx); err != nil {
		t.Fatalf("tick first: %v", err)
	}

	second, err := uc.Create(ctx, sessiondto.CreateInput{Title: "second", DurationMinutes: 10})
	if err != nil {
		t.Fatalf("create second: %v", err)
	}
	if second.Session.ID == first.Session.ID {
		t.Fatalf("second session must get its own id")
	}

	active, err := uc.GetActive(ctx)
	if err != nil {
		t.Fatalf("get active: %v", err)
	}
	if active.Session.ID != second.Session.ID || active.TimerState != "idle" || active.RemainingSeconds != 600 {
		t.Fatalf("create must replace the active slot with a fresh timer, got %+v", active)
	}

	// The abandoned first session stays in the log, un-finalized.
	all, err := uc.ListAll(ctx)
	if err != nil || len(all) != 2 {
		t.Fatalf("expected both sessions in the log, got %d err=%v", len(all), err)
	}
	if all[0].FocusedMinutes != 0 || all[0].Completed {
		t.Fatalf("abandoned session must stay untouched, got %+v", all[0])
	}
}

func TestStaleActiveReferenceIsClearedOnLoad(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	clk := &fakeClock{values: []time.Time{time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)}}
	activeStore := out.NewFileActiveStateStore(filepath.Join(dir, "active.json"))
	svc := service.NewSessionService(clk, &seqID{}, out.NewFileSessionStore(filepath.Join(dir, "sessions.json")), nil)
	uc := usecase.NewInteractor(svc, activeStore)
	ctx := context.Background()

	// Reference a session that was never written to the log.
	if err := activeStore.SaveActive(ctx, domain.ActiveState{
		SessionID:        "gone",
		PlannedSeconds:   1500,
		RemainingSeconds: 1500,
		TimerState:       domain.TimerRunning,
	}); err != nil {
		t.Fatalf("seed stale reference: %v", err)
	}

	if _, err := uc.GetActive(ctx); !errors.Is(err, apperrors.ErrNoActiveSession) {
		t.Fatalf("stale reference must surface as no active session, got %v", err)
	}
	// The bad reference is gone, not just masked.
	if _, err := activeStore.LoadActive(ctx); !errors.Is(err, apperrors.ErrNoActiveSession) {
		t.Fatalf("stale reference must be cleared from disk, got %v", err)
	}
}

func TestDistractionsAppendInOrderWithClockTimestamps(t *testing.T) {
	t.Parallel()
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	clk := &fakeClock{values: []time.Time{
		base,
		base.Add(2 * time.Minute),
		base.Add(5 * time.Minute),
	}}
	uc, _ := newInteractor(t, clk)
	ctx := context.Background()

	if _, err := uc.Create(ctx, sessiondto.CreateInput{Title: "deep work", DurationMinutes: 50}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := uc.AddDistraction(ctx, "phone"); err != nil {
		t.Fatalf("first distraction: %v", err)
	}
	active, err := uc.AddDistraction(ctx, "noise")
	if err != nil {
		t.Fatalf("second distraction: %v", err)
	}

	got := active.Session.Distractions
	if len(got) != 2 || got[0].Type != "phone" || got[1].Type != "noise" {
		t.Fatalf("expected ordered distraction log, got %+v", got)
	}
	if got[0].Timestamp != base.Add(2*time.Minute).UnixMilli() || got[1].Timestamp != base.Add(5*time.Minute).UnixMilli() {
		t.Fatalf("expected clock timestamps, got %+v", got)
	}
}

func TestListTodayFiltersByDateKeyAndHistorySortsNewestFirst(t *testing.T) {
	t.Parallel()
	clk := &fakeClock{values: []time.Time{
		time.Date(2026, 3, 9, 23, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
	}}
	uc, _ := newInteractor(t, clk)
	ctx := context.Background()

	for _, title := range []string{"yesterday", "morning", "noon"} {
		if _, err := uc.Create(ctx, sessiondto.CreateInput{Title: title, DurationMinutes: 25}); err != nil {
			t.Fatalf("create %s: %v", title, err)
		}
	}

	today, err := uc.ListToday(ctx)
	if err != nil {
		t.Fatalf("list today: %v", err)
	}
	if len(today) != 2 || today[0].Title != "morning" || today[1].Title != "noon" {
		t.Fatalf("expected today's sessions in insertion order, got %+v", today)
	}

	history, err := uc.ListHistory(ctx)
	if err != nil {
		t.Fatalf("list history: %v", err)
	}
	if len(history) != 3 || history[0].Title != "noon" || history[2].Title != "yesterday" {
		t.Fatalf("expected newest-first history, got %+v", history)
	}
}
