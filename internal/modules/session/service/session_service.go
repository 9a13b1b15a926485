package service

import (
	"context"
	"fmt"
	"strings"

	"focusflow/internal/modules/session/domain"
	sessionout "focusflow/internal/modules/session/port/out"
	"focusflow/internal/platform/clock"
	apperrors "focusflow/internal/platform/errors"
	"focusflow/internal/platform/id"
	"focusflow/internal/platform/timefmt"
)

// SessionService owns every mutation of the session collection. Each write
// persists the whole collection and mirrors the touched record into the
// reporting projection.
type SessionService struct {
	clock     clock.Clock
	idGen     id.Generator
	store     sessionout.SessionStore
	projector sessionout.HistoryProjector
}

func NewSessionService(clk clock.Clock, idGen id.Generator, store sessionout.SessionStore, projector sessionout.HistoryProjector) *SessionService {
	return &SessionService{clock: clk, idGen: idGen, store: store, projector: projector}
}

func (s *SessionService) Create(ctx context.Context, title, subject string, durationMin, breakMin int, tasksRaw string) (domain.Session, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return domain.Session{}, fmt.Errorf("%w: title is required", apperrors.ErrInvalidInput)
	}
	if durationMin <= 0 {
		return domain.Session{}, fmt.Errorf("%w: duration must be a positive number of minutes", apperrors.ErrInvalidInput)
	}
	if breakMin < 0 {
		breakMin = 0
	}

	now := s.clock.Now()
	session := domain.Session{
		ID:              s.idGen.New(),
		Title:           title,
		Subject:         strings.TrimSpace(subject),
		DurationMinutes: durationMin,
		BreakMinutes:    breakMin,
		Tasks:           domain.ParseTasks(tasksRaw),
		Distractions:    []domain.Distraction{},
		Reflection:      nil,
		DateKey:         timefmt.DateKey(now),
		CreatedAt:       now.UnixMilli(),
		Completed:       false,
		FocusedMinutes:  0,
	}

	sessions, err := s.store.Load(ctx)
	if err != nil {
		return domain.Session{}, err
	}
	sessions = append(sessions, session)
	if err := s.store.Save(ctx, sessions); err != nil {
		return domain.Session{}, err
	}
	s.project(ctx, session)
	return session, nil
}

func (s *SessionService) List(ctx context.Context) ([]domain.Session, error) {
	return s.store.Load(ctx)
}

func (s *SessionService) Get(ctx context.Context, sessionID string) (domain.Session, error) {
	sessions, err := s.store.Load(ctx)
	if err != nil {
		return domain.Session{}, err
	}
	for _, session := range sessions {
		if session.ID == sessionID {
			return session, nil
		}
	}
	return domain.Session{}, apperrors.ErrNotFound
}

func (s *SessionService) AddDistraction(ctx context.Context, sessionID, distractionType string) (domain.Session, error) {
	distractionType = strings.TrimSpace(distractionType)
	if distractionType == "" {
		return domain.Session{}, fmt.Errorf("%w: distraction type is required", apperrors.ErrInvalidInput)
	}
	stamp := s.clock.Now().UnixMilli()
	return s.mutate(ctx, sessionID, func(session *domain.Session) {
		session.Distractions = append(session.Distractions, domain.Distraction{
			Type:      distractionType,
			Timestamp: stamp,
		})
	})
}

func (s *SessionService) Finalize(ctx context.Context, sessionID string, remainingSeconds int, autoCompleted bool) (domain.Session, error) {
	return s.mutate(ctx, sessionID, func(session *domain.Session) {
		session.Finalize(remainingSeconds, autoCompleted)
	})
}

func (s *SessionService) AttachReflection(ctx context.Context, sessionID string, rating int, good, improve string) (domain.Session, error) {
	return s.mutate(ctx, sessionID, func(session *domain.Session) {
		session.Reflection = &domain.Reflection{
			Rating:  rating,
			Good:    strings.TrimSpace(good),
			Improve: strings.TrimSpace(improve),
		}
		session.Completed = true
	})
}

// TodayKey is the date key for the current local calendar day.
func (s *SessionService) TodayKey() string {
	return timefmt.DateKey(s.clock.Now())
}

func (s *SessionService) mutate(ctx context.Context, sessionID string, apply func(*domain.Session)) (domain.Session, error) {
	sessions, err := s.store.Load(ctx)
	if err != nil {
		return domain.Session{}, err
	}
	for i := range sessions {
		if sessions[i].ID != sessionID {
			continue
		}
		apply(&sessions[i])
		if err := s.store.Save(ctx, sessions); err != nil {
			return domain.Session{}, err
		}
		s.project(ctx, sessions[i])
		return sessions[i], nil
	}
	return domain.Session{}, apperrors.ErrNotFound
}

// project mirrors a record into the reporting index. The canonical JSON
// write has already succeeded at this point; a stale index is repaired by
// reindex, so projection errors are swallowed.
func (s *SessionService) project(ctx context.Context, session domain.Session) {
	if s.projector == nil {
		return
	}
	_ = s.projector.UpsertSession(ctx, session)
}
