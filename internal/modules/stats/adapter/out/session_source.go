package out

import (
	"context"

	sessionin "focusflow/internal/modules/session/port/in"
	"focusflow/internal/modules/stats/domain"
	statsout "focusflow/internal/modules/stats/port/out"
)

// SessionSourceAdapter feeds the canonical session collection into the
// stats module through its own port vocabulary.
type SessionSourceAdapter struct {
	sessions sessionin.Usecase
}

func NewSessionSourceAdapter(sessions sessionin.Usecase) statsout.SessionSource {
	return &SessionSourceAdapter{sessions: sessions}
}

func (a *SessionSourceAdapter) ListFacts(ctx context.Context) ([]domain.SessionFacts, error) {
	sessions, err := a.sessions.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	facts := make([]domain.SessionFacts, len(sessions))
	for i, s := range sessions {
		facts[i] = domain.SessionFacts{
			ID:               s.ID,
			Title:            s.Title,
			Subject:          s.Subject,
			DurationMinutes:  s.DurationMinutes,
			DistractionCount: len(s.Distractions),
			DateKey:          s.DateKey,
			CreatedAt:        s.CreatedAt,
			Completed:        s.Completed,
			FocusedMinutes:   s.FocusedMinutes,
			HasReflection:    s.HasReflection,
			Rating:           s.Rating,
		}
	}
	return facts, nil
}
