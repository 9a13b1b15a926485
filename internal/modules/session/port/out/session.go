package out

import (
	"context"

	"focusflow/internal/modules/session/domain"
)

// SessionStore persists the full session collection as one blob. Load must
// degrade to an empty collection when the blob is missing or unreadable.
type SessionStore interface {
	Load(ctx context.Context) ([]domain.Session, error)
	Save(ctx context.Context, sessions []domain.Session) error
}

// ActiveStateStore holds the single active-session reference.
type ActiveStateStore interface {
	SaveActive(ctx context.Context, state domain.ActiveState) error
	LoadActive(ctx context.Context) (domain.ActiveState, error)
	ClearActive(ctx context.Context) error
}

// HistoryProjector mirrors finalized facts about each session into the
// reporting index. Projection failures must not block the canonical write.
type HistoryProjector interface {
	UpsertSession(ctx context.Context, session domain.Session) error
}
