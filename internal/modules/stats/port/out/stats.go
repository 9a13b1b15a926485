package out

import (
	"context"

	"focusflow/internal/modules/stats/domain"
)

// SessionSource exposes the canonical session collection as reporting facts.
type SessionSource interface {
	ListFacts(ctx context.Context) ([]domain.SessionFacts, error)
}

// ReportStore is the queryable reporting index.
type ReportStore interface {
	Reset(ctx context.Context) error
	Upsert(ctx context.Context, facts domain.SessionFacts) error
	DailyFocus(ctx context.Context, fromDateKey string) ([]domain.DayTotal, error)
}
