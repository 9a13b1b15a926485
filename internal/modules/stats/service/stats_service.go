package service

import (
	"context"

	"focusflow/internal/modules/stats/domain"
	statsout "focusflow/internal/modules/stats/port/out"
	"focusflow/internal/platform/clock"
	"focusflow/internal/platform/timefmt"
)

// StatsService computes reports. Subject totals are recomputed from the
// full canonical collection on every call; the daily report reads the
// SQLite index.
type StatsService struct {
	clock   clock.Clock
	source  statsout.SessionSource
	reports statsout.ReportStore
}

func NewStatsService(clk clock.Clock, source statsout.SessionSource, reports statsout.ReportStore) *StatsService {
	return &StatsService{clock: clk, source: source, reports: reports}
}

func (s *StatsService) Totals(ctx context.Context) ([]domain.SubjectTotal, error) {
	facts, err := s.source.ListFacts(ctx)
	if err != nil {
		return nil, err
	}
	return domain.TotalsBySubject(facts), nil
}

// Daily reports focused minutes per calendar day for the last N days,
// today included.
func (s *StatsService) Daily(ctx context.Context, days int) ([]domain.DayTotal, error) {
	if days < 1 {
		days = 1
	}
	fromKey := timefmt.DateKey(s.clock.Now().AddDate(0, 0, -(days - 1)))
	return s.reports.DailyFocus(ctx, fromKey)
}

// Reindex rebuilds the reporting index from the canonical collection.
func (s *StatsService) Reindex(ctx context.Context) (int, error) {
	facts, err := s.source.ListFacts(ctx)
	if err != nil {
		return 0, err
	}
	if err := s.reports.Reset(ctx); err != nil {
		return 0, err
	}
	for _, f := range facts {
		if err := s.reports.Upsert(ctx, f); err != nil {
			return 0, err
		}
	}
	return len(facts), nil
}
