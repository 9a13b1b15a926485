package usecase

import (
	"context"

	statsdto "focusflow/internal/modules/stats/dto"
	statsin "focusflow/internal/modules/stats/port/in"
	"focusflow/internal/modules/stats/service"
)

const focusedMinutesLabel = "Focused minutes"

type Interactor struct {
	svc *service.StatsService
}

func NewInteractor(svc *service.StatsService) statsin.Usecase {
	return &Interactor{svc: svc}
}

// SubjectTotals shapes the aggregation into the chart payload. Zero
// buckets yield an empty payload, which renders as no chart at all.
func (i *Interactor) SubjectTotals(ctx context.Context) (statsdto.ChartData, error) {
	totals, err := i.svc.Totals(ctx)
	if err != nil {
		return statsdto.ChartData{}, err
	}
	if len(totals) == 0 {
		return statsdto.ChartData{}, nil
	}
	labels := make([]string, len(totals))
	data := make([]int, len(totals))
	for idx, t := range totals {
		labels[idx] = t.Subject
		data[idx] = t.FocusedMinutes
	}
	return statsdto.ChartData{
		Labels:   labels,
		Datasets: []statsdto.Dataset{{Label: focusedMinutesLabel, Data: data}},
	}, nil
}

func (i *Interactor) DailyFocus(ctx context.Context, days int) ([]statsdto.DayFocusOutput, error) {
	totals, err := i.svc.Daily(ctx, days)
	if err != nil {
		return nil, err
	}
	out := make([]statsdto.DayFocusOutput, len(totals))
	for idx, t := range totals {
		out[idx] = statsdto.DayFocusOutput{
			DateKey:        t.DateKey,
			FocusedMinutes: t.FocusedMinutes,
			Sessions:       t.Sessions,
		}
	}
	return out, nil
}

func (i *Interactor) Reindex(ctx context.Context) (statsdto.ReindexOutput, error) {
	indexed, err := i.svc.Reindex(ctx)
	if err != nil {
		return statsdto.ReindexOutput{}, err
	}
	return statsdto.ReindexOutput{Indexed: indexed}, nil
}
