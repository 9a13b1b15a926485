package in

import (
	"context"

	"focusflow/internal/modules/stats/dto"
)

type Usecase interface {
	SubjectTotals(ctx context.Context) (dto.ChartData, error)
	DailyFocus(ctx context.Context, days int) ([]dto.DayFocusOutput, error)
	Reindex(ctx context.Context) (dto.ReindexOutput, error)
}
