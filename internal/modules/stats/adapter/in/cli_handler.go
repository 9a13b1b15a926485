package in

import (
	"context"

	statsdto "focusflow/internal/modules/stats/dto"
	statsin "focusflow/internal/modules/stats/port/in"
)

type CLIHandler struct {
	usecase statsin.Usecase
}

func NewCLIHandler(usecase statsin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) SubjectTotals(ctx context.Context) (statsdto.ChartData, error) {
	return h.usecase.SubjectTotals(ctx)
}

func (h CLIHandler) DailyFocus(ctx context.Context, days int) ([]statsdto.DayFocusOutput, error) {
	return h.usecase.DailyFocus(ctx, days)
}

func (h CLIHandler) Reindex(ctx context.Context) (statsdto.ReindexOutput, error) {
	return h.usecase.Reindex(ctx)
}
