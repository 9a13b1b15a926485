package in

import (
	"context"

	sessiondto "focusflow/internal/modules/session/dto"
	sessionin "focusflow/internal/modules/session/port/in"
)

type CLIHandler struct {
	usecase sessionin.Usecase
}

func NewCLIHandler(usecase sessionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Create(ctx context.Context, title, subject string, durationMin, breakMin int, tasksRaw string) (sessiondto.ActiveOutput, error) {
	return h.usecase.Create(ctx, sessiondto.CreateInput{
		Title:           title,
		Subject:         subject,
		DurationMinutes: durationMin,
		BreakMinutes:    breakMin,
		TasksRaw:        tasksRaw,
	})
}

func (h CLIHandler) GetActive(ctx context.Context) (sessiondto.ActiveOutput, error) {
	return h.usecase.GetActive(ctx)
}

func (h CLIHandler) StartTimer(ctx context.Context) (sessiondto.ActiveOutput, error) {
	return h.usecase.StartTimer(ctx)
}

func (h CLIHandler) PauseTimer(ctx context.Context) (sessiondto.ActiveOutput, error) {
	return h.usecase.PauseTimer(ctx)
}

func (h CLIHandler) Tick(ctx context.Context) (sessiondto.TickOutput, error) {
	return h.usecase.Tick(ctx)
}

func (h CLIHandler) AddDistraction(ctx context.Context, distractionType string) (sessiondto.ActiveOutput, error) {
	return h.usecase.AddDistraction(ctx, distractionType)
}

func (h CLIHandler) EndSession(ctx context.Context) (sessiondto.ActiveOutput, error) {
	return h.usecase.EndSession(ctx)
}

func (h CLIHandler) AttachReflection(ctx context.Context, rating int, good, improve string) (sessiondto.SessionOutput, error) {
	return h.usecase.AttachReflection(ctx, sessiondto.ReflectionInput{Rating: rating, Good: good, Improve: improve})
}

func (h CLIHandler) DismissReflection(ctx context.Context) error {
	return h.usecase.DismissReflection(ctx)
}

func (h CLIHandler) ListToday(ctx context.Context) ([]sessiondto.SessionOutput, error) {
	return h.usecase.ListToday(ctx)
}

func (h CLIHandler) ListHistory(ctx context.Context) ([]sessiondto.SessionOutput, error) {
	return h.usecase.ListHistory(ctx)
}

func (h CLIHandler) ListAll(ctx context.Context) ([]sessiondto.SessionOutput, error) {
	return h.usecase.ListAll(ctx)
}
