package in

import (
	"context"

	"focusflow/internal/modules/session/dto"
)

type Usecase interface {
	Create(ctx context.Context, input dto.CreateInput) (dto.ActiveOutput, error)
	GetActive(ctx context.Context) (dto.ActiveOutput, error)
	StartTimer(ctx context.Context) (dto.ActiveOutput, error)
	PauseTimer(ctx context.Context) (dto.ActiveOutput, error)
	Tick(ctx context.Context) (dto.TickOutput, error)
	AddDistraction(ctx context.Context, distractionType string) (dto.ActiveOutput, error)
	EndSession(ctx context.Context) (dto.ActiveOutput, error)
	AttachReflection(ctx context.Context, input dto.ReflectionInput) (dto.SessionOutput, error)
	DismissReflection(ctx context.Context) error
	ListToday(ctx context.Context) ([]dto.SessionOutput, error)
	ListHistory(ctx context.Context) ([]dto.SessionOutput, error)
	ListAll(ctx context.Context) ([]dto.SessionOutput, error)
}
