package bootstrap

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	sessioninadapter "focusflow/internal/modules/session/adapter/in"
	sessionoutadapter "focusflow/internal/modules/session/adapter/out"
	sessionservice "focusflow/internal/modules/session/service"
	sessionusecase "focusflow/internal/modules/session/usecase"
	statsinadapter "focusflow/internal/modules/stats/adapter/in"
	statsoutadapter "focusflow/internal/modules/stats/adapter/out"
	statsservice "focusflow/internal/modules/stats/service"
	statsusecase "focusflow/internal/modules/stats/usecase"
	"focusflow/internal/platform/clock"
	"focusflow/internal/platform/config"
	"focusflow/internal/platform/id"
	uiapp "focusflow/internal/ui/app"
)

type App struct {
	Config     config.Config
	SessionCLI sessioninadapter.CLIHandler
	StatsCLI   statsinadapter.CLIHandler
}

func New(cfg config.Config) (*App, error) {
	clk := clock.SystemClock{}
	ids := id.TimeRandom{}

	reports, err := statsoutadapter.NewSQLiteReportStore(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("new report store: %w", err)
	}

	sessionUC := sessionusecase.NewInteractor(
		sessionservice.NewSessionService(clk, ids,
			sessionoutadapter.NewFileSessionStore(cfg.SessionsPath), reports),
		sessionoutadapter.NewFileActiveStateStore(cfg.ActivePath),
	)

	statsUC := statsusecase.NewInteractor(statsservice.NewStatsService(
		clk,
		statsoutadapter.NewSessionSourceAdapter(sessionUC),
		reports,
	))

	return &App{
		Config:     cfg,
		SessionCLI: sessioninadapter.NewCLIHandler(sessionUC),
		StatsCLI:   statsinadapter.NewCLIHandler(statsUC),
	}, nil
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(
		app.SessionCLI,
		app.SessionCLI,
		app.SessionCLI,
		app.StatsCLI,
		app.Config.DistractionTypes,
		app.Config.Defaults.DurationMinutes,
		app.Config.Defaults.BreakMinutes,
	)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
