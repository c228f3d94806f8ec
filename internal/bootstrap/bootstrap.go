package bootstrap

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	streakinadapter "holystreak/internal/modules/streak/adapter/in"
	streakoutadapter "holystreak/internal/modules/streak/adapter/out"
	streakout "holystreak/internal/modules/streak/port/out"
	streakservice "holystreak/internal/modules/streak/service"
	streakusecase "holystreak/internal/modules/streak/usecase"
	"holystreak/internal/platform/clock"
	"holystreak/internal/platform/config"
	"holystreak/internal/platform/logging"
	uiapp "holystreak/internal/ui/app"
)

type App struct {
	Config    config.Config
	Logger    *zap.Logger
	StreakCLI streakinadapter.CLIHandler

	store streakout.TimestampStore
}

func New(cfg config.Config) (*App, error) {
	logger, err := logging.New(cfg.LogPath, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("new logger: %w", err)
	}
	return NewWithLogger(cfg, logger)
}

func NewWithLogger(cfg config.Config, logger *zap.Logger) (*App, error) {
	store, err := streakoutadapter.NewSQLiteTimestampStore(cfg.DBPath, cfg.SaveRetries, logger.Named("store"))
	if err != nil {
		return nil, fmt.Errorf("new timestamp store: %w", err)
	}
	streakUC := streakusecase.NewInteractor(streakservice.NewStreakService(clock.SystemClock{}, store, logger.Named("streak")))

	logger.Debug("app initialised",
		zap.String("data_dir", cfg.DataDir),
		zap.String("db_path", cfg.DBPath),
		zap.Duration("tick_interval", cfg.TickInterval),
	)
	return &App{
		Config:    cfg,
		Logger:    logger,
		StreakCLI: streakinadapter.NewCLIHandler(streakUC),
		store:     store,
	}, nil
}

func (a *App) Close() error {
	_ = a.Logger.Sync()
	return a.store.Close()
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.StreakCLI, app.Config.TickInterval, nil)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithReportFocus())
	_, err := program.Run()
	if err != nil {
		app.Logger.Error("tui exited with error", zap.Error(err))
	}
	return err
}
