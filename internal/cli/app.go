// Package cli wires the dependencies shared by the dockgrid commands.
package cli

import (
	"context"
	"os"

	"github.com/rs/zerolog"

	"github.com/bnema/dockgrid/internal/application/port"
	"github.com/bnema/dockgrid/internal/application/usecase"
	"github.com/bnema/dockgrid/internal/cli/styles"
	"github.com/bnema/dockgrid/internal/domain/build"
	"github.com/bnema/dockgrid/internal/domain/repository"
	"github.com/bnema/dockgrid/internal/infrastructure/clipboard"
	"github.com/bnema/dockgrid/internal/infrastructure/config"
	"github.com/bnema/dockgrid/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/dockgrid/internal/infrastructure/xdg"
	"github.com/bnema/dockgrid/internal/logging"
)

// App holds CLI dependencies.
type App struct {
	Config    *config.Config
	Theme     *styles.Theme
	BuildInfo build.Info
	Paths     port.XDGPaths
	Clipboard port.Clipboard

	// The database is opened on first use so that commands which never
	// touch stored layouts do not create it.
	db      *sqlite.LazyDB
	Layouts repository.LayoutRepository

	// Use cases
	SaveLayoutUC   *usecase.SaveLayoutUseCase
	LoadLayoutUC   *usecase.LoadLayoutUseCase
	ListLayoutsUC  *usecase.ListLayoutsUseCase
	DeleteLayoutUC *usecase.DeleteLayoutUseCase
	ConfigSchemaUC *usecase.GetConfigSchemaUseCase

	ctx        context.Context
	logCleanup func()
}

// NewApp creates a new CLI application with all dependencies.
func NewApp() (*App, error) {
	cfg := loadConfig()

	logger, logCleanup := newLogger(cfg)
	ctx := logging.WithContext(context.Background(), logger)
	ctx = logging.WithComponent(ctx, "cli")

	dbPath := cfg.Database.Path
	if dbPath == "" {
		var err error
		if dbPath, err = config.GetDatabaseFile(); err != nil {
			logCleanup()
			return nil, err
		}
	}
	lazyDB := sqlite.NewLazyDB(dbPath)
	layouts := sqlite.NewLazyLayoutRepository(lazyDB)

	logger.Debug().Str("db_path", dbPath).Msg("layout store configured")

	return &App{
		Config:         cfg,
		Theme:          styles.NewTheme(),
		Paths:          xdg.New(),
		Clipboard:      clipboard.New(),
		db:             lazyDB,
		Layouts:        layouts,
		SaveLayoutUC:   usecase.NewSaveLayoutUseCase(layouts),
		LoadLayoutUC:   usecase.NewLoadLayoutUseCase(layouts),
		ListLayoutsUC:  usecase.NewListLayoutsUseCase(layouts),
		DeleteLayoutUC: usecase.NewDeleteLayoutUseCase(layouts),
		ConfigSchemaUC: usecase.NewGetConfigSchemaUseCase(config.NewSchemaProvider()),
		ctx:            ctx,
		logCleanup:     logCleanup,
	}, nil
}

// newLogger builds the CLI logger. Console output stays quiet unless
// DOCKGRID_LOG_LEVEL asks otherwise; file logging follows the config.
func newLogger(cfg *config.Config) (zerolog.Logger, func()) {
	level := "warn"
	if envLevel := os.Getenv("DOCKGRID_LOG_LEVEL"); envLevel != "" {
		level = envLevel
	}
	if !cfg.Logging.EnableFileLog || cfg.Logging.LogDir == "" {
		return logging.NewFromConfigValues(level, cfg.Logging.Format), func() {}
	}

	rotator, err := logging.NewLogRotator(logging.RotatorConfig{
		Dir:        cfg.Logging.LogDir,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAge,
		Compress:   cfg.Logging.Compress,
	})
	if err != nil {
		logger := logging.NewFromConfigValues(level, cfg.Logging.Format)
		logger.Warn().Err(err).Msg("file logging disabled")
		return logger, func() {}
	}

	fileLevel, err := logging.ParseLevel(cfg.Logging.Level)
	if err != nil {
		fileLevel = zerolog.InfoLevel
	}
	logger := logging.New(logging.Config{
		Level:  fileLevel,
		Format: "json",
		Output: rotator,
	})
	return logger, func() { _ = rotator.Close() }
}

// Close releases all resources.
func (a *App) Close() error {
	if a.logCleanup != nil {
		a.logCleanup()
	}
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

// Ctx returns the application context with logger.
func (a *App) Ctx() context.Context {
	return a.ctx
}

// DatabasePath returns the layout store location.
func (a *App) DatabasePath() string {
	return a.db.Path()
}

// loadConfig loads configuration from standard locations.
func loadConfig() *config.Config {
	mgr, err := config.NewManager()
	if err != nil {
		return config.DefaultConfig()
	}
	if err := mgr.Load(); err != nil {
		return config.DefaultConfig()
	}
	return mgr.Get()
}
