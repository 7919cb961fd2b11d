package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/desertwitch/reflectron/internal/catalog"
	"github.com/desertwitch/reflectron/internal/configuration"
	"github.com/desertwitch/reflectron/internal/executor"
	"github.com/desertwitch/reflectron/internal/logging"
	"github.com/desertwitch/reflectron/internal/machine"
	"github.com/desertwitch/reflectron/internal/schema"
	"github.com/desertwitch/reflectron/internal/volume"
	"github.com/google/uuid"
	"github.com/juju/clock"
)

// App holds the handlers of one process run. They are set up once a command
// has been chosen, and torn down by [App.Close].
type App struct {
	stdout io.Writer
	stderr io.Writer
	runID  string

	configFile string
	verbose    bool

	config          *configuration.Config
	logManager      *logging.SlogManager
	logFile         *logging.DailyFile
	executorHandler *executor.Handler
	volumeHandler   *volume.Handler
	catalog         *catalog.Catalog
	machineHandler  *machine.Handler
}

func newApp(stdout io.Writer, stderr io.Writer) *App {
	app := &App{
		stdout:     stdout,
		stderr:     stderr,
		runID:      uuid.NewString(),
		configFile: configuration.DefaultConfigFile,
	}

	app.logManager = logging.NewManager(stderr, nil, slog.LevelInfo)
	slog.SetDefault(slog.New(app.logManager))

	return app
}

func (app *App) level() slog.Level {
	if app.verbose {
		return slog.LevelDebug
	}

	return slog.LevelInfo
}

// Setup loads the configuration, opens the daily log file and the catalog
// and wires up all handlers.
func (app *App) Setup() error {
	osProvider := &schema.OS{}
	unixProvider := &schema.Unix{}
	configProvider := &configuration.GodotenvProvider{}

	app.logManager.AddHandler(logging.HandlerConsole, logging.NewConsoleHandler(app.stderr, app.level()))

	cfg, err := configuration.NewHandler(configProvider).Load(app.configFile)
	if err != nil {
		return err //nolint:wrapcheck
	}
	app.config = cfg

	logFile, err := logging.NewDailyFile(cfg.LogDir, osProvider, clock.WallClock)
	if err != nil {
		return err //nolint:wrapcheck
	}
	app.logFile = logFile

	fileHandler := logging.NewFileHandler(logFile, app.level()).
		WithAttrs([]slog.Attr{slog.String("run", app.runID)})
	app.logManager.AddHandler(logging.HandlerFile, fileHandler)

	slog.Debug("Configuration loaded.", "file", app.configFile, "log", logFile.Path(), "database", cfg.DatabasePath)

	app.executorHandler = executor.NewHandler(unixProvider, clock.WallClock, executor.Options{
		Stdout:   app.stdout,
		Stderr:   app.stderr,
		Escalate: cfg.Escalate,
		WaitMax:  cfg.WaitMax,
	})
	app.volumeHandler = volume.NewHandler(app.executorHandler)

	app.catalog, err = catalog.Open(cfg.DatabasePath, app.volumeHandler)
	if err != nil {
		return err //nolint:wrapcheck
	}

	app.machineHandler = machine.NewHandler(app.catalog.Settings(), app.catalog.Machines(), app.volumeHandler)

	return nil
}

// Fatal logs err as the reason the run failed.
func (app *App) Fatal(err error) {
	slog.Error(fmt.Sprintf("ERROR: %v", err))
}

// Close releases the catalog and the log file.
func (app *App) Close() {
	if app.catalog != nil {
		if err := app.catalog.Close(); err != nil {
			slog.Error("Failed to close the catalog.", "err", err)
		}
		app.catalog = nil
	}

	if app.logFile != nil {
		app.logManager.RemoveHandler(logging.HandlerFile)
		_ = app.logFile.Close()
		app.logFile = nil
	}
}
