// Package internal provides the App struct that wires the taskdeck
// components together and initializes the CLI layer.
package internal

import (
	"os"
	"path/filepath"
	"time"

	"github.com/valter-silva-au/taskdeck/internal/cli"
	"github.com/valter-silva-au/taskdeck/internal/core"
	"github.com/valter-silva-au/taskdeck/internal/observability"
	"github.com/valter-silva-au/taskdeck/internal/storage"
	"github.com/valter-silva-au/taskdeck/pkg/models"
)

// App holds all service dependencies for taskdeck.
type App struct {
	BasePath string

	Config    *core.AppConfig
	ConfigLdr core.ConfigLoader

	Files *storage.FileStore

	Validator *core.Validator
	Store     *core.Store

	EventLog     observability.EventLog
	ActivityCalc observability.ActivityCalculator
}

// ResolveBasePath determines where taskdeck keeps its data: $TASKDECK_HOME
// if set, otherwise ~/.taskdeck, falling back to the current directory.
func ResolveBasePath() string {
	if p := os.Getenv("TASKDECK_HOME"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".taskdeck")
}

// NewApp creates and wires all components. basePath is the directory where
// the config, task file, and event log live.
func NewApp(basePath string) (*App, error) {
	app := &App{BasePath: basePath}

	// --- Configuration ---
	app.ConfigLdr = core.NewConfigLoader(basePath)
	cfg, err := app.ConfigLdr.Load()
	if err != nil {
		// Unreadable config falls back to defaults; the store must not be
		// held hostage by a broken config file.
		cfg = core.DefaultAppConfig()
	}
	if err := app.ConfigLdr.Validate(cfg); err != nil {
		cfg = core.DefaultAppConfig()
	}
	app.Config = cfg

	// --- Validation engine ---
	app.Validator = core.NewValidator()
	app.Validator.UpdateLimits(core.LimitOverrides{
		TitleMaxLength:       &cfg.Limits.TitleMaxLength,
		DescriptionMaxLength: &cfg.Limits.DescriptionMaxLength,
		TagMaxLength:         &cfg.Limits.TagMaxLength,
		TagsMaxCount:         &cfg.Limits.TagsMaxCount,
	})

	// --- Storage layer ---
	app.Files = storage.NewFileStore(filepath.Join(basePath, cfg.DataFile))

	// --- Observability ---
	if cfg.EventLog {
		eventLogPath := filepath.Join(basePath, ".taskdeck_events.jsonl")
		if err := os.MkdirAll(basePath, 0o750); err == nil {
			log, logErr := observability.NewJSONLEventLog(eventLogPath)
			if logErr == nil {
				app.EventLog = log
				app.ActivityCalc = observability.NewActivityCalculator(log)
			}
		}
		// Non-fatal: the store runs without an event log.
	}

	// --- Task store ---
	var evtAdapter core.EventLogger
	if app.EventLog != nil {
		evtAdapter = &eventLogAdapter{log: app.EventLog}
	}
	app.Store = core.NewStore(app.Validator, &persisterAdapter{files: app.Files}, evtAdapter)
	app.Store.SetFilter(cfg.DefaultFilter)
	app.Store.SetSortKey(cfg.DefaultSortKey)
	app.Store.SetSortOrder(cfg.DefaultSortOrder)

	// --- CLI layer ---
	cli.BasePath = basePath
	cli.Store = app.Store
	cli.Config = cfg
	cli.EventLog = app.EventLog
	cli.ActivityCalc = app.ActivityCalc

	return app, nil
}

// persisterAdapter bridges storage.FileStore to the core's TaskPersister interface.
type persisterAdapter struct {
	files *storage.FileStore
}

func (p *persisterAdapter) Load() []*models.Task {
	return p.files.Load()
}

func (p *persisterAdapter) Save(tasks []*models.Task) bool {
	return p.files.Save(tasks)
}

func (p *persisterAdapter) Health() core.PersistenceHealth {
	h := p.files.Health()
	return core.PersistenceHealth{Available: h.Available, HasError: h.HasError}
}

// eventLogAdapter bridges observability.EventLog to the core's EventLogger interface.
type eventLogAdapter struct {
	log observability.EventLog
}

func (a *eventLogAdapter) LogEvent(eventType string, data map[string]any) error {
	return a.log.Write(observability.Event{
		Time: time.Now().UTC(),
		Type: eventType,
		Data: data,
	})
}
