package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/seojin/pdflate/internal/api"
	"github.com/seojin/pdflate/internal/config"
	"github.com/seojin/pdflate/internal/notify"
	"github.com/seojin/pdflate/internal/store"
	"github.com/seojin/pdflate/internal/upload"
	"github.com/seojin/pdflate/internal/workflow"
)

// App holds the application state and dependencies
type App struct {
	Config    *config.Config
	API       *api.Client
	Store     *store.ProjectStore
	Uploads   *upload.Controller
	Generator *workflow.Generator
	Notifier  *notify.Notifier
	DataDir   string
	lockFile  *flock.Flock
}

// New creates a new application instance. The instance lock guards the
// single-writer editing assumption: two clients saving the same project would
// silently overwrite each other (persistence is last-writer-wins).
func New(cfg *config.Config) (*App, error) {
	if cfg == nil {
		loaded, err := config.Load()
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	dataDir := config.DefaultDataDir()
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	client := api.New(cfg.ServerURL)
	projects := store.New()
	notifier := notify.NewNotifier()
	notifier.SetEnabled(cfg.Notifications)

	app := &App{
		Config:    cfg,
		API:       client,
		Store:     projects,
		Uploads:   upload.NewController(client, projects),
		Generator: workflow.NewGenerator(client),
		Notifier:  notifier,
		DataDir:   dataDir,
	}

	if err := app.acquireLock(); err != nil {
		return nil, err
	}

	return app, nil
}

// acquireLock acquires an exclusive file lock to prevent multiple instances
func (a *App) acquireLock() error {
	lockPath := filepath.Join(a.DataDir, "pdflate.lock")
	a.lockFile = flock.New(lockPath)

	locked, err := a.lockFile.TryLock()
	if err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}

	if !locked {
		return fmt.Errorf("another instance of pdflate is already running")
	}

	return nil
}

// releaseLock releases the file lock
func (a *App) releaseLock() {
	if a.lockFile != nil {
		a.lockFile.Unlock()
	}
}

// Close cleans up application resources
func (a *App) Close() error {
	a.releaseLock()
	return nil
}
