// Package app wires the application together: data directory, single
// instance lock, logger, store, auth, settings, cache, sync queue and the
// tracker service the UI talks to.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"github.com/Mikkelka/gametrack/internal/auth"
	"github.com/Mikkelka/gametrack/internal/cache"
	"github.com/Mikkelka/gametrack/internal/logger"
	"github.com/Mikkelka/gametrack/internal/notify"
	"github.com/Mikkelka/gametrack/internal/queue"
	"github.com/Mikkelka/gametrack/internal/settings"
	"github.com/Mikkelka/gametrack/internal/store"
	"github.com/Mikkelka/gametrack/internal/tracker"
)

// App holds the application state and dependencies
type App struct {
	Store    *store.SQLite
	Auth     *auth.FileProvider
	Settings settings.Settings
	Notifier *notify.Notifier
	Cache    *cache.Cache
	Queue    *queue.Queue
	Tracker  *tracker.Service
	Log      *logger.Logger
	DataDir  string

	// OnSynced, when set, is called after every queue drain with the number
	// of committed changes. The TUI uses it to surface a status message.
	OnSynced func(sent int)

	lockFile     *flock.Flock
	cancelAuthCb func()
}

// Config holds application configuration
type Config struct {
	DataDir string
	DBPath  string

	// SyncDelay overrides the debounce quiet period. Zero keeps the
	// default.
	SyncDelay time.Duration

	LogLevel slog.Level
}

// DefaultConfig returns the default application configuration
func DefaultConfig() *Config {
	return &Config{
		DataDir: store.DefaultDataDir(),
		DBPath:  store.DefaultDBPath(),
	}
}

// New creates a new application instance
func New(cfg *Config) (*App, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	// Ensure data directory exists
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	// The TUI owns the terminal, so logs go to a file
	lg, err := logger.NewFile(filepath.Join(cfg.DataDir, "gametrack.log"), cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	app := &App{
		DataDir:  cfg.DataDir,
		Notifier: notify.NewNotifier(),
		Log:      lg,
	}

	// Acquire lock to ensure single instance
	if err := app.acquireLock(); err != nil {
		lg.Close()
		return nil, err
	}

	st, err := store.Open(cfg.DBPath, lg)
	if err != nil {
		app.releaseLock()
		lg.Close()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	app.Store = st

	provider, err := auth.NewFileProvider(cfg.DataDir)
	if err != nil {
		st.Close()
		app.releaseLock()
		lg.Close()
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	app.Auth = provider
	app.Settings = settings.Load(cfg.DataDir)

	app.Cache = cache.New(st, provider.CurrentUserID, lg)
	app.Queue = queue.New(st.Apply, queue.Config{
		Delay:     cfg.SyncDelay,
		OnFlushed: app.onFlushed,
		Logger:    lg,
	})
	app.Tracker = tracker.New(tracker.Config{
		Store: st,
		Cache: app.Cache,
		Queue: app.Queue,
		Auth:  provider,
		Log:   lg,
	})

	// Sign-out drops the cached board and its push subscription
	app.cancelAuthCb = provider.OnChange(func(userID string) {
		if userID == "" {
			app.Cache.Clear()
		}
	})

	return app, nil
}

// onFlushed reconciles the cache against the store after a drain and lets
// the desktop know.
func (a *App) onFlushed(sent int) {
	a.Cache.Reload(context.Background())
	if a.OnSynced != nil {
		a.OnSynced(sent)
	}
	if err := a.Notifier.SendSyncComplete(sent); err != nil {
		a.Log.Debug("notification failed", "error", err)
	}
}

// acquireLock acquires an exclusive file lock to prevent multiple instances
func (a *App) acquireLock() error {
	lockPath := filepath.Join(a.DataDir, "gametrack.lock")
	a.lockFile = flock.New(lockPath)

	locked, err := a.lockFile.TryLock()
	if err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}

	if !locked {
		return fmt.Errorf("another instance of gametrack is already running")
	}

	return nil
}

// releaseLock releases the file lock
func (a *App) releaseLock() {
	if a.lockFile != nil {
		a.lockFile.Unlock()
	}
}

// Close drains the queue, cancels the watch and cleans up application
// resources.
func (a *App) Close() error {
	var errs []error

	if a.Queue != nil {
		a.Queue.Flush(context.Background())
		a.Queue.Close()
	}
	if a.Cache != nil {
		a.Cache.Clear()
	}
	if a.cancelAuthCb != nil {
		a.cancelAuthCb()
	}

	if a.Store != nil {
		if err := a.Store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	a.releaseLock()

	if a.Log != nil {
		a.Log.Close()
	}

	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}
