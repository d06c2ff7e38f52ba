package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/studiowebux/snapgen/internal/app"
	"github.com/studiowebux/snapgen/internal/client"
	"github.com/studiowebux/snapgen/internal/config"
	"github.com/studiowebux/snapgen/internal/history"
	"github.com/studiowebux/snapgen/internal/logging"
	"github.com/studiowebux/snapgen/internal/settings"
)

// SetupOptions are the global flags shared by every command
type SetupOptions struct {
	ConfigPath string // Empty uses ~/.snapgen/config.yaml
	ServiceURL string // Overrides config and SNAPGEN_URL
	LogLevel   string
	// Ephemeral keeps preferences in memory and records no history
	Ephemeral bool
}

// Env is everything a command needs, built once per invocation
type Env struct {
	Options  config.Options
	Client   *client.Client
	Settings settings.KV
	History  *history.Manager
	Logger   *slog.Logger

	closers []io.Closer
}

// Setup initializes the config directory, logging, the service client and
// the persistent stores
func Setup(opts SetupOptions) (*Env, error) {
	if err := config.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize config: %w", err)
	}

	path := opts.ConfigPath
	if path == "" {
		path = config.ConfigFile
	}
	if opts.ServiceURL != "" {
		// Flag beats both the file and the environment
		os.Setenv(config.EnvServiceURL, opts.ServiceURL)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}

	env := &Env{
		Options: cfg,
		Logger:  logging.Setup(config.LogFile, cfg.LogLevel),
	}

	env.Client, err = client.New(client.Options{
		BaseURL: cfg.ServiceURL,
		Timeout: cfg.RequestTimeout,
		Fields:  cfg.Fields,
		Logger:  env.Logger,
	})
	if err != nil {
		return nil, err
	}

	if opts.Ephemeral {
		env.Settings = settings.NewMemory()
		return env, nil
	}

	store, err := settings.Open(config.DatabasePath)
	if err != nil {
		// Preferences are a convenience; keep going without them
		env.Logger.Warn("settings unavailable, using in-memory store", "error", err)
		env.Settings = settings.NewMemory()
	} else {
		env.Settings = store
		env.closers = append(env.closers, store)
	}

	hist, err := history.NewManager(config.DatabasePath)
	if err != nil {
		env.Logger.Warn("history unavailable", "error", err)
	} else {
		env.History = hist
		env.closers = append(env.closers, hist)
	}

	env.Logger.Debug("environment ready", "service_url", cfg.ServiceURL, "config", path)
	return env, nil
}

// AppOptions returns the application options for this environment
func (e *Env) AppOptions() app.Options {
	opts := app.Options{
		Settings:           e.Settings,
		Service:            e.Client,
		HealthInterval:     e.Options.HealthInterval,
		DiscardStaleHealth: e.Options.DiscardStaleHealth,
		Logger:             e.Logger,
	}
	if e.History != nil {
		opts.History = e.History
	}
	return opts
}

// Closers hands the open stores to a caller that will close them
func (e *Env) Closers() []io.Closer {
	c := e.closers
	e.closers = nil
	return c
}

// Close closes the stores and the log file
func (e *Env) Close() error {
	var errs []error
	for _, c := range e.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	e.closers = nil
	if err := logging.Close(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
