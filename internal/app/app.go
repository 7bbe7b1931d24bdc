// Package app wires configuration, logging and an editor session into a
// running application and keeps the session in step with config changes.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/dshills/six/internal/config"
	"github.com/dshills/six/internal/editor"
)

// Options configures the application.
type Options struct {
	// ConfigPath is the path to the configuration file. Empty uses defaults.
	ConfigPath string

	// LogLevel overrides the configured log level when set.
	LogLevel string

	// LogOutput receives log lines when no log file is configured.
	// Nil discards them.
	LogOutput io.Writer

	// Text is the initial buffer content.
	Text string

	// EditorOptions are appended to the options derived from config.
	EditorOptions []editor.Option
}

// Application owns the configuration, the logger and one editor.
type Application struct {
	mu sync.Mutex

	opts    Options
	config  *config.Config
	logger  *Logger
	logFile *os.File
	editor  *editor.Editor
	closed  bool
}

// New loads configuration and starts an editor session.
func New(opts Options) (*Application, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, &InitError{Component: "config", Err: err}
	}

	app := &Application{opts: opts, config: cfg}
	if err := app.initLogger(); err != nil {
		return nil, &InitError{Component: "logger", Err: err}
	}

	edOpts := append([]editor.Option{
		editor.WithLogger(app.logger.WithComponent("editor")),
	}, opts.EditorOptions...)
	ed, err := editor.FromConfig(opts.Text, cfg, edOpts...)
	if err != nil {
		app.closeLog()
		return nil, &InitError{Component: "editor", Err: err}
	}
	app.editor = ed

	app.logger.Debug("started session %s (config %q)", ed.ID(), cfg.Path())
	return app, nil
}

func (app *Application) initLogger() error {
	name := app.config.Log.Level
	if app.opts.LogLevel != "" {
		name = app.opts.LogLevel
	}
	level, err := ParseLogLevel(name)
	if err != nil {
		return err
	}

	out := app.opts.LogOutput
	if path := app.config.Log.File; path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		app.logFile = f
		out = f
	}

	app.logger = NewLogger(LoggerConfig{Level: level, Output: out, Prefix: "six"})
	return nil
}

// Config returns the active configuration.
func (app *Application) Config() *config.Config {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.config
}

// Logger returns the application logger.
func (app *Application) Logger() *Logger {
	return app.logger
}

// Editor returns the editor session.
func (app *Application) Editor() *editor.Editor {
	return app.editor
}

// WatchPaths lists the files whose changes trigger a reload: the config
// file and every script path.
func (app *Application) WatchPaths() []string {
	cfg := app.Config()
	var paths []string
	if p := cfg.Path(); p != "" {
		paths = append(paths, p)
	}
	return append(paths, cfg.Scripts.Paths...)
}

// Reload re-reads the configuration file and applies its key bindings and
// scripts to the editor. On error the previous configuration stays active.
func (app *Application) Reload() error {
	app.mu.Lock()
	if app.closed {
		app.mu.Unlock()
		return ErrClosed
	}
	path := app.config.Path()
	app.mu.Unlock()

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if err := app.editor.Reload(cfg); err != nil {
		return err
	}

	app.mu.Lock()
	app.config = cfg
	app.mu.Unlock()
	return nil
}

// Watch reloads on every change to WatchPaths until ctx is done. Reload
// failures are logged and watching continues.
func (app *Application) Watch(ctx context.Context) error {
	w, err := config.NewWatcher(app.WatchPaths())
	if err != nil {
		return err
	}
	defer w.Close()

	log := app.logger.WithComponent("watcher")
	log.Debug("watching %v", w.Watched())
	onChange := func(path string) {
		if err := app.Reload(); err != nil {
			log.Error("reload after change to %s: %v", path, err)
			return
		}
		log.Info("reloaded after change to %s", path)
	}
	onErr := func(err error) {
		log.Warn("%v", err)
	}
	return w.Run(ctx, onChange, onErr)
}

// Close ends the session and closes the log file.
func (app *Application) Close() error {
	app.mu.Lock()
	if app.closed {
		app.mu.Unlock()
		return nil
	}
	app.closed = true
	app.mu.Unlock()

	return errors.Join(app.editor.Close(), app.closeLog())
}

func (app *Application) closeLog() error {
	if app.logFile == nil {
		return nil
	}
	err := app.logFile.Close()
	app.logFile = nil
	return err
}
