package editor

import (
	"fmt"
	"os"

	"github.com/dshills/six/internal/config"
	"github.com/dshills/six/internal/input/keymap"
	"github.com/dshills/six/internal/input/mode"
	"github.com/dshills/six/internal/plugin/lua"
)

// BuildKeyMap returns the default key map with the configured bindings
// layered on top.
func BuildKeyMap(cfg *config.Config) (*keymap.Map, error) {
	km := keymap.Default()
	if err := cfg.Bindings(km.BindNotation); err != nil {
		return nil, err
	}
	return km, nil
}

// LoadScripts creates a runtime and loads every configured script path.
// A directory loads the .lua files inside it.
func LoadScripts(cfg *config.Config, logger Logger) (*lua.Runtime, error) {
	if logger == nil {
		logger = nopLogger{}
	}
	rt := lua.New(
		lua.WithTimeout(cfg.ScriptTimeout()),
		lua.WithLimit(cfg.Scripts.InstructionLimit),
		lua.WithLogger(logger),
	)
	for _, p := range cfg.Scripts.Paths {
		info, err := os.Stat(p)
		if err != nil {
			rt.Close()
			return nil, fmt.Errorf("script path: %w", err)
		}
		if info.IsDir() {
			err = rt.LoadDir(p)
		} else {
			err = rt.LoadFile(p)
		}
		if err != nil {
			rt.Close()
			return nil, err
		}
	}
	return rt, nil
}

// FromConfig creates an editor configured by cfg.
func FromConfig(text string, cfg *config.Config, opts ...Option) (*Editor, error) {
	km, err := BuildKeyMap(cfg)
	if err != nil {
		return nil, err
	}
	o := options{logger: nopLogger{}}
	for _, opt := range opts {
		opt(&o)
	}
	rt, err := LoadScripts(cfg, o.logger)
	if err != nil {
		return nil, err
	}
	base := []Option{
		WithKeyMap(km),
		WithScripts(rt),
		WithHistory(cfg.Editor.History),
		WithModeOptions(
			mode.WithFatal(cfg.FatalKinds()...),
			mode.WithScriptDepth(cfg.Editor.ScriptDepth),
		),
	}
	return New(text, append(base, opts...)...), nil
}

// Reload rebuilds the key map and script runtime from cfg and swaps them
// in. On error the editor keeps its current key map and scripts. Held
// keys and any pending operation are dropped.
func (e *Editor) Reload(cfg *config.Config) error {
	km, err := BuildKeyMap(cfg)
	if err != nil {
		return fmt.Errorf("reload keymap: %w", err)
	}
	rt, err := LoadScripts(cfg, e.logger)
	if err != nil {
		return fmt.Errorf("reload scripts: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	old := e.ctx.scripts
	e.keymap = km
	e.ctx.keys = km
	e.ctx.scripts = rt
	e.pending = ""
	e.mode.Reset(e.ctx)
	if old != nil {
		old.Close()
	}
	e.logger.Info("editor: reloaded %d script handlers", len(rt.Handles()))
	return nil
}
