package config

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/dshills/six/internal/input/micro"
	"github.com/dshills/six/internal/input/mode"
)

// Config is the complete editor configuration.
type Config struct {
	Editor  EditorConfig `toml:"editor" yaml:"editor"`
	Log     LogConfig    `toml:"log" yaml:"log"`
	Scripts ScriptConfig `toml:"scripts" yaml:"scripts"`

	// Keymap maps a mode name to key sequences and the op notation they
	// run. An empty notation removes a default binding.
	Keymap map[string]map[string]string `toml:"keymap" yaml:"keymap"`

	// path is the file the configuration was loaded from.
	path string
}

// EditorConfig configures the editing core.
type EditorConfig struct {
	// History is the maximum number of undo entries. Zero uses the
	// history default.
	History int `toml:"history" yaml:"history"`

	// ScriptDepth limits nesting of scripts and register replays.
	ScriptDepth int `toml:"script_depth" yaml:"script_depth"`

	// Fatal lists error kinds that stop a batch, "OutOfBounds".
	Fatal []string `toml:"fatal" yaml:"fatal"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is debug, info, warn or error.
	Level string `toml:"level" yaml:"level"`

	// File receives log output. Empty logs to stderr.
	File string `toml:"file" yaml:"file"`
}

// ScriptConfig configures the Lua runtime.
type ScriptConfig struct {
	// Paths are script files or directories of .lua files.
	Paths []string `toml:"paths" yaml:"paths"`

	// Timeout bounds each script call, "500ms".
	Timeout string `toml:"timeout" yaml:"timeout"`

	// InstructionLimit bounds the editor calls of one script call.
	InstructionLimit int64 `toml:"instruction_limit" yaml:"instruction_limit"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Editor: EditorConfig{
			History:     1000,
			ScriptDepth: mode.DefaultScriptDepth,
		},
		Log: LogConfig{
			Level: "info",
		},
		Scripts: ScriptConfig{
			Timeout:          "1s",
			InstructionLimit: 100_000,
		},
		Keymap: make(map[string]map[string]string),
	}
}

// Path returns the file the configuration was loaded from, or "".
func (c *Config) Path() string {
	return c.path
}

// ScriptTimeout returns the parsed script timeout.
func (c *Config) ScriptTimeout() time.Duration {
	d, err := time.ParseDuration(c.Scripts.Timeout)
	if err != nil {
		return 0
	}
	return d
}

// FatalKinds returns the parsed fatal error kinds. Unknown names are
// skipped; Validate reports them.
func (c *Config) FatalKinds() []mode.ErrorKind {
	var out []mode.ErrorKind
	for _, name := range c.Editor.Fatal {
		if k, ok := mode.ParseErrorKind(name); ok {
			out = append(out, k)
		}
	}
	return out
}

// Bindings calls fn for every configured binding in a stable order.
func (c *Config) Bindings(fn func(tag, keys, ops string) error) error {
	tags := make([]string, 0, len(c.Keymap))
	for tag := range c.Keymap {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	for _, tag := range tags {
		keys := make([]string, 0, len(c.Keymap[tag]))
		for k := range c.Keymap[tag] {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if err := fn(tag, k, c.Keymap[tag][k]); err != nil {
				return err
			}
		}
	}
	return nil
}

var logLevels = map[string]bool{"debug": true, "info": true, "warn": true, "warning": true, "error": true}

// Validate checks every field and returns all problems joined.
func (c *Config) Validate() error {
	var errs []error
	bad := func(field, format string, args ...any) {
		errs = append(errs, &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if c.Editor.History < 0 {
		bad("editor.history", "must not be negative, got %d", c.Editor.History)
	}
	if c.Editor.ScriptDepth < 1 {
		bad("editor.script_depth", "must be at least 1, got %d", c.Editor.ScriptDepth)
	}
	for _, name := range c.Editor.Fatal {
		if _, ok := mode.ParseErrorKind(name); !ok {
			bad("editor.fatal", "unknown error kind %q", name)
		}
	}
	if !logLevels[c.Log.Level] {
		bad("log.level", "unknown level %q", c.Log.Level)
	}
	if d, err := time.ParseDuration(c.Scripts.Timeout); err != nil || d <= 0 {
		bad("scripts.timeout", "must be a positive duration, got %q", c.Scripts.Timeout)
	}
	if c.Scripts.InstructionLimit < 0 {
		bad("scripts.instruction_limit", "must not be negative, got %d", c.Scripts.InstructionLimit)
	}
	_ = c.Bindings(func(tag, keys, ops string) error {
		field := "keymap." + tag
		if _, ok := micro.ParseTag(tag); !ok {
			bad(field, "unknown mode %q", tag)
			return nil
		}
		if keys == "" {
			bad(field, "empty key sequence")
		}
		if ops == "" {
			return nil
		}
		if _, err := micro.ParseBatch(ops); err != nil {
			bad(field+"."+keys, "%v", err)
		}
		return nil
	})
	return errors.Join(errs...)
}
