package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of environment overrides.
const EnvPrefix = "SIX_"

// Format is a configuration file syntax.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatOf returns the format for a file path by extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
}

// Load reads path over the defaults, applies environment overrides and
// validates the result. An empty path skips the file. A missing file is
// not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		default:
			format, err := FormatOf(path)
			if err != nil {
				return nil, err
			}
			if err := Decode(cfg, data, format); err != nil {
				var pe *ParseError
				if errors.As(err, &pe) {
					pe.Path = path
				}
				return nil, err
			}
		}
		cfg.path = path
	}
	if err := ApplyEnv(cfg, os.LookupEnv); err != nil {
		return nil, err
	}
	cfg.expandPaths()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Decode parses data in format into cfg. Fields absent from data keep
// their current values.
func Decode(cfg *Config, data []byte, format Format) error {
	switch format {
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(cfg); err != nil {
			pe := &ParseError{Path: "<toml>", Err: err}
			var de *toml.DecodeError
			if errors.As(err, &de) {
				pe.Line, _ = de.Position()
			}
			return pe
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return &ParseError{Path: "<yaml>", Err: err}
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	if cfg.Keymap == nil {
		cfg.Keymap = make(map[string]map[string]string)
	}
	return nil
}

// LookupFunc reads one environment variable.
type LookupFunc func(key string) (string, bool)

// ApplyEnv overrides cfg from SIX_* variables.
func ApplyEnv(cfg *Config, lookup LookupFunc) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(EnvPrefix + name); ok {
			*dst = v
		}
	}
	num := func(name string, dst *int) error {
		v, ok := lookup(EnvPrefix + name)
		if !ok {
			return nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, name, err)
		}
		*dst = n
		return nil
	}

	str("LOG_LEVEL", &cfg.Log.Level)
	str("LOG_FILE", &cfg.Log.File)
	str("SCRIPT_TIMEOUT", &cfg.Scripts.Timeout)
	if err := num("HISTORY", &cfg.Editor.History); err != nil {
		return err
	}
	if err := num("SCRIPT_DEPTH", &cfg.Editor.ScriptDepth); err != nil {
		return err
	}
	if v, ok := lookup(EnvPrefix + "SCRIPT_PATHS"); ok {
		cfg.Scripts.Paths = filepath.SplitList(v)
	}
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)
	return nil
}

// expandPaths resolves "~/" in file paths.
func (c *Config) expandPaths() {
	c.Log.File = expandHome(c.Log.File)
	for i, p := range c.Scripts.Paths {
		c.Scripts.Paths[i] = expandHome(p)
	}
}

func expandHome(p string) string {
	if !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, p[2:])
}
