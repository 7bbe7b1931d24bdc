// Package config loads editor configuration.
//
// Configuration is read from a TOML or YAML file, chosen by extension,
// applied over Default, then overridden by SIX_* environment variables:
//
//	SIX_LOG_LEVEL        log.level
//	SIX_LOG_FILE         log.file
//	SIX_HISTORY          editor.history
//	SIX_SCRIPT_DEPTH     editor.script_depth
//	SIX_SCRIPT_TIMEOUT   scripts.timeout
//	SIX_SCRIPT_PATHS     scripts.paths, separated by the OS list separator
//
// A TOML file looks like:
//
//	[editor]
//	history = 500
//	fatal = ["OutOfBounds"]
//
//	[scripts]
//	paths = ["~/.config/six/wrap.lua"]
//	timeout = "500ms"
//
//	[keymap.normal]
//	Q = "move(word-head, 2) delete"
//
// Watcher reports changes to the file so the editor can reload it.
package config
