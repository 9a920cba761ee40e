// Package config loads the launcher's own configuration and derives the
// installation's directory layout.
//
// # Overview
//
// The launcher reads a small TOML file, launcher.toml, that says where the
// game installation lives and how the launcher should behave. The file is
// optional: every field has a default, so a fresh install next to the
// launcher binary works without any configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use $XDG_CONFIG_HOME/hylauncher/launcher.toml
//  3. If the file doesn't exist, fall back to defaults
//  4. If the file exists but fields are missing/empty/invalid, use defaults per field
//
// # Default Values
//
//   - base_dir: directory containing the launcher executable
//   - data_dir: <base_dir>/launcher
//   - client_executable: HytaleClient.exe (Windows) or HytaleClient
//   - launch_delay: 1.5s (clamped to 0..10s)
//   - poll_interval: 5s (minimum 1s)
//   - theme: Dracula
//   - log_level: error
//
// # TOML Format
//
//	base_dir = "~/Games/Hytale"
//	launch_delay = "500ms"
//	theme = "Slate"
//
// # Layout
//
// Config.Layout returns the fixed directory layout the rest of the launcher
// works against:
//
//	<base>/package/game/latest                      game install
//	<base>/package/game/latest/Client/<client exe>  client executable
//	<base>/UserData                                 user data passed to the client
//	<data_dir>/Launcher-settings.json               user settings
//	<data_dir>/error-logs/launcher_errors.log       append-only error log
//
// # Error Handling
//
// Load returns errors for path expansion failures, unreadable files and TOML
// parse errors. A missing file is not an error.
package config
