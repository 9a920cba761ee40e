// Package app provides the orchestration layer for the launcher.
//
// # Overview
//
// This package wires together configuration, logging, settings, the
// installation probe, the launch supervisor and the UI. It is the
// composition root where every dependency is initialized and connected.
//
// # Startup
//
//  1. Load launcher.toml (XDG config home) and apply command line overrides
//  2. Create the data, error log and user data directories
//  3. Point the global logger at the append-only error log
//  4. Load the player's settings, falling back to defaults per field
//  5. Run headless or start the TUI
//
// # Components
//
//   - app.go: Run, the headless launch and the interactive wiring
//   - poller.go: Background loop that probes the installation
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │ Initialize everything
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()          Read launcher.toml
//	       ├─────> install.EnsureDirs()   Required directories
//	       ├─────> logging.Setup()        Error log
//	       ├─────> settings.Store.Load()  Player settings
//	       └─────> errgroup
//	                ├─> Poller.Run()      Probe on tick or nudge
//	                ├─> Watcher.Run()     fsnotify nudges
//	                └─> Program.Run()     TUI (blocks)
//
//	Launch:
//	┌─────────────────────────────────────────┐
//	│ ui launchCmd goroutine                  │
//	│  └─> Supervisor.Launch()                │
//	│       ├─> ProgramSink  (status, spinner)│
//	│       ├─> Spawner.Spawn()               │
//	│       └─> Program.Quit() on success     │
//	└─────────────────────────────────────────┘
//
// # Headless Mode
//
// With Options.Headless the TUI is skipped. The installation is probed once,
// status goes to the log and stderr, and the client is launched after the
// configured delay. A missing client returns ErrClientNotFound.
//
// # Error Handling
//
// Fatal errors (returned from Run):
//   - launcher.toml exists but cannot be read or parsed
//   - headless launch failed or the client is missing
//   - the TUI could not start
//
// Recoverable errors (logged, startup continues):
//   - a required directory cannot be created
//   - the error log cannot be opened
//   - the settings file is missing or corrupt
//   - the filesystem watcher is unavailable (polling still runs)
//
// # Dependencies
//
//   - config: launcher.toml and the installation layout
//   - install: probe, watcher and background images
//   - launch: supervisor, command builder and process spawner
//   - settings: persisted player settings
//   - state: thread-safe installation snapshot
//   - ui: terminal user interface
package app
