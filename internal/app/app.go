package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/five82/hylauncher/internal/config"
	"github.com/five82/hylauncher/internal/install"
	"github.com/five82/hylauncher/internal/launch"
	"github.com/five82/hylauncher/internal/logging"
	"github.com/five82/hylauncher/internal/prefs"
	"github.com/five82/hylauncher/internal/settings"
	"github.com/five82/hylauncher/internal/state"
	"github.com/five82/hylauncher/internal/ui"
)

// ErrClientNotFound is returned by a headless run when the client
// executable is missing.
var ErrClientNotFound = errors.New("client not found")

// Options configure the launcher.
type Options struct {
	ConfigPath string // empty uses the XDG default launcher.toml
	BaseDir    string // overrides base_dir from launcher.toml
	LogLevel   string // overrides log_level from launcher.toml
	Headless   bool   // launch once without the TUI

	Fs      afero.Fs       // nil uses the OS filesystem
	Spawner launch.Spawner // nil uses launch.ExecSpawner
}

// launcher bundles what both run modes share.
type launcher struct {
	cfg    config.Config
	layout config.Layout
	fs     afero.Fs
	store  *settings.Store
}

func (l launcher) probe() bool {
	return install.Probe(l.fs, l.layout)
}

func (l launcher) supervisor(spawner launch.Spawner, sink launch.StatusSink, exit func()) *launch.Supervisor {
	return launch.NewSupervisor(launch.Options{
		Settings: l.store,
		Layout:   l.layout,
		Fs:       l.fs,
		Spawner:  spawner,
		Sink:     sink,
		Delay:    l.cfg.LaunchDelay,
		Exit:     exit,
	})
}

// Run boots the launcher until the client starts, the user quits or the
// context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load launcher config: %w", err)
	}
	cfg = cfg.WithBaseDir(opts.BaseDir)
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}

	fsys := opts.Fs
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	layout := cfg.Layout()

	// The error log comes first so directory failures end up in it.
	var extra []io.Writer
	if opts.Headless {
		extra = append(extra, logging.NewConsoleWriter())
	}
	closer, err := logging.Setup(fsys, layout.ErrorLogPath, cfg.LogLevel, extra...)
	if err != nil {
		log.Error().Err(err).Msg("error log unavailable")
	} else {
		defer closer.Close()
	}

	// Missing directories are logged and tolerated.
	_ = install.EnsureDirs(fsys, layout.RequiredDirs()...)

	store := settings.NewStore(fsys, layout.SettingsPath, settings.Defaults(layout, settings.CurrentUsername()))
	store.Load()

	l := launcher{cfg: cfg, layout: layout, fs: fsys, store: store}
	if opts.Headless {
		return runHeadless(ctx, l, opts.Spawner)
	}
	return runInteractive(ctx, l, opts.Spawner)
}

// runHeadless probes once and launches immediately.
func runHeadless(ctx context.Context, l launcher, spawner launch.Spawner) error {
	sup := l.supervisor(spawner, launch.LogSink{}, nil)

	installed := l.probe()
	sup.SyncInstallation(installed)
	if !installed {
		return fmt.Errorf("%w: %s", ErrClientNotFound, l.layout.ClientPath)
	}
	if err := sup.Launch(ctx); err != nil {
		return fmt.Errorf("launch client: %w", err)
	}
	return nil
}

// runInteractive runs the TUI alongside the installation poller and the
// filesystem watcher. Whichever finishes first cancels the others.
func runInteractive(ctx context.Context, l launcher, spawner launch.Spawner) error {
	prefsPath := prefs.Path(l.layout.DataDir)
	theme := l.cfg.Theme
	if p := prefs.Load(l.fs, prefsPath); p.Theme != "" {
		theme = p.Theme
	}

	g, gctx := errgroup.WithContext(ctx)
	runCtx, cancel := context.WithCancel(gctx)
	defer cancel()

	snapshots := &state.Store{}
	poller := Poller{
		Store:      snapshots,
		Probe:      l.probe,
		ClientPath: l.layout.ClientPath,
		Interval:   l.cfg.PollInterval,
	}

	if _, ok := l.fs.(*afero.OsFs); ok {
		watcher, err := install.NewWatcher(l.layout)
		if err != nil {
			log.Warn().Err(err).Msg("installation watcher unavailable, polling only")
		} else {
			poller.Nudges = watcher.Changes()
			g.Go(func() error { return watcher.Run(runCtx) })
		}
	}

	sink := &ui.ProgramSink{}
	var program *tea.Program
	sup := l.supervisor(spawner, sink, func() { program.Quit() })

	program = ui.NewProgram(ui.Options{
		Context:   runCtx,
		Launcher:  sup,
		Settings:  l.store,
		Store:     snapshots,
		Layout:    l.layout,
		Fs:        l.fs,
		ThemeName: theme,
		PrefsPath: prefsPath,
		Banners:   banners(l.fs, l.layout.Backgrounds),
	})
	sink.Attach(program)

	g.Go(func() error { return poller.Run(runCtx) })
	g.Go(func() error {
		defer cancel()
		if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			return fmt.Errorf("run ui: %w", err)
		}
		return nil
	})
	return g.Wait()
}

// banners turns the background images into banner titles.
func banners(fsys afero.Fs, dir string) []string {
	names := install.Backgrounds(fsys, dir)
	titles := make([]string, 0, len(names))
	for _, name := range names {
		if title := install.BannerTitle(name); title != "" {
			titles = append(titles, title)
		}
	}
	return titles
}
