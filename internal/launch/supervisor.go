package launch

import (
	"context"
	"errors"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"github.com/five82/hylauncher/internal/config"
	"github.com/five82/hylauncher/internal/install"
	"github.com/five82/hylauncher/internal/settings"
	"github.com/five82/hylauncher/internal/syncutil"
)

// Status messages emitted during a launch.
const (
	LaunchingMessage = "Launching game..."
	FailedMessage    = "Launch failed!"
)

// State is a step of the launch sequence.
type State int

const (
	StateIdle State = iota
	StateSaving
	StateLaunching
	StateFailed
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSaving:
		return "saving"
	case StateLaunching:
		return "launching"
	case StateFailed:
		return "failed"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

func (s State) busy() bool {
	return s == StateSaving || s == StateLaunching
}

// SettingsStore is the part of settings.Store the Supervisor depends on.
type SettingsStore interface {
	Current() settings.Settings
	Save(settings.Settings) error
}

// Options wires a Supervisor. Fs, Clock, Sink and Spawner fall back to the
// OS filesystem, the real clock, LogSink and ExecSpawner.
type Options struct {
	Settings SettingsStore
	Layout   config.Layout
	Fs       afero.Fs
	Spawner  Spawner
	Sink     StatusSink
	Clock    clockwork.Clock
	Delay    time.Duration
	// Exit is called once the client has started.
	Exit func()
}

// Supervisor runs the launch sequence and owns its state. It is safe for
// concurrent use; at most one launch is in flight at a time.
type Supervisor struct {
	store   SettingsStore
	layout  config.Layout
	fs      afero.Fs
	spawner Spawner
	sink    StatusSink
	clock   clockwork.Clock
	delay   time.Duration
	exit    func()

	mu        syncutil.Mutex
	state     State
	installed bool
	probed    bool
}

// NewSupervisor returns an idle Supervisor.
func NewSupervisor(opts Options) *Supervisor {
	s := &Supervisor{
		store:   opts.Settings,
		layout:  opts.Layout,
		fs:      opts.Fs,
		spawner: opts.Spawner,
		sink:    opts.Sink,
		clock:   opts.Clock,
		delay:   opts.Delay,
		exit:    opts.Exit,
	}
	if s.fs == nil {
		s.fs = afero.NewOsFs()
	}
	if s.spawner == nil {
		s.spawner = ExecSpawner{}
	}
	if s.sink == nil {
		s.sink = LogSink{}
	}
	if s.clock == nil {
		s.clock = clockwork.NewRealClock()
	}
	if s.delay < 0 {
		s.delay = 0
	}
	return s
}

// State returns the current launch state.
func (s *Supervisor) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Launch saves the current settings, waits the configured delay and starts
// the client. On success the state becomes Terminated and the exit func is
// called. A failed spawn leaves the Supervisor in Failed and returns a
// *SpawnError; a new Launch may be issued from there. Cancelling ctx
// before the spawn returns to Idle.
func (s *Supervisor) Launch(ctx context.Context) error {
	if err := s.begin(); err != nil {
		return err
	}
	s.sink.SetAffordanceEnabled(false)
	s.sink.SetStatusMessage(LaunchingMessage, SeverityInfo)

	current := s.store.Current()
	if err := s.store.Save(current); err != nil {
		var verr *settings.ValidationError
		if errors.As(err, &verr) {
			log.Error().Err(err).Msg("launching with settings that failed validation")
		}
	}
	_ = install.EnsureDirs(s.fs, s.layout.UserDataDir)

	cmd := Build(current, s.layout)
	s.setState(StateLaunching)
	s.sink.SetProgressVisible(true)

	if err := s.wait(ctx); err != nil {
		s.cancelled()
		return err
	}

	proc, err := s.spawner.Spawn(cmd)
	if err != nil {
		var serr *SpawnError
		if !errors.As(err, &serr) {
			serr = &SpawnError{Path: cmd.Path, Err: err}
		}
		log.Error().Err(serr).Str("dir", cmd.Dir).Msg("failed to launch client")
		s.setState(StateFailed)
		s.sink.SetStatusMessage(FailedMessage, SeverityError)
		s.sink.SetAffordanceEnabled(true)
		s.sink.SetProgressVisible(false)
		return serr
	}

	s.setState(StateTerminated)
	log.Info().Int("pid", proc.PID).Str("client", cmd.Path).Msg("client started")
	if s.exit != nil {
		s.exit()
	}
	return nil
}

// begin is the re-entry guard: only Idle and Failed may start a launch.
func (s *Supervisor) begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case s.state == StateTerminated:
		return ErrTerminated
	case s.state.busy():
		return ErrLaunchInProgress
	}
	s.state = StateSaving
	return nil
}

func (s *Supervisor) wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.delay == 0 {
		return nil
	}
	timer := s.clock.NewTimer(s.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.Chan():
		return nil
	}
}

func (s *Supervisor) cancelled() {
	s.mu.Lock()
	s.state = StateIdle
	installed, probed := s.installed, s.probed
	s.mu.Unlock()

	s.sink.SetProgressVisible(false)
	s.sink.SetAffordanceEnabled(installed || !probed)
	if probed {
		s.sink.SetStatusMessage(install.StatusMessage(installed), idleSeverity(installed))
	}
}

func (s *Supervisor) setState(state State) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

// SyncInstallation reports the latest probe result. While idle, the
// affordance and status follow it whenever it changes. A failure message
// stays until the installation state changes; nothing is emitted during a
// launch.
func (s *Supervisor) SyncInstallation(installed bool) {
	s.mu.Lock()
	changed := !s.probed || s.installed != installed
	s.installed, s.probed = installed, true
	emit := changed && (s.state == StateIdle || s.state == StateFailed)
	if emit {
		s.state = StateIdle
	}
	s.mu.Unlock()

	if !emit {
		return
	}
	s.sink.SetAffordanceEnabled(installed)
	s.sink.SetStatusMessage(install.StatusMessage(installed), idleSeverity(installed))
}

// SaveSettings stores settings edited by the user. Validation errors are
// returned; write failures are already logged by the store and do not
// fail the call. Saving is refused while a launch is in flight, and a
// Launch issued during the save waits for it.
func (s *Supervisor) SaveSettings(next settings.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case s.state == StateTerminated:
		return ErrTerminated
	case s.state.busy():
		return ErrLaunchInProgress
	}

	err := s.store.Save(next)
	var verr *settings.ValidationError
	if errors.As(err, &verr) {
		return err
	}
	return nil
}

func idleSeverity(installed bool) Severity {
	if installed {
		return SeverityInfo
	}
	return SeverityWarning
}
