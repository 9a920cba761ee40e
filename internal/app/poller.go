package app

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/five82/hylauncher/internal/state"
)

const defaultPollInterval = 5 * time.Second

// Poller refreshes the installation snapshot on a fixed cadence and
// whenever a nudge arrives.
type Poller struct {
	Store      *state.Store
	Probe      func() bool
	ClientPath string
	Interval   time.Duration
	Nudges     <-chan struct{} // optional, e.g. install.Watcher.Changes
	Clock      clockwork.Clock // nil uses the real clock
}

// Run probes immediately and then on every tick or nudge until ctx is
// cancelled.
func (p Poller) Run(ctx context.Context) error {
	interval := p.Interval
	if interval <= 0 {
		interval = defaultPollInterval
	}
	clock := p.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	ticker := clock.NewTicker(interval)
	defer ticker.Stop()

	for {
		p.refresh(clock.Now())
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.Chan():
		case <-p.Nudges:
		}
	}
}

func (p Poller) refresh(now time.Time) {
	prev := p.Store.Snapshot()
	installed := p.Probe()
	p.Store.Update(installed, p.ClientPath, now)

	if !prev.Probed || prev.Installed != installed {
		log.Info().Bool("installed", installed).Str("client", p.ClientPath).Msg("installation state")
	}
}
