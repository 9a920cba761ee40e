package app

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/five82/hylauncher/internal/state"
)

func waitFor(t *testing.T, store *state.Store, cond func(state.Snapshot) bool) state.Snapshot {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if snap := store.Snapshot(); cond(snap) {
			return snap
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met; last snapshot %#v", store.Snapshot())
	return state.Snapshot{}
}

func TestPoller_ProbesImmediately(t *testing.T) {
	store := &state.Store{}
	clock := clockwork.NewFakeClock()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := Poller{Store: store, Probe: func() bool { return true }, ClientPath: "/app/c", Interval: time.Minute, Clock: clock}
	go func() { _ = p.Run(ctx) }()

	snap := waitFor(t, store, func(s state.Snapshot) bool { return s.Probed })
	if !snap.Installed {
		t.Fatalf("Installed = false, want true")
	}
	if snap.ClientPath != "/app/c" {
		t.Fatalf("ClientPath = %q, want /app/c", snap.ClientPath)
	}
	if !snap.LastChecked.Equal(clock.Now()) {
		t.Fatalf("LastChecked = %v, want fake clock time %v", snap.LastChecked, clock.Now())
	}
}

func TestPoller_RefreshesOnTickAndNudge(t *testing.T) {
	store := &state.Store{}
	clock := clockwork.NewFakeClock()
	nudges := make(chan struct{}, 1)
	var installed atomic.Bool

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	p := Poller{
		Store:    store,
		Probe:    installed.Load,
		Interval: 5 * time.Second,
		Nudges:   nudges,
		Clock:    clock,
	}
	go func() { done <- p.Run(ctx) }()

	waitFor(t, store, func(s state.Snapshot) bool { return s.Probed && !s.Installed })

	installed.Store(true)
	nudges <- struct{}{}
	waitFor(t, store, func(s state.Snapshot) bool { return s.Installed })

	installed.Store(false)
	clock.Advance(5 * time.Second)
	waitFor(t, store, func(s state.Snapshot) bool { return !s.Installed })

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned %v, want nil", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
