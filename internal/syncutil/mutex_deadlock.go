//go:build deadlock

// Package syncutil wraps the sync mutexes so a deadlock detector can be
// swapped in with -tags=deadlock.
package syncutil

import (
	"time"

	deadlock "github.com/sasha-s/go-deadlock"
)

// DeadlockEnabled reports whether the deadlock detector is compiled in.
const DeadlockEnabled = true

func init() {
	deadlock.Opts.DeadlockTimeout = 10 * time.Second
}

// Mutex is a mutual exclusion lock.
type Mutex struct {
	deadlock.Mutex
}

// RWMutex is a reader/writer mutual exclusion lock.
type RWMutex struct {
	deadlock.RWMutex
}
