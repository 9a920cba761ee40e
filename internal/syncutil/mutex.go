//go:build !deadlock

// Package syncutil wraps the sync mutexes so a deadlock detector can be
// swapped in with -tags=deadlock.
package syncutil

import "sync"

// DeadlockEnabled reports whether the deadlock detector is compiled in.
const DeadlockEnabled = false

// Mutex is a mutual exclusion lock.
type Mutex struct {
	sync.Mutex
}

// RWMutex is a reader/writer mutual exclusion lock.
type RWMutex struct {
	sync.RWMutex
}
