package launch

import (
	"errors"
	"fmt"
)

var (
	// ErrLaunchInProgress is returned when a launch or save is requested
	// while another launch is saving or waiting to spawn.
	ErrLaunchInProgress = errors.New("launch already in progress")
	// ErrTerminated is returned once the client has been started.
	ErrTerminated = errors.New("launcher has handed off to the client")
)

// SpawnError reports a client process that could not be started.
type SpawnError struct {
	Path string
	Err  error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("start client %s: %v", e.Path, e.Err)
}

func (e *SpawnError) Unwrap() error { return e.Err }
