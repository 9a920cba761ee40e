package launch

import (
	"os/exec"
)

// Process identifies a started client.
type Process struct {
	PID int
}

// Spawner starts the client without waiting for it.
type Spawner interface {
	Spawn(cmd Command) (Process, error)
}

// ExecSpawner starts the client as an independent OS process. The child
// inherits the environment, has no stdio attached and is never waited on,
// so it keeps running after the launcher exits.
type ExecSpawner struct{}

// Spawn starts cmd. Failures are returned as *SpawnError.
func (ExecSpawner) Spawn(cmd Command) (Process, error) {
	//nolint:gosec // the client path comes from the installation layout
	c := exec.Command(cmd.Path, cmd.Args...)
	c.Dir = cmd.Dir
	detach(c)

	if err := c.Start(); err != nil {
		return Process{}, &SpawnError{Path: cmd.Path, Err: err}
	}
	pid := c.Process.Pid
	_ = c.Process.Release()
	return Process{PID: pid}, nil
}
