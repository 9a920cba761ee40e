//go:build unix

package launch

import (
	"os/exec"
	"syscall"
)

// detach moves the client into its own process group so terminal signals
// aimed at the launcher do not reach it.
func detach(c *exec.Cmd) {
	c.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}
