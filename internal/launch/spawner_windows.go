//go:build windows

package launch

import (
	"os/exec"
	"syscall"
)

// detach prevents a console window from flashing up for the client.
func detach(c *exec.Cmd) {
	c.SysProcAttr = &syscall.SysProcAttr{HideWindow: true}
}
