package launch

import (
	"github.com/five82/hylauncher/internal/config"
	"github.com/five82/hylauncher/internal/settings"
)

// Command is a fully resolved client invocation.
type Command struct {
	Path string   // client executable
	Args []string // flag/value pairs, in the order the client expects
	Dir  string   // working directory
}

// Argv returns the executable followed by its arguments.
func (c Command) Argv() []string {
	argv := make([]string, 0, len(c.Args)+1)
	argv = append(argv, c.Path)
	return append(argv, c.Args...)
}

// Build derives the client invocation from the settings and layout. It has
// no side effects; the user data directory is expected to exist already.
func Build(s settings.Settings, layout config.Layout) Command {
	return Command{
		Path: layout.ClientPath,
		Args: []string{
			"--app-dir", layout.GameDir,
			"--user-dir", layout.UserDataDir,
			"--java-exec", s.JavaExecutablePath,
			"--auth-mode", "offline",
			"--uuid", s.PlayerUUID,
			"--name", s.Nickname,
		},
		Dir: layout.BaseDir,
	}
}
