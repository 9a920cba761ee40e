// Package install inspects the local game installation.
package install

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"github.com/five82/hylauncher/internal/config"
)

// Status messages shown before any launch attempt.
const (
	ReadyMessage    = "Ready to play"
	NotFoundMessage = "Client not found!"
)

// DirectoryError reports a required directory that could not be created.
type DirectoryError struct {
	Path string
	Err  error
}

func (e *DirectoryError) Error() string {
	return fmt.Sprintf("create directory %s: %v", e.Path, e.Err)
}

func (e *DirectoryError) Unwrap() error { return e.Err }

// Probe reports whether the client executable exists. It performs a single
// stat and caches nothing.
func Probe(fs afero.Fs, layout config.Layout) bool {
	info, err := fs.Stat(layout.ClientPath)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// StatusMessage returns the idle status text for an installation state.
func StatusMessage(installed bool) string {
	if installed {
		return ReadyMessage
	}
	return NotFoundMessage
}

// EnsureDirs creates every missing directory. It is idempotent and keeps
// going past failures; each failure is logged and all of them are returned
// joined, so callers can carry on best-effort.
func EnsureDirs(fs afero.Fs, dirs ...string) error {
	var errs []error
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			derr := &DirectoryError{Path: dir, Err: err}
			log.Error().Err(derr).Msg("failed to create required directory")
			errs = append(errs, derr)
		}
	}
	return errors.Join(errs...)
}
