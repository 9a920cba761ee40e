package settings

import (
	"errors"
	"fmt"
	"strings"
)

// errTrailingData rejects a settings file with content after the JSON object.
var errTrailingData = errors.New("unexpected data after settings object")

// ReadError reports a settings file that could not be read or parsed. It is
// recovered by falling back to defaults.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read settings %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// WriteError reports a failed save. The in-memory settings stay authoritative.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write settings %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// ValidationError lists the settings keys that failed validation.
type ValidationError struct {
	Fields []string
	Err    error
}

func (e *ValidationError) Error() string {
	return "invalid settings: " + strings.Join(e.Fields, ", ")
}

func (e *ValidationError) Unwrap() error { return e.Err }
