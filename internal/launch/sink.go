package launch

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Severity classifies a status message.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "info"
	}
}

// StatusSink receives user-facing updates from the Supervisor. Calls are
// fire-and-forget; implementations must not block.
type StatusSink interface {
	SetProgressVisible(visible bool)
	SetAffordanceEnabled(enabled bool)
	SetStatusMessage(text string, sev Severity)
}

// LogSink reports status through the global logger. It is used when there
// is no interactive screen.
type LogSink struct{}

func (LogSink) SetProgressVisible(visible bool) {
	log.Debug().Bool("visible", visible).Msg("progress")
}

func (LogSink) SetAffordanceEnabled(enabled bool) {
	log.Debug().Bool("enabled", enabled).Msg("launch affordance")
}

func (LogSink) SetStatusMessage(text string, sev Severity) {
	log.WithLevel(sev.level()).Msg(text)
}

func (s Severity) level() zerolog.Level {
	switch s {
	case SeverityWarning:
		return zerolog.WarnLevel
	case SeverityError:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
