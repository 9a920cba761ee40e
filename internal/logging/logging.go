// Package logging configures the global zerolog logger to write the
// launcher's append-only error log.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// TimestampFormat is the timestamp layout of every log line.
const TimestampFormat = "2006-01-02 15:04:05,000"

// DefaultLevel is used when the configured level does not parse.
const DefaultLevel = zerolog.ErrorLevel

// ConsoleLevel is the least severe level extra writers receive, whatever
// the error log level is.
const ConsoleLevel = zerolog.InfoLevel

// Setup points the global logger at the error log file at path, appending to
// it and never truncating. The file only receives events at level and above;
// extra writers receive everything from ConsoleLevel up. The returned closer
// releases the file.
func Setup(fs afero.Fs, path, level string, extra ...io.Writer) (io.Closer, error) {
	if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	file, err := fs.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open error log: %w", err)
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano
	fileLevel := ParseLevel(level)
	loggerLevel := fileLevel
	writers := []io.Writer{filtered(NewFileWriter(file), fileLevel)}
	for _, w := range extra {
		loggerLevel = min(fileLevel, ConsoleLevel)
		writers = append(writers, filtered(w, loggerLevel))
	}

	log.Logger = New(zerolog.MultiLevelWriter(writers...), loggerLevel)
	return file, nil
}

func filtered(w io.Writer, level zerolog.Level) zerolog.LevelWriter {
	return &zerolog.FilteredLevelWriter{
		Writer: zerolog.LevelWriterAdapter{Writer: w},
		Level:  level,
	}
}

// New builds a timestamped logger over w.
func New(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// ParseLevel maps a config string to a zerolog level, defaulting to error.
func ParseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		return DefaultLevel
	}
	return lvl
}

// NewFileWriter renders events as "<timestamp> - <SEVERITY> - <message>"
// lines, followed by any fields as key=value pairs.
func NewFileWriter(out io.Writer) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:        out,
		NoColor:    true,
		PartsOrder: []string{zerolog.TimestampFieldName, zerolog.LevelFieldName, zerolog.MessageFieldName},
		FormatTimestamp: func(i any) string {
			s, ok := i.(string)
			if !ok {
				return fmt.Sprint(i)
			}
			t, err := time.Parse(time.RFC3339Nano, s)
			if err != nil {
				return s
			}
			return t.Local().Format(TimestampFormat)
		},
		FormatLevel: func(i any) string {
			s, _ := i.(string)
			if s == "" {
				return "-"
			}
			return "- " + strings.ToUpper(s) + " -"
		},
	}
}

// NewConsoleWriter is the coloured stderr writer used in headless mode.
func NewConsoleWriter() zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
}
