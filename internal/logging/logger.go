// Package logging adapts zerolog to the twoindex.Logger interface.
package logging

import (
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/2index-ninja/sdk-go/pkg/twoindex"
)

// Logger writes twoindex log entries through a zerolog.Logger.
type Logger struct {
	log zerolog.Logger
}

var _ twoindex.Logger = (*Logger)(nil)

// New returns a Logger writing JSON lines to w at the given level.
func New(w io.Writer, level zerolog.Level) *Logger {
	return &Logger{log: zerolog.New(w).Level(level).With().Timestamp().Logger()}
}

// NewConsole returns a human readable Logger for terminal output.
func NewConsole(w io.Writer, verbose bool) *Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	writer := zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}

	return &Logger{log: zerolog.New(writer).Level(level).With().Timestamp().Logger()}
}

// FromZerolog wraps an existing zerolog.Logger.
func FromZerolog(log zerolog.Logger) *Logger {
	return &Logger{log: log}
}

func (l *Logger) Debug(msg string, fields map[string]interface{}) {
	l.log.Debug().Fields(fields).Msg(msg)
}

func (l *Logger) Info(msg string, fields map[string]interface{}) {
	l.log.Info().Fields(fields).Msg(msg)
}

func (l *Logger) Warn(msg string, fields map[string]interface{}) {
	l.log.Warn().Fields(fields).Msg(msg)
}

func (l *Logger) Error(msg string, fields map[string]interface{}) {
	l.log.Error().Fields(fields).Msg(msg)
}
