// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package logger wraps zerolog.Logger with the constructors and
// context-aware helpers the cardsync binaries share.
//
// Logger embeds zerolog.Logger, so the full zerolog API (Debug, Info,
// Warn, Error, ...) is available on *Logger directly. Request-scoped
// loggers travel through context and come back out via FromContext or
// FromRequest.
package logger

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// clientLogFileName is where CLI binaries write their log stream, next
// to the executable. Stdout stays reserved for command output.
const clientLogFileName = "cardsync.log"

// Logger embeds zerolog.Logger to expose the full zerolog API while
// leaving room for cardsync-specific helpers.
type Logger struct {
	zerolog.Logger
}

// configure applies the process-wide zerolog settings every cardsync
// logger relies on: Debug as the global floor and the caller field
// rendered as the fully-qualified function name under the "func" key.
func configure() {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	zerolog.CallerFieldName = "func"
	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		return runtime.FuncForPC(pc).Name()
	}
}

// NewLogger builds the JSON stdout logger used by long-running
// processes. The role label ("cardsync-server", ...) tags every entry
// so logs from different binaries can be told apart after aggregation.
func NewLogger(role string) *Logger {
	configure()

	l := zerolog.New(os.Stdout).With().
		Str("role", role).
		Timestamp().
		Caller().
		Logger()

	return &Logger{l}
}

// NewClientLogger builds the logger for CLI binaries. Their stdout
// carries machine-readable command output, so log entries go to
// cardsync.log beside the executable instead; when that file cannot be
// opened the stream falls back to stderr.
func NewClientLogger(role string) *Logger {
	configure()

	out := clientLogWriter()
	l := zerolog.New(out).With().
		Str("role", role).
		Timestamp().
		Caller().
		Logger()

	return &Logger{l}
}

func clientLogWriter() *os.File {
	execPath, err := os.Executable()
	if err != nil {
		return os.Stderr
	}

	logPath := filepath.Join(filepath.Dir(execPath), clientLogFileName)
	logFile, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return os.Stderr
	}

	return logFile
}

// Nop returns a *Logger that discards everything. Tests use it to keep
// assertions free of log noise.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// GetChildLogger returns a new *Logger inheriting all fields of the
// receiver; the child can be enriched without touching the parent.
func (l *Logger) GetChildLogger() *Logger {
	return &Logger{l.With().Logger()}
}

// FromRequest returns the request-scoped *Logger that middleware stored
// in the request context.
func FromRequest(r *http.Request) *Logger {
	return &Logger{*log.Ctx(r.Context())}
}

// FromContext returns the *Logger stored in ctx. When ctx carries no
// logger, zerolog hands back its global logger, so the result is never
// nil.
func FromContext(ctx context.Context) *Logger {
	return &Logger{*log.Ctx(ctx)}
}
