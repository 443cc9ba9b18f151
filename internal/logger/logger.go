// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package logger provides a thin wrapper around zerolog.Logger that adds
// convenience constructors and context-aware helpers used throughout the
// sync engine.
//
// The Logger type embeds zerolog.Logger so all standard zerolog methods
// (Debug, Info, Warn, Error, Fatal, etc.) are available directly on *Logger.
// There is no package-level logger: a *Logger is built once from [Options]
// and passed explicitly to every component.
package logger

import (
	"context"
	"io"
	"net/http"
	"os"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is a thin wrapper around zerolog.Logger.
// Embedding zerolog.Logger exposes the full zerolog API while allowing the
// application to add helper methods without modifying the upstream type.
type Logger struct {
	zerolog.Logger
}

// Options selects where and how much the engine logs.
type Options struct {
	// Enabled toggles logging. A disabled logger discards everything.
	Enabled bool

	// Level is a zerolog level name ("debug", "info", ...). Empty means debug.
	Level string

	// Sink receives the JSON log lines. It takes precedence over File.
	Sink io.Writer

	// File is the path of a size-rotated log file. Used when Sink is nil;
	// when both are empty logs go to stdout.
	File string

	// MaxSizeMB is the rotation threshold of File. Zero means 10 MB.
	MaxSizeMB int
}

// NewLogger constructs a production-ready *Logger for the given role label
// (e.g. "syncd", "engine") that writes JSON to os.Stdout at debug level.
//
// Every entry carries a "role" field, a timestamp, and a "func" caller field
// that records the fully-qualified function name (instead of the default
// file:line format) for easier log navigation.
func NewLogger(role string) *Logger {
	return New(role, Options{Enabled: true})
}

// New constructs a *Logger for role from opts. Returns [Nop] when logging is
// disabled.
func New(role string, opts Options) *Logger {
	if !opts.Enabled {
		return Nop()
	}

	level := zerolog.DebugLevel
	if opts.Level != "" {
		if parsed, err := zerolog.ParseLevel(opts.Level); err == nil {
			level = parsed
		}
	}

	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		return runtime.FuncForPC(pc).Name() // return function name
	}
	zerolog.CallerFieldName = "func"

	logger := zerolog.New(sinkFor(opts)).
		Level(level).
		With().
		Str("role", role).
		Timestamp().
		Caller().
		Logger()

	return &Logger{logger}
}

func sinkFor(opts Options) io.Writer {
	switch {
	case opts.Sink != nil:
		return opts.Sink
	case opts.File != "":
		maxSize := opts.MaxSizeMB
		if maxSize <= 0 {
			maxSize = 10
		}
		return &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    maxSize,
			MaxBackups: 3,
			Compress:   true,
		}
	default:
		return os.Stdout
	}
}

// Nop returns a *Logger that discards all log output.
// It is intended for use in tests and other contexts where logging is
// undesirable or would produce noise.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// GetChildLogger returns a new *Logger that inherits all fields of the
// receiver. The child logger can be enriched with additional context fields
// without affecting the parent logger.
func (l *Logger) GetChildLogger() *Logger {
	return &Logger{l.With().Logger()}
}

// WithStr returns a child logger carrying an extra string field.
func (l *Logger) WithStr(key, value string) *Logger {
	return &Logger{l.With().Str(key, value).Logger()}
}

// FromRequest extracts the zerolog.Logger stored in the request's context by
// zerolog's log.Ctx helper and returns it as a *Logger.
func FromRequest(r *http.Request) *Logger {
	return &Logger{*log.Ctx(r.Context())}
}

// FromContext extracts the zerolog.Logger stored in ctx by zerolog's log.Ctx
// helper and returns it as a *Logger.
//
// If no logger has been attached to ctx, zerolog returns its disabled default
// logger, so this function never returns nil.
func FromContext(ctx context.Context) *Logger {
	return &Logger{*log.Ctx(ctx)}
}

// FromContextOr returns the logger attached to ctx, or fallback when ctx
// carries none.
func FromContextOr(ctx context.Context, fallback *Logger) *Logger {
	l := log.Ctx(ctx)
	if l.GetLevel() == zerolog.Disabled && fallback != nil {
		return fallback
	}
	return &Logger{*l}
}
