// Copyright (c) 2015-2017 The btcsuite developers
// Copyright (c) 2024 The Flokicoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package log defines the Logger interface every package in this module
// logs through, along with a slog-backed implementation and a rotating
// file sink. Packages default to a disabled logger and only produce
// output once a caller supplies one via UseLogger, matching the
// leveled-subsystem-logger convention used throughout the ecosystem this
// module was grown from.
package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/jrick/logrotate/rotator"
)

// Level is a logging priority level understood by Logger implementations,
// from the most to the least verbose.
type Level uint32

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelCritical
	LevelOff
)

var levelStrings = map[Level]string{
	LevelTrace:    "TRC",
	LevelDebug:    "DBG",
	LevelInfo:     "INF",
	LevelWarn:     "WRN",
	LevelError:    "ERR",
	LevelCritical: "CRT",
	LevelOff:      "OFF",
}

// String returns the tag used to prefix log lines at this level.
func (l Level) String() string {
	if s, ok := levelStrings[l]; ok {
		return s
	}
	return "INF"
}

// LevelFromString returns a level based on the input string s. If the
// input can't be interpreted as a valid log level, LevelInfo and false are
// returned.
func LevelFromString(s string) (Level, bool) {
	switch s {
	case "trace", "trc":
		return LevelTrace, true
	case "debug", "dbg":
		return LevelDebug, true
	case "info", "inf":
		return LevelInfo, true
	case "warn", "wrn":
		return LevelWarn, true
	case "error", "err":
		return LevelError, true
	case "critical", "crt":
		return LevelCritical, true
	case "off":
		return LevelOff, true
	default:
		return LevelInfo, false
	}
}

// Logger is the interface every package in this module logs through. It is
// satisfied by the slog-backed implementation in this package, but callers
// may supply their own via UseLogger, for example to route a subsystem's
// output somewhere else entirely.
type Logger interface {
	Tracef(format string, args ...interface{})
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Criticalf(format string, args ...interface{})

	// Level returns the current logging level.
	Level() Level

	// SetLevel changes the logging level.
	SetLevel(level Level)
}

// Disabled is a Logger whose output is discarded. It is the default for
// every package-level logger until a caller provides a real one via
// UseLogger.
var Disabled Logger = &slogLogger{level: LevelOff, out: io.Discard, subsystem: ""}

// slogLogger is the default Logger implementation, backed by log/slog.
type slogLogger struct {
	level     Level
	out       io.Writer
	subsystem string
}

// NewSlogLogger returns a Logger that writes tagged, leveled lines for
// subsystem to w.
func NewSlogLogger(subsystem string, w io.Writer) Logger {
	return &slogLogger{level: LevelInfo, out: w, subsystem: subsystem}
}

func (l *slogLogger) Level() Level         { return l.level }
func (l *slogLogger) SetLevel(level Level) { l.level = level }

func (l *slogLogger) log(level Level, format string, args ...interface{}) {
	if level < l.level || l.level == LevelOff {
		return
	}
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	slog.New(slog.NewTextHandler(l.out, &slog.HandlerOptions{Level: toSlogLevel(level)})).
		Log(nil, toSlogLevel(level), msg, "subsystem", l.subsystem, "level", level.String())
}

func (l *slogLogger) Tracef(format string, args ...interface{})    { l.log(LevelTrace, format, args...) }
func (l *slogLogger) Debugf(format string, args ...interface{})    { l.log(LevelDebug, format, args...) }
func (l *slogLogger) Infof(format string, args ...interface{})     { l.log(LevelInfo, format, args...) }
func (l *slogLogger) Warnf(format string, args ...interface{})     { l.log(LevelWarn, format, args...) }
func (l *slogLogger) Errorf(format string, args ...interface{})    { l.log(LevelError, format, args...) }
func (l *slogLogger) Criticalf(format string, args ...interface{}) { l.log(LevelCritical, format, args...) }

func toSlogLevel(l Level) slog.Level {
	switch l {
	case LevelTrace:
		return slog.Level(-5)
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	case LevelCritical:
		return slog.Level(9)
	default:
		return slog.Level(10)
	}
}

// NewRotatingFileWriter opens (creating if necessary) a log file at path
// that rotates once it exceeds maxSizeMB megabytes, keeping up to
// maxRolls old rolls, using jrick/logrotate the way long-running node
// daemons in this ecosystem do.
func NewRotatingFileWriter(path string, maxSizeMB, maxRolls int) (io.WriteCloser, error) {
	r, err := rotator.New(path, int64(maxSizeMB*1024), false, maxRolls)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Stderr is a convenience Logger that writes to os.Stderr at LevelInfo,
// handy for command-line tools that have not wired up rotation.
func Stderr(subsystem string) Logger {
	return NewSlogLogger(subsystem, os.Stderr)
}
