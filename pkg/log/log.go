// pkg/log/log.go
// Copyright(c) 2024 airportsim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package log provides the structured logger shared by the CLI, the
// Scheduler, and the Simulator: a thin wrapper around log/slog that
// rotates its backing file with lumberjack and tags each record, at every
// level, with the caller's call stack.
package log

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

type Logger struct {
	*slog.Logger
	LogFile string
	Start   time.Time
}

// New constructs a Logger writing JSON records to dir/run.log, rotated
// by lumberjack. dir defaults to "airportsim-logs"; level is one of
// "debug", "info", "warn", "error".
func New(level string, dir string) *Logger {
	if dir == "" {
		dir = "airportsim-logs"
	}

	w := &lumberjack.Logger{
		Filename:   filepath.Join(dir, "run.log"),
		MaxSize:    32, // MB
		MaxBackups: 1,
	}
	if level == "debug" {
		w.MaxSize = 512
	}

	lvl := slog.LevelInfo
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		fmt.Fprintf(os.Stderr, "%s: invalid log level", level)
	}

	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})
	return &Logger{
		Logger:  slog.New(h),
		LogFile: w.Filename,
		Start:   time.Now(),
	}
}

// A nil *Logger discards Debug/Info/Warn/Error calls and their f
// variants, so a loader that was handed no logger doesn't need its own
// nil checks at every call site. With is the exception: it requires a
// non-nil Logger.

func (l *Logger) enabled(level slog.Level) bool {
	return l != nil && l.Logger.Enabled(nil, level)
}

func (l *Logger) Debug(msg string, args ...any) {
	if l.enabled(slog.LevelDebug) {
		l.Logger.Debug(msg, append([]any{slog.Any("callstack", Callstack(nil))}, args...)...)
	}
}

func (l *Logger) Debugf(format string, args ...any) {
	if l.enabled(slog.LevelDebug) {
		l.Logger.Debug(fmt.Sprintf(format, args...), slog.Any("callstack", Callstack(nil)))
	}
}

func (l *Logger) Info(msg string, args ...any) {
	if l.enabled(slog.LevelInfo) {
		l.Logger.Info(msg, append([]any{slog.Any("callstack", Callstack(nil))}, args...)...)
	}
}

func (l *Logger) Infof(format string, args ...any) {
	if l.enabled(slog.LevelInfo) {
		l.Logger.Info(fmt.Sprintf(format, args...), slog.Any("callstack", Callstack(nil)))
	}
}

func (l *Logger) Warn(msg string, args ...any) {
	if l != nil {
		l.Logger.Warn(msg, append([]any{slog.Any("callstack", Callstack(nil))}, args...)...)
	}
}

func (l *Logger) Warnf(format string, args ...any) {
	if l != nil {
		l.Logger.Warn(fmt.Sprintf(format, args...), slog.Any("callstack", Callstack(nil)))
	}
}

func (l *Logger) Error(msg string, args ...any) {
	if l != nil {
		l.Logger.Error(msg, append([]any{slog.Any("callstack", Callstack(nil))}, args...)...)
	}
}

func (l *Logger) Errorf(format string, args ...any) {
	if l != nil {
		l.Logger.Error(fmt.Sprintf(format, args...), slog.Any("callstack", Callstack(nil)))
	}
}

func (l *Logger) With(args ...any) *Logger {
	return &Logger{
		Logger:  l.Logger.With(args...),
		LogFile: l.LogFile,
		Start:   l.Start,
	}
}

// StackFrame is one entry of a call stack attached to a log record.
type StackFrame struct {
	File     string `json:"file"`
	Line     int    `json:"line"`
	Function string `json:"function"`
}

func (f StackFrame) String() string {
	return fmt.Sprintf("%s:%d:%s", f.File, f.Line, f.Function)
}

const modulePkgPrefix = "github.com/airportsim/surfaceops/pkg"

// Callstack walks the goroutine stack above the logging wrapper that
// calls it, capped at maxCallstackFrames, stopping early at main.main.
// buf is reused when it has spare capacity.
func Callstack(buf []StackFrame) []StackFrame {
	const maxCallstackFrames = 16
	var pcs [maxCallstackFrames]uintptr
	n := runtime.Callers(3, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])

	buf = buf[:0]
	for {
		frame, more := frames.Next()
		fn := strings.TrimPrefix(frame.Function, modulePkgPrefix)
		fn = strings.TrimPrefix(fn, "main.")
		buf = append(buf, StackFrame{
			File:     filepath.Base(frame.File),
			Line:     frame.Line,
			Function: fn,
		})
		if !more || frame.Function == "main.main" {
			return buf
		}
	}
}
