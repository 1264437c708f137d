package logging

import (
	"context"
	"io"
	"log/slog"

	"github.com/runningwild/glop/glog"
)

type stdLogInterceptor interface {
	Printf(format string, v ...interface{})
}

type Logger interface {
	glog.Logger
	stdLogInterceptor
}

type tabletopLogger struct {
	glog.Logger
}

func (log *tabletopLogger) Printf(msg string, args ...interface{}) {
	log.Logger.Log(context.Background(), slog.LevelInfo, msg, args...)
}

var _ Logger = (*tabletopLogger)(nil)

// All of the package-level helpers go through 'defaultLogger' so that one
// level setting governs everything the terrain engine emits.
var defaultLogger *tabletopLogger

func init() {
	defaultLogger = &tabletopLogger{
		Logger: glog.New(&glog.Opts{
			Level: slog.LevelInfo,
		}),
	}
}

func DefaultLogger() Logger {
	return defaultLogger
}

func Trace(msg string, args ...interface{}) {
	defaultLogger.Log(context.Background(), glog.LevelTrace, msg, args...)
}

func Debug(msg string, args ...interface{}) {
	defaultLogger.Log(context.Background(), slog.LevelDebug, msg, args...)
}

func Info(msg string, args ...interface{}) {
	defaultLogger.Log(context.Background(), slog.LevelInfo, msg, args...)
}

func Warn(msg string, args ...interface{}) {
	defaultLogger.Log(context.Background(), slog.LevelWarn, msg, args...)
}

func Error(msg string, args ...interface{}) {
	defaultLogger.Log(context.Background(), slog.LevelError, msg, args...)
}

// Call this to redirect all logging output to the given io.Writer. A cleanup
// function that undoes the redirect is returned.
func Redirect(newOut io.Writer) func() {
	old := defaultLogger
	defaultLogger = &tabletopLogger{
		Logger: glog.WithRedirect(old.Logger, newOut),
	}
	return func() {
		defaultLogger = old
	}
}
