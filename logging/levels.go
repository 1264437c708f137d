package logging

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/runningwild/glop/glog"
)

// Changes the verbosity of the default logger. The returned function restores
// the previous logger.
func SetLoggingLevel(lvl slog.Level) func() {
	old := defaultLogger
	defaultLogger = &tabletopLogger{
		Logger: glog.Relevel(old.Logger, lvl),
	}
	return func() {
		defaultLogger = old
	}
}

// Run 'fn' in a context where log messages at 'lvl' and above are propagated.
func Bracket(lvl slog.Level, fn func()) {
	defer SetLoggingLevel(lvl)()
	fn()
}

func TraceBracket(fn func()) {
	Bracket(glog.LevelTrace, fn)
}

// ParseLevel understands the slog level names plus "trace".
func ParseLevel(name string) (slog.Level, error) {
	if strings.EqualFold(strings.TrimSpace(name), "trace") {
		return glog.LevelTrace, nil
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return 0, fmt.Errorf("unknown log level %q: %w", name, err)
	}
	return lvl, nil
}
