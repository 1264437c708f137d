package logging_test

import (
	"log/slog"
	"strings"
	"testing"

	"github.com/MobRulesGames/tabletop/logging"
	"github.com/MobRulesGames/tabletop/logging/logtesting"
	"github.com/runningwild/glop/glog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBracketScopesTheLevel(t *testing.T) {
	t.Run("error hides trace", func(t *testing.T) {
		lines := logtesting.CollectOutput(func() {
			logging.Bracket(slog.LevelError, func() {
				logging.Trace("flushed redraw queue", "cells", 3)
			})
		})
		assert.Empty(t, lines)
	})

	t.Run("trace shows everything until it returns", func(t *testing.T) {
		lines := logtesting.CollectOutput(func() {
			logging.TraceBracket(func() {
				logging.Trace("flushed redraw queue", "cells", 3)
				logging.Debug("biome generated", "biome", "hills")
			})
			logging.Debug("after the bracket")
		})
		joined := strings.Join(lines, "\n")
		assert.Contains(t, joined, "flushed redraw queue")
		assert.Contains(t, joined, "biome generated")
		assert.NotContains(t, joined, "after the bracket")
	})
}

func TestParseLevel(t *testing.T) {
	for name, want := range map[string]slog.Level{
		"trace":  glog.LevelTrace,
		"TRACE":  glog.LevelTrace,
		"debug":  slog.LevelDebug,
		"info":   slog.LevelInfo,
		"warn":   slog.LevelWarn,
		" error": slog.LevelError,
	} {
		got, err := logging.ParseLevel(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := logging.ParseLevel("loud")
	assert.Error(t, err)
}
