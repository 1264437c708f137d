// Package terrain holds the elevation grid of the tabletop and the brush that
// sculpts it.
package terrain

import (
	"errors"
	"math"

	"github.com/MobRulesGames/tabletop/config"
)

// ErrConfiguration is returned for invalid dimensions or options at
// construction time. It is fatal to that call only.
var ErrConfiguration = errors.New("terrain configuration error")

// Cell is a grid coordinate. X indexes columns and Y indexes rows.
type Cell struct {
	X, Y int
}

// Limits bounds the heights a Field may hold.
type Limits struct {
	Min, Max int
	// Step is the smallest height increment, used by brushes and by
	// quantization.
	Step int
}

func DefaultLimits() Limits {
	return Limits{Min: -10, Max: 10, Step: 1}
}

func LimitsFromSettings(s *config.Settings) Limits {
	return Limits{Min: s.MinHeight, Max: s.MaxHeight, Step: s.HeightStep}
}

func (l Limits) Clamp(h int) int {
	if h < l.Min {
		return l.Min
	}
	if h > l.Max {
		return l.Max
	}
	return h
}

// Bound is the largest magnitude that fits on both sides of zero.
func (l Limits) Bound() int {
	b := l.Max
	if -l.Min < b {
		b = -l.Min
	}
	if b < 0 {
		return 0
	}
	return b
}

func (l Limits) valid() bool {
	return l.Min <= l.Max && l.Step > 0
}

func clampFloat(h float64, l Limits) int {
	return l.Clamp(int(math.Round(h)))
}
