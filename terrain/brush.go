package terrain

import (
	"math"

	"github.com/MobRulesGames/tabletop/config"
)

type Tool string

const (
	Raise Tool = "raise"
	Lower Tool = "lower"
)

// ParseTool maps anything other than "lower" to Raise.
func ParseTool(s string) Tool {
	if Tool(s) == Lower {
		return Lower
	}
	return Raise
}

// Brush is the sculpting tool. Its tool and size persist across edits; it
// holds no reference to the field it edits.
type Brush struct {
	tool Tool
	size int

	minSize, maxSize int
	step             int
}

func NewBrush(minSize, maxSize, step int) *Brush {
	if minSize < 1 {
		minSize = 1
	}
	if maxSize < minSize {
		maxSize = minSize
	}
	if step < 1 {
		step = 1
	}
	return &Brush{
		tool:    Raise,
		size:    minSize,
		minSize: minSize,
		maxSize: maxSize,
		step:    step,
	}
}

func NewBrushFromSettings(s *config.Settings) *Brush {
	return NewBrush(s.MinBrush, s.MaxBrush, s.HeightStep)
}

func (b *Brush) Tool() Tool { return b.tool }
func (b *Brush) Size() int  { return b.size }

func (b *Brush) SetTool(tool string) {
	b.tool = ParseTool(tool)
}

// SetSize rounds n to the nearest integer and clamps it into the brush range.
// NaN leaves the size unchanged.
func (b *Brush) SetSize(n float64) {
	if math.IsNaN(n) {
		return
	}
	r := math.Round(n)
	switch {
	case r < float64(b.minSize):
		b.size = b.minSize
	case r > float64(b.maxSize):
		b.size = b.maxSize
	default:
		b.size = int(r)
	}
}

func (b *Brush) Increase() {
	b.SetSize(float64(b.size + 1))
}

func (b *Brush) Decrease() {
	b.SetSize(float64(b.size - 1))
}

// radii splits size-1 cells around the center. Even sizes lean toward the
// positive axis.
func radii(size int) (neg, pos int) {
	neg = (size - 1) / 2
	pos = size - 1 - neg
	return neg, pos
}

// Footprint lists, in row-major order, the in-bounds cells the brush would
// touch when centered on (cx, cy). The hover preview must use this same
// function so it never disagrees with ApplyAt.
func (b *Brush) Footprint(f *Field, cx, cy int) []Cell {
	neg, pos := radii(b.size)
	var cells []Cell
	for y := cy - neg; y <= cy+pos; y++ {
		for x := cx - neg; x <= cx+pos; x++ {
			if f.InBounds(x, y) {
				cells = append(cells, Cell{X: x, Y: y})
			}
		}
	}
	return cells
}

// ApplyAt raises or lowers every footprint cell by one step, clamped into the
// field's limits. Only cells whose height actually changes are written and
// returned; the bool reports whether there were any.
func (b *Brush) ApplyAt(f *Field, cx, cy int) ([]Cell, bool) {
	delta := b.step
	if b.tool == Lower {
		delta = -delta
	}
	var changed []Cell
	for _, c := range b.Footprint(f, cx, cy) {
		cur := f.Get(c.X, c.Y)
		next := f.Limits().Clamp(cur + delta)
		if next == cur {
			continue
		}
		f.Set(c.X, c.Y, next)
		changed = append(changed, c)
	}
	return changed, len(changed) > 0
}
