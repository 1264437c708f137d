package terrain

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/MobRulesGames/tabletop/config"
	"github.com/MobRulesGames/tabletop/logging"
)

// Field is the elevation grid of a board. It keeps two snapshots of identical
// shape: 'base' holds committed heights and 'working' is the live edit
// buffer. All reads and writes through Get/Set go to 'working'.
type Field struct {
	rows, cols    int
	defaultHeight int
	limits        Limits

	base    Grid
	working Grid
}

// New allocates a rows x cols field with both grids at defaultHeight, rounded
// and clamped into limits.
func New(rows, cols int, defaultHeight float64, limits Limits) (*Field, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("terrain.New: grid must be at least 1x1, got %dx%d: %w", cols, rows, ErrConfiguration)
	}
	if math.IsNaN(defaultHeight) || math.IsInf(defaultHeight, 0) {
		return nil, fmt.Errorf("terrain.New: default height %v is not finite: %w", defaultHeight, ErrConfiguration)
	}
	if !limits.valid() {
		return nil, fmt.Errorf("terrain.New: bad limits %+v: %w", limits, ErrConfiguration)
	}
	def := clampFloat(defaultHeight, limits)
	return &Field{
		rows:          rows,
		cols:          cols,
		defaultHeight: def,
		limits:        limits,
		base:          MakeGrid(rows, cols, def),
		working:       MakeGrid(rows, cols, def),
	}, nil
}

func NewFromSettings(s *config.Settings) (*Field, error) {
	return New(s.Rows, s.Cols, float64(s.DefaultHeight), LimitsFromSettings(s))
}

func (f *Field) Rows() int          { return f.rows }
func (f *Field) Cols() int          { return f.cols }
func (f *Field) DefaultHeight() int { return f.defaultHeight }
func (f *Field) Limits() Limits     { return f.limits }

func (f *Field) InBounds(x, y int) bool {
	return x >= 0 && x < f.cols && y >= 0 && y < f.rows && f.working.inBounds(x, y)
}

// Get reads the working height at (x, y). Out-of-range reads return the
// default height; pointer coordinates routinely overshoot during fast drags.
func (f *Field) Get(x, y int) int {
	if !f.InBounds(x, y) {
		return f.defaultHeight
	}
	return f.working[y][x]
}

// Sample is Get for raw pointer coordinates. Anything that is not an exact,
// in-range integer reads as the default height.
func (f *Field) Sample(fx, fy float64) int {
	if math.IsNaN(fx) || math.IsNaN(fy) || fx != math.Trunc(fx) || fy != math.Trunc(fy) {
		return f.defaultHeight
	}
	if fx < 0 || fy < 0 || fx >= float64(f.cols) || fy >= float64(f.rows) {
		return f.defaultHeight
	}
	return f.Get(int(fx), int(fy))
}

// Set writes h into the working grid. Out-of-range writes are dropped.
func (f *Field) Set(x, y, h int) {
	if !f.InBounds(x, y) {
		return
	}
	f.working[y][x] = f.limits.Clamp(h)
}

// BaseAt reads the committed height at (x, y).
func (f *Field) BaseAt(x, y int) int {
	if !f.InBounds(x, y) || !f.base.inBounds(x, y) {
		return f.defaultHeight
	}
	return f.base[y][x]
}

// Resize reshapes the field in place. The rectangle shared by the old and new
// shapes is copied from 'base' into both new grids, so the working copy
// inherits committed edits; uncommitted working edits are discarded.
func (f *Field) Resize(newCols, newRows int) error {
	if newRows <= 0 || newCols <= 0 {
		return fmt.Errorf("terrain.Resize: grid must be at least 1x1, got %dx%d: %w", newCols, newRows, ErrConfiguration)
	}
	base := MakeGrid(newRows, newCols, f.defaultHeight)
	working := MakeGrid(newRows, newCols, f.defaultHeight)
	copyOverlap(base, f.base)
	copyOverlap(working, f.base)

	logging.Debug("resized height field",
		"from_cols", f.cols, "from_rows", f.rows,
		"to_cols", newCols, "to_rows", newRows)

	f.rows, f.cols = newRows, newCols
	f.base, f.working = base, working
	return nil
}

func (f *Field) CommitWorkingToBase() {
	f.base = f.working.Clone()
}

func (f *Field) LoadBaseIntoWorking() {
	f.working = f.base.Clone()
}

// ResetAll refills both grids with h (clamped). If the recorded dimensions are
// unusable the shape of 'base' is used instead; when that is not rectangular
// and non-empty either, ErrConfiguration is returned and nothing changes.
func (f *Field) ResetAll(h int) error {
	rows, cols := f.rows, f.cols
	if rows <= 0 || cols <= 0 {
		if f.base.Rows() == 0 || f.base.Cols() == 0 || !f.base.Rectangular() {
			return fmt.Errorf("terrain.ResetAll: no usable dimensions (recorded %dx%d): %w", cols, rows, ErrConfiguration)
		}
		rows, cols = f.base.Rows(), f.base.Cols()
		logging.Warn("recovered height field dimensions from base grid",
			"rows", rows, "cols", cols)
	}
	if !f.limits.valid() {
		f.limits = DefaultLimits()
	}
	h = f.limits.Clamp(h)
	f.rows, f.cols = rows, cols
	f.base = MakeGrid(rows, cols, h)
	f.working = MakeGrid(rows, cols, h)
	return nil
}

// IsConsistent reports whether both grids exist and have exactly rows x cols
// entries.
func (f *Field) IsConsistent() bool {
	if f.base == nil || f.working == nil || f.rows <= 0 || f.cols <= 0 {
		return false
	}
	return f.base.HasShape(f.rows, f.cols) && f.working.HasShape(f.rows, f.cols)
}

// IsPristine reports whether every working cell still holds the default
// height.
func (f *Field) IsPristine() bool {
	return f.working.IsUniform(f.defaultHeight)
}

// Working returns a deep copy of the working grid.
func (f *Field) Working() Grid { return f.working.Clone() }

// Base returns a deep copy of the committed grid.
func (f *Field) Base() Grid { return f.base.Clone() }

// Adopt replaces the field's contents with g, which must match the field's
// shape. Every height is clamped, written to 'working' and then committed.
func (f *Field) Adopt(g Grid) error {
	if !g.HasShape(f.rows, f.cols) {
		return fmt.Errorf("terrain.Adopt: grid is %dx%d, field is %dx%d: %w",
			g.Cols(), g.Rows(), f.cols, f.rows, ErrConfiguration)
	}
	working := g.Clone()
	for _, row := range working {
		for x, v := range row {
			row[x] = f.limits.Clamp(v)
		}
	}
	f.working = working
	f.CommitWorkingToBase()
	return nil
}

// Cells lists every coordinate of the field in row-major order.
func (f *Field) Cells() []Cell {
	cells := make([]Cell, 0, f.rows*f.cols)
	for y := 0; y < f.rows; y++ {
		for x := 0; x < f.cols; x++ {
			cells = append(cells, Cell{X: x, Y: y})
		}
	}
	return cells
}

type fieldJson struct {
	Rows          int  `json:"rows"`
	Cols          int  `json:"cols"`
	DefaultHeight int  `json:"default_height"`
	MinHeight     int  `json:"min_height"`
	MaxHeight     int  `json:"max_height"`
	Step          int  `json:"step"`
	Base          Grid `json:"base"`
	Working       Grid `json:"working"`
}

func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(fieldJson{
		Rows:          f.rows,
		Cols:          f.cols,
		DefaultHeight: f.defaultHeight,
		MinHeight:     f.limits.Min,
		MaxHeight:     f.limits.Max,
		Step:          f.limits.Step,
		Base:          f.base,
		Working:       f.working,
	})
}

func (f *Field) UnmarshalJSON(data []byte) error {
	var fj fieldJson
	if err := json.Unmarshal(data, &fj); err != nil {
		return err
	}
	loaded := Field{
		rows:          fj.Rows,
		cols:          fj.Cols,
		defaultHeight: fj.DefaultHeight,
		limits:        Limits{Min: fj.MinHeight, Max: fj.MaxHeight, Step: fj.Step},
		base:          fj.Base,
		working:       fj.Working,
	}
	if !loaded.limits.valid() || !loaded.IsConsistent() {
		return fmt.Errorf("terrain: inconsistent field snapshot (%dx%d): %w", fj.Cols, fj.Rows, ErrConfiguration)
	}
	*f = loaded
	return nil
}
