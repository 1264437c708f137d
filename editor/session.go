// Package editor ties the terrain engine together for one board: brush
// strokes, biome selection and the redraw traffic they cause.
package editor

import (
	"errors"
	"fmt"

	"github.com/MobRulesGames/tabletop/base"
	"github.com/MobRulesGames/tabletop/biome"
	"github.com/MobRulesGames/tabletop/config"
	"github.com/MobRulesGames/tabletop/logging"
	"github.com/MobRulesGames/tabletop/perspective"
	"github.com/MobRulesGames/tabletop/refresh"
	"github.com/MobRulesGames/tabletop/terrain"
)

// DrawFunc renders one tile. It is handed the tile as it stands when the
// redraw actually happens, not when the edit was made.
type DrawFunc func(perspective.Tile)

type Session struct {
	field     *terrain.Field
	brush     *terrain.Brush
	scheduler *refresh.Scheduler
	gen       *biome.Generator
	proj      *perspective.Projection
	draw      DrawFunc

	stroking   bool
	lastStroke terrain.Cell
}

// NewSession builds a board from s. Redraws go through platform and end up
// in draw.
func NewSession(s *config.Settings, platform refresh.Platform, draw DrawFunc) (*Session, error) {
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("editor.NewSession: %w: %w", terrain.ErrConfiguration, err)
	}
	field, err := terrain.NewFromSettings(s)
	if err != nil {
		return nil, err
	}
	sess := &Session{
		field: field,
		brush: terrain.NewBrushFromSettings(s),
		gen:   biome.NewGenerator(terrain.LimitsFromSettings(s)),
		proj:  perspective.NewFromSettings(s, 0, 0),
		draw:  draw,
	}
	sess.scheduler = refresh.NewSchedulerFromSettings(platform, sess.redraw, s)
	return sess, nil
}

func (s *Session) redraw(x, y int) {
	if s.draw == nil || !s.field.InBounds(x, y) {
		return
	}
	s.draw(s.proj.Tile(s.field, x, y))
}

func (s *Session) Field() *terrain.Field                { return s.field }
func (s *Session) Projection() *perspective.Projection { return s.proj }
func (s *Session) Scheduler() *refresh.Scheduler       { return s.scheduler }

func (s *Session) HeightAt(x, y int) int {
	return s.field.Get(x, y)
}

func (s *Session) SetTool(tool string)    { s.brush.SetTool(tool) }
func (s *Session) Tool() terrain.Tool     { return s.brush.Tool() }
func (s *Session) SetBrushSize(n float64) { s.brush.SetSize(n) }
func (s *Session) IncreaseBrush()         { s.brush.Increase() }
func (s *Session) DecreaseBrush()         { s.brush.Decrease() }
func (s *Session) BrushSize() int         { return s.brush.Size() }

func (s *Session) Footprint(x, y int) []terrain.Cell {
	return s.brush.Footprint(s.field, x, y)
}

// BeginStroke starts a drag at (x, y) and applies the brush there.
func (s *Session) BeginStroke(x, y int) bool {
	s.stroking = true
	s.lastStroke = terrain.Cell{X: x, Y: y}
	return s.apply(x, y)
}

// StrokeAt continues a drag. The brush is applied once per cell entered; a
// pointer that wiggles inside one cell does not keep raising it.
func (s *Session) StrokeAt(x, y int) bool {
	c := terrain.Cell{X: x, Y: y}
	if !s.stroking || c == s.lastStroke {
		return false
	}
	s.lastStroke = c
	return s.apply(x, y)
}

func (s *Session) apply(x, y int) bool {
	changed, ok := s.brush.ApplyAt(s.field, x, y)
	if ok {
		s.scheduler.Enqueue(changed...)
	}
	return ok
}

func (s *Session) Stroking() bool {
	return s.stroking
}

// EndStroke commits the working heights and redraws anything still pending.
func (s *Session) EndStroke() {
	if s.stroking {
		s.stroking = false
		s.field.CommitWorkingToBase()
	}
	s.scheduler.FlushNow()
}

func (s *Session) PointerLeave() {
	s.EndStroke()
}

func (s *Session) FocusLost() {
	s.EndStroke()
}

// SelectBiome fills an untouched board with the named biome. It reports
// whether the board changed; edited boards are left alone, and failures are
// logged rather than returned.
func (s *Session) SelectBiome(key string, opts biome.Options) bool {
	if opts.ElevationUnit == 0 {
		opts.ElevationUnit = s.proj.ElevationUnit()
	}
	grid, generated, err := s.gen.ApplyIfFlat(s.field, key, opts)
	switch {
	case errors.Is(err, biome.ErrGenerationInProgress):
		logging.Info("biome selection ignored", "biome", key, "reason", err)
		return false
	case err != nil:
		logging.Error("biome selection failed", "biome", key, "seed", opts.Seed, "err", err)
		return false
	case !generated:
		logging.Info("biome selection skipped, board has edits", "biome", key)
		return false
	}
	if err := s.field.Adopt(grid); err != nil {
		logging.Error("biome grid rejected", "biome", key, "err", err)
		return false
	}
	s.redrawAll()
	return true
}

// ScaleHint is the elevation unit that suits key best.
func (s *Session) ScaleHint(key string) float64 {
	return s.gen.ScaleHint(key)
}

// SetElevationUnit changes the pixels per height level and repositions every
// tile.
func (s *Session) SetElevationUnit(unit float64) {
	s.proj.SetElevationUnit(unit)
	s.redrawAll()
}

func (s *Session) Resize(cols, rows int) error {
	if err := s.field.Resize(cols, rows); err != nil {
		return err
	}
	s.redrawAll()
	return nil
}

func (s *Session) ResetAll(h int) error {
	if err := s.field.ResetAll(h); err != nil {
		return err
	}
	s.redrawAll()
	return nil
}

func (s *Session) redrawAll() {
	s.scheduler.Enqueue(s.field.Cells()...)
}

// Save writes the board's heights to path as json.
func (s *Session) Save(path string) error {
	return base.SaveJson(path, s.field)
}

// Load replaces the board with the one saved at path.
func (s *Session) Load(path string) error {
	var f terrain.Field
	if err := base.LoadJson(path, &f); err != nil {
		return err
	}
	s.stroking = false
	s.field = &f
	s.redrawAll()
	return nil
}
