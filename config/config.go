package config

import (
	"fmt"
	"math"
	"time"

	"github.com/MobRulesGames/tabletop/base"
)

// Settings holds every tunable of the terrain engine. Nothing in the engine
// reads these from a global; callers thread a Settings value through.
type Settings struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`

	MinHeight     int `json:"min_height"`
	MaxHeight     int `json:"max_height"`
	DefaultHeight int `json:"default_height"`
	HeightStep    int `json:"height_step"`

	MinBrush int `json:"min_brush"`
	MaxBrush int `json:"max_brush"`

	BatchSize int `json:"batch_size"`
	// Throttle is the minimum spacing between two drains of the redraw queue.
	Throttle Duration `json:"throttle"`

	// ElevationUnit is the number of screen pixels per height level.
	ElevationUnit float64 `json:"elevation_unit"`
	TileWidth     float64 `json:"tile_width"`
	TileHeight    float64 `json:"tile_height"`
}

// Default returns Settings with sensible defaults.
func Default() *Settings {
	return &Settings{
		Rows:          20,
		Cols:          20,
		MinHeight:     -10,
		MaxHeight:     10,
		DefaultHeight: 0,
		HeightStep:    1,
		MinBrush:      1,
		MaxBrush:      9,
		BatchSize:     10,
		Throttle:      Duration(32 * time.Millisecond),
		ElevationUnit: 8,
		TileWidth:     64,
		TileHeight:    32,
	}
}

// Load reads Settings from a json file. Fields missing from the file keep
// their default values.
func Load(path string) (*Settings, error) {
	s := Default()
	if err := base.LoadJson(path, s); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("config.Load(%q): %w", path, err)
	}
	return s, nil
}

// Save writes the settings to path as json.
func (s *Settings) Save(path string) error {
	return base.SaveJson(path, s)
}

// Validate reports the first setting that the engine cannot work with.
func (s *Settings) Validate() error {
	switch {
	case s.Rows <= 0 || s.Cols <= 0:
		return fmt.Errorf("grid must be at least 1x1, got %dx%d: %w", s.Cols, s.Rows, ErrInvalid)
	case s.MinHeight > s.MaxHeight:
		return fmt.Errorf("min_height %d above max_height %d: %w", s.MinHeight, s.MaxHeight, ErrInvalid)
	case s.DefaultHeight < s.MinHeight || s.DefaultHeight > s.MaxHeight:
		return fmt.Errorf("default_height %d outside [%d, %d]: %w", s.DefaultHeight, s.MinHeight, s.MaxHeight, ErrInvalid)
	case s.HeightStep <= 0:
		return fmt.Errorf("height_step must be positive, got %d: %w", s.HeightStep, ErrInvalid)
	case s.MinBrush <= 0 || s.MinBrush > s.MaxBrush:
		return fmt.Errorf("brush range [%d, %d] is empty: %w", s.MinBrush, s.MaxBrush, ErrInvalid)
	case s.BatchSize <= 0:
		return fmt.Errorf("batch_size must be positive, got %d: %w", s.BatchSize, ErrInvalid)
	case s.Throttle < 0:
		return fmt.Errorf("throttle must not be negative: %w", ErrInvalid)
	case !(s.ElevationUnit > 0) || math.IsInf(s.ElevationUnit, 0):
		return fmt.Errorf("elevation_unit must be positive and finite, got %v: %w", s.ElevationUnit, ErrInvalid)
	case !(s.TileWidth > 0) || !(s.TileHeight > 0):
		return fmt.Errorf("tile size must be positive: %w", ErrInvalid)
	}
	return nil
}

// Merge applies file-loaded values into s, but only for fields that were NOT
// explicitly set via CLI flags. explicitFlags contains the flag names that
// were explicitly provided on the command line.
func Merge(s *Settings, fromFile *Settings, explicitFlags map[string]bool) {
	if !explicitFlags["rows"] {
		s.Rows = fromFile.Rows
	}
	if !explicitFlags["cols"] {
		s.Cols = fromFile.Cols
	}
	if !explicitFlags["unit"] {
		s.ElevationUnit = fromFile.ElevationUnit
	}
	if !explicitFlags["batch"] {
		s.BatchSize = fromFile.BatchSize
	}
	if !explicitFlags["throttle"] {
		s.Throttle = fromFile.Throttle
	}
	s.MinHeight = fromFile.MinHeight
	s.MaxHeight = fromFile.MaxHeight
	s.DefaultHeight = fromFile.DefaultHeight
	s.HeightStep = fromFile.HeightStep
	s.MinBrush = fromFile.MinBrush
	s.MaxBrush = fromFile.MaxBrush
	s.TileWidth = fromFile.TileWidth
	s.TileHeight = fromFile.TileHeight
}
