// Package biome synthesizes elevation grids from named terrain archetypes.
// Every biome is a pure recipe over seeded noise plus a curated profile that
// decides its amplitude, smoothing and quantization.
package biome

import (
	"errors"
	"fmt"
	"math"
	"sync/atomic"

	"github.com/MobRulesGames/tabletop/logging"
	"github.com/MobRulesGames/tabletop/terrain"
)

var (
	// ErrGenerationFailure means noise or amplitude math went non-finite. No
	// grid is produced.
	ErrGenerationFailure = errors.New("biome generation failed")

	// ErrGenerationInProgress rejects a generation started while another is
	// still running. It is a no-op, not a fault.
	ErrGenerationInProgress = errors.New("biome generation already in progress")
)

const DefaultElevationUnit = 8

// Options are the per-call overrides. The zero value is usable: relief and
// roughness of zero mean 1, the elevation unit falls back to
// DefaultElevationUnit and the orientation is derived from the seed.
type Options struct {
	Seed      uint32
	Relief    float64
	Roughness float64
	WaterBias float64

	Orientation    float64
	HasOrientation bool

	// ElevationUnit is the current pixels per height level.
	ElevationUnit float64
}

func (o Options) resolve() (Options, error) {
	if o.Relief == 0 {
		o.Relief = 1
	}
	if o.Roughness == 0 {
		o.Roughness = 1
	}
	if o.ElevationUnit == 0 {
		o.ElevationUnit = DefaultElevationUnit
	}
	for name, v := range map[string]float64{
		"relief":         o.Relief,
		"roughness":      o.Roughness,
		"elevation unit": o.ElevationUnit,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return o, fmt.Errorf("%s %v must be a finite non-negative number: %w", name, v, terrain.ErrConfiguration)
		}
	}
	if math.IsNaN(o.WaterBias) || math.IsInf(o.WaterBias, 0) {
		return o, fmt.Errorf("water bias %v is not finite: %w", o.WaterBias, terrain.ErrConfiguration)
	}
	if !o.HasOrientation {
		o.Orientation = angleFromSeed(o.Seed)
	}
	return o, nil
}

func (o Options) shape() Shape {
	return Shape{Roughness: o.Roughness, WaterBias: o.WaterBias, Orientation: o.Orientation}
}

// Generator turns biome keys into grids. It never touches a Field; callers
// adopt the result if they want it.
type Generator struct {
	limits   terrain.Limits
	recipes  map[string]Recipe
	profiles map[string]Profile

	busy atomic.Bool
}

func NewGenerator(limits terrain.Limits) *Generator {
	return &Generator{
		limits:   limits,
		recipes:  recipes,
		profiles: profiles,
	}
}

func (g *Generator) profile(key string) Profile {
	if p, ok := g.profiles[key]; ok {
		return p
	}
	return defaultProfile
}

// ScaleHint is the advisory pixels-per-level for key.
func (g *Generator) ScaleHint(key string) float64 {
	return g.profile(key).ScaleHint
}

// Generating reports whether a generation is running.
func (g *Generator) Generating() bool {
	return g.busy.Load()
}

// Generate builds a fresh rows x cols grid for the biome named key.
func (g *Generator) Generate(key string, rows, cols int, opts Options) (grid terrain.Grid, err error) {
	if !g.busy.CompareAndSwap(false, true) {
		logging.Warn("biome generation rejected", "biome", key, "reason", "in progress")
		return nil, ErrGenerationInProgress
	}
	defer g.busy.Store(false)

	defer func() {
		if r := recover(); r != nil {
			logging.Error("biome generation panicked", "biome", key, "panic", r)
			grid, err = nil, fmt.Errorf("biome %q: %v: %w", key, r, ErrGenerationFailure)
		}
	}()

	recipe, ok := g.recipes[key]
	if !ok {
		return nil, fmt.Errorf("unknown biome %q: %w", key, terrain.ErrConfiguration)
	}
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("biome grid must be at least 1x1, got %dx%d: %w", cols, rows, terrain.ErrConfiguration)
	}
	if g.limits.Step <= 0 || g.limits.Min > g.limits.Max {
		return nil, fmt.Errorf("bad limits %+v: %w", g.limits, terrain.ErrConfiguration)
	}
	opts, err = opts.resolve()
	if err != nil {
		return nil, err
	}

	raw, maxAbs, err := sample(recipe, rows, cols, opts)
	if err != nil {
		return nil, fmt.Errorf("biome %q: %w", key, err)
	}

	prof := g.profile(key)
	amp := g.amplitude(prof, opts.Relief)
	if math.IsNaN(amp) || math.IsInf(amp, 0) {
		return nil, fmt.Errorf("biome %q: amplitude %v: %w", key, amp, ErrGenerationFailure)
	}

	if maxAbs > 0 {
		scale := amp / maxAbs
		for _, row := range raw {
			for x := range row {
				row[x] *= scale
			}
		}
	}
	postProcess(raw, prof, amp)

	step := quantStep(prof.PixelJump, opts.ElevationUnit, g.limits.Step)
	lo, hi := quantRange(g.limits, prof.MaxAmp, step)
	grid = terrain.MakeGrid(rows, cols, 0)
	for y, row := range raw {
		for x, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("biome %q: cell (%d, %d) is %v: %w", key, x, y, v, ErrGenerationFailure)
			}
			q := int(math.Round(v/float64(step))) * step
			if q < lo {
				q = lo
			}
			if q > hi {
				q = hi
			}
			grid[y][x] = q
		}
	}

	logging.Debug("biome generated", "biome", key, "seed", opts.Seed, "rows", rows, "cols", cols, "amplitude", amp, "step", step, "peak", grid.MaxAbs())
	return grid, nil
}

// ApplyIfFlat generates key only if every working cell of f is still at the
// default height. Otherwise it returns a copy of f's working grid and false.
// f itself is never modified.
func (g *Generator) ApplyIfFlat(f *terrain.Field, key string, opts Options) (terrain.Grid, bool, error) {
	if !f.IsPristine() {
		logging.Debug("biome skipped, field has edits", "biome", key)
		return f.Working(), false, nil
	}
	grid, err := g.Generate(key, f.Rows(), f.Cols(), opts)
	if err != nil {
		return f.Working(), false, err
	}
	return grid, true, nil
}

// sample evaluates recipe at every cell and tracks the largest magnitude.
func sample(recipe Recipe, rows, cols int, opts Options) ([][]float64, float64, error) {
	sh := opts.shape()
	raw := make([][]float64, rows)
	var maxAbs float64
	for y := range raw {
		raw[y] = make([]float64, cols)
		ny := norm(y, rows)
		for x := range raw[y] {
			v := recipe(x, y, norm(x, cols), ny, opts.Seed, sh)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, 0, fmt.Errorf("raw height at (%d, %d) is %v: %w", x, y, v, ErrGenerationFailure)
			}
			raw[y][x] = v
			maxAbs = math.Max(maxAbs, math.Abs(v))
		}
	}
	return raw, maxAbs, nil
}

// norm maps index i of n onto [0, 1].
func norm(i, n int) float64 {
	if n <= 1 {
		return 0.5
	}
	return float64(i) / float64(n-1)
}

func (g *Generator) amplitude(p Profile, relief float64) float64 {
	amp := float64(p.Amplitude) * relief
	if p.MinAmp > 0 && amp < float64(p.MinAmp) {
		amp = float64(p.MinAmp)
	}
	if p.MaxAmp > 0 && amp > float64(p.MaxAmp) {
		amp = float64(p.MaxAmp)
	}
	if b := float64(g.limits.Bound()); amp > b {
		amp = b
	}
	return amp
}

func postProcess(v [][]float64, p Profile, amp float64) {
	for i := 0; i < p.SmoothIterations && p.SmoothRadius > 0; i++ {
		boxBlur(v, p.SmoothRadius)
	}
	if p.Power > 0 && p.Power != 1 && amp > 0 {
		for _, row := range v {
			for x, h := range row {
				m := math.Min(math.Abs(h)/amp, 1)
				row[x] = math.Copysign(amp*math.Pow(m, p.Power), h)
			}
		}
	}
	if p.WaterLevel != 0 {
		for _, row := range v {
			for x := range row {
				row[x] += p.WaterLevel
			}
		}
	}
}

// boxBlur averages each cell with the in-bounds cells within radius.
func boxBlur(v [][]float64, radius int) {
	rows := len(v)
	if rows == 0 {
		return
	}
	cols := len(v[0])
	src := make([][]float64, rows)
	for y := range v {
		src[y] = append([]float64(nil), v[y]...)
	}
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			var sum float64
			var n int
			for yy := max(0, y-radius); yy <= min(rows-1, y+radius); yy++ {
				for xx := max(0, x-radius); xx <= min(cols-1, x+radius); xx++ {
					sum += src[yy][xx]
					n++
				}
			}
			v[y][x] = sum / float64(n)
		}
	}
}

// quantStep is the height increment that gives roughly pixelJump pixels
// between neighboring levels, as a whole number of base steps.
func quantStep(pixelJump, unit float64, baseStep int) int {
	if pixelJump <= 0 || unit <= 0 {
		return baseStep
	}
	n := int(math.Ceil(pixelJump / unit / float64(baseStep)))
	if n < 1 {
		n = 1
	}
	return n * baseStep
}

// quantRange is the widest [lo, hi] of step multiples that fits the limits
// and, when capped, the profile's MaxAmp.
func quantRange(l terrain.Limits, maxAmp, step int) (lo, hi int) {
	hi = floorMul(l.Max, step)
	lo = -floorMul(-l.Min, step)
	if maxAmp > 0 {
		c := floorMul(maxAmp, step)
		hi = min(hi, c)
		lo = max(lo, -c)
	}
	if lo > hi {
		lo, hi = 0, 0
	}
	return lo, hi
}

func floorMul(v, step int) int {
	q := v / step
	if v < 0 && v%step != 0 {
		q--
	}
	return q * step
}
