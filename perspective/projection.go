// Package perspective places board cells on screen. The board is drawn as a
// 2:1 isometric diamond; raised cells are lifted by their height times the
// elevation unit.
package perspective

import (
	"math"

	"github.com/MobRulesGames/mathgl"
	"github.com/MobRulesGames/tabletop/config"
	"github.com/MobRulesGames/tabletop/depth"
	"github.com/MobRulesGames/tabletop/logging"
	"github.com/MobRulesGames/tabletop/terrain"
)

type Projection struct {
	tileW, tileH     float32
	originX, originY float32
	unit             float32

	// floor maps board space onto the screen at height zero; ifloor undoes it.
	floor, ifloor mathgl.Mat4
}

// New builds a projection whose board origin lands at (originX, originY).
// Non-positive tile sizes and elevation units fall back to the defaults.
func New(tileW, tileH, originX, originY, elevationUnit float64) *Projection {
	def := config.Default()
	if !(tileW > 0) {
		tileW = def.TileWidth
	}
	if !(tileH > 0) {
		tileH = def.TileHeight
	}
	p := &Projection{
		tileW:   float32(tileW),
		tileH:   float32(tileH),
		originX: float32(originX),
		originY: float32(originY),
	}
	p.SetElevationUnit(elevationUnit)
	p.makeMats()
	return p
}

func NewFromSettings(s *config.Settings, originX, originY float64) *Projection {
	return New(s.TileWidth, s.TileHeight, originX, originY, s.ElevationUnit)
}

func (p *Projection) makeMats() {
	// Read bottom to top: turn the board 45 degrees so that +x runs down-right
	// and +y runs down-left, squash it into a 2:1 diamond, then move the
	// board origin to the screen origin.
	var m mathgl.Mat4
	p.floor.Translation(p.originX, p.originY, 0)

	m.Scaling(p.tileW/math.Sqrt2, p.tileH/math.Sqrt2, 1)
	p.floor.Multiply(&m)

	m.RotationZ(math.Pi / 4)
	p.floor.Multiply(&m)

	p.ifloor.Assign(&p.floor)
	p.ifloor.Inverse()
}

func (p *Projection) ElevationUnit() float64 {
	return float64(p.unit)
}

// SetElevationUnit changes the pixels per height level. Non-positive or
// non-finite values are ignored.
func (p *Projection) SetElevationUnit(unit float64) {
	if !(unit > 0) || math.IsInf(unit, 0) {
		if p.unit == 0 {
			p.unit = float32(config.Default().ElevationUnit)
		}
		logging.Debug("ignoring elevation unit", "unit", unit, "keeping", p.unit)
		return
	}
	p.unit = float32(unit)
}

// ElevationOffset is the vertical screen offset of a cell at height h.
// Screen y grows downward, so raised cells get a negative offset.
func (p *Projection) ElevationOffset(h int) float32 {
	return -float32(h) * p.unit
}

// BoardToScreen maps a board point at height zero to the screen.
func (p *Projection) BoardToScreen(bx, by float32) (sx, sy float32) {
	v := mathgl.Vec4{X: bx, Y: by, Z: 0, W: 1}
	v.Transform(&p.floor)
	return v.X, v.Y
}

// ScreenToBoard is the inverse of BoardToScreen.
func (p *Projection) ScreenToBoard(sx, sy float32) (bx, by float32) {
	v := mathgl.Vec4{X: sx, Y: sy, Z: 0, W: 1}
	v.Transform(&p.ifloor)
	return v.X, v.Y
}

// Place returns the screen position of the top corner of cell (x, y) when it
// stands at height h.
func (p *Projection) Place(x, y, h int) (sx, sy float32) {
	sx, sy = p.BoardToScreen(float32(x), float32(y))
	return sx, sy + p.ElevationOffset(h)
}

// Pick finds the cell under a screen point on the ground plane. Elevation is
// not taken into account.
func (p *Projection) Pick(sx, sy float32) terrain.Cell {
	bx, by := p.ScreenToBoard(sx, sy)
	return terrain.Cell{
		X: int(math.Floor(float64(bx))),
		Y: int(math.Floor(float64(by))),
	}
}

// PickOn is Pick restricted to the cells of f.
func (p *Projection) PickOn(f *terrain.Field, sx, sy float32) (terrain.Cell, bool) {
	c := p.Pick(sx, sy)
	return c, f.InBounds(c.X, c.Y)
}

// Tile is everything a renderer needs to draw one terrain cell.
type Tile struct {
	Cell   terrain.Cell
	Height int
	X, Y   float32
	Key    int
}

// Tile reads the current height of cell (x, y) from f and places it.
func (p *Projection) Tile(f *terrain.Field, x, y int) Tile {
	h := f.Get(x, y)
	sx, sy := p.Place(x, y, h)
	return Tile{
		Cell:   terrain.Cell{X: x, Y: y},
		Height: h,
		X:      sx,
		Y:      sy,
		Key:    depth.Key(x, y, depth.BiasNone),
	}
}
