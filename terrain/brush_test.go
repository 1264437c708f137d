package terrain_test

import (
	"math"
	"testing"

	"github.com/MobRulesGames/tabletop/terrain"
	"github.com/MobRulesGames/tabletop/terrain/terraintest"
	. "github.com/smartystreets/goconvey/convey"
)

func GivenABrush() *terrain.Brush {
	return terrain.NewBrush(1, 9, 1)
}

func TestBrush(t *testing.T) {
	Convey("terrain.Brush", t, BrushSpecs)
}

func BrushSpecs() {
	Convey("tool selection fails closed to raise", func() {
		b := GivenABrush()
		b.SetTool("lower")
		So(b.Tool(), ShouldEqual, terrain.Lower)
		b.SetTool("LOWER")
		So(b.Tool(), ShouldEqual, terrain.Raise)
		b.SetTool("")
		So(b.Tool(), ShouldEqual, terrain.Raise)
	})

	Convey("size is rounded and clamped", func() {
		b := GivenABrush()
		b.SetSize(3.6)
		So(b.Size(), ShouldEqual, 4)
		b.SetSize(2.4)
		So(b.Size(), ShouldEqual, 2)
		b.SetSize(-5)
		So(b.Size(), ShouldEqual, 1)
		b.SetSize(100)
		So(b.Size(), ShouldEqual, 9)
		b.SetSize(math.NaN())
		So(b.Size(), ShouldEqual, 9)

		b.Increase()
		So(b.Size(), ShouldEqual, 9)
		b.Decrease()
		So(b.Size(), ShouldEqual, 8)
		b.SetSize(1)
		b.Decrease()
		So(b.Size(), ShouldEqual, 1)
	})

	Convey("footprint", func() {
		f := terraintest.GivenAField(10, 10)
		b := GivenABrush()

		Convey("of size 1 is the center cell", func() {
			So(b.Footprint(f, 4, 5), ShouldResemble, []terrain.Cell{{X: 4, Y: 5}})
		})

		Convey("of size 1 outside the board is empty", func() {
			So(b.Footprint(f, -1, 5), ShouldBeEmpty)
		})

		Convey("of size 2 leans toward the positive axis", func() {
			b.SetSize(2)
			So(b.Footprint(f, 4, 5), ShouldResemble, []terrain.Cell{
				{X: 4, Y: 5}, {X: 5, Y: 5},
				{X: 4, Y: 6}, {X: 5, Y: 6},
			})
		})

		Convey("of size 3 is centered", func() {
			b.SetSize(3)
			cells := b.Footprint(f, 4, 5)
			So(len(cells), ShouldEqual, 9)
			So(cells[0], ShouldResemble, terrain.Cell{X: 3, Y: 4})
			So(cells[8], ShouldResemble, terrain.Cell{X: 5, Y: 6})
		})

		Convey("is clipped at the board edge", func() {
			b.SetSize(4)
			cells := b.Footprint(f, 0, 9)
			// x in [-1, 2], y in [8, 11] -> x 0..2, y 8..9
			So(len(cells), ShouldEqual, 6)
			for _, c := range cells {
				So(f.InBounds(c.X, c.Y), ShouldBeTrue)
			}
		})

		Convey("does not mutate the field", func() {
			b.SetSize(5)
			b.Footprint(f, 5, 5)
			So(f.IsPristine(), ShouldBeTrue)
		})
	})

	Convey("applying", func() {
		f := terraintest.GivenAField(6, 6)
		b := GivenABrush()

		Convey("raise lifts every footprint cell by one step", func() {
			b.SetSize(2)
			changed, ok := b.ApplyAt(f, 2, 2)
			So(ok, ShouldBeTrue)
			So(len(changed), ShouldEqual, 4)
			So(f.Get(2, 2), ShouldEqual, 1)
			So(f.Get(3, 3), ShouldEqual, 1)
			So(f.Get(1, 1), ShouldEqual, 0)
			So(f.BaseAt(2, 2), ShouldEqual, 0)
		})

		Convey("lower sinks cells", func() {
			b.SetTool("lower")
			b.ApplyAt(f, 0, 0)
			b.ApplyAt(f, 0, 0)
			So(f.Get(0, 0), ShouldEqual, -2)
		})

		Convey("raise at the ceiling reports no change", func() {
			f.Set(3, 3, 10)
			changed, ok := b.ApplyAt(f, 3, 3)
			So(ok, ShouldBeFalse)
			So(changed, ShouldBeEmpty)
			So(f.Get(3, 3), ShouldEqual, 10)
		})

		Convey("only cells that move are reported", func() {
			f.Set(1, 1, 10)
			b.SetSize(2)
			changed, _ := b.ApplyAt(f, 1, 1)
			So(len(changed), ShouldEqual, 3)
			So(changed, ShouldNotContain, terrain.Cell{X: 1, Y: 1})
		})

		Convey("the applied region matches the preview", func() {
			b.SetSize(3)
			preview := b.Footprint(f, 5, 0)
			changed, _ := b.ApplyAt(f, 5, 0)
			So(changed, ShouldResemble, preview)
		})

		Convey("a coarser step moves further", func() {
			coarse := terrain.NewBrush(1, 9, 3)
			coarse.ApplyAt(f, 4, 4)
			So(f.Get(4, 4), ShouldEqual, 3)
		})
	})
}
