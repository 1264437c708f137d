package depth_test

import (
	"math/rand/v2"
	"testing"

	"github.com/MobRulesGames/tabletop/depth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyIsMonotonicAlongDiagonals(t *testing.T) {
	const n = 50
	for gx := 0; gx < n; gx++ {
		for gy := 0; gy < n; gy++ {
			k := depth.Key(gx, gy, depth.BiasNone)
			// Next diagonal is always deeper, whatever the split.
			for dx := 0; dx <= gx+gy+1; dx++ {
				next := depth.Key(dx, gx+gy+1-dx, depth.BiasNone)
				require.Greater(t, next, k)
			}
			// Along the same diagonal, larger x is deeper.
			if gy > 0 {
				require.Greater(t, depth.Key(gx+1, gy-1, depth.BiasNone), k)
			}
		}
	}
}

func TestBiasNeverCrossesTieBreak(t *testing.T) {
	top := depth.Key(3, 4, depth.BiasStructure)
	assert.Less(t, top, depth.Key(4, 3, depth.BiasNone))
	assert.Less(t, depth.Key(3, 4, depth.BiasPath), depth.Key(3, 4, depth.BiasPlant))
	assert.Less(t, depth.Key(3, 4, depth.BiasPlant), depth.Key(3, 4, depth.BiasToken))
	assert.Less(t, depth.Key(3, 4, depth.BiasToken), top)
	assert.Less(t, int(depth.BiasStructure), depth.TieWeight)
}

type piece struct {
	key   int
	layer depth.Layer
	name  string
}

// A board corner with a tile, its shadow, a face overlay, a token and the
// neighbouring tiles, in scrambled order.
var fixture = []piece{
	{depth.Key(1, 1, depth.BiasNone), depth.Solid, "tile 1,1"},
	{depth.Key(0, 0, depth.BiasNone), depth.Solid, "tile 0,0"},
	{depth.Key(1, 1, depth.BiasNone), depth.Shadow, "shadow 1,1"},
	{depth.Key(1, 0, depth.BiasNone), depth.Solid, "tile 1,0"},
	{depth.Key(1, 1, depth.BiasToken), depth.Solid, "token 1,1"},
	{depth.Key(0, 1, depth.BiasNone), depth.Solid, "tile 0,1"},
	{depth.Key(1, 1, depth.BiasNone), depth.OverlayFace, "face 1,1"},
	{depth.Key(0, 0, depth.BiasNone), depth.Shadow, "shadow 0,0"},
	{depth.Key(1, 1, depth.BiasNone), depth.Solid, "tile 1,1 again"},
}

func names(items []depth.Item[string]) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Value
	}
	return out
}

func build(pieces []piece) *depth.DrawList[string] {
	dl := &depth.DrawList[string]{}
	for _, p := range pieces {
		dl.Insert(p.key, p.layer, p.name)
	}
	return dl
}

func TestInsertOrdersFixture(t *testing.T) {
	dl := build(fixture)
	assert.Equal(t, []string{
		"shadow 0,0",
		"tile 0,0",
		"tile 0,1",
		"tile 1,0",
		"shadow 1,1",
		"face 1,1",
		"tile 1,1",
		"tile 1,1 again",
		"token 1,1",
	}, names(dl.Items()))
}

func TestInsertAndSortAgree(t *testing.T) {
	dl := build(fixture)
	assert.Equal(t, names(dl.Items()), names(depth.Sort(dl.Items())))

	before := names(dl.Items())
	dl.Resort()
	assert.Equal(t, before, names(dl.Items()))
}

func TestInsertAndSortAgreeOnRandomBoards(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))
	for round := 0; round < 50; round++ {
		var pieces []piece
		for i := 0; i < 60; i++ {
			gx, gy := r.IntN(6), r.IntN(6)
			bias := depth.Bias(r.IntN(5))
			layer := depth.Layer(r.IntN(3))
			pieces = append(pieces, piece{depth.Key(gx, gy, bias), layer, string(rune('A' + i))})
		}

		dl := build(pieces)
		incremental := dl.Items()

		// Sort the raw insertion-order items directly.
		raw := make([]depth.Item[string], len(pieces))
		for i, p := range pieces {
			raw[i] = depth.Item[string]{Key: p.key, Layer: p.layer, Seq: i, Value: p.name}
		}
		require.Equal(t, names(incremental), names(depth.Sort(raw)), "round %d", round)

		for i := 1; i < len(incremental); i++ {
			require.False(t, depth.Less(incremental[i], incremental[i-1]))
		}
	}
}

func TestInsertReportsPosition(t *testing.T) {
	dl := &depth.DrawList[string]{}
	assert.Equal(t, 0, dl.Insert(depth.Key(2, 2, 0), depth.Solid, "far"))
	assert.Equal(t, 0, dl.Insert(depth.Key(0, 0, 0), depth.Solid, "near"))
	assert.Equal(t, 1, dl.Insert(depth.Key(2, 2, 0), depth.Shadow, "far shadow"))
	assert.Equal(t, 3, dl.Insert(depth.Key(2, 2, 0), depth.Solid, "far again"))
	assert.Equal(t, 4, dl.Len())
}

func TestRemoveAndRekey(t *testing.T) {
	dl := build(fixture)
	dl.Remove(func(it depth.Item[string]) bool {
		return it.Layer == depth.Shadow
	})
	assert.Equal(t, 7, dl.Len())
	for _, it := range dl.Items() {
		assert.NotEqual(t, depth.Shadow, it.Layer)
	}

	// The token walks to the far corner.
	dl.Rekey(func(it depth.Item[string]) bool {
		return it.Value == "token 1,1"
	}, depth.Key(5, 5, depth.BiasToken))
	items := dl.Items()
	assert.Equal(t, "token 1,1", items[len(items)-1].Value)
	assert.Equal(t, "tile 0,0", items[0].Value)
}

func TestSortDoesNotModifyInput(t *testing.T) {
	in := []depth.Item[string]{
		{Key: 5, Layer: depth.Solid, Seq: 0, Value: "b"},
		{Key: 1, Layer: depth.Solid, Seq: 1, Value: "a"},
	}
	out := depth.Sort(in)
	assert.Equal(t, "b", in[0].Value)
	assert.Equal(t, []string{"a", "b"}, names(out))
}
