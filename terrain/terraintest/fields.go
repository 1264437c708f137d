package terraintest

import (
	"fmt"

	"github.com/MobRulesGames/tabletop/terrain"
)

// GivenAField returns a rows x cols field at height 0 with the default limits.
func GivenAField(rows, cols int) *terrain.Field {
	f, err := terrain.New(rows, cols, 0, terrain.DefaultLimits())
	if err != nil {
		panic(fmt.Errorf("terraintest.GivenAField(%d, %d): %w", rows, cols, err))
	}
	return f
}

// GivenAFieldWith builds a field whose working and base grids both hold the
// given heights.
func GivenAFieldWith(heights terrain.Grid) *terrain.Field {
	f := GivenAField(heights.Rows(), heights.Cols())
	if err := f.Adopt(heights); err != nil {
		panic(fmt.Errorf("terraintest.GivenAFieldWith: %w", err))
	}
	return f
}
