package terrain

// Grid is a row-major block of heights: Grid[y][x].
type Grid [][]int

// MakeGrid allocates a rows x cols grid with every cell set to h.
func MakeGrid(rows, cols, h int) Grid {
	g := make(Grid, rows)
	for y := range g {
		row := make([]int, cols)
		if h != 0 {
			for x := range row {
				row[x] = h
			}
		}
		g[y] = row
	}
	return g
}

func (g Grid) Rows() int {
	return len(g)
}

// Cols reports the width of the first row; Rectangular tells whether every
// other row agrees.
func (g Grid) Cols() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

func (g Grid) Rectangular() bool {
	cols := g.Cols()
	for _, row := range g {
		if len(row) != cols {
			return false
		}
	}
	return true
}

func (g Grid) HasShape(rows, cols int) bool {
	if len(g) != rows {
		return false
	}
	for _, row := range g {
		if len(row) != cols {
			return false
		}
	}
	return true
}

// Clone returns a deep copy.
func (g Grid) Clone() Grid {
	if g == nil {
		return nil
	}
	out := make(Grid, len(g))
	for y, row := range g {
		out[y] = append([]int(nil), row...)
	}
	return out
}

// IsUniform reports whether every cell holds h.
func (g Grid) IsUniform(h int) bool {
	for _, row := range g {
		for _, v := range row {
			if v != h {
				return false
			}
		}
	}
	return true
}

// MaxAbs returns the largest magnitude in the grid.
func (g Grid) MaxAbs() int {
	m := 0
	for _, row := range g {
		for _, v := range row {
			if v < 0 {
				v = -v
			}
			if v > m {
				m = v
			}
		}
	}
	return m
}

func (g Grid) inBounds(x, y int) bool {
	return y >= 0 && y < len(g) && x >= 0 && x < len(g[y])
}

// copyOverlap copies the rectangle shared by src and dst from src into dst.
func copyOverlap(dst, src Grid) {
	rows := min(len(dst), len(src))
	for y := 0; y < rows; y++ {
		copy(dst[y], src[y])
	}
}
