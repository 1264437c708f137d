// Package depth orders isometric draw items back to front.
package depth

// A cell's depth key is dominated by its diagonal (x+y); x breaks ties along
// a diagonal and the content bias breaks ties within a cell. The weights are
// far enough apart that no lower term can ever reach the next higher one.
const (
	DiagWeight = 10000
	TieWeight  = 10
)

// Bias orders different kinds of content that share a cell. Larger biases
// draw on top.
type Bias int

const (
	BiasNone Bias = iota
	BiasPath
	BiasPlant
	BiasToken
	BiasStructure
)

// Key computes the depth key of content with the given bias at (gx, gy).
// Keys are for ordering only and never identify a cell.
func Key(gx, gy int, bias Bias) int {
	return (gx+gy)*DiagWeight + gx*TieWeight + int(bias)
}
