package cmd

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"

	"github.com/MobRulesGames/tabletop/terrain"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const captionHeight = 18

// shade maps a height onto a gray level, lowest limit black and highest white.
func shade(h int, l terrain.Limits) uint8 {
	if l.Max == l.Min {
		return 128
	}
	v := float64(h-l.Min) / float64(l.Max-l.Min)
	return uint8(math.Round(255 * math.Max(0, math.Min(1, v))))
}

// heightImage is the board as a top-down heightmap, one pixel per cell.
func heightImage(f *terrain.Field) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, f.Cols(), f.Rows()))
	for y := 0; y < f.Rows(); y++ {
		for x := 0; x < f.Cols(); x++ {
			img.SetGray(x, y, color.Gray{Y: shade(f.Get(x, y), f.Limits())})
		}
	}
	return img
}

// writePreview saves a png of the board at scale pixels per cell, with caption
// written underneath when it is not empty.
func writePreview(path string, f *terrain.Field, scale int, caption string) error {
	if scale < 1 {
		scale = 1
	}
	src := heightImage(f)
	board := image.Rect(0, 0, f.Cols()*scale, f.Rows()*scale)
	bounds := board
	if caption != "" {
		bounds.Max.Y += captionHeight
	}

	dst := image.NewRGBA(bounds)
	draw.Draw(dst, bounds, image.Black, image.Point{}, draw.Src)
	draw.NearestNeighbor.Scale(dst, board, src, src.Bounds(), draw.Src, nil)

	if caption != "" {
		d := &font.Drawer{
			Dst:  dst,
			Src:  image.White,
			Face: basicfont.Face7x13,
			Dot:  fixed.P(4, board.Max.Y+13),
		}
		d.DrawString(caption)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("couldn't create dir for %q: %w", path, err)
	}
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(out, dst); err != nil {
		out.Close()
		return fmt.Errorf("couldn't encode %q: %w", path, err)
	}
	return out.Close()
}
