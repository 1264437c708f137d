package cmd

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/MobRulesGames/tabletop/terrain"
	"github.com/MobRulesGames/tabletop/terrain/terraintest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func grayAt(img image.Image, x, y int) uint8 {
	return color.GrayModel.Convert(img.At(x, y)).(color.Gray).Y
}

func decodePng(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	return img
}

func TestShade(t *testing.T) {
	l := terrain.DefaultLimits()
	assert.Equal(t, uint8(0), shade(-10, l))
	assert.Equal(t, uint8(128), shade(0, l))
	assert.Equal(t, uint8(255), shade(10, l))
	assert.Equal(t, uint8(255), shade(99, l))
}

func TestWritePreview(t *testing.T) {
	f := terraintest.GivenAFieldWith(terrain.Grid{
		{0, 0, 0},
		{0, 10, -10},
	})
	path := filepath.Join(t.TempDir(), "previews", "board.png")
	require.NoError(t, writePreview(path, f, 4, "test"))

	img := decodePng(t, path)
	assert.Equal(t, image.Rect(0, 0, 12, 8+captionHeight), img.Bounds())
	assert.Equal(t, uint8(128), grayAt(img, 1, 1))
	assert.Equal(t, uint8(255), grayAt(img, 5, 6))
	assert.Equal(t, uint8(0), grayAt(img, 11, 7))
}

func TestPreviewWithoutCaption(t *testing.T) {
	f := terraintest.GivenAField(2, 5)
	path := filepath.Join(t.TempDir(), "board.png")
	require.NoError(t, writePreview(path, f, 0, ""))
	assert.Equal(t, image.Rect(0, 0, 5, 2), decodePng(t, path).Bounds())
}

func TestPreviewFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hills.png")
	_, err := runForTest(t, "-biome", "hills", "-seed", "2", "-rows", "6", "-cols", "9", "-png", path, "-png-scale", "3")
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 27, 18+captionHeight), decodePng(t, path).Bounds())
}
