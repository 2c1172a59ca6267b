package imageproc

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fill(img *image.Gray, v uint8) {
	for i := range img.Pix {
		img.Pix[i] = v
	}
}

func TestBinarizeOutputIsBinary(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			src.SetGray(x, y, color.Gray{Y: uint8(x * 4)})
		}
	}

	out := Binarize(src)
	require.Equal(t, src.Bounds(), out.Bounds())
	for _, p := range out.Pix {
		assert.True(t, p == 0 || p == 255, "pixel %d is not binary", p)
	}
}

func TestBinarizeKeepsInkOnPaper(t *testing.T) {
	// Light paper with a dark block of "ink" in the middle.
	src := image.NewGray(image.Rect(0, 0, 64, 64))
	fill(src, 250)
	for y := 28; y < 36; y++ {
		for x := 28; x < 36; x++ {
			src.SetGray(x, y, color.Gray{Y: 40})
		}
	}

	out := Binarize(src)
	assert.EqualValues(t, 0, out.GrayAt(31, 31).Y)
	assert.EqualValues(t, 255, out.GrayAt(5, 5).Y)
	assert.EqualValues(t, 255, out.GrayAt(60, 60).Y)
}

func TestBinarizeAcceptsNonGrayInput(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	for i := range src.Pix {
		src.Pix[i] = 0xFF
	}

	out := Binarize(src)
	require.Equal(t, 16*16, len(out.Pix))
	for _, p := range out.Pix {
		assert.True(t, p == 0 || p == 255)
	}
}

func TestBinarizeEmptyImage(t *testing.T) {
	out := Binarize(image.NewGray(image.Rect(0, 0, 0, 0)))
	assert.Empty(t, out.Pix)
}

func TestDespeckleRemovesIsolatedPixel(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 10, 10))
	src.SetGray(5, 5, color.Gray{Y: 255})

	out := despeckle(src, 1)
	assert.EqualValues(t, 0, out.GrayAt(5, 5).Y)
}

func TestDespeckleKeepsSolidRegions(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 10, 10))
	fill(src, 255)
	src.SetGray(4, 4, color.Gray{Y: 0})

	out := despeckle(src, 1)
	assert.EqualValues(t, 255, out.GrayAt(4, 4).Y)
	assert.EqualValues(t, 255, out.GrayAt(0, 0).Y)
}
