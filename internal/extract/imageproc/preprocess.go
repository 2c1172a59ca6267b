// Package imageproc normalizes raster pages before OCR: grayscale,
// adaptive binarization tuned for uneven receipt lighting, and a small
// majority filter to knock out speckle noise.
package imageproc

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

const (
	// Side of the square neighborhood the local threshold is computed over.
	// Receipts photographed at an angle have strong lighting gradients, so
	// the window has to stay small relative to the page.
	thresholdWindow = 35

	// Constant subtracted from the neighborhood mean. Pushes faint paper
	// texture to white while keeping ink black.
	thresholdOffset = 15

	medianRadius = 1 // 3x3
)

// Binarize converts an arbitrary source frame into a black-and-white image
// suitable for text recognition. It is a pure transform and never fails:
// degenerate input yields degenerate output, which the downstream parser
// tolerates.
func Binarize(src image.Image) *image.Gray {
	gray := toGray(src)
	bw := adaptiveThreshold(gray, thresholdWindow, thresholdOffset)
	return despeckle(bw, medianRadius)
}

func toGray(src image.Image) *image.Gray {
	if g, ok := src.(*image.Gray); ok {
		return g
	}
	nrgba := imaging.Grayscale(src)
	b := nrgba.Bounds()
	g := image.NewGray(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			// Channels are equal after Grayscale; any one of them is the luma.
			g.SetGray(x, y, color.Gray{Y: nrgba.NRGBAAt(x, y).R})
		}
	}
	return g
}

// adaptiveThreshold binarizes against the mean of a window x window
// neighborhood minus offset, using a summed-area table so the window size
// does not affect cost.
func adaptiveThreshold(src *image.Gray, window, offset int) *image.Gray {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewGray(b)
	if w == 0 || h == 0 {
		return out
	}

	integral := make([]uint64, (w+1)*(h+1))
	stride := w + 1
	for y := 0; y < h; y++ {
		var rowSum uint64
		for x := 0; x < w; x++ {
			rowSum += uint64(src.GrayAt(b.Min.X+x, b.Min.Y+y).Y)
			integral[(y+1)*stride+x+1] = integral[y*stride+x+1] + rowSum
		}
	}

	half := window / 2
	for y := 0; y < h; y++ {
		y0, y1 := max(0, y-half), min(h-1, y+half)
		for x := 0; x < w; x++ {
			x0, x1 := max(0, x-half), min(w-1, x+half)
			count := uint64((y1 - y0 + 1) * (x1 - x0 + 1))
			sum := integral[(y1+1)*stride+x1+1] -
				integral[y0*stride+x1+1] -
				integral[(y1+1)*stride+x0] +
				integral[y0*stride+x0]
			mean := sum / count

			v := uint8(0)
			if uint64(src.GrayAt(b.Min.X+x, b.Min.Y+y).Y)+uint64(offset) > mean {
				v = 255
			}
			out.SetGray(b.Min.X+x, b.Min.Y+y, color.Gray{Y: v})
		}
	}
	return out
}

// despeckle applies a majority filter over the (2r+1)^2 neighborhood. On a
// binary image this is exactly a median filter, and it preserves character
// edges far better than a blur would.
func despeckle(src *image.Gray, radius int) *image.Gray {
	b := src.Bounds()
	out := image.NewGray(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			white, total := 0, 0
			for dy := -radius; dy <= radius; dy++ {
				for dx := -radius; dx <= radius; dx++ {
					px, py := x+dx, y+dy
					if px < b.Min.X || px >= b.Max.X || py < b.Min.Y || py >= b.Max.Y {
						continue
					}
					total++
					if src.GrayAt(px, py).Y >= 128 {
						white++
					}
				}
			}
			v := uint8(0)
			if white*2 >= total {
				v = 255
			}
			out.SetGray(x, y, color.Gray{Y: v})
		}
	}
	return out
}
