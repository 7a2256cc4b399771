package minimap

import (
	"image"
	"image/color"
)

// Background is the colour bordering the minimap overlay.
var Background = color.RGBA{R: 0, G: 0, B: 0, A: 255}

// PixelsEqual reports whether every RGB channel of a and b differs by at
// most accuracy. Alpha is ignored.
func PixelsEqual(a, b color.RGBA, accuracy int) bool {
	return channelWithin(a.R, b.R, accuracy) &&
		channelWithin(a.G, b.G, accuracy) &&
		channelWithin(a.B, b.B, accuracy)
}

func channelWithin(c1, c2 uint8, accuracy int) bool {
	diff := int(c1) - int(c2)
	return diff >= -accuracy && diff <= accuracy
}

// rgbAt reads the pixel at (x, y) as 8-bit RGBA.
func rgbAt(img image.Image, x, y int) color.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba.RGBAAt(x, y)
	}
	r, g, b, a := img.At(x, y).RGBA()
	return color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
}

func isBackground(img image.Image, x, y, tolerance int) bool {
	return PixelsEqual(rgbAt(img, x, y), Background, tolerance)
}

// runLength counts consecutive pixels from start, stepping by step, for
// which match holds. Leaving the image while pixels still match is an
// ErrBoundsOverrun: the run has no end inside the frame.
func runLength(img image.Image, start, step image.Point, match func(color.RGBA) bool) (int, error) {
	b := img.Bounds()
	n := 0
	for {
		p := start.Add(step.Mul(n))
		if !p.In(b) {
			return n, ErrBoundsOverrun
		}
		if !match(rgbAt(img, p.X, p.Y)) {
			return n, nil
		}
		n++
	}
}
