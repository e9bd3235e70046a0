package drawing

import (
	"image/color"
	"math"
)

// RGBA unpacks a 0xRRGGBB colour with alpha in [0, 1].
func RGBA(packed uint32, alpha float64) color.NRGBA {
	alpha = math.Max(0, math.Min(1, alpha))
	return color.NRGBA{
		R: uint8(packed >> 16),
		G: uint8(packed >> 8),
		B: uint8(packed),
		A: uint8(math.Round(alpha * 255)),
	}
}

var (
	white      = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	debugColor = RGBA(0xFF0000, 0.5)
)
