package drawing_test

import (
	"image/color"
	"testing"

	"github.com/plus3/puffin/drawing"
	"github.com/stretchr/testify/assert"
)

func TestTransform(t *testing.T) {
	tr := drawing.Transform{Zoom: 2, TranslateX: -200, TranslateY: -100}

	x, y := tr.Apply(150, 75)
	assert.Equal(t, 100.0, x)
	assert.Equal(t, 50.0, y)

	wx, wy := tr.Invert(x, y)
	assert.Equal(t, 150.0, wx)
	assert.Equal(t, 75.0, wy)

	x, y = drawing.Identity.Apply(3, 4)
	assert.Equal(t, 3.0, x)
	assert.Equal(t, 4.0, y)

	// zero zoom behaves as identity scale
	x, _ = drawing.Transform{}.Apply(3, 4)
	assert.Equal(t, 3.0, x)
}

func TestRGBA(t *testing.T) {
	assert.Equal(t, color.NRGBA{R: 0x11, G: 0x22, B: 0x33, A: 0xff}, drawing.RGBA(0x112233, 1))
	assert.Equal(t, color.NRGBA{R: 0xff, A: 128}, drawing.RGBA(0xFF0000, 0.5))
	assert.Equal(t, uint8(0), drawing.RGBA(0xFFFFFF, -1).A)
	assert.Equal(t, uint8(255), drawing.RGBA(0xFFFFFF, 4).A)
}
