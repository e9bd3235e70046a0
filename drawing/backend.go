// Package drawing turns entity component state into an ordered sequence of
// draw calls against a host backend.
package drawing

import (
	"image"
	"image/color"

	"github.com/plus3/puffin/geom"
)

// Texture is a loaded image owned by the backend.
type Texture interface {
	Size() (width, height int)
	Dispose()
}

// Measurer reports the rendered size of a string.
type Measurer interface {
	Measure(s string) (width, height float64)
}

// Font is a loaded face at a fixed size.
type Font interface {
	Measurer
}

// Loader resolves asset names to backend resources.
type Loader interface {
	LoadTexture(path string) (Texture, error)
	LoadFont(name string, size int) (Font, error)
}

// Canvas receives draw calls. Calls between Begin and End are mapped to the
// screen through the given transform.
type Canvas interface {
	Begin(t Transform)
	End()
	Clear(c color.Color)
	// DrawTexture draws the src region of tex with its top-left corner at
	// (x, y). An empty src draws the whole texture.
	DrawTexture(tex Texture, x, y float64, src image.Rectangle, tint color.Color)
	FillRect(r geom.Rect, c color.Color)
	DrawText(font Font, s string, x, y float64, c color.Color)
}

// Backend is everything the Surface needs from the host.
type Backend interface {
	Loader
	Canvas
}
