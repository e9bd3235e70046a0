package drawing

// Transform maps world coordinates to screen coordinates:
// screen = world*Zoom + Translate.
type Transform struct {
	Zoom       float64
	TranslateX float64
	TranslateY float64
}

// Identity leaves coordinates unchanged.
var Identity = Transform{Zoom: 1}

// Apply maps a world point to the screen.
func (t Transform) Apply(x, y float64) (float64, float64) {
	z := t.Scale()
	return x*z + t.TranslateX, y*z + t.TranslateY
}

// Invert maps a screen point back to the world.
func (t Transform) Invert(x, y float64) (float64, float64) {
	z := t.Scale()
	return (x - t.TranslateX) / z, (y - t.TranslateY) / z
}

// Scale returns the effective zoom. A non-positive Zoom is treated as 1.
func (t Transform) Scale() float64 {
	if t.Zoom <= 0 {
		return 1
	}
	return t.Zoom
}
