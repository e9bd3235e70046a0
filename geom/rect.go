// Package geom holds the axis-aligned geometry shared by collision, pointer
// hit testing and drawing.
package geom

// Rect is an axis-aligned rectangle. The origin is the top-left corner and Y
// grows downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// CenterX returns the horizontal center of the rectangle.
func (r Rect) CenterX() float64 { return r.X + r.Width/2 }

// CenterY returns the vertical center of the rectangle.
func (r Rect) CenterY() float64 { return r.Y + r.Height/2 }

// Translate returns r moved by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, Width: r.Width, Height: r.Height}
}

// Intersects reports whether r and other share a non-empty area.
// Rectangles that only touch along an edge do not intersect.
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.Right() &&
		r.Right() > other.X &&
		r.Y < other.Bottom() &&
		r.Bottom() > other.Y
}

// Contains reports whether the point (x, y) lies inside r. The left and top
// edges are inside, the right and bottom edges are not, so a point on a shared
// edge belongs to exactly one of two adjacent rectangles.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.Right() &&
		y >= r.Y && y < r.Bottom()
}

// Penetration returns how far r and other overlap on each axis. Both values
// are positive only when the rectangles intersect.
func (r Rect) Penetration(other Rect) (px, py float64) {
	px = min(r.Right(), other.Right()) - max(r.X, other.X)
	py = min(r.Bottom(), other.Bottom()) - max(r.Y, other.Y)
	return px, py
}

// Separation returns the smallest translation that moves mover out of other.
// The push happens along the axis with the smaller penetration; when both
// axes penetrate equally the push is horizontal. The mover is pushed away
// from the center of other, toward positive coordinates when the centers
// coincide. Non-intersecting rectangles yield (0, 0).
func Separation(mover, other Rect) (dx, dy float64) {
	if !mover.Intersects(other) {
		return 0, 0
	}

	px, py := mover.Penetration(other)
	if px <= py {
		if mover.CenterX() < other.CenterX() {
			return -px, 0
		}
		return px, 0
	}

	if mover.CenterY() < other.CenterY() {
		return 0, -py
	}
	return 0, py
}
