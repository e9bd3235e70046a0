package geom_test

import (
	"testing"

	"github.com/plus3/puffin/geom"
	"github.com/stretchr/testify/assert"
)

func TestIntersects(t *testing.T) {
	a := geom.Rect{X: 0, Y: 0, Width: 32, Height: 32}

	tests := []struct {
		name  string
		other geom.Rect
		want  bool
	}{
		{"touching right edge", geom.Rect{X: 32, Y: 0, Width: 32, Height: 32}, false},
		{"touching bottom edge", geom.Rect{X: 0, Y: 32, Width: 32, Height: 32}, false},
		{"one pixel horizontal overlap", geom.Rect{X: 31, Y: 0, Width: 32, Height: 32}, true},
		{"one pixel vertical overlap", geom.Rect{X: 0, Y: 31, Width: 32, Height: 32}, true},
		{"contained", geom.Rect{X: 8, Y: 8, Width: 4, Height: 4}, true},
		{"far away", geom.Rect{X: 100, Y: 100, Width: 4, Height: 4}, false},
		{"diagonal corner touch", geom.Rect{X: 32, Y: 32, Width: 4, Height: 4}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, a.Intersects(tt.other))
			assert.Equal(t, tt.want, tt.other.Intersects(a))
		})
	}
}

func TestContains(t *testing.T) {
	r := geom.Rect{X: 10, Y: 10, Width: 10, Height: 10}

	assert.True(t, r.Contains(10, 10))
	assert.True(t, r.Contains(19.5, 19.5))
	assert.False(t, r.Contains(20, 15))
	assert.False(t, r.Contains(15, 20))
	assert.False(t, r.Contains(9.9, 15))
}

func TestSeparation(t *testing.T) {
	t.Run("horizontal push for the smaller penetration", func(t *testing.T) {
		a := geom.Rect{X: 0, Y: 0, Width: 32, Height: 32}
		b := geom.Rect{X: 16, Y: 0, Width: 32, Height: 32}

		dx, dy := geom.Separation(b, a)
		assert.Equal(t, 16.0, dx)
		assert.Equal(t, 0.0, dy)
		assert.False(t, b.Translate(dx, dy).Intersects(a))
	})

	t.Run("vertical push for the smaller penetration", func(t *testing.T) {
		a := geom.Rect{X: 0, Y: 0, Width: 32, Height: 32}
		b := geom.Rect{X: 2, Y: -30, Width: 32, Height: 32}

		dx, dy := geom.Separation(b, a)
		assert.Equal(t, 0.0, dx)
		assert.Equal(t, -2.0, dy)
		assert.False(t, b.Translate(dx, dy).Intersects(a))
	})

	t.Run("equal penetration prefers horizontal", func(t *testing.T) {
		a := geom.Rect{X: 0, Y: 0, Width: 32, Height: 32}
		b := geom.Rect{X: -8, Y: -8, Width: 16, Height: 16}

		dx, dy := geom.Separation(b, a)
		assert.Equal(t, -8.0, dx)
		assert.Equal(t, 0.0, dy)
	})

	t.Run("coincident centers push toward positive x", func(t *testing.T) {
		a := geom.Rect{X: 0, Y: 0, Width: 10, Height: 10}

		dx, dy := geom.Separation(a, a)
		assert.Equal(t, 10.0, dx)
		assert.Equal(t, 0.0, dy)
	})

	t.Run("no intersection means no push", func(t *testing.T) {
		a := geom.Rect{X: 0, Y: 0, Width: 10, Height: 10}
		b := geom.Rect{X: 10, Y: 0, Width: 10, Height: 10}

		dx, dy := geom.Separation(b, a)
		assert.Zero(t, dx)
		assert.Zero(t, dy)
	})
}
