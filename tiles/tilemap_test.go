package tiles_test

import (
	"testing"

	"github.com/plus3/puffin/geom"
	"github.com/plus3/puffin/tiles"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDungeon() *tiles.TileMap {
	m := tiles.New(4, 3, "dungeon.png", 32, 32)
	m.Define("Floor", 0, 0, false)
	m.Define("Wall", 1, 0, true)

	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			if x == 0 || y == 0 || x == 3 || y == 2 {
				m.Set(x, y, "Wall")
			} else {
				m.Set(x, y, "Floor")
			}
		}
	}
	return m
}

func TestTileMapDefinitions(t *testing.T) {
	m := newDungeon()

	def, ok := m.Definition("Wall")
	require.True(t, ok)
	assert.Equal(t, tiles.Definition{Name: "Wall", CellX: 1, CellY: 0, Solid: true}, def)

	_, ok = m.Definition("Lava")
	assert.False(t, ok)

	assert.Equal(t, "Wall", m.Get(0, 0))
	assert.Equal(t, "Floor", m.Get(1, 1))
	assert.True(t, m.IsSolid(3, 2))
	assert.False(t, m.IsSolid(2, 1))

	m.Set(1, 1, "")
	assert.Equal(t, "", m.Get(1, 1))
	assert.False(t, m.IsSolid(1, 1))
}

func TestTileMapOutOfRangePanics(t *testing.T) {
	m := newDungeon()

	assert.Panics(t, func() { m.Get(4, 0) })
	assert.Panics(t, func() { m.Get(0, 3) })
	assert.Panics(t, func() { m.Set(-1, 0, "Floor") })
	assert.Panics(t, func() { m.TileBounds(0, -1) })
	assert.Panics(t, func() { m.Set(0, 0, "Lava") })
	assert.Panics(t, func() { tiles.New(0, 3, "x.png", 32, 32) })
	assert.Panics(t, func() { tiles.New(3, 3, "x.png", 32, 0) })
}

func TestTileMapEachIsRowMajor(t *testing.T) {
	m := tiles.New(2, 2, "a.png", 8, 8)
	m.Define("A", 0, 0, false)
	m.Set(1, 0, "A")
	m.Set(0, 1, "A")
	m.Set(1, 1, "A")

	var visited [][2]int
	m.Each(func(x, y int, def tiles.Definition) {
		assert.Equal(t, "A", def.Name)
		visited = append(visited, [2]int{x, y})
	})

	assert.Equal(t, [][2]int{{1, 0}, {0, 1}, {1, 1}}, visited)
}

func TestTileMapGeometry(t *testing.T) {
	m := newDungeon()
	m.X, m.Y = 100, 50

	assert.Equal(t, geom.Rect{X: 164, Y: 82, Width: 32, Height: 32}, m.TileBounds(2, 1))

	def, _ := m.Definition("Wall")
	assert.Equal(t, geom.Rect{X: 32, Y: 0, Width: 32, Height: 32}, m.SourceRect(def))
}

func TestSolidTilesIn(t *testing.T) {
	m := newDungeon()

	// overlaps the top wall row at x=1..2 only
	solids := m.SolidTilesIn(geom.Rect{X: 40, Y: 20, Width: 40, Height: 20})
	assert.Equal(t, []geom.Rect{
		{X: 32, Y: 0, Width: 32, Height: 32},
		{X: 64, Y: 0, Width: 32, Height: 32},
	}, solids)

	// fully inside the floor
	assert.Empty(t, m.SolidTilesIn(geom.Rect{X: 33, Y: 33, Width: 20, Height: 20}))

	// partially outside the map is clipped, not a panic
	assert.NotEmpty(t, m.SolidTilesIn(geom.Rect{X: -50, Y: -50, Width: 60, Height: 60}))
}
