// Package tiles implements fixed-size tile grids drawn from a single atlas image.
package tiles

import (
	"fmt"
	"math"

	"github.com/plus3/puffin/geom"
)

// Definition maps a logical tile name to a cell of the atlas image.
type Definition struct {
	Name  string
	CellX int
	CellY int
	// Solid tiles block entities that carry a collision component.
	Solid bool
}

// TileMap is a MapWidth x MapHeight grid of named tiles. The grid size is
// fixed at construction; coordinates outside it are programming errors.
type TileMap struct {
	// X and Y place the top-left corner of the map in world space.
	X, Y float64

	mapWidth   int
	mapHeight  int
	tileWidth  int
	tileHeight int
	imageFile  string

	definitions map[string]Definition
	tiles       []string
}

// New creates an empty map of mapWidth x mapHeight tiles, each tileWidth x
// tileHeight pixels, drawn from imageFile.
func New(mapWidth, mapHeight int, imageFile string, tileWidth, tileHeight int) *TileMap {
	if mapWidth <= 0 || mapHeight <= 0 {
		panic(fmt.Sprintf("tiles: invalid map size %dx%d", mapWidth, mapHeight))
	}
	if tileWidth <= 0 || tileHeight <= 0 {
		panic(fmt.Sprintf("tiles: invalid tile size %dx%d", tileWidth, tileHeight))
	}

	return &TileMap{
		mapWidth:    mapWidth,
		mapHeight:   mapHeight,
		tileWidth:   tileWidth,
		tileHeight:  tileHeight,
		imageFile:   imageFile,
		definitions: make(map[string]Definition),
		tiles:       make([]string, mapWidth*mapHeight),
	}
}

// Define registers (or replaces) the tile called name, taken from the atlas
// cell at (cellX, cellY).
func (m *TileMap) Define(name string, cellX, cellY int, solid bool) {
	m.definitions[name] = Definition{Name: name, CellX: cellX, CellY: cellY, Solid: solid}
}

// Definition returns the definition registered under name.
func (m *TileMap) Definition(name string) (Definition, bool) {
	def, ok := m.definitions[name]
	return def, ok
}

// Set places the tile called name at (x, y). An empty name clears the cell.
func (m *TileMap) Set(x, y int, name string) {
	idx := m.index(x, y)
	if name != "" {
		if _, ok := m.definitions[name]; !ok {
			panic(fmt.Sprintf("tiles: undefined tile %q", name))
		}
	}
	m.tiles[idx] = name
}

// Get returns the name of the tile at (x, y), or "" for an empty cell.
func (m *TileMap) Get(x, y int) string {
	return m.tiles[m.index(x, y)]
}

// Fill places name in every cell.
func (m *TileMap) Fill(name string) {
	for y := 0; y < m.mapHeight; y++ {
		for x := 0; x < m.mapWidth; x++ {
			m.Set(x, y, name)
		}
	}
}

// IsSolid reports whether the tile at (x, y) is defined as solid.
func (m *TileMap) IsSolid(x, y int) bool {
	name := m.Get(x, y)
	if name == "" {
		return false
	}
	return m.definitions[name].Solid
}

// Each calls fn for every non-empty cell in row-major order.
func (m *TileMap) Each(fn func(x, y int, def Definition)) {
	for y := 0; y < m.mapHeight; y++ {
		for x := 0; x < m.mapWidth; x++ {
			name := m.tiles[y*m.mapWidth+x]
			if name == "" {
				continue
			}
			fn(x, y, m.definitions[name])
		}
	}
}

// TileBounds returns the world-space rectangle covered by the cell at (x, y).
func (m *TileMap) TileBounds(x, y int) geom.Rect {
	m.index(x, y)
	return geom.Rect{
		X:      m.X + float64(x*m.tileWidth),
		Y:      m.Y + float64(y*m.tileHeight),
		Width:  float64(m.tileWidth),
		Height: float64(m.tileHeight),
	}
}

// SourceRect returns the atlas rectangle for def.
func (m *TileMap) SourceRect(def Definition) geom.Rect {
	return geom.Rect{
		X:      float64(def.CellX * m.tileWidth),
		Y:      float64(def.CellY * m.tileHeight),
		Width:  float64(m.tileWidth),
		Height: float64(m.tileHeight),
	}
}

// SolidTilesIn returns the bounds of every solid tile intersecting r, in
// row-major order. Parts of r outside the map are ignored.
func (m *TileMap) SolidTilesIn(r geom.Rect) []geom.Rect {
	minX := int(math.Floor((r.X - m.X) / float64(m.tileWidth)))
	minY := int(math.Floor((r.Y - m.Y) / float64(m.tileHeight)))
	maxX := int(math.Ceil((r.Right() - m.X) / float64(m.tileWidth)))
	maxY := int(math.Ceil((r.Bottom() - m.Y) / float64(m.tileHeight)))

	minX = max(minX, 0)
	minY = max(minY, 0)
	maxX = min(maxX, m.mapWidth)
	maxY = min(maxY, m.mapHeight)

	var solids []geom.Rect
	for y := minY; y < maxY; y++ {
		for x := minX; x < maxX; x++ {
			if !m.IsSolid(x, y) {
				continue
			}
			bounds := m.TileBounds(x, y)
			if bounds.Intersects(r) {
				solids = append(solids, bounds)
			}
		}
	}
	return solids
}

func (m *TileMap) MapWidth() int     { return m.mapWidth }
func (m *TileMap) MapHeight() int    { return m.mapHeight }
func (m *TileMap) TileWidth() int    { return m.tileWidth }
func (m *TileMap) TileHeight() int   { return m.tileHeight }
func (m *TileMap) ImageFile() string { return m.imageFile }

func (m *TileMap) index(x, y int) int {
	if x < 0 || y < 0 || x >= m.mapWidth || y >= m.mapHeight {
		panic(fmt.Sprintf("tiles: coordinate (%d, %d) outside %dx%d map", x, y, m.mapWidth, m.mapHeight))
	}
	return y*m.mapWidth + x
}
