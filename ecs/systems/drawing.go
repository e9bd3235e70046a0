package systems

import (
	"time"

	"github.com/plus3/puffin/drawing"
	"github.com/plus3/puffin/ecs"
	"github.com/plus3/puffin/tiles"
)

// DrawingSystem hands the scene's entities and tile maps to a drawing
// surface and draws them once per host draw call.
type DrawingSystem struct {
	surface *drawing.Surface
	frames  int64
}

func NewDrawingSystem(surface *drawing.Surface) *DrawingSystem {
	return &DrawingSystem{surface: surface}
}

func (s *DrawingSystem) OnAddEntity(e *ecs.Entity)             { s.surface.AddEntity(e) }
func (s *DrawingSystem) OnRemoveEntity(e *ecs.Entity)          { s.surface.RemoveEntity(e) }
func (s *DrawingSystem) OnAddTileMap(m *tiles.TileMap)         { s.surface.AddTileMap(m) }
func (s *DrawingSystem) OnRemoveTileMap(m *tiles.TileMap)      { s.surface.RemoveTileMap(m) }
func (s *DrawingSystem) OnUpdate(frame *ecs.UpdateFrame) error { return nil }

// OnDraw draws one frame over bg.
func (s *DrawingSystem) OnDraw(elapsed time.Duration, bg drawing.Background) error {
	if err := s.surface.DrawAll(bg); err != nil {
		return err
	}
	s.frames++
	return nil
}

// Frames returns the number of frames drawn successfully.
func (s *DrawingSystem) Frames() int64 { return s.frames }

// Surface returns the surface the system draws with.
func (s *DrawingSystem) Surface() *drawing.Surface { return s.surface }

func (s *DrawingSystem) Dispose() { s.surface.Dispose() }
