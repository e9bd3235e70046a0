package systems

import (
	"slices"

	"github.com/plus3/puffin/ecs"
	"github.com/plus3/puffin/input"
)

// MouseOverlapSystem tracks which entity the pointer rests over. When areas
// overlap the topmost (last added) entity wins.
type MouseOverlapSystem struct {
	bus      *ecs.EventBus
	provider input.MouseProvider
	entities entityList
	current  *ecs.Entity
}

func NewMouseOverlapSystem(bus *ecs.EventBus, provider input.MouseProvider) *MouseOverlapSystem {
	return &MouseOverlapSystem{bus: bus, provider: provider}
}

func (s *MouseOverlapSystem) OnAddEntity(e *ecs.Entity) { s.entities.add(e) }

func (s *MouseOverlapSystem) OnRemoveEntity(e *ecs.Entity) {
	s.entities.remove(e)
	if s.current == e {
		s.current = nil
	}
}

// Current returns the entity under the pointer, or nil.
func (s *MouseOverlapSystem) Current() *ecs.Entity { return s.current }

func (s *MouseOverlapSystem) OnUpdate(frame *ecs.UpdateFrame) error {
	if s.provider == nil {
		return nil
	}

	var over *ecs.Entity
	for _, e := range slices.Backward(s.entities.snapshot()) {
		m := ecs.Get[*ecs.MouseOverlapComponent](e)
		if m == nil {
			continue
		}
		if m.Bounds().Contains(pointerFor(s.provider, e)) {
			over = e
			break
		}
	}

	if over == s.current {
		return nil
	}

	previous := s.current
	s.current = over

	if previous != nil {
		if m := ecs.Get[*ecs.MouseOverlapComponent](previous); m != nil && m.OnExit != nil {
			m.OnExit(previous)
		}
		ecs.Publish(s.bus, ecs.MouseExited{Entity: previous})
	}
	if over != nil {
		if m := ecs.Get[*ecs.MouseOverlapComponent](over); m != nil && m.OnEnter != nil {
			m.OnEnter(over)
		}
		ecs.Publish(s.bus, ecs.MouseEntered{Entity: over})
	}
	return nil
}
