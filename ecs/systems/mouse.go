package systems

import (
	"slices"

	"github.com/plus3/puffin/ecs"
	"github.com/plus3/puffin/input"
)

var mouseButtons = []input.MouseButton{input.MouseButtonLeft, input.MouseButtonRight, input.MouseButtonMiddle}

// MouseSystem turns button edges into MouseClicked and MouseReleased events.
// Each edge is delivered once, to the topmost (last added) entity whose mouse
// area contains the pointer, or with a nil Entity when no area was hit.
// Component callbacks fire for the left button only.
type MouseSystem struct {
	bus      *ecs.EventBus
	provider input.MouseProvider
	entities entityList
	down     [3]bool
}

func NewMouseSystem(bus *ecs.EventBus, provider input.MouseProvider) *MouseSystem {
	return &MouseSystem{bus: bus, provider: provider}
}

func (s *MouseSystem) OnAddEntity(e *ecs.Entity)    { s.entities.add(e) }
func (s *MouseSystem) OnRemoveEntity(e *ecs.Entity) { s.entities.remove(e) }

// Coordinates returns the pointer position in screen space.
func (s *MouseSystem) Coordinates() (x, y float64) {
	if s.provider == nil {
		return 0, 0
	}
	return s.provider.Coordinates()
}

func (s *MouseSystem) OnUpdate(frame *ecs.UpdateFrame) error {
	if s.provider == nil {
		return nil
	}

	for _, button := range mouseButtons {
		isDown := s.provider.IsButtonDown(button)
		wasDown := s.down[button]
		s.down[button] = isDown

		switch {
		case isDown && !wasDown:
			target, x, y := s.hit()
			if target != nil && button == input.MouseButtonLeft {
				if m := ecs.Get[*ecs.MouseComponent](target); m.OnClick != nil {
					m.OnClick(target, x, y)
				}
			}
			ecs.Publish(s.bus, ecs.MouseClicked{Entity: target, X: x, Y: y, Button: button})
		case !isDown && wasDown:
			target, x, y := s.hit()
			if target != nil && button == input.MouseButtonLeft {
				if m := ecs.Get[*ecs.MouseComponent](target); m.OnRelease != nil {
					m.OnRelease(target, x, y)
				}
			}
			ecs.Publish(s.bus, ecs.MouseReleased{Entity: target, X: x, Y: y, Button: button})
		}
	}
	return nil
}

// hit returns the topmost clickable entity under the pointer, with the
// pointer position in that entity's coordinate space. Without a hit the
// screen position is returned.
func (s *MouseSystem) hit() (*ecs.Entity, float64, float64) {
	entities := s.entities.snapshot()
	for _, e := range slices.Backward(entities) {
		m := ecs.Get[*ecs.MouseComponent](e)
		if m == nil {
			continue
		}
		x, y := pointerFor(s.provider, e)
		if m.Bounds().Contains(x, y) {
			return e, x, y
		}
	}
	x, y := s.provider.Coordinates()
	return nil, x, y
}

// pointerFor returns the pointer in screen space for UI entities and in world
// space otherwise.
func pointerFor(provider input.MouseProvider, e *ecs.Entity) (float64, float64) {
	if e.IsUI() {
		return provider.Coordinates()
	}
	return provider.WorldCoordinates()
}
