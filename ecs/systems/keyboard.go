package systems

import (
	"github.com/plus3/puffin/ecs"
	"github.com/plus3/puffin/input"
)

// KeyboardSystem publishes ActionPressed and ActionReleased on every change
// of a bound action and answers held-action queries.
type KeyboardSystem struct {
	bus      *ecs.EventBus
	provider input.KeyboardProvider
	entities entityList
	down     map[input.Action]bool
}

func NewKeyboardSystem(bus *ecs.EventBus, provider input.KeyboardProvider) *KeyboardSystem {
	return &KeyboardSystem{
		bus:      bus,
		provider: provider,
		down:     make(map[input.Action]bool),
	}
}

func (s *KeyboardSystem) OnAddEntity(e *ecs.Entity)    { s.entities.add(e) }
func (s *KeyboardSystem) OnRemoveEntity(e *ecs.Entity) { s.entities.remove(e) }

// IsActionDown reports whether any key bound to action is held.
func (s *KeyboardSystem) IsActionDown(action input.Action) bool {
	if s.provider == nil {
		return false
	}
	return s.provider.IsActionDown(action)
}

func (s *KeyboardSystem) OnUpdate(frame *ecs.UpdateFrame) error {
	if s.provider == nil {
		return nil
	}

	for _, action := range s.provider.Actions() {
		isDown := s.provider.IsActionDown(action)
		if isDown == s.down[action] {
			continue
		}
		s.down[action] = isDown

		for _, e := range s.entities.snapshot() {
			k := ecs.Get[*ecs.KeyboardComponent](e)
			if k == nil {
				continue
			}
			if isDown && k.OnActionPressed != nil {
				k.OnActionPressed(e, action)
			} else if !isDown && k.OnActionReleased != nil {
				k.OnActionReleased(e, action)
			}
		}

		if isDown {
			ecs.Publish(s.bus, ecs.ActionPressed{Action: action})
		} else {
			ecs.Publish(s.bus, ecs.ActionReleased{Action: action})
		}
	}
	return nil
}
